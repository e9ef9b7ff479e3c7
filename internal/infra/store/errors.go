package store

import "errors"

var (
	ErrDatabaseConnection = errors.New("database connection error")
	ErrInvalidRow         = errors.New("invalid stored row")
)
