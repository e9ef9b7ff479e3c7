package repository

import "errors"

var (
	ErrRedisConnection    = errors.New("redis connection error")
	ErrInvalidTriggerData = errors.New("invalid trigger data")
	ErrInvalidChainData   = errors.New("invalid chain data")
)
