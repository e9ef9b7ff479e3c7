package config

import "errors"

var (
	ErrRedisAddrMissing     = errors.New("REDIS_ADDR or REDIS_URL is required")
	ErrInvalidRedisDB       = errors.New("REDIS_DB must be a non-negative integer")
	ErrInvalidRedisURL      = errors.New("REDIS_URL is not a valid redis URL")
	ErrDatabaseHostMissing  = errors.New("DATABASE_URL or DB_HOST is required")
	ErrInvalidDatabasePort  = errors.New("DB_PORT must be a positive integer")
	ErrDeviceGatewayMissing = errors.New("DEVICE_GATEWAY_URL is required")
)
