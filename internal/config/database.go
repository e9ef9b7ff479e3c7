package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	databaseURLEnv      = "DATABASE_URL"
	databaseHostEnv     = "DB_HOST"
	databasePortEnv     = "DB_PORT"
	databaseNameEnv     = "DB_NAME"
	databaseUserEnv     = "DB_USER"
	databasePasswordEnv = "DB_PASSWORD"
	databaseSSLModeEnv  = "DB_SSLMODE"
	databaseMaxOpenEnv  = "DB_MAX_OPEN_CONNS"
	databaseMaxIdleEnv  = "DB_MAX_IDLE_CONNS"

	defaultDatabaseHost    = "localhost"
	defaultDatabasePort    = 5432
	defaultDatabaseName    = "timetable"
	defaultDatabaseUser    = "postgres"
	defaultDatabaseSSLMode = "disable"
	defaultMaxOpenConns    = 10
	defaultMaxIdleConns    = 5
)

type DatabaseConfig struct {
	// URL wins over the individual parts when set.
	URL          string
	Host         string
	Port         int
	Name         string
	User         string
	Password     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

func LoadDatabaseConfig() (*DatabaseConfig, error) {
	port := defaultDatabasePort
	if raw := os.Getenv(databasePortEnv); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidDatabasePort
		}
		port = parsed
	}

	return &DatabaseConfig{
		URL:          os.Getenv(databaseURLEnv),
		Host:         getEnvOrDefault(databaseHostEnv, defaultDatabaseHost),
		Port:         port,
		Name:         getEnvOrDefault(databaseNameEnv, defaultDatabaseName),
		User:         getEnvOrDefault(databaseUserEnv, defaultDatabaseUser),
		Password:     os.Getenv(databasePasswordEnv),
		SSLMode:      getEnvOrDefault(databaseSSLModeEnv, defaultDatabaseSSLMode),
		MaxOpenConns: positiveIntEnv(databaseMaxOpenEnv, defaultMaxOpenConns),
		MaxIdleConns: positiveIntEnv(databaseMaxIdleEnv, defaultMaxIdleConns),
	}, nil
}

func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

func (c *DatabaseConfig) Validate() error {
	if c == nil || (c.URL == "" && c.Host == "") {
		return ErrDatabaseHostMissing
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
