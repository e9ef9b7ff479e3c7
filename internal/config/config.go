package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Environment string

const (
	EnvironmentDebug      Environment = "debug"
	EnvironmentProduction Environment = "production"
)

type Config struct {
	Environment      Environment
	Port             string
	LogLevel         slog.Level
	DeviceGatewayURL string
	TaskQueue        TaskQueueConfig
	Redis            *RedisConfig
	Database         *DatabaseConfig
	Reminder         *ReminderConfig
}

type TaskQueueConfig struct {
	PrimindTasksURL string
	QueueName       string

	GCloudProjectID  string
	GCloudLocationID string
	GCloudQueueID    string
	GCloudTargetURL  string
	GCloudSAEmail    string

	MaxRetries int
}

func Load() (*Config, error) {
	env := parseEnvironment(os.Getenv("APP_ENV"))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	queueName := os.Getenv("TASK_QUEUE_NAME")
	if queueName == "" {
		queueName = "timetable-reminders"
	}

	maxRetries := 3
	if v := os.Getenv("TASK_QUEUE_MAX_RETRIES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxRetries = parsed
		}
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	databaseConfig, err := LoadDatabaseConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Environment:      env,
		Port:             port,
		LogLevel:         parseLogLevel(os.Getenv("LOG_LEVEL")),
		DeviceGatewayURL: os.Getenv("DEVICE_GATEWAY_URL"),
		TaskQueue: TaskQueueConfig{
			PrimindTasksURL: os.Getenv("PRIMIND_TASKS_URL"),
			QueueName:       queueName,

			GCloudProjectID:  os.Getenv("GCLOUD_PROJECT_ID"),
			GCloudLocationID: os.Getenv("GCLOUD_LOCATION_ID"),
			GCloudQueueID:    os.Getenv("GCLOUD_QUEUE_ID"),
			GCloudTargetURL:  os.Getenv("GCLOUD_TARGET_URL"),
			GCloudSAEmail:    os.Getenv("GCLOUD_SERVICE_ACCOUNT_EMAIL"),

			MaxRetries: maxRetries,
		},
		Redis:    redisConfig,
		Database: databaseConfig,
		Reminder: LoadReminderConfig(env),
	}, nil
}

func (c *Config) IsDebug() bool {
	return c.Environment == EnvironmentDebug
}

func parseEnvironment(raw string) Environment {
	switch strings.ToLower(raw) {
	case "debug", "dev", "development", "local":
		return EnvironmentDebug
	default:
		return EnvironmentProduction
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
