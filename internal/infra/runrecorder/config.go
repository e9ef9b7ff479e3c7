package runrecorder

import (
	"os"
)

type Config struct {
	Disabled bool

	InfluxDBURL    string
	InfluxDBToken  string
	InfluxDBOrg    string
	InfluxDBBucket string

	BigQueryProjectID     string
	BigQueryDataset       string
	BigQueryPlanningTable string
	BigQueryTickTable     string
}

func LoadConfig() *Config {
	return &Config{
		Disabled: os.Getenv("RUN_RECORDS_DISABLED") == "true",

		InfluxDBURL:    getEnvOrDefault("INFLUXDB_URL", "http://localhost:8086"),
		InfluxDBToken:  os.Getenv("INFLUXDB_TOKEN"),
		InfluxDBOrg:    os.Getenv("INFLUXDB_ORG"),
		InfluxDBBucket: getEnvOrDefault("INFLUXDB_BUCKET", "reminder_runs"),

		BigQueryProjectID:     getEnvOrDefault("BIGQUERY_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
		BigQueryDataset:       getEnvOrDefault("BIGQUERY_DATASET", "timetable_reminder"),
		BigQueryPlanningTable: getEnvOrDefault("BIGQUERY_PLANNING_TABLE", "planning_runs"),
		BigQueryTickTable:     getEnvOrDefault("BIGQUERY_TICK_TABLE", "progress_ticks"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
