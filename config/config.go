package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Traffic API Config
const TRAFFIC_ENDPOINT_BASE_V1 = "http://traffic-service:9090/api/v1"
const TRAFFIC_FETCH_TIMEOUT = 2 * time.Second
const TRAFFIC_SYNC_RUN_TIMEOUT = 30 * time.Second

// Traffic Sync config
const TRAFFIC_SYNC_SERVICE_SCHEDULE_MINUTES = 60
const TRAFFIC_SYNC_WARM_DAYS = 7

// Bulk apply config
const BULK_APPLY_BATCH_SIZE = 15
const BULK_APPLY_BATCH_PAUSE = 500 * time.Millisecond

// Server config
const SERVER_ADDRESS = ":8080"

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const TRAFFIC_DAY_RESPONSE_RESOURCE = "traffic_day_response.json"
const STORES_RESOURCE = "stores.json"

// GetEnv returns the value of the env var or the given default.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt returns the env var parsed as int, or the default on absence or parse failure.
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// RedisAddress resolves the Redis address, allowing env override for local runs.
func RedisAddress() string {
	return GetEnv("REDIS_ADDRESS", REDIS_DB_ADDRESS)
}

// TrafficEndpoint resolves the traffic service base URL.
func TrafficEndpoint() string {
	return GetEnv("TRAFFIC_ENDPOINT", TRAFFIC_ENDPOINT_BASE_V1)
}

// ServerAddress resolves the HTTP listen address.
func ServerAddress() string {
	return GetEnv("SERVER_ADDRESS", SERVER_ADDRESS)
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}
