package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBUrl string
	// Vector Index Configuration
	VectorIndexURL            string
	VectorIndexAPIKey         string
	VectorIndexTimeoutSeconds int
	// Reconciliation Configuration
	SyncHour           int // local hour of day the daily pass fires at
	SyncWorkers        int
	SyncTimeoutMinutes int
	// Redis Configuration (distributed single-flight guard, optional)
	RedisURL            string
	RedisPassword       string
	SyncGuardTTLMinutes int
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent
	_ = godotenv.Load()

	cfg := &Config{
		DBUrl: getEnv("DATABASE_URL", ""),
		// Strip trailing slash to avoid double slashes when joining paths
		VectorIndexURL:            strings.TrimRight(getEnv("VECTOR_INDEX_URL", ""), "/"),
		VectorIndexAPIKey:         getEnv("VECTOR_INDEX_API_KEY", ""),
		VectorIndexTimeoutSeconds: getEnvInt("VECTOR_INDEX_TIMEOUT_SECONDS", 30),
		SyncHour:                  getEnvInt("SYNC_HOUR", 2),           // 02:00 server time
		SyncWorkers:               getEnvInt("SYNC_WORKERS", 8),        // parallel index calls per pass
		SyncTimeoutMinutes:        getEnvInt("SYNC_TIMEOUT_MINUTES", 30),
		RedisURL:                  getEnv("REDIS_URL", ""),
		RedisPassword:             getEnv("REDIS_PASSWORD", ""),
		SyncGuardTTLMinutes:       getEnvInt("SYNC_GUARD_TTL_MINUTES", 45), // must outlive the pass timeout
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.VectorIndexURL == "" {
		log.Println("WARNING: VECTOR_INDEX_URL is missing. Reconciliation will fail.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Single-flight guard will be in-process only.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
