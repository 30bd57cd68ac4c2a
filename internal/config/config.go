package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port           string
	RequestTimeout time.Duration
	LogLevel       string

	// Database configuration
	DBType            string // postgres, mysql, sqlite, sqlite3, sqlserver
	DatabaseURL       string
	DBSSLMode         string
	DBConnectionLimit int
	DBConnMaxLifetime time.Duration
	DBInitOnStart     bool
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	loadEnvFile(getEnv("ENV_FILE", ".env"))

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		RequestTimeout:    getEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
		DBType:            strings.ToLower(getEnv("DB_TYPE", "postgres")),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DBSSLMode:         getEnv("DB_SSL_MODE", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		DBConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		DBInitOnStart:     getEnvAsBool("DB_INIT_ON_START", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.DBConnectionLimit < 1 {
		return fmt.Errorf("DB_CONNECTION_LIMIT must be at least 1, got %d", c.DBConnectionLimit)
	}
	return nil
}

// loadEnvFile loads a dotenv file if it exists. Variables already set in the
// environment win over the file.
func loadEnvFile(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Printf("Failed to load environment file %s: %v", path, err)
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go duration strings ("15s") or a bare number of seconds
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
