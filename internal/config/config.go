// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration. It is constructed once at startup
// and passed by reference to the components that need it.
type Config struct {
	// Environment
	Env  string
	Port string

	// Storage
	DataDir string
	DBPath  string

	// Sessions
	SessionSecret  string
	SessionTimeout time.Duration

	// Security posture. Both default to the hardened behavior; the legacy
	// fail-open / plaintext-fallback semantics must be opted into explicitly.
	SecurityFailOpen       bool
	AllowPlaintextFallback bool
}

// Load loads configuration from environment variables, reading a .env file
// first when one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".budgetwise")
	}

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8081"),

		DataDir: dataDir,
		DBPath:  getEnv("DB_PATH", filepath.Join(dataDir, "budgetwise.db")),

		SessionSecret: getEnv("SESSION_SECRET", "fallback-secret-key-for-dev-only"),

		SecurityFailOpen:       getEnvBool("SECURITY_FAIL_OPEN", false),
		AllowPlaintextFallback: getEnvBool("ALLOW_PLAINTEXT_FALLBACK", false),
	}

	timeoutStr := getEnv("SESSION_TIMEOUT", "5m")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		log.Printf("Warning: invalid SESSION_TIMEOUT value '%s', falling back to 5m\n", timeoutStr)
		timeout = 5 * time.Minute
	}
	config.SessionTimeout = timeout

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default value.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: invalid boolean for %s: %q\n", key, value)
		return defaultValue
	}
	return parsed
}
