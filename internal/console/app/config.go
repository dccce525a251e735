package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AdminURL     string // Base URL of the admin API (default: http://localhost:8080)
	Realm        string // Realm whose roles are shown (default: master)
	ClientID     string // Required: admin API client with roles:read and roles:write
	ClientSecret string // Required: secret of ClientID

	BasePath     string        // Optional: path prefix the console is served under
	SessionTTL   time.Duration // Idle lifetime of a browser session (default: 30m)
	PageSize     int           // Rows per page (default: 10)
	Lang         string        // Language when the browser states no preference (default: en)
	SecureCookie bool          // Mark the session cookie Secure (default: true outside dev)

	StartupRetries      int           // Attempts to reach the admin API at start (default: 5)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8081)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	env := getEnvOrDefault("ENV", "dev")
	return Config{
		AdminURL:            getEnvOrDefault("CONSOLE_ADMIN_URL", "http://localhost:8080"),
		Realm:               getEnvOrDefault("CONSOLE_REALM", "master"),
		ClientID:            os.Getenv("CONSOLE_CLIENT_ID"),
		ClientSecret:        os.Getenv("CONSOLE_CLIENT_SECRET"),
		BasePath:            os.Getenv("CONSOLE_BASE_PATH"),
		SessionTTL:          getEnvDurationOrDefault("CONSOLE_SESSION_TTL", 30*time.Minute),
		PageSize:            getEnvIntOrDefault("CONSOLE_PAGE_SIZE", 10),
		Lang:                getEnvOrDefault("CONSOLE_LANG", "en"),
		SecureCookie:        getEnvBoolOrDefault("CONSOLE_SECURE_COOKIE", env != "dev"),
		StartupRetries:      getEnvIntOrDefault("CONSOLE_STARTUP_RETRIES", 5),
		Env:                 env,
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8081),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
