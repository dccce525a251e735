package app

import (
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/realmadmin/pkg/jwtx"
)

type Config struct {
	Issuer         string // Optional: issuer claim for tokens (default: realmadmin)
	DatabaseFile   string // Optional: path to SQLite database file (default: ./admin.db)
	PepperFile     string // Optional: path to the client secret pepper (default: ./pepper)
	SigningKeyFile string // Optional: PEM Ed25519 key; empty means a fresh key every start (default: ./signing.pem)

	BootstrapClientID     string // Optional: first client, created when none exist
	BootstrapClientSecret string // Optional: secret for the bootstrap client
	DefaultRealm          string // Realm seeded with default roles (default: master)

	AccessTokenTTL      time.Duration // Access token lifetime (default: 15m)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:                getEnvOrDefault("ADMIN_ISSUER", "realmadmin"),
		DatabaseFile:          getEnvOrDefault("ADMIN_DATABASE_FILE", "admin.db"),
		PepperFile:            getEnvOrDefault("ADMIN_PEPPER_FILE", "pepper"),
		SigningKeyFile:        getEnvOrDefault("ADMIN_SIGNING_KEY_FILE", "signing.pem"),
		BootstrapClientID:     os.Getenv("ADMIN_BOOTSTRAP_CLIENT_ID"),
		BootstrapClientSecret: os.Getenv("ADMIN_BOOTSTRAP_CLIENT_SECRET"),
		DefaultRealm:          getEnvOrDefault("ADMIN_DEFAULT_REALM", "master"),
		AccessTokenTTL:        getEnvDurationOrDefault("ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		Env:                   getEnvOrDefault("ENV", "dev"),
		LogLevel:              getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:             getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                  getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:   getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
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
