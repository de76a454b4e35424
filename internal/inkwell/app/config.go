package app

import (
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/inkwell/pkg/httpx"
	"github.com/aussiebroadwan/inkwell/pkg/jwtx"
)

type Config struct {
	Issuer         string // Optional: token issuer and authenticator app label (default: Inkwell)
	BootstrapToken string // Optional: token required to perform bootstrap

	VaultKey       string // Optional: key material for sealing MFA secrets; overrides VaultKeyFile
	VaultKeyFile   string // Optional: file holding vault key material, created if missing (default: ./vault.key)
	SigningKeyFile string // Optional: Ed25519 PEM for access tokens; empty means an ephemeral key
	DatabaseFile   string // Optional: path to SQLite database file (default: ./inkwell.db)
	PepperFile     string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	AccessTokenTTL      time.Duration // Access token lifetime (default: 15m)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	RateLimits httpx.RateLimits
}

func LoadConfig() Config {
	return Config{
		Issuer:              getEnvOrDefault("INKWELL_ISSUER", "Inkwell"),
		BootstrapToken:      os.Getenv("BOOTSTRAP_TOKEN"), // Optional: if set, required to perform bootstrap
		VaultKey:            os.Getenv("INKWELL_VAULT_KEY"),
		VaultKeyFile:        getEnvOrDefault("INKWELL_VAULT_KEY_FILE", "vault.key"),
		SigningKeyFile:      os.Getenv("INKWELL_SIGNING_KEY_FILE"),
		DatabaseFile:        getEnvOrDefault("INKWELL_DATABASE_FILE", "inkwell.db"),
		PepperFile:          getEnvOrDefault("INKWELL_PEPPER_FILE", "pepper"),
		AccessTokenTTL:      getEnvDurationOrDefault("ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		RateLimits:          httpx.RateLimitsFromEnv(os.Getenv),
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

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
