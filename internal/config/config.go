// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// RateLimitEnabled indicates whether per-IP rate limiting of secured routes is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per client IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size of the per-IP rate limiter.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int

	// KMSKeyURI is the gocloud.dev secrets URI that seals SecureSecretKey. Empty means
	// the private key is configured in plaintext.
	KMSKeyURI string

	// SecureEnabled is the master switch of secure transmission.
	SecureEnabled bool
	// SecureHeaderKeyName is the header carrying the wrapped session key.
	SecureHeaderKeyName string
	// SecureHeaderKeyValue is the fallback SM4 key used when a request negotiates none.
	SecureHeaderKeyValue string
	// SecureSecretKey is the server SM2 private key, or its KMS-sealed form when
	// KMSKeyURI is set.
	SecureSecretKey string
	// SecureSignTimeoutSeconds is the replay window of signed requests.
	SecureSignTimeoutSeconds int64
	// SecureSignPrefix is mixed into every signature.
	SecureSignPrefix string
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Rate Limiting (IP-based)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "secure_transmission"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),

		// KMS configuration
		KMSKeyURI: env.GetString("KMS_KEY_URI", ""),

		// Secure transmission
		SecureEnabled:            env.GetBool("SECURE_ENABLED", false),
		SecureHeaderKeyName:      env.GetString("SECURE_HEADER_ENCRYPT_KEY_NAME", "encrypt-key"),
		SecureHeaderKeyValue:     env.GetString("SECURE_HEADER_ENCRYPT_KEY_VALUE", ""),
		SecureSecretKey:          env.GetString("SECURE_SECRET_KEY", ""),
		SecureSignTimeoutSeconds: int64(env.GetInt("SECURE_SIGN_TIMEOUT_SECONDS", 300)),
		SecureSignPrefix:         env.GetString("SECURE_SIGN_PREFIX", ""),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
