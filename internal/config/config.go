package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName       = "PulseCheck"
	defaultAppEnv        = "development"
	defaultPort          = "3000"
	defaultLogLevel      = "info"
	defaultDataDir       = ".data"
	defaultMaxChecks     = 5
	defaultTokenTTL      = time.Hour
	defaultShutdownDelay = 10 * time.Second

	hashSecretEnvVar       = "HASH_SECRET"
	maxChecksEnvVar        = "MAX_CHECKS"
	tokenTTLEnvVar         = "TOKEN_TTL"
	shutdownSecondsEnvVar  = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar = "SHUTDOWN_TIMEOUT"
)

// Config captures application runtime configuration loaded from environment
// variables. It is populated once at startup and read-only afterwards.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	DataDir        string
	HashSecret     string
	MaxChecks      int
	TokenTTL       time.Duration
	RedisURL       string
	TLSCertFile    string
	TLSKeyFile     string
	ShutdownPeriod time.Duration
}

// Load reads configuration values from the environment and populates a Config
// instance. HASH_SECRET is the only value without a usable default.
func Load() (Config, error) {
	cfg := Config{
		AppName:        getEnv("APP_NAME", defaultAppName),
		AppEnv:         getEnv("APP_ENV", defaultAppEnv),
		Port:           getEnv("PORT", defaultPort),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DataDir:        getEnv("DATA_DIR", defaultDataDir),
		HashSecret:     os.Getenv(hashSecretEnvVar),
		MaxChecks:      defaultMaxChecks,
		TokenTTL:       defaultTokenTTL,
		RedisURL:       os.Getenv("REDIS_URL"),
		TLSCertFile:    os.Getenv("TLS_CERT_FILE"),
		TLSKeyFile:     os.Getenv("TLS_KEY_FILE"),
		ShutdownPeriod: defaultShutdownDelay,
	}

	if v := os.Getenv(maxChecksEnvVar); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("invalid %s: %q", maxChecksEnvVar, v)
		}
		cfg.MaxChecks = n
	}

	if v := os.Getenv(tokenTTLEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid %s: %q", tokenTTLEnvVar, v)
		}
		cfg.TokenTTL = d
	}

	if v := os.Getenv(shutdownSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownSecondsEnvVar, err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(shutdownDurationEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownDurationEnvVar, err)
		}
		cfg.ShutdownPeriod = d
	}

	if cfg.HashSecret == "" {
		return Config{}, fmt.Errorf("%s must be set", hashSecretEnvVar)
	}

	if (cfg.TLSCertFile == "") != (cfg.TLSKeyFile == "") {
		return Config{}, fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}

	return cfg, nil
}

// TLSEnabled reports whether the server should terminate TLS itself.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
