// Package config reads the configuration of the accounting service from
// the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
)

// ErrInvalid is wrapped by the error returned from Validate.
var ErrInvalid = errors.New("configuration validation failed")

var drivers = []string{"sqlite", "postgres"}

type Config struct {
	// HTTP Server
	ListenAddress  string
	APIURL         *url.URL
	RequestTimeout time.Duration
	CORSOrigins    []string
	EnablePprof    bool
	GinMode        string

	// Database
	DBDriver       string
	DBDSN          string
	DBMaxOpenConns int
	SeedCategories bool

	// Logging
	LogFormat string
	LogLevel  zerolog.Level

	// problems found while parsing the environment
	problems []string
}

// Load reads the configuration from the environment. Variables set in a
// .env file in the working directory are added to the environment first,
// existing variables take precedence.
//
// Values that cannot be parsed are reported by Validate.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddress: getEnv("LISTEN_ADDRESS", ":8080"),
		GinMode:       getEnv("GIN_MODE", "release"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		DBDSN:         getEnv("DB_DSN", "data/accounting.db"),
		LogFormat:     getEnv("LOG_FORMAT", ""),
		CORSOrigins:   strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
	}

	apiURL := getEnv("API_URL", "http://localhost:8080/api")
	u, err := url.Parse(apiURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		cfg.problems = append(cfg.problems, fmt.Sprintf("invalid API_URL '%s': must be an absolute URL", apiURL))
	} else {
		u.Path = strings.TrimSuffix(u.Path, "/")
		cfg.APIURL = u
	}

	cfg.RequestTimeout = cfg.getEnvDuration("REQUEST_TIMEOUT", 10*time.Second)
	cfg.EnablePprof = cfg.getEnvBool("ENABLE_PPROF", false)
	cfg.DBMaxOpenConns = cfg.getEnvInt("DB_MAX_OPEN_CONNS", 10)
	cfg.SeedCategories = cfg.getEnvBool("SEED_CATEGORIES", true)

	defaultLevel := zerolog.InfoLevel
	if cfg.GinMode == "debug" {
		defaultLevel = zerolog.DebugLevel
	}
	cfg.LogLevel = defaultLevel
	if value := os.Getenv("LOG_LEVEL"); value != "" {
		level, err := zerolog.ParseLevel(strings.ToLower(value))
		if err != nil {
			cfg.problems = append(cfg.problems, fmt.Sprintf("invalid LOG_LEVEL '%s'", value))
		} else {
			cfg.LogLevel = level
		}
	}

	return cfg
}

// Validate validates the configuration and returns an error listing all problems
func (c *Config) Validate() error {
	errs := slices.Clone(c.problems)

	if c.ListenAddress == "" {
		errs = append(errs, "LISTEN_ADDRESS cannot be empty")
	}

	if c.APIURL == nil && len(c.problems) == 0 {
		errs = append(errs, "API_URL must be set")
	}

	if !slices.Contains(drivers, c.DBDriver) {
		errs = append(errs, fmt.Sprintf("invalid DB_DRIVER '%s': must be one of %v", c.DBDriver, drivers))
	}

	if c.DBDSN == "" {
		errs = append(errs, "DB_DSN cannot be empty")
	}

	if c.DBMaxOpenConns < 1 {
		errs = append(errs, fmt.Sprintf("invalid DB_MAX_OPEN_CONNS %d: must be at least 1", c.DBMaxOpenConns))
	}

	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("invalid REQUEST_TIMEOUT %v: must be positive", c.RequestTimeout))
	}

	if c.LogFormat != "" && c.LogFormat != "human" && c.LogFormat != "json" {
		errs = append(errs, fmt.Sprintf("invalid LOG_FORMAT '%s': must be 'human' or 'json'", c.LogFormat))
	}

	if !slices.Contains([]string{"debug", "release", "test"}, c.GinMode) {
		errs = append(errs, fmt.Sprintf("invalid GIN_MODE '%s': must be one of debug, release, test", c.GinMode))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n- %s", ErrInvalid, strings.Join(errs, "\n- "))
	}

	return nil
}

// HumanLogs reports whether logs are written for humans instead of as JSON.
func (c *Config) HumanLogs() bool {
	if c.LogFormat == "" {
		return c.GinMode == "debug"
	}
	return c.LogFormat == "human"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	i, err := strconv.Atoi(value)
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("invalid %s '%s': must be a number", key, value))
		return defaultValue
	}
	return i
}

func (c *Config) getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("invalid %s '%s': must be true or false", key, value))
		return defaultValue
	}
	return b
}

func (c *Config) getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("invalid %s '%s': must be a duration like 10s", key, value))
		return defaultValue
	}
	return d
}
