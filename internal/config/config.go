package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

type Config struct {
	// HTTP Server
	Host string
	Port string

	// Display
	CurrencySymbol string

	// Logging
	LogLevel string

	// Limits
	RateLimitPerMinute int
	ShutdownTimeout    time.Duration
}

// fileConfig mirrors Config in TOML form.
type fileConfig struct {
	Host               string `toml:"host"`
	Port               string `toml:"port"`
	CurrencySymbol     string `toml:"currency_symbol"`
	LogLevel           string `toml:"log_level"`
	RateLimitPerMinute int    `toml:"rate_limit_per_minute"`
	ShutdownTimeout    string `toml:"shutdown_timeout"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		Host:               "127.0.0.1",
		Port:               "8081",
		CurrencySymbol:     core.DefaultCurrencySymbol,
		LogLevel:           "info",
		RateLimitPerMinute: 60,
		ShutdownTimeout:    10 * time.Second,
	}
}

// Load reads the configuration from the environment.
func Load() *Config {
	return applyEnv(Defaults())
}

// LoadFile reads a TOML file over the defaults, then applies the
// environment on top.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	d := Defaults()
	fc := fileConfig{
		Host:               d.Host,
		Port:               d.Port,
		CurrencySymbol:     d.CurrencySymbol,
		LogLevel:           d.LogLevel,
		RateLimitPerMinute: d.RateLimitPerMinute,
		ShutdownTimeout:    d.ShutdownTimeout.String(),
	}
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	timeout, err := time.ParseDuration(fc.ShutdownTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse config file %s: invalid shutdown_timeout '%s'", path, fc.ShutdownTimeout)
	}

	return applyEnv(&Config{
		Host:               fc.Host,
		Port:               fc.Port,
		CurrencySymbol:     fc.CurrencySymbol,
		LogLevel:           fc.LogLevel,
		RateLimitPerMinute: fc.RateLimitPerMinute,
		ShutdownTimeout:    timeout,
	}), nil
}

func applyEnv(c *Config) *Config {
	c.Host = getEnv("HOST", c.Host)
	c.Port = getEnv("PORT", c.Port)
	c.CurrencySymbol = getEnv("CURRENCY_SYMBOL", c.CurrencySymbol)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", c.RateLimitPerMinute)
	c.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
	return c
}

// Addr is the listen address in host:port form.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if strings.TrimSpace(c.Host) == "" {
		errors = append(errors, "host cannot be empty")
	}

	if strings.TrimSpace(c.CurrencySymbol) == "" {
		errors = append(errors, "currency symbol cannot be empty")
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if c.RateLimitPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1 request per minute", c.RateLimitPerMinute))
	} else if c.RateLimitPerMinute > 10000 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at most 10000 requests per minute", c.RateLimitPerMinute))
	}

	if c.ShutdownTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be at least 1 second", c.ShutdownTimeout))
	} else if c.ShutdownTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be at most 5 minutes", c.ShutdownTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
