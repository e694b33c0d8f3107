package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Host:               "127.0.0.1",
		Port:               "8081",
		CurrencySymbol:     "₱",
		LogLevel:           "info",
		RateLimitPerMinute: 60,
		ShutdownTimeout:    10 * time.Second,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range low",
			mutate:      func(c *Config) { c.Port = "0" },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "empty host",
			mutate:      func(c *Config) { c.Host = " " },
			wantErr:     true,
			errorString: "host cannot be empty",
		},
		{
			name:        "empty currency",
			mutate:      func(c *Config) { c.CurrencySymbol = "" },
			wantErr:     true,
			errorString: "currency symbol cannot be empty",
		},
		{
			name:        "unknown log level",
			mutate:      func(c *Config) { c.LogLevel = "loud" },
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
		{
			name:        "rate limit too low",
			mutate:      func(c *Config) { c.RateLimitPerMinute = 0 },
			wantErr:     true,
			errorString: "invalid rate limit 0: must be at least 1 request per minute",
		},
		{
			name:        "rate limit too high",
			mutate:      func(c *Config) { c.RateLimitPerMinute = 20000 },
			wantErr:     true,
			errorString: "invalid rate limit 20000",
		},
		{
			name:        "shutdown timeout too short",
			mutate:      func(c *Config) { c.ShutdownTimeout = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid shutdown timeout 100ms: must be at least 1 second",
		},
		{
			name:        "shutdown timeout too long",
			mutate:      func(c *Config) { c.ShutdownTimeout = time.Hour },
			wantErr:     true,
			errorString: "must be at most 5 minutes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Validate() expected error but got none")
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Validate() error = %v, expected to contain %v", err, tt.errorString)
				}
			} else if err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := Config{Port: "x", LogLevel: "nope"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"invalid port", "host cannot be empty", "currency symbol", "invalid log level", "invalid rate limit", "invalid shutdown timeout"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		clearEnv(t)

		cfg := Load()

		if cfg.Host != "127.0.0.1" {
			t.Errorf("Expected default host 127.0.0.1, got %s", cfg.Host)
		}
		if cfg.Port != "8081" {
			t.Errorf("Expected default port 8081, got %s", cfg.Port)
		}
		if cfg.CurrencySymbol != "₱" {
			t.Errorf("Expected default currency ₱, got %s", cfg.CurrencySymbol)
		}
		if cfg.LogLevel != "info" {
			t.Errorf("Expected default log level info, got %s", cfg.LogLevel)
		}
		if cfg.RateLimitPerMinute != 60 {
			t.Errorf("Expected default rate limit 60, got %d", cfg.RateLimitPerMinute)
		}
		if cfg.ShutdownTimeout != 10*time.Second {
			t.Errorf("Expected default shutdown timeout 10s, got %v", cfg.ShutdownTimeout)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("defaults should validate: %v", err)
		}
		if cfg.Addr() != "127.0.0.1:8081" {
			t.Errorf("Addr() = %s", cfg.Addr())
		}
	})

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("HOST", "0.0.0.0")
		t.Setenv("PORT", "9090")
		t.Setenv("CURRENCY_SYMBOL", "$")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("RATE_LIMIT_PER_MINUTE", "120")
		t.Setenv("SHUTDOWN_TIMEOUT", "30s")

		cfg := Load()

		if cfg.Addr() != "0.0.0.0:9090" {
			t.Errorf("Addr() = %s", cfg.Addr())
		}
		if cfg.CurrencySymbol != "$" || cfg.LogLevel != "debug" {
			t.Errorf("unexpected display/log config: %+v", cfg)
		}
		if cfg.RateLimitPerMinute != 120 {
			t.Errorf("Expected rate limit 120, got %d", cfg.RateLimitPerMinute)
		}
		if cfg.ShutdownTimeout != 30*time.Second {
			t.Errorf("Expected shutdown timeout 30s, got %v", cfg.ShutdownTimeout)
		}
	})

	t.Run("unparseable numbers fall back", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")
		t.Setenv("SHUTDOWN_TIMEOUT", "soon")

		cfg := Load()

		if cfg.RateLimitPerMinute != 60 {
			t.Errorf("Expected fallback rate limit 60, got %d", cfg.RateLimitPerMinute)
		}
		if cfg.ShutdownTimeout != 10*time.Second {
			t.Errorf("Expected fallback timeout 10s, got %v", cfg.ShutdownTimeout)
		}
	})
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"HOST", "PORT", "CURRENCY_SYMBOL", "LOG_LEVEL", "RATE_LIMIT_PER_MINUTE", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fintrack.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("file values over defaults", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, `
port = "9100"
currency_symbol = "€"
rate_limit_per_minute = 30
shutdown_timeout = "20s"
`)
		cfg, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}
		if cfg.Host != "127.0.0.1" {
			t.Errorf("Host = %s, want default", cfg.Host)
		}
		if cfg.Port != "9100" || cfg.CurrencySymbol != "€" {
			t.Errorf("unexpected config: %+v", cfg)
		}
		if cfg.RateLimitPerMinute != 30 {
			t.Errorf("RateLimitPerMinute = %d, want 30", cfg.RateLimitPerMinute)
		}
		if cfg.ShutdownTimeout != 20*time.Second {
			t.Errorf("ShutdownTimeout = %v, want 20s", cfg.ShutdownTimeout)
		}
	})

	t.Run("environment beats file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "9200")
		path := writeFile(t, `port = "9100"`)

		cfg, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}
		if cfg.Port != "9200" {
			t.Errorf("Port = %s, want 9200 from env", cfg.Port)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})

	t.Run("malformed toml", func(t *testing.T) {
		if _, err := LoadFile(writeFile(t, "port = ")); err == nil {
			t.Fatal("expected parse error")
		}
	})

	t.Run("bad duration", func(t *testing.T) {
		clearEnv(t)
		_, err := LoadFile(writeFile(t, `shutdown_timeout = "whenever"`))
		if err == nil || !strings.Contains(err.Error(), "invalid shutdown_timeout") {
			t.Fatalf("LoadFile() error = %v", err)
		}
	})
}
