// Package cli provides common CLI initialization utilities shared by the
// fintrack commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"fintrack/internal/config"
	"fintrack/internal/log"
)

// Runner is a server that can be started and gracefully stopped.
type Runner interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// SetupLogger initializes structured logging at the given level and sets
// it as the default logger.
func SetupLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := log.DefaultConfig()
	cfg.Level = lvl
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger, nil
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from path (or the environment
// alone when path is empty), applies overrides in order and validates the
// result.
func LoadAndValidateConfig(path string, overrides ...func(*config.Config)) (*config.Config, error) {
	cfg := config.Load()
	if path != "" {
		var err error
		if cfg, err = config.LoadFile(path); err != nil {
			return nil, err
		}
	}
	for _, o := range overrides {
		o(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Serve runs r until ctx is cancelled or exit is closed, then shuts it
// down within timeout. A nil exit channel is never ready.
func Serve(ctx context.Context, logger *log.Logger, r Runner, exit <-chan struct{}, timeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := r.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-gctx.Done():
			logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown)
		case <-exit:
			logger.Info("Exit requested", log.FieldOperation, log.OpShutdown)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := r.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err.Error())
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("Server stopped gracefully")
		return nil
	})

	return g.Wait()
}
