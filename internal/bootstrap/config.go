// Package bootstrap wires shared components for the skypulse binaries.
package bootstrap

import (
	"fmt"

	"github.com/jonesrussell/skypulse/internal/config"
	"github.com/jonesrussell/skypulse/internal/logger"
)

// LoadConfig loads configuration. A missing config file is fine; defaults
// and environment variables alone are enough to run.
func LoadConfig() (*config.Config, error) {
	configPath := config.GetConfigPath("config.yml")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// CreateLogger creates a logger instance from configuration, tagged with the
// service component name.
func CreateLogger(cfg *config.Config, component string) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(
		logger.String("service", cfg.Service.Name),
		logger.String("component", component),
	), nil
}
