package bootstrap

import (
	"time"

	"github.com/jonesrussell/skypulse/internal/api"
	"github.com/jonesrussell/skypulse/internal/config"
	"github.com/jonesrussell/skypulse/internal/logger"
)

const defaultHTTPTimeout = 30 * time.Second

// HTTPComponents holds everything the stats API binary runs.
type HTTPComponents struct {
	DB     *DatabaseComponents
	Server *api.Server
}

// NewHTTPComponents wires the read-only stats API over the post store.
func NewHTTPComponents(cfg *config.Config, log logger.Logger) (*HTTPComponents, error) {
	dbComps, err := SetupDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	handler := api.NewHandler(dbComps.PostRepo, log)
	server := api.NewServer(handler, api.ServerConfig{
		Port:         cfg.Service.Port,
		ReadTimeout:  defaultHTTPTimeout,
		WriteTimeout: defaultHTTPTimeout,
		Debug:        cfg.Service.Debug,
	}, log)

	return &HTTPComponents{
		DB:     dbComps,
		Server: server,
	}, nil
}

// HTTPShutdownTimeout returns the timeout for graceful HTTP shutdown.
func HTTPShutdownTimeout() time.Duration {
	return defaultHTTPTimeout
}

// Close releases the API's connections.
func (c *HTTPComponents) Close() {
	_ = c.DB.DB.Close()
}
