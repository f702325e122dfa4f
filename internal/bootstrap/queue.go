package bootstrap

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/skypulse/internal/config"
	"github.com/jonesrussell/skypulse/internal/logger"
	"github.com/jonesrussell/skypulse/internal/queue"
)

// SetupQueue connects to Redis and returns the client plus the queue config
// used by publishers and consumers.
func SetupQueue(cfg *config.Config, log logger.Logger) (*redis.Client, queue.Config, error) {
	queueCfg := queue.Config{
		Address:      cfg.Queue.Address,
		Password:     cfg.Queue.Password,
		DB:           cfg.Queue.DB,
		Stream:       cfg.Queue.Stream,
		Group:        cfg.Queue.Group,
		BlockTimeout: cfg.Queue.BlockTimeout,
		ClaimMinIdle: cfg.Queue.ClaimMinIdle,
	}

	log.Info("connecting to redis",
		logger.String("address", queueCfg.Address),
		logger.String("stream", queueCfg.Stream))

	client, err := queue.NewClient(queueCfg)
	if err != nil {
		return nil, queue.Config{}, fmt.Errorf("connect to redis: %w", err)
	}

	log.Info("queue ready")
	return client, queueCfg, nil
}
