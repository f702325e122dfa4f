package bootstrap

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/skypulse/internal/config"
	"github.com/jonesrussell/skypulse/internal/logger"
	"github.com/jonesrussell/skypulse/internal/moderation"
	"github.com/jonesrussell/skypulse/internal/normalize"
	"github.com/jonesrussell/skypulse/internal/processor"
	"github.com/jonesrussell/skypulse/internal/queue"
	"github.com/jonesrussell/skypulse/internal/sentiment"
)

// ProcessorComponents holds everything the processor binary runs.
type ProcessorComponents struct {
	DB       *DatabaseComponents
	Redis    *redis.Client
	Consumer *queue.Consumer
}

// NewProcessorComponents wires the content processor: moderation wordlist,
// normalizer, sentiment scorer, store, and the queue consumer that drives
// them.
func NewProcessorComponents(cfg *config.Config, log logger.Logger) (*ProcessorComponents, error) {
	dbComps, err := SetupDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	client, queueCfg, err := SetupQueue(cfg, log)
	if err != nil {
		_ = dbComps.DB.Close()
		return nil, err
	}

	mod, err := moderation.Load(cfg.Pipeline.WordlistPath)
	if err != nil {
		_ = dbComps.DB.Close()
		_ = client.Close()
		return nil, fmt.Errorf("load moderation wordlist: %w", err)
	}
	log.Info("moderation wordlist loaded", logger.Int("terms", mod.TermCount()))

	scorer := sentiment.New(sentiment.Config{
		PositiveCutoff: cfg.Pipeline.PositiveCutoff,
		NegativeCutoff: cfg.Pipeline.NegativeCutoff,
	})

	pipeline := processor.New(
		dbComps.PostRepo,
		mod,
		normalize.New(),
		scorer,
		cfg.Pipeline.DedupWindow,
		log,
	)

	consumer := queue.NewConsumer(client, queueCfg, pipeline, log)

	return &ProcessorComponents{
		DB:       dbComps,
		Redis:    client,
		Consumer: consumer,
	}, nil
}

// Close releases the processor's connections.
func (c *ProcessorComponents) Close() {
	_ = c.Redis.Close()
	_ = c.DB.DB.Close()
}
