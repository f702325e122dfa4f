package bootstrap

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/skypulse/internal/config"
	"github.com/jonesrussell/skypulse/internal/ingester"
	"github.com/jonesrussell/skypulse/internal/jetstream"
	"github.com/jonesrussell/skypulse/internal/logger"
	"github.com/jonesrussell/skypulse/internal/queue"
)

// IngesterComponents holds everything the ingester binary runs.
type IngesterComponents struct {
	Redis    *redis.Client
	Ingester *ingester.Ingester
}

// NewIngesterComponents wires the stream ingester: jetstream client, topic
// filter, and queue publisher.
func NewIngesterComponents(cfg *config.Config, log logger.Logger) (*IngesterComponents, error) {
	if len(cfg.Jetstream.Keywords) == 0 {
		return nil, fmt.Errorf("at least one target keyword is required")
	}

	client, queueCfg, err := SetupQueue(cfg, log)
	if err != nil {
		return nil, err
	}

	stream := jetstream.NewClient(subscriptionURL(cfg.Jetstream.URL, cfg.Jetstream.Cursor), log)
	filter := ingester.NewFilter(
		cfg.Jetstream.Collection,
		cfg.Jetstream.Language,
		cfg.Jetstream.Keywords,
		cfg.Jetstream.SourceTag,
	)
	publisher := queue.NewPublisher(client, queueCfg.Stream, log)

	log.Info("ingester wired",
		logger.String("collection", cfg.Jetstream.Collection),
		logger.String("language", cfg.Jetstream.Language),
		logger.Int("keywords", len(cfg.Jetstream.Keywords)))

	return &IngesterComponents{
		Redis:    client,
		Ingester: ingester.New(stream, publisher, filter, log),
	}, nil
}

// Close releases the ingester's connections.
func (c *IngesterComponents) Close() {
	_ = c.Redis.Close()
}

// subscriptionURL appends the optional replay cursor to the Jetstream URL.
func subscriptionURL(base, cursor string) string {
	if cursor == "" {
		return base
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "cursor=" + url.QueryEscape(cursor)
}
