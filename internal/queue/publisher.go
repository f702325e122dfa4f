package queue

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/skypulse/internal/domain"
	"github.com/jonesrussell/skypulse/internal/logger"
)

// payloadField is the stream entry field carrying the canonical message body.
const payloadField = "payload"

// Publisher appends canonical messages to the queue stream. Entries are
// persisted by Redis before XADD returns, so a successful publish is durable.
type Publisher struct {
	client *redis.Client
	stream string
	log    logger.Logger
}

// NewPublisher creates a publisher for the given stream.
func NewPublisher(client *redis.Client, stream string, log logger.Logger) *Publisher {
	return &Publisher{client: client, stream: stream, log: log}
}

// Publish appends one canonical message to the stream.
func (p *Publisher) Publish(ctx context.Context, msg domain.CanonicalMessage) error {
	body, err := msg.Encode()
	if err != nil {
		return fmt.Errorf("encode canonical message: %w", err)
	}

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{payloadField: body},
	}).Err()
	if err != nil {
		return fmt.Errorf("publish to stream %s: %w", p.stream, err)
	}

	return nil
}

// Ping verifies the queue connection, used when recovering from a publish
// failure.
func (p *Publisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
