// Package queue provides the durable queue between the ingester and the
// processor, backed by Redis Streams. The stream gives persistence across
// restarts; the consumer group gives at-least-once delivery with explicit
// acknowledgment.
package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds Redis queue configuration.
type Config struct {
	Address  string
	Password string
	DB       int
	Stream   string
	Group    string
	// BlockTimeout bounds how long a consumer read blocks waiting for a
	// delivery.
	BlockTimeout time.Duration
	// ClaimMinIdle is the minimum pending-entry idle time before a restarted
	// consumer claims deliveries left by a crashed one.
	ClaimMinIdle time.Duration
}

// ErrEmptyAddress is returned when the Redis address is not configured.
var ErrEmptyAddress = errors.New("redis address is required")

// connectionTimeout is the timeout for verifying the Redis connection.
const connectionTimeout = 5 * time.Second

// NewClient creates a Redis client and verifies the connection.
func NewClient(cfg Config) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, ErrEmptyAddress
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// DeadLetterStream returns the dead-letter stream name for a source stream.
func DeadLetterStream(stream string) string {
	return stream + ":dead-letter"
}
