package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/skypulse/internal/logger"
)

// Disposition is the handler's verdict on a delivery.
type Disposition int

const (
	// Ack acknowledges the delivery: it was persisted or deliberately
	// dropped. Either way it must not be redelivered.
	Ack Disposition = iota
	// DeadLetter routes the delivery to the dead-letter stream and then
	// acknowledges it, for failures that redelivery would not fix on its
	// own (store errors).
	DeadLetter
)

// Handler processes one delivery body and decides its disposition.
type Handler interface {
	Handle(ctx context.Context, body []byte) Disposition
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, body []byte) Disposition

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, body []byte) Disposition {
	return f(ctx, body)
}

const (
	// readCount bounds entries per XREADGROUP call; deliveries are still
	// handled one at a time.
	readCount = 10
	// claimBatch bounds entries per XAUTOCLAIM call on startup.
	claimBatch = 100
)

// Consumer reads canonical messages from the queue stream one at a time and
// acknowledges each only after the handler has decided its fate. A crash
// between delivery and acknowledgment leaves the entry pending; the next
// consumer claims and reprocesses it, preserving at-least-once semantics.
type Consumer struct {
	client       *redis.Client
	stream       string
	group        string
	name         string
	blockTimeout time.Duration
	claimMinIdle time.Duration
	handler      Handler
	log          logger.Logger
}

// NewConsumer creates a consumer with a unique instance name within the
// group.
func NewConsumer(client *redis.Client, cfg Config, handler Handler, log logger.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       cfg.Stream,
		group:        cfg.Group,
		name:         "processor-" + uuid.NewString(),
		blockTimeout: cfg.BlockTimeout,
		claimMinIdle: cfg.ClaimMinIdle,
		handler:      handler,
		log:          log,
	}
}

// Run consumes deliveries until the context is cancelled. The in-flight
// delivery is always finished before returning.
func (c *Consumer) Run(ctx context.Context) error {
	if err := c.ensureGroup(ctx); err != nil {
		return err
	}

	// Reprocess deliveries a crashed consumer left pending before reading
	// new ones.
	if err := c.claimStale(ctx); err != nil {
		c.log.Warn("failed to claim stale deliveries", logger.Error(err))
	}

	c.log.Info("consumer started",
		logger.String("stream", c.stream),
		logger.String("group", c.group),
		logger.String("consumer", c.name))

	for {
		if ctx.Err() != nil {
			c.log.Info("consumer stopping")
			return nil
		}

		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.group,
			Consumer: c.name,
			Streams:  []string{c.stream, ">"},
			Count:    readCount,
			Block:    c.blockTimeout,
		}).Result()

		switch {
		case errors.Is(err, redis.Nil):
			continue
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			c.log.Info("consumer stopping")
			return nil
		case err != nil:
			c.log.Error("read from stream failed", logger.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				c.process(ctx, msg)
			}
		}
	}
}

// ensureGroup creates the consumer group, tolerating an existing one.
func (c *Consumer) ensureGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("create consumer group %s: %w", c.group, err)
	}
	return nil
}

// claimStale takes over pending entries whose consumer has been idle longer
// than the configured minimum, then processes them.
func (c *Consumer) claimStale(ctx context.Context) error {
	start := "0-0"
	for {
		messages, next, err := c.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   c.stream,
			Group:    c.group,
			Consumer: c.name,
			MinIdle:  c.claimMinIdle,
			Start:    start,
			Count:    claimBatch,
		}).Result()
		if err != nil {
			return fmt.Errorf("autoclaim pending entries: %w", err)
		}

		if len(messages) > 0 {
			c.log.Info("claimed stale deliveries", logger.Int("count", len(messages)))
		}

		for _, msg := range messages {
			c.process(ctx, msg)
		}

		if next == "0-0" || len(messages) == 0 {
			return nil
		}
		start = next
	}
}

// process handles one delivery and acknowledges it according to the
// handler's disposition.
func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	body := extractPayload(msg)

	disposition := c.handler.Handle(ctx, body)

	if disposition == DeadLetter {
		if err := c.deadLetter(ctx, msg); err != nil {
			c.log.Error("dead-letter failed, delivery stays pending",
				logger.String("id", msg.ID),
				logger.Error(err))
			return
		}
	}

	if err := c.client.XAck(ctx, c.stream, c.group, msg.ID).Err(); err != nil {
		// The entry stays pending and will be claimed and reprocessed;
		// duplicate persistence is prevented by the dedup gate.
		c.log.Error("ack failed", logger.String("id", msg.ID), logger.Error(err))
	}
}

// deadLetter copies the delivery to the dead-letter stream.
func (c *Consumer) deadLetter(ctx context.Context, msg redis.XMessage) error {
	values := map[string]any{
		payloadField: extractPayload(msg),
		"origin_id":  msg.ID,
		"failed_at":  time.Now().UTC().Format(time.RFC3339),
	}

	err := c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: DeadLetterStream(c.stream),
		Values: values,
	}).Err()
	if err != nil {
		return fmt.Errorf("append to dead-letter stream: %w", err)
	}
	return nil
}

// extractPayload pulls the message body out of a stream entry. Entries
// without a payload field decode to an empty body, which the handler drops.
func extractPayload(msg redis.XMessage) []byte {
	raw, ok := msg.Values[payloadField]
	if !ok {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil
	}
	return []byte(s)
}
