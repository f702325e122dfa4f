// Package processor consumes canonical messages from the queue and runs them
// through moderation, normalization, sentiment classification, and dedup
// before persisting.
package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jonesrussell/skypulse/internal/domain"
	"github.com/jonesrussell/skypulse/internal/logger"
	"github.com/jonesrussell/skypulse/internal/metrics"
	"github.com/jonesrussell/skypulse/internal/moderation"
	"github.com/jonesrussell/skypulse/internal/normalize"
	"github.com/jonesrussell/skypulse/internal/queue"
	"github.com/jonesrussell/skypulse/internal/sentiment"
)

// Outcome describes what happened to one delivery.
type Outcome string

const (
	// OutcomePersisted: the post was stored.
	OutcomePersisted Outcome = "persisted"
	// OutcomeDropped: the message was discarded deliberately (empty,
	// malformed, moderated, or duplicate). Dropped messages are
	// acknowledged; redelivery would reach the same verdict.
	OutcomeDropped Outcome = "dropped"
	// OutcomeFailed: the store rejected the post. The delivery goes to the
	// dead-letter stream for operator replay.
	OutcomeFailed Outcome = "failed"
)

// Store persists accepted posts.
type Store interface {
	InsertUnlessDuplicate(ctx context.Context, post *domain.Post, window time.Duration) (bool, error)
}

// Processor is the content pipeline. All stages are pure or internally
// synchronized, so one Processor may back any number of queue consumers.
type Processor struct {
	store       Store
	moderation  *moderation.Filter
	normalizer  *normalize.Normalizer
	scorer      *sentiment.Scorer
	dedupWindow time.Duration
	log         logger.Logger
}

// New creates a Processor.
func New(
	store Store,
	mod *moderation.Filter,
	norm *normalize.Normalizer,
	scorer *sentiment.Scorer,
	dedupWindow time.Duration,
	log logger.Logger,
) *Processor {
	return &Processor{
		store:       store,
		moderation:  mod,
		normalizer:  norm,
		scorer:      scorer,
		dedupWindow: dedupWindow,
		log:         log,
	}
}

// Handle implements queue.Handler. It runs one delivery through the full
// pipeline and maps the outcome to a queue disposition: everything except a
// store failure is acknowledged.
func (p *Processor) Handle(ctx context.Context, body []byte) queue.Disposition {
	outcome := p.Process(ctx, body)
	if outcome == OutcomeFailed {
		return queue.DeadLetter
	}
	return queue.Ack
}

// Process runs the pipeline stages in order and returns the outcome. Stage
// order matters: moderation sees the raw text, the scorer and the dedup gate
// see the normalized text.
func (p *Processor) Process(ctx context.Context, body []byte) Outcome {
	metrics.MessagesProcessed.Inc()

	msg, ok := p.decode(body)
	if !ok {
		return OutcomeDropped
	}

	if p.moderation.Flagged(msg.Text) {
		metrics.MessagesDropped.WithLabelValues(metrics.ReasonModeration).Inc()
		p.log.Warn("message rejected by moderation",
			logger.String("source", msg.Source),
			logger.Int("text_len", len(msg.Text)))
		return OutcomeDropped
	}

	normalized := p.normalizer.Normalize(msg.Text)
	label, score := p.scorer.Classify(normalized)

	createdAt, err := time.Parse(time.RFC3339, msg.CreatedAt)
	if err != nil {
		metrics.MessagesDropped.WithLabelValues(metrics.ReasonSchema).Inc()
		p.log.Warn("message has unparseable timestamp",
			logger.String("created_at", msg.CreatedAt),
			logger.Error(err))
		return OutcomeDropped
	}

	post := &domain.Post{
		Content:           msg.Text,
		NormalizedContent: normalized,
		Sentiment:         label,
		CreatedAt:         createdAt,
		Source:            msg.Source,
	}

	inserted, err := p.store.InsertUnlessDuplicate(ctx, post, p.dedupWindow)
	if err != nil {
		metrics.MessagesDropped.WithLabelValues(metrics.ReasonStore).Inc()
		metrics.MessagesDeadLettered.Inc()
		p.log.Error("failed to persist post", logger.Error(err))
		return OutcomeFailed
	}
	if !inserted {
		metrics.MessagesDropped.WithLabelValues(metrics.ReasonDuplicate).Inc()
		p.log.Info("duplicate post skipped",
			logger.String("source", msg.Source))
		return OutcomeDropped
	}

	metrics.PostsPersisted.Inc()
	p.log.Info("post persisted",
		logger.Int64("id", post.ID),
		logger.String("sentiment", string(label)),
		logger.Float64("score", score),
		logger.String("source", msg.Source))
	return OutcomePersisted
}

// decode validates the delivery body against the canonical message contract.
// Empty bodies are dropped silently; anything else malformed is logged.
func (p *Processor) decode(body []byte) (domain.CanonicalMessage, bool) {
	var msg domain.CanonicalMessage

	if len(bytes.TrimSpace(body)) == 0 {
		metrics.MessagesDropped.WithLabelValues(metrics.ReasonEmpty).Inc()
		return msg, false
	}

	if err := json.Unmarshal(body, &msg); err != nil {
		metrics.MessagesDropped.WithLabelValues(metrics.ReasonDecode).Inc()
		p.log.Warn("failed to decode message", logger.Error(err))
		return msg, false
	}

	if strings.TrimSpace(msg.Text) == "" || msg.CreatedAt == "" || msg.Source == "" {
		metrics.MessagesDropped.WithLabelValues(metrics.ReasonSchema).Inc()
		p.log.Warn("message missing required fields",
			logger.Bool("has_text", strings.TrimSpace(msg.Text) != ""),
			logger.Bool("has_created_at", msg.CreatedAt != ""),
			logger.Bool("has_source", msg.Source != ""))
		return msg, false
	}

	return msg, true
}
