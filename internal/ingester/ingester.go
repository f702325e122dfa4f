// Package ingester reads the firehose, filters it to the topic of
// interest, and republishes matching posts to the durable queue.
package ingester

import (
	"context"
	"time"

	"github.com/jonesrussell/skypulse/internal/domain"
	"github.com/jonesrussell/skypulse/internal/jetstream"
	"github.com/jonesrussell/skypulse/internal/logger"
	"github.com/jonesrussell/skypulse/internal/metrics"
	"github.com/jonesrussell/skypulse/internal/retry"
)

// Publisher is the queue side of the ingester.
type Publisher interface {
	Publish(ctx context.Context, msg domain.CanonicalMessage) error
	Ping(ctx context.Context) error
}

// Ingester owns one logical stream subscription. Frames are handled one at
// a time: the next frame is not read until the current one is filtered and,
// if accepted, published.
type Ingester struct {
	stream    *jetstream.Client
	publisher Publisher
	filter    *Filter
	log       logger.Logger
}

// New creates an Ingester.
func New(stream *jetstream.Client, publisher Publisher, filter *Filter, log logger.Logger) *Ingester {
	return &Ingester{
		stream:    stream,
		publisher: publisher,
		filter:    filter,
		log:       log,
	}
}

// Run subscribes and processes frames until the context is cancelled or the
// stream connection is lost. A lost stream is fatal to the subscription;
// the supervisor restarts the process, which resumes from "now".
func (i *Ingester) Run(ctx context.Context) error {
	conn, err := i.stream.Connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Closing the connection unblocks the pending read on shutdown.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	i.log.Info("listening for stream events")

	for {
		frame, readErr := conn.Read()
		if readErr != nil {
			if ctx.Err() != nil {
				i.log.Info("ingester stopping")
				return nil
			}
			return readErr
		}

		metrics.EventsReceived.Inc()
		i.handleFrame(ctx, frame)
	}
}

// handleFrame filters one frame and publishes the canonical message when it
// passes.
func (i *Ingester) handleFrame(ctx context.Context, frame []byte) {
	msg, reason, ok := i.filter.Apply(frame)
	if !ok {
		metrics.EventsDropped.WithLabelValues(reason).Inc()
		if reason == metrics.ReasonParse {
			i.log.Error("failed to decode stream frame")
		}
		return
	}

	if err := i.publisher.Publish(ctx, msg); err != nil {
		// The event is dropped, not buffered; recover the queue channel so
		// the stream loop can keep going.
		metrics.EventsDropped.WithLabelValues(metrics.ReasonPublish).Inc()
		i.log.Error("publish failed, dropping event and recovering queue connection",
			logger.Error(err))
		i.recoverQueue(ctx)
		return
	}

	metrics.EventsPublished.Inc()
	i.log.Info("published post",
		logger.String("created_at", msg.CreatedAt),
		logger.Int("text_len", len(msg.Text)))
}

// recoverQueue waits for the queue connection to come back so subsequent
// publishes can succeed. It never gives up while the context is alive.
func (i *Ingester) recoverQueue(ctx context.Context) {
	for ctx.Err() == nil {
		err := retry.Retry(ctx, retry.Config{
			MaxAttempts:  5,
			InitialDelay: time.Second,
			MaxDelay:     30 * time.Second,
			Multiplier:   2.0,
			IsRetryable:  func(error) bool { return true },
		}, func() error {
			return i.publisher.Ping(ctx)
		})
		if err == nil {
			i.log.Info("queue connection recovered")
			return
		}
		i.log.Warn("queue still unreachable, retrying", logger.Error(err))
	}
}
