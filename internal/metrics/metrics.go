// Package metrics exposes Prometheus counters for the pipeline stages.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gin-gonic/gin"
)

// Ingester-side drop reasons.
const (
	ReasonParse    = "parse_error"
	ReasonNotPost  = "not_a_post"
	ReasonLanguage = "language"
	ReasonKeyword  = "no_keyword"
	ReasonPublish  = "publish_failed"
)

// Processor-side drop reasons.
const (
	ReasonEmpty      = "empty_body"
	ReasonDecode     = "decode_error"
	ReasonSchema     = "schema_error"
	ReasonModeration = "moderation"
	ReasonDuplicate  = "duplicate"
	ReasonStore      = "store_error"
)

var (
	// EventsReceived counts raw frames read from the stream.
	EventsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skypulse_events_received_total",
		Help: "Raw events received from the firehose.",
	})

	// EventsPublished counts canonical messages published to the queue.
	EventsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skypulse_events_published_total",
		Help: "Canonical messages published to the queue.",
	})

	// EventsDropped counts ingester drops by reason.
	EventsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skypulse_events_dropped_total",
		Help: "Events dropped by the ingester, by reason.",
	}, []string{"reason"})

	// MessagesProcessed counts queue deliveries handled by the processor.
	MessagesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skypulse_messages_processed_total",
		Help: "Queue deliveries handled by the processor.",
	})

	// PostsPersisted counts rows inserted.
	PostsPersisted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skypulse_posts_persisted_total",
		Help: "Posts persisted to the store.",
	})

	// MessagesDropped counts processor drops by reason.
	MessagesDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skypulse_messages_dropped_total",
		Help: "Messages dropped by the processor, by reason.",
	}, []string{"reason"})

	// MessagesDeadLettered counts messages routed to the dead-letter stream.
	MessagesDeadLettered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skypulse_messages_dead_lettered_total",
		Help: "Messages routed to the dead-letter stream.",
	})
)

// Handler returns a gin handler serving the Prometheus exposition format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
