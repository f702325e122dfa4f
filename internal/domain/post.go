package domain

import "time"

// SentimentLabel is the three-way classification of a post.
type SentimentLabel string

// Sentiment labels.
const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// Post represents a persisted, accepted post.
type Post struct {
	ID int64 `db:"id" json:"id"`
	// Content is the raw post text, not the normalized form.
	Content string `db:"content" json:"content"`
	// NormalizedContent is the canonical token string derived from Content.
	// It backs the dedup check and is never served raw to readers.
	NormalizedContent string         `db:"normalized_content" json:"-"`
	Sentiment         SentimentLabel `db:"sentiment" json:"sentiment"`
	// CreatedAt is source-supplied; no ordering relative to InsertedAt is
	// guaranteed.
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	InsertedAt time.Time `db:"inserted_at" json:"inserted_at"`
	Source     string    `db:"source" json:"source"`
}

// SourceCount is a per-source post count.
type SourceCount struct {
	Source string `db:"source" json:"source"`
	Count  int64  `db:"count" json:"count"`
}

// SentimentCount is a per-sentiment post count.
type SentimentCount struct {
	Sentiment SentimentLabel `db:"sentiment" json:"sentiment"`
	Count     int64          `db:"count" json:"count"`
}
