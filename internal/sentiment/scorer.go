// Package sentiment scores normalized text with a lexicon-based compound
// scorer and maps scores to a three-way label.
package sentiment

import (
	"github.com/jonreiter/govader"

	"github.com/jonesrussell/skypulse/internal/domain"
)

// Default classification cutoffs, inclusive at the boundary.
const (
	DefaultPositiveCutoff = 0.4
	DefaultNegativeCutoff = -0.4
)

// Config holds scorer thresholds.
type Config struct {
	// PositiveCutoff: compound score >= cutoff classifies as positive.
	PositiveCutoff float64
	// NegativeCutoff: compound score <= cutoff classifies as negative.
	NegativeCutoff float64
}

// Scorer wraps a VADER analyzer with the threshold policy. It is immutable
// after construction and safe for concurrent use.
type Scorer struct {
	analyzer       *govader.SentimentIntensityAnalyzer
	positiveCutoff float64
	negativeCutoff float64
}

// New creates a Scorer. Zero-valued cutoffs fall back to the defaults.
func New(cfg Config) *Scorer {
	if cfg.PositiveCutoff == 0 {
		cfg.PositiveCutoff = DefaultPositiveCutoff
	}
	if cfg.NegativeCutoff == 0 {
		cfg.NegativeCutoff = DefaultNegativeCutoff
	}

	return &Scorer{
		analyzer:       govader.NewSentimentIntensityAnalyzer(),
		positiveCutoff: cfg.PositiveCutoff,
		negativeCutoff: cfg.NegativeCutoff,
	}
}

// Score returns the bounded compound score in [-1, 1] for text. Empty text
// scores 0.
func (s *Scorer) Score(text string) float64 {
	if text == "" {
		return 0
	}
	return s.analyzer.PolarityScores(text).Compound
}

// Label maps a compound score to a sentiment label. Cutoffs are inclusive.
func (s *Scorer) Label(score float64) domain.SentimentLabel {
	switch {
	case score >= s.positiveCutoff:
		return domain.SentimentPositive
	case score <= s.negativeCutoff:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

// Classify scores text and returns both the label and the raw score.
func (s *Scorer) Classify(text string) (domain.SentimentLabel, float64) {
	score := s.Score(text)
	return s.Label(score), score
}
