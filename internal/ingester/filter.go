package ingester

import (
	"encoding/json"
	"strings"

	"github.com/jonesrussell/skypulse/internal/domain"
	"github.com/jonesrussell/skypulse/internal/metrics"
)

// Filter decides whether a raw stream frame becomes a canonical message.
// It is pure and immutable: construct once, share freely.
type Filter struct {
	collection string
	language   string
	keywords   []string
	sourceTag  string
}

// NewFilter creates a filter. Keywords match case-insensitively and ignore
// accents; the configured order is preserved and the first match
// short-circuits.
func NewFilter(collection, language string, keywords []string, sourceTag string) *Filter {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = foldForMatch(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}

	return &Filter{
		collection: collection,
		language:   language,
		keywords:   lowered,
		sourceTag:  sourceTag,
	}
}

// Apply parses and filters one frame. It returns the canonical message and
// true when the frame passes every filter, otherwise false with the drop
// reason.
func (f *Filter) Apply(frame []byte) (domain.CanonicalMessage, string, bool) {
	var event domain.StreamEvent
	if err := json.Unmarshal(frame, &event); err != nil {
		return domain.CanonicalMessage{}, metrics.ReasonParse, false
	}

	// Frames without commit.record are likes, follows, identity events and
	// so on; not an error, just not a post.
	if event.Commit == nil || event.Commit.Record == nil {
		return domain.CanonicalMessage{}, metrics.ReasonNotPost, false
	}
	record := event.Commit.Record

	if record.Type != f.collection {
		return domain.CanonicalMessage{}, metrics.ReasonNotPost, false
	}

	// Language filter applies only when the record declares languages; the
	// first declared language wins.
	if len(record.Langs) > 0 && !strings.Contains(record.Langs[0], f.language) {
		return domain.CanonicalMessage{}, metrics.ReasonLanguage, false
	}

	if !f.matchesKeyword(record.Text) {
		return domain.CanonicalMessage{}, metrics.ReasonKeyword, false
	}

	msg := domain.CanonicalMessage{
		Source:    f.sourceTag,
		Text:      record.Text,
		CreatedAt: record.CreatedAt,
	}
	return msg, "", true
}

// matchesKeyword reports whether the lower-cased, accent-folded text
// contains any configured keyword.
func (f *Filter) matchesKeyword(text string) bool {
	if text == "" || len(f.keywords) == 0 {
		return false
	}

	lowered := foldForMatch(text)
	for _, kw := range f.keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
