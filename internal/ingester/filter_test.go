package ingester

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/skypulse/internal/domain"
	"github.com/jonesrussell/skypulse/internal/metrics"
)

func newTestFilter(keywords ...string) *Filter {
	if len(keywords) == 0 {
		keywords = []string{"vancouver"}
	}
	return NewFilter("app.bsky.feed.post", "en", keywords, "bluesky")
}

func TestFilterAccepts(t *testing.T) {
	f := newTestFilter()

	frame := []byte(`{"commit":{"record":{"$type":"app.bsky.feed.post","text":"Vancouver is great!","createdAt":"2023-10-01T12:00:00Z"}}}`)

	msg, reason, ok := f.Apply(frame)
	assert.True(t, ok, "expected frame to pass, dropped with reason %q", reason)
	assert.Equal(t, domain.CanonicalMessage{
		Source:    "bluesky",
		Text:      "Vancouver is great!",
		CreatedAt: "2023-10-01T12:00:00Z",
	}, msg)
}

func TestFilterKeywordMiss(t *testing.T) {
	f := newTestFilter()

	frame := []byte(`{"commit":{"record":{"$type":"app.bsky.feed.post","text":"I love Van","createdAt":"2023-10-01T12:00:00Z"}}}`)

	_, reason, ok := f.Apply(frame)
	assert.False(t, ok)
	assert.Equal(t, metrics.ReasonKeyword, reason)
}

func TestFilterKeywordCaseInsensitive(t *testing.T) {
	f := newTestFilter("VANCOUVER")

	frame := []byte(`{"commit":{"record":{"$type":"app.bsky.feed.post","text":"vancouver in lowercase","createdAt":"2023-10-01T12:00:00Z"}}}`)

	_, _, ok := f.Apply(frame)
	assert.True(t, ok)
}

func TestFilterKeywordAccentFolding(t *testing.T) {
	f := newTestFilter("montreal")

	frame := []byte(`{"commit":{"record":{"$type":"app.bsky.feed.post","text":"Montréal en été","createdAt":"2023-10-01T12:00:00Z"}}}`)

	msg, _, ok := f.Apply(frame)
	assert.True(t, ok)
	// The original text is preserved, accents included.
	assert.Equal(t, "Montréal en été", msg.Text)
}

func TestFilterLanguage(t *testing.T) {
	f := newTestFilter()

	tests := []struct {
		name  string
		frame string
		ok    bool
	}{
		{
			// Wrong language drops regardless of keyword content.
			"spanish dropped",
			`{"commit":{"record":{"$type":"app.bsky.feed.post","text":"Vancouver!","langs":["es"],"createdAt":"2023-10-01T12:00:00Z"}}}`,
			false,
		},
		{
			"english accepted",
			`{"commit":{"record":{"$type":"app.bsky.feed.post","text":"Vancouver!","langs":["en"],"createdAt":"2023-10-01T12:00:00Z"}}}`,
			true,
		},
		{
			// Regional code contains the target code as a substring.
			"regional variant accepted",
			`{"commit":{"record":{"$type":"app.bsky.feed.post","text":"Vancouver!","langs":["en-GB"],"createdAt":"2023-10-01T12:00:00Z"}}}`,
			true,
		},
		{
			// Only the first entry is consulted.
			"first entry wins",
			`{"commit":{"record":{"$type":"app.bsky.feed.post","text":"Vancouver!","langs":["es","en"],"createdAt":"2023-10-01T12:00:00Z"}}}`,
			false,
		},
		{
			"absent langs accepted",
			`{"commit":{"record":{"$type":"app.bsky.feed.post","text":"Vancouver!","createdAt":"2023-10-01T12:00:00Z"}}}`,
			true,
		},
		{
			"empty langs accepted",
			`{"commit":{"record":{"$type":"app.bsky.feed.post","text":"Vancouver!","langs":[],"createdAt":"2023-10-01T12:00:00Z"}}}`,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := f.Apply([]byte(tt.frame))
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestFilterDropsNonPosts(t *testing.T) {
	f := newTestFilter()

	tests := []struct {
		name   string
		frame  string
		reason string
	}{
		{"malformed json", `{not json`, metrics.ReasonParse},
		{"no commit", `{"kind":"identity"}`, metrics.ReasonNotPost},
		{"no record", `{"commit":{"rev":"abc"}}`, metrics.ReasonNotPost},
		{
			"wrong type",
			`{"commit":{"record":{"$type":"app.bsky.feed.like","text":"Vancouver!"}}}`,
			metrics.ReasonNotPost,
		},
		{
			"missing text",
			`{"commit":{"record":{"$type":"app.bsky.feed.post","createdAt":"2023-10-01T12:00:00Z"}}}`,
			metrics.ReasonKeyword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, reason, ok := f.Apply([]byte(tt.frame))
			assert.False(t, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestFilterKeywordOrderShortCircuits(t *testing.T) {
	f := newTestFilter("rain", "vancouver")

	frame := []byte(`{"commit":{"record":{"$type":"app.bsky.feed.post","text":"Rain in Vancouver","createdAt":"2023-10-01T12:00:00Z"}}}`)

	msg, _, ok := f.Apply(frame)
	assert.True(t, ok)
	// Matching does not rank or annotate; the text is passed through as-is.
	assert.Equal(t, "Rain in Vancouver", msg.Text)
}
