package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/skypulse/internal/domain"
	"github.com/jonesrussell/skypulse/internal/logger"
	"github.com/jonesrussell/skypulse/internal/moderation"
	"github.com/jonesrussell/skypulse/internal/normalize"
	"github.com/jonesrussell/skypulse/internal/queue"
	"github.com/jonesrussell/skypulse/internal/sentiment"
)

type fakeStore struct {
	posts     []*domain.Post
	window    time.Duration
	duplicate bool
	err       error
}

func (f *fakeStore) InsertUnlessDuplicate(_ context.Context, post *domain.Post, window time.Duration) (bool, error) {
	f.window = window
	if f.err != nil {
		return false, f.err
	}
	if f.duplicate {
		return false, nil
	}
	post.ID = int64(len(f.posts) + 1)
	post.InsertedAt = time.Now()
	f.posts = append(f.posts, post)
	return true, nil
}

func newTestProcessor(store *fakeStore) *Processor {
	return New(
		store,
		moderation.New([]string{"porn"}),
		normalize.New(),
		sentiment.New(sentiment.Config{}),
		24*time.Hour,
		logger.NewNop(),
	)
}

func TestProcessPersistsValidMessage(t *testing.T) {
	store := &fakeStore{}
	p := newTestProcessor(store)

	body := []byte(`{"source":"bluesky","text":"I love this amazing city!","createdAt":"2023-10-01T12:00:00Z"}`)
	outcome := p.Process(context.Background(), body)

	assert.Equal(t, OutcomePersisted, outcome)
	require.Len(t, store.posts, 1)

	post := store.posts[0]
	assert.Equal(t, "I love this amazing city!", post.Content)
	assert.Equal(t, "love amazing city", post.NormalizedContent)
	assert.Equal(t, domain.SentimentPositive, post.Sentiment)
	assert.Equal(t, "bluesky", post.Source)
	assert.Equal(t, time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC), post.CreatedAt)
	assert.Equal(t, 24*time.Hour, store.window)
}

func TestProcessDropsMalformed(t *testing.T) {
	store := &fakeStore{}
	p := newTestProcessor(store)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"whitespace body", "   \n"},
		{"invalid json", `{not json`},
		{"missing text", `{"source":"bluesky","createdAt":"2023-10-01T12:00:00Z"}`},
		{"blank text", `{"source":"bluesky","text":"   ","createdAt":"2023-10-01T12:00:00Z"}`},
		{"missing created_at", `{"source":"bluesky","text":"hello"}`},
		{"missing source", `{"text":"hello","createdAt":"2023-10-01T12:00:00Z"}`},
		{"bad timestamp", `{"source":"bluesky","text":"hello","createdAt":"yesterday"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := p.Process(context.Background(), []byte(tt.body))
			assert.Equal(t, OutcomeDropped, outcome)
		})
	}
	assert.Empty(t, store.posts)
}

func TestProcessDropsModerated(t *testing.T) {
	store := &fakeStore{}
	p := newTestProcessor(store)

	body := []byte(`{"source":"bluesky","text":"Check out this PORN link","createdAt":"2023-10-01T12:00:00Z"}`)
	outcome := p.Process(context.Background(), body)

	assert.Equal(t, OutcomeDropped, outcome)
	assert.Empty(t, store.posts)
}

func TestProcessDropsDuplicate(t *testing.T) {
	store := &fakeStore{duplicate: true}
	p := newTestProcessor(store)

	body := []byte(`{"source":"bluesky","text":"Vancouver is great!","createdAt":"2023-10-01T12:00:00Z"}`)
	outcome := p.Process(context.Background(), body)

	assert.Equal(t, OutcomeDropped, outcome)
}

func TestProcessStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	p := newTestProcessor(store)

	body := []byte(`{"source":"bluesky","text":"Vancouver is great!","createdAt":"2023-10-01T12:00:00Z"}`)
	outcome := p.Process(context.Background(), body)

	assert.Equal(t, OutcomeFailed, outcome)
}

func TestHandleDispositions(t *testing.T) {
	body := []byte(`{"source":"bluesky","text":"Vancouver is great!","createdAt":"2023-10-01T12:00:00Z"}`)

	t.Run("persisted acks", func(t *testing.T) {
		p := newTestProcessor(&fakeStore{})
		assert.Equal(t, queue.Ack, p.Handle(context.Background(), body))
	})

	t.Run("dropped acks", func(t *testing.T) {
		p := newTestProcessor(&fakeStore{duplicate: true})
		assert.Equal(t, queue.Ack, p.Handle(context.Background(), body))
	})

	t.Run("store failure dead-letters", func(t *testing.T) {
		p := newTestProcessor(&fakeStore{err: errors.New("boom")})
		assert.Equal(t, queue.DeadLetter, p.Handle(context.Background(), body))
	})
}

func TestProcessNeutralSentiment(t *testing.T) {
	store := &fakeStore{}
	p := newTestProcessor(store)

	// Plain statement with no valence words stays neutral.
	body := []byte(`{"source":"bluesky","text":"The meeting starts at noon.","createdAt":"2023-10-01T12:00:00Z"}`)
	outcome := p.Process(context.Background(), body)

	assert.Equal(t, OutcomePersisted, outcome)
	require.Len(t, store.posts, 1)
	assert.Equal(t, domain.SentimentNeutral, store.posts[0].Sentiment)
}
