//nolint:testpackage // Testing internal repository requires same package access
package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/skypulse/internal/domain"
)

func newMockRepo(t *testing.T) (*PostRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewPostRepository(sqlx.NewDb(db, "sqlmock"))
	return repo, mock, func() { db.Close() }
}

func TestPostRepository_InsertUnlessDuplicate(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	ctx := context.Background()
	insertedAt := time.Date(2023, 10, 1, 12, 30, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs("test post").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("test post", "24h0m0s").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("INSERT INTO posts").
		WithArgs("This is a test post", "test post", domain.SentimentNeutral, sqlmock.AnyArg(), "bluesky").
		WillReturnRows(sqlmock.NewRows([]string{"id", "inserted_at"}).AddRow(int64(7), insertedAt))
	mock.ExpectCommit()

	post := &domain.Post{
		Content:           "This is a test post",
		NormalizedContent: "test post",
		Sentiment:         domain.SentimentNeutral,
		CreatedAt:         time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC),
		Source:            "bluesky",
	}

	inserted, err := repo.InsertUnlessDuplicate(ctx, post, 24*time.Hour)
	if err != nil {
		t.Fatalf("InsertUnlessDuplicate() error = %v", err)
	}
	if !inserted {
		t.Error("InsertUnlessDuplicate() = false, want true")
	}
	if post.ID != 7 {
		t.Errorf("post.ID = %d, want 7", post.ID)
	}
	if !post.InsertedAt.Equal(insertedAt) {
		t.Errorf("post.InsertedAt = %v, want %v", post.InsertedAt, insertedAt)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestPostRepository_InsertUnlessDuplicate_Duplicate(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs("test post").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("test post", "24h0m0s").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	post := &domain.Post{
		Content:           "This is a test post",
		NormalizedContent: "test post",
		Sentiment:         domain.SentimentNeutral,
		Source:            "bluesky",
	}

	inserted, err := repo.InsertUnlessDuplicate(ctx, post, 24*time.Hour)
	if err != nil {
		t.Fatalf("InsertUnlessDuplicate() error = %v", err)
	}
	if inserted {
		t.Error("InsertUnlessDuplicate() = true, want false for recent duplicate")
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestPostRepository_Get_NotFound(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id, content, normalized_content, sentiment, created_at, inserted_at, source").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Get(ctx, 99)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get() error = %v, want domain.ErrNotFound", err)
	}
}

func TestPostRepository_List(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "content", "normalized_content", "sentiment", "created_at", "inserted_at", "source"}).
		AddRow(int64(2), "second", "second", "neutral", now, now, "bluesky").
		AddRow(int64(1), "first", "first", "positive", now.Add(-time.Hour), now, "bluesky")

	mock.ExpectQuery("SELECT id, content, normalized_content, sentiment, created_at, inserted_at, source").
		WithArgs(50, 0).
		WillReturnRows(rows)

	posts, err := repo.List(ctx, 50, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("List() returned %d posts, want 2", len(posts))
	}
	if posts[0].ID != 2 {
		t.Errorf("posts[0].ID = %d, want 2", posts[0].ID)
	}
}

func TestPostRepository_CountBySentiment_WithWindow(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	ctx := context.Background()
	since := time.Now().Add(-2 * time.Hour)

	rows := sqlmock.NewRows([]string{"sentiment", "count"}).
		AddRow("neutral", int64(5)).
		AddRow("positive", int64(3))

	mock.ExpectQuery("SELECT sentiment, COUNT").
		WithArgs(since).
		WillReturnRows(rows)

	counts, err := repo.CountBySentiment(ctx, &since)
	if err != nil {
		t.Fatalf("CountBySentiment() error = %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("CountBySentiment() returned %d rows, want 2", len(counts))
	}
	if counts[0].Sentiment != domain.SentimentNeutral || counts[0].Count != 5 {
		t.Errorf("counts[0] = %+v, want neutral/5", counts[0])
	}
}

func TestPostRepository_CountBySource(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"source", "count"}).
		AddRow("bluesky", int64(12))

	mock.ExpectQuery("SELECT source, COUNT").
		WillReturnRows(rows)

	counts, err := repo.CountBySource(ctx)
	if err != nil {
		t.Fatalf("CountBySource() error = %v", err)
	}
	if len(counts) != 1 || counts[0].Source != "bluesky" || counts[0].Count != 12 {
		t.Errorf("CountBySource() = %+v, want [{bluesky 12}]", counts)
	}
}
