package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/skypulse/internal/domain"
)

// PostRepository handles database operations for accepted posts.
type PostRepository struct {
	db *sqlx.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

// InsertUnlessDuplicate runs the dedup check and the insert in a single
// transaction, serialized per normalized content with a transaction-scoped
// advisory lock so concurrent processors cannot race past the check. It
// returns false with a nil error when a recent duplicate exists; on success
// the post's ID and InsertedAt are filled in from the store.
func (r *PostRepository) InsertUnlessDuplicate(ctx context.Context, post *domain.Post, window time.Duration) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	// Held until commit or rollback. Two transactions with the same
	// normalized content cannot both pass the EXISTS check.
	if _, err = tx.ExecContext(
		ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`,
		post.NormalizedContent,
	); err != nil {
		return false, fmt.Errorf("failed to acquire dedup lock: %w", err)
	}

	var exists bool
	checkQuery := `
		SELECT EXISTS (
			SELECT 1 FROM posts
			WHERE normalized_content = $1
			  AND inserted_at > now() - $2::interval
		)
	`

	if err = tx.QueryRowContext(ctx, checkQuery, post.NormalizedContent, window.String()).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check for duplicate: %w", err)
	}

	if exists {
		return false, nil
	}

	insertQuery := `
		INSERT INTO posts (content, normalized_content, sentiment, created_at, source)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, inserted_at
	`

	err = tx.QueryRowContext(
		ctx,
		insertQuery,
		post.Content,
		post.NormalizedContent,
		post.Sentiment,
		post.CreatedAt,
		post.Source,
	).Scan(&post.ID, &post.InsertedAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert post: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit insert: %w", err)
	}

	return true, nil
}

// Get returns one post by ID, or domain.ErrNotFound.
func (r *PostRepository) Get(ctx context.Context, id int64) (*domain.Post, error) {
	var post domain.Post
	query := `
		SELECT id, content, normalized_content, sentiment, created_at, inserted_at, source
		FROM posts
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &post, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", id, err)
	}

	return &post, nil
}

// List returns posts ordered by created_at DESC, id DESC.
func (r *PostRepository) List(ctx context.Context, limit, offset int) ([]*domain.Post, error) {
	var posts []*domain.Post
	query := `
		SELECT id, content, normalized_content, sentiment, created_at, inserted_at, source
		FROM posts
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	if err := r.db.SelectContext(ctx, &posts, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

// Count returns the total number of persisted posts.
func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// CountBySource returns post counts grouped by source.
func (r *PostRepository) CountBySource(ctx context.Context) ([]*domain.SourceCount, error) {
	var counts []*domain.SourceCount
	query := `
		SELECT source, COUNT(*) AS count
		FROM posts
		GROUP BY source
		ORDER BY count DESC
	`

	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("failed to count posts by source: %w", err)
	}

	return counts, nil
}

// CountBySentiment returns post counts grouped by sentiment. When since is
// non-nil only posts with created_at after it are counted.
func (r *PostRepository) CountBySentiment(ctx context.Context, since *time.Time) ([]*domain.SentimentCount, error) {
	var counts []*domain.SentimentCount

	if since != nil {
		query := `
			SELECT sentiment, COUNT(*) AS count
			FROM posts
			WHERE created_at > $1
			GROUP BY sentiment
			ORDER BY count DESC
		`
		if err := r.db.SelectContext(ctx, &counts, query, *since); err != nil {
			return nil, fmt.Errorf("failed to count posts by sentiment: %w", err)
		}
		return counts, nil
	}

	query := `
		SELECT sentiment, COUNT(*) AS count
		FROM posts
		GROUP BY sentiment
		ORDER BY count DESC
	`
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("failed to count posts by sentiment: %w", err)
	}

	return counts, nil
}
