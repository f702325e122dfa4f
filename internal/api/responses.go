package api

import (
	"time"

	"github.com/jonesrussell/skypulse/internal/domain"
)

// PostResponse is one post as served to readers. The normalized form is an
// internal detail and is never exposed.
type PostResponse struct {
	ID         int64     `json:"id"`
	Content    string    `json:"content"`
	Sentiment  string    `json:"sentiment"`
	CreatedAt  time.Time `json:"created_at"`
	InsertedAt time.Time `json:"inserted_at"`
	Source     string    `json:"source"`
}

// PostsListResponse is a page of posts.
type PostsListResponse struct {
	Posts  []PostResponse `json:"posts"`
	Count  int            `json:"count"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// StatsResponse is the overall pipeline aggregate.
type StatsResponse struct {
	TotalPosts int64 `json:"total_posts"`
}

// SourceCountResponse is a per-source post count.
type SourceCountResponse struct {
	Source string `json:"source"`
	Count  int64  `json:"count"`
}

// SentimentCountResponse is a per-sentiment post count.
type SentimentCountResponse struct {
	Sentiment string `json:"sentiment"`
	Count     int64  `json:"count"`
}

// toPostResponse converts a domain post to an API response.
func toPostResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:         post.ID,
		Content:    post.Content,
		Sentiment:  string(post.Sentiment),
		CreatedAt:  post.CreatedAt,
		InsertedAt: post.InsertedAt,
		Source:     post.Source,
	}
}
