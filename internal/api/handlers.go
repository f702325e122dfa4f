// Package api serves the read-only stats surface over the persisted posts.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/skypulse/internal/domain"
	"github.com/jonesrussell/skypulse/internal/logger"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// PostStore is the read side of the post repository.
type PostStore interface {
	Get(ctx context.Context, id int64) (*domain.Post, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Post, error)
	Count(ctx context.Context) (int64, error)
	CountBySource(ctx context.Context) ([]*domain.SourceCount, error)
	CountBySentiment(ctx context.Context, since *time.Time) ([]*domain.SentimentCount, error)
}

// Handler handles HTTP requests for the stats API.
type Handler struct {
	store  PostStore
	logger logger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(store PostStore, log logger.Logger) *Handler {
	return &Handler{store: store, logger: log}
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "skypulse",
	})
}

// ListPosts handles GET /api/v1/posts.
func (h *Handler) ListPosts(c *gin.Context) {
	limit := defaultPageSize
	if param := c.Query("limit"); param != "" {
		if n, err := strconv.Atoi(param); err == nil && n > 0 && n <= maxPageSize {
			limit = n
		}
	}

	offset := 0
	if param := c.Query("offset"); param != "" {
		if n, err := strconv.Atoi(param); err == nil && n >= 0 {
			offset = n
		}
	}

	posts, err := h.store.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list posts", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posts"})
		return
	}

	response := make([]PostResponse, len(posts))
	for i, post := range posts {
		response[i] = toPostResponse(post)
	}

	c.JSON(http.StatusOK, PostsListResponse{
		Posts:  response,
		Count:  len(response),
		Limit:  limit,
		Offset: offset,
	})
}

// GetPost handles GET /api/v1/posts/:id.
func (h *Handler) GetPost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	post, err := h.store.Get(c.Request.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed to get post", logger.Int64("id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}

	c.JSON(http.StatusOK, toPostResponse(post))
}

// GetStats handles GET /api/v1/stats.
func (h *Handler) GetStats(c *gin.Context) {
	total, err := h.store.Count(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to count posts", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{TotalPosts: total})
}

// GetSourceStats handles GET /api/v1/stats/sources.
func (h *Handler) GetSourceStats(c *gin.Context) {
	counts, err := h.store.CountBySource(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to count posts by source", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load source stats"})
		return
	}

	response := make([]SourceCountResponse, len(counts))
	for i, sc := range counts {
		response[i] = SourceCountResponse{Source: sc.Source, Count: sc.Count}
	}

	c.JSON(http.StatusOK, gin.H{"sources": response})
}

// GetSentimentStats handles GET /api/v1/stats/sentiments. The optional
// hours parameter restricts the aggregate to posts created in the trailing
// window; it must be a positive integer.
func (h *Handler) GetSentimentStats(c *gin.Context) {
	var since *time.Time
	if param := c.Query("hours"); param != "" {
		hours, err := strconv.Atoi(param)
		if err != nil || hours <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "hours must be a positive integer"})
			return
		}
		cutoff := time.Now().Add(-time.Duration(hours) * time.Hour)
		since = &cutoff
	}

	counts, err := h.store.CountBySentiment(c.Request.Context(), since)
	if err != nil {
		h.logger.Error("failed to count posts by sentiment", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sentiment stats"})
		return
	}

	response := make([]SentimentCountResponse, len(counts))
	for i, sc := range counts {
		response[i] = SentimentCountResponse{Sentiment: string(sc.Sentiment), Count: sc.Count}
	}

	c.JSON(http.StatusOK, gin.H{"sentiments": response})
}
