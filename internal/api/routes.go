package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/skypulse/internal/metrics"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	// Health check
	router.GET("/health", handler.HealthCheck)

	// Prometheus exposition
	router.GET("/metrics", metrics.Handler())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/posts", handler.ListPosts)   // GET /api/v1/posts
		v1.GET("/posts/:id", handler.GetPost) // GET /api/v1/posts/:id

		// Statistics endpoints
		stats := v1.Group("/stats")
		{
			stats.GET("", handler.GetStats)                     // GET /api/v1/stats
			stats.GET("/sources", handler.GetSourceStats)       // GET /api/v1/stats/sources
			stats.GET("/sentiments", handler.GetSentimentStats) // GET /api/v1/stats/sentiments
		}
	}
}
