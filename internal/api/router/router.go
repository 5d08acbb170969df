package router

import (
	"microdrama-go/internal/api/handler"

	"github.com/gin-gonic/gin"
)

// Handlers 全部业务 handler
type Handlers struct {
	Show   *handler.ShowHandler
	Rating *handler.RatingHandler
	Watch  *handler.WatchHandler
	Search *handler.SearchHandler
	Health *handler.HealthHandler
}

// Setup 注册所有业务路由，ratingLimit 只作用于评分提交
func Setup(r *gin.Engine, h Handlers, ratingLimit gin.HandlerFunc) {
	if h.Health != nil {
		r.GET("/healthz", h.Health.Health)
	}

	v1 := r.Group("/api/v1")

	// --- 短剧模块 ---
	shows := v1.Group("/shows")
	{
		shows.GET("", h.Show.List)
		shows.GET("/search", h.Search.SearchShows)
		shows.GET("/:id", h.Show.GetDetail)
		shows.GET("/:id/episodes", h.Show.ListEpisodes)

		// --- 评分模块 ---
		shows.GET("/:id/ratings", h.Rating.Counts)
		if ratingLimit != nil {
			shows.POST("/:id/like", ratingLimit, h.Rating.Create)
		} else {
			shows.POST("/:id/like", h.Rating.Create)
		}
	}

	// --- 观看记录模块 ---
	episodes := v1.Group("/episodes")
	{
		episodes.GET("/:id/watched", h.Watch.GetStatus)
		episodes.POST("/:id/watched", h.Watch.MarkWatched)
		episodes.DELETE("/:id/watched", h.Watch.MarkUnwatched)
	}
}
