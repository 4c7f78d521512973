package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/example/reviewtool/internal/handlers"
)

// RouterConfig carries everything the router needs wired in.
type RouterConfig struct {
	ItemHandler   *handlers.ItemHandler
	ReviewHandler *handlers.ReviewHandler
	CORSOrigins   []string
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	items := router.Group("/learning-items")
	{
		items.POST("/", cfg.ItemHandler.Create)
		items.GET("/", cfg.ItemHandler.List)
		items.GET("/subjects", cfg.ItemHandler.Subjects)
		items.GET("/:id", cfg.ItemHandler.Get)
		items.PUT("/:id", cfg.ItemHandler.Update)
		items.DELETE("/:id", cfg.ItemHandler.Delete)
	}

	reviews := router.Group("/reviews")
	{
		reviews.GET("/due", cfg.ReviewHandler.Due)
		reviews.GET("/stats", cfg.ReviewHandler.Stats)
		reviews.GET("/history/:id", cfg.ReviewHandler.History)
		reviews.POST("/:id", cfg.ReviewHandler.MarkReviewed)
		reviews.POST("/:id/manual", cfg.ReviewHandler.ManualReview)
	}

	return router
}
