package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/delaywise/flights-backend-go/internal/config"
	"github.com/delaywise/flights-backend-go/internal/handler"
	"github.com/delaywise/flights-backend-go/internal/middleware"
)

// SetupRouter wires the HTTP routes
func SetupRouter(cfg *config.Config, predictionHandler *handler.PredictionHandler, adminHandler *handler.AdminHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Flight delay prediction API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		predictions := api.Group("/predictions")
		predictions.Use(middleware.RateLimit(60, time.Minute))
		{
			predictions.POST("", predictionHandler.ScoreSegments)
			predictions.GET("/recent", predictionHandler.RecentPredictions)
		}

		features := api.Group("/features")
		features.Use(middleware.RateLimit(60, time.Minute))
		{
			features.POST("/embedding", predictionHandler.Embedding)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.Auth(cfg.JWTSecret))
		{
			admin.POST("/aggregates/rebuild", adminHandler.RebuildAggregates)
			admin.DELETE("/predictions", adminHandler.PurgePredictions)
		}
	}

	return r
}
