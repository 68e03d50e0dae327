package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/hexmetrics-backend-go/internal/config"
	"github.com/jengzang/hexmetrics-backend-go/internal/handler"
	"github.com/jengzang/hexmetrics-backend-go/internal/middleware"
	"github.com/jengzang/hexmetrics-backend-go/internal/service"
)

// SetupRouter builds the HTTP API over the produced cell tables
func SetupRouter(cfg *config.Config, aggregation *service.AggregationService, metrics *service.MetricsService) *gin.Engine {
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

	rateLimiter := middleware.NewRateLimiter(120, time.Minute)
	r.Use(rateLimiter.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Hex Metrics API is running",
		})
	})

	metricsHandler := handler.NewMetricsHandler(metrics)
	featuresHandler := handler.NewFeaturesHandler(metrics)
	runHandler := handler.NewRunHandler(aggregation, metrics)

	api := r.Group("/api/v1")
	{
		cells := api.Group("/cells")
		{
			cells.GET("", metricsHandler.ListCells)
			cells.GET("/:index", metricsHandler.GetCell)
			cells.GET("/:index/neighbors", metricsHandler.GetCellNeighbors)
			cells.GET("/:index/osm", featuresHandler.GetOSMContext)
		}

		api.GET("/partitions", metricsHandler.ListPartitions)

		runs := api.Group("/aggregation/runs")
		{
			runs.GET("", runHandler.ListRuns)
			runs.GET("/:id", runHandler.GetRun)
			// Triggering a run mutates the output tables; token required.
			runs.POST("", middleware.JWTAuth(cfg.JWTSecret), runHandler.CreateRun)
		}
	}

	return r
}
