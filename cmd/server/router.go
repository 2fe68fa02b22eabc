package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"stadium-designer/internal/config"
	"stadium-designer/internal/handler"
	sharedMiddleware "stadium-designer/shared/middleware"
)

const defaultCORSOrigin = "http://localhost:3000"

// newRouter собирает gin движок: middleware, /health, /metrics и маршруты API.
// Prometheus middleware подключается до регистрации маршрутов, иначе gin не навесит его на них.
func newRouter(cfg *config.Config, visualizationHandler *handler.VisualizationHandler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(sharedMiddleware.ZapLoggingMiddlewareForGin(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if origins := cfg.GetAllowedOrigins(); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowOrigins = []string{defaultCORSOrigin}
		logger.Info("CORS_ALLOWED_ORIGINS not set, allowing default", zap.String("origin", defaultCORSOrigin))
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", sharedMiddleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{sharedMiddleware.RequestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	visualizationHandler.RegisterRoutes(router)

	return router
}
