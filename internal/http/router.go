package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	entryH *EntryHandler,
	analyticsH *AnalyticsHandler,
	reflectionH *ReflectionHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	entries := r.Group("/entries")
	entries.POST("", entryH.CreateEntry)
	entries.GET("", entryH.ListEntries)
	entries.GET("/search", entryH.SearchEntries)
	entries.GET("/:id", entryH.GetEntry)
	entries.PUT("/:id", entryH.UpdateEntry)
	entries.DELETE("/:id", entryH.DeleteEntry)

	analytics := r.Group("/analytics")
	analytics.GET("/statistics", analyticsH.Statistics)
	analytics.GET("/timeline", analyticsH.Timeline)
	analytics.GET("/monthly", analyticsH.Monthly)
	analytics.GET("/keywords", analyticsH.Keywords)
	analytics.GET("/streak", analyticsH.Streak)

	reflection := r.Group("/reflection")
	reflection.GET("/suggestion", reflectionH.Suggestion)
	reflection.GET("/prompts", reflectionH.ListPrompts)
	reflection.GET("/prompts/random", reflectionH.RandomPrompt)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
