package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"journal-llm/internal/domain"
	"journal-llm/internal/service"
)

// AnalyticsHandler mantiene dependencias para endpoints de analítica.
type AnalyticsHandler struct {
	logger    *zap.Logger
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler crea una instancia de AnalyticsHandler con dependencias necesarias.
func NewAnalyticsHandler(logger *zap.Logger, analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		logger:    logger,
		analytics: analytics,
	}
}

// Statistics maneja GET /analytics/statistics.
func (h *AnalyticsHandler) Statistics(c *gin.Context) {
	days, ok := intQuery(c, "days")
	if !ok {
		return
	}

	stats, err := h.analytics.Statistics(c.Request.Context(), days)
	if err != nil {
		h.logger.Error("mood statistics failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"statistics": stats})
}

// Timeline maneja GET /analytics/timeline.
func (h *AnalyticsHandler) Timeline(c *gin.Context) {
	days, ok := intQuery(c, "days")
	if !ok {
		return
	}

	points, err := h.analytics.Timeline(c.Request.Context(), days)
	if err != nil {
		h.logger.Error("mood timeline failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build timeline"})
		return
	}
	if points == nil {
		points = []domain.TimelinePoint{}
	}

	c.JSON(http.StatusOK, gin.H{"timeline": points})
}

// Monthly maneja GET /analytics/monthly.
func (h *AnalyticsHandler) Monthly(c *gin.Context) {
	months, err := h.analytics.MonthlyAverages(c.Request.Context())
	if err != nil {
		h.logger.Error("monthly averages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute monthly averages"})
		return
	}
	if months == nil {
		months = []domain.MonthlyMood{}
	}

	c.JSON(http.StatusOK, gin.H{"months": months})
}

// Keywords maneja GET /analytics/keywords.
func (h *AnalyticsHandler) Keywords(c *gin.Context) {
	limit, ok := intQuery(c, "limit")
	if !ok {
		return
	}

	keywords, err := h.analytics.TopKeywords(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("top keywords failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute keywords"})
		return
	}
	if keywords == nil {
		keywords = []domain.KeywordCount{}
	}

	c.JSON(http.StatusOK, gin.H{"keywords": keywords})
}

// Streak maneja GET /analytics/streak.
func (h *AnalyticsHandler) Streak(c *gin.Context) {
	days, err := h.analytics.Streak(c.Request.Context())
	if err != nil {
		h.logger.Error("streak failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute streak"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"streak_days": days})
}
