package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"journal-llm/internal/domain"
	"journal-llm/internal/service"
)

// ReflectionHandler mantiene dependencias para endpoints de reflexión.
type ReflectionHandler struct {
	logger     *zap.Logger
	reflection *service.ReflectionService
}

// NewReflectionHandler crea una instancia de ReflectionHandler con dependencias necesarias.
func NewReflectionHandler(logger *zap.Logger, reflection *service.ReflectionService) *ReflectionHandler {
	return &ReflectionHandler{
		logger:     logger,
		reflection: reflection,
	}
}

// Suggestion maneja GET /reflection/suggestion.
func (h *ReflectionHandler) Suggestion(c *gin.Context) {
	text, err := h.reflection.Suggest(c.Request.Context())
	if err != nil {
		h.logger.Error("reflection suggestion failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build suggestion"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestion": text})
}

// ListPrompts maneja GET /reflection/prompts.
func (h *ReflectionHandler) ListPrompts(c *gin.Context) {
	prompts, err := h.reflection.ListPrompts(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.logger.Error("list prompts failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list prompts"})
		return
	}
	if prompts == nil {
		prompts = []domain.ReflectionPrompt{}
	}

	c.JSON(http.StatusOK, gin.H{"prompts": prompts})
}

// RandomPrompt maneja GET /reflection/prompts/random.
func (h *ReflectionHandler) RandomPrompt(c *gin.Context) {
	prompt, err := h.reflection.RandomPrompt(c.Request.Context(), c.Query("category"))
	if err != nil {
		if errors.Is(err, service.ErrNoActivePrompts) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active prompts"})
			return
		}
		h.logger.Error("random prompt failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not pick prompt"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"prompt": prompt})
}
