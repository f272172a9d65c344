package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"journal-llm/internal/domain"
	"journal-llm/internal/service"
)

const entryDateLayout = "2006-01-02"

// EntryHandler mantiene dependencias para endpoints de entradas del diario.
type EntryHandler struct {
	logger  *zap.Logger
	journal *service.JournalService
}

// NewEntryHandler crea una instancia de EntryHandler con dependencias necesarias.
func NewEntryHandler(logger *zap.Logger, journal *service.JournalService) *EntryHandler {
	return &EntryHandler{
		logger:  logger,
		journal: journal,
	}
}

// moodResponse expone el análisis decorado con color y emoji para el cliente.
type moodResponse struct {
	domain.MoodAnalysis
	Color string `json:"color"`
	Emoji string `json:"emoji"`
}

type entryResponse struct {
	Entry domain.JournalEntry `json:"entry"`
	Mood  *moodResponse       `json:"mood,omitempty"`
}

func moodView(m *domain.MoodAnalysis) *moodResponse {
	if m == nil {
		return nil
	}
	return &moodResponse{
		MoodAnalysis: *m,
		Color:        m.Emotion.Color(),
		Emoji:        m.Emotion.Emoji(),
	}
}

func entryView(item domain.EntryWithMood) entryResponse {
	return entryResponse{
		Entry: item.Entry,
		Mood:  moodView(item.Mood),
	}
}

func entryViews(items []domain.EntryWithMood) []entryResponse {
	views := make([]entryResponse, 0, len(items))
	for _, item := range items {
		views = append(views, entryView(item))
	}
	return views
}

// CreateEntry maneja POST /entries.
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	var req struct {
		Title     string `json:"title"`
		Content   string `json:"content" binding:"required"`
		EntryDate string `json:"entry_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create entry request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var entryDate time.Time
	if req.EntryDate != "" {
		parsed, err := time.Parse(entryDateLayout, req.EntryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry_date, expected YYYY-MM-DD"})
			return
		}
		entryDate = parsed
	}

	item, err := h.journal.CreateEntry(c.Request.Context(), service.CreateEntryInput{
		EntryDate: entryDate,
		Title:     req.Title,
		Content:   req.Content,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyContent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "entry content is empty"})
			return
		}
		if errors.Is(err, service.ErrEntryTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "entry content too long"})
			return
		}
		h.logger.Error("create entry failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create entry"})
		return
	}

	c.JSON(http.StatusCreated, entryView(item))
}

// ListEntries maneja GET /entries.
func (h *EntryHandler) ListEntries(c *gin.Context) {
	limit, ok := intQuery(c, "limit")
	if !ok {
		return
	}

	items, err := h.journal.ListEntries(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("list entries failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entryViews(items)})
}

// SearchEntries maneja GET /entries/search.
func (h *EntryHandler) SearchEntries(c *gin.Context) {
	limit, ok := intQuery(c, "limit")
	if !ok {
		return
	}

	items, err := h.journal.SearchEntries(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		if errors.Is(err, service.ErrEmptySearch) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing search query"})
			return
		}
		h.logger.Error("search entries failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not search entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entryViews(items)})
}

// GetEntry maneja GET /entries/:id.
func (h *EntryHandler) GetEntry(c *gin.Context) {
	item, err := h.journal.GetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
			return
		}
		h.logger.Error("get entry failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get entry"})
		return
	}

	c.JSON(http.StatusOK, entryView(item))
}

// UpdateEntry maneja PUT /entries/:id.
func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update entry request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Title == nil && req.Content == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	item, err := h.journal.UpdateEntry(c.Request.Context(), c.Param("id"), service.UpdateEntryInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEntryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		case errors.Is(err, service.ErrEmptyContent):
			c.JSON(http.StatusBadRequest, gin.H{"error": "entry content is empty"})
		case errors.Is(err, service.ErrEntryTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": "entry content too long"})
		default:
			h.logger.Error("update entry failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update entry"})
		}
		return
	}

	c.JSON(http.StatusOK, entryView(item))
}

// DeleteEntry maneja DELETE /entries/:id.
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	if err := h.journal.DeleteEntry(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
			return
		}
		h.logger.Error("delete entry failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete entry"})
		return
	}

	c.Status(http.StatusNoContent)
}

// intQuery parsea un query param entero opcional. Escribe la respuesta 400
// y devuelve ok=false si el valor no es numérico.
func intQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return v, true
}
