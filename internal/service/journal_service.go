package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"journal-llm/internal/domain"
	"journal-llm/internal/repository"
)

var (
	ErrEmptyContent  = errors.New("entry content empty")
	ErrEntryTooLong  = errors.New("entry content too long")
	ErrEntryNotFound = errors.New("entry not found")
	ErrEmptySearch   = errors.New("search query empty")
)

const defaultListLimit = 50

// JournalService coordina el ciclo de vida de las entradas del diario y
// dispara el análisis de ánimo en cada escritura.
type JournalService struct {
	logger         *zap.Logger
	entries        repository.EntryRepository
	moods          repository.MoodRepository
	analyzer       *MoodService
	cache          StatsCache
	maxEntryLength int
}

func NewJournalService(
	logger *zap.Logger,
	entries repository.EntryRepository,
	moods repository.MoodRepository,
	analyzer *MoodService,
	cache StatsCache,
	maxEntryLength int,
) *JournalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalService{
		logger:         logger,
		entries:        entries,
		moods:          moods,
		analyzer:       analyzer,
		cache:          cache,
		maxEntryLength: maxEntryLength,
	}
}

type CreateEntryInput struct {
	EntryDate time.Time
	Title     string
	Content   string
}

type UpdateEntryInput struct {
	Title   *string
	Content *string
}

// CreateEntry valida, persiste y analiza una entrada nueva. El análisis es
// best-effort: si su persistencia falla la entrada ya quedó guardada y se
// devuelve sin mood.
func (s *JournalService) CreateEntry(ctx context.Context, input CreateEntryInput) (domain.EntryWithMood, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return domain.EntryWithMood{}, ErrEmptyContent
	}
	if s.maxEntryLength > 0 && utf8.RuneCountInString(content) > s.maxEntryLength {
		return domain.EntryWithMood{}, ErrEntryTooLong
	}

	now := time.Now().UTC()
	entryDate := input.EntryDate
	if entryDate.IsZero() {
		entryDate = now
	}
	entryDate = time.Date(entryDate.Year(), entryDate.Month(), entryDate.Day(), 0, 0, 0, 0, time.UTC)

	entry := domain.JournalEntry{
		ID:        uuid.NewString(),
		EntryDate: entryDate,
		Title:     strings.TrimSpace(input.Title),
		Content:   content,
		WordCount: len(strings.Fields(content)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		return domain.EntryWithMood{}, err
	}

	item := domain.EntryWithMood{Entry: entry}
	if mood, err := s.analyzeAndStore(ctx, entry.ID, content); err != nil {
		s.logger.Warn("mood analysis not persisted", zap.String("entry_id", entry.ID), zap.Error(err))
	} else {
		item.Mood = mood
	}

	s.invalidateStats()
	return item, nil
}

// GetEntry devuelve una entrada con su análisis, si lo tiene.
func (s *JournalService) GetEntry(ctx context.Context, id string) (domain.EntryWithMood, error) {
	item, err := s.entries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.EntryWithMood{}, ErrEntryNotFound
		}
		return domain.EntryWithMood{}, err
	}
	return item, nil
}

// ListEntries devuelve las entradas más recientes.
func (s *JournalService) ListEntries(ctx context.Context, limit int) ([]domain.EntryWithMood, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.entries.List(ctx, limit)
}

// UpdateEntry aplica cambios parciales y, si el contenido cambió, vuelve a
// analizar la entrada.
func (s *JournalService) UpdateEntry(ctx context.Context, id string, input UpdateEntryInput) (domain.EntryWithMood, error) {
	existing, err := s.GetEntry(ctx, id)
	if err != nil {
		return domain.EntryWithMood{}, err
	}

	entry := existing.Entry
	contentChanged := false

	if input.Title != nil {
		entry.Title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		content := strings.TrimSpace(*input.Content)
		if content == "" {
			return domain.EntryWithMood{}, ErrEmptyContent
		}
		if s.maxEntryLength > 0 && utf8.RuneCountInString(content) > s.maxEntryLength {
			return domain.EntryWithMood{}, ErrEntryTooLong
		}
		contentChanged = content != entry.Content
		entry.Content = content
		entry.WordCount = len(strings.Fields(content))
	}

	entry.UpdatedAt = time.Now().UTC()

	if err := s.entries.Update(ctx, entry); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.EntryWithMood{}, ErrEntryNotFound
		}
		return domain.EntryWithMood{}, err
	}

	item := domain.EntryWithMood{Entry: entry, Mood: existing.Mood}
	if contentChanged {
		if mood, err := s.analyzeAndStore(ctx, entry.ID, entry.Content); err != nil {
			s.logger.Warn("mood analysis not persisted", zap.String("entry_id", entry.ID), zap.Error(err))
			item.Mood = nil
		} else {
			item.Mood = mood
		}
	}

	s.invalidateStats()
	return item, nil
}

// DeleteEntry borra la entrada y su análisis por cascada.
func (s *JournalService) DeleteEntry(ctx context.Context, id string) error {
	if err := s.entries.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrEntryNotFound
		}
		return err
	}
	s.invalidateStats()
	return nil
}

// SearchEntries busca texto libre en contenido y título.
func (s *JournalService) SearchEntries(ctx context.Context, q string, limit int) ([]domain.EntryWithMood, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrEmptySearch
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.entries.Search(ctx, q, limit)
}

func (s *JournalService) analyzeAndStore(ctx context.Context, entryID, content string) (*domain.MoodAnalysis, error) {
	analysis := s.analyzer.Analyze(ctx, content)
	analysis.ID = uuid.NewString()
	analysis.EntryID = entryID

	if err := s.moods.Upsert(ctx, analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (s *JournalService) invalidateStats() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(); err != nil {
		s.logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
}
