package service

import (
	"context"
	"errors"
	"math/rand"

	"go.uber.org/zap"

	"journal-llm/internal/domain"
	"journal-llm/internal/repository"
)

// recentMoodWindow es cuántas entradas recientes pesan en la sugerencia.
const recentMoodWindow = 7

const (
	suggestionNoData = "Take a moment to check in with yourself. " +
		"How are you really feeling right now, and what do you need?"
	suggestionPositive = "You've been in a good place lately! " +
		"What's contributing to your positive energy, and how can you nurture it?"
	suggestionTough = "I notice you've been going through a tough time. " +
		"What's one small thing that brought you comfort or relief recently?"
	suggestionMixed = "Your recent days seem a bit mixed. " +
		"What patterns do you notice in your mood, and is there one small change " +
		"you'd like to try this week?"
)

var ErrNoActivePrompts = errors.New("no active prompts")

// ReflectionService sugiere consignas de escritura: una frase según el ánimo
// reciente y prompts precargados del catálogo.
type ReflectionService struct {
	logger  *zap.Logger
	entries repository.EntryRepository
	prompts repository.PromptRepository
}

func NewReflectionService(logger *zap.Logger, entries repository.EntryRepository, prompts repository.PromptRepository) *ReflectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReflectionService{
		logger:  logger,
		entries: entries,
		prompts: prompts,
	}
}

// Suggest elige la frase según el promedio de los scores de las últimas
// entradas analizadas.
func (s *ReflectionService) Suggest(ctx context.Context) (string, error) {
	items, err := s.entries.List(ctx, recentMoodWindow)
	if err != nil {
		return "", err
	}

	var scores []float64
	for _, item := range items {
		if item.Mood != nil {
			scores = append(scores, clampFloat(item.Mood.Score, -1.0, 1.0))
		}
	}

	return suggestionFor(scores), nil
}

func suggestionFor(scores []float64) string {
	if len(scores) == 0 {
		return suggestionNoData
	}

	var sum float64
	for _, v := range scores {
		sum += v
	}
	avg := sum / float64(len(scores))

	switch {
	case avg >= 0.2:
		return suggestionPositive
	case avg <= -0.2:
		return suggestionTough
	default:
		return suggestionMixed
	}
}

// ListPrompts devuelve el catálogo activo, opcionalmente filtrado por categoría.
func (s *ReflectionService) ListPrompts(ctx context.Context, category string) ([]domain.ReflectionPrompt, error) {
	return s.prompts.ListActive(ctx, category)
}

// RandomPrompt devuelve un prompt activo al azar, opcionalmente filtrado
// por categoría.
func (s *ReflectionService) RandomPrompt(ctx context.Context, category string) (domain.ReflectionPrompt, error) {
	prompts, err := s.prompts.ListActive(ctx, category)
	if err != nil {
		return domain.ReflectionPrompt{}, err
	}
	if len(prompts) == 0 {
		return domain.ReflectionPrompt{}, ErrNoActivePrompts
	}
	return prompts[rand.Intn(len(prompts))], nil
}
