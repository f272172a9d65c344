package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"journal-llm/internal/domain"
)

type mockPromptRepo struct {
	prompts      []domain.ReflectionPrompt
	err          error
	lastCategory string
}

func (m *mockPromptRepo) ListActive(_ context.Context, category string) ([]domain.ReflectionPrompt, error) {
	m.lastCategory = category
	if m.err != nil {
		return nil, m.err
	}
	if category == "" {
		return m.prompts, nil
	}
	var out []domain.ReflectionPrompt
	for _, p := range m.prompts {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func seedEntryWithMood(entries *mockEntryRepo, moods *mockMoodRepo, id string, score float64) {
	entries.items[id] = domain.JournalEntry{ID: id, Content: "entry " + id}
	entries.order = append(entries.order, id)
	moods.byEntry[id] = domain.MoodAnalysis{ID: id + "-mood", EntryID: id, Score: score}
}

func TestSuggestionFor_Thresholds(t *testing.T) {
	if got := suggestionFor(nil); got != suggestionNoData {
		t.Fatalf("expected no-data suggestion, got %q", got)
	}
	if got := suggestionFor([]float64{0.2}); got != suggestionPositive {
		t.Fatalf("expected positive suggestion at the 0.2 boundary, got %q", got)
	}
	if got := suggestionFor([]float64{-0.2}); got != suggestionTough {
		t.Fatalf("expected tough suggestion at the -0.2 boundary, got %q", got)
	}
	if got := suggestionFor([]float64{0.1, -0.1}); got != suggestionMixed {
		t.Fatalf("expected mixed suggestion, got %q", got)
	}
}

func TestReflectionService_SuggestNoEntries(t *testing.T) {
	moods := newMockMoodRepo()
	entries := newMockEntryRepo(moods)
	svc := NewReflectionService(zap.NewNop(), entries, &mockPromptRepo{})

	got, err := svc.Suggest(context.Background())
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if got != suggestionNoData {
		t.Fatalf("expected no-data suggestion, got %q", got)
	}
}

func TestReflectionService_SuggestIgnoresEntriesWithoutMood(t *testing.T) {
	moods := newMockMoodRepo()
	entries := newMockEntryRepo(moods)
	seedEntryWithMood(entries, moods, "e1", -0.5)
	entries.items["e2"] = domain.JournalEntry{ID: "e2", Content: "sin análisis"}
	entries.order = append(entries.order, "e2")
	svc := NewReflectionService(zap.NewNop(), entries, &mockPromptRepo{})

	got, err := svc.Suggest(context.Background())
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if got != suggestionTough {
		t.Fatalf("expected tough suggestion, got %q", got)
	}
}

func TestReflectionService_SuggestPositiveWindow(t *testing.T) {
	moods := newMockMoodRepo()
	entries := newMockEntryRepo(moods)
	seedEntryWithMood(entries, moods, "e1", 0.6)
	seedEntryWithMood(entries, moods, "e2", 0.4)
	svc := NewReflectionService(zap.NewNop(), entries, &mockPromptRepo{})

	got, err := svc.Suggest(context.Background())
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if got != suggestionPositive {
		t.Fatalf("expected positive suggestion, got %q", got)
	}
}

func TestReflectionService_SuggestPropagatesListError(t *testing.T) {
	moods := newMockMoodRepo()
	entries := newMockEntryRepo(moods)
	entries.listErr = errors.New("db down")
	svc := NewReflectionService(zap.NewNop(), entries, &mockPromptRepo{})

	if _, err := svc.Suggest(context.Background()); err == nil {
		t.Fatalf("expected list error to propagate")
	}
}

func TestReflectionService_RandomPromptEmptyCatalog(t *testing.T) {
	moods := newMockMoodRepo()
	entries := newMockEntryRepo(moods)
	svc := NewReflectionService(zap.NewNop(), entries, &mockPromptRepo{})

	_, err := svc.RandomPrompt(context.Background(), "")
	if !errors.Is(err, ErrNoActivePrompts) {
		t.Fatalf("expected ErrNoActivePrompts, got %v", err)
	}
}

func TestReflectionService_RandomPromptFiltersByCategory(t *testing.T) {
	moods := newMockMoodRepo()
	entries := newMockEntryRepo(moods)
	prompts := &mockPromptRepo{prompts: []domain.ReflectionPrompt{
		{ID: "p1", Text: "What made you smile today?", Category: domain.PromptCategoryGratitude, Active: true},
		{ID: "p2", Text: "What challenged you today?", Category: domain.PromptCategoryChallenge, Active: true},
	}}
	svc := NewReflectionService(zap.NewNop(), entries, prompts)

	got, err := svc.RandomPrompt(context.Background(), domain.PromptCategoryGratitude)
	if err != nil {
		t.Fatalf("random prompt failed: %v", err)
	}
	if got.ID != "p1" {
		t.Fatalf("expected the gratitude prompt, got %+v", got)
	}
	if prompts.lastCategory != domain.PromptCategoryGratitude {
		t.Fatalf("expected category passed through, got %q", prompts.lastCategory)
	}
}

func TestReflectionService_ListPrompts(t *testing.T) {
	moods := newMockMoodRepo()
	entries := newMockEntryRepo(moods)
	prompts := &mockPromptRepo{prompts: []domain.ReflectionPrompt{
		{ID: "p1", Text: "What made you smile today?", Category: domain.PromptCategoryGratitude, Active: true},
	}}
	svc := NewReflectionService(zap.NewNop(), entries, prompts)

	got, err := svc.ListPrompts(context.Background(), "")
	if err != nil {
		t.Fatalf("list prompts failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("unexpected prompts: %+v", got)
	}
}
