package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"journal-llm/internal/domain"
	"journal-llm/internal/llm"
)

func TestModelClassifier_Success(t *testing.T) {
	mock := &llm.MockClient{
		Response: `{"mood_score": -0.6, "dominant_emotion": "anxious", "confidence": 0.85, "keywords": ["worried", "exam"]}`,
	}
	c := NewModelClassifier(mock, zap.NewNop())

	got, err := c.Classify(context.Background(), "worried about the exam")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Score != -0.6 || got.Emotion != domain.EmotionAnxious || got.Confidence != 0.85 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if !reflect.DeepEqual(got.Keywords, []string{"worried", "exam"}) {
		t.Fatalf("unexpected keywords: %v", got.Keywords)
	}
	if got.Source != domain.SourceModel {
		t.Fatalf("expected source model, got %q", got.Source)
	}
	if !strings.Contains(mock.LastPrompt, "worried about the exam") {
		t.Fatalf("prompt does not include the entry text: %q", mock.LastPrompt)
	}
}

func TestModelClassifier_TransportError(t *testing.T) {
	mock := &llm.MockClient{Err: errors.New("connection refused")}
	c := NewModelClassifier(mock, zap.NewNop())

	_, err := c.Classify(context.Background(), "some entry")
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestModelClassifier_Timeout(t *testing.T) {
	mock := &llm.MockClient{Err: fmt.Errorf("request failed: %w", context.DeadlineExceeded)}
	c := NewModelClassifier(mock, zap.NewNop())

	_, err := c.Classify(context.Background(), "some entry")
	if !errors.Is(err, ErrModelTimeout) {
		t.Fatalf("expected ErrModelTimeout, got %v", err)
	}
}

func TestModelClassifier_NoJSONOutput(t *testing.T) {
	mock := &llm.MockClient{Response: "the mood seems positive overall"}
	c := NewModelClassifier(mock, zap.NewNop())

	_, err := c.Classify(context.Background(), "some entry")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestModelClassifier_MissingFields(t *testing.T) {
	mock := &llm.MockClient{Response: `{"dominant_emotion": "happy"}`}
	c := NewModelClassifier(mock, zap.NewNop())

	_, err := c.Classify(context.Background(), "some entry")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestModelClassifier_UnknownEmotion(t *testing.T) {
	mock := &llm.MockClient{
		Response: `{"mood_score": 0.5, "dominant_emotion": "ecstatic", "confidence": 0.9, "keywords": []}`,
	}
	c := NewModelClassifier(mock, zap.NewNop())

	_, err := c.Classify(context.Background(), "some entry")
	if !errors.Is(err, ErrUnknownEmotion) {
		t.Fatalf("expected ErrUnknownEmotion, got %v", err)
	}
}

func TestModelClassifier_ScoreOutOfBounds(t *testing.T) {
	mock := &llm.MockClient{
		Response: `{"mood_score": 1.5, "dominant_emotion": "happy", "confidence": 0.9, "keywords": []}`,
	}
	c := NewModelClassifier(mock, zap.NewNop())

	if _, err := c.Classify(context.Background(), "some entry"); !errors.Is(err, ErrScoreOutOfBounds) {
		t.Fatalf("expected ErrScoreOutOfBounds for score, got %v", err)
	}

	mock.Response = `{"mood_score": 0.5, "dominant_emotion": "happy", "confidence": 1.2, "keywords": []}`
	if _, err := c.Classify(context.Background(), "some entry"); !errors.Is(err, ErrScoreOutOfBounds) {
		t.Fatalf("expected ErrScoreOutOfBounds for confidence, got %v", err)
	}
}

func TestModelClassifier_FencedProseAndCommaKeywords(t *testing.T) {
	mock := &llm.MockClient{
		Response: "Sure! Here you go:\n```json\n{\"mood_score\": 0.4, \"dominant_emotion\": \"Calm\", \"confidence\": 0.8, \"keywords\": \"peaceful, quiet\"}\n```",
	}
	c := NewModelClassifier(mock, zap.NewNop())

	got, err := c.Classify(context.Background(), "quiet afternoon")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Emotion != domain.EmotionCalm {
		t.Fatalf("expected calm, got %q", got.Emotion)
	}
	if !reflect.DeepEqual(got.Keywords, []string{"peaceful", "quiet"}) {
		t.Fatalf("unexpected keywords: %v", got.Keywords)
	}
}

func TestModelClassifier_CapsKeywords(t *testing.T) {
	mock := &llm.MockClient{
		Response: `{"mood_score": 0.5, "dominant_emotion": "happy", "confidence": 0.9, "keywords": ["a","b","c","d","e","f","g","h","i","j"]}`,
	}
	c := NewModelClassifier(mock, zap.NewNop())

	got, err := c.Classify(context.Background(), "some entry")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got.Keywords) != maxKeywords {
		t.Fatalf("expected %d keywords, got %d", maxKeywords, len(got.Keywords))
	}
}
