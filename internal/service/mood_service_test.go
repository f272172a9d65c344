package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"journal-llm/internal/domain"
	"journal-llm/internal/llm"
)

func newTestMoodService(mock *llm.MockClient) *MoodService {
	model := NewModelClassifier(mock, zap.NewNop())
	return NewMoodService(model, NewRuleClassifier(), NewEmotionValidator(zap.NewNop()), time.Second, zap.NewNop())
}

func TestMoodService_EmptyTextShortCircuits(t *testing.T) {
	mock := &llm.MockClient{Response: `{"mood_score": 0.5}`}
	svc := newTestMoodService(mock)

	got := svc.Analyze(context.Background(), "   \n\t ")

	if got.Emotion != domain.EmotionNeutral || got.Score != 0.0 || got.Confidence != 0.0 {
		t.Fatalf("unexpected empty-text analysis: %+v", got)
	}
	if got.Source != domain.SourceNone {
		t.Fatalf("expected source none, got %q", got.Source)
	}
	if got.Corrected {
		t.Fatalf("expected no correction for empty text")
	}
	if got.AnalyzedAt.IsZero() {
		t.Fatalf("expected analyzed_at set")
	}
	if mock.Calls != 0 {
		t.Fatalf("expected model untouched, got %d calls", mock.Calls)
	}
}

func TestMoodService_ModelSuccess(t *testing.T) {
	mock := &llm.MockClient{
		Response: `{"mood_score": 0.8, "dominant_emotion": "happy", "confidence": 0.9, "keywords": ["happy", "grateful"]}`,
	}
	svc := newTestMoodService(mock)

	got := svc.Analyze(context.Background(), "I am so happy and grateful today.")

	if got.Source != domain.SourceModel {
		t.Fatalf("expected source model, got %q", got.Source)
	}
	if got.Emotion != domain.EmotionHappy || got.Score != 0.8 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if got.Corrected {
		t.Fatalf("expected clean validation, got reason %q", got.CorrectionReason)
	}
	if mock.Calls != 1 {
		t.Fatalf("expected one model call, got %d", mock.Calls)
	}
}

func TestMoodService_FallsBackOnTransportError(t *testing.T) {
	mock := &llm.MockClient{Err: errors.New("connection refused")}
	svc := newTestMoodService(mock)

	got := svc.Analyze(context.Background(), "I feel so anxious about tomorrow's exam, I can't sleep.")

	if got.Source != domain.SourceRule {
		t.Fatalf("expected rule fallback, got %q", got.Source)
	}
	if got.Emotion != domain.EmotionAnxious {
		t.Fatalf("expected anxious from rules, got %q", got.Emotion)
	}
	if mock.Calls != 1 {
		t.Fatalf("expected one model attempt, got %d", mock.Calls)
	}
}

func TestMoodService_MalformedOutputDoesNotTripBreaker(t *testing.T) {
	mock := &llm.MockClient{Response: "I cannot produce JSON for that"}
	svc := newTestMoodService(mock)

	for i := 0; i < 7; i++ {
		got := svc.Analyze(context.Background(), "Felt down and annoyed.")
		if got.Source != domain.SourceRule {
			t.Fatalf("call %d: expected rule fallback, got %q", i, got.Source)
		}
	}

	// Las fallas de parseo no abren el circuito: el modelo se sigue
	// intentando en cada análisis.
	if mock.Calls != 7 {
		t.Fatalf("expected 7 model attempts, got %d", mock.Calls)
	}
}

func TestMoodService_BreakerOpensAfterConsecutiveTransportFailures(t *testing.T) {
	mock := &llm.MockClient{Err: errors.New("connection refused")}
	svc := newTestMoodService(mock)

	var last domain.MoodAnalysis
	for i := 0; i < 8; i++ {
		last = svc.Analyze(context.Background(), "Felt down and annoyed.")
	}

	// Quinta falla consecutiva abre el circuito; después el modelo ya no
	// se invoca y el fallback responde igual.
	if mock.Calls != 5 {
		t.Fatalf("expected 5 model attempts before the circuit opened, got %d", mock.Calls)
	}
	if last.Source != domain.SourceRule {
		t.Fatalf("expected rule fallback with open circuit, got %q", last.Source)
	}
}

func TestMoodService_ValidatorCorrectsModelOutput(t *testing.T) {
	mock := &llm.MockClient{
		Response: `{"mood_score": -0.6, "dominant_emotion": "happy", "confidence": 0.9, "keywords": ["happy"]}`,
	}
	svc := newTestMoodService(mock)

	got := svc.Analyze(context.Background(), "Everything feels awful and hopeless today.")

	if got.Source != domain.SourceModel {
		t.Fatalf("expected source model, got %q", got.Source)
	}
	if !got.Corrected {
		t.Fatalf("expected validator corrections")
	}
	if got.Emotion != domain.EmotionSad {
		t.Fatalf("expected override to sad, got %q", got.Emotion)
	}
	if got.Confidence > correctedConfidenceCeiling {
		t.Fatalf("expected confidence at most %v, got %v", correctedConfidenceCeiling, got.Confidence)
	}
}

func TestMoodService_DefaultTimeout(t *testing.T) {
	mock := &llm.MockClient{}
	model := NewModelClassifier(mock, zap.NewNop())
	svc := NewMoodService(model, NewRuleClassifier(), NewEmotionValidator(zap.NewNop()), 0, nil)

	if svc.timeout != defaultAnalysisTimeout {
		t.Fatalf("expected default timeout %v, got %v", defaultAnalysisTimeout, svc.timeout)
	}
}
