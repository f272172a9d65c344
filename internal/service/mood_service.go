package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"journal-llm/internal/domain"
)

const defaultAnalysisTimeout = 20 * time.Second

// MoodService orquesta el pipeline híbrido: intenta el clasificador por
// modelo con plazo acotado, cae al clasificador por reglas ante cualquier
// falla y pasa el candidato (venga de donde venga) una sola vez por el
// validador. Es total: el caller nunca recibe un error de análisis.
type MoodService struct {
	model     *ModelClassifier
	rule      *RuleClassifier
	validator *EmotionValidator
	breaker   *gobreaker.CircuitBreaker
	timeout   time.Duration
	logger    *zap.Logger
}

func NewMoodService(
	model *ModelClassifier,
	rule *RuleClassifier,
	validator *EmotionValidator,
	timeout time.Duration,
	logger *zap.Logger,
) *MoodService {
	if timeout <= 0 {
		timeout = defaultAnalysisTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// El breaker corta llamadas al modelo cuando el servicio viene fallando
	// seguido; mientras está abierto el fallback responde al instante.
	settings := gobreaker.Settings{
		Name:        "ollama",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var nte *nonTrippingError
			return errors.As(err, &nte)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("model circuit state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &MoodService{
		model:     model,
		rule:      rule,
		validator: validator,
		breaker:   gobreaker.NewCircuitBreaker(settings),
		timeout:   timeout,
		logger:    logger,
	}
}

// Analyze produce exactamente un resultado final por entrada. Texto vacío o
// solo espacios devuelve un neutral con confianza cero sin tocar los
// clasificadores.
func (s *MoodService) Analyze(ctx context.Context, text string) domain.MoodAnalysis {
	normalized := normalizeEntryText(text)
	if strings.TrimSpace(normalized) == "" {
		return domain.MoodAnalysis{
			Score:      0.0,
			Emotion:    domain.EmotionNeutral,
			Confidence: 0.0,
			Source:     domain.SourceNone,
			AnalyzedAt: time.Now().UTC(),
		}
	}

	candidate, err := s.classifyWithModel(ctx, normalized)
	if err != nil {
		s.logger.Warn("model classification failed, falling back to rules", zap.Error(err))
		candidate = s.rule.Classify(normalized)
	}

	return s.validator.Validate(candidate, normalized)
}

// classifyWithModel acota el intento con el timeout configurado y lo pasa
// por el circuit breaker. Las fallas de parseo no abren el circuito: el
// servicio respondió, aunque mal; solo transporte y timeouts cuentan.
func (s *MoodService) classifyWithModel(ctx context.Context, text string) (domain.MoodResult, error) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.breaker.Execute(func() (interface{}, error) {
		result, err := s.model.Classify(cctx, text)
		if err != nil {
			if errors.Is(err, ErrMalformedResponse) || errors.Is(err, ErrUnknownEmotion) || errors.Is(err, ErrScoreOutOfBounds) {
				return nil, &nonTrippingError{err: err}
			}
			return nil, err
		}
		return result, nil
	})
	if err != nil {
		var nte *nonTrippingError
		if errors.As(err, &nte) {
			return domain.MoodResult{}, nte.err
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return domain.MoodResult{}, fmt.Errorf("%w: circuit open", ErrModelUnavailable)
		}
		return domain.MoodResult{}, err
	}

	return out.(domain.MoodResult), nil
}

// nonTrippingError envuelve fallas que no deben abrir el circuito.
type nonTrippingError struct {
	err error
}

func (e *nonTrippingError) Error() string {
	return e.err.Error()
}
