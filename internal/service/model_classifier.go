package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"journal-llm/internal/domain"
	"journal-llm/internal/llm"
)

// moodSystemPrompt fija el contrato JSON con el modelo. Las reglas de signo
// y los ejemplos reducen las respuestas contradictorias de modelos chicos.
const moodSystemPrompt = `Analyze this journal entry for emotional tone. Return ONLY valid JSON.

Rules:
- happy/calm entries MUST have POSITIVE mood_score (0.1 to 1.0)
- sad/anxious/angry entries MUST have NEGATIVE mood_score (-0.1 to -1.0)
- neutral entries have mood_score between -0.1 and 0.1
- Extract meaningful keywords, avoid common words like "today", "really", "because"

Examples:
- "peaceful walk, mindful morning" → {"mood_score": 0.4, "dominant_emotion": "calm", "confidence": 0.85, "keywords": ["peaceful", "mindful", "morning"]}
- "excited and proud of myself" → {"mood_score": 0.9, "dominant_emotion": "happy", "confidence": 0.95, "keywords": ["excited", "proud"]}
- "worried and stressed out" → {"mood_score": -0.6, "dominant_emotion": "anxious", "confidence": 0.85, "keywords": ["worried", "stressed"]}
- "regular uneventful day" → {"mood_score": 0.0, "dominant_emotion": "neutral", "confidence": 0.7, "keywords": ["regular", "uneventful"]}

Respond with EXACTLY this JSON format:
{"mood_score": <-1.0 to 1.0>, "dominant_emotion": "<happy/sad/anxious/calm/angry/neutral>", "confidence": <0 to 1>, "keywords": ["word1", "word2", "word3"]}`

// ModelClassifier clasifica entradas consultando el modelo local. Nunca
// adivina: cualquier respuesta que no cumpla el contrato se devuelve como
// error tipado para que el orquestador haga fallback.
type ModelClassifier struct {
	client llm.Client
	logger *zap.Logger
}

func NewModelClassifier(client llm.Client, logger *zap.Logger) *ModelClassifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModelClassifier{client: client, logger: logger}
}

// modelMoodResponse es el contrato de salida del modelo. Score y confianza
// son punteros para distinguir "campo ausente" de cero.
type modelMoodResponse struct {
	MoodScore       *float64     `json:"mood_score"`
	DominantEmotion string       `json:"dominant_emotion"`
	Confidence      *float64     `json:"confidence"`
	Keywords        flexKeywords `json:"keywords"`
}

func (c *ModelClassifier) Classify(ctx context.Context, text string) (domain.MoodResult, error) {
	prompt := fmt.Sprintf("%s\n\nJournal entry: %q\n\nJSON response:", moodSystemPrompt, strings.TrimSpace(text))

	raw, err := c.client.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return domain.MoodResult{}, fmt.Errorf("%w: %v", ErrModelTimeout, err)
		}
		return domain.MoodResult{}, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	jsonStr := extractFirstJSONObject(cleanModelJSON(raw))
	if jsonStr == "" {
		c.logger.Warn("model returned no JSON object", zap.String("raw", truncateForLog(raw)))
		return domain.MoodResult{}, fmt.Errorf("%w: no JSON object in output", ErrMalformedResponse)
	}

	var parsed modelMoodResponse
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		c.logger.Warn("model JSON did not parse", zap.Error(err), zap.String("json", truncateForLog(jsonStr)))
		return domain.MoodResult{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if parsed.MoodScore == nil || parsed.Confidence == nil || strings.TrimSpace(parsed.DominantEmotion) == "" {
		return domain.MoodResult{}, fmt.Errorf("%w: missing required fields", ErrMalformedResponse)
	}

	emotion, err := domain.ParseEmotion(parsed.DominantEmotion)
	if err != nil {
		return domain.MoodResult{}, fmt.Errorf("%w: %q", ErrUnknownEmotion, parsed.DominantEmotion)
	}

	score, confidence := *parsed.MoodScore, *parsed.Confidence
	if score < -1.0 || score > 1.0 {
		return domain.MoodResult{}, fmt.Errorf("%w: mood_score=%v", ErrScoreOutOfBounds, score)
	}
	if confidence < 0.0 || confidence > 1.0 {
		return domain.MoodResult{}, fmt.Errorf("%w: confidence=%v", ErrScoreOutOfBounds, confidence)
	}

	keywords := parsed.Keywords
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}

	// El control de calidad de keywords lo hace el validador; acá solo se
	// respeta la cota superior.
	return domain.MoodResult{
		Score:      score,
		Emotion:    emotion,
		Confidence: confidence,
		Keywords:   keywords,
		Source:     domain.SourceModel,
	}, nil
}

func truncateForLog(s string) string {
	const max = 200
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
