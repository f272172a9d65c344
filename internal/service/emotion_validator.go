package service

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"journal-llm/internal/domain"
)

const (
	// correctedConfidenceCeiling es el techo de confianza cuando hubo
	// correcciones: la fuente original ya demostró ser menos confiable.
	correctedConfidenceCeiling = 0.70

	// minKeywords dispara el respaldo léxico cuando quedan menos claves.
	minKeywords = 2
)

// EmotionValidator es la capa de corrección permanente: todo candidato pasa
// por acá antes de persistirse, sin importar qué clasificador lo produjo.
// Nunca rechaza un resultado; lo corrige y deja registro del motivo.
type EmotionValidator struct {
	logger *zap.Logger
}

func NewEmotionValidator(logger *zap.Logger) *EmotionValidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmotionValidator{logger: logger}
}

// Validate aplica las correcciones en orden fijo: signo y rango del puntaje,
// evidencia textual, calidad de keywords y techo de confianza. Corrected
// queda en true solo si alguno de los tres primeros pasos alteró un campo.
//
// Una emoción fuera de la enumeración denota un bug del caller y revienta en
// Polarity; los clasificadores propios jamás la emiten.
func (v *EmotionValidator) Validate(candidate domain.MoodResult, text string) domain.MoodAnalysis {
	emotion := candidate.Emotion
	score := candidate.Score
	confidence := clampFloat(candidate.Confidence, 0.0, 1.0)
	var reasons []string

	// Paso 1: el signo del puntaje debe coincidir con la polaridad de la
	// emoción. Se corrige con la misma magnitud, re-signada, y después se
	// ajusta al rango plausible de la emoción.
	if polarity := emotion.Polarity(); (polarity > 0 && score < 0) || (polarity < 0 && score > 0) {
		v.logger.Warn("sign mismatch corrected",
			zap.String("emotion", string(emotion)),
			zap.Float64("score", score),
			zap.String("source", string(candidate.Source)),
		)
		score = -score
		reasons = append(reasons, domain.CorrectionSignMismatch)
	}
	if lo, hi := emotion.ScoreRange(); score < lo || score > hi {
		score = clampFloat(score, lo, hi)
		reasons = append(reasons, domain.CorrectionScoreOutOfRange)
	}

	// Paso 2: contraste contra la evidencia del texto. Si la emoción
	// declarada no tiene ningún marcador léxico y otra sí, gana la que
	// tiene evidencia y el puntaje se recalcula desde el léxico.
	tokens := tokenize(text)
	matches := matchMarkers(tokens)
	counts := emotionMatchCounts(matches)

	if counts[emotion] == 0 {
		if best, ok := bestSupportedEmotion(counts); ok {
			v.logger.Warn("no text evidence for claimed emotion",
				zap.String("claimed", string(emotion)),
				zap.String("detected", string(best)),
				zap.Int("matches", counts[best]),
			)
			emotion = best
			score, confidence = lexicalScore(best, counts[best])
			reasons = append(reasons, domain.CorrectionNoTextEvidence)
		}
	}

	// Paso 3: calidad de keywords. Fuera stopwords, duplicados y palabras
	// que no están en el texto; si quedan pocas, se rellena con los
	// marcadores encontrados y luego con palabras de contenido.
	keywords, changed := qualityKeywords(candidate.Keywords, tokens, matches, text)
	if changed {
		reasons = append(reasons, domain.CorrectionKeywordQuality)
	}

	// Paso 4: techo de confianza tras correcciones. No es una corrección
	// en sí; refleja la menor confianza en la fuente.
	corrected := len(reasons) > 0
	if corrected && confidence > correctedConfidenceCeiling {
		confidence = correctedConfidenceCeiling
	}

	return domain.MoodAnalysis{
		Score:            score,
		Emotion:          emotion,
		Confidence:       confidence,
		Keywords:         keywords,
		Source:           candidate.Source,
		Corrected:        corrected,
		CorrectionReason: strings.Join(reasons, ","),
		AnalyzedAt:       time.Now().UTC(),
	}
}

// bestSupportedEmotion devuelve la emoción no neutral con más marcadores.
// Neutral nunca gana el recuento: ausencia de señal no es señal de neutral.
func bestSupportedEmotion(counts map[domain.Emotion]int) (domain.Emotion, bool) {
	var best domain.Emotion
	bestCount := 0
	for _, e := range tieBreakOrder {
		if e == domain.EmotionNeutral {
			continue
		}
		if counts[e] > bestCount {
			bestCount = counts[e]
			best = e
		}
	}
	return best, bestCount > 0
}

// qualityKeywords filtra las claves del candidato y rellena si hace falta.
// Devuelve true si el conjunto final difiere del original (ignorando caso).
func qualityKeywords(original []string, tokens []string, matches []markerMatch, text string) ([]string, bool) {
	seen := make(map[string]struct{})
	var kept []string

	add := func(word string) {
		if _, dup := seen[word]; dup {
			return
		}
		seen[word] = struct{}{}
		kept = append(kept, word)
	}

	for _, kw := range original {
		if len(kept) == maxKeywords {
			break
		}
		lower := strings.ToLower(strings.TrimSpace(kw))
		if lower == "" {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		// Las stopwords se descartan salvo que sean marcadores del léxico:
		// un marcador siempre es evidencia válida.
		if _, stop := stopWords[lower]; stop && !isLexiconMarker(lower) {
			continue
		}
		surface, ok := findSurfaceForm(lower, tokens, text)
		if !ok {
			continue
		}
		add(surface)
	}

	if len(kept) < minKeywords {
		for _, m := range matches {
			if len(kept) == maxKeywords {
				break
			}
			if m.negated {
				continue
			}
			add(m.token)
		}
		for _, w := range contentWords(tokens) {
			if len(kept) == maxKeywords {
				break
			}
			add(w)
		}
	}

	return kept, keywordsDiffer(original, kept)
}

func isLexiconMarker(word string) bool {
	if _, ok := unigramIndex[word]; ok {
		return true
	}
	_, ok := bigramIndex[word]
	return ok
}

func keywordsDiffer(original, final []string) bool {
	if len(original) != len(final) {
		return true
	}
	for i := range original {
		if !strings.EqualFold(strings.TrimSpace(original[i]), final[i]) {
			return true
		}
	}
	return false
}
