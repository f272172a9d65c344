package service

import (
	"math"

	"github.com/jonreiter/govader"

	"journal-llm/internal/domain"
)

// maxKeywords acota la lista de palabras clave de cualquier resultado.
const maxKeywords = 8

// RuleClassifier es el clasificador léxico determinista. Es una función
// total: siempre produce un candidato, en tiempo acotado, sin tocar la red.
type RuleClassifier struct {
	vader *govader.SentimentIntensityAnalyzer
}

func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Classify vota emociones por marcadores ponderados y mezcla la magnitud con
// la valencia compuesta de VADER. Cero coincidencias -> neutral con puntaje
// exactamente 0.
func (c *RuleClassifier) Classify(text string) domain.MoodResult {
	tokens := tokenize(text)
	matches := matchMarkers(tokens)
	votes := emotionVotes(matches)

	var totalMagnitude, netValence float64
	matchCount := 0
	for _, m := range matches {
		if m.negated {
			continue
		}
		totalMagnitude += m.weight
		netValence += m.weight * float64(m.emotion.Polarity())
		matchCount++
	}

	if totalMagnitude == 0 {
		return domain.MoodResult{
			Score:      0.0,
			Emotion:    domain.EmotionNeutral,
			Confidence: 0.5,
			Keywords:   nil,
			Source:     domain.SourceRule,
		}
	}

	dominant := dominantEmotion(votes)

	// La magnitud mezcla la señal de marcadores (normalizada por el voto
	// total) con el compuesto de VADER; el signo lo impone la polaridad de
	// la emoción dominante.
	raw := netValence / totalMagnitude
	compound := c.vader.PolarityScores(text).Compound
	magnitude := 0.75*math.Abs(raw) + 0.25*math.Abs(compound)

	var score float64
	switch {
	case dominant.Polarity() > 0:
		score = magnitude
	case dominant.Polarity() < 0:
		score = -magnitude
	default:
		// Dominante neutral: conserva un residuo de la valencia VADER
		// dentro del rango neutral.
		score = 0.15 * compound
	}
	lo, hi := dominant.ScoreRange()
	score = math.Round(clampFloat(score, lo, hi)*100) / 100

	confidence := math.Min(0.85, 0.50+2.5*float64(matchCount)/float64(len(tokens)))

	return domain.MoodResult{
		Score:      score,
		Emotion:    dominant,
		Confidence: math.Round(confidence*100) / 100,
		Keywords:   matchedKeywords(matches),
		Source:     domain.SourceRule,
	}
}

// dominantEmotion elige la emoción con más voto ponderado. Los empates se
// resuelven con tieBreakOrder, recorriendo siempre en ese orden fijo.
func dominantEmotion(votes map[domain.Emotion]float64) domain.Emotion {
	dominant := domain.EmotionNeutral
	best := 0.0
	for _, e := range tieBreakOrder {
		if v := votes[e]; v > best {
			best = v
			dominant = e
		}
	}
	return dominant
}

// matchedKeywords devuelve los marcadores no negados como palabras clave,
// sin duplicados, en orden de primera aparición y acotados a maxKeywords.
func matchedKeywords(matches []markerMatch) []string {
	seen := make(map[string]struct{})
	var keywords []string
	for _, m := range matches {
		if m.negated {
			continue
		}
		if _, dup := seen[m.token]; dup {
			continue
		}
		seen[m.token] = struct{}{}
		keywords = append(keywords, m.token)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
