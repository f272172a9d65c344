package domain

import (
	"fmt"
	"strings"
)

// Emotion es el conjunto cerrado de emociones que el pipeline puede asignar.
type Emotion string

const (
	EmotionHappy   Emotion = "happy"
	EmotionSad     Emotion = "sad"
	EmotionAnxious Emotion = "anxious"
	EmotionCalm    Emotion = "calm"
	EmotionAngry   Emotion = "angry"
	EmotionNeutral Emotion = "neutral"
)

// AllEmotions lista todas las emociones válidas en orden estable.
var AllEmotions = []Emotion{
	EmotionHappy,
	EmotionSad,
	EmotionAnxious,
	EmotionCalm,
	EmotionAngry,
	EmotionNeutral,
}

func (e Emotion) Valid() bool {
	switch e {
	case EmotionHappy, EmotionSad, EmotionAnxious, EmotionCalm, EmotionAngry, EmotionNeutral:
		return true
	}
	return false
}

// Polarity devuelve +1 para emociones positivas, -1 para negativas y 0 para
// neutral. Un mood score debe llevar el mismo signo que la polaridad de su emoción.
func (e Emotion) Polarity() int {
	switch e {
	case EmotionHappy, EmotionCalm:
		return 1
	case EmotionSad, EmotionAnxious, EmotionAngry:
		return -1
	case EmotionNeutral:
		return 0
	}
	panic(fmt.Sprintf("domain: polarity of invalid emotion %q", string(e)))
}

// ScoreRange devuelve el intervalo plausible de score para la emoción.
// Scores fuera del intervalo se consideran implausibles y el validador
// los recorta.
func (e Emotion) ScoreRange() (min, max float64) {
	switch e {
	case EmotionHappy:
		return 0.2, 1.0
	case EmotionCalm:
		return 0.1, 0.6
	case EmotionNeutral:
		return -0.15, 0.15
	case EmotionAnxious:
		return -0.8, -0.1
	case EmotionSad:
		return -0.9, -0.2
	case EmotionAngry:
		return -0.9, -0.3
	}
	panic(fmt.Sprintf("domain: score range of invalid emotion %q", string(e)))
}

// Color devuelve el color hex con el que los clientes pintan la emoción.
func (e Emotion) Color() string {
	switch e {
	case EmotionHappy:
		return "#FFE5E5"
	case EmotionSad:
		return "#E5F3FF"
	case EmotionAnxious:
		return "#FFF5E5"
	case EmotionCalm:
		return "#E5FFE5"
	case EmotionAngry:
		return "#FFE5F0"
	default:
		return "#F5F5F5"
	}
}

func (e Emotion) Emoji() string {
	switch e {
	case EmotionHappy:
		return "😊"
	case EmotionSad:
		return "😢"
	case EmotionAnxious:
		return "😰"
	case EmotionCalm:
		return "😌"
	case EmotionAngry:
		return "😠"
	default:
		return "😐"
	}
}

// ParseEmotion normaliza una etiqueta cruda (mayúsculas, espacios) a una
// Emotion. Nunca sustituye un default: una etiqueta desconocida es error,
// y el caller decide si cae al fallback.
func ParseEmotion(raw string) (Emotion, error) {
	e := Emotion(strings.ToLower(strings.TrimSpace(raw)))
	if !e.Valid() {
		return "", fmt.Errorf("unknown emotion %q", raw)
	}
	return e, nil
}
