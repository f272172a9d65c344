package domain

import "time"

// Etiquetas de tendencia para las estadísticas de ánimo.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// MoodStatistics resume los análisis guardados en una ventana de días.
// AverageScore no significa nada cuando TotalEntries es cero.
type MoodStatistics struct {
	TotalEntries        int             `json:"total_entries"`
	AverageScore        float64         `json:"average_score"`
	DominantEmotion     Emotion         `json:"dominant_emotion,omitempty"`
	EmotionDistribution map[Emotion]int `json:"emotion_distribution"`
	Trend               string          `json:"trend"`
}

// TimelinePoint es un score fechado sobre la línea de tiempo de ánimo.
type TimelinePoint struct {
	Date    time.Time `json:"date"`
	Score   float64   `json:"score"`
	Emotion Emotion   `json:"emotion"`
}

// MonthlyMood agrega scores dentro de un mes calendario ("2006-01").
type MonthlyMood struct {
	Month        string  `json:"month"`
	AverageScore float64 `json:"average_score"`
	EntryCount   int     `json:"entry_count"`
}

// KeywordCount es una keyword con su frecuencia entre los análisis guardados.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}
