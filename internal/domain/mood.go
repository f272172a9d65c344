package domain

import "time"

// AnalysisSource registra qué etapa del pipeline produjo el resultado.
type AnalysisSource string

const (
	// SourceNone marca resultados sintetizados sin correr clasificador,
	// por ejemplo para entradas vacías. Los clasificadores nunca lo emiten.
	SourceNone  AnalysisSource = "none"
	SourceModel AnalysisSource = "model"
	SourceRule  AnalysisSource = "rule"
)

// Códigos de razón de corrección que registra el validador.
const (
	CorrectionSignMismatch    = "sign_mismatch"
	CorrectionScoreOutOfRange = "score_out_of_range"
	CorrectionNoTextEvidence  = "no_text_evidence"
	CorrectionKeywordQuality  = "keyword_quality"
)

// MoodResult es una clasificación candidata tal como sale de un
// clasificador, antes de validar. Se pasa por valor y se trata como inmutable.
type MoodResult struct {
	Score      float64        `json:"mood_score"`
	Emotion    Emotion        `json:"dominant_emotion"`
	Confidence float64        `json:"confidence"`
	Keywords   []string       `json:"keywords"`
	Source     AnalysisSource `json:"source"`
}

// MoodAnalysis es la forma validada de un resultado, lista para persistir.
type MoodAnalysis struct {
	ID               string         `json:"id"`
	EntryID          string         `json:"entry_id,omitempty"`
	Score            float64        `json:"mood_score"`
	Emotion          Emotion        `json:"dominant_emotion"`
	Confidence       float64        `json:"confidence"`
	Keywords         []string       `json:"keywords"`
	Source           AnalysisSource `json:"source"`
	Corrected        bool           `json:"corrected"`
	CorrectionReason string         `json:"correction_reason,omitempty"`
	AnalyzedAt       time.Time      `json:"analyzed_at"`
}

// Result reduce el análisis a su forma candidata, por ejemplo para volver
// a pasarlo por el validador.
func (a MoodAnalysis) Result() MoodResult {
	return MoodResult{
		Score:      a.Score,
		Emotion:    a.Emotion,
		Confidence: a.Confidence,
		Keywords:   a.Keywords,
		Source:     a.Source,
	}
}
