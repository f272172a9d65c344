package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"journal-llm/internal/domain"
)

// MoodRepository define el contrato de persistencia para análisis de ánimo.
type MoodRepository interface {
	Upsert(ctx context.Context, analysis domain.MoodAnalysis) error
	ListForWindow(ctx context.Context, since time.Time) ([]domain.TimelinePoint, error)
	MonthlyAverages(ctx context.Context, since time.Time) ([]domain.MonthlyMood, error)
	TopKeywords(ctx context.Context, limit int) ([]domain.KeywordCount, error)
}

// PgMoodRepository implementa MoodRepository usando pgxpool.
type PgMoodRepository struct {
	pool *pgxpool.Pool
}

func NewPgMoodRepository(pool *pgxpool.Pool) *PgMoodRepository {
	return &PgMoodRepository{pool: pool}
}

// Upsert inserta el análisis de una entrada o reemplaza el existente.
// Cada entrada tiene a lo sumo un análisis vigente.
func (r *PgMoodRepository) Upsert(ctx context.Context, analysis domain.MoodAnalysis) error {
	const query = `
		INSERT INTO mood_analyses
			(id, entry_id, mood_score, dominant_emotion, confidence, keywords,
			 source, corrected, correction_reason, analyzed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (entry_id) DO UPDATE SET
			mood_score = EXCLUDED.mood_score,
			dominant_emotion = EXCLUDED.dominant_emotion,
			confidence = EXCLUDED.confidence,
			keywords = EXCLUDED.keywords,
			source = EXCLUDED.source,
			corrected = EXCLUDED.corrected,
			correction_reason = EXCLUDED.correction_reason,
			analyzed_at = EXCLUDED.analyzed_at
	`

	var reason interface{}
	if analysis.CorrectionReason != "" {
		reason = analysis.CorrectionReason
	}

	keywords := analysis.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	_, err := r.pool.Exec(ctx, query,
		analysis.ID,
		analysis.EntryID,
		analysis.Score,
		string(analysis.Emotion),
		analysis.Confidence,
		keywords,
		string(analysis.Source),
		analysis.Corrected,
		reason,
		analysis.AnalyzedAt,
	)
	return err
}

// ListForWindow devuelve los puntos (fecha, score, emoción) con entrada
// fechada desde since, en orden cronológico.
func (r *PgMoodRepository) ListForWindow(ctx context.Context, since time.Time) ([]domain.TimelinePoint, error) {
	const query = `
		SELECT e.entry_date, m.mood_score, m.dominant_emotion
		FROM mood_analyses m
		JOIN journal_entries e ON e.id = m.entry_id
		WHERE e.entry_date >= $1
		ORDER BY e.entry_date ASC, e.created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []domain.TimelinePoint
	for rows.Next() {
		var p domain.TimelinePoint
		var emotion string

		if err := rows.Scan(&p.Date, &p.Score, &emotion); err != nil {
			return nil, err
		}
		p.Emotion = domain.Emotion(emotion)
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}

// MonthlyAverages agrega score promedio y cantidad de entradas por mes
// calendario desde since.
func (r *PgMoodRepository) MonthlyAverages(ctx context.Context, since time.Time) ([]domain.MonthlyMood, error) {
	const query = `
		SELECT to_char(e.entry_date, 'YYYY-MM') AS month,
		       ROUND(AVG(m.mood_score)::numeric, 2)::float8,
		       COUNT(*)
		FROM mood_analyses m
		JOIN journal_entries e ON e.id = m.entry_id
		WHERE e.entry_date >= $1
		GROUP BY month
		ORDER BY month ASC
	`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var months []domain.MonthlyMood
	for rows.Next() {
		var m domain.MonthlyMood
		if err := rows.Scan(&m.Month, &m.AverageScore, &m.EntryCount); err != nil {
			return nil, err
		}
		months = append(months, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return months, nil
}

// TopKeywords cuenta la frecuencia de cada keyword sobre todos los análisis.
func (r *PgMoodRepository) TopKeywords(ctx context.Context, limit int) ([]domain.KeywordCount, error) {
	const query = `
		SELECT kw, COUNT(*) AS freq
		FROM mood_analyses m, unnest(m.keywords) AS kw
		GROUP BY kw
		ORDER BY freq DESC, kw ASC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []domain.KeywordCount
	for rows.Next() {
		var kc domain.KeywordCount
		if err := rows.Scan(&kc.Keyword, &kc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, kc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
