package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"journal-llm/internal/domain"
)

// EntryRepository define el contrato de persistencia para entradas del diario.
type EntryRepository interface {
	Create(ctx context.Context, entry domain.JournalEntry) error
	GetByID(ctx context.Context, id string) (domain.EntryWithMood, error)
	List(ctx context.Context, limit int) ([]domain.EntryWithMood, error)
	Update(ctx context.Context, entry domain.JournalEntry) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q string, limit int) ([]domain.EntryWithMood, error)
}

// PgEntryRepository implementa EntryRepository usando pgxpool.
type PgEntryRepository struct {
	pool *pgxpool.Pool
}

func NewPgEntryRepository(pool *pgxpool.Pool) *PgEntryRepository {
	return &PgEntryRepository{pool: pool}
}

const entryWithMoodColumns = `
	e.id, e.entry_date, e.title, e.content, e.word_count, e.created_at, e.updated_at,
	m.id, m.mood_score, m.dominant_emotion, m.confidence, m.keywords,
	m.source, m.corrected, m.correction_reason, m.analyzed_at
`

func (r *PgEntryRepository) Create(ctx context.Context, entry domain.JournalEntry) error {
	const query = `
		INSERT INTO journal_entries (id, entry_date, title, content, word_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	var title interface{}
	if entry.Title != "" {
		title = entry.Title
	}

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.EntryDate,
		title,
		entry.Content,
		entry.WordCount,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	return err
}

func (r *PgEntryRepository) GetByID(ctx context.Context, id string) (domain.EntryWithMood, error) {
	const query = `
		SELECT ` + entryWithMoodColumns + `
		FROM journal_entries e
		LEFT JOIN mood_analyses m ON m.entry_id = e.id
		WHERE e.id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	item, err := scanEntryWithMood(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.EntryWithMood{}, err
	}
	return item, err
}

func (r *PgEntryRepository) List(ctx context.Context, limit int) ([]domain.EntryWithMood, error) {
	const query = `
		SELECT ` + entryWithMoodColumns + `
		FROM journal_entries e
		LEFT JOIN mood_analyses m ON m.entry_id = e.id
		ORDER BY e.entry_date DESC, e.created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEntriesWithMood(rows)
}

func (r *PgEntryRepository) Update(ctx context.Context, entry domain.JournalEntry) error {
	const query = `
		UPDATE journal_entries
		SET title = $2, content = $3, word_count = $4, updated_at = $5
		WHERE id = $1
	`

	var title interface{}
	if entry.Title != "" {
		title = entry.Title
	}

	tag, err := r.pool.Exec(ctx, query,
		entry.ID,
		title,
		entry.Content,
		entry.WordCount,
		entry.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgEntryRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM journal_entries WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgEntryRepository) Search(ctx context.Context, q string, limit int) ([]domain.EntryWithMood, error) {
	const query = `
		SELECT ` + entryWithMoodColumns + `
		FROM journal_entries e
		LEFT JOIN mood_analyses m ON m.entry_id = e.id
		WHERE e.content ILIKE $1 OR e.title ILIKE $1
		ORDER BY e.entry_date DESC, e.created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, "%"+q+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEntriesWithMood(rows)
}

func collectEntriesWithMood(rows pgx.Rows) ([]domain.EntryWithMood, error) {
	var items []domain.EntryWithMood
	for rows.Next() {
		item, err := scanEntryWithMood(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// scanEntryWithMood arma la entrada y, si el LEFT JOIN trajo análisis,
// también el MoodAnalysis asociado.
func scanEntryWithMood(row pgx.Row) (domain.EntryWithMood, error) {
	var (
		item  domain.EntryWithMood
		title *string

		moodID     *string
		score      *float64
		emotion    *string
		confidence *float64
		keywords   []string
		source     *string
		corrected  *bool
		reason     *string
		analyzedAt *time.Time
	)

	err := row.Scan(
		&item.Entry.ID,
		&item.Entry.EntryDate,
		&title,
		&item.Entry.Content,
		&item.Entry.WordCount,
		&item.Entry.CreatedAt,
		&item.Entry.UpdatedAt,
		&moodID,
		&score,
		&emotion,
		&confidence,
		&keywords,
		&source,
		&corrected,
		&reason,
		&analyzedAt,
	)
	if err != nil {
		return domain.EntryWithMood{}, err
	}

	if title != nil {
		item.Entry.Title = *title
	}

	if moodID != nil {
		mood := domain.MoodAnalysis{
			ID:         *moodID,
			EntryID:    item.Entry.ID,
			Score:      *score,
			Emotion:    domain.Emotion(*emotion),
			Confidence: *confidence,
			Keywords:   keywords,
			Source:     domain.AnalysisSource(*source),
			Corrected:  *corrected,
			AnalyzedAt: *analyzedAt,
		}
		if reason != nil {
			mood.CorrectionReason = *reason
		}
		item.Mood = &mood
	}

	return item, nil
}
