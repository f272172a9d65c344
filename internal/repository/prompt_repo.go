package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"journal-llm/internal/domain"
)

// PromptRepository define el contrato de lectura para prompts de reflexión.
type PromptRepository interface {
	ListActive(ctx context.Context, category string) ([]domain.ReflectionPrompt, error)
}

// PgPromptRepository implementa PromptRepository usando pgxpool.
type PgPromptRepository struct {
	pool *pgxpool.Pool
}

func NewPgPromptRepository(pool *pgxpool.Pool) *PgPromptRepository {
	return &PgPromptRepository{pool: pool}
}

// ListActive devuelve los prompts activos, opcionalmente filtrados por categoría.
func (r *PgPromptRepository) ListActive(ctx context.Context, category string) ([]domain.ReflectionPrompt, error) {
	const queryAll = `
		SELECT id, prompt_text, category, is_active
		FROM reflection_prompts
		WHERE is_active = true
		ORDER BY category ASC, prompt_text ASC
	`
	const queryByCategory = `
		SELECT id, prompt_text, category, is_active
		FROM reflection_prompts
		WHERE is_active = true AND category = $1
		ORDER BY prompt_text ASC
	`

	var rows pgx.Rows
	var err error
	if category == "" {
		rows, err = r.pool.Query(ctx, queryAll)
	} else {
		rows, err = r.pool.Query(ctx, queryByCategory, category)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prompts []domain.ReflectionPrompt
	for rows.Next() {
		var p domain.ReflectionPrompt
		if err := rows.Scan(&p.ID, &p.Text, &p.Category, &p.Active); err != nil {
			return nil, err
		}
		prompts = append(prompts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return prompts, nil
}
