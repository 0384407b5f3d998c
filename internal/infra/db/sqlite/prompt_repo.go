package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/bryanwahyu/promptlens/internal/domain/prompts"
)

// timeLayout is fixed width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type PromptRepository struct {
	db *sql.DB
}

func NewPromptRepository(db *sql.DB) *PromptRepository {
	return &PromptRepository{db: db}
}

func (r *PromptRepository) Create(ctx context.Context, p *domain.Record) error {
	if p.ID == "" {
		p.ID = domain.RecordID(uuid.NewString())
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.CreatedAt = p.CreatedAt.UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO prompts (id, image_url, original_prompt, edited_prompt, created_at) VALUES (?,?,?,?,?)`,
		string(p.ID), nullIfBlank(p.ImageURL), p.OriginalPrompt, nullIfBlank(p.EditedPrompt), p.CreatedAt.Format(timeLayout),
	)
	return err
}

func (r *PromptRepository) List(ctx context.Context) ([]*domain.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, image_url, original_prompt, edited_prompt, created_at
FROM prompts
ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Record
	for rows.Next() {
		var (
			p                domain.Record
			id, created      string
			imageURL, edited sql.NullString
		)
		if err := rows.Scan(&id, &imageURL, &p.OriginalPrompt, &edited, &created); err != nil {
			return nil, err
		}
		t, err := time.Parse(timeLayout, created)
		if err != nil {
			return nil, err
		}
		p.ID = domain.RecordID(id)
		p.CreatedAt = t
		if imageURL.Valid {
			p.ImageURL = &imageURL.String
		}
		if edited.Valid {
			p.EditedPrompt = &edited.String
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *PromptRepository) Delete(ctx context.Context, id domain.RecordID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM prompts WHERE id = ?`, string(id))
	return err
}

func nullIfBlank(s *string) sql.NullString {
	if s == nil || strings.TrimSpace(*s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
