package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	domain "github.com/bryanwahyu/promptlens/internal/domain/prompts"
)

type PromptRepository struct {
	db *sql.DB
}

func NewPromptRepository(db *sql.DB) *PromptRepository {
	return &PromptRepository{db: db}
}

// Create inserts one record, assigning id and created_at when empty
func (r *PromptRepository) Create(ctx context.Context, p *domain.Record) error {
	const q = `
INSERT INTO prompts
  (id, image_url, original_prompt, edited_prompt, created_at)
VALUES (?,?,?,?,?);
`
	if p.ID == "" {
		p.ID = domain.RecordID(uuid.NewString())
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	_, err := r.db.ExecContext(ctx, q, p.ID, nullIfBlank(p.ImageURL), p.OriginalPrompt, nullIfBlank(p.EditedPrompt), p.CreatedAt)
	return err
}

// List returns all records ordered by created_at desc
func (r *PromptRepository) List(ctx context.Context) ([]*domain.Record, error) {
	const q = `
SELECT id, image_url, original_prompt, edited_prompt, created_at
FROM prompts
ORDER BY created_at DESC, id DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Record
	for rows.Next() {
		var p domain.Record
		var imageURL, edited sql.NullString
		if err := rows.Scan(&p.ID, &imageURL, &p.OriginalPrompt, &edited, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.ImageURL = ptrOrNil(imageURL)
		p.EditedPrompt = ptrOrNil(edited)
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Delete removes the row if present; a missing id is not an error
func (r *PromptRepository) Delete(ctx context.Context, id domain.RecordID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM prompts WHERE id=?`, id)
	return err
}
