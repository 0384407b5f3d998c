package prompts

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/bryanwahyu/promptlens/internal/application"
	"github.com/bryanwahyu/promptlens/internal/domain/image"
	domain "github.com/bryanwahyu/promptlens/internal/domain/prompts"
)

// Service implements the prompt history use-cases.
// Previews is optional; without it image_url is truncated to PreviewMaxLen
// runes (a value <= 0 disables truncation).
type Service struct {
	Repo          domain.Repository
	Previews      domain.PreviewStore
	Clock         application.Clock
	PreviewMaxLen int
}

// SaveCommand is the create payload. Nil pointers mean "not supplied".
type SaveCommand struct {
	ImageURL       *string
	OriginalPrompt string
	EditedPrompt   *string
}

// List returns every record, newest first. Never returns a nil slice.
func (s *Service) List(ctx context.Context) ([]*domain.Record, error) {
	list, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	if list == nil {
		list = []*domain.Record{}
	}
	return list, nil
}

// Save inserts one record and returns it with the store-assigned id and created_at.
func (s *Service) Save(ctx context.Context, cmd SaveCommand) (*domain.Record, error) {
	if strings.TrimSpace(cmd.OriginalPrompt) == "" {
		return nil, domain.ErrOriginalPromptRequired
	}

	rec := &domain.Record{
		OriginalPrompt: cmd.OriginalPrompt,
		EditedPrompt:   editedOrNil(cmd.OriginalPrompt, cmd.EditedPrompt),
	}

	imageURL, err := s.previewRef(ctx, lo.FromPtr(cmd.ImageURL))
	if err != nil {
		return nil, fmt.Errorf("failed to save prompt: %w", err)
	}
	rec.ImageURL = lo.EmptyableToPtr(imageURL)

	if err := s.Repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save prompt: %w", err)
	}
	return rec, nil
}

// Delete removes a record by id. Unknown ids succeed.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrIDRequired
	}
	if err := s.Repo.Delete(ctx, domain.RecordID(id)); err != nil {
		return fmt.Errorf("failed to delete prompt: %w", err)
	}
	return nil
}

// editedOrNil drops edits that are blank or identical to the original.
func editedOrNil(original string, edited *string) *string {
	if edited == nil || strings.TrimSpace(*edited) == "" || *edited == original {
		return nil
	}
	v := *edited
	return &v
}

// previewRef uploads inline images when a preview store is configured and
// truncates everything else.
func (s *Service) previewRef(ctx context.Context, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if s.Previews != nil && image.IsDataURI(raw) {
		if img, err := image.Parse(raw); err == nil {
			url, err := s.Previews.Put(ctx, s.previewKey(img), img.MediaType, img.Data)
			if err != nil {
				return "", fmt.Errorf("failed to store preview: %w", err)
			}
			return url, nil
		}
	}
	return truncateRunes(raw, s.PreviewMaxLen), nil
}

func (s *Service) previewKey(img image.DataURI) string {
	var clock application.Clock = application.SystemClock{}
	if s.Clock != nil {
		clock = s.Clock
	}
	day := clock.Now().UTC().Format("2006/01/02")
	return fmt.Sprintf("previews/%s/%s%s", day, uuid.NewString(), img.Extension())
}

func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
