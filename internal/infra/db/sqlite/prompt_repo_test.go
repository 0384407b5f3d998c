package sqlite

import (
	"context"
	"testing"
	"time"

	domain "github.com/bryanwahyu/promptlens/internal/domain/prompts"
	"github.com/bryanwahyu/promptlens/internal/infra/db/migrations"
)

func newTestRepo(t *testing.T) *PromptRepository {
	t.Helper()

	db, err := Connect(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Connect error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := migrations.Up(db, migrations.SQLite); err != nil {
		t.Fatalf("migrations.Up error: %v", err)
	}
	return NewPromptRepository(db)
}

func strPtr(s string) *string { return &s }

func TestPromptRepository_CreateAssignsIDAndTime(t *testing.T) {
	repo := newTestRepo(t)

	rec := &domain.Record{OriginalPrompt: "a cat"}
	if err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.ID == "" {
		t.Error("expected id to be assigned")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("expected created_at to be assigned")
	}

	list, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 record, got %d", len(list))
	}
	got := list[0]
	if got.ID != rec.ID || got.OriginalPrompt != "a cat" {
		t.Errorf("unexpected record %+v", got)
	}
	if got.ImageURL != nil || got.EditedPrompt != nil {
		t.Errorf("expected nil optional fields, got image_url=%v edited_prompt=%v", got.ImageURL, got.EditedPrompt)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("created_at round trip: got %v, want %v", got.CreatedAt, rec.CreatedAt)
	}
}

func TestPromptRepository_OptionalFields(t *testing.T) {
	repo := newTestRepo(t)

	rec := &domain.Record{
		OriginalPrompt: "a cat",
		EditedPrompt:   strPtr("a black cat"),
		ImageURL:       strPtr("data:image/png;base64,AAAA"),
	}
	if err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	list, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	got := list[0]
	if got.EditedPrompt == nil || *got.EditedPrompt != "a black cat" {
		t.Errorf("EditedPrompt = %v", got.EditedPrompt)
	}
	if got.ImageURL == nil || *got.ImageURL != "data:image/png;base64,AAAA" {
		t.Errorf("ImageURL = %v", got.ImageURL)
	}
}

func TestPromptRepository_ListNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	older := &domain.Record{OriginalPrompt: "older", CreatedAt: base}
	newer := &domain.Record{OriginalPrompt: "newer", CreatedAt: base.Add(500 * time.Millisecond)}
	middle := &domain.Record{OriginalPrompt: "middle", CreatedAt: base.Add(5 * time.Millisecond)}
	for _, r := range []*domain.Record{older, newer, middle} {
		if err := repo.Create(context.Background(), r); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	list, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	want := []string{"newer", "middle", "older"}
	if len(list) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(list))
	}
	for i, w := range want {
		if list[i].OriginalPrompt != w {
			t.Errorf("list[%d] = %q, want %q", i, list[i].OriginalPrompt, w)
		}
	}
}

func TestPromptRepository_DeleteIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)

	keep := &domain.Record{OriginalPrompt: "keep"}
	drop := &domain.Record{OriginalPrompt: "drop"}
	for _, r := range []*domain.Record{keep, drop} {
		if err := repo.Create(context.Background(), r); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	for i := 0; i < 2; i++ {
		if err := repo.Delete(context.Background(), drop.ID); err != nil {
			t.Fatalf("Delete #%d error: %v", i+1, err)
		}
	}
	if err := repo.Delete(context.Background(), "missing"); err != nil {
		t.Fatalf("Delete missing error: %v", err)
	}

	list, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 1 || list[0].ID != keep.ID {
		t.Fatalf("unexpected records after delete: %+v", list)
	}
}

func TestPromptRepository_EmptyList(t *testing.T) {
	repo := newTestRepo(t)
	list, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no records, got %d", len(list))
	}
}
