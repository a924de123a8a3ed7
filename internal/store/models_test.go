package store_test

import (
	"context"
	"errors"
	"testing"

	"agentstudio/internal/database"
	"agentstudio/internal/domain"
	"agentstudio/internal/store"
	"agentstudio/internal/testhelpers"
)

var _ store.ModelStore = (*store.SQLiteModelStore)(nil)

func setupModelStore(t *testing.T) *store.SQLiteModelStore {
	t.Helper()
	db := testhelpers.NewTestDB(t)
	ctx := context.Background()

	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return store.NewSQLiteModelStore(db)
}

func TestModelCreate(t *testing.T) {
	s := setupModelStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.Model{
		UserID:  "user@example.com",
		Model:   "gpt-4",
		APIKey:  "sk-test",
		APIType: domain.APITypeOpenAI,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if created.CreatedAt == "" || created.UpdatedAt == "" {
		t.Error("expected timestamps to be set")
	}
	if created.Model != "gpt-4" {
		t.Errorf("expected model=gpt-4, got %s", created.Model)
	}
}

func TestModelGet(t *testing.T) {
	s := setupModelStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.Model{
		UserID:     "user@example.com",
		Model:      "gpt-4-32k",
		BaseURL:    "https://example.com/v1",
		APIType:    domain.APITypeAzure,
		APIVersion: "2024-02-01",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Model != "gpt-4-32k" {
		t.Errorf("expected model=gpt-4-32k, got %s", got.Model)
	}
	if got.BaseURL != "https://example.com/v1" {
		t.Errorf("expected base_url to round-trip, got %s", got.BaseURL)
	}
	if got.APIVersion != "2024-02-01" {
		t.Errorf("expected api_version to round-trip, got %s", got.APIVersion)
	}
}

func TestModelGetNotFound(t *testing.T) {
	s := setupModelStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, 999)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestModelList(t *testing.T) {
	s := setupModelStore(t)
	ctx := context.Background()

	for _, name := range []string{"a-model", "b-model"} {
		if _, err := s.Create(ctx, &domain.Model{UserID: "one@example.com", Model: name}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := s.Create(ctx, &domain.Model{UserID: "two@example.com", Model: "c-model"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := s.List(ctx, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 models, got %d", len(all))
	}

	mine, err := s.List(ctx, "one@example.com")
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 models for user, got %d", len(mine))
	}
}

func TestModelUpdate(t *testing.T) {
	s := setupModelStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.Model{UserID: "user@example.com", Model: "old"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.Model = "new"
	created.Description = "renamed"
	updated, err := s.Update(ctx, created)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Model != "new" {
		t.Errorf("expected model=new, got %s", updated.Model)
	}
	if updated.Description != "renamed" {
		t.Errorf("expected description=renamed, got %s", updated.Description)
	}
}

func TestModelUpdateNotFound(t *testing.T) {
	s := setupModelStore(t)
	ctx := context.Background()

	_, err := s.Update(ctx, &domain.Model{ID: 999, Model: "ghost"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestModelDelete(t *testing.T) {
	s := setupModelStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.Model{UserID: "user@example.com", Model: "doomed"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestModelSpec(t *testing.T) {
	m := &domain.Model{
		ID:          7,
		UserID:      "user@example.com",
		Model:       "gpt-4",
		APIKey:      "sk-test",
		APIType:     domain.APITypeOpenAI,
		Description: "should not appear",
	}

	spec := m.Spec()
	if spec.Model != "gpt-4" || spec.APIKey != "sk-test" || spec.APIType != domain.APITypeOpenAI {
		t.Errorf("spec = %+v", spec)
	}
}
