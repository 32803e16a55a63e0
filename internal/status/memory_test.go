package status

import (
	"context"
	"errors"
	"testing"

	"github.com/creative-automation/backend/internal/models"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() on missing id error = %v, want ErrNotFound", err)
	}
	if err := store.Update(ctx, "missing", func(*models.CampaignResult) {}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() on missing id error = %v, want ErrNotFound", err)
	}

	if err := store.Create(ctx, models.NewCampaignResult("c1", "", "")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := store.Update(ctx, "c1", func(r *models.CampaignResult) {
		r.Progress = 50
		r.Errors = append(r.Errors, "boom")
	}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := store.Get(ctx, "c1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Progress != 50 || len(got.Errors) != 1 {
		t.Errorf("Get() = %+v", got)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	seed := models.NewCampaignResult("c1", "", "")
	if err := store.Create(ctx, seed); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Mutating the seeded value or a read result must not leak into the store.
	seed.Progress = 99
	first, _ := store.Get(ctx, "c1")
	first.Errors = append(first.Errors, "tampered")

	got, _ := store.Get(ctx, "c1")
	if got.Progress != 0 {
		t.Errorf("store aliased the created value, progress = %d", got.Progress)
	}
	if len(got.Errors) != 0 {
		t.Errorf("store aliased a read result, errors = %v", got.Errors)
	}
}
