package bonsai

import (
	"context"
	"errors"
	"testing"

	filestore "bonsai-backend/internal/shared/storage/docstore/file"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewRepo(filestore.New(t.TempDir()).Collection("bonsai")))
}

func TestCreateRequiresName(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Create(context.Background(), "u1", Bonsai{Species: "黒松"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "u1", Bonsai{Name: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("whitespace name should be rejected, got %v", err)
	}
}

func TestCreateAndGetScopedToOwner(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), "u1", Bonsai{Name: "三河黒松", Species: "黒松"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.UserID != "u1" {
		t.Fatalf("unexpected created bonsai %+v", created)
	}
	if created.ImageURLs == nil {
		t.Fatalf("imageUrls should be an empty list, not null")
	}

	got, err := svc.Get(context.Background(), "u1", created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "三河黒松" {
		t.Fatalf("unexpected bonsai %+v", got)
	}

	if _, err := svc.Get(context.Background(), "intruder", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign access should look like a missing bonsai, got %v", err)
	}
}

func TestUpdateKeepsIdentity(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), "u1", Bonsai{Name: "小品もみじ", Species: "もみじ"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), "u1", created.ID, Bonsai{
		Name:    "小品もみじ",
		Species: "もみじ",
		// Attempt to hijack ownership must be ignored.
		UserID: "intruder",
		ID:     "other-id",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID || updated.UserID != "u1" {
		t.Fatalf("identity must be preserved, got %+v", updated)
	}
}

func TestDeleteScopedToOwner(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), "u1", Bonsai{Name: "真柏"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), "intruder", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign delete should be ErrNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), "u1", created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), "u1", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted bonsai should be gone, got %v", err)
	}
}

func TestListReturnsOnlyOwnPlants(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Create(context.Background(), "u1", Bonsai{Name: "黒松"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), "u2", Bonsai{Name: "けやき"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	plants, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(plants) != 1 || plants[0].Name != "黒松" {
		t.Fatalf("unexpected list %+v", plants)
	}
}
