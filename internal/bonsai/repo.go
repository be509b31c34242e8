package bonsai

import (
	"context"
	"encoding/json"
	"errors"

	"bonsai-backend/internal/shared/storage/docstore"
)

// ErrNotFound is returned when a bonsai does not exist or belongs to another user.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "bonsai not found" }

// Repo persists bonsai through the generic document store.
type Repo struct {
	col docstore.Collection
}

// NewRepo constructs a Repo over the given collection.
func NewRepo(col docstore.Collection) *Repo {
	return &Repo{col: col}
}

// ListByUser returns all bonsai owned by the user.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Bonsai, error) {
	raws, err := r.col.Query(ctx, docstore.Filter{"userId": userID})
	if err != nil {
		return nil, err
	}
	out := make([]Bonsai, 0, len(raws))
	for _, raw := range raws {
		b, err := decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// GetForUser returns a bonsai by id, scoped to its owner.
func (r *Repo) GetForUser(ctx context.Context, userID, id string) (Bonsai, error) {
	raw, err := r.col.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return Bonsai{}, ErrNotFound
		}
		return Bonsai{}, err
	}
	b, err := decode(raw)
	if err != nil {
		return Bonsai{}, err
	}
	if b.UserID != userID {
		return Bonsai{}, ErrNotFound
	}
	return b, nil
}

// Create stores a new bonsai; id and timestamps are store-assigned.
func (r *Repo) Create(ctx context.Context, b Bonsai) (Bonsai, error) {
	raw, err := r.col.Create(ctx, b)
	if err != nil {
		return Bonsai{}, err
	}
	return decode(raw)
}

// Update overwrites an existing bonsai document.
func (r *Repo) Update(ctx context.Context, b Bonsai) (Bonsai, error) {
	raw, err := r.col.Update(ctx, b.ID, b)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return Bonsai{}, ErrNotFound
		}
		return Bonsai{}, err
	}
	return decode(raw)
}

// Delete removes a bonsai document.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.col.Delete(ctx, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func decode(raw json.RawMessage) (Bonsai, error) {
	var b Bonsai
	if err := json.Unmarshal(raw, &b); err != nil {
		return Bonsai{}, err
	}
	return b, nil
}
