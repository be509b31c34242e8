package workrecords

import (
	"context"
	"encoding/json"
	"errors"

	"bonsai-backend/internal/shared/storage/docstore"
)

// ErrNotFound is returned when a work record does not exist.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "work record not found" }

// Repo persists work records through the generic document store.
type Repo struct {
	col docstore.Collection
}

// NewRepo constructs a Repo over the given collection.
func NewRepo(col docstore.Collection) *Repo {
	return &Repo{col: col}
}

// ListByBonsai returns all records for one bonsai, unfiltered by month.
// Month filtering is the report aggregator's responsibility.
func (r *Repo) ListByBonsai(ctx context.Context, bonsaiID string) ([]WorkRecord, error) {
	raws, err := r.col.Query(ctx, docstore.Filter{"bonsaiId": bonsaiID})
	if err != nil {
		return nil, err
	}
	out := make([]WorkRecord, 0, len(raws))
	for _, raw := range raws {
		rec, err := decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// GetByID returns one record.
func (r *Repo) GetByID(ctx context.Context, id string) (WorkRecord, error) {
	raw, err := r.col.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return WorkRecord{}, ErrNotFound
		}
		return WorkRecord{}, err
	}
	return decode(raw)
}

// Create stores a new record; id and timestamps are store-assigned.
func (r *Repo) Create(ctx context.Context, rec WorkRecord) (WorkRecord, error) {
	raw, err := r.col.Create(ctx, rec)
	if err != nil {
		return WorkRecord{}, err
	}
	return decode(raw)
}

// Update overwrites an existing record document.
func (r *Repo) Update(ctx context.Context, rec WorkRecord) (WorkRecord, error) {
	raw, err := r.col.Update(ctx, rec.ID, rec)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return WorkRecord{}, ErrNotFound
		}
		return WorkRecord{}, err
	}
	return decode(raw)
}

// Delete removes a record document.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.col.Delete(ctx, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func decode(raw json.RawMessage) (WorkRecord, error) {
	var rec WorkRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return WorkRecord{}, err
	}
	return rec, nil
}
