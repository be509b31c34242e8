package workschedules

import (
	"context"
	"encoding/json"
	"errors"

	"bonsai-backend/internal/shared/storage/docstore"
)

// ErrNotFound is returned when a work schedule does not exist.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "work schedule not found" }

// Repo persists work schedules through the generic document store.
type Repo struct {
	col docstore.Collection
}

// NewRepo constructs a Repo over the given collection.
func NewRepo(col docstore.Collection) *Repo {
	return &Repo{col: col}
}

// ListByBonsai returns all schedules for one bonsai.
func (r *Repo) ListByBonsai(ctx context.Context, bonsaiID string) ([]WorkSchedule, error) {
	raws, err := r.col.Query(ctx, docstore.Filter{"bonsaiId": bonsaiID})
	if err != nil {
		return nil, err
	}
	out := make([]WorkSchedule, 0, len(raws))
	for _, raw := range raws {
		ws, err := decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, ws)
	}
	return out, nil
}

// GetByID returns one schedule.
func (r *Repo) GetByID(ctx context.Context, id string) (WorkSchedule, error) {
	raw, err := r.col.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return WorkSchedule{}, ErrNotFound
		}
		return WorkSchedule{}, err
	}
	return decode(raw)
}

// Create stores a new schedule; id and timestamps are store-assigned.
func (r *Repo) Create(ctx context.Context, ws WorkSchedule) (WorkSchedule, error) {
	raw, err := r.col.Create(ctx, ws)
	if err != nil {
		return WorkSchedule{}, err
	}
	return decode(raw)
}

// Update overwrites an existing schedule document.
func (r *Repo) Update(ctx context.Context, ws WorkSchedule) (WorkSchedule, error) {
	raw, err := r.col.Update(ctx, ws.ID, ws)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return WorkSchedule{}, ErrNotFound
		}
		return WorkSchedule{}, err
	}
	return decode(raw)
}

// Delete removes a schedule document.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.col.Delete(ctx, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func decode(raw json.RawMessage) (WorkSchedule, error) {
	var ws WorkSchedule
	if err := json.Unmarshal(raw, &ws); err != nil {
		return WorkSchedule{}, err
	}
	return ws, nil
}
