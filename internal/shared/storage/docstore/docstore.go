package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no document matches the given identifier.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "document not found" }

// Filter matches documents by equality on top-level fields.
type Filter map[string]any

// Collection is the generic per-entity persistence contract. Documents are
// JSON objects with a server-assigned "id" and "createdAt"/"updatedAt"
// timestamps managed by the store.
type Collection interface {
	GetAll(ctx context.Context) ([]json.RawMessage, error)
	GetByID(ctx context.Context, id string) (json.RawMessage, error)
	Create(ctx context.Context, data any) (json.RawMessage, error)
	Update(ctx context.Context, id string, data any) (json.RawMessage, error)
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, filter Filter) ([]json.RawMessage, error)
}

// Provider hands out collections by entity name.
type Provider interface {
	Collection(name string) Collection
}

// NewID returns a fresh document identifier.
func NewID() string {
	return uuid.NewString()
}

// Envelope applies the store-managed fields onto a document.
func Envelope(data any, id string, createdAt, updatedAt time.Time) (map[string]any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("document must be a JSON object: %w", err)
	}
	doc["id"] = id
	doc["createdAt"] = createdAt.UTC().Format(time.RFC3339Nano)
	doc["updatedAt"] = updatedAt.UTC().Format(time.RFC3339Nano)
	return doc, nil
}

// Matches reports whether a document satisfies an equality filter.
func Matches(doc map[string]any, filter Filter) bool {
	for key, want := range filter {
		got, ok := doc[key]
		if !ok {
			return false
		}
		if !looseEqual(got, want) {
			return false
		}
	}
	return true
}

// looseEqual compares values after JSON normalization so that e.g. int and
// float64 representations of the same number compare equal.
func looseEqual(a, b any) bool {
	na, err := normalize(a)
	if err != nil {
		return false
	}
	nb, err := normalize(b)
	if err != nil {
		return false
	}
	return reflect.DeepEqual(na, nb)
}

func normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
