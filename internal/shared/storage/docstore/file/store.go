package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"bonsai-backend/internal/shared/storage/docstore"
)

// Store keeps each collection in a single JSON file under baseDir. It is the
// development backend; every operation reads and rewrites the whole file.
type Store struct {
	baseDir string
	mu      sync.Mutex
	now     func() time.Time
}

// New creates a file-backed document store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

// Collection returns the named collection.
func (s *Store) Collection(name string) docstore.Collection {
	return &collection{store: s, name: name}
}

var _ docstore.Provider = (*Store)(nil)

type collection struct {
	store *Store
	name  string
}

func (c *collection) path() string {
	return filepath.Join(c.store.baseDir, c.name+".json")
}

func (c *collection) load() (map[string]map[string]any, error) {
	raw, err := os.ReadFile(c.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]map[string]any{}, nil
		}
		return nil, fmt.Errorf("read collection %s: %w", c.name, err)
	}
	docs := map[string]map[string]any{}
	if len(raw) == 0 {
		return docs, nil
	}
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", c.name, err)
	}
	return docs, nil
}

func (c *collection) save(docs map[string]map[string]any) error {
	if err := os.MkdirAll(c.store.baseDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	raw, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", c.name, err)
	}
	tmp := c.path() + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write collection %s: %w", c.name, err)
	}
	return os.Rename(tmp, c.path())
}

func (c *collection) GetAll(ctx context.Context) ([]json.RawMessage, error) {
	return c.Query(ctx, nil)
}

func (c *collection) GetByID(ctx context.Context, id string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	docs, err := c.load()
	if err != nil {
		return nil, err
	}
	doc, ok := docs[id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return json.Marshal(doc)
}

func (c *collection) Create(ctx context.Context, data any) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	docs, err := c.load()
	if err != nil {
		return nil, err
	}

	now := c.store.now()
	id := docstore.NewID()
	doc, err := docstore.Envelope(data, id, now, now)
	if err != nil {
		return nil, err
	}
	docs[id] = doc
	if err := c.save(docs); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

func (c *collection) Update(ctx context.Context, id string, data any) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	docs, err := c.load()
	if err != nil {
		return nil, err
	}
	existing, ok := docs[id]
	if !ok {
		return nil, docstore.ErrNotFound
	}

	createdAt := c.store.now()
	if raw, ok := existing["createdAt"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			createdAt = parsed
		}
	}
	doc, err := docstore.Envelope(data, id, createdAt, c.store.now())
	if err != nil {
		return nil, err
	}
	docs[id] = doc
	if err := c.save(docs); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

func (c *collection) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	docs, err := c.load()
	if err != nil {
		return err
	}
	if _, ok := docs[id]; !ok {
		return docstore.ErrNotFound
	}
	delete(docs, id)
	return c.save(docs)
}

func (c *collection) Query(ctx context.Context, filter docstore.Filter) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	docs, err := c.load()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(docs))
	for id, doc := range docs {
		if len(filter) == 0 || docstore.Matches(doc, filter) {
			ids = append(ids, id)
		}
	}
	// Stable iteration order: oldest first, falling back to id order.
	sort.Slice(ids, func(i, j int) bool {
		a, _ := docs[ids[i]]["createdAt"].(string)
		b, _ := docs[ids[j]]["createdAt"].(string)
		if a != b {
			return a < b
		}
		return ids[i] < ids[j]
	})

	out := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		raw, err := json.Marshal(docs[id])
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

var _ docstore.Collection = (*collection)(nil)
