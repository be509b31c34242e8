package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bonsai-backend/internal/shared/storage/docstore"
)

// Store backs collections with a single JSONB documents table. It reuses the
// shared database/sql pool from the db package.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New wraps an existing connection pool.
func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
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

func (c *collection) GetAll(ctx context.Context) ([]json.RawMessage, error) {
	const query = `
SELECT data FROM documents
WHERE collection = $1
ORDER BY created_at, id`
	rows, err := c.store.db.QueryContext(ctx, query, c.name)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (c *collection) GetByID(ctx context.Context, id string) (json.RawMessage, error) {
	const query = `SELECT data FROM documents WHERE collection = $1 AND id = $2`
	var raw []byte
	err := c.store.db.QueryRowContext(ctx, query, c.name, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, docstore.ErrNotFound
		}
		return nil, err
	}
	return json.RawMessage(raw), nil
}

func (c *collection) Create(ctx context.Context, data any) (json.RawMessage, error) {
	now := c.store.now()
	id := docstore.NewID()
	doc, err := docstore.Envelope(data, id, now, now)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO documents (collection, id, data, created_at, updated_at)
VALUES ($1, $2, $3, $4, $4)`
	if _, err := c.store.db.ExecContext(ctx, query, c.name, id, raw, now.UTC()); err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}
	return raw, nil
}

func (c *collection) Update(ctx context.Context, id string, data any) (json.RawMessage, error) {
	const selectQuery = `SELECT created_at FROM documents WHERE collection = $1 AND id = $2`
	var createdAt time.Time
	if err := c.store.db.QueryRowContext(ctx, selectQuery, c.name, id).Scan(&createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, docstore.ErrNotFound
		}
		return nil, err
	}

	now := c.store.now()
	doc, err := docstore.Envelope(data, id, createdAt, now)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	const query = `
UPDATE documents SET data = $3, updated_at = $4
WHERE collection = $1 AND id = $2`
	if _, err := c.store.db.ExecContext(ctx, query, c.name, id, raw, now.UTC()); err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}
	return raw, nil
}

func (c *collection) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM documents WHERE collection = $1 AND id = $2`
	res, err := c.store.db.ExecContext(ctx, query, c.name, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (c *collection) Query(ctx context.Context, filter docstore.Filter) ([]json.RawMessage, error) {
	if len(filter) == 0 {
		return c.GetAll(ctx)
	}
	match, err := json.Marshal(filter)
	if err != nil {
		return nil, err
	}
	const query = `
SELECT data FROM documents
WHERE collection = $1 AND data @> $2::jsonb
ORDER BY created_at, id`
	rows, err := c.store.db.QueryContext(ctx, query, c.name, match)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func collect(rows *sql.Rows) ([]json.RawMessage, error) {
	defer rows.Close()
	var out []json.RawMessage
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		out = append(out, json.RawMessage(raw))
	}
	return out, rows.Err()
}

var _ docstore.Collection = (*collection)(nil)
