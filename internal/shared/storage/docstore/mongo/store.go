package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"bonsai-backend/internal/shared/storage/docstore"
)

// Store backs collections with a MongoDB database. It is the managed
// production backend.
type Store struct {
	db  *mongo.Database
	now func() time.Time
}

// Connect dials MongoDB and verifies connectivity.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	if uri == "" {
		return nil, fmt.Errorf("MONGO_URI is empty")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Store{db: client.Database(dbName), now: time.Now}, nil
}

// NewWithDatabase wraps an existing database handle.
func NewWithDatabase(db *mongo.Database) *Store {
	return &Store{db: db, now: time.Now}
}

// Collection returns the named collection.
func (s *Store) Collection(name string) docstore.Collection {
	return &collection{col: s.db.Collection(name), now: s.now}
}

var _ docstore.Provider = (*Store)(nil)

type collection struct {
	col *mongo.Collection
	now func() time.Time
}

func (c *collection) GetAll(ctx context.Context) ([]json.RawMessage, error) {
	return c.find(ctx, bson.M{})
}

func (c *collection) GetByID(ctx context.Context, id string) (json.RawMessage, error) {
	var doc bson.M
	if err := c.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, docstore.ErrNotFound
		}
		return nil, err
	}
	return encodeDoc(doc)
}

func (c *collection) Create(ctx context.Context, data any) (json.RawMessage, error) {
	now := c.now()
	id := docstore.NewID()
	doc, err := docstore.Envelope(data, id, now, now)
	if err != nil {
		return nil, err
	}
	stored := bson.M{"_id": id}
	for k, v := range doc {
		stored[k] = v
	}
	if _, err := c.col.InsertOne(ctx, stored); err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}
	return json.Marshal(doc)
}

func (c *collection) Update(ctx context.Context, id string, data any) (json.RawMessage, error) {
	var existing bson.M
	if err := c.col.FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, docstore.ErrNotFound
		}
		return nil, err
	}

	createdAt := c.now()
	if raw, ok := existing["createdAt"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			createdAt = parsed
		}
	}
	doc, err := docstore.Envelope(data, id, createdAt, c.now())
	if err != nil {
		return nil, err
	}
	stored := bson.M{"_id": id}
	for k, v := range doc {
		stored[k] = v
	}
	if _, err := c.col.ReplaceOne(ctx, bson.M{"_id": id}, stored); err != nil {
		return nil, fmt.Errorf("replace document: %w", err)
	}
	return json.Marshal(doc)
}

func (c *collection) Delete(ctx context.Context, id string) error {
	res, err := c.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (c *collection) Query(ctx context.Context, filter docstore.Filter) ([]json.RawMessage, error) {
	match := bson.M{}
	for k, v := range filter {
		match[k] = v
	}
	return c.find(ctx, match)
}

func (c *collection) find(ctx context.Context, filter bson.M) ([]json.RawMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := c.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []json.RawMessage
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		raw, err := encodeDoc(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, cur.Err()
}

func encodeDoc(doc bson.M) (json.RawMessage, error) {
	delete(doc, "_id")
	return json.Marshal(doc)
}

var _ docstore.Collection = (*collection)(nil)
