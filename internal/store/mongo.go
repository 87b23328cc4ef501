package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kancparser/internal/model"
)

// ErrNotConnected is returned when a store operation is attempted before
// Connect or after Close.
var ErrNotConnected = errors.New("store: not connected")

// Mongo persists Product records in a MongoDB collection. The upsert key
// is the product article, so re-crawling a page replaces its record
// instead of accumulating duplicates.
//
// The connection is scoped to one crawl invocation: Connect before the
// traversal, Close on every exit path. Writes are strictly sequential,
// one per extracted product, so no pooling discipline is needed beyond
// the driver's defaults.
type Mongo struct {
	// uri is the MongoDB connection string.
	uri string

	// database and collection name the crawl output location.
	database   string
	collection string

	// client is nil until Connect succeeds.
	client *mongo.Client

	// products is the resolved collection handle.
	products *mongo.Collection
}

// NewMongo creates an unconnected store for the given location.
func NewMongo(uri, database, collection string) *Mongo {
	return &Mongo{
		uri:        uri,
		database:   database,
		collection: collection,
	}
}

// Connect establishes the client connection and verifies it with a ping.
// A store that cannot be reached must fail the crawl up front rather
// than after pages have been fetched.
func (m *Mongo) Connect(ctx context.Context) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.uri))
	if err != nil {
		return fmt.Errorf("connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("ping mongo: %w", err)
	}

	m.client = client
	m.products = client.Database(m.database).Collection(m.collection)
	return nil
}

// Close releases the client connection. Safe to call when Connect never
// succeeded.
func (m *Mongo) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}

	err := m.client.Disconnect(ctx)
	m.client = nil
	m.products = nil
	if err != nil {
		return fmt.Errorf("disconnect from mongo: %w", err)
	}
	return nil
}

// SaveProduct upserts a product record keyed by its article. Identity and
// merge semantics live here, not in the crawl core: a record with the
// same article replaces the stored one wholesale.
func (m *Mongo) SaveProduct(ctx context.Context, p *model.Product) error {
	if m.products == nil {
		return ErrNotConnected
	}

	filter := bson.M{"article": p.Article}
	opts := options.Replace().SetUpsert(true)

	if _, err := m.products.ReplaceOne(ctx, filter, p, opts); err != nil {
		return fmt.Errorf("upsert product %s: %w", p.Article, err)
	}
	return nil
}
