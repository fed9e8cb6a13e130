package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/orgcanvas/pkg/chart"
	cerrors "github.com/matzehuels/orgcanvas/pkg/errors"
)

// MongoConfig configures the MongoDB-backed store.
type MongoConfig struct {
	// URI is the MongoDB connection string.
	URI string

	// Database is the database name. Defaults to "orgcanvas".
	Database string

	// Collection is the collection name. Defaults to "charts".
	Collection string
}

// chartDocument is the stored shape: one document per chart, keyed by name.
type chartDocument struct {
	Name     string         `bson:"_id"`
	Snapshot chart.Snapshot `bson:"snapshot"`
}

// MongoStore persists snapshots in a MongoDB collection, one document per
// chart. Suitable for durable multi-chart deployments.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	db := cfg.Database
	if db == "" {
		db = "orgcanvas"
	}
	coll := cfg.Collection
	if coll == "" {
		coll = "charts"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeStore, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, cerrors.Wrap(cerrors.ErrCodeStore, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(db).Collection(coll),
	}, nil
}

// Load retrieves a snapshot by name.
func (m *MongoStore) Load(ctx context.Context, name string) (chart.Snapshot, error) {
	if err := validName(name); err != nil {
		return chart.Snapshot{}, err
	}
	var doc chartDocument
	err := m.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return chart.Snapshot{}, ErrNotFound
		}
		return chart.Snapshot{}, fmt.Errorf("mongodb find: %w", err)
	}
	return doc.Snapshot, nil
}

// Save upserts the chart document, replacing any previous version.
func (m *MongoStore) Save(ctx context.Context, name string, s chart.Snapshot) error {
	if err := validName(name); err != nil {
		return err
	}
	doc := chartDocument{Name: name, Snapshot: s}
	opts := options.Replace().SetUpsert(true)
	if _, err := m.coll.ReplaceOne(ctx, bson.M{"_id": name}, doc, opts); err != nil {
		return fmt.Errorf("mongodb upsert: %w", err)
	}
	return nil
}

// Delete removes the chart document. Missing documents are a no-op.
func (m *MongoStore) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	if _, err := m.coll.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return fmt.Errorf("mongodb delete: %w", err)
	}
	return nil
}

// List returns the stored chart names.
func (m *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1}).SetSort(bson.M{"_id": 1})
	cursor, err := m.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find: %w", err)
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var doc struct {
			Name string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongodb decode: %w", err)
		}
		names = append(names, doc.Name)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("mongodb cursor: %w", err)
	}
	return names, nil
}

// Close disconnects from MongoDB.
func (m *MongoStore) Close() error {
	return m.client.Disconnect(context.Background())
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
