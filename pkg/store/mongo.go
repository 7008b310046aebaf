package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/potemkeen/self-driving-car/pkg/world"
)

// mongoDoc is one saved world. The snapshot is kept as its JSON text so the
// short keys and rounding match the file format.
type mongoDoc struct {
	Name      string    `bson:"_id"`
	Snapshot  string    `bson:"snapshot"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore keeps one document per world name in a collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	name   string
}

// NewMongoStore connects to uri and uses database.collection, keyed by name.
func NewMongoStore(ctx context.Context, uri, database, collection, name string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	log.Infof("using mongo collection %s.%s, world %q", database, collection, name)
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
		name:   name,
	}, nil
}

// Load fetches the named world.
func (m *MongoStore) Load(ctx context.Context) (*world.Snapshot, error) {
	var doc mongoDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": m.name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading world %q: %w", m.name, err)
	}
	return decodeDoc(doc)
}

// Save upserts the named world.
func (m *MongoStore) Save(ctx context.Context, snap *world.Snapshot) error {
	doc, err := encodeDoc(m.name, snap, time.Now().UTC())
	if err != nil {
		return err
	}
	_, err = m.coll.ReplaceOne(ctx, bson.M{"_id": m.name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("saving world %q: %w", m.name, err)
	}
	log.Infof("saved world %q (%d bytes)", m.name, len(doc.Snapshot))
	return nil
}

// Close disconnects the client.
func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func encodeDoc(name string, snap *world.Snapshot, at time.Time) (mongoDoc, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return mongoDoc{}, fmt.Errorf("encoding snapshot: %w", err)
	}
	return mongoDoc{Name: name, Snapshot: string(data), UpdatedAt: at}, nil
}

func decodeDoc(doc mongoDoc) (*world.Snapshot, error) {
	if doc.Snapshot == "" {
		return nil, ErrNotFound
	}
	var snap world.Snapshot
	if err := json.Unmarshal([]byte(doc.Snapshot), &snap); err != nil {
		return nil, fmt.Errorf("decoding world %q: %w", doc.Name, err)
	}
	return &snap, nil
}
