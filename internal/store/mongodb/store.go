// Package mongodb persists the record store in MongoDB, one document per
// table or scalar key. Data is kept as JSON text so the stored shape matches
// the remote wire format byte for byte.
package mongodb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collName = "cache"

type document struct {
	Key  string `bson:"_id"`
	Data string `bson:"data"`
}

// Store implements store.Store on a MongoDB collection.
type Store struct {
	client *mongo.Client
	dbName string
}

// NewStore connects to MongoDB and verifies the connection.
func NewStore(ctx context.Context, uri string, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{client: client, dbName: dbName}, nil
}

func (s *Store) coll() *mongo.Collection {
	return s.client.Database(s.dbName).Collection(collName)
}

// GetTable returns the record sequence under key. A missing or corrupt
// document is healed to the empty-table default instead of failing.
func (s *Store) GetTable(ctx context.Context, key string) ([]json.RawMessage, error) {
	var doc document
	err := s.coll().FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if err := s.PutTable(ctx, key, nil); err != nil {
			return nil, err
		}
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", key, err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(doc.Data), &records); err != nil {
		// Self-heal: an undecodable table resets to the default.
		if err := s.PutTable(ctx, key, nil); err != nil {
			return nil, err
		}
		return []json.RawMessage{}, nil
	}
	return records, nil
}

// PutTable replaces the table wholesale.
func (s *Store) PutTable(ctx context.Context, key string, records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode table %s: %w", key, err)
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll().ReplaceOne(ctx, bson.M{"_id": key}, document{Key: key, Data: string(data)}, opts); err != nil {
		return fmt.Errorf("write table %s: %w", key, err)
	}
	return nil
}

// GetValue returns the scalar under key, defaulting a missing entry to "".
func (s *Store) GetValue(ctx context.Context, key string) (string, error) {
	var doc document
	err := s.coll().FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if err := s.PutValue(ctx, key, ""); err != nil {
			return "", err
		}
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read value %s: %w", key, err)
	}
	return doc.Data, nil
}

// PutValue replaces the scalar under key.
func (s *Store) PutValue(ctx context.Context, key string, value string) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll().ReplaceOne(ctx, bson.M{"_id": key}, document{Key: key, Data: value}, opts); err != nil {
		return fmt.Errorf("write value %s: %w", key, err)
	}
	return nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
