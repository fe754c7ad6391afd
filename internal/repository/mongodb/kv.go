package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "kv_store"

type kvDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// KVBackend stores each key as one document. Writes are not transactional;
// standalone servers do not support multi-document transactions.
type KVBackend struct {
	collection *mongo.Collection
}

func NewKVBackend(db *mongo.Database) *KVBackend {
	return &KVBackend{collection: db.Collection(collectionName)}
}

func (b *KVBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc kvDocument
	err := b.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return []byte(doc.Value), true, nil
}

func (b *KVBackend) Set(ctx context.Context, key string, value []byte) error {
	filter := bson.M{"_id": key}
	update := bson.M{"$set": bson.M{"value": string(value), "updated_at": time.Now().UTC()}}
	opts := options.Update().SetUpsert(true)

	if _, err := b.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

func (b *KVBackend) Delete(ctx context.Context, key string) error {
	if _, err := b.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}
