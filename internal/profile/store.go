// Package profile persists the user-editable profile documents in the
// "users" collection, keyed by account id.
package profile

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/b3rknt/Modanist/internal/domain"
)

// Store reads and overwrites profile documents. Saves replace the whole
// document; there is no field-level merge or versioning.
type Store interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	Put(ctx context.Context, userID string, p domain.Profile) error
}

var ErrProfileNotFound = errors.New("profile not found")

type mongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) Store {
	return &mongoStore{
		collection: db.Collection("users"),
	}
}

func (m *mongoStore) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	var p domain.Profile
	err := m.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

func (m *mongoStore) Put(ctx context.Context, userID string, p domain.Profile) error {
	doc := bson.M{
		"_id":        userID,
		"first_name": p.FirstName,
		"last_name":  p.LastName,
		"address":    p.Address,
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := m.collection.ReplaceOne(ctx, bson.M{"_id": userID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
