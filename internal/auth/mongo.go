package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/b3rknt/Modanist/internal/domain"
)

// MongoAccountStore keeps credential records in the accounts collection.
// The unique email index from CreateIndexes backs duplicate rejection; the
// pre-insert lookup in Create only makes the common case a clean error.
type MongoAccountStore struct {
	collection *mongo.Collection
}

func NewMongoAccountStore(db *mongo.Database) *MongoAccountStore {
	return &MongoAccountStore{
		collection: db.Collection("accounts"),
	}
}

func (m *MongoAccountStore) Create(ctx context.Context, account *domain.Account) (string, error) {
	err := m.collection.FindOne(ctx, bson.M{"email": account.Email}).Err()
	if err == nil {
		return "", ErrEmailTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", fmt.Errorf("failed to check email: %w", err)
	}

	account.ID = primitive.NewObjectID().Hex()
	account.CreatedAt = time.Now().UTC()
	if _, err := m.collection.InsertOne(ctx, account); err != nil {
		// Lost the race against a concurrent sign-up; the unique email
		// index turns it into a duplicate-key error.
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("failed to create account: %w", err)
	}
	return account.ID, nil
}

func (m *MongoAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account
	err := m.collection.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (m *MongoAccountStore) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var account domain.Account
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (m *MongoAccountStore) CreateIndexes(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := m.collection.Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
