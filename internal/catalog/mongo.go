package catalog

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

// MongoRepository is the products collection store. It satisfies
// ProductRepository; CreateIndexes is called once at startup.
type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		collection: db.Collection("products"),
	}
}

func (m *MongoRepository) Create(ctx context.Context, form domain.ProductForm) (string, error) {
	now := time.Now().UTC()
	product := domain.Product{
		ID:          primitive.NewObjectID().Hex(),
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Category:    form.Category,
		ImageURL:    form.ImageURL,
		Sizes:       form.Sizes,
		Colors:      form.Colors,
		Stock:       form.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := m.collection.InsertOne(ctx, product); err != nil {
		return "", fmt.Errorf("failed to create product: %w", err)
	}
	return product.ID, nil
}

func (m *MongoRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	var products []domain.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	normalizeTimestamps(products)
	return products, nil
}

func (m *MongoRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	product.CreatedAt = product.CreatedAt.UTC()
	product.UpdatedAt = product.UpdatedAt.UTC()
	return &product, nil
}

func (m *MongoRepository) Update(ctx context.Context, id string, update domain.ProductUpdate) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.ImageURL != nil {
		set["image_url"] = *update.ImageURL
	}
	if update.Sizes != nil {
		set["sizes"] = update.Sizes
	}
	if update.Colors != nil {
		set["colors"] = update.Colors
	}
	if update.Stock != nil {
		set["stock"] = *update.Stock
	}

	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (m *MongoRepository) Delete(ctx context.Context, id string) error {
	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (m *MongoRepository) GetByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	cur, err := m.collection.Find(ctx, bson.M{"category": category})
	if err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}

	var products []domain.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	normalizeTimestamps(products)
	return products, nil
}

func (m *MongoRepository) Categories(ctx context.Context) ([]string, error) {
	raw, err := m.collection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

// DecrementStock atomically reduces stock, refusing to go below zero.
func (m *MongoRepository) DecrementStock(ctx context.Context, id string, quantity int) error {
	filter := bson.M{
		"_id":   id,
		"stock": bson.M{"$gte": quantity},
	}
	update := bson.M{
		"$inc": bson.M{"stock": -quantity},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if result.MatchedCount == 0 {
		// Either the product is gone or the stock ran out under us.
		if err := m.collection.FindOne(ctx, bson.M{"_id": id}).Err(); errors.Is(err, mongo.ErrNoDocuments) {
			return ErrProductNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}

func (m *MongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: 1}},
		},
	}

	if _, err := m.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// The driver hands timestamps back in local time; readers always see UTC.
func normalizeTimestamps(products []domain.Product) {
	for i := range products {
		products[i].CreatedAt = products[i].CreatedAt.UTC()
		products[i].UpdatedAt = products[i].UpdatedAt.UTC()
	}
}
