package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/b3rknt/Modanist/internal/domain"
)

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// RedisStore keeps each user's snapshot list as one JSON value. No TTL;
// favorites survive until removed.
type RedisStore struct {
	client *redis.Client
}

func (r *RedisStore) Get(ctx context.Context, userID string) ([]domain.Product, error) {
	data, err := r.client.Get(ctx, storeKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var products []domain.Product
	if err2 := json.Unmarshal(data, &products); err2 != nil {
		return nil, fmt.Errorf("unmarshal favorites failed: %w", err2)
	}
	return products, nil
}

func (r *RedisStore) Put(ctx context.Context, userID string, products []domain.Product) error {
	if products == nil {
		products = []domain.Product{}
	}
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal favorites failed: %w", err)
	}
	if ret := r.client.Set(ctx, storeKey(userID), data, 0); ret.Err() != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, ret.Err())
	}
	return nil
}

func storeKey(userID string) string {
	return fmt.Sprintf("favorites:%s", userID)
}
