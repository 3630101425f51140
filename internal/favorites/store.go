// Package favorites is the single authoritative favorites store: product
// snapshots persisted per user, kept in step with the session's
// favorite-id set through one write path.
package favorites

import (
	"context"
	"errors"

	"github.com/b3rknt/Modanist/internal/domain"
)

// Store persists favorited product snapshots under one well-known key per
// user. Implementations must never hold two entries with the same id.
type Store interface {
	Get(ctx context.Context, userID string) ([]domain.Product, error)
	Put(ctx context.Context, userID string, products []domain.Product) error
}

var ErrStoreUnavailable = errors.New("favorites store unavailable")
