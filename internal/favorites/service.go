package favorites

import (
	"context"

	"github.com/b3rknt/Modanist/internal/domain"
	"github.com/b3rknt/Modanist/internal/session"
)

// Service keeps the session favorite-id set and the persisted snapshot
// list consistent: Toggle is the only write path for both.
type Service struct {
	store    Store
	sessions *session.Manager
}

func NewService(store Store, sessions *session.Manager) *Service {
	return &Service{
		store:    store,
		sessions: sessions,
	}
}

// Toggle flips the product's favorite status. On favoriting, the full
// product snapshot is persisted; on unfavoriting it is dropped. Returns
// the new status.
func (s *Service) Toggle(ctx context.Context, userID string, product domain.Product) (bool, error) {
	sess := s.sessions.Get(userID)
	favorited := sess.ToggleFavorite(product.ID)

	snapshots, err := s.store.Get(ctx, userID)
	if err != nil {
		// roll the session set back so the two stay in step
		sess.ToggleFavorite(product.ID)
		return false, err
	}

	if favorited {
		snapshots = addSnapshot(snapshots, product)
	} else {
		snapshots = removeSnapshot(snapshots, product.ID)
	}

	if err := s.store.Put(ctx, userID, snapshots); err != nil {
		sess.ToggleFavorite(product.ID)
		return false, err
	}
	return favorited, nil
}

// List returns the persisted snapshots and re-primes the session id set,
// e.g. after a process restart wiped it.
func (s *Service) List(ctx context.Context, userID string) ([]domain.Product, error) {
	snapshots, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess := s.sessions.Get(userID)
	for _, p := range snapshots {
		if !sess.IsFavorite(p.ID) {
			sess.ToggleFavorite(p.ID)
		}
	}
	return snapshots, nil
}

// IsFavorite answers from the session set, which List keeps primed.
func (s *Service) IsFavorite(userID, productID string) bool {
	return s.sessions.Get(userID).IsFavorite(productID)
}

func addSnapshot(snapshots []domain.Product, product domain.Product) []domain.Product {
	for _, p := range snapshots {
		if p.ID == product.ID {
			return snapshots
		}
	}
	return append(snapshots, product)
}

func removeSnapshot(snapshots []domain.Product, productID string) []domain.Product {
	for i, p := range snapshots {
		if p.ID == productID {
			return append(snapshots[:i], snapshots[i+1:]...)
		}
	}
	return snapshots
}
