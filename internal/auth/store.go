package auth

import (
	"context"
	"errors"

	"github.com/b3rknt/Modanist/internal/domain"
)

// AccountStore persists credential records.
type AccountStore interface {
	Create(ctx context.Context, account *domain.Account) (string, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
}

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already registered")
)
