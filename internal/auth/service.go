package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/b3rknt/Modanist/internal/domain"
)

// Registration is gated to gmail.com addresses; a product rule carried
// over from the storefront, not a technical constraint.
var emailPattern = regexp.MustCompile(`^\S+@gmail\.com$`)

const minPasswordLen = 6

var (
	ErrInvalidEmail       = errors.New("email must be a valid gmail.com address")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid session token")
	ErrSessionRevoked     = errors.New("session has been signed out")
)

// ValidEmail reports whether the address passes the registration gate.
// Checked before any remote call is issued.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Identity is the resolved owner of a session token.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	Guest  bool   `json:"guest"`
}

type claims struct {
	Email string `json:"email,omitempty"`
	Guest bool   `json:"guest,omitempty"`
	jwt.RegisteredClaims
}

// Service implements sign-up, sign-in, sign-out and session resolution
// over the accounts collection. Sign-out revocation is in-memory and thus
// process-scoped, like the sessions it protects.
type Service struct {
	store    AccountStore
	secret   []byte
	tokenTTL time.Duration

	mu      sync.Mutex
	revoked map[string]struct{} // jti set
}

func NewService(store AccountStore, secret []byte, tokenTTL time.Duration) *Service {
	return &Service{
		store:    store,
		secret:   secret,
		tokenTTL: tokenTTL,
		revoked:  make(map[string]struct{}),
	}
}

// SignUp registers an account and signs it in, returning a session token.
// Validation failures happen before the store is touched.
func (s *Service) SignUp(ctx context.Context, email, password string) (string, *Identity, error) {
	if !ValidEmail(email) {
		return "", nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return "", nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := s.store.Create(ctx, &domain.Account{
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return "", nil, err
	}

	identity := &Identity{UserID: id, Email: email}
	token, err := s.issueToken(identity)
	if err != nil {
		return "", nil, err
	}
	return token, identity, nil
}

// SignIn verifies credentials and returns a session token.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, *Identity, error) {
	if !ValidEmail(email) {
		return "", nil, ErrInvalidEmail
	}

	account, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	identity := &Identity{UserID: account.ID, Email: account.Email}
	token, err := s.issueToken(identity)
	if err != nil {
		return "", nil, err
	}
	return token, identity, nil
}

// GuestToken issues a token for an anonymous shopper. Guests get a full
// session (cart, favorites) but no account behind it.
func (s *Service) GuestToken() (string, *Identity, error) {
	identity := &Identity{UserID: "guest-" + uuid.NewString(), Guest: true}
	token, err := s.issueToken(identity)
	if err != nil {
		return "", nil, err
	}
	return token, identity, nil
}

// SignOut revokes the token. Further CurrentUser calls with it fail with
// ErrSessionRevoked.
func (s *Service) SignOut(token string) error {
	c, err := s.parse(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[c.ID] = struct{}{}
	return nil
}

// CurrentUser resolves a token to its identity.
func (s *Service) CurrentUser(token string) (*Identity, error) {
	c, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	_, revoked := s.revoked[c.ID]
	s.mu.Unlock()
	if revoked {
		return nil, ErrSessionRevoked
	}

	return &Identity{
		UserID: c.Subject,
		Email:  c.Email,
		Guest:  c.Guest,
	}, nil
}

func (s *Service) issueToken(identity *Identity) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: identity.Email,
		Guest: identity.Guest,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *Service) parse(token string) (*claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return c, nil
}
