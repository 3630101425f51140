package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/b3rknt/Modanist/internal/auth"
	"github.com/b3rknt/Modanist/internal/catalog"
	"github.com/b3rknt/Modanist/internal/checkout"
	"github.com/b3rknt/Modanist/internal/domain"
	"github.com/b3rknt/Modanist/internal/favorites"
	"github.com/b3rknt/Modanist/internal/profile"
	"github.com/b3rknt/Modanist/internal/session"
)

// In-memory doubles for the remote stores, shared by the handler tests.

type memProductRepo struct {
	m        sync.Mutex
	products []domain.Product
	nextID   int
}

func (r *memProductRepo) Create(_ context.Context, form domain.ProductForm) (string, error) {
	r.m.Lock()
	defer r.m.Unlock()
	r.nextID++
	id := "p" + strconv.Itoa(r.nextID)
	now := time.Now().UTC()
	r.products = append(r.products, domain.Product{
		ID:          id,
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
	})
	return id, nil
}

func (r *memProductRepo) GetAll(context.Context) ([]domain.Product, error) {
	r.m.Lock()
	defer r.m.Unlock()
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.m.Lock()
	defer r.m.Unlock()
	for i := range r.products {
		if r.products[i].ID == id {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, catalog.ErrProductNotFound
}

func (r *memProductRepo) Update(_ context.Context, id string, update domain.ProductUpdate) error {
	r.m.Lock()
	defer r.m.Unlock()
	for i := range r.products {
		if r.products[i].ID == id {
			if update.Name != nil {
				r.products[i].Name = *update.Name
			}
			if update.Price != nil {
				r.products[i].Price = *update.Price
			}
			if update.Stock != nil {
				r.products[i].Stock = *update.Stock
			}
			r.products[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return catalog.ErrProductNotFound
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	r.m.Lock()
	defer r.m.Unlock()
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return catalog.ErrProductNotFound
}

func (r *memProductRepo) GetByCategory(_ context.Context, category string) ([]domain.Product, error) {
	r.m.Lock()
	defer r.m.Unlock()
	var out []domain.Product
	for _, p := range r.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Categories(context.Context) ([]string, error) {
	r.m.Lock()
	defer r.m.Unlock()
	seen := make(map[string]struct{})
	var out []string
	for _, p := range r.products {
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			out = append(out, p.Category)
		}
	}
	return out, nil
}

func (r *memProductRepo) DecrementStock(_ context.Context, id string, quantity int) error {
	r.m.Lock()
	defer r.m.Unlock()
	for i := range r.products {
		if r.products[i].ID == id {
			if r.products[i].Stock < quantity {
				return catalog.ErrInsufficientStock
			}
			r.products[i].Stock -= quantity
			return nil
		}
	}
	return catalog.ErrProductNotFound
}

type noopCache struct{}

func (noopCache) Get(context.Context) ([]domain.Product, error) { return nil, catalog.ErrCacheMiss }
func (noopCache) Set(context.Context, []domain.Product) error   { return nil }
func (noopCache) Delete(context.Context) error                  { return nil }

type memAccountStore struct {
	m        sync.Mutex
	accounts map[string]*domain.Account
	nextID   int
}

func (s *memAccountStore) Create(_ context.Context, account *domain.Account) (string, error) {
	s.m.Lock()
	defer s.m.Unlock()
	if s.accounts == nil {
		s.accounts = make(map[string]*domain.Account)
	}
	for _, a := range s.accounts {
		if a.Email == account.Email {
			return "", auth.ErrEmailTaken
		}
	}
	s.nextID++
	account.ID = "acc" + strconv.Itoa(s.nextID)
	s.accounts[account.ID] = account
	return account.ID, nil
}

func (s *memAccountStore) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	s.m.Lock()
	defer s.m.Unlock()
	for _, a := range s.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, auth.ErrAccountNotFound
}

func (s *memAccountStore) GetByID(_ context.Context, id string) (*domain.Account, error) {
	s.m.Lock()
	defer s.m.Unlock()
	if a, ok := s.accounts[id]; ok {
		return a, nil
	}
	return nil, auth.ErrAccountNotFound
}

type memFavoritesStore struct {
	m    sync.Mutex
	data map[string][]domain.Product
}

func (s *memFavoritesStore) Get(_ context.Context, userID string) ([]domain.Product, error) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.data[userID], nil
}

func (s *memFavoritesStore) Put(_ context.Context, userID string, products []domain.Product) error {
	s.m.Lock()
	defer s.m.Unlock()
	if s.data == nil {
		s.data = make(map[string][]domain.Product)
	}
	s.data[userID] = products
	return nil
}

type memOrderRepo struct {
	m      sync.Mutex
	orders []domain.Order
}

func (r *memOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.m.Lock()
	defer r.m.Unlock()
	r.orders = append(r.orders, *order)
	return nil
}

func (r *memOrderRepo) GetByUser(_ context.Context, userID string) ([]domain.Order, error) {
	r.m.Lock()
	defer r.m.Unlock()
	var out []domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

type memProfileStore struct {
	m    sync.Mutex
	data map[string]domain.Profile
}

func (s *memProfileStore) Get(_ context.Context, userID string) (*domain.Profile, error) {
	s.m.Lock()
	defer s.m.Unlock()
	if p, ok := s.data[userID]; ok {
		return &p, nil
	}
	return nil, profile.ErrProfileNotFound
}

func (s *memProfileStore) Put(_ context.Context, userID string, p domain.Profile) error {
	s.m.Lock()
	defer s.m.Unlock()
	if s.data == nil {
		s.data = make(map[string]domain.Profile)
	}
	s.data[userID] = p
	return nil
}

// newTestServer wires a Server over the in-memory doubles, plus its router.
func newTestServer(products ...domain.ProductForm) (*Server, http.Handler, *memProductRepo) {
	repo := &memProductRepo{}
	for _, form := range products {
		_, _ = repo.Create(context.Background(), form)
	}

	sessions := session.NewManager()
	catalogService := catalog.NewService(repo, noopCache{}, zerolog.Nop())
	authService := auth.NewService(&memAccountStore{}, []byte("test-secret"), time.Hour)
	favoritesService := favorites.NewService(&memFavoritesStore{}, sessions)
	checkoutService := checkout.NewService(&memOrderRepo{}, catalogService, sessions, zerolog.Nop())

	server := NewServer(Deps{
		Catalog:   catalogService,
		Sessions:  sessions,
		Auth:      authService,
		Favorites: favoritesService,
		Checkout:  checkoutService,
		Profiles:  &memProfileStore{},
		Logger:    zerolog.Nop(),
	})
	return server, server.Router(30 * time.Second), repo
}

// doJSON drives a request through the full router with an optional bearer
// token and JSON body.
func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("X-Device-ID", "test-device")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(recorder.Body).Decode(out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func errorCode(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var response ErrorResponse
	decodeBody(t, recorder, &response)
	return response.Code
}

// guestToken starts a guest session through the auth endpoint.
func guestToken(t *testing.T, router http.Handler) string {
	t.Helper()
	recorder := doJSON(t, router, "POST", "/api/v1/auth/guest", "", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d starting guest session, got %d", http.StatusOK, recorder.Code)
	}
	var response SessionResponse
	decodeBody(t, recorder, &response)
	return response.Token
}

// accountToken registers a fresh account and returns its session token.
func accountToken(t *testing.T, router http.Handler, email string) string {
	t.Helper()
	recorder := doJSON(t, router, "POST", "/api/v1/auth/register", "", CredentialsRequest{
		Email:    email,
		Password: "secret123",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("Expected status code %d registering, got %d", http.StatusCreated, recorder.Code)
	}
	var response SessionResponse
	decodeBody(t, recorder, &response)
	return response.Token
}

func testProduct() domain.ProductForm {
	return domain.ProductForm{
		Name:        "Erkek Tişört",
		Description: "Pamuklu siyah tişört",
		Price:       129.99,
		Category:    "Tişört",
		ImageURL:    "https://example.com/tshirt.jpg",
		Sizes:       []string{"S", "M", "L"},
		Colors:      []string{"Siyah", "Beyaz"},
		Stock:       10,
	}
}
