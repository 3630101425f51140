package favorites

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b3rknt/Modanist/internal/domain"
	"github.com/b3rknt/Modanist/internal/session"
)

type memoryStore struct {
	m    sync.Mutex
	data map[string][]domain.Product
	err  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string][]domain.Product)}
}

func (s *memoryStore) Get(_ context.Context, userID string) ([]domain.Product, error) {
	s.m.Lock()
	defer s.m.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.data[userID], nil
}

func (s *memoryStore) Put(_ context.Context, userID string, products []domain.Product) error {
	s.m.Lock()
	defer s.m.Unlock()
	if s.err != nil {
		return s.err
	}
	s.data[userID] = products
	return nil
}

func TestToggle_AddsThenRemovesSnapshot(t *testing.T) {
	store := newMemoryStore()
	sessions := session.NewManager()
	svc := NewService(store, sessions)
	product := domain.Product{ID: "p1", Name: "Tişört", Price: 129.99}

	favorited, err := svc.Toggle(context.Background(), "user-1", product)
	require.NoError(t, err)
	assert.True(t, favorited)
	assert.True(t, sessions.Get("user-1").IsFavorite("p1"))

	snapshots, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, "Tişört", snapshots[0].Name)

	favorited, err = svc.Toggle(context.Background(), "user-1", product)
	require.NoError(t, err)
	assert.False(t, favorited)
	assert.False(t, sessions.Get("user-1").IsFavorite("p1"))

	snapshots, err = svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestToggle_NoDuplicateSnapshots(t *testing.T) {
	store := newMemoryStore()
	sessions := session.NewManager()
	svc := NewService(store, sessions)

	// a stale snapshot already persisted for the same id
	store.data["user-1"] = []domain.Product{{ID: "p1", Name: "Old"}}
	sessions.Get("user-1").ToggleFavorite("p1")

	// un-favorite, then favorite again
	_, err := svc.Toggle(context.Background(), "user-1", domain.Product{ID: "p1", Name: "New"})
	require.NoError(t, err)
	_, err = svc.Toggle(context.Background(), "user-1", domain.Product{ID: "p1", Name: "New"})
	require.NoError(t, err)

	snapshots, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
}

func TestToggle_StoreErrorRollsBackSessionSet(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("redis down")
	sessions := session.NewManager()
	svc := NewService(store, sessions)

	_, err := svc.Toggle(context.Background(), "user-1", domain.Product{ID: "p1"})
	require.Error(t, err)

	assert.False(t, sessions.Get("user-1").IsFavorite("p1"),
		"session set must match the store after a failed write")
}

func TestList_PrimesSessionSet(t *testing.T) {
	store := newMemoryStore()
	store.data["user-1"] = []domain.Product{{ID: "p1"}, {ID: "p2"}}
	sessions := session.NewManager()
	svc := NewService(store, sessions)

	_, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)

	assert.True(t, svc.IsFavorite("user-1", "p1"))
	assert.True(t, svc.IsFavorite("user-1", "p2"))
	assert.False(t, svc.IsFavorite("user-1", "p3"))
}
