package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/b3rknt/Modanist/internal/domain"
	"github.com/b3rknt/Modanist/internal/storage"
)

func setupTestStore(t *testing.T) (*MongoAccountStore, func()) {
	ctx := context.Background()

	// Start MongoDB container
	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := storage.ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	store := NewMongoAccountStore(db)
	require.NoError(t, store.CreateIndexes(ctx))

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return store, cleanup
}

func TestAccountStore_GetByEmail_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	account, err := store.GetByEmail(context.Background(), "nobody@gmail.com")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Nil(t, account)
}

func TestAccountStore_CreateAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	id, err := store.Create(ctx, &domain.Account{
		Email:        "ada@gmail.com",
		PasswordHash: []byte("not-a-real-hash"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	byEmail, err := store.GetByEmail(ctx, "ada@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)

	byID, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ada@gmail.com", byID.Email)
}

func TestAccountStore_DuplicateEmail(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.Create(ctx, &domain.Account{Email: "taken@gmail.com"})
	require.NoError(t, err)

	_, err = store.Create(ctx, &domain.Account{Email: "taken@gmail.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAccountStore_UniqueEmailIndex(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.Create(ctx, &domain.Account{Email: "raced@gmail.com"})
	require.NoError(t, err)

	// Insert straight past the pre-check, the way a concurrent sign-up
	// would; the unique index must still reject it.
	_, err = store.collection.InsertOne(ctx, &domain.Account{
		ID:    "other-id",
		Email: "raced@gmail.com",
	})
	assert.True(t, mongo.IsDuplicateKeyError(err))
}
