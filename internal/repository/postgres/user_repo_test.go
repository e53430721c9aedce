package postgres_test

import (
	"context"
	"testing"

	"github.com/alec/wallet-auth-backend/internal/domain"
	"github.com/alec/wallet-auth-backend/internal/repository/postgres"
	"github.com/alec/wallet-auth-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		user := &domain.User{
			ID:             uuid.New(),
			WalletAddress:  "CreateWallet1",
			WalletProvider: "Phantom",
			Nonce:          "111111",
			Role:           domain.RoleUser,
			IsActive:       true,
		}
		require.NoError(t, repo.Create(ctx, user))
	})

	t.Run("duplicate wallet address", func(t *testing.T) {
		user := &domain.User{
			ID:             uuid.New(),
			WalletAddress:  "CreateWallet1", // same as above
			WalletProvider: "Solflare",
			Nonce:          "222222",
			Role:           domain.RoleUser,
		}
		err := repo.Create(ctx, user)
		assert.ErrorIs(t, err, domain.ErrDuplicateKey)
	})

	t.Run("nil usernames do not collide", func(t *testing.T) {
		for _, address := range []string{"SparseWallet1", "SparseWallet2"} {
			user := &domain.User{
				ID:             uuid.New(),
				WalletAddress:  address,
				WalletProvider: "Unknown",
				Nonce:          "333333",
				Role:           domain.RoleUser,
			}
			require.NoError(t, repo.Create(ctx, user))
		}
	})
}

func TestUserRepository_GetByWallet(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.NewUserBuilder().WithWallet("LookupWallet").Build(t, testDB.DB)

	t.Run("existing wallet", func(t *testing.T) {
		got, err := repo.GetByWallet(ctx, "LookupWallet")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, user.Nonce, got.Nonce)
	})

	t.Run("unknown wallet", func(t *testing.T) {
		_, err := repo.GetByWallet(ctx, "NoSuchWallet")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	t.Run("existing user", func(t *testing.T) {
		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.WalletAddress, got.WalletAddress)
	})

	t.Run("non-existent user", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserRepository_Update(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.NewUserBuilder().WithNonce("before").Build(t, testDB.DB)

	user.Nonce = "after"
	user.WalletProvider = "Phantom"
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Nonce)
	assert.Equal(t, "Phantom", got.WalletProvider)
}

func TestUserRepository_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// Deleting again reports not found.
	assert.ErrorIs(t, repo.Delete(ctx, user.ID), domain.ErrUserNotFound)
}

func TestUserRepository_List(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	testutil.NewUserBuilder().Build(t, testDB.DB)
	testutil.NewUserBuilder().Build(t, testDB.DB)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
