package clients

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-clients/pkg/secrets"
)

func setupTestRepo(t *testing.T) *InMemoryClientsRepository {
	generator, err := secrets.NewGenerator()
	require.NoError(t, err)
	return NewInMemoryClientsRepository(secrets.NewHasher(secrets.ModePlain), generator)
}

func TestInMemoryClientsRepository_Create(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	t.Run("GeneratesIdAndSecret", func(t *testing.T) {
		client, err := repo.Create(ctx, CreateClientParams{Name: "service-a"})
		require.NoError(t, err)
		assert.NotEmpty(t, client.ID)
		assert.NotEmpty(t, client.PlainTextSecret)
		assert.Equal(t, client.PlainTextSecret, client.ApiKey)
		// generated secrets are hex-encoded 32 bytes minimum
		assert.GreaterOrEqual(t, len(client.PlainTextSecret), 64)
	})

	t.Run("UsesProvidedIdAndSecret", func(t *testing.T) {
		client, err := repo.Create(ctx, CreateClientParams{
			ID:     "client-1",
			Name:   "service-b",
			Secret: "my-secret",
		})
		require.NoError(t, err)
		assert.Equal(t, "client-1", client.ID)
		assert.Equal(t, "my-secret", client.PlainTextSecret)
	})

	t.Run("DuplicateIdRejected", func(t *testing.T) {
		_, err := repo.Create(ctx, CreateClientParams{ID: "client-1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("NormalizesScopesAndOrigins", func(t *testing.T) {
		client, err := repo.Create(ctx, CreateClientParams{Name: "service-c"})
		require.NoError(t, err)
		assert.Equal(t, []string{Wildcard}, client.Scopes)
		assert.Equal(t, []string{Wildcard}, client.IpAddresses)
	})
}

func TestInMemoryClientsRepository_FindByID(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateClientParams{ID: "client-1", Secret: "s"})
	require.NoError(t, err)

	t.Run("Found", func(t *testing.T) {
		found, err := repo.FindByID(ctx, "client-1")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, created.ID, found.ID)
		// plaintext never leaves Create
		assert.Empty(t, found.PlainTextSecret)
	})

	t.Run("NotFound", func(t *testing.T) {
		found, err := repo.FindByID(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("ExpiredFilteredOut", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		_, err := repo.Create(ctx, CreateClientParams{ID: "stale", Secret: "s", ExpiresAt: &past})
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, "stale")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("FutureExpiryStillLive", func(t *testing.T) {
		future := time.Now().Add(time.Hour)
		_, err := repo.Create(ctx, CreateClientParams{ID: "fresh", Secret: "s", ExpiresAt: &future})
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, "fresh")
		require.NoError(t, err)
		assert.NotNil(t, found)
	})

	t.Run("ReturnsIsolatedCopy", func(t *testing.T) {
		found, err := repo.FindByID(ctx, "client-1")
		require.NoError(t, err)
		found.Scopes[0] = "mutated"

		again, err := repo.FindByID(ctx, "client-1")
		require.NoError(t, err)
		assert.Equal(t, []string{Wildcard}, again.Scopes)
	})
}

func TestInMemoryClientsRepository_FindByApiKey(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateClientParams{ID: "client-1"})
	require.NoError(t, err)

	t.Run("Found", func(t *testing.T) {
		found, err := repo.FindByApiKey(ctx, created.ApiKey)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "client-1", found.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		found, err := repo.FindByApiKey(ctx, "unknown-key")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("EmptyKeyNeverMatches", func(t *testing.T) {
		found, err := repo.FindByApiKey(ctx, "")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestInMemoryClientsRepository_FindByUserID(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		_, err := repo.Create(ctx, CreateClientParams{ID: id, UserID: "user-1", Secret: "s"})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, CreateClientParams{ID: "c", UserID: "user-2", Secret: "s"})
	require.NoError(t, err)

	owned, err := repo.FindByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	none, err := repo.FindByUserID(ctx, "user-3")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestInMemoryClientsRepository_UpdateByID(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, CreateClientParams{
		ID:     "client-1",
		Name:   "before",
		Secret: "old-secret",
		Scopes: []string{"reports:read"},
	})
	require.NoError(t, err)

	t.Run("PartialUpdate", func(t *testing.T) {
		name := "after"
		updated, err := repo.UpdateByID(ctx, "client-1", UpdateClientParams{Name: &name})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "after", updated.Name)
		// untouched fields survive
		assert.Equal(t, []string{"reports:read"}, updated.Scopes)
	})

	t.Run("SecretRotation", func(t *testing.T) {
		secret := "new-secret"
		updated, err := repo.UpdateByID(ctx, "client-1", UpdateClientParams{Secret: &secret})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "new-secret", updated.PlainTextSecret)
		// the plain hasher stores the secret as-is
		assert.Equal(t, "new-secret", updated.HashedSecret)
	})

	t.Run("UnknownId", func(t *testing.T) {
		name := "x"
		updated, err := repo.UpdateByID(ctx, "nope", UpdateClientParams{Name: &name})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})
}

func TestInMemoryClientsRepository_DeleteByID(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, CreateClientParams{ID: "client-1", Secret: "s"})
	require.NoError(t, err)

	affected, err := repo.DeleteByID(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	found, err := repo.FindByID(ctx, "client-1")
	require.NoError(t, err)
	assert.Nil(t, found)

	affected, err = repo.DeleteByID(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}
