package clients

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tendant/simple-clients/pkg/secrets"
)

func setupPostgresRepo(t *testing.T) *PostgresClientsRepository {
	t.Helper()
	ctx := context.Background()

	postgresContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	migration, err := os.ReadFile(filepath.Join("..", "..", "migrations", "0001_create_authorized_clients.sql"))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(migration))
	require.NoError(t, err)

	generator, err := secrets.NewGenerator()
	require.NoError(t, err)

	repo, err := NewPostgresClientsRepository(pool, secrets.NewHasher(secrets.ModePlain), generator)
	require.NoError(t, err)
	return repo
}

func TestNewPostgresClientsRepository_NilPool(t *testing.T) {
	_, err := NewPostgresClientsRepository(nil, secrets.NewHasher(secrets.ModePlain), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database connection cannot be nil")
}

func TestPostgresClientsRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	repo := setupPostgresRepo(t)
	ctx := context.Background()

	t.Run("CreateAndFindByID", func(t *testing.T) {
		created, err := repo.Create(ctx, CreateClientParams{
			ID:     "client-1",
			Name:   "service-a",
			UserID: "user-1",
			Secret: "s3cret",
			Scopes: []string{"reports:read", "billing:read"},
		})
		require.NoError(t, err)
		assert.Equal(t, "s3cret", created.PlainTextSecret)

		found, err := repo.FindByID(ctx, "client-1")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "service-a", found.Name)
		assert.Equal(t, "user-1", found.UserID)
		assert.Equal(t, []string{"reports:read", "billing:read"}, found.Scopes)
		assert.Equal(t, []string{Wildcard}, found.IpAddresses)
		assert.Empty(t, found.PlainTextSecret)
	})

	t.Run("FindByApiKey", func(t *testing.T) {
		created, err := repo.Create(ctx, CreateClientParams{ID: "client-2"})
		require.NoError(t, err)
		require.NotEmpty(t, created.ApiKey)

		found, err := repo.FindByApiKey(ctx, created.ApiKey)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "client-2", found.ID)

		missing, err := repo.FindByApiKey(ctx, "unknown-key")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("ExpiredFilteredOut", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		_, err := repo.Create(ctx, CreateClientParams{ID: "stale", Secret: "s", ExpiresAt: &past})
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, "stale")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("FindByUserID", func(t *testing.T) {
		owned, err := repo.FindByUserID(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, owned, 1)
		assert.Equal(t, "client-1", owned[0].ID)
	})

	t.Run("UpdateByID", func(t *testing.T) {
		name := "renamed"
		revoked := true
		updated, err := repo.UpdateByID(ctx, "client-1", UpdateClientParams{
			Name:    &name,
			Revoked: &revoked,
			Scopes:  []string{"admin"},
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "renamed", updated.Name)
		assert.True(t, updated.Revoked)
		assert.Equal(t, []string{"admin"}, updated.Scopes)

		missing, err := repo.UpdateByID(ctx, "nope", UpdateClientParams{Name: &name})
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("SecretRotation", func(t *testing.T) {
		secret := "rotated"
		updated, err := repo.UpdateByID(ctx, "client-1", UpdateClientParams{Secret: &secret})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "rotated", updated.PlainTextSecret)
		assert.Equal(t, "rotated", updated.ApiKey)
	})

	t.Run("DeleteByID", func(t *testing.T) {
		affected, err := repo.DeleteByID(ctx, "client-1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		affected, err = repo.DeleteByID(ctx, "client-1")
		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
	})
}
