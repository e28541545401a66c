package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance_backend/internal/feature/auth/domain/entity"
	"finance_backend/internal/feature/auth/usecase"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

// createTestSession creates a session entity for testing.
func createTestSession(id string, userID uint, expiresIn time.Duration) *entity.Session {
	now := time.Now()
	return &entity.Session{
		ID:        id,
		UserID:    userID,
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
		CreatedAt: now,
		ExpiresAt: now.Add(expiresIn),
	}
}

func TestNewSessionRedis(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.client, "client is nil")
	assert.Equal(t, "session", repo.prefix)
}

func TestSessionRedis_Create(t *testing.T) {
	t.Run("stores the session with a TTL", func(t *testing.T) {
		client, mr := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		session := createTestSession("token-1", 1, time.Hour)
		err := repo.Create(context.Background(), session)

		require.NoError(t, err)
		assert.True(t, mr.Exists("session:token-1"), "session key missing")
		assert.True(t, mr.Exists("session:user:1"), "user set missing")
		ttl := mr.TTL("session:token-1")
		assert.Greater(t, ttl, time.Duration(0), "expected a positive TTL")
	})

	t.Run("rejects an already expired session", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		session := createTestSession("token-1", 1, -time.Minute)
		err := repo.Create(context.Background(), session)

		assert.Error(t, err)
	})
}

func TestSessionRedis_FindByID(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		created := createTestSession("token-1", 1, time.Hour)
		require.NoError(t, repo.Create(context.Background(), created))

		found, err := repo.FindByID(context.Background(), "token-1")

		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, created.UserID, found.UserID)
		assert.Equal(t, "test-agent", found.UserAgent)
	})

	t.Run("unknown session", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		_, err := repo.FindByID(context.Background(), "unknown")

		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})

	t.Run("expired session is gone", func(t *testing.T) {
		client, mr := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		require.NoError(t, repo.Create(context.Background(), createTestSession("token-1", 1, time.Minute)))

		// Advance miniredis past the TTL
		mr.FastForward(2 * time.Minute)

		_, err := repo.FindByID(context.Background(), "token-1")
		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})
}

func TestSessionRedis_Revoke(t *testing.T) {
	t.Run("marks the session revoked but keeps it readable", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		require.NoError(t, repo.Create(context.Background(), createTestSession("token-1", 1, time.Hour)))

		require.NoError(t, repo.Revoke(context.Background(), "token-1"))

		found, err := repo.FindByID(context.Background(), "token-1")
		require.NoError(t, err)
		assert.NotNil(t, found.RevokedAt, "RevokedAt is not set")
		assert.True(t, found.IsRevoked())
		assert.False(t, found.IsValid())
	})

	t.Run("unknown session", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		err := repo.Revoke(context.Background(), "unknown")

		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})
}

func TestSessionRedis_CountByUserID(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, createTestSession("active-1", 1, time.Hour)))
	require.NoError(t, repo.Create(ctx, createTestSession("active-2", 1, time.Hour)))
	require.NoError(t, repo.Create(ctx, createTestSession("other-user", 2, time.Hour)))

	// Revoked sessions don't count
	require.NoError(t, repo.Create(ctx, createTestSession("revoked", 1, time.Hour)))
	require.NoError(t, repo.Revoke(ctx, "revoked"))

	count, err := repo.CountByUserID(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSessionRedis_DeleteOldestByUserID(t *testing.T) {
	t.Run("removes only the oldest session", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")
		ctx := context.Background()

		oldest := createTestSession("oldest", 1, time.Hour)
		oldest.CreatedAt = time.Now().Add(-2 * time.Hour)
		require.NoError(t, repo.Create(ctx, oldest))
		require.NoError(t, repo.Create(ctx, createTestSession("newest", 1, time.Hour)))

		require.NoError(t, repo.DeleteOldestByUserID(ctx, 1))

		_, err := repo.FindByID(ctx, "oldest")
		assert.ErrorIs(t, err, usecase.ErrSessionNotFound, "oldest session should be gone")

		_, err = repo.FindByID(ctx, "newest")
		assert.NoError(t, err, "newest session should remain")
	})

	t.Run("no sessions is a no-op", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		err := repo.DeleteOldestByUserID(context.Background(), 1)

		assert.NoError(t, err)
	})
}
