package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"finance_backend/internal/feature/auth/domain/entity"
	"finance_backend/internal/feature/auth/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
// TranslateError is enabled so duplicate-key errors surface as
// gorm.ErrDuplicatedKey, matching the production configuration.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.User{}, &SessionModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func TestNewUserGorm(t *testing.T) {
	db := setupTestDB(t)

	repo := NewUserGorm(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestUserGorm_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		user := &entity.User{
			Username:   "alice",
			Password:   "hashed_password",
			Cash:       entity.DefaultStartingCash,
			GrandTotal: entity.DefaultStartingCash,
		}

		err := repo.Create(context.Background(), user)

		assert.NoError(t, err, "failed to create user")
		assert.NotZero(t, user.ID, "ID is not set")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
	})

	t.Run("duplicate username error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		user1 := &entity.User{Username: "alice", Password: "password1"}
		err := repo.Create(context.Background(), user1)
		require.NoError(t, err, "failed to create first user")

		// Create second user with the same username
		user2 := &entity.User{Username: "alice", Password: "password2"}
		err = repo.Create(context.Background(), user2)

		assert.ErrorIs(t, err, usecase.ErrUsernameAlreadyExists)
	})
}

func TestUserGorm_FindByUsername(t *testing.T) {
	t.Run("existing user", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		created := &entity.User{Username: "alice", Password: "hashed_password"}
		require.NoError(t, repo.Create(context.Background(), created))

		found, err := repo.FindByUsername(context.Background(), "alice")

		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "alice", found.Username)
	})

	t.Run("unknown user", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		_, err := repo.FindByUsername(context.Background(), "nobody")

		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserGorm_FindByID(t *testing.T) {
	t.Run("existing user", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		created := &entity.User{Username: "alice", Password: "hashed_password"}
		require.NoError(t, repo.Create(context.Background(), created))

		found, err := repo.FindByID(context.Background(), created.ID)

		require.NoError(t, err)
		assert.Equal(t, "alice", found.Username)
	})

	t.Run("unknown ID", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		_, err := repo.FindByID(context.Background(), 42)

		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}
