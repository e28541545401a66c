package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"finance_backend/internal/feature/ledger/domain/entity"
	"finance_backend/internal/feature/ledger/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Account{}, &entity.Company{}, &entity.Holding{}, &entity.HistoryEntry{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// seedAccount inserts a user row with the given cash balance.
func seedAccount(t *testing.T, db *gorm.DB, id uint, cash float64) {
	t.Helper()
	acct := entity.Account{ID: id, Cash: cash, GrandTotal: cash}
	require.NoError(t, db.Create(&acct).Error, "failed to seed account")
}

func TestNewLedgerGorm(t *testing.T) {
	db := setupTestDB(t)

	repo := NewLedgerGorm(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestLedgerGorm_Account(t *testing.T) {
	ctx := context.Background()

	t.Run("reads and updates the financial columns", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewLedgerGorm(db)
		seedAccount(t, db, 1, 10000)

		acct, err := repo.AccountByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, float64(10000), acct.Cash)
		assert.Equal(t, float64(10000), acct.GrandTotal)

		err = repo.UpdateAccount(ctx, 1, 9000, 10500)
		require.NoError(t, err)

		acct, err = repo.AccountByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, float64(9000), acct.Cash)
		assert.Equal(t, float64(10500), acct.GrandTotal)
	})

	t.Run("missing account", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewLedgerGorm(db)

		_, err := repo.AccountByID(ctx, 42)

		assert.ErrorIs(t, err, usecase.ErrAccountNotFound)
	})
}

func TestLedgerGorm_Company(t *testing.T) {
	ctx := context.Background()

	t.Run("upsert creates then refreshes", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewLedgerGorm(db)

		created, err := repo.UpsertCompany(ctx, "AAPL", "Apple Inc", 100)
		require.NoError(t, err)
		assert.NotZero(t, created.ID, "ID is not set")

		// Second upsert must reuse the row and refresh price
		updated, err := repo.UpsertCompany(ctx, "AAPL", "Apple Inc", 120)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID, "upsert created a duplicate row")
		assert.Equal(t, float64(120), updated.Price)

		found, err := repo.CompanyBySymbol(ctx, "AAPL")
		require.NoError(t, err)
		assert.Equal(t, float64(120), found.Price)
	})

	t.Run("update price", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewLedgerGorm(db)

		c, err := repo.UpsertCompany(ctx, "MSFT", "Microsoft", 50)
		require.NoError(t, err)

		require.NoError(t, repo.UpdateCompanyPrice(ctx, c.ID, 55))

		found, err := repo.CompanyBySymbol(ctx, "MSFT")
		require.NoError(t, err)
		assert.Equal(t, float64(55), found.Price)
	})

	t.Run("missing symbol", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewLedgerGorm(db)

		_, err := repo.CompanyBySymbol(ctx, "ZZZZ")

		assert.ErrorIs(t, err, usecase.ErrCompanyNotFound)
	})
}

func TestLedgerGorm_Holdings(t *testing.T) {
	ctx := context.Background()

	t.Run("save, read, update total, delete", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewLedgerGorm(db)

		company, err := repo.UpsertCompany(ctx, "AAPL", "Apple Inc", 100)
		require.NoError(t, err)

		holding := &entity.Holding{UserID: 1, CompanyID: company.ID, Shares: 10, Total: 1000}
		require.NoError(t, repo.SaveHolding(ctx, holding))
		assert.NotZero(t, holding.ID, "ID is not set")

		found, err := repo.HoldingByUserAndCompany(ctx, 1, company.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), found.Shares)

		require.NoError(t, repo.UpdateHoldingTotal(ctx, holding.ID, 1200))
		found, err = repo.HoldingByUserAndCompany(ctx, 1, company.ID)
		require.NoError(t, err)
		assert.Equal(t, float64(1200), found.Total)

		require.NoError(t, repo.DeleteHolding(ctx, 1, company.ID))
		_, err = repo.HoldingByUserAndCompany(ctx, 1, company.ID)
		assert.ErrorIs(t, err, usecase.ErrHoldingNotFound)
	})

	t.Run("sum of totals is zero for empty portfolios", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewLedgerGorm(db)

		sum, err := repo.SumHoldingTotals(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, float64(0), sum)
	})

	t.Run("sum of totals spans companies but not users", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewLedgerGorm(db)

		aapl, _ := repo.UpsertCompany(ctx, "AAPL", "Apple Inc", 100)
		msft, _ := repo.UpsertCompany(ctx, "MSFT", "Microsoft", 50)

		require.NoError(t, repo.SaveHolding(ctx, &entity.Holding{UserID: 1, CompanyID: aapl.ID, Shares: 10, Total: 1000}))
		require.NoError(t, repo.SaveHolding(ctx, &entity.Holding{UserID: 1, CompanyID: msft.ID, Shares: 4, Total: 200}))
		require.NoError(t, repo.SaveHolding(ctx, &entity.Holding{UserID: 2, CompanyID: aapl.ID, Shares: 1, Total: 100}))

		sum, err := repo.SumHoldingTotals(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, float64(1200), sum)
	})
}

func TestLedgerGorm_PositionsByUser(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewLedgerGorm(db)

	msft, err := repo.UpsertCompany(ctx, "MSFT", "Microsoft", 50)
	require.NoError(t, err)
	aapl, err := repo.UpsertCompany(ctx, "AAPL", "Apple Inc", 100)
	require.NoError(t, err)

	require.NoError(t, repo.SaveHolding(ctx, &entity.Holding{UserID: 1, CompanyID: msft.ID, Shares: 4, Total: 200}))
	require.NoError(t, repo.SaveHolding(ctx, &entity.Holding{UserID: 1, CompanyID: aapl.ID, Shares: 10, Total: 1000}))
	require.NoError(t, repo.SaveHolding(ctx, &entity.Holding{UserID: 2, CompanyID: aapl.ID, Shares: 1, Total: 100}))

	positions, err := repo.PositionsByUser(ctx, 1)

	require.NoError(t, err)
	require.Len(t, positions, 2, "expected only user 1's positions")
	// Ordered by symbol
	assert.Equal(t, "AAPL", positions[0].Symbol)
	assert.Equal(t, "Apple Inc", positions[0].Name)
	assert.Equal(t, int64(10), positions[0].Shares)
	assert.Equal(t, float64(100), positions[0].Price)
	assert.Equal(t, "MSFT", positions[1].Symbol)
}

func TestLedgerGorm_History(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewLedgerGorm(db)

	require.NoError(t, repo.AppendHistory(ctx, &entity.HistoryEntry{UserID: 1, Symbol: "AAPL", Shares: 10, Price: 100}))
	require.NoError(t, repo.AppendHistory(ctx, &entity.HistoryEntry{UserID: 1, Symbol: "AAPL", Shares: -3, Price: 110}))
	require.NoError(t, repo.AppendHistory(ctx, &entity.HistoryEntry{UserID: 2, Symbol: "MSFT", Shares: 1, Price: 50}))

	entries, err := repo.HistoryByUser(ctx, 1)

	require.NoError(t, err)
	require.Len(t, entries, 2, "expected only user 1's history")
	// Newest first
	assert.Equal(t, int64(-3), entries[0].Shares)
	assert.Equal(t, int64(10), entries[1].Shares)
}

func TestLedgerGorm_InTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewLedgerGorm(db)
		seedAccount(t, db, 1, 10000)

		err := repo.InTx(ctx, func(s usecase.LedgerStore) error {
			if err := s.UpdateAccount(ctx, 1, 9000, 10000); err != nil {
				return err
			}
			return s.AppendHistory(ctx, &entity.HistoryEntry{UserID: 1, Symbol: "AAPL", Shares: 10, Price: 100})
		})

		require.NoError(t, err)
		acct, err := repo.AccountByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, float64(9000), acct.Cash)
		entries, err := repo.HistoryByUser(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("rolls back all writes on error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewLedgerGorm(db)
		seedAccount(t, db, 1, 10000)

		boom := usecase.ErrInsufficientFunds
		err := repo.InTx(ctx, func(s usecase.LedgerStore) error {
			if err := s.UpdateAccount(ctx, 1, 0, 0); err != nil {
				return err
			}
			if err := s.AppendHistory(ctx, &entity.HistoryEntry{UserID: 1, Symbol: "AAPL", Shares: 10, Price: 100}); err != nil {
				return err
			}
			return boom
		})

		assert.ErrorIs(t, err, boom)
		acct, err := repo.AccountByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, float64(10000), acct.Cash, "account write was not rolled back")
		entries, err := repo.HistoryByUser(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, entries, "history write was not rolled back")
	})
}
