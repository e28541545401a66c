package usecase

import (
	"context"

	"finance_backend/internal/feature/ledger/domain/entity"
)

// QuoteRepository abstracts the external quote lookup collaborator.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (platform).
type QuoteRepository interface {
	// Lookup returns the current name and price for a ticker symbol.
	// Unknown symbols yield ErrSymbolNotFound; transport failures bubble as-is.
	Lookup(ctx context.Context, symbol string) (*entity.Quote, error)
}

// LedgerStore is the set of reads and writes the bookkeeping logic
// needs. Inside InTx the store is backed by one database transaction.
type LedgerStore interface {
	// AccountByID returns the financial columns of a user row.
	// Missing rows yield ErrAccountNotFound.
	AccountByID(ctx context.Context, userID uint) (*entity.Account, error)

	// UpdateAccount persists a user's cash and grand total.
	UpdateAccount(ctx context.Context, userID uint, cash, grandTotal float64) error

	// CompanyBySymbol returns the company row for a symbol.
	// Missing rows yield ErrCompanyNotFound.
	CompanyBySymbol(ctx context.Context, symbol string) (*entity.Company, error)

	// UpsertCompany inserts the company on first sight of a symbol, or
	// refreshes its name and price otherwise, returning the row.
	UpsertCompany(ctx context.Context, symbol, name string, price float64) (*entity.Company, error)

	// UpdateCompanyPrice refreshes one company's cached price.
	UpdateCompanyPrice(ctx context.Context, companyID uint, price float64) error

	// PositionsByUser returns the user's holdings joined with companies.
	PositionsByUser(ctx context.Context, userID uint) ([]entity.Position, error)

	// HoldingByUserAndCompany returns the (user, company) holding.
	// Missing rows yield ErrHoldingNotFound.
	HoldingByUserAndCompany(ctx context.Context, userID, companyID uint) (*entity.Holding, error)

	// SaveHolding inserts or updates a holding row.
	SaveHolding(ctx context.Context, holding *entity.Holding) error

	// UpdateHoldingTotal refreshes one holding's cached total.
	UpdateHoldingTotal(ctx context.Context, holdingID uint, total float64) error

	// DeleteHolding removes the (user, company) holding row.
	DeleteHolding(ctx context.Context, userID, companyID uint) error

	// SumHoldingTotals returns Σ holding.total for a user, 0 when the
	// user holds nothing.
	SumHoldingTotals(ctx context.Context, userID uint) (float64, error)

	// AppendHistory appends an immutable transaction record.
	AppendHistory(ctx context.Context, e *entity.HistoryEntry) error

	// HistoryByUser returns the user's transaction records, newest first.
	HistoryByUser(ctx context.Context, userID uint) ([]entity.HistoryEntry, error)
}

// LedgerRepository is a LedgerStore that can also run a function within
// a single database transaction. Every multi-row mutation (buy, sell,
// deposit, valuation write-back) goes through InTx so a failure rolls
// back all of it.
type LedgerRepository interface {
	LedgerStore

	// InTx runs fn with a transaction-scoped store. If fn returns an
	// error the transaction is rolled back and the error is returned.
	InTx(ctx context.Context, fn func(store LedgerStore) error) error
}
