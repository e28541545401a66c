package usecase

import "errors"

var (
	// ErrMissingSymbol is returned when the symbol field is empty.
	ErrMissingSymbol = errors.New("missing symbol")

	// ErrMissingShares is returned when the shares field is empty.
	ErrMissingShares = errors.New("missing shares")

	// ErrInvalidShares is returned when the shares field is not a positive integer.
	ErrInvalidShares = errors.New("invalid shares")

	// ErrMissingCash is returned when the cash field is empty.
	ErrMissingCash = errors.New("missing cash")

	// ErrInvalidCash is returned when the cash field is not a positive integer.
	ErrInvalidCash = errors.New("invalid cash")

	// ErrSymbolNotFound is returned when the quote provider does not know the symbol.
	ErrSymbolNotFound = errors.New("invalid symbol")

	// ErrInsufficientFunds is returned when a buy's cost exceeds the user's cash.
	ErrInsufficientFunds = errors.New("can't afford")

	// ErrNotOwned is returned when selling a symbol the user holds no shares of.
	ErrNotOwned = errors.New("symbol not owned")

	// ErrInsufficientHoldings is returned when selling more shares than held.
	ErrInsufficientHoldings = errors.New("too many shares")

	// ErrAccountNotFound is returned when the user's account row is missing.
	ErrAccountNotFound = errors.New("account not found")

	// ErrHoldingNotFound is returned by the store when a (user, company)
	// holding does not exist. Callers translate it into ErrNotOwned where
	// that is the user-facing meaning.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrCompanyNotFound is returned by the store when no company row
	// exists for a symbol.
	ErrCompanyNotFound = errors.New("company not found")
)
