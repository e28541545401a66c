// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// DefaultStartingCash is the cash balance granted to every new account.
const DefaultStartingCash = 10000

// User represents a registered user in the system.
// Besides the authentication credentials it carries the user's cash
// balance and the cached grand total (cash plus market value of all
// holdings), which the ledger feature keeps up to date.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Username is the unique name the user authenticates with.
	Username string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the hashed password for the user.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// Cash is the user's spendable cash balance.
	Cash float64 `gorm:"not null;default:10000"`

	// GrandTotal is cash plus the total value of the user's holdings.
	// It is recomputed on every portfolio view and ledger mutation.
	GrandTotal float64 `gorm:"not null;default:10000"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
