// Package entity defines the domain entities for the ledger feature.
package entity

import "time"

// Company represents a listed company whose shares can be traded.
// A row is created on the first buy of a symbol; Price holds the value
// from the most recent quote lookup that touched the row.
type Company struct {
	// ID is the unique identifier for the company.
	ID uint `gorm:"primaryKey"`

	// Symbol is the ticker symbol, unique across companies.
	Symbol string `gorm:"uniqueIndex;size:16;not null"`

	// Name is the display name reported by the quote provider.
	Name string `gorm:"size:255;not null"`

	// Price is the last looked-up share price.
	Price float64 `gorm:"not null"`

	// CreatedAt is the timestamp when the company was first bought.
	CreatedAt time.Time

	// UpdatedAt is the timestamp of the last price refresh.
	UpdatedAt time.Time
}
