package entity

import "time"

// HistoryEntry is an immutable record of a single buy or sell.
// Shares is signed: positive for buys, negative for sells.
// Rows are append-only; nothing updates or deletes them.
type HistoryEntry struct {
	// ID is the unique identifier for the entry.
	ID uint `gorm:"primaryKey"`

	// UserID identifies the user who made the transaction.
	UserID uint `gorm:"index;not null"`

	// Symbol is the traded ticker symbol.
	Symbol string `gorm:"size:16;not null"`

	// Shares is the signed share delta (+buy / −sell).
	Shares int64 `gorm:"not null"`

	// Price is the share price at transaction time.
	Price float64 `gorm:"not null"`

	// CreatedAt is the transaction timestamp.
	CreatedAt time.Time
}

// TableName overrides the GORM table name.
func (HistoryEntry) TableName() string {
	return "history_entries"
}
