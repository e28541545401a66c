package entity

// Holding represents one user's position in one company's stock.
// Shares is always > 0 while the row exists; a sell that would leave
// fewer than one share deletes the row instead.
type Holding struct {
	// ID is the unique identifier for the holding.
	ID uint `gorm:"primaryKey"`

	// UserID and CompanyID form the unique (user, company) pair.
	UserID    uint `gorm:"uniqueIndex:idx_holdings_user_company;not null"`
	CompanyID uint `gorm:"uniqueIndex:idx_holdings_user_company;not null"`

	// Shares is the number of shares held.
	Shares int64 `gorm:"not null"`

	// Total is the cached position value (Shares × Company.Price at last touch).
	Total float64 `gorm:"not null"`
}
