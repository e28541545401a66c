package entity

// Account is the ledger feature's view of a user row: the financial
// columns only. It maps onto the auth feature's users table so the two
// features stay decoupled at the package level while sharing storage.
type Account struct {
	ID         uint    `gorm:"primaryKey"`
	Cash       float64 `gorm:"not null"`
	GrandTotal float64 `gorm:"not null"`
}

// TableName maps the account onto the users table.
func (Account) TableName() string {
	return "users"
}
