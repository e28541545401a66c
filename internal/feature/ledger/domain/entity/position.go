package entity

// Position is a holding joined with its company, as shown on the
// portfolio page.
type Position struct {
	HoldingID uint
	CompanyID uint
	Symbol    string
	Name      string
	Shares    int64
	Price     float64
	Total     float64
}

// PortfolioSummary is the full portfolio view for one user after a
// price refresh: all positions plus the cash and grand total that were
// persisted alongside them.
type PortfolioSummary struct {
	Positions  []Position
	Cash       float64
	GrandTotal float64
}
