package dto

// PositionRes is one row of the portfolio view.
type PositionRes struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Shares int64   `json:"shares"`
	Price  float64 `json:"price"`
	Total  float64 `json:"total"`
}

// PortfolioRes is the response body for GET /.
type PortfolioRes struct {
	Positions  []PositionRes `json:"positions"`
	Cash       float64       `json:"cash"`
	GrandTotal float64       `json:"grand_total"`
}

// QuoteRes is the response body for a successful quote lookup.
type QuoteRes struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
}

// HistoryEntryRes is one row of the transaction history.
type HistoryEntryRes struct {
	Symbol string  `json:"symbol"`
	Shares int64   `json:"shares"`
	Price  float64 `json:"price"`
	Time   string  `json:"time"`
}

// SymbolListRes is the response body for GET /sell (owned symbols).
type SymbolListRes struct {
	Symbols []string `json:"symbols"`
}
