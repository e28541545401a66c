package entity

// Quote is a symbol's current name and price as reported by the
// external lookup collaborator.
type Quote struct {
	Symbol string
	Name   string
	Price  float64
}
