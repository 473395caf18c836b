package entity

import "time"

// Deal is one arbitrage opportunity with all legacy field aliases already
// reconciled. Everything downstream of the persistence boundary works with
// this canonical form only.
type Deal struct {
	ID         string
	ItemName   string
	BuyMarket  string
	SellMarket string
	Category   string

	BuyPrice  float64
	SellPrice float64

	// Profit is the explicit value from the source when present, otherwise
	// SellPrice - BuyPrice. May be negative.
	Profit float64

	// ProfitPercentage is display-only ROI. Nil when the source omitted it
	// and BuyPrice was zero.
	ProfitPercentage *float64

	// ConfidenceScore is informational only.
	ConfidenceScore *float64

	CreatedAt time.Time
}
