package entity

// LogisticsMode selects how the buyer gets the goods from the source market.
type LogisticsMode string

const (
	// ModeDelivery is a one-way rider fee.
	ModeDelivery LogisticsMode = "delivery"
	// ModePickup is a round-trip self-collection fee, double the delivery cost.
	ModePickup LogisticsMode = "pickup"
)

func (m LogisticsMode) Valid() bool {
	return m == ModeDelivery || m == ModePickup
}

// LogisticsQuote is a derived delivery-fee estimate. It is recomputed per
// request and never persisted.
type LogisticsQuote struct {
	Market        string
	DistanceKm    float64
	Mode          LogisticsMode
	EstimatedCost float64
}
