// REST API models. Hand-written counterpart of what would normally be
// generated from an openapi spec as types.gen.go.
package rest

type Deal struct {
	ID               string          `json:"id"`
	ItemName         string          `json:"itemName"`
	BuyMarket        string          `json:"buyMarket"`
	SellMarket       string          `json:"sellMarket"`
	BuyPrice         float64         `json:"buyPrice"`
	SellPrice        float64         `json:"sellPrice"`
	Profit           float64         `json:"profit"`
	ProfitPercentage *float64        `json:"profitPercentage,omitempty"`
	ConfidenceScore  *float64        `json:"confidenceScore,omitempty"`
	Category         string          `json:"category"`
	CreatedAt        string          `json:"createdAt"`
	Logistics        *LogisticsQuote `json:"logistics,omitempty"`
	ShareURL         string          `json:"shareUrl"`
}

type LogisticsQuote struct {
	Market        string  `json:"market"`
	DistanceKm    float64 `json:"distanceKm"`
	Mode          string  `json:"mode"`
	EstimatedCost float64 `json:"estimatedCost"`
}

type DealsPage struct {
	Deals      []Deal `json:"deals"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
	TotalDeals int    `json:"totalDeals"`

	// Non-fatal fetch problem from the last refresh, empty when none.
	Warning string `json:"warning,omitempty"`
}

type Stats struct {
	TotalDeals    int     `json:"totalDeals"`
	AverageROI    float64 `json:"averageRoi"`
	LastRefreshAt string  `json:"lastRefreshAt"`
}

type ChatRequest struct {
	Question string `json:"question" validate:"required,min=1,max=2000"`
	Language string `json:"language" validate:"omitempty,oneof=english pidgin"`
}

type ChatResponse struct {
	Answer   string `json:"answer"`
	ShareURL string `json:"shareUrl"`
}

// Error model.
type Error struct {
	// Error code.
	Code ErrorCode `json:"code"`

	// Human readable message (for UI display).
	Message string `json:"message"`
}

// ErrorCode error code.
type ErrorCode string
