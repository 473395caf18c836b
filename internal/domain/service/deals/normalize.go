package deals

import (
	"time"

	"eko_market/internal/domain/entity"
)

// Labels substituted when every alias of a field is absent.
const (
	DefaultItemName   = "Unknown Item"
	DefaultBuyMarket  = "Local Market"
	DefaultSellMarket = "Online Store"
	DefaultCategory   = "General"
)

// RawDeal mirrors one market_deals row as it comes off the wire, with every
// historical field alias the table has accumulated. Zero values mean "absent":
// the scraper never writes empty strings or zero prices on purpose.
type RawDeal struct {
	ID string

	// Item name aliases, specialized first.
	ProductName string
	ItemName    string

	// Buy-market aliases, specialized first.
	MarketA    string
	MarketName string

	// Sell market has a single legacy name.
	MarketB string

	// Buy price aliases, specialized first.
	Mile12Price float64
	PriceA      float64

	// Sell price aliases, specialized first.
	OnlinePrice float64
	PriceB      float64

	// PotentialProfit is authoritative when present.
	PotentialProfit  float64
	ProfitPercentage float64
	ConfidenceScore  float64

	Category  string
	CreatedAt string
}

// Normalize reconciles the alias fields of a raw row into one canonical deal.
// It is pure, never fails on partial rows, and is idempotent: feeding the
// canonical values back through yields the same deal.
func Normalize(raw RawDeal) entity.Deal {
	buyPrice := firstPrice(raw.Mile12Price, raw.PriceA)
	sellPrice := firstPrice(raw.OnlinePrice, raw.PriceB)

	profit := raw.PotentialProfit
	if profit == 0 {
		profit = sellPrice - buyPrice
	}

	return entity.Deal{
		ID:               raw.ID,
		ItemName:         firstText(raw.ProductName, raw.ItemName, DefaultItemName),
		BuyMarket:        firstText(raw.MarketA, raw.MarketName, DefaultBuyMarket),
		SellMarket:       firstText(raw.MarketB, DefaultSellMarket),
		Category:         firstText(raw.Category, DefaultCategory),
		BuyPrice:         buyPrice,
		SellPrice:        sellPrice,
		Profit:           profit,
		ProfitPercentage: profitPercentage(raw.ProfitPercentage, profit, buyPrice),
		ConfidenceScore:  optional(raw.ConfidenceScore),
		CreatedAt:        parseCreatedAt(raw.CreatedAt),
	}
}

// NormalizeAll converts a fetched batch, dropping nothing: malformed rows
// come out with defaulted fields rather than errors.
func NormalizeAll(raws []RawDeal) []entity.Deal {
	result := make([]entity.Deal, len(raws))
	for i, raw := range raws {
		result[i] = Normalize(raw)
	}

	return result
}

// profitPercentage carries the source ROI through when present and derives it
// from the price fields otherwise. Rows without a buy price get no ROI.
func profitPercentage(explicit, profit, buyPrice float64) *float64 {
	if explicit != 0 {
		return &explicit
	}

	if buyPrice > 0 {
		derived := profit / buyPrice * 100
		return &derived
	}

	return nil
}

func firstText(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

func firstPrice(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}

	return 0
}

func optional(v float64) *float64 {
	if v == 0 {
		return nil
	}

	return &v
}

// parseCreatedAt parses the row timestamp. Missing or unparsable values
// become the Unix epoch so recency ordering pushes them to the bottom.
func parseCreatedAt(s string) time.Time {
	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02 15:04:05",
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	return time.Unix(0, 0).UTC()
}
