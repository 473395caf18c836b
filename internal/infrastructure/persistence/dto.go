package persistence

import (
	"database/sql"

	"eko_market/internal/domain/service/deals"
)

// dealSchema maps one market_deals row. Every historical alias column is
// nullable; canonicalization happens once here at the boundary, so nothing
// downstream ever sees the aliases again.
type dealSchema struct {
	ID sql.NullString `db:"id"`

	ProductName sql.NullString `db:"product_name"`
	ItemName    sql.NullString `db:"item_name"`

	MarketA    sql.NullString `db:"market_a"`
	MarketName sql.NullString `db:"market_name"`
	MarketB    sql.NullString `db:"market_b"`

	Mile12Price sql.NullFloat64 `db:"mile12_price"`
	PriceA      sql.NullFloat64 `db:"price_a"`
	OnlinePrice sql.NullFloat64 `db:"online_price"`
	PriceB      sql.NullFloat64 `db:"price_b"`

	PotentialProfit  sql.NullFloat64 `db:"potential_profit"`
	ProfitPercentage sql.NullFloat64 `db:"profit_percentage"`
	ConfidenceScore  sql.NullFloat64 `db:"confidence_score"`

	Category  sql.NullString `db:"specialized_category"`
	CreatedAt sql.NullString `db:"created_at"`
}

func (s dealSchema) toRaw() deals.RawDeal {
	return deals.RawDeal{
		ID:               s.ID.String,
		ProductName:      s.ProductName.String,
		ItemName:         s.ItemName.String,
		MarketA:          s.MarketA.String,
		MarketName:       s.MarketName.String,
		MarketB:          s.MarketB.String,
		Mile12Price:      s.Mile12Price.Float64,
		PriceA:           s.PriceA.Float64,
		OnlinePrice:      s.OnlinePrice.Float64,
		PriceB:           s.PriceB.Float64,
		PotentialProfit:  s.PotentialProfit.Float64,
		ProfitPercentage: s.ProfitPercentage.Float64,
		ConfidenceScore:  s.ConfidenceScore.Float64,
		Category:         s.Category.String,
		CreatedAt:        s.CreatedAt.String,
	}
}
