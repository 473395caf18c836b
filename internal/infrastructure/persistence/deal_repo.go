package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"

	"eko_market/internal/domain"
	"eko_market/internal/domain/entity"
	"eko_market/internal/domain/service/deals"
	"eko_market/pkg/errcodes"
	"eko_market/pkg/lox"
)

// maxFetchRows bounds a wholesale fetch. There is no server-side pagination;
// slicing happens in memory over the full set.
const maxFetchRows = 2000

type DealRepository struct {
	db *sqlx.DB
}

func NewDealRepository(db *sqlx.DB) *DealRepository {
	return &DealRepository{db: db}
}

// ListDeals fetches the newest rows wholesale and returns them already
// canonicalized. Malformed rows are absorbed by normalization, not skipped.
func (r *DealRepository) ListDeals(ctx context.Context) ([]entity.Deal, error) {
	query := `
		SELECT id, product_name, item_name,
		       market_a, market_name, market_b,
		       mile12_price, price_a, online_price, price_b,
		       potential_profit, profit_percentage, confidence_score,
		       specialized_category, created_at
		FROM market_deals
		ORDER BY created_at DESC
		LIMIT $1`

	var schemas []dealSchema
	if err := r.db.SelectContext(ctx, &schemas, query, maxFetchRows); err != nil {
		return nil, domain.WrapError(err, errcodes.DealFetchFailed, "failed to list market deals")
	}

	raws := lox.Map(schemas, func(s dealSchema) deals.RawDeal { return s.toRaw() })

	return deals.NormalizeAll(raws), nil
}
