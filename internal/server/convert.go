package server

import (
	"math"
	"time"

	"eko_market/internal/domain/entity"
	"eko_market/internal/domain/service/share"
	"eko_market/internal/worker"
	"eko_market/pkg/rest"
)

func newRESTDeal(deal entity.Deal, quote *entity.LogisticsQuote) rest.Deal {
	return rest.Deal{
		ID:               deal.ID,
		ItemName:         deal.ItemName,
		BuyMarket:        deal.BuyMarket,
		SellMarket:       deal.SellMarket,
		BuyPrice:         deal.BuyPrice,
		SellPrice:        deal.SellPrice,
		Profit:           deal.Profit,
		ProfitPercentage: deal.ProfitPercentage,
		ConfidenceScore:  deal.ConfidenceScore,
		Category:         deal.Category,
		CreatedAt:        deal.CreatedAt.Format(time.RFC3339),
		Logistics:        newRESTQuote(quote),
		ShareURL:         share.DealLink(deal),
	}
}

func newRESTQuote(quote *entity.LogisticsQuote) *rest.LogisticsQuote {
	if quote == nil {
		return nil
	}

	return &rest.LogisticsQuote{
		Market: quote.Market,
		// Distance is display precision only; full precision stays in the
		// cost estimate.
		DistanceKm:    math.Round(quote.DistanceKm*10) / 10,
		Mode:          string(quote.Mode),
		EstimatedCost: quote.EstimatedCost,
	}
}

func newRESTStats(snapshot worker.Snapshot) rest.Stats {
	stats := rest.Stats{
		TotalDeals: len(snapshot.Deals),
	}

	if !snapshot.RefreshedAt.IsZero() {
		stats.LastRefreshAt = snapshot.RefreshedAt.Format(time.RFC3339)
	}

	var sum float64
	var n int

	for _, deal := range snapshot.Deals {
		if deal.ProfitPercentage != nil {
			sum += *deal.ProfitPercentage
			n++
		}
	}

	if n > 0 {
		stats.AverageROI = math.Round(sum/float64(n)*10) / 10
	}

	return stats
}
