package server_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"eko_market/internal/domain/entity"
	"eko_market/internal/worker"
	"eko_market/pkg/rest"
	"eko_market/pkg/tests"
)

// End-to-end over a real listener.
func TestAPI(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	random := tests.NewRandomizer()

	collection := make([]entity.Deal, 25)
	for i := range collection {
		profit := random.Float64() * 20000
		collection[i] = entity.Deal{
			ID:        fmt.Sprintf("d%d", i),
			ItemName:  fmt.Sprintf("Item %d", i),
			BuyMarket: "Mile 12 Market",
			BuyPrice:  10000,
			SellPrice: 10000 + profit,
			Profit:    profit,
			CreatedAt: day(1 + i%28),
		}
	}

	snapshot := worker.Snapshot{
		Deals:       collection,
		Status:      worker.StatusSuccess,
		RefreshedAt: day(28),
	}

	ts := httptest.NewServer(newTestServer(
		&fakeCollection{snapshot: snapshot},
		&fakeQueue{},
		&fakeGenerator{answer: "ok"},
	))
	defer ts.Close()

	client := tests.NewAPIClient(ts.URL, ts.Client())

	var stats rest.Stats

	resp, err := client.Get(ctx, "/v1/stats", nil, &stats, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(25, stats.TotalDeals)

	var page rest.DealsPage

	resp, err = client.Get(ctx, "/v1/deals?sort=profit&page=3", nil, &page, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(3, page.TotalPages)
	rq.Equal(25, page.TotalDeals)
	rq.Len(page.Deals, 5)

	// Ranking holds across the page boundary.
	rq.GreaterOrEqual(page.Deals[0].Profit, page.Deals[len(page.Deals)-1].Profit)

	var chatResponse rest.ChatResponse

	resp, err = client.PostJSON(ctx, "/v1/chat", nil, `{"question":"which deal is best?"}`, &chatResponse, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal("ok", chatResponse.Answer)

	var apiErr rest.Error

	resp, err = client.Get(ctx, "/v1/deals?sort=bogus", nil, nil, &apiErr)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Equal(rest.ErrorCode("InvalidSortOrder"), apiErr.Code)
}
