package deals_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eko_market/internal/domain/entity"
	"eko_market/internal/domain/service/deals"
)

func day(n int) time.Time {
	return time.Date(2026, 8, n, 12, 0, 0, 0, time.UTC)
}

func testCollection() []entity.Deal {
	return []entity.Deal{
		{ID: "a", ItemName: "Rice 50kg", BuyMarket: "Mile 12 Market", SellMarket: "Jumia", Category: "Grains", Profit: 5000, CreatedAt: day(1)},
		{ID: "b", ItemName: "Tomatoes basket", BuyMarket: "Oyingbo", SellMarket: "Konga", Category: "Vegetables", Profit: 100, CreatedAt: day(3)},
		{ID: "c", ItemName: "Yam tubers", BuyMarket: "Mile 12 Market", SellMarket: "Jiji", Category: "Tubers", Profit: -50, CreatedAt: day(2)},
	}
}

func TestFilter(t *testing.T) {
	rq := require.New(t)
	collection := testCollection()

	rq.Len(deals.Filter(collection, ""), 3)
	rq.Len(deals.Filter(collection, "   "), 3)

	byItem := deals.Filter(collection, "rice")
	rq.Len(byItem, 1)
	rq.Equal("a", byItem[0].ID)

	byMarket := deals.Filter(collection, "MILE 12")
	rq.Len(byMarket, 2)

	bySellMarket := deals.Filter(collection, "konga")
	rq.Len(bySellMarket, 1)
	rq.Equal("b", bySellMarket[0].ID)

	byCategory := deals.Filter(collection, "tubers")
	rq.Len(byCategory, 1)
	rq.Equal("c", byCategory[0].ID)

	rq.Empty(deals.Filter(collection, "plantain"))
}

func TestSort(t *testing.T) {
	rq := require.New(t)
	collection := testCollection()

	byProfit := deals.Sort(collection, deals.SortByProfit)
	rq.Equal([]string{"a", "b", "c"}, ids(byProfit))

	byRecency := deals.Sort(collection, deals.SortByRecency)
	rq.Equal([]string{"b", "c", "a"}, ids(byRecency))

	// Input order untouched.
	rq.Equal([]string{"a", "b", "c"}, ids(collection))
}

func TestSortStableOnTies(t *testing.T) {
	rq := require.New(t)

	collection := []entity.Deal{
		{ID: "x", Profit: 100, CreatedAt: day(1)},
		{ID: "y", Profit: 100, CreatedAt: day(1)},
		{ID: "z", Profit: 100, CreatedAt: day(1)},
	}

	rq.Equal([]string{"x", "y", "z"}, ids(deals.Sort(collection, deals.SortByProfit)))
	rq.Equal([]string{"x", "y", "z"}, ids(deals.Sort(collection, deals.SortByRecency)))
}

func TestPaginate(t *testing.T) {
	rq := require.New(t)

	collection := make([]entity.Deal, 23)
	for i := range collection {
		collection[i] = entity.Deal{ID: fmt.Sprintf("d%d", i)}
	}

	rq.Equal(3, deals.TotalPages(len(collection)))

	page1 := deals.Paginate(collection, 1)
	rq.Len(page1, 10)
	rq.Equal("d0", page1[0].ID)

	page3 := deals.Paginate(collection, 3)
	rq.Len(page3, 3)
	rq.Equal("d20", page3[0].ID)

	rq.Empty(deals.Paginate(collection, 4))
	rq.Empty(deals.Paginate(collection, 0))
	rq.Empty(deals.Paginate(nil, 1))
}

func TestTotalPages(t *testing.T) {
	rq := require.New(t)

	rq.Equal(0, deals.TotalPages(0))
	rq.Equal(1, deals.TotalPages(1))
	rq.Equal(1, deals.TotalPages(10))
	rq.Equal(2, deals.TotalPages(11))
}

func TestTopByProfit(t *testing.T) {
	rq := require.New(t)
	collection := testCollection()

	top := deals.TopByProfit(collection, 2)
	rq.Equal([]string{"a", "b"}, ids(top))

	all := deals.TopByProfit(collection, 10)
	rq.Len(all, 3)
}

func TestViewStatePageResets(t *testing.T) {
	rq := require.New(t)

	state := deals.NewViewState()
	rq.Equal(1, state.Page)
	rq.Equal(deals.SortByRecency, state.Sort)

	state.SetPage(4)
	rq.Equal(4, state.Page)

	state.SetQuery("rice")
	rq.Equal(1, state.Page)

	state.SetPage(3)
	state.SetQuery("rice") // unchanged, no reset
	rq.Equal(3, state.Page)

	state.SetSort(deals.SortByProfit)
	rq.Equal(1, state.Page)

	state.SetPage(2)
	state.SetSection("chat")
	rq.Equal(1, state.Page)

	state.SetPage(0) // ignored
	rq.Equal(1, state.Page)
}

func ids(collection []entity.Deal) []string {
	result := make([]string, len(collection))
	for i, d := range collection {
		result[i] = d.ID
	}

	return result
}
