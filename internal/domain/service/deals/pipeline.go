package deals

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"eko_market/internal/domain/entity"
)

// PageSize is fixed: all slicing happens client-side over the full
// fetched set, ten deals per page.
const PageSize = 10

type SortOrder string

const (
	// SortByRecency orders by createdAt descending.
	SortByRecency SortOrder = "recent"
	// SortByProfit orders by computed profit descending.
	SortByProfit SortOrder = "profit"
)

func (s SortOrder) Valid() bool {
	return s == SortByRecency || s == SortByProfit
}

// Filter returns the deals whose item name, either market label, or category
// contains the query, case-insensitively. An empty query matches everything.
func Filter(collection []entity.Deal, query string) []entity.Deal {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return collection
	}

	return lo.Filter(collection, func(d entity.Deal, _ int) bool {
		return strings.Contains(strings.ToLower(d.ItemName), term) ||
			strings.Contains(strings.ToLower(d.BuyMarket), term) ||
			strings.Contains(strings.ToLower(d.SellMarket), term) ||
			strings.Contains(strings.ToLower(d.Category), term)
	})
}

// Sort returns a new slice in the requested order. The sort is stable so ties
// do not thrash between refreshes within a single render.
func Sort(collection []entity.Deal, order SortOrder) []entity.Deal {
	sorted := slices.Clone(collection)

	switch order {
	case SortByProfit:
		slices.SortStableFunc(sorted, func(a, b entity.Deal) int {
			switch {
			case a.Profit > b.Profit:
				return -1
			case a.Profit < b.Profit:
				return 1
			default:
				return 0
			}
		})
	default:
		slices.SortStableFunc(sorted, func(a, b entity.Deal) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}

	return sorted
}

// Paginate slices one 1-indexed page out of the collection. Out-of-range
// pages degrade to an empty page, never an error.
func Paginate(collection []entity.Deal, page int) []entity.Deal {
	if page < 1 {
		return nil
	}

	start := (page - 1) * PageSize
	if start >= len(collection) {
		return nil
	}

	return collection[start:min(start+PageSize, len(collection))]
}

// TotalPages is ceil(len/PageSize).
func TotalPages(total int) int {
	return (total + PageSize - 1) / PageSize
}

// TopByProfit returns the n most profitable deals.
func TopByProfit(collection []entity.Deal, n int) []entity.Deal {
	sorted := Sort(collection, SortByProfit)
	if n > len(sorted) {
		n = len(sorted)
	}

	return sorted[:n]
}

// ViewState tracks the current selection of query, ordering, section and
// page. Changing the query, ordering or section resets the page to 1.
type ViewState struct {
	Query   string
	Sort    SortOrder
	Section string
	Page    int
}

func NewViewState() ViewState {
	return ViewState{
		Sort:    SortByRecency,
		Section: "deals",
		Page:    1,
	}
}

func (v *ViewState) SetQuery(query string) {
	if v.Query == query {
		return
	}

	v.Query = query
	v.Page = 1
}

func (v *ViewState) SetSort(order SortOrder) {
	if v.Sort == order {
		return
	}

	v.Sort = order
	v.Page = 1
}

func (v *ViewState) SetSection(section string) {
	if v.Section == section {
		return
	}

	v.Section = section
	v.Page = 1
}

func (v *ViewState) SetPage(page int) {
	if page >= 1 {
		v.Page = page
	}
}
