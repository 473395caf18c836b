package deals

import (
	"fmt"
	"strconv"
	"strings"

	"eko_market/internal/domain/entity"
)

// Header the chat collaborator is instructed to parse. Column order is part
// of the contract with the prompt policy.
const CSVHeader = "item_name,mile12_price,online_price,market_name,specialized_category,profit"

// ExportCSV serializes the full collection into the delimited tabular form
// hosted inline in the generation prompt. Text fields are quoted, numeric
// fields are not.
func ExportCSV(collection []entity.Deal) string {
	var b strings.Builder

	b.WriteString(CSVHeader)

	for _, d := range collection {
		b.WriteByte('\n')
		b.WriteString(quote(d.ItemName))
		b.WriteByte(',')
		b.WriteString(formatNumber(d.BuyPrice))
		b.WriteByte(',')
		b.WriteString(formatNumber(d.SellPrice))
		b.WriteByte(',')
		b.WriteString(quote(d.BuyMarket))
		b.WriteByte(',')
		b.WriteString(quote(d.Category))
		b.WriteByte(',')
		b.WriteString(formatNumber(d.Profit))
	}

	return b.String()
}

// TopDealLines renders the top-n ranked subset as the secondary, smaller
// context handed to the generation collaborator.
func TopDealLines(collection []entity.Deal, n int) string {
	top := TopByProfit(collection, n)

	lines := make([]string, len(top))
	for i, d := range top {
		roi := ""
		if d.ProfitPercentage != nil {
			roi = fmt.Sprintf(" (%.1f%%)", *d.ProfitPercentage)
		}

		lines[i] = fmt.Sprintf(
			"%d. Item: %s | Buy at: %s (N%s) | Sell at: %s (N%s) | Profit: N%s%s",
			i+1,
			d.ItemName,
			d.BuyMarket,
			formatNumber(d.BuyPrice),
			d.SellMarket,
			formatNumber(d.SellPrice),
			formatNumber(d.Profit),
			roi,
		)
	}

	return strings.Join(lines, "\n")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
