// Package share builds prefilled WhatsApp deep links. The service only
// constructs the URL; no response is ever consumed.
package share

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"eko_market/internal/domain/entity"
)

const waBaseURL = "https://wa.me/?text="

const signature = "Shared via Eko Arbitrage Market Agent"

// DealLink builds a share URL for one deal alert.
func DealLink(d entity.Deal) string {
	message := fmt.Sprintf(
		"Eko Arbitrage Deal Alert\n"+
			"Item: %s\n"+
			"Buy: %s at %s\n"+
			"Sell: %s\n"+
			"Estimated Profit: %s\n"+
			"%s",
		d.ItemName,
		FormatNaira(d.BuyPrice),
		d.BuyMarket,
		FormatNaira(d.SellPrice),
		FormatNaira(d.Profit),
		signature,
	)

	return waBaseURL + url.QueryEscape(message)
}

// InsightLink builds a share URL for a chat reply.
func InsightLink(text string) string {
	message := fmt.Sprintf("AI Market Insight\n%s\n\n%s", text, signature)

	return waBaseURL + url.QueryEscape(message)
}

// FormatNaira renders a naira amount with thousands separators and no
// decimals, e.g. ₦11,200.
func FormatNaira(v float64) string {
	negative := v < 0
	if negative {
		v = -v
	}

	s := strconv.FormatFloat(math.Round(v), 'f', 0, 64)

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteRune('₦')

	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
		if len(s) > lead {
			b.WriteByte(',')
		}
	}

	for i := lead; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}

	return b.String()
}
