package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// currency glyphs and separators tolerated in amount strings coming from
// display layers or uploaded sheets.
var amountReplacer = strings.NewReplacer("₹", "", "$", "", ",", "", " ", "")

// ParseAmount parses a display amount string ("₹1,20,500.50") into a
// decimal. The bool is false when nothing numeric remains after stripping.
func ParseAmount(s string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSpace(amountReplacer.Replace(s))
	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// FormatAmount renders a numeric amount for display with the rupee prefix.
// Storage and transport stay numeric; formatting happens only at the edge.
func FormatAmount(v float64) string {
	return "₹" + decimal.NewFromFloat(v).StringFixed(2)
}
