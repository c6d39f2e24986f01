package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Filters holds the compound filter form. Zero values mean "not set" and
// leave the corresponding dimension unfiltered; filters compose with AND.
type Filters struct {
	MinBalance string `json:"min_balance"`
	MaxBalance string `json:"max_balance"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Search     string `json:"search"`
}

// ApplyFilters narrows merged rows by balance range, inclusive date range
// and case-insensitive substring search over invoice id, order id, vendor
// name and GSTIN. With no filter values set the input comes back unchanged.
func ApplyFilters(rows []MergedRow, f Filters) []MergedRow {
	minBal, hasMin := ParseAmount(f.MinBalance)
	maxBal, hasMax := ParseAmount(f.MaxBalance)
	start, hasStart := parseFilterDate(f.StartDate)
	end, hasEnd := parseFilterDate(f.EndDate)
	search := strings.ToLower(strings.TrimSpace(f.Search))

	if !hasMin && !hasMax && !hasStart && !hasEnd && search == "" {
		return rows
	}

	out := make([]MergedRow, 0, len(rows))
	for _, row := range rows {
		amount := decimal.NewFromFloat(row.Amount)
		if hasMin && amount.LessThan(minBal) {
			continue
		}
		if hasMax && amount.GreaterThan(maxBal) {
			continue
		}
		if hasStart || hasEnd {
			d := parseDate(row.Date)
			if hasStart && d.Before(start) {
				continue
			}
			if hasEnd && d.After(end) {
				continue
			}
		}
		if search != "" && !rowMatches(row, search) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// rowMatches checks the allow-listed searchable fields only; amounts and
// statuses are deliberately excluded from free-text search.
func rowMatches(row MergedRow, search string) bool {
	for _, field := range []string{row.InvoiceID, row.OrderID, row.VendorName, row.GSTIN} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func parseFilterDate(s string) (time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
