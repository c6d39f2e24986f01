package review

import (
	"sort"
	"time"

	"InvoiceDesk/internal/ledger"
)

// MonthBucket counts entry statuses for one month-year ("Mar-2025").
type MonthBucket struct {
	MonthYear string `json:"month_year"`
	Approved  int    `json:"approved"`
	Rejected  int    `json:"rejected"`
	Flagged   int    `json:"flagged_for_review"`
}

// StatusTotal is the all-time count and share for one status.
type StatusTotal struct {
	Status  string `json:"status"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// MonthlyStatusSummary groups merged rows by month-year and counts each
// status, chronologically sorted. Rows without a parseable date are
// skipped, matching the chart's behavior.
func MonthlyStatusSummary(rows []ledger.MergedRow) []MonthBucket {
	type key struct {
		year  int
		month time.Month
	}
	buckets := make(map[key]*MonthBucket)
	var keys []key

	for _, row := range rows {
		t, err := time.Parse(ledger.DateFormat, row.Date)
		if err != nil {
			continue
		}
		k := key{t.Year(), t.Month()}
		b, ok := buckets[k]
		if !ok {
			b = &MonthBucket{MonthYear: t.Format("Jan-2006")}
			buckets[k] = b
			keys = append(keys, k)
		}
		switch row.Status {
		case ledger.StatusApproved:
			b.Approved++
		case ledger.StatusRejected:
			b.Rejected++
		case ledger.StatusFlagged:
			b.Flagged++
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	out := make([]MonthBucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, *buckets[k])
	}
	return out
}

// StatusBreakdown returns per-status totals with their rounded share of
// all rows.
func StatusBreakdown(rows []ledger.MergedRow) []StatusTotal {
	counts := map[string]int{
		ledger.StatusApproved: 0,
		ledger.StatusRejected: 0,
		ledger.StatusFlagged:  0,
	}
	total := 0
	for _, row := range rows {
		if _, tracked := counts[row.Status]; tracked {
			counts[row.Status]++
			total++
		}
	}

	out := make([]StatusTotal, 0, 3)
	for _, status := range []string{ledger.StatusApproved, ledger.StatusRejected, ledger.StatusFlagged} {
		pct := 0
		if total > 0 {
			pct = int(float64(counts[status])/float64(total)*100 + 0.5)
		}
		out = append(out, StatusTotal{Status: status, Count: counts[status], Percent: pct})
	}
	return out
}
