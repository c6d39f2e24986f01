package orders

import (
	"math"
	"time"

	"InvoiceDesk/internal/ledger"
)

// Purchase order settlement states.
const (
	StatusSettled   = "Settled"
	StatusUnsettled = "Unsettled"
)

// Summary carries the order-book KPIs.
type Summary struct {
	TotalOrders      int     `json:"total_orders"`
	SettledOrders    int     `json:"settled_orders"`
	UnsettledOrders  int     `json:"unsettled_orders"`
	SettledPercent   float64 `json:"settled_percent"`
	UnsettledPercent float64 `json:"unsettled_percent"`
	TotalBalanceDue  float64 `json:"total_balance_due"`
}

// Summarize computes the KPIs over a set of orders. Balance due is the sum
// of unsettled order amounts; percentages carry two decimals.
func Summarize(orders []ledger.PurchaseOrder) Summary {
	var s Summary
	s.TotalOrders = len(orders)
	for _, po := range orders {
		if po.Status == StatusSettled {
			s.SettledOrders++
		} else {
			s.UnsettledOrders++
			s.TotalBalanceDue += po.TotalAmount
		}
	}
	if s.TotalOrders > 0 {
		s.SettledPercent = round2(float64(s.SettledOrders) / float64(s.TotalOrders) * 100)
		s.UnsettledPercent = round2(float64(s.UnsettledOrders) / float64(s.TotalOrders) * 100)
	}
	s.TotalBalanceDue = round2(s.TotalBalanceDue)
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FilterByDateRange keeps orders whose order date falls inside [start, end]
// inclusive. Empty bounds leave that side open; unparseable order dates are
// kept only when no bounds are set.
func FilterByDateRange(orders []ledger.PurchaseOrder, start, end string) []ledger.PurchaseOrder {
	if start == "" && end == "" {
		return orders
	}
	var from, to time.Time
	var haveFrom, haveTo bool
	if t, err := time.Parse(ledger.DateFormat, start); err == nil {
		from, haveFrom = t, true
	}
	if t, err := time.Parse(ledger.DateFormat, end); err == nil {
		to, haveTo = t, true
	}

	out := make([]ledger.PurchaseOrder, 0, len(orders))
	for _, po := range orders {
		t, err := time.Parse(ledger.DateFormat, po.OrderDate)
		if err != nil {
			continue
		}
		if haveFrom && t.Before(from) {
			continue
		}
		if haveTo && t.After(to) {
			continue
		}
		out = append(out, po)
	}
	return out
}

// RangeDays returns the span of [start, end] in whole days, or 0 when
// either bound is missing or malformed.
func RangeDays(start, end string) int {
	from, err1 := time.Parse(ledger.DateFormat, start)
	to, err2 := time.Parse(ledger.DateFormat, end)
	if err1 != nil || err2 != nil || to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours() / 24)
}
