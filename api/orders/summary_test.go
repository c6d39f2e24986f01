package orders

import (
	"testing"

	"InvoiceDesk/internal/ledger"
)

func order(id, date, status string, amount float64) ledger.PurchaseOrder {
	return ledger.PurchaseOrder{OrderID: id, VendorID: "V-1", OrderDate: date, Status: status, TotalAmount: amount}
}

func TestSummarize(t *testing.T) {
	orders := []ledger.PurchaseOrder{
		order("PO-1", "2025-03-01", StatusSettled, 1000),
		order("PO-2", "2025-03-02", StatusUnsettled, 2500.50),
		order("PO-3", "2025-03-03", StatusUnsettled, 499.50),
	}

	s := Summarize(orders)
	if s.TotalOrders != 3 || s.SettledOrders != 1 || s.UnsettledOrders != 2 {
		t.Errorf("counts = %+v", s)
	}
	if s.SettledPercent != 33.33 {
		t.Errorf("SettledPercent = %v, want 33.33", s.SettledPercent)
	}
	if s.UnsettledPercent != 66.67 {
		t.Errorf("UnsettledPercent = %v, want 66.67", s.UnsettledPercent)
	}
	if s.TotalBalanceDue != 3000 {
		t.Errorf("TotalBalanceDue = %v, want 3000", s.TotalBalanceDue)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalOrders != 0 || s.SettledPercent != 0 || s.TotalBalanceDue != 0 {
		t.Errorf("empty summary = %+v", s)
	}
}

func TestFilterByDateRange(t *testing.T) {
	orders := []ledger.PurchaseOrder{
		order("PO-1", "2025-03-01", StatusSettled, 100),
		order("PO-2", "2025-03-15", StatusUnsettled, 200),
		order("PO-3", "2025-04-01", StatusUnsettled, 300),
		order("PO-4", "", StatusUnsettled, 400),
	}

	got := FilterByDateRange(orders, "2025-03-01", "2025-03-31")
	if len(got) != 2 || got[0].OrderID != "PO-1" || got[1].OrderID != "PO-2" {
		t.Errorf("filtered = %+v", got)
	}

	// Open bounds pass everything through untouched.
	if got := FilterByDateRange(orders, "", ""); len(got) != 4 {
		t.Errorf("open range dropped rows: %d", len(got))
	}

	// Bounds are inclusive on both ends.
	if got := FilterByDateRange(orders, "2025-03-15", "2025-03-15"); len(got) != 1 || got[0].OrderID != "PO-2" {
		t.Errorf("point range = %+v", got)
	}
}

func TestRangeDays(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2025-03-01", "2025-03-21", 20},
		{"2025-03-01", "2025-03-22", 21},
		{"2025-03-01", "2025-03-01", 0},
		{"2025-03-22", "2025-03-01", 0},
		{"", "2025-03-01", 0},
		{"bad", "2025-03-01", 0},
	}
	for _, c := range cases {
		if got := RangeDays(c.start, c.end); got != c.want {
			t.Errorf("RangeDays(%q, %q) = %d, want %d", c.start, c.end, got, c.want)
		}
	}
}

func TestBuildExportLines(t *testing.T) {
	orders := []ledger.PurchaseOrder{
		order("PO-1", "2025-03-01", StatusSettled, 1000),
		order("PO-2", "2025-03-02", StatusUnsettled, 500),
	}
	items := map[string][]ledger.PurchaseOrderItem{
		"PO-1": {
			{OrderID: "PO-1", ProductID: "P-1", Description: "Widget", UnitPrice: 250, Quantity: 2, LineTotal: 500},
			{OrderID: "PO-1", ProductID: "P-2", Description: "Gadget", UnitPrice: 500, Quantity: 1, LineTotal: 500},
		},
	}
	vendors := map[string]ledger.Vendor{
		"V-1": {VendorID: "V-1", VendorName: "Acme", GSTIN: "G-1"},
	}

	lines := buildExportLines(orders, items, vendors)
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3 (two items plus one itemless order)", len(lines))
	}

	rec := lines[0].record()
	if rec[0] != "PO-1" || rec[1] != "Acme" || rec[6] != "P-1" || rec[9] != "2" {
		t.Errorf("first record = %v", rec)
	}

	// Itemless order still exports with empty item columns.
	rec = lines[2].record()
	if rec[0] != "PO-2" || rec[6] != "" || rec[10] != "" {
		t.Errorf("itemless record = %v", rec)
	}
}

func TestBuildExportLinesUnknownVendor(t *testing.T) {
	lines := buildExportLines([]ledger.PurchaseOrder{order("PO-9", "2025-01-01", StatusUnsettled, 10)}, nil, nil)
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	rec := lines[0].record()
	if rec[1] != ledger.UnknownVendor || rec[2] != ledger.UnknownGSTIN {
		t.Errorf("vendor placeholders missing: %v", rec)
	}
}
