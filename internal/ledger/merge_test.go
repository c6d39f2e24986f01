package ledger

import (
	"testing"
)

func intPtr(n int) *int { return &n }

func TestMergeInvoicesAndFlags(t *testing.T) {
	invoices := []Invoice{
		{OrderID: "1", InvoiceNo: "INV-1", OrderDate: "2025-03-10", VendorID: "V1", TotalAmount: 100},
	}
	flagged := []FlaggedEntry{
		{OrderID: "2", InvoiceID: "INV-2", VendorID: "V1", InvoiceDate: "2025-03-12", Status: StatusFlagged, TotalAmount: 50},
	}
	vendors := []Vendor{{VendorID: "V1", VendorName: "Acme", GSTIN: "G1"}}

	rows := MergeInvoicesAndFlags(invoices, flagged, vendors)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	// Sorted date descending: the flagged entry is newer.
	if rows[0].InvoiceID != "INV-2" || rows[0].Status != StatusFlagged {
		t.Errorf("expected INV-2 flagged first, got %+v", rows[0])
	}
	if rows[1].InvoiceID != "INV-1" || rows[1].Status != StatusApproved {
		t.Errorf("expected INV-1 approved second, got %+v", rows[1])
	}
	for _, row := range rows {
		if row.VendorName != "Acme" || row.GSTIN != "G1" {
			t.Errorf("vendor lookup failed for %s: %q/%q", row.InvoiceID, row.VendorName, row.GSTIN)
		}
	}
}

func TestMergeSkipsApprovedFlags(t *testing.T) {
	invoices := []Invoice{
		{OrderID: "1", InvoiceNo: "INV-1", OrderDate: "2025-01-01", VendorID: "V1", TotalAmount: 10},
		{OrderID: "2", InvoiceNo: "INV-2", OrderDate: "2025-01-02", VendorID: "V1", TotalAmount: 20},
	}
	flagged := []FlaggedEntry{
		{OrderID: "2", InvoiceID: "INV-2", InvoiceDate: "2025-01-02", Status: StatusApproved},
		{OrderID: "3", InvoiceID: "INV-3", InvoiceDate: "2025-01-03", Status: StatusRejected},
		{OrderID: "4", InvoiceID: "INV-4", InvoiceDate: "2025-01-04", Status: "Flagged"},
	}

	rows := MergeInvoicesAndFlags(invoices, flagged, nil)

	// |I| + |F'| where F' excludes already-approved flags.
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	seen := map[string]string{}
	for _, row := range rows {
		if prev, dup := seen[row.InvoiceID]; dup && prev != row.Status {
			t.Errorf("invoice %s appears with conflicting statuses %q and %q", row.InvoiceID, prev, row.Status)
		}
		seen[row.InvoiceID] = row.Status
	}
	if seen["INV-3"] != StatusRejected {
		t.Errorf("rejected status should pass through, got %q", seen["INV-3"])
	}
	if seen["INV-4"] != StatusFlagged {
		t.Errorf("unknown status should normalize to %q, got %q", StatusFlagged, seen["INV-4"])
	}
}

func TestMergeUnknownVendor(t *testing.T) {
	flagged := []FlaggedEntry{
		{OrderID: "9", InvoiceID: "INV-9", VendorID: "missing", InvoiceDate: "2025-02-01", Status: StatusFlagged},
	}
	rows := MergeInvoicesAndFlags(nil, flagged, []Vendor{{VendorID: "V1", VendorName: "Acme"}})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].VendorName != UnknownVendor || rows[0].GSTIN != UnknownGSTIN {
		t.Errorf("dangling vendor should render placeholders, got %q/%q", rows[0].VendorName, rows[0].GSTIN)
	}
}

func TestMergeEmptyInputs(t *testing.T) {
	if rows := MergeInvoicesAndFlags(nil, nil, nil); len(rows) != 0 {
		t.Errorf("empty inputs should merge to empty output, got %d rows", len(rows))
	}
}

func TestComputeDueDate(t *testing.T) {
	if got := ComputeDueDate("2025-03-01", nil); got != NoDueDate {
		t.Errorf("nil urgency: expected %q, got %q", NoDueDate, got)
	}
	if got := ComputeDueDate("2025-03-01", intPtr(0)); got != "2025-03-01" {
		t.Errorf("zero urgency: expected order date back, got %q", got)
	}
	if got := ComputeDueDate("2025-03-01", intPtr(15)); got != "2025-03-16" {
		t.Errorf("15-day urgency: expected 2025-03-16, got %q", got)
	}
	if got := ComputeDueDate("2025-12-25", intPtr(10)); got != "2026-01-04" {
		t.Errorf("year rollover: expected 2026-01-04, got %q", got)
	}
	if got := ComputeDueDate("not-a-date", intPtr(5)); got != NoDueDate {
		t.Errorf("bad order date: expected sentinel, got %q", got)
	}
}

func TestSortPayablesByDueDate(t *testing.T) {
	payables := []PayableRecord{
		{InvoiceID: "A", DueDate: NoDueDate},
		{InvoiceID: "B", DueDate: "2025-04-10"},
		{InvoiceID: "C", DueDate: "2025-04-01"},
		{InvoiceID: "D", DueDate: NoDueDate},
	}
	SortPayablesByDueDate(payables)

	order := []string{"C", "B", "A", "D"}
	for i, want := range order {
		if payables[i].InvoiceID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, payables[i].InvoiceID)
		}
	}
}
