package payables

import (
	"testing"

	"InvoiceDesk/internal/ledger"
)

func intp(v int) *int { return &v }

func TestBuildPayables(t *testing.T) {
	invoices := []ledger.Invoice{
		{InvoiceNo: "INV-1", VendorID: "V-1", OrderDate: "2025-03-01", Urgency: intp(15), TotalAmount: 1000, PaymentStatus: ledger.StatusUnpaid},
		{InvoiceNo: "INV-2", VendorID: "V-2", OrderDate: "2025-03-01", TotalAmount: 500},
		{InvoiceNo: "INV-3", VendorID: "V-1", OrderDate: "2025-03-01", Urgency: intp(0), TotalAmount: 250, PaymentStatus: ledger.StatusPaid},
	}

	got := BuildPayables(invoices)
	if len(got) != 2 {
		t.Fatalf("records = %d, want 2 (paid INV-3 skipped)", len(got))
	}
	if got[0].DueDate != "2025-03-16" {
		t.Errorf("INV-1 due = %q, want 2025-03-16", got[0].DueDate)
	}
	if got[1].DueDate != ledger.NoDueDate {
		t.Errorf("INV-2 due = %q, want sentinel", got[1].DueDate)
	}
	if got[1].PaymentStatus != ledger.StatusUnpaid {
		t.Errorf("missing status should default to unpaid, got %q", got[1].PaymentStatus)
	}
}

func TestBuildPayablesSkipsPaidInvoices(t *testing.T) {
	derived := BuildPayables([]ledger.Invoice{
		{InvoiceNo: "INV-PAID", VendorID: "V-1", OrderDate: "2025-03-01", TotalAmount: 900, PaymentStatus: ledger.StatusPaid},
	})
	if len(derived) != 0 {
		t.Fatalf("paid invoice derived a payable: %+v", derived)
	}

	// A paid invoice with no payable row must not queue a write either.
	inserts, updates := DiffPayables(derived, nil)
	if len(inserts) != 0 || len(updates) != 0 {
		t.Errorf("paid invoice queued writes: %d inserts, %d updates", len(inserts), len(updates))
	}
}

func TestDiffPayablesInsertsAndUpdates(t *testing.T) {
	derived := []ledger.PayableRecord{
		{InvoiceID: "INV-1", DueDate: "2025-03-16", PaymentStatus: ledger.StatusUnpaid, TotalAmount: 1000},
		{InvoiceID: "INV-2", DueDate: ledger.NoDueDate, PaymentStatus: ledger.StatusUnpaid, TotalAmount: 500},
		{InvoiceID: "INV-3", DueDate: "2025-04-01", PaymentStatus: ledger.StatusUnpaid, TotalAmount: 250},
	}
	existing := []ledger.PayableRecord{
		// In sync: dropped.
		{InvoiceID: "INV-1", DueDate: "2025-03-16", PaymentStatus: ledger.StatusUnpaid, TotalAmount: 1000},
		// Amount drifted: updated.
		{InvoiceID: "INV-3", DueDate: "2025-04-01", PaymentStatus: ledger.StatusUnpaid, TotalAmount: 999},
	}

	inserts, updates := DiffPayables(derived, existing)
	if len(inserts) != 1 || inserts[0].InvoiceID != "INV-2" {
		t.Errorf("inserts = %+v, want only INV-2", inserts)
	}
	if len(updates) != 1 || updates[0].InvoiceID != "INV-3" {
		t.Fatalf("updates = %+v, want only INV-3", updates)
	}
	if updates[0].TotalAmount != 250 {
		t.Errorf("update should carry the derived amount, got %v", updates[0].TotalAmount)
	}
}

func TestDiffPayablesIdempotent(t *testing.T) {
	derived := BuildPayables([]ledger.Invoice{
		{InvoiceNo: "INV-1", VendorID: "V-1", OrderDate: "2025-03-01", Urgency: intp(7), TotalAmount: 1000, PaymentStatus: ledger.StatusUnpaid},
	})
	inserts, updates := DiffPayables(derived, derived)
	if len(inserts) != 0 || len(updates) != 0 {
		t.Errorf("in-sync diff produced writes: %d inserts, %d updates", len(inserts), len(updates))
	}
}

func TestDiffPayablesEmpty(t *testing.T) {
	inserts, updates := DiffPayables(nil, nil)
	if len(inserts) != 0 || len(updates) != 0 {
		t.Errorf("empty diff produced writes")
	}
}
