package ledger

import "testing"

func TestReconcileActivityInsertsAndUpdates(t *testing.T) {
	processed := []MergedRow{
		{OrderID: "1", InvoiceID: "INV-1", Date: "2025-03-01", VendorName: "Acme", Amount: 100, Status: StatusApproved},
		{OrderID: "2", InvoiceID: "INV-2", Date: "2025-03-02", VendorName: "Acme", Amount: 50, Status: StatusFlagged},
		{OrderID: "3", InvoiceID: "INV-3", Date: "2025-03-03", VendorName: "Beta", Amount: 75, Status: StatusApproved},
	}
	existing := []ActivityRecord{
		{OrderID: "1", InvoiceID: "INV-1", Date: "2025-03-01", VendorName: "Acme", Amount: 100, Status: StatusApproved},
		{OrderID: "2", InvoiceID: "INV-2", Date: "2025-03-02", VendorName: "Acme", Amount: 50, Status: StatusApproved},
	}

	delta := ReconcileActivity(processed, existing)
	if len(delta.Inserts) != 1 || delta.Inserts[0].InvoiceID != "INV-3" {
		t.Errorf("expected one insert for INV-3, got %+v", delta.Inserts)
	}
	if len(delta.Updates) != 1 || delta.Updates[0].InvoiceID != "INV-2" {
		t.Errorf("expected one update for INV-2, got %+v", delta.Updates)
	}
	if delta.Updates[0].Status != StatusFlagged {
		t.Errorf("update should carry the new status, got %q", delta.Updates[0].Status)
	}
}

func TestReconcileActivityIdempotent(t *testing.T) {
	processed := []MergedRow{
		{OrderID: "1", InvoiceID: "INV-1", Date: "2025-03-01", VendorName: "Acme", Amount: 100, Status: StatusApproved},
		{OrderID: "2", InvoiceID: "INV-2", Date: "2025-03-02", VendorName: "Beta", Amount: 40, Status: StatusRejected},
	}

	first := ReconcileActivity(processed, nil)
	if len(first.Inserts) != 2 || len(first.Updates) != 0 {
		t.Fatalf("first run: expected 2 inserts / 0 updates, got %d/%d", len(first.Inserts), len(first.Updates))
	}

	// Feed the first run's writes back as the cache: the second pass over
	// unchanged inputs must be a no-op.
	second := ReconcileActivity(processed, first.Inserts)
	if !second.Empty() {
		t.Errorf("second run should write nothing, got %d inserts / %d updates", len(second.Inserts), len(second.Updates))
	}
}

func TestReconcileActivityKeyCollision(t *testing.T) {
	// Same invoice id under different orders are distinct cache entries.
	processed := []MergedRow{
		{OrderID: "1", InvoiceID: "INV-1", Date: "2025-03-01", Status: StatusApproved},
		{OrderID: "2", InvoiceID: "INV-1", Date: "2025-03-01", Status: StatusApproved},
	}
	delta := ReconcileActivity(processed, nil)
	if len(delta.Inserts) != 2 {
		t.Errorf("expected 2 inserts for distinct (order, invoice) pairs, got %d", len(delta.Inserts))
	}
}

func TestPayableChanged(t *testing.T) {
	base := PayableRecord{InvoiceID: "INV-1", DueDate: "2025-04-01", PaymentStatus: StatusUnpaid, TotalAmount: 100}

	if PayableChanged(base, base) {
		t.Error("identical records should not be flagged as changed")
	}
	if !PayableChanged(base, PayableRecord{InvoiceID: "INV-1", DueDate: "2025-04-02", PaymentStatus: StatusUnpaid, TotalAmount: 100}) {
		t.Error("due date drift should be detected")
	}
	if !PayableChanged(base, PayableRecord{InvoiceID: "INV-1", DueDate: "2025-04-01", PaymentStatus: StatusPaid, TotalAmount: 100}) {
		t.Error("payment status drift should be detected")
	}
	if !PayableChanged(base, PayableRecord{InvoiceID: "INV-1", DueDate: "2025-04-01", PaymentStatus: StatusUnpaid, TotalAmount: 101}) {
		t.Error("amount drift should be detected")
	}
	// TransactionID is not one of the maintained fields.
	changedTx := base
	changedTx.TransactionID = "tx-1"
	if PayableChanged(base, changedTx) {
		t.Error("transaction id alone should not trigger an update")
	}
}
