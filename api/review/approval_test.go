package review

import (
	"errors"
	"testing"

	"InvoiceDesk/internal/ledger"
)

func flaggedEntry(level int) ledger.FlaggedEntry {
	return ledger.FlaggedEntry{
		OrderID:     "PO-100",
		InvoiceID:   "INV-100",
		VendorID:    "V-1",
		InvoiceDate: "2025-03-10",
		Status:      ledger.StatusFlagged,
		Level:       level,
		TotalAmount: 5000,
		CGSTAmount:  450,
		SGSTAmount:  450,
		InvoicePDF:  "https://docs/inv100.pdf",
	}
}

func TestTransitionApprove(t *testing.T) {
	status, err := Transition(ActionApprove, 2, flaggedEntry(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != ledger.StatusApproved {
		t.Errorf("status = %q, want %q", status, ledger.StatusApproved)
	}
}

func TestTransitionReject(t *testing.T) {
	status, err := Transition(ActionReject, 3, flaggedEntry(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != ledger.StatusRejected {
		t.Errorf("status = %q, want %q", status, ledger.StatusRejected)
	}
}

func TestTransitionLevelGuard(t *testing.T) {
	if _, err := Transition(ActionApprove, 1, flaggedEntry(2)); !errors.Is(err, ErrInsufficientLevel) {
		t.Errorf("err = %v, want ErrInsufficientLevel", err)
	}
	// A higher level than required is allowed.
	if _, err := Transition(ActionApprove, 5, flaggedEntry(2)); err != nil {
		t.Errorf("higher level rejected: %v", err)
	}
}

func TestTransitionStateGuard(t *testing.T) {
	for _, status := range []string{ledger.StatusApproved, ledger.StatusRejected} {
		entry := flaggedEntry(1)
		entry.Status = status
		if _, err := Transition(ActionApprove, 9, entry); !errors.Is(err, ErrNotReviewable) {
			t.Errorf("status %q: err = %v, want ErrNotReviewable", status, err)
		}
	}
}

func TestTransitionUnknownAction(t *testing.T) {
	if _, err := Transition("escalate", 9, flaggedEntry(1)); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("err = %v, want ErrUnknownAction", err)
	}
}

func TestInvoiceFromFlagged(t *testing.T) {
	entry := flaggedEntry(2)
	u := 15
	entry.Urgency = &u

	inv := InvoiceFromFlagged(entry)
	if inv.InvoiceNo != entry.InvoiceID {
		t.Errorf("InvoiceNo = %q, want %q", inv.InvoiceNo, entry.InvoiceID)
	}
	if inv.OrderDate != entry.InvoiceDate {
		t.Errorf("OrderDate = %q, want %q", inv.OrderDate, entry.InvoiceDate)
	}
	if inv.PaymentStatus != ledger.StatusUnpaid {
		t.Errorf("PaymentStatus = %q, want %q", inv.PaymentStatus, ledger.StatusUnpaid)
	}
	if inv.PDFURL != entry.InvoicePDF {
		t.Errorf("PDFURL = %q, want %q", inv.PDFURL, entry.InvoicePDF)
	}
	if inv.Urgency == nil || *inv.Urgency != 15 {
		t.Errorf("Urgency not carried over")
	}
	if inv.TotalAmount != entry.TotalAmount || inv.CGSTAmount != entry.CGSTAmount {
		t.Errorf("amounts not carried over")
	}
}

func TestEntryFromRecord(t *testing.T) {
	rec := []string{"PO-7", "INV-7", "V-2", "2025-04-01", "amount mismatch", "2", "₹1,200.50", "100", "100", "0", "10"}
	f, err := entryFromRecord(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.OrderID != "PO-7" || f.InvoiceID != "INV-7" || f.Level != 2 {
		t.Errorf("core fields wrong: %+v", f)
	}
	if f.Status != ledger.StatusFlagged {
		t.Errorf("Status = %q, want %q", f.Status, ledger.StatusFlagged)
	}
	if f.TotalAmount != 1200.50 {
		t.Errorf("TotalAmount = %v, want 1200.50", f.TotalAmount)
	}
	if f.Urgency == nil || *f.Urgency != 10 {
		t.Errorf("Urgency not parsed")
	}
}

func TestEntryFromRecordShortRow(t *testing.T) {
	f, err := entryFromRecord([]string{"PO-8", "INV-8"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Level != 1 {
		t.Errorf("Level = %d, want default 1", f.Level)
	}
	if f.Urgency != nil {
		t.Errorf("Urgency should be nil for short row")
	}
}

func TestEntryFromRecordInvalid(t *testing.T) {
	if _, err := entryFromRecord([]string{"", "INV-9"}); err == nil {
		t.Error("missing order_id accepted")
	}
	if _, err := entryFromRecord([]string{"PO-9", "INV-9", "", "", "", "abc"}); err == nil {
		t.Error("bad level accepted")
	}
	if _, err := entryFromRecord([]string{"PO-9", "INV-9", "", "", "", "", "not-money"}); err == nil {
		t.Error("bad amount accepted")
	}
}
