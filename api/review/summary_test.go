package review

import (
	"testing"

	"InvoiceDesk/internal/ledger"
)

func row(date, status string) ledger.MergedRow {
	return ledger.MergedRow{OrderID: "PO", InvoiceID: "INV", Date: date, Status: status}
}

func TestMonthlyStatusSummary(t *testing.T) {
	rows := []ledger.MergedRow{
		row("2025-03-05", ledger.StatusApproved),
		row("2025-03-20", ledger.StatusFlagged),
		row("2025-01-15", ledger.StatusRejected),
		row("2024-12-31", ledger.StatusApproved),
		row("bad-date", ledger.StatusApproved),
	}

	got := MonthlyStatusSummary(rows)
	if len(got) != 3 {
		t.Fatalf("buckets = %d, want 3", len(got))
	}
	wantOrder := []string{"Dec-2024", "Jan-2025", "Mar-2025"}
	for i, want := range wantOrder {
		if got[i].MonthYear != want {
			t.Errorf("bucket %d = %q, want %q", i, got[i].MonthYear, want)
		}
	}
	mar := got[2]
	if mar.Approved != 1 || mar.Flagged != 1 || mar.Rejected != 0 {
		t.Errorf("Mar-2025 counts = %+v", mar)
	}
}

func TestMonthlyStatusSummaryEmpty(t *testing.T) {
	if got := MonthlyStatusSummary(nil); len(got) != 0 {
		t.Errorf("expected no buckets, got %d", len(got))
	}
}

func TestStatusBreakdown(t *testing.T) {
	rows := []ledger.MergedRow{
		row("2025-03-05", ledger.StatusApproved),
		row("2025-03-06", ledger.StatusApproved),
		row("2025-03-07", ledger.StatusRejected),
		row("2025-03-08", ledger.StatusFlagged),
	}

	got := StatusBreakdown(rows)
	if len(got) != 3 {
		t.Fatalf("totals = %d, want 3", len(got))
	}
	byStatus := map[string]StatusTotal{}
	for _, s := range got {
		byStatus[s.Status] = s
	}
	if s := byStatus[ledger.StatusApproved]; s.Count != 2 || s.Percent != 50 {
		t.Errorf("approved = %+v", s)
	}
	if s := byStatus[ledger.StatusRejected]; s.Count != 1 || s.Percent != 25 {
		t.Errorf("rejected = %+v", s)
	}
}

func TestStatusBreakdownEmpty(t *testing.T) {
	got := StatusBreakdown(nil)
	if len(got) != 3 {
		t.Fatalf("totals = %d, want 3", len(got))
	}
	for _, s := range got {
		if s.Count != 0 || s.Percent != 0 {
			t.Errorf("%s = %+v, want zeros", s.Status, s)
		}
	}
}
