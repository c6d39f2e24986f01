package ledger

import "testing"

func sampleRows() []MergedRow {
	return []MergedRow{
		{OrderID: "1", InvoiceID: "INV-1", Date: "2025-03-01", VendorName: "Acme Traders", GSTIN: "29AAA", Amount: 100},
		{OrderID: "2", InvoiceID: "INV-2", Date: "2025-03-15", VendorName: "Beta Supplies", GSTIN: "27BBB", Amount: 250.50},
		{OrderID: "3", InvoiceID: "INV-3", Date: "2025-04-01", VendorName: "Acme Traders", GSTIN: "29AAA", Amount: 999},
	}
}

func TestApplyFiltersIdentity(t *testing.T) {
	rows := sampleRows()
	got := ApplyFilters(rows, Filters{})
	if len(got) != len(rows) {
		t.Fatalf("no filters set should return input unchanged, got %d of %d rows", len(got), len(rows))
	}
	for i := range rows {
		if got[i] != rows[i] {
			t.Errorf("row %d altered by identity filter: %+v", i, got[i])
		}
	}
}

func TestApplyFiltersBalanceRange(t *testing.T) {
	rows := sampleRows()

	got := ApplyFilters(rows, Filters{MinBalance: "200"})
	if len(got) != 2 {
		t.Errorf("min 200: expected 2 rows, got %d", len(got))
	}

	got = ApplyFilters(rows, Filters{MinBalance: "₹100", MaxBalance: "₹250.50"})
	if len(got) != 2 {
		t.Errorf("display-formatted bounds: expected 2 rows, got %d", len(got))
	}

	// Exact-point range keeps only the equal amount.
	got = ApplyFilters(rows, Filters{MinBalance: "250.50", MaxBalance: "250.50"})
	if len(got) != 1 || got[0].InvoiceID != "INV-2" {
		t.Errorf("point range: expected only INV-2, got %+v", got)
	}
}

func TestApplyFiltersDateRange(t *testing.T) {
	rows := sampleRows()

	got := ApplyFilters(rows, Filters{StartDate: "2025-03-01", EndDate: "2025-03-31"})
	if len(got) != 2 {
		t.Fatalf("march range: expected 2 rows, got %d", len(got))
	}
	// Inclusive on both bounds.
	got = ApplyFilters(rows, Filters{StartDate: "2025-03-15", EndDate: "2025-03-15"})
	if len(got) != 1 || got[0].InvoiceID != "INV-2" {
		t.Errorf("single-day range should be inclusive, got %+v", got)
	}
}

func TestApplyFiltersSearch(t *testing.T) {
	rows := sampleRows()

	if got := ApplyFilters(rows, Filters{Search: "acme"}); len(got) != 2 {
		t.Errorf("vendor search: expected 2 rows, got %d", len(got))
	}
	if got := ApplyFilters(rows, Filters{Search: "inv-2"}); len(got) != 1 {
		t.Errorf("invoice id search: expected 1 row, got %d", len(got))
	}
	if got := ApplyFilters(rows, Filters{Search: "27bbb"}); len(got) != 1 {
		t.Errorf("gstin search: expected 1 row, got %d", len(got))
	}
	if got := ApplyFilters(rows, Filters{Search: "zzz"}); len(got) != 0 {
		t.Errorf("no-match search: expected 0 rows, got %d", len(got))
	}
}

func TestApplyFiltersCompose(t *testing.T) {
	rows := sampleRows()
	got := ApplyFilters(rows, Filters{
		MinBalance: "50",
		MaxBalance: "500",
		StartDate:  "2025-03-01",
		EndDate:    "2025-04-30",
		Search:     "acme",
	})
	if len(got) != 1 || got[0].InvoiceID != "INV-1" {
		t.Errorf("AND composition: expected only INV-1, got %+v", got)
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"₹1,20,500.50", "120500.5", true},
		{"100", "100", true},
		{" ₹ 99 ", "99", true},
		{"", "", false},
		{"N/A", "", false},
	}
	for _, c := range cases {
		got, ok := ParseAmount(c.in)
		if ok != c.ok {
			t.Errorf("ParseAmount(%q) ok = %v, want %v", c.in, ok, c.ok)
			continue
		}
		if ok && got.String() != c.want {
			t.Errorf("ParseAmount(%q) = %s, want %s", c.in, got.String(), c.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(120500.5); got != "₹120500.50" {
		t.Errorf("FormatAmount = %q", got)
	}
}
