package ledger

import (
	"sort"
	"time"
)

// Placeholders rendered when a row references a vendor that is missing from
// the vendors table. The merge must not fail on a dangling vendor_id.
const (
	UnknownVendor = "Unknown Vendor"
	UnknownGSTIN  = "N/A"
)

// BuildVendorIndex builds a vendor_id lookup for the merge and list joins.
func BuildVendorIndex(vendors []Vendor) map[string]Vendor {
	index := make(map[string]Vendor, len(vendors))
	for _, v := range vendors {
		index[v.VendorID] = v
	}
	return index
}

// MergeInvoicesAndFlags combines the invoices and flagged tables into one
// display-ready list. Every invoice emits a row with status Approved.
// Flagged entries already approved are skipped so an entry never appears
// under both Approved and Flagged; Rejected passes through and any other
// status normalizes to Flagged for review. The result is sorted by date
// descending.
func MergeInvoicesAndFlags(invoices []Invoice, flagged []FlaggedEntry, vendors []Vendor) []MergedRow {
	index := BuildVendorIndex(vendors)
	rows := make([]MergedRow, 0, len(invoices)+len(flagged))

	for _, inv := range invoices {
		name, gstin := vendorDisplay(index, inv.VendorID)
		rows = append(rows, MergedRow{
			OrderID:    inv.OrderID,
			InvoiceID:  inv.InvoiceNo,
			Date:       inv.OrderDate,
			VendorID:   inv.VendorID,
			VendorName: name,
			GSTIN:      gstin,
			Amount:     inv.TotalAmount,
			Status:     StatusApproved,
			PDFURL:     inv.PDFURL,
		})
	}

	for _, f := range flagged {
		if f.Status == StatusApproved {
			continue
		}
		status := StatusFlagged
		if f.Status == StatusRejected {
			status = StatusRejected
		}
		name, gstin := vendorDisplay(index, f.VendorID)
		rows = append(rows, MergedRow{
			OrderID:    f.OrderID,
			InvoiceID:  f.InvoiceID,
			Date:       f.InvoiceDate,
			VendorID:   f.VendorID,
			VendorName: name,
			GSTIN:      gstin,
			Amount:     f.TotalAmount,
			Status:     status,
			PDFURL:     f.InvoicePDF,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return parseDate(rows[i].Date).After(parseDate(rows[j].Date))
	})
	return rows
}

func vendorDisplay(index map[string]Vendor, vendorID string) (name, gstin string) {
	if v, ok := index[vendorID]; ok {
		return v.VendorName, v.GSTIN
	}
	return UnknownVendor, UnknownGSTIN
}

// ComputeDueDate derives the payment deadline: order date plus the vendor's
// urgency days, or the NoDueDate sentinel when urgency is absent.
func ComputeDueDate(orderDate string, urgency *int) string {
	if urgency == nil {
		return NoDueDate
	}
	t, err := time.Parse(DateFormat, orderDate)
	if err != nil {
		return NoDueDate
	}
	return t.AddDate(0, 0, *urgency).Format(DateFormat)
}

// SortPayablesByDueDate orders payables soonest first, with NoDueDate rows
// after every dated row.
func SortPayablesByDueDate(payables []PayableRecord) {
	sort.SliceStable(payables, func(i, j int) bool {
		a, b := payables[i].DueDate, payables[j].DueDate
		if a == NoDueDate {
			return false
		}
		if b == NoDueDate {
			return true
		}
		return parseDate(a).Before(parseDate(b))
	})
}

// parseDate is tolerant of the formats the backend has historically stored;
// unparseable values sort as the zero time.
func parseDate(s string) time.Time {
	layouts := []string{DateFormat, "2006-01-02T15:04:05", time.RFC3339, "02-01-2006"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
