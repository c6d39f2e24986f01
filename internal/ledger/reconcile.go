package ledger

// ActivityKey is the cache key of a dashboard_activity row.
func ActivityKey(orderID, invoiceID string) string {
	return orderID + "-" + invoiceID
}

// ActivityDelta is the outcome of a reconcile pass: rows missing from the
// cache and rows whose fields drifted from the source tables.
type ActivityDelta struct {
	Inserts []ActivityRecord
	Updates []ActivityRecord
}

// Empty reports whether the pass found nothing to write.
func (d ActivityDelta) Empty() bool {
	return len(d.Inserts) == 0 && len(d.Updates) == 0
}

// ReconcileActivity diffs the freshly merged view against the existing
// dashboard_activity rows. A processed row with no cached counterpart is
// queued for insert; a cached row is queued for update only when date,
// vendor, amount or status differ. Unchanged rows are skipped, so a second
// run over identical inputs writes nothing.
func ReconcileActivity(processed []MergedRow, existing []ActivityRecord) ActivityDelta {
	cache := make(map[string]ActivityRecord, len(existing))
	for _, rec := range existing {
		cache[ActivityKey(rec.OrderID, rec.InvoiceID)] = rec
	}

	var delta ActivityDelta
	for _, row := range processed {
		next := ActivityRecord{
			OrderID:    row.OrderID,
			InvoiceID:  row.InvoiceID,
			Date:       row.Date,
			VendorName: row.VendorName,
			Amount:     row.Amount,
			Status:     row.Status,
		}
		prev, ok := cache[ActivityKey(row.OrderID, row.InvoiceID)]
		if !ok {
			delta.Inserts = append(delta.Inserts, next)
			continue
		}
		if activityChanged(prev, next) {
			delta.Updates = append(delta.Updates, next)
		}
	}
	return delta
}

func activityChanged(prev, next ActivityRecord) bool {
	return prev.Date != next.Date ||
		prev.VendorName != next.VendorName ||
		prev.Amount != next.Amount ||
		prev.Status != next.Status
}

// PayableChanged reports whether a derived payable differs from its stored
// row on the fields the population sweep maintains.
func PayableChanged(prev, next PayableRecord) bool {
	return prev.DueDate != next.DueDate ||
		prev.PaymentStatus != next.PaymentStatus ||
		prev.TotalAmount != next.TotalAmount
}
