package archive

import (
	"context"
	"time"

	"InvoiceDesk/api"
	"InvoiceDesk/internal/ledger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Fetchers deliberately return empty slices on failure: a broken backend
// renders an empty table, it never errors out of the merge pipeline.

func FetchInvoices(ctx context.Context, pool *pgxpool.Pool) []ledger.Invoice {
	rows, err := pool.Query(ctx, `
		SELECT order_id, invoice_no, order_date, vendor_id,
		       total_amount, cgst_amount, sgst_amount, igst_amount,
		       urgency, payment_status, pdf_url
		FROM invoices`)
	if err != nil {
		api.LogError("fetch invoices failed: %v", err)
		return nil
	}
	defer rows.Close()

	var out []ledger.Invoice
	for rows.Next() {
		var (
			inv                     ledger.Invoice
			orderDate               *time.Time
			total, cgst, sgst, igst *float64
			urgency                 *int
			payStatus, pdfURL       *string
		)
		if err := rows.Scan(&inv.OrderID, &inv.InvoiceNo, &orderDate, &inv.VendorID,
			&total, &cgst, &sgst, &igst, &urgency, &payStatus, &pdfURL); err != nil {
			api.LogError("scan invoice row failed: %v", err)
			continue
		}
		if orderDate != nil {
			inv.OrderDate = orderDate.Format(ledger.DateFormat)
		}
		inv.TotalAmount = floatOrZero(total)
		inv.CGSTAmount = floatOrZero(cgst)
		inv.SGSTAmount = floatOrZero(sgst)
		inv.IGSTAmount = floatOrZero(igst)
		inv.Urgency = urgency
		inv.PaymentStatus = stringOrDefault(payStatus, ledger.StatusUnpaid)
		inv.PDFURL = stringOrDefault(pdfURL, "")
		out = append(out, inv)
	}
	return out
}

func FetchFlagged(ctx context.Context, pool *pgxpool.Pool) []ledger.FlaggedEntry {
	rows, err := pool.Query(ctx, `
		SELECT order_id, invoice_id, vendor_id, invoice_date, reason, status, level,
		       total_amount, cgst_amount, sgst_amount, igst_amount, urgency,
		       invoices_pdf, report_pdfs
		FROM flagged`)
	if err != nil {
		api.LogError("fetch flagged failed: %v", err)
		return nil
	}
	defer rows.Close()

	var out []ledger.FlaggedEntry
	for rows.Next() {
		var (
			f                       ledger.FlaggedEntry
			invoiceDate             *time.Time
			reason, status          *string
			level                   *int
			total, cgst, sgst, igst *float64
			urgency                 *int
			invoicePDF, reportPDF   *string
		)
		if err := rows.Scan(&f.OrderID, &f.InvoiceID, &f.VendorID, &invoiceDate,
			&reason, &status, &level, &total, &cgst, &sgst, &igst, &urgency,
			&invoicePDF, &reportPDF); err != nil {
			api.LogError("scan flagged row failed: %v", err)
			continue
		}
		if invoiceDate != nil {
			f.InvoiceDate = invoiceDate.Format(ledger.DateFormat)
		}
		f.Reason = stringOrDefault(reason, "")
		f.Status = stringOrDefault(status, ledger.StatusFlagged)
		if level != nil {
			f.Level = *level
		}
		f.TotalAmount = floatOrZero(total)
		f.CGSTAmount = floatOrZero(cgst)
		f.SGSTAmount = floatOrZero(sgst)
		f.IGSTAmount = floatOrZero(igst)
		f.Urgency = urgency
		f.InvoicePDF = stringOrDefault(invoicePDF, "")
		f.ReportPDF = stringOrDefault(reportPDF, "")
		out = append(out, f)
	}
	return out
}

func FetchVendors(ctx context.Context, pool *pgxpool.Pool) []ledger.Vendor {
	rows, err := pool.Query(ctx, `SELECT vendor_id, vendor_name, gstin FROM vendors_db`)
	if err != nil {
		api.LogError("fetch vendors failed: %v", err)
		return nil
	}
	defer rows.Close()

	var out []ledger.Vendor
	for rows.Next() {
		var v ledger.Vendor
		var name, gstin *string
		if err := rows.Scan(&v.VendorID, &name, &gstin); err != nil {
			api.LogError("scan vendor row failed: %v", err)
			continue
		}
		v.VendorName = stringOrDefault(name, ledger.UnknownVendor)
		v.GSTIN = stringOrDefault(gstin, ledger.UnknownGSTIN)
		out = append(out, v)
	}
	return out
}

func FetchActivity(ctx context.Context, pool *pgxpool.Pool) []ledger.ActivityRecord {
	rows, err := pool.Query(ctx, `
		SELECT order_id, invoice_id, date, vendor_name, amount, status
		FROM dashboard_activity`)
	if err != nil {
		api.LogError("fetch dashboard activity failed: %v", err)
		return nil
	}
	defer rows.Close()

	var out []ledger.ActivityRecord
	for rows.Next() {
		var (
			rec        ledger.ActivityRecord
			date       *time.Time
			vendorName *string
			amount     *float64
			status     *string
		)
		if err := rows.Scan(&rec.OrderID, &rec.InvoiceID, &date, &vendorName, &amount, &status); err != nil {
			api.LogError("scan activity row failed: %v", err)
			continue
		}
		if date != nil {
			rec.Date = date.Format(ledger.DateFormat)
		}
		rec.VendorName = stringOrDefault(vendorName, ledger.UnknownVendor)
		rec.Amount = floatOrZero(amount)
		rec.Status = stringOrDefault(status, "")
		out = append(out, rec)
	}
	return out
}

// ApplyActivityDelta writes a reconcile pass back to dashboard_activity in
// one batch. Individual failures are logged and counted, not propagated.
func ApplyActivityDelta(ctx context.Context, pool *pgxpool.Pool, delta ledger.ActivityDelta) (written int) {
	if delta.Empty() {
		return 0
	}

	batch := &pgx.Batch{}
	for _, rec := range delta.Inserts {
		batch.Queue(`
			INSERT INTO dashboard_activity (order_id, invoice_id, date, vendor_name, amount, status)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			rec.OrderID, rec.InvoiceID, nullableDate(rec.Date), rec.VendorName, rec.Amount, rec.Status)
	}
	for _, rec := range delta.Updates {
		batch.Queue(`
			UPDATE dashboard_activity
			SET date = $3, vendor_name = $4, amount = $5, status = $6
			WHERE order_id = $1 AND invoice_id = $2`,
			rec.OrderID, rec.InvoiceID, nullableDate(rec.Date), rec.VendorName, rec.Amount, rec.Status)
	}

	results := pool.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			api.LogError("dashboard_activity write %d failed: %v", i, err)
			continue
		}
		written++
	}
	return written
}

func floatOrZero(f *float64) float64 {
	if f != nil {
		return *f
	}
	return 0
}

func stringOrDefault(s *string, def string) string {
	if s != nil && *s != "" {
		return *s
	}
	return def
}

func nullableDate(s string) interface{} {
	if s == "" || s == ledger.NoDueDate {
		return nil
	}
	return s
}
