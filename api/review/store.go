package review

import (
	"context"
	"time"

	"InvoiceDesk/internal/ledger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FetchFlaggedEntry loads one flagged entry by its (order_id, invoice_id)
// key. Returns pgx.ErrNoRows through the error when absent.
func FetchFlaggedEntry(ctx context.Context, pool *pgxpool.Pool, orderID, invoiceID string) (ledger.FlaggedEntry, error) {
	var (
		f                       ledger.FlaggedEntry
		invoiceDate             *time.Time
		reason, status          *string
		level                   *int
		total, cgst, sgst, igst *float64
		urgency                 *int
		invoicePDF, reportPDF   *string
	)
	err := pool.QueryRow(ctx, `
		SELECT order_id, invoice_id, vendor_id, invoice_date, reason, status, level,
		       total_amount, cgst_amount, sgst_amount, igst_amount, urgency,
		       invoices_pdf, report_pdfs
		FROM flagged
		WHERE order_id = $1 AND invoice_id = $2`, orderID, invoiceID).Scan(
		&f.OrderID, &f.InvoiceID, &f.VendorID, &invoiceDate, &reason, &status, &level,
		&total, &cgst, &sgst, &igst, &urgency, &invoicePDF, &reportPDF)
	if err != nil {
		return ledger.FlaggedEntry{}, err
	}

	if invoiceDate != nil {
		f.InvoiceDate = invoiceDate.Format(ledger.DateFormat)
	}
	if reason != nil {
		f.Reason = *reason
	}
	if status != nil {
		f.Status = *status
	}
	if level != nil {
		f.Level = *level
	}
	if total != nil {
		f.TotalAmount = *total
	}
	if cgst != nil {
		f.CGSTAmount = *cgst
	}
	if sgst != nil {
		f.SGSTAmount = *sgst
	}
	if igst != nil {
		f.IGSTAmount = *igst
	}
	f.Urgency = urgency
	if invoicePDF != nil {
		f.InvoicePDF = *invoicePDF
	}
	if reportPDF != nil {
		f.ReportPDF = *reportPDF
	}
	return f, nil
}

// InsertInvoice creates the authoritative invoice row produced on approval.
func InsertInvoice(ctx context.Context, pool *pgxpool.Pool, inv ledger.Invoice) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO invoices (order_id, invoice_no, order_date, vendor_id,
		                      total_amount, cgst_amount, sgst_amount, igst_amount,
		                      urgency, payment_status, pdf_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		inv.OrderID, inv.InvoiceNo, nullableDate(inv.OrderDate), inv.VendorID,
		inv.TotalAmount, inv.CGSTAmount, inv.SGSTAmount, inv.IGSTAmount,
		inv.Urgency, inv.PaymentStatus, inv.PDFURL)
	return err
}

// UpdateFlaggedStatus moves a flagged entry to its terminal status.
func UpdateFlaggedStatus(ctx context.Context, pool *pgxpool.Pool, orderID, invoiceID, status string) error {
	tag, err := pool.Exec(ctx, `
		UPDATE flagged SET status = $3
		WHERE order_id = $1 AND invoice_id = $2`, orderID, invoiceID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// InsertFlaggedBatch stores intake rows in one batch and returns how many
// made it in. Failures are counted by the caller via the second return.
func InsertFlaggedBatch(ctx context.Context, pool *pgxpool.Pool, entries []ledger.FlaggedEntry) (inserted int, failed int) {
	if len(entries) == 0 {
		return 0, 0
	}
	batch := &pgx.Batch{}
	for _, f := range entries {
		batch.Queue(`
			INSERT INTO flagged (order_id, invoice_id, vendor_id, invoice_date, reason,
			                     status, level, total_amount, cgst_amount, sgst_amount,
			                     igst_amount, urgency, invoices_pdf, report_pdfs)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			f.OrderID, f.InvoiceID, f.VendorID, nullableDate(f.InvoiceDate), f.Reason,
			f.Status, f.Level, f.TotalAmount, f.CGSTAmount, f.SGSTAmount,
			f.IGSTAmount, f.Urgency, f.InvoicePDF, f.ReportPDF)
	}
	results := pool.SendBatch(ctx, batch)
	defer results.Close()
	for range entries {
		if _, err := results.Exec(); err != nil {
			failed++
			continue
		}
		inserted++
	}
	return inserted, failed
}

func nullableDate(s string) interface{} {
	if s == "" || s == ledger.NoDueDate {
		return nil
	}
	return s
}
