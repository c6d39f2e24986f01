package payables

import (
	"context"
	"time"

	"InvoiceDesk/api"
	"InvoiceDesk/api/archive"
	"InvoiceDesk/internal/ledger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BuildPayables derives a payable record per unpaid invoice: the due date
// comes from the order date plus its urgency window, missing urgency maps
// to the no-due-date sentinel. Paid invoices are skipped; their payable
// rows were settled by pay-now and need no further maintenance.
func BuildPayables(invoices []ledger.Invoice) []ledger.PayableRecord {
	out := make([]ledger.PayableRecord, 0, len(invoices))
	for _, inv := range invoices {
		if inv.PaymentStatus == ledger.StatusPaid {
			continue
		}
		status := inv.PaymentStatus
		if status == "" {
			status = ledger.StatusUnpaid
		}
		out = append(out, ledger.PayableRecord{
			InvoiceID:     inv.InvoiceNo,
			VendorID:      inv.VendorID,
			DueDate:       ledger.ComputeDueDate(inv.OrderDate, inv.Urgency),
			PaymentStatus: status,
			TotalAmount:   inv.TotalAmount,
		})
	}
	return out
}

// DiffPayables splits derived records into inserts (no existing row) and
// updates (row exists but due date, payment status or amount drifted).
// Records already in sync are dropped. The stored transaction id is left
// alone; only pay-now writes that column.
func DiffPayables(derived []ledger.PayableRecord, existing []ledger.PayableRecord) (inserts, updates []ledger.PayableRecord) {
	current := make(map[string]ledger.PayableRecord, len(existing))
	for _, p := range existing {
		current[p.InvoiceID] = p
	}
	for _, next := range derived {
		prev, ok := current[next.InvoiceID]
		if !ok {
			inserts = append(inserts, next)
			continue
		}
		if ledger.PayableChanged(prev, next) {
			updates = append(updates, next)
		}
	}
	return inserts, updates
}

// PopulatePayables reconciles accounts_payable against the invoices table.
// Safe to run repeatedly; an in-sync table produces no writes.
func PopulatePayables(ctx context.Context, pool *pgxpool.Pool) (written int) {
	derived := BuildPayables(archive.FetchInvoices(ctx, pool))
	inserts, updates := DiffPayables(derived, FetchPayables(ctx, pool))
	if len(inserts) == 0 && len(updates) == 0 {
		return 0
	}

	batch := &pgx.Batch{}
	for _, p := range inserts {
		batch.Queue(`
			INSERT INTO accounts_payable (invoice_id, vendor_id, due_date, payment_status, total_amount)
			VALUES ($1, $2, $3, $4, $5)`,
			p.InvoiceID, p.VendorID, nullableDue(p.DueDate), p.PaymentStatus, p.TotalAmount)
	}
	for _, p := range updates {
		batch.Queue(`
			UPDATE accounts_payable
			SET due_date = $2, payment_status = $3, total_amount = $4
			WHERE invoice_id = $1`,
			p.InvoiceID, nullableDue(p.DueDate), p.PaymentStatus, p.TotalAmount)
	}

	results := pool.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < len(inserts)+len(updates); i++ {
		if _, err := results.Exec(); err != nil {
			api.LogError("payables populate: write %d failed: %v", i, err)
			continue
		}
		written++
	}
	return written
}

// FetchPayables loads accounts_payable. Errors are logged and produce an
// empty slice so readers degrade to an empty table.
func FetchPayables(ctx context.Context, pool *pgxpool.Pool) []ledger.PayableRecord {
	rows, err := pool.Query(ctx, `
		SELECT invoice_id, vendor_id, due_date, payment_status, total_amount, transaction_id
		FROM accounts_payable`)
	if err != nil {
		api.LogError("payables: query accounts_payable: %v", err)
		return nil
	}
	defer rows.Close()

	var out []ledger.PayableRecord
	for rows.Next() {
		var (
			p      ledger.PayableRecord
			due    *time.Time
			status *string
			total  *float64
			vendor *string
			txnID  *string
		)
		if err := rows.Scan(&p.InvoiceID, &vendor, &due, &status, &total, &txnID); err != nil {
			api.LogError("payables: scan accounts_payable: %v", err)
			continue
		}
		if vendor != nil {
			p.VendorID = *vendor
		}
		if due != nil {
			p.DueDate = due.Format(ledger.DateFormat)
		} else {
			p.DueDate = ledger.NoDueDate
		}
		if status != nil {
			p.PaymentStatus = *status
		}
		if total != nil {
			p.TotalAmount = *total
		}
		if txnID != nil {
			p.TransactionID = *txnID
		}
		out = append(out, p)
	}
	return out
}

func nullableDue(s string) interface{} {
	if s == "" || s == ledger.NoDueDate {
		return nil
	}
	return s
}
