package jobs

import (
	"context"
	"fmt"
	"time"

	"InvoiceDesk/api/archive"
	"InvoiceDesk/api/payables"
	"InvoiceDesk/internal/ledger"
	"InvoiceDesk/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

const sweepTimeout = 5 * time.Minute

// RunActivitySweep reconciles dashboard_activity against the live merge.
// The same pass runs on dashboard loads; the cron covers idle periods.
func RunActivitySweep(db *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	merged := ledger.MergeInvoicesAndFlags(
		archive.FetchInvoices(ctx, db),
		archive.FetchFlagged(ctx, db),
		archive.FetchVendors(ctx, db),
	)
	delta := ledger.ReconcileActivity(merged, archive.FetchActivity(ctx, db))
	if delta.Empty() {
		return nil
	}
	written := archive.ApplyActivityDelta(ctx, db, delta)
	logger.GlobalLogger.LogAudit(fmt.Sprintf(
		"Activity sweep: %d inserts, %d updates, %d written",
		len(delta.Inserts), len(delta.Updates), written))
	return nil
}

// RunPayablesSweep reconciles accounts_payable against invoices.
func RunPayablesSweep(db *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if written := payables.PopulatePayables(ctx, db); written > 0 {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("Payables sweep: %d records written", written))
	}
	return nil
}
