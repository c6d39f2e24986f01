package archive

import (
	"encoding/json"
	"net/http"

	"InvoiceDesk/api"
	"InvoiceDesk/api/constants"
	"InvoiceDesk/internal/ledger"

	"github.com/jackc/pgx/v5/pgxpool"
)

type listRequest struct {
	UserID  string         `json:"user_id"`
	Filters ledger.Filters `json:"filters"`
}

// archiveRow is the invoice archive view: one row per invoice with vendor
// details joined in and the tax split preserved.
type archiveRow struct {
	OrderID     string  `json:"order_id"`
	InvoiceNo   string  `json:"invoice_no"`
	OrderDate   string  `json:"order_date"`
	VendorName  string  `json:"vendor_name"`
	GSTIN       string  `json:"gstin"`
	TotalAmount float64 `json:"total_amount"`
	CGSTAmount  float64 `json:"cgst_amount"`
	SGSTAmount  float64 `json:"sgst_amount"`
	IGSTAmount  float64 `json:"igst_amount"`
	PDFURL      string  `json:"pdf_url"`
}

// GetInvoicesArchive serves the archive table: invoices joined with
// vendors, narrowed by the compound filters.
func GetInvoicesArchive(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req listRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithPayload(w, false, constants.ErrInvalidJSON, nil)
			return
		}

		invoices := FetchInvoices(ctx, pool)
		vendors := FetchVendors(ctx, pool)

		// Merge with no flagged entries: the archive lists authoritative
		// invoices only, but shares the filter path with the dashboard.
		merged := ledger.MergeInvoicesAndFlags(invoices, nil, vendors)
		merged = ledger.ApplyFilters(merged, req.Filters)

		taxes := make(map[string]ledger.Invoice, len(invoices))
		for _, inv := range invoices {
			taxes[inv.InvoiceNo] = inv
		}

		out := make([]archiveRow, 0, len(merged))
		for _, row := range merged {
			inv := taxes[row.InvoiceID]
			out = append(out, archiveRow{
				OrderID:     row.OrderID,
				InvoiceNo:   row.InvoiceID,
				OrderDate:   row.Date,
				VendorName:  row.VendorName,
				GSTIN:       row.GSTIN,
				TotalAmount: row.Amount,
				CGSTAmount:  inv.CGSTAmount,
				SGSTAmount:  inv.SGSTAmount,
				IGSTAmount:  inv.IGSTAmount,
				PDFURL:      row.PDFURL,
			})
		}
		api.RespondWithPayload(w, true, "", out)
	}
}

// GetDashboardActivity serves the merged invoice/flagged view the dashboard
// table renders, syncing the dashboard_activity cache as a side effect so
// the next load starts warm.
func GetDashboardActivity(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req listRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithPayload(w, false, constants.ErrInvalidJSON, nil)
			return
		}

		merged := ledger.MergeInvoicesAndFlags(
			FetchInvoices(ctx, pool),
			FetchFlagged(ctx, pool),
			FetchVendors(ctx, pool),
		)

		delta := ledger.ReconcileActivity(merged, FetchActivity(ctx, pool))
		if !delta.Empty() {
			written := ApplyActivityDelta(ctx, pool, delta)
			api.LogInfo("dashboard activity sync: %d inserts, %d updates, %d written",
				len(delta.Inserts), len(delta.Updates), written)
		}

		api.RespondWithPayload(w, true, "", ledger.ApplyFilters(merged, req.Filters))
	}
}

// SyncActivity runs the reconcile pass on demand and reports the delta.
// The cron sweep calls the same store path on a schedule.
func SyncActivity(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		merged := ledger.MergeInvoicesAndFlags(
			FetchInvoices(ctx, pool),
			FetchFlagged(ctx, pool),
			FetchVendors(ctx, pool),
		)
		delta := ledger.ReconcileActivity(merged, FetchActivity(ctx, pool))
		written := ApplyActivityDelta(ctx, pool, delta)

		w.Header().Set(constants.ContentTypeText, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"inserts": len(delta.Inserts),
			"updates": len(delta.Updates),
			"written": written,
		})
	}
}
