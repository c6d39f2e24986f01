package review

import (
	"encoding/json"
	"errors"
	"net/http"

	"InvoiceDesk/api"
	"InvoiceDesk/api/archive"
	"InvoiceDesk/api/constants"
	"InvoiceDesk/internal/ledger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type listRequest struct {
	UserID  string         `json:"user_id"`
	Filters ledger.Filters `json:"filters"`
}

type actionRequest struct {
	UserID    string `json:"user_id"`
	OrderID   string `json:"order_id"`
	InvoiceID string `json:"invoice_id"`
}

// flaggedRow is the review queue view: a flagged entry with its vendor
// joined in and the review metadata the screen needs.
type flaggedRow struct {
	OrderID     string  `json:"order_id"`
	InvoiceID   string  `json:"invoice_id"`
	InvoiceDate string  `json:"invoice_date"`
	VendorName  string  `json:"vendor_name"`
	GSTIN       string  `json:"gstin"`
	Reason      string  `json:"reason"`
	Status      string  `json:"status"`
	Level       int     `json:"level"`
	TotalAmount float64 `json:"total_amount"`
	InvoicePDF  string  `json:"invoices_pdf"`
	ReportPDF   string  `json:"report_pdfs"`
}

// queueRows builds the review queue from every flagged entry, terminal
// statuses included; the screen gates the actions, the listing shows the
// full history. Filters apply the same way as on the dashboard.
func queueRows(flagged []ledger.FlaggedEntry, vendors []ledger.Vendor, filters ledger.Filters) []flaggedRow {
	index := ledger.BuildVendorIndex(vendors)
	out := make([]flaggedRow, 0, len(flagged))
	for _, f := range flagged {
		name, gstin := ledger.UnknownVendor, ledger.UnknownGSTIN
		if v, ok := index[f.VendorID]; ok {
			name, gstin = v.VendorName, v.GSTIN
		}
		row := ledger.MergedRow{
			OrderID:    f.OrderID,
			InvoiceID:  f.InvoiceID,
			Date:       f.InvoiceDate,
			VendorID:   f.VendorID,
			VendorName: name,
			GSTIN:      gstin,
			Amount:     f.TotalAmount,
			Status:     f.Status,
		}
		if len(ledger.ApplyFilters([]ledger.MergedRow{row}, filters)) == 0 {
			continue
		}
		out = append(out, flaggedRow{
			OrderID:     f.OrderID,
			InvoiceID:   f.InvoiceID,
			InvoiceDate: f.InvoiceDate,
			VendorName:  name,
			GSTIN:       gstin,
			Reason:      f.Reason,
			Status:      f.Status,
			Level:       f.Level,
			TotalAmount: f.TotalAmount,
			InvoicePDF:  f.InvoicePDF,
			ReportPDF:   f.ReportPDF,
		})
	}
	return out
}

// GetFlagged serves the review queue: every flagged entry joined with
// vendors, narrowed by the compound filters.
func GetFlagged(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req listRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithPayload(w, false, constants.ErrInvalidJSON, nil)
			return
		}

		rows := queueRows(
			archive.FetchFlagged(ctx, pool),
			archive.FetchVendors(ctx, pool),
			req.Filters,
		)
		api.RespondWithPayload(w, true, "", rows)
	}
}

// ApproveFlagged promotes a flagged entry to an invoice. The invoice is
// inserted first and the flagged status flipped second; if the flip fails
// after the insert succeeded the inconsistency is logged and surfaced so
// the next reconcile sweep can be watched.
func ApproveFlagged(pool *pgxpool.Pool) http.HandlerFunc {
	return reviewAction(pool, ActionApprove)
}

// RejectFlagged marks a flagged entry rejected. No invoice is created.
func RejectFlagged(pool *pgxpool.Pool) http.HandlerFunc {
	return reviewAction(pool, ActionReject)
}

func reviewAction(pool *pgxpool.Pool, action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req actionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID == "" || req.InvoiceID == "" {
			api.RespondWithResult(w, false, constants.ErrInvalidJSON)
			return
		}

		session := api.GetSessionFromCtx(ctx)
		if session == nil {
			api.RespondWithResult(w, false, constants.ErrInvalidSession)
			return
		}

		entry, err := FetchFlaggedEntry(ctx, pool, req.OrderID, req.InvoiceID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				api.RespondWithResult(w, false, constants.ErrEntryNotFound)
				return
			}
			api.LogError("review: fetch flagged %s/%s: %v", req.OrderID, req.InvoiceID, err)
			api.RespondWithResult(w, false, constants.ErrDB)
			return
		}

		status, err := Transition(action, session.Level, entry)
		if err != nil {
			api.RespondWithResult(w, false, err.Error())
			return
		}

		if action == ActionApprove {
			if err := InsertInvoice(ctx, pool, InvoiceFromFlagged(entry)); err != nil {
				api.LogError("review: insert invoice for %s/%s: %v", req.OrderID, req.InvoiceID, err)
				api.RespondWithResult(w, false, constants.ErrDB)
				return
			}
		}

		if err := UpdateFlaggedStatus(ctx, pool, req.OrderID, req.InvoiceID, status); err != nil {
			if action == ActionApprove {
				// Invoice exists but the entry is still flagged. The merge
				// de-duplicates in favor of the invoice, so readers stay
				// consistent; log it for the operator.
				api.LogError("review: invoice created but flag update failed for %s/%s: %v",
					req.OrderID, req.InvoiceID, err)
			} else {
				api.LogError("review: reject update failed for %s/%s: %v", req.OrderID, req.InvoiceID, err)
			}
			api.RespondWithResult(w, false, constants.ErrDB)
			return
		}

		api.LogInfo("review: %s %s/%s by %s (level %d)",
			status, req.OrderID, req.InvoiceID, session.Username, session.Level)
		api.RespondWithPayload(w, true, "", map[string]string{
			"order_id":   req.OrderID,
			"invoice_id": req.InvoiceID,
			"status":     status,
		})
	}
}

// GetStatusSummary serves the monthly status chart: per-month counts of
// approved, rejected and flagged rows plus the overall breakdown.
func GetStatusSummary(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		merged := ledger.MergeInvoicesAndFlags(
			archive.FetchInvoices(ctx, pool),
			archive.FetchFlagged(ctx, pool),
			archive.FetchVendors(ctx, pool),
		)

		api.RespondWithPayload(w, true, "", map[string]interface{}{
			"monthly": MonthlyStatusSummary(merged),
			"totals":  StatusBreakdown(merged),
		})
	}
}
