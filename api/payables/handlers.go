package payables

import (
	"encoding/json"
	"net/http"

	"InvoiceDesk/api"
	"InvoiceDesk/api/archive"
	"InvoiceDesk/api/constants"
	"InvoiceDesk/internal/ledger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type listRequest struct {
	UserID string `json:"user_id"`
}

type payRequest struct {
	UserID    string `json:"user_id"`
	InvoiceID string `json:"invoice_id"`
}

// payableRow is the accounts payable view with vendor details joined in.
type payableRow struct {
	InvoiceID     string  `json:"invoice_id"`
	VendorName    string  `json:"vendor_name"`
	GSTIN         string  `json:"gstin"`
	DueDate       string  `json:"due_date"`
	PaymentStatus string  `json:"payment_status"`
	TotalAmount   float64 `json:"total_amount"`
	TransactionID string  `json:"transaction_id"`
}

// GetAccountsPayable reconciles the payable table against invoices, then
// serves outstanding records joined with vendors, soonest due first with
// no-due-date rows last. Paid records are excluded from the listing.
func GetAccountsPayable(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req listRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithPayload(w, false, constants.ErrInvalidJSON, nil)
			return
		}

		if written := PopulatePayables(ctx, pool); written > 0 {
			api.LogInfo("payables: reconciled %d records before listing", written)
		}

		records := FetchPayables(ctx, pool)
		vendors := ledger.BuildVendorIndex(archive.FetchVendors(ctx, pool))

		outstanding := records[:0]
		for _, p := range records {
			if p.PaymentStatus != ledger.StatusPaid {
				outstanding = append(outstanding, p)
			}
		}
		ledger.SortPayablesByDueDate(outstanding)

		out := make([]payableRow, 0, len(outstanding))
		for _, p := range outstanding {
			name, gstin := ledger.UnknownVendor, ledger.UnknownGSTIN
			if v, ok := vendors[p.VendorID]; ok {
				name, gstin = v.VendorName, v.GSTIN
			}
			out = append(out, payableRow{
				InvoiceID:     p.InvoiceID,
				VendorName:    name,
				GSTIN:         gstin,
				DueDate:       p.DueDate,
				PaymentStatus: p.PaymentStatus,
				TotalAmount:   p.TotalAmount,
				TransactionID: p.TransactionID,
			})
		}
		api.RespondWithPayload(w, true, "", out)
	}
}

// PayNow settles one payable: both the accounts_payable row and the source
// invoice flip to Paid under a single transaction, stamped with a fresh
// transaction id. No money moves here; the id is the reference for the
// payment done outside the system.
func PayNow(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req payRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.InvoiceID == "" {
			api.RespondWithResult(w, false, constants.ErrInvalidJSON)
			return
		}

		session := api.GetSessionFromCtx(ctx)
		if session == nil {
			api.RespondWithResult(w, false, constants.ErrInvalidSession)
			return
		}

		txnID := uuid.New().String()

		tx, err := pool.Begin(ctx)
		if err != nil {
			api.LogError("payables: begin tx: %v", err)
			api.RespondWithResult(w, false, constants.ErrDB)
			return
		}
		defer tx.Rollback(ctx)

		tag, err := tx.Exec(ctx, `
			UPDATE accounts_payable
			SET payment_status = $2, transaction_id = $3
			WHERE invoice_id = $1 AND payment_status <> $2`,
			req.InvoiceID, ledger.StatusPaid, txnID)
		if err != nil {
			api.LogError("payables: update accounts_payable %s: %v", req.InvoiceID, err)
			api.RespondWithResult(w, false, constants.ErrDB)
			return
		}
		if tag.RowsAffected() == 0 {
			api.RespondWithResult(w, false, constants.ErrPayableNotFound)
			return
		}

		if _, err := tx.Exec(ctx, `
			UPDATE invoices SET payment_status = $2 WHERE invoice_no = $1`,
			req.InvoiceID, ledger.StatusPaid); err != nil {
			api.LogError("payables: update invoice %s: %v", req.InvoiceID, err)
			api.RespondWithResult(w, false, constants.ErrDB)
			return
		}

		if err := tx.Commit(ctx); err != nil {
			api.LogError("payables: commit pay %s: %v", req.InvoiceID, err)
			api.RespondWithResult(w, false, constants.ErrDB)
			return
		}

		api.LogInfo("payables: %s paid by %s, transaction %s", req.InvoiceID, session.Username, txnID)
		api.RespondWithPayload(w, true, "", map[string]string{
			"invoice_id":     req.InvoiceID,
			"payment_status": ledger.StatusPaid,
			"transaction_id": txnID,
		})
	}
}
