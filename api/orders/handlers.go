package orders

import (
	"encoding/json"
	"net/http"

	"InvoiceDesk/api"
	"InvoiceDesk/api/archive"
	"InvoiceDesk/api/constants"
	"InvoiceDesk/internal/ledger"

	"github.com/jackc/pgx/v5/pgxpool"
)

type listRequest struct {
	UserID    string `json:"user_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// orderRow is the purchase order view with vendor and line items joined in.
type orderRow struct {
	OrderID     string                     `json:"order_id"`
	VendorName  string                     `json:"vendor_name"`
	GSTIN       string                     `json:"gstin"`
	OrderDate   string                     `json:"order_date"`
	Status      string                     `json:"status"`
	TotalAmount float64                    `json:"total_amount"`
	PDFURL      string                     `json:"pdf_url"`
	Items       []ledger.PurchaseOrderItem `json:"items"`
}

// GetPurchaseOrders serves the order book for an optional date range,
// each order carrying its vendor details and line items, plus the summary
// KPIs over the returned set.
func GetPurchaseOrders(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req listRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithPayload(w, false, constants.ErrInvalidJSON, nil)
			return
		}

		orders := FilterByDateRange(FetchPurchaseOrders(ctx, pool), req.StartDate, req.EndDate)
		items := FetchOrderItems(ctx, pool)
		vendors := ledger.BuildVendorIndex(archive.FetchVendors(ctx, pool))

		out := make([]orderRow, 0, len(orders))
		for _, po := range orders {
			name, gstin := ledger.UnknownVendor, ledger.UnknownGSTIN
			if v, ok := vendors[po.VendorID]; ok {
				name, gstin = v.VendorName, v.GSTIN
			}
			out = append(out, orderRow{
				OrderID:     po.OrderID,
				VendorName:  name,
				GSTIN:       gstin,
				OrderDate:   po.OrderDate,
				Status:      po.Status,
				TotalAmount: po.TotalAmount,
				PDFURL:      po.PDFURL,
				Items:       items[po.OrderID],
			})
		}

		w.Header().Set(constants.ContentTypeText, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"rows":    out,
			"summary": Summarize(orders),
		})
	}
}
