package orders

import (
	"context"
	"time"

	"InvoiceDesk/api"
	"InvoiceDesk/internal/ledger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// FetchPurchaseOrders loads purchase_orders. Errors are logged and produce
// an empty slice.
func FetchPurchaseOrders(ctx context.Context, pool *pgxpool.Pool) []ledger.PurchaseOrder {
	rows, err := pool.Query(ctx, `
		SELECT order_id, vendor_id, order_date, total_amount, status, pdf_url
		FROM purchase_orders`)
	if err != nil {
		api.LogError("orders: query purchase_orders: %v", err)
		return nil
	}
	defer rows.Close()

	var out []ledger.PurchaseOrder
	for rows.Next() {
		var (
			po        ledger.PurchaseOrder
			orderDate *time.Time
			total     *float64
			status    *string
			pdfURL    *string
		)
		if err := rows.Scan(&po.OrderID, &po.VendorID, &orderDate, &total, &status, &pdfURL); err != nil {
			api.LogError("orders: scan purchase_orders: %v", err)
			continue
		}
		if orderDate != nil {
			po.OrderDate = orderDate.Format(ledger.DateFormat)
		}
		if total != nil {
			po.TotalAmount = *total
		}
		if status != nil {
			po.Status = *status
		} else {
			po.Status = StatusUnsettled
		}
		if pdfURL != nil {
			po.PDFURL = *pdfURL
		}
		out = append(out, po)
	}
	return out
}

// FetchOrderItems loads purchase_order_items grouped by order id.
func FetchOrderItems(ctx context.Context, pool *pgxpool.Pool) map[string][]ledger.PurchaseOrderItem {
	rows, err := pool.Query(ctx, `
		SELECT order_id, product_id, description, unit_price, quantity, line_total, tax_rate, tax_amount
		FROM purchase_order_items`)
	if err != nil {
		api.LogError("orders: query purchase_order_items: %v", err)
		return nil
	}
	defer rows.Close()

	out := make(map[string][]ledger.PurchaseOrderItem)
	for rows.Next() {
		var (
			it                 ledger.PurchaseOrderItem
			desc               *string
			price, total       *float64
			qty                *int
			taxRate, taxAmount *float64
		)
		if err := rows.Scan(&it.OrderID, &it.ProductID, &desc, &price, &qty, &total, &taxRate, &taxAmount); err != nil {
			api.LogError("orders: scan purchase_order_items: %v", err)
			continue
		}
		if desc != nil {
			it.Description = *desc
		}
		if price != nil {
			it.UnitPrice = *price
		}
		if qty != nil {
			it.Quantity = *qty
		}
		if total != nil {
			it.LineTotal = *total
		}
		if taxRate != nil {
			it.TaxRate = *taxRate
		}
		if taxAmount != nil {
			it.TaxAmount = *taxAmount
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out
}
