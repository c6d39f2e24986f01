package orders

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"InvoiceDesk/api"
	"InvoiceDesk/api/archive"
	"InvoiceDesk/api/constants"
	"InvoiceDesk/internal/ledger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{
	"Order ID", "Vendor", "GSTIN", "Order Date", "Status", "Total Amount",
	"Product ID", "Description", "Unit Price", "Quantity", "Line Total",
}

// exportLine is one flattened row of the export: order fields repeated per
// line item, or a single row with empty item columns when the order has
// no items.
type exportLine struct {
	order ledger.PurchaseOrder
	name  string
	gstin string
	item  *ledger.PurchaseOrderItem
}

func buildExportLines(orders []ledger.PurchaseOrder, items map[string][]ledger.PurchaseOrderItem, vendors map[string]ledger.Vendor) []exportLine {
	var out []exportLine
	for _, po := range orders {
		name, gstin := ledger.UnknownVendor, ledger.UnknownGSTIN
		if v, ok := vendors[po.VendorID]; ok {
			name, gstin = v.VendorName, v.GSTIN
		}
		lineItems := items[po.OrderID]
		if len(lineItems) == 0 {
			out = append(out, exportLine{order: po, name: name, gstin: gstin})
			continue
		}
		for i := range lineItems {
			out = append(out, exportLine{order: po, name: name, gstin: gstin, item: &lineItems[i]})
		}
	}
	return out
}

func (l exportLine) record() []string {
	rec := []string{
		l.order.OrderID, l.name, l.gstin, l.order.OrderDate, l.order.Status,
		strconv.FormatFloat(l.order.TotalAmount, 'f', 2, 64),
		"", "", "", "", "",
	}
	if l.item != nil {
		rec[6] = l.item.ProductID
		rec[7] = l.item.Description
		rec[8] = strconv.FormatFloat(l.item.UnitPrice, 'f', 2, 64)
		rec[9] = strconv.Itoa(l.item.Quantity)
		rec[10] = strconv.FormatFloat(l.item.LineTotal, 'f', 2, 64)
	}
	return rec
}

// WriteXLSX renders the export lines as a workbook on w.
func WriteXLSX(w http.ResponseWriter, lines []exportLine, filename string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for rowIdx, line := range lines {
		rec := line.record()
		for col, val := range rec {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			f.SetCellValue(sheet, cell, val)
		}
	}

	w.Header().Set(constants.ContentTypeText, constants.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, filename))
	return f.Write(w)
}

// WriteCSV renders the export lines as CSV on w.
func WriteCSV(w http.ResponseWriter, lines []exportLine, filename string) error {
	w.Header().Set(constants.ContentTypeText, constants.ContentTypeCSV)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, filename))

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, line := range lines {
		if err := cw.Write(line.record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportOrders streams the order book for a date range. Ranges wider than
// the cutoff always come back as a workbook; otherwise the requested
// format (csv by default) is honored.
func ExportOrders(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		start := r.URL.Query().Get("start_date")
		end := r.URL.Query().Get("end_date")
		format := r.URL.Query().Get("format")

		orders := FilterByDateRange(FetchPurchaseOrders(ctx, pool), start, end)
		lines := buildExportLines(orders,
			FetchOrderItems(ctx, pool),
			ledger.BuildVendorIndex(archive.FetchVendors(ctx, pool)))

		filename := "purchase_orders"
		if start != "" && end != "" {
			filename = fmt.Sprintf("purchase_orders_%s_%s", start, end)
		}

		var err error
		if RangeDays(start, end) > constants.OrdersExportRangeDays || format == "xlsx" {
			err = WriteXLSX(w, lines, filename)
		} else {
			err = WriteCSV(w, lines, filename)
		}
		if err != nil {
			api.LogError("orders export: %v", err)
		}
	}
}
