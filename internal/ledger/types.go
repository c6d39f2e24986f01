package ledger

// Statuses used across flagged entries, merged rows and payables.
const (
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
	StatusFlagged  = "Flagged for review"
	StatusPaid     = "Paid"
	StatusUnpaid   = "Unpaid"
)

// NoDueDate is the sentinel stored when an invoice carries no urgency.
// It sorts after every real date in due-date ordering.
const NoDueDate = "No Due Date"

// DateFormat is the wire format for all date columns (YYYY-MM-DD).
const DateFormat = "2006-01-02"

// Invoice mirrors a row of the invoices table.
type Invoice struct {
	OrderID       string  `json:"order_id"`
	InvoiceNo     string  `json:"invoice_no"`
	OrderDate     string  `json:"order_date"`
	VendorID      string  `json:"vendor_id"`
	TotalAmount   float64 `json:"total_amount"`
	CGSTAmount    float64 `json:"cgst_amount"`
	SGSTAmount    float64 `json:"sgst_amount"`
	IGSTAmount    float64 `json:"igst_amount"`
	Urgency       *int    `json:"urgency"`
	PaymentStatus string  `json:"payment_status"`
	PDFURL        string  `json:"pdf_url"`
}

// FlaggedEntry mirrors a row of the flagged table: an invoice-like record
// awaiting human review before it becomes an authoritative invoice.
type FlaggedEntry struct {
	OrderID     string  `json:"order_id"`
	InvoiceID   string  `json:"invoice_id"`
	VendorID    string  `json:"vendor_id"`
	InvoiceDate string  `json:"invoice_date"`
	Reason      string  `json:"reason"`
	Status      string  `json:"status"`
	Level       int     `json:"level"`
	TotalAmount float64 `json:"total_amount"`
	CGSTAmount  float64 `json:"cgst_amount"`
	SGSTAmount  float64 `json:"sgst_amount"`
	IGSTAmount  float64 `json:"igst_amount"`
	Urgency     *int    `json:"urgency"`
	InvoicePDF  string  `json:"invoices_pdf"`
	ReportPDF   string  `json:"report_pdfs"`
}

// Vendor mirrors a row of the vendors_db table.
type Vendor struct {
	VendorID   string `json:"vendor_id"`
	VendorName string `json:"vendor_name"`
	GSTIN      string `json:"gstin"`
}

// PurchaseOrder mirrors a row of the purchase_orders table.
type PurchaseOrder struct {
	OrderID     string  `json:"order_id"`
	VendorID    string  `json:"vendor_id"`
	OrderDate   string  `json:"order_date"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
	PDFURL      string  `json:"pdf_url"`
}

// PurchaseOrderItem mirrors a row of the purchase_order_items table.
type PurchaseOrderItem struct {
	OrderID     string  `json:"order_id"`
	ProductID   string  `json:"product_id"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"line_total"`
	TaxRate     float64 `json:"tax_rate"`
	TaxAmount   float64 `json:"tax_amount"`
}

// PayableRecord mirrors a row of the accounts_payable table. DueDate is
// either a DateFormat date or the NoDueDate sentinel.
type PayableRecord struct {
	InvoiceID     string  `json:"invoice_id"`
	VendorID      string  `json:"vendor_id"`
	DueDate       string  `json:"due_date"`
	PaymentStatus string  `json:"payment_status"`
	TotalAmount   float64 `json:"total_amount"`
	TransactionID string  `json:"transaction_id"`
}

// ActivityRecord is the denormalized dashboard_activity cache row, keyed by
// (order_id, invoice_id) and kept in sync by ReconcileActivity.
type ActivityRecord struct {
	OrderID    string  `json:"order_id"`
	InvoiceID  string  `json:"invoice_id"`
	Date       string  `json:"date"`
	VendorName string  `json:"vendor_name"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
}

// MergedRow is one display-ready row of the combined invoice/flagged view.
type MergedRow struct {
	OrderID    string  `json:"order_id"`
	InvoiceID  string  `json:"invoice_id"`
	Date       string  `json:"date"`
	VendorID   string  `json:"vendor_id"`
	VendorName string  `json:"vendor_name"`
	GSTIN      string  `json:"gstin"`
	Amount     float64 `json:"total_amount"`
	Status     string  `json:"status"`
	PDFURL     string  `json:"pdf_url"`
}
