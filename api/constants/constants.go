package constants

// Common error messages
const (
	ErrInvalidSession      = "invalid user_id or session"
	ErrInvalidSessionShort = "Please login to continue."
	ErrInvalidJSON         = "invalid json or missing fields"
	ErrInvalidJSONShort    = "Invalid JSON"
	ErrMissingUserID       = "Missing or invalid user_id in body"
	ErrUserIDRequired      = "user_id required"
	ErrDB                  = "DB error"
	ErrFailedToQuery       = "Failed to query"
	ErrMethodNotAllowed    = "Method Not Allowed"
	ErrUnsupportedFileType = "unsupported file type"
	ErrInsufficientLevel   = "approval level too low for this entry"
	ErrEntryNotFound       = "flagged entry not found"
	ErrPayableNotFound     = "payable record not found"
)

// Request body keys
const (
	KeyUserID = "user_id"
)

// Content types
const (
	ContentTypeText      = "Content-Type"
	ContentTypeJSON      = "application/json"
	ContentTypeMultipart = "multipart/form-data"
	ContentTypeXLSX      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV       = "text/csv"
)

// Date formats
const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "2006-01-02"
	DateFormatAlt  = "02-01-2006"
)

// Service ports behind the gateway
const (
	GatewayAddr  = ":8081"
	ArchiveAddr  = ":4143"
	ReviewAddr   = ":5143"
	PayablesAddr = ":6143"
	OrdersAddr   = ":7143"
)

// Orders export threshold: ranges wider than this are served as a workbook
// download instead of an inline table.
const OrdersExportRangeDays = 20
