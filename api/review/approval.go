package review

import (
	"errors"

	"InvoiceDesk/internal/ledger"
)

// Review actions accepted by the transition endpoint.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

var (
	// ErrInsufficientLevel means the acting user's authority is below the
	// entry's required approval level.
	ErrInsufficientLevel = errors.New("approval level too low for this entry")
	// ErrNotReviewable means the entry has already left the review state.
	ErrNotReviewable = errors.New("entry is not flagged for review")
	// ErrUnknownAction means the action was neither approve nor reject.
	ErrUnknownAction = errors.New("unknown review action")
)

// Transition resolves the terminal status for an action against a flagged
// entry, enforcing both the state guard (only entries still flagged for
// review move) and the level guard (user level must be >= entry level).
func Transition(action string, userLevel int, entry ledger.FlaggedEntry) (string, error) {
	if entry.Status != ledger.StatusFlagged {
		return "", ErrNotReviewable
	}
	if userLevel < entry.Level {
		return "", ErrInsufficientLevel
	}
	switch action {
	case ActionApprove:
		return ledger.StatusApproved, nil
	case ActionReject:
		return ledger.StatusRejected, nil
	default:
		return "", ErrUnknownAction
	}
}

// InvoiceFromFlagged builds the authoritative invoice record created on
// approval. The flagged entry's invoice id becomes the invoice number and
// the payment status starts unpaid.
func InvoiceFromFlagged(f ledger.FlaggedEntry) ledger.Invoice {
	return ledger.Invoice{
		OrderID:       f.OrderID,
		InvoiceNo:     f.InvoiceID,
		OrderDate:     f.InvoiceDate,
		VendorID:      f.VendorID,
		TotalAmount:   f.TotalAmount,
		CGSTAmount:    f.CGSTAmount,
		SGSTAmount:    f.SGSTAmount,
		IGSTAmount:    f.IGSTAmount,
		Urgency:       f.Urgency,
		PaymentStatus: ledger.StatusUnpaid,
		PDFURL:        f.InvoicePDF,
	}
}
