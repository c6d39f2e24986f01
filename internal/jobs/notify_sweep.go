package jobs

import (
	"context"
	"fmt"
	"sync"

	"InvoiceDesk/api/archive"
	"InvoiceDesk/internal/ledger"
	"InvoiceDesk/internal/logger"
	"InvoiceDesk/internal/notification"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NotifySweep mails the approver whose level matches each newly flagged
// entry. Entries already notified are remembered in memory, so a restart
// re-notifies whatever is still flagged; approvers see a duplicate at
// worst.
type NotifySweep struct {
	db     *pgxpool.Pool
	mailer *notification.Mailer

	mu        sync.Mutex
	processed map[string]struct{}
}

func NewNotifySweep(db *pgxpool.Pool, mailer *notification.Mailer) *NotifySweep {
	return &NotifySweep{
		db:        db,
		mailer:    mailer,
		processed: make(map[string]struct{}),
	}
}

// Run scans flagged entries still awaiting review and mails the matching
// approver once per entry.
func (n *NotifySweep) Run() error {
	if !n.mailer.Enabled() {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	pending := n.pendingEntries(archive.FetchFlagged(ctx, n.db))
	if len(pending) == 0 {
		return nil
	}

	sent := 0
	for _, f := range pending {
		email, err := n.approverEmail(ctx, f.Level)
		if err != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf(
				"Notify sweep: no approver for level %d (%s): %v", f.Level, f.InvoiceID, err))
			continue
		}
		if err := n.mailer.Notify(email, f); err != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf(
				"Notify sweep: mail for %s failed: %v", f.InvoiceID, err))
			continue
		}
		n.markProcessed(f)
		sent++
	}
	if sent > 0 {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("Notify sweep: %d alerts sent", sent))
	}
	return nil
}

// pendingEntries filters to still-flagged entries not yet notified.
func (n *NotifySweep) pendingEntries(flagged []ledger.FlaggedEntry) []ledger.FlaggedEntry {
	n.mu.Lock()
	defer n.mu.Unlock()

	var out []ledger.FlaggedEntry
	for _, f := range flagged {
		if f.Status != ledger.StatusFlagged {
			continue
		}
		if _, done := n.processed[ledger.ActivityKey(f.OrderID, f.InvoiceID)]; done {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (n *NotifySweep) markProcessed(f ledger.FlaggedEntry) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.processed[ledger.ActivityKey(f.OrderID, f.InvoiceID)] = struct{}{}
}

// approverEmail returns the email of the first user at the given level.
func (n *NotifySweep) approverEmail(ctx context.Context, level int) (string, error) {
	var email string
	err := n.db.QueryRow(ctx,
		`SELECT email FROM users WHERE level = $1 ORDER BY id LIMIT 1`, level).Scan(&email)
	if err != nil {
		return "", err
	}
	return email, nil
}
