// Package notification sends flagged-entry alerts over SMTP to the user
// whose approval level matches the entry.
package notification

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"InvoiceDesk/internal/ledger"
)

// Mailer holds SMTP settings. A zero host disables sending; Notify then
// reports what it would have sent and returns nil.
type Mailer struct {
	Host     string
	Port     string
	Sender   string
	Password string
}

// NewMailerFromEnv reads SMTP_HOST, SMTP_PORT, SMTP_SENDER, SMTP_PASSWORD.
func NewMailerFromEnv() *Mailer {
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	return &Mailer{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Sender:   os.Getenv("SMTP_SENDER"),
		Password: os.Getenv("SMTP_PASSWORD"),
	}
}

// Enabled reports whether the mailer has enough configuration to send.
func (m *Mailer) Enabled() bool {
	return m != nil && m.Host != "" && m.Sender != ""
}

// FlaggedSubject is the subject line for a flagged-entry alert.
func FlaggedSubject(f ledger.FlaggedEntry) string {
	return "New Flagged Invoice: " + f.InvoiceID
}

// FlaggedBody renders the alert body listing the entry's key fields.
func FlaggedBody(f ledger.FlaggedEntry) string {
	var b strings.Builder
	b.WriteString("A new invoice has been flagged for review:\n")
	fmt.Fprintf(&b, "- Invoice ID: %s\n", f.InvoiceID)
	fmt.Fprintf(&b, "- Order ID: %s\n", f.OrderID)
	fmt.Fprintf(&b, "- Vendor ID: %s\n", f.VendorID)
	fmt.Fprintf(&b, "- Invoice Date: %s\n", f.InvoiceDate)
	fmt.Fprintf(&b, "- Reason: %s\n", f.Reason)
	return b.String()
}

// Notify mails one flagged-entry alert to the given address.
func (m *Mailer) Notify(to string, f ledger.FlaggedEntry) error {
	if !m.Enabled() {
		return nil
	}
	msg := buildMessage(m.Sender, to, FlaggedSubject(f), FlaggedBody(f))
	auth := smtp.PlainAuth("", m.Sender, m.Password, m.Host)
	return smtp.SendMail(m.Host+":"+m.Port, auth, m.Sender, []string{to}, msg)
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
