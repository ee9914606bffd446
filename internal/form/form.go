// Package form defines the inbound submission types and how each one renders
// into the notification channels: admin email, auto-reply email, spreadsheet
// row, and Telegram alert.
package form

import (
	"html"
	"strings"
	"time"
)

// Submission is one inbound form payload. A submission validates itself
// (presence checks only) and renders its own channel payloads, so the
// notification pipeline stays generic across form types.
type Submission interface {
	// Kind identifies the form type in logs ("contact", "sponsor", "registration").
	Kind() string
	// Missing returns the names of required fields that are empty.
	Missing() []string
	// AdminNotice renders the alert email sent to the operator.
	AdminNotice() AdminNotice
	// AutoReply renders the acknowledgment email sent back to the submitter.
	AutoReply() AutoReply
	// Row renders the spreadsheet row for the given submission time.
	Row(submittedAt time.Time) SheetRow
	// ChatText renders the Telegram alert (HTML parse mode).
	ChatText() string
	// SuccessMessage is the body returned to the caller on acceptance.
	SuccessMessage() string
}

// AdminNotice is the operator alert email. The recipient is configured, not
// part of the submission.
type AdminNotice struct {
	Subject string
	HTML    string
}

// AutoReply is the acknowledgment email sent to the submitter's own address.
type AutoReply struct {
	To      string
	Subject string
	HTML    string
}

// SheetRow is one row appended to a named tab of the spreadsheet. Header is
// only written when the tab is empty.
type SheetRow struct {
	Sheet  string
	Header []string
	Values []string
}

const sourceTag = "TingNect Event Landing"

// esc escapes a field value for embedding in an HTML email or Telegram
// HTML-mode message.
func esc(s string) string {
	return html.EscapeString(s)
}

// nl2br escapes a free-text field and converts newlines to <br> tags for
// email bodies.
func nl2br(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}

// timestamp formats the submission time for the sheet's Timestamp column.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// missingOf collects the names of empty required fields. Presence means a
// non-empty string; whitespace-only values pass.
func missingOf(fields ...field) []string {
	var missing []string
	for _, f := range fields {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

type field struct {
	name  string
	value string
}
