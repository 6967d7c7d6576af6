package notify

import "context"

// Attachment is an optional file carried by an email.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Email struct {
	To          string
	Subject     string
	Text        string
	HTML        string // optional; empty means plain-text only
	Attachments []Attachment
}

// EmailSender and SMSSender report delivery as a boolean and never return an
// error: a failed or skipped notification is cosmetic, not transactional.
type EmailSender interface {
	Send(ctx context.Context, e Email) bool
}

type SMSSender interface {
	Send(ctx context.Context, to, body string) bool
}
