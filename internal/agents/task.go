package agents

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/dverhoeven/folioagent/internal/notify"
	"github.com/sirupsen/logrus"
)

// Model temperatures per task character: deterministic-leaning for analytical
// work, higher for creative drafting.
const (
	TempAnalytical float32 = 0.2
	TempChat       float32 = 0.8
	TempCreative   float32 = 0.9
)

// CleanModelJSON strips the triple-backtick fences models like to wrap JSON
// in, leaving the payload ready for unmarshalling.
func CleanModelJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")

	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}

// DecodeModelJSON parses a model reply into dst. Any parse failure is a
// MALFORMED_RESPONSE: the task aborts before persisting anything.
func DecodeModelJSON(op, raw string, dst any) error {
	if err := json.Unmarshal([]byte(CleanModelJSON(raw)), dst); err != nil {
		return apperr.E(apperr.CodeMalformedResponse, op, "model response is not valid JSON", err)
	}
	return nil
}

// OwnerNotifier fans task outcomes out to the owner's configured contact
// channels. Every send is best-effort: results are logged and never surface
// as task failure.
type OwnerNotifier struct {
	email      notify.EmailSender
	sms        notify.SMSSender
	ownerEmail string
	ownerPhone string
	log        *logrus.Logger
}

func NewOwnerNotifier(email notify.EmailSender, sms notify.SMSSender, ownerEmail, ownerPhone string, log *logrus.Logger) *OwnerNotifier {
	return &OwnerNotifier{
		email:      email,
		sms:        sms,
		ownerEmail: ownerEmail,
		ownerPhone: ownerPhone,
		log:        log,
	}
}

// EmailOwner reports whether the mail went out; callers only log the result.
func (n *OwnerNotifier) EmailOwner(ctx context.Context, subject, text string) bool {
	if n.ownerEmail == "" {
		n.log.Debug("owner email not configured, notification skipped")
		return false
	}
	ok := n.email.Send(ctx, notify.Email{To: n.ownerEmail, Subject: subject, Text: text})
	if !ok {
		n.log.WithField("subject", subject).Warn("owner email notification failed")
	}
	return ok
}

func (n *OwnerNotifier) SMSOwner(ctx context.Context, body string) bool {
	if n.ownerPhone == "" {
		n.log.Debug("owner phone not configured, sms skipped")
		return false
	}
	ok := n.sms.Send(ctx, n.ownerPhone, body)
	if !ok {
		n.log.Warn("owner sms notification failed")
	}
	return ok
}

// PhoneConfigured gates the due-check escalation path.
func (n *OwnerNotifier) PhoneConfigured() bool { return n.ownerPhone != "" }
