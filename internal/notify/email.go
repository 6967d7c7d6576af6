package notify

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"github.com/sirupsen/logrus"
)

// SMTPEmailSender delivers mail over SMTP. In development mode the send is
// simulated and reported successful without opening a connection; outside it
// the connection is always attempted, even with incomplete credentials.
type SMTPEmailSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	devMode  bool
	log      *logrus.Logger
}

func NewSMTPEmailSender(host string, port int, username, password, from string, devMode bool, log *logrus.Logger) *SMTPEmailSender {
	return &SMTPEmailSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		devMode:  devMode,
		log:      log,
	}
}

func (s *SMTPEmailSender) Send(ctx context.Context, e Email) bool {
	if s.devMode {
		s.log.WithFields(logrus.Fields{
			"to":      e.To,
			"subject": e.Subject,
		}).Info("development mode: email send simulated")
		return true
	}

	if e.To == "" {
		s.log.Warn("email send skipped: empty recipient")
		return false
	}

	msg := buildMessage(s.from, e)

	var auth smtp.Auth
	if s.username != "" && s.password != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.from, []string{e.To}, msg); err != nil {
		s.log.WithFields(logrus.Fields{
			"to":      e.To,
			"subject": e.Subject,
		}).WithError(err).Error("email send failed")
		return false
	}

	s.log.WithFields(logrus.Fields{
		"to":      e.To,
		"subject": e.Subject,
	}).Info("email sent")
	return true
}

const mixedBoundary = "folioagent-mixed"
const altBoundary = "folioagent-alt"

// buildMessage assembles the RFC 5322 message: plain text, optionally a
// multipart/alternative HTML part, optionally base64 attachments.
func buildMessage(from string, e Email) []byte {
	var sb strings.Builder

	fmt.Fprintf(&sb, "From: %s\r\n", from)
	fmt.Fprintf(&sb, "To: %s\r\n", e.To)
	fmt.Fprintf(&sb, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", e.Subject))
	sb.WriteString("MIME-Version: 1.0\r\n")

	writeBody := func(w *strings.Builder) {
		if e.HTML == "" {
			w.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
			w.WriteString(e.Text)
			w.WriteString("\r\n")
			return
		}
		fmt.Fprintf(w, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", altBoundary)
		fmt.Fprintf(w, "--%s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n", altBoundary, e.Text)
		fmt.Fprintf(w, "--%s\r\nContent-Type: text/html; charset=utf-8\r\n\r\n%s\r\n", altBoundary, e.HTML)
		fmt.Fprintf(w, "--%s--\r\n", altBoundary)
	}

	if len(e.Attachments) == 0 {
		writeBody(&sb)
		return []byte(sb.String())
	}

	fmt.Fprintf(&sb, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", mixedBoundary)
	fmt.Fprintf(&sb, "--%s\r\n", mixedBoundary)
	writeBody(&sb)

	for _, a := range e.Attachments {
		ct := a.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		fmt.Fprintf(&sb, "--%s\r\n", mixedBoundary)
		fmt.Fprintf(&sb, "Content-Type: %s\r\n", ct)
		fmt.Fprintf(&sb, "Content-Disposition: attachment; filename=%q\r\n", a.Filename)
		sb.WriteString("Content-Transfer-Encoding: base64\r\n\r\n")

		enc := base64.StdEncoding.EncodeToString(a.Data)
		for len(enc) > 76 {
			sb.WriteString(enc[:76])
			sb.WriteString("\r\n")
			enc = enc[76:]
		}
		sb.WriteString(enc)
		sb.WriteString("\r\n")
	}
	fmt.Fprintf(&sb, "--%s--\r\n", mixedBoundary)

	return []byte(sb.String())
}
