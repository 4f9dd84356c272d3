package mailer

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/smtp"
	"time"

	"github.com/emersion/go-message/mail"
)

// Mailer sends plain-text reminder emails over SMTP. Messages are composed
// as RFC 5322 with go-message so headers are encoded correctly.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// New creates a Mailer. host must be non-empty for a usable mailer; the
// notification service treats a nil Mailer as a disabled channel.
func New(host, port, username, password, from string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send delivers a single plain-text message to one recipient.
func (m *Mailer) Send(to, subject, body string) error {
	msg, err := m.compose(to, subject, body)
	if err != nil {
		return fmt.Errorf("compose message: %w", err)
	}

	addr := m.host + ":" + m.port
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	log.Printf("[Mailer] Sent %q to %s", subject, to)
	return nil
}

func (m *Mailer) compose(to, subject, body string) ([]byte, error) {
	var buf bytes.Buffer

	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*mail.Address{{Address: m.from}})
	h.SetAddressList("To", []*mail.Address{{Address: to}})
	h.SetSubject(subject)

	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, body); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
