// Package mail delivers reports by email, as a text and an HTML alternative.
package mail

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message is an email with a text body and its HTML alternative.
type Message struct {
	From    string
	To      []string
	Subject string
	Text    string
	HTML    string // optional
	Date    time.Time
	ID      string // Message-ID without the angle brackets
}

// NewMessage returns a message from the configured sender to the configured recipients.
func NewMessage(cfg Config, subject, text, html string) *Message {
	return &Message{
		From:    cfg.Sender,
		To:      cfg.Recipients,
		Subject: subject,
		Text:    text,
		HTML:    html,
		Date:    time.Now(),
		ID:      fmt.Sprintf("%s@%s", uuid.NewString(), host(cfg.Sender)),
	}
}

// host returns the domain of an address, or "localhost".
func host(address string) string {
	at := strings.LastIndex(address, "@")
	if at < 0 {
		return "localhost"
	}
	return strings.TrimSuffix(address[at+1:], ">")
}

// Bytes returns the message in the MIME format, ready to be sent by SMTP.
func (m *Message) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	header := func(key, value string) { fmt.Fprintf(&buf, "%s: %s\r\n", key, value) }
	header("From", m.From)
	header("Reply-To", m.From)
	header("To", strings.Join(m.To, ", "))
	header("Message-ID", "<"+m.ID+">")
	header("Date", m.Date.Format(time.RFC1123Z))
	header("Subject", mime.QEncoding.Encode("utf-8", m.Subject))
	header("MIME-Version", "1.0")

	w := multipart.NewWriter(&buf)
	header("Content-Type", mime.FormatMediaType("multipart/alternative", map[string]string{"boundary": w.Boundary()}))
	buf.WriteString("\r\n")

	if err := writePart(w, "text/plain", m.Text); err != nil {
		return nil, err
	}
	if m.HTML != "" {
		if err := writePart(w, "text/html", m.HTML); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePart(w *multipart.Writer, contentType, body string) error {
	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {contentType + `; charset="utf-8"`},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return err
	}
	qp := quotedprintable.NewWriter(part)
	if _, err := io.WriteString(qp, body); err != nil {
		return err
	}
	return qp.Close()
}
