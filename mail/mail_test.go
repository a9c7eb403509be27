package mail

import (
	"bytes"
	"context"
	"io"
	"mime"
	"mime/multipart"
	netmail "net/mail"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		SMTPServer:   "smtp.example.com",
		SMTPUser:     "me",
		SMTPPassword: "secret",
		Sender:       "Reports <reports@example.com>",
		Recipients:   []string{"a@example.com", "b@example.com"},
	}
}

func TestMessage_Bytes(t *testing.T) {
	m := NewMessage(testConfig(), "Portfolio Report for January 02", "Total holdings are $1,234.50.", "<p>Total holdings are $1,234.50.</p>")
	m.Date = time.Date(2024, 1, 2, 18, 0, 0, 0, time.UTC)

	data, err := m.Bytes()
	require.NoError(t, err)

	msg, err := netmail.ReadMessage(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "Reports <reports@example.com>", msg.Header.Get("From"))
	assert.Equal(t, "Reports <reports@example.com>", msg.Header.Get("Reply-To"))
	assert.Equal(t, "a@example.com, b@example.com", msg.Header.Get("To"))
	assert.Equal(t, "Portfolio Report for January 02", msg.Header.Get("Subject"))
	assert.True(t, strings.HasSuffix(msg.Header.Get("Message-ID"), "@example.com>"), msg.Header.Get("Message-ID"))
	date, err := msg.Header.Date()
	require.NoError(t, err)
	assert.True(t, date.Equal(m.Date))

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/alternative", mediaType)

	r := multipart.NewReader(msg.Body, params["boundary"])
	var types, bodies []string
	for {
		part, err := r.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		body, err := io.ReadAll(part) // quoted-printable is decoded by the reader
		require.NoError(t, err)
		types = append(types, part.Header.Get("Content-Type"))
		bodies = append(bodies, string(body))
	}
	assert.Equal(t, []string{`text/plain; charset="utf-8"`, `text/html; charset="utf-8"`}, types)
	assert.Equal(t, []string{"Total holdings are $1,234.50.", "<p>Total holdings are $1,234.50.</p>"}, bodies)
}

func TestMessage_TextOnly(t *testing.T) {
	m := NewMessage(testConfig(), "Report", "text", "")
	data, err := m.Bytes()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "text/html")
	assert.Contains(t, string(data), "text/plain")
}

func TestNewSender(t *testing.T) {
	testCases := []struct {
		name    string
		edit    func(*Config)
		want    any
		wantErr bool
	}{
		{name: "smtp by default", edit: func(c *Config) {}, want: &SMTP{}},
		{name: "smtp", edit: func(c *Config) { c.Provider = "SMTP" }, want: &SMTP{}},
		{name: "mailgun", edit: func(c *Config) { c.Provider, c.MailgunDomain, c.MailgunAPIKey = "mailgun", "mg.example.com", "key" }, want: &Mailgun{}},
		{name: "mailgun without key", edit: func(c *Config) { c.Provider, c.MailgunDomain = "mailgun", "mg.example.com" }, wantErr: true},
		{name: "no recipients", edit: func(c *Config) { c.Recipients = nil }, wantErr: true},
		{name: "no password", edit: func(c *Config) { c.SMTPPassword = "" }, wantErr: true},
		{name: "unknown provider", edit: func(c *Config) { c.Provider = "pigeon" }, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.edit(&cfg)
			got, err := NewSender(cfg)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrIncompleteConfig)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tc.want, got)
		})
	}

	s, err := NewSender(testConfig())
	require.NoError(t, err)
	assert.Equal(t, 587, s.(*SMTP).Port)
}

func TestDry(t *testing.T) {
	var buf bytes.Buffer
	m := NewMessage(testConfig(), "Report", "Total holdings are $1,234.50.", "")
	require.NoError(t, Dry{W: &buf}.Send(context.Background(), m))
	assert.Contains(t, buf.String(), "Subject: Report\r\n")
	assert.Contains(t, buf.String(), "Total holdings are $1,234.50.")
}
