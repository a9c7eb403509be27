package mail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/smtp"
	"strings"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/phuslu/log"
)

// ErrIncompleteConfig is returned when the email settings miss a value required by the provider.
var ErrIncompleteConfig = errors.New("incomplete email configuration")

// Config holds the email settings.
type Config struct {
	Provider      string   `toml:"provider"` // "smtp" (default) or "mailgun"
	SMTPServer    string   `toml:"smtp_server"`
	SMTPPort      int      `toml:"smtp_port"`
	SMTPUser      string   `toml:"smtp_user"`
	SMTPPassword  string   `toml:"smtp_password"`
	Sender        string   `toml:"sender"`
	Recipients    []string `toml:"recipients"`
	MailgunDomain string   `toml:"mailgun_domain"`
	MailgunAPIKey string   `toml:"mailgun_api_key"`
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, m *Message) error
}

// NewSender returns the sender of the configured provider.
func NewSender(cfg Config) (Sender, error) {
	missing := func(names ...string) error {
		return fmt.Errorf("%w: %s", ErrIncompleteConfig, strings.Join(names, ", "))
	}
	if cfg.Sender == "" || len(cfg.Recipients) == 0 {
		return nil, missing("sender", "recipients")
	}

	switch provider := strings.ToLower(cfg.Provider); provider {
	case "", "smtp":
		if cfg.SMTPServer == "" || cfg.SMTPUser == "" || cfg.SMTPPassword == "" {
			return nil, missing("smtp_server", "smtp_user", "smtp_password")
		}
		port := cfg.SMTPPort
		if port == 0 {
			port = 587
		}
		return &SMTP{Server: cfg.SMTPServer, Port: port, User: cfg.SMTPUser, Password: cfg.SMTPPassword}, nil
	case "mailgun":
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
			return nil, missing("mailgun_domain", "mailgun_api_key")
		}
		return &Mailgun{MG: mailgun.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey)}, nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrIncompleteConfig, provider)
	}
}

// SMTP sends messages through an SMTP server, with STARTTLS when the server offers it.
type SMTP struct {
	Server   string
	Port     int
	User     string
	Password string
}

func (s *SMTP) Send(ctx context.Context, m *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := m.Bytes()
	if err != nil {
		return err
	}
	auth := smtp.PlainAuth("", s.User, s.Password, s.Server)
	addr := fmt.Sprintf("%s:%d", s.Server, s.Port)
	if err := smtp.SendMail(addr, auth, m.From, m.To, msg); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}
	log.Info().Str("server", s.Server).Str("to", strings.Join(m.To, ", ")).Msg("email sent")
	return nil
}

// Mailgun sends messages through the Mailgun API.
type Mailgun struct {
	MG mailgun.Mailgun
}

func (s *Mailgun) Send(ctx context.Context, m *Message) error {
	message := s.MG.NewMessage(m.From, m.Subject, m.Text, m.To...)
	if m.HTML != "" {
		message.SetHtml(m.HTML)
	}
	message.AddHeader("Message-ID", "<"+m.ID+">")

	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()
	resp, id, err := s.MG.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("mailgun send failed: %w. Response: %s", err, resp)
	}
	log.Info().Str("id", id).Str("to", strings.Join(m.To, ", ")).Msg("email sent via mailgun")
	return nil
}

// Dry writes the messages to W instead of sending them.
type Dry struct {
	W io.Writer
}

func (d Dry) Send(_ context.Context, m *Message) error {
	msg, err := m.Bytes()
	if err != nil {
		return err
	}
	_, err = d.W.Write(msg)
	return err
}
