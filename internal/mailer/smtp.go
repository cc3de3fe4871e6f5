// Package mailer implements the notify.Mailer interface over authenticated
// SMTP.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"smbot/internal/notify"

	"github.com/wneessen/go-mail"
)

// Config carries the SMTP endpoint and credentials. All values are injected
// from the environment; nothing here is ever a literal in code.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTP sends invite mails through a single SMTP account.
type SMTP struct {
	logger *slog.Logger
	client *mail.Client
	from   string
}

// New builds an SMTP mailer with STARTTLS and PLAIN authentication.
func New(logger *slog.Logger, cfg Config) (*SMTP, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTP{logger: logger, client: client, from: from}, nil
}

// Send delivers one message carrying the calendar attachment to all
// recipients.
func (s *SMTP) Send(ctx context.Context, subject string, to []string, attachment notify.Attachment) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("set sender %q: %w", s.from, err)
	}
	if err := msg.To(to...); err != nil {
		return fmt.Errorf("set recipients: %w", err)
	}
	msg.Subject(subject)
	if err := msg.AttachReader(attachment.Filename, bytes.NewReader(attachment.Body),
		mail.WithFileContentType(mail.ContentType(attachment.ContentType))); err != nil {
		return fmt.Errorf("attach %s: %w", attachment.Filename, err)
	}

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	s.logger.Debug("Mail sent", "subject", subject, "recipients", len(to))
	return nil
}
