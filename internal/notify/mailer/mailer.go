// Package mailer sends transactional email through the configured SMTP relay.
package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/tingnect/event-api/internal/config"
)

// SMTP sends email over the relay described by config.SMTPConfig. A fresh
// connection is dialed per send; submissions are rare enough that pooling
// would buy nothing.
type SMTP struct {
	cfg config.SMTPConfig
}

func New(cfg config.SMTPConfig) *SMTP {
	return &SMTP{cfg: cfg}
}

// Enabled reports whether a relay account is configured.
func (s *SMTP) Enabled() bool {
	return s.cfg.Enabled()
}

// Send delivers one HTML email to a single recipient.
func (s *SMTP) Send(ctx context.Context, to, subject, htmlBody string) error {
	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.User),
		mail.WithPassword(s.cfg.Pass),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(s.cfg.Sender()); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
