// Package email provides outbound email delivery for quote notifications.
package email

import (
	"context"

	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/config"
)

// Sender delivers quote notification emails. Both sends are best-effort
// from the pipeline's point of view: errors are for the caller to log,
// never to surface to the submitting customer.
type Sender interface {
	// SendQuoteAdminAlert notifies staff of a new quote request.
	SendQuoteAdminAlert(ctx context.Context, record quote.Record) error
	// SendQuoteConfirmation acknowledges receipt to the customer.
	SendQuoteConfirmation(ctx context.Context, record quote.Record) error
}

// NoopSender is used when email is not configured.
type NoopSender struct{}

func (NoopSender) SendQuoteAdminAlert(context.Context, quote.Record) error { return nil }

func (NoopSender) SendQuoteConfirmation(context.Context, quote.Record) error { return nil }

// NewSender returns the SMTP sender when email is enabled, otherwise a
// no-op implementation.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(cfg)
}
