// Package notification delivers quote emails in response to domain events.
// It subscribes to the event bus so the quote pipeline never needs to know
// about SMTP servers or templates, and it never reports failures upstream:
// a quote that persisted is a success even when every email bounces.
package notification

import (
	"context"
	"sync"

	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/email"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/events"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/logger"
)

// Module dispatches notification emails for submitted quotes.
type Module struct {
	sender email.Sender
	log    *logger.Logger
}

func NewModule(sender email.Sender, log *logger.Logger) *Module {
	return &Module{sender: sender, log: log}
}

// RegisterHandlers subscribes to the domain events this module reacts to.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.QuoteSubmitted{}.EventName(), m)
}

// Handle routes an event to its notification flow. It always returns nil:
// delivery problems are logged, never escalated.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.QuoteSubmitted:
		m.handleQuoteSubmitted(ctx, e)
	}
	return nil
}

// handleQuoteSubmitted sends the staff alert and the customer confirmation
// concurrently. One failing does not stop the other.
func (m *Module) handleQuoteSubmitted(ctx context.Context, e events.QuoteSubmitted) {
	record := e.Record

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := m.sender.SendQuoteAdminAlert(ctx, record); err != nil {
			m.log.NotificationError("admin", err)
		}
	}()

	go func() {
		defer wg.Done()
		if err := m.sender.SendQuoteConfirmation(ctx, record); err != nil {
			m.log.NotificationError(record.Email, err)
		}
	}()

	wg.Wait()
}
