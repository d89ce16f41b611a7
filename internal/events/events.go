// Package events re-exports the platform event bus and defines the domain
// events exchanged between modules.
package events

import (
	platformevents "github.com/kapasiraj84-beep/bhavya-steel-industries/platform/events"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/logger"

	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote"
)

// Re-export platform types for convenience
type (
	Event       = platformevents.Event
	BaseEvent   = platformevents.BaseEvent
	Handler     = platformevents.Handler
	HandlerFunc = platformevents.HandlerFunc
	Bus         = platformevents.Bus
	InMemoryBus = platformevents.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = platformevents.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}

// QuoteSubmitted fires after a quote record has been durably accepted by
// the configured persistence policy. Notification fan-out subscribes to it.
type QuoteSubmitted struct {
	BaseEvent
	Record quote.Record
}

func (e QuoteSubmitted) EventName() string { return "quotes.quote.submitted" }
