package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/logger"
)

// InMemoryBus is a process-local Bus implementation. Publish dispatches
// handlers on detached goroutines so publishers never wait on, or fail
// because of, a subscriber.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *logger.Logger
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for the named event type.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish dispatches the event to every subscribed handler asynchronously.
// Handler errors and panics are logged and swallowed; they never reach the
// publishing request context. The detached handlers receive a fresh
// background context so they outlive the originating HTTP request.
func (b *InMemoryBus) Publish(_ context.Context, event Event) {
	for _, h := range b.handlersFor(event.EventName()) {
		handler := h
		go func() {
			defer b.recoverHandler(event.EventName())
			if err := handler.Handle(context.Background(), event); err != nil {
				b.log.Error("event handler failed",
					"event", event.EventName(),
					"error", err.Error(),
				)
			}
		}()
	}
}

// PublishSync dispatches the event and waits for all handlers, returning
// the first handler error encountered.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	var firstErr error
	for _, handler := range b.handlersFor(event.EventName()) {
		if err := handler.Handle(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (b *InMemoryBus) handlersFor(name string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	registered := b.handlers[name]
	out := make([]Handler, len(registered))
	copy(out, registered)
	return out
}

func (b *InMemoryBus) recoverHandler(eventName string) {
	if r := recover(); r != nil {
		b.log.Error("event handler panicked",
			"event", eventName,
			"panic", fmt.Sprintf("%v", r),
		)
	}
}

var _ Bus = (*InMemoryBus)(nil)
