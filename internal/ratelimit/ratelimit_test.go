package ratelimit

import (
	"testing"
	"time"
)

// fakeClock advances only when told to, so window expiry is deterministic.
type fakeClock struct {
	at time.Time
}

func (c *fakeClock) now() time.Time          { return c.at }
func (c *fakeClock) advance(d time.Duration) { c.at = c.at.Add(d) }

func newTestLimiter(max int, window time.Duration) (*Limiter, *fakeClock) {
	clock := &fakeClock{at: time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)}
	return New(max, window, clock.now), clock
}

func TestAllowUpToMax(t *testing.T) {
	l, _ := newTestLimiter(10, time.Minute)

	for i := 0; i < 10; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d rejected, want allowed", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("11th request allowed, want rejected")
	}
}

func TestRejectionDoesNotExtendWindow(t *testing.T) {
	l, clock := newTestLimiter(10, time.Minute)

	for i := 0; i < 10; i++ {
		l.Allow("1.2.3.4")
	}
	// Hammering while limited must not push the window forward.
	for i := 0; i < 5; i++ {
		clock.advance(5 * time.Second)
		if l.Allow("1.2.3.4") {
			t.Fatal("request inside window allowed")
		}
	}
	clock.advance(40 * time.Second) // first timestamps now past the window
	if !l.Allow("1.2.3.4") {
		t.Fatal("request after window expiry rejected")
	}
}

func TestWindowExpiryRestoresAllowance(t *testing.T) {
	l, clock := newTestLimiter(10, time.Minute)

	for i := 0; i < 10; i++ {
		l.Allow("1.2.3.4")
	}
	clock.advance(61 * time.Second)
	for i := 0; i < 10; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d after expiry rejected", i+1)
		}
	}
}

func TestClientsTrackedIndependently(t *testing.T) {
	l, _ := newTestLimiter(10, time.Minute)

	for i := 0; i < 10; i++ {
		l.Allow("1.2.3.4")
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("exhausted client allowed")
	}
	if !l.Allow("5.6.7.8") {
		t.Fatal("fresh client rejected")
	}
}

func TestRemaining(t *testing.T) {
	l, _ := newTestLimiter(10, time.Minute)

	if got := l.Remaining("1.2.3.4"); got != 10 {
		t.Fatalf("Remaining = %d, want 10", got)
	}
	l.Allow("1.2.3.4")
	l.Allow("1.2.3.4")
	if got := l.Remaining("1.2.3.4"); got != 8 {
		t.Fatalf("Remaining = %d, want 8", got)
	}
}
