// Package ratelimit provides fixed-window admission control for the public
// quote submission endpoint. State is process-local and advisory: it does
// not survive restarts and does not coordinate across instances. It is an
// abuse deterrent, not a security boundary.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter tracks recent request timestamps per client identifier and
// rejects a client once it reaches the cap within the sliding window.
// Instances are dependency-injected rather than shared via a package
// global so tests can construct isolated limiters and control the clock.
type Limiter struct {
	mu      sync.Mutex
	clients map[string][]time.Time
	max     int
	window  time.Duration
	now     func() time.Time
}

// New creates a Limiter allowing max requests per client within window.
// A nil clock defaults to time.Now.
func New(max int, window time.Duration, now func() time.Time) *Limiter {
	if now == nil {
		now = time.Now
	}
	return &Limiter{
		clients: make(map[string][]time.Time),
		max:     max,
		window:  window,
		now:     now,
	}
}

// Allow records and admits a request from clientID unless the client
// already has max requests inside the window. Entries older than the
// window are pruned lazily on each check, never proactively.
func (l *Limiter) Allow(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.clients[clientID][:0]
	for _, t := range l.clients[clientID] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.max {
		l.clients[clientID] = recent
		return false
	}

	l.clients[clientID] = append(recent, now)
	return true
}

// Remaining reports how many requests clientID may still make in the
// current window without mutating state beyond lazy pruning.
func (l *Limiter) Remaining(clientID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	count := 0
	for _, t := range l.clients[clientID] {
		if t.After(cutoff) {
			count++
		}
	}
	if count >= l.max {
		return 0
	}
	return l.max - count
}
