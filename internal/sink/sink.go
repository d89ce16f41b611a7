// Package sink defines the append-only persistence capability consumed by
// the intake pipeline and the coordinator that fans a record out to every
// configured sink with per-sink failure isolation.
package sink

import (
	"context"

	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote"
)

// WriteResult carries sink-specific output of a successful write.
type WriteResult struct {
	// RecordID is set by sinks that issue identifiers (the relational
	// sink); row-append sinks leave it empty.
	RecordID string
}

// Sink durably records a quote. Implementations must be safe for
// concurrent use and honor ctx cancellation/deadlines.
type Sink interface {
	Name() string
	Write(ctx context.Context, record quote.Record) (WriteResult, error)
}
