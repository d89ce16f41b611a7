package sink

import (
	"context"
	"time"

	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/logger"

	"golang.org/x/sync/errgroup"
)

// Policy decides when an aggregate persistence attempt counts as accepted.
type Policy string

const (
	// PolicyPrimary requires the designated primary sink to succeed. The
	// primary is authoritative for the record identifier.
	PolicyPrimary Policy = "primary"
	// PolicyAny accepts the submission when at least one sink succeeded.
	PolicyAny Policy = "any"
)

// Outcome is the per-sink result of one fan-out attempt.
type Outcome struct {
	Sink     string
	OK       bool
	Err      error
	RecordID string
}

// PersistResult aggregates the outcome of writing one record to every
// configured sink.
type PersistResult struct {
	Outcomes []Outcome
	// RecordID is the identifier issued by the primary sink, when any.
	RecordID string
}

// Accepted reports whether the result satisfies the given policy.
func (r PersistResult) Accepted(policy Policy, primary string) bool {
	for _, o := range r.Outcomes {
		switch policy {
		case PolicyAny:
			if o.OK {
				return true
			}
		default:
			if o.Sink == primary {
				return o.OK
			}
		}
	}
	return false
}

// Failures returns the outcomes that did not succeed.
func (r PersistResult) Failures() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if !o.OK {
			failed = append(failed, o)
		}
	}
	return failed
}

// Coordinator writes one record to every configured sink. Sink failures
// are isolated: every sink is attempted regardless of sibling failures,
// nothing is rolled back, and the aggregate is reported to the caller.
type Coordinator struct {
	sinks   []Sink
	primary string
	timeout time.Duration
	log     *logger.Logger
}

// NewCoordinator creates a Coordinator over the given sinks. The first
// sink is the primary. timeout bounds each individual sink write; zero
// disables the bound.
func NewCoordinator(sinks []Sink, timeout time.Duration, log *logger.Logger) *Coordinator {
	primary := ""
	if len(sinks) > 0 {
		primary = sinks[0].Name()
	}
	return &Coordinator{sinks: sinks, primary: primary, timeout: timeout, log: log}
}

// Primary returns the name of the designated primary sink.
func (c *Coordinator) Primary() string {
	return c.primary
}

// Persist attempts every sink concurrently and joins on all attempts
// before returning the aggregate result. There is no cross-sink ordering
// or consistency: sinks may record the request at different times or not
// at all.
func (c *Coordinator) Persist(ctx context.Context, record quote.Record) PersistResult {
	outcomes := make([]Outcome, len(c.sinks))

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range c.sinks {
		i, s := i, s
		g.Go(func() error {
			writeCtx := gctx
			if c.timeout > 0 {
				var cancel context.CancelFunc
				writeCtx, cancel = context.WithTimeout(gctx, c.timeout)
				defer cancel()
			}

			result, err := s.Write(writeCtx, record)
			if err != nil {
				c.log.SinkError(s.Name(), err)
				outcomes[i] = Outcome{Sink: s.Name(), Err: err}
				// Returning nil keeps the group alive so sibling sinks
				// still run to completion.
				return nil
			}
			outcomes[i] = Outcome{Sink: s.Name(), OK: true, RecordID: result.RecordID}
			return nil
		})
	}
	_ = g.Wait()

	aggregate := PersistResult{Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Sink == c.primary && o.OK {
			aggregate.RecordID = o.RecordID
		}
	}
	return aggregate
}
