package sink

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/logger"
)

type stubSink struct {
	name   string
	id     string
	err    error
	delay  time.Duration
	writes atomic.Int64
}

func (s *stubSink) Name() string { return s.name }

func (s *stubSink) Write(ctx context.Context, record quote.Record) (WriteResult, error) {
	s.writes.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return WriteResult{}, ctx.Err()
		}
	}
	if s.err != nil {
		return WriteResult{}, s.err
	}
	return WriteResult{RecordID: s.id}, nil
}

func testLog() *logger.Logger { return logger.New("test") }

func TestPersistAllSucceed(t *testing.T) {
	primary := &stubSink{name: "postgres", id: "abc-123"}
	secondary := &stubSink{name: "sheets"}
	c := NewCoordinator([]Sink{primary, secondary}, time.Second, testLog())

	result := c.Persist(context.Background(), quote.Record{Name: "Raj Patel"})

	if len(result.Outcomes) != 2 {
		t.Fatalf("outcomes = %d, want 2", len(result.Outcomes))
	}
	for _, o := range result.Outcomes {
		if !o.OK {
			t.Fatalf("sink %s failed: %v", o.Sink, o.Err)
		}
	}
	if result.RecordID != "abc-123" {
		t.Fatalf("record ID = %q, want abc-123", result.RecordID)
	}
}

func TestPersistFailureIsolated(t *testing.T) {
	primary := &stubSink{name: "postgres", id: "abc-123"}
	failing := &stubSink{name: "sheets", err: errors.New("api quota exceeded")}
	c := NewCoordinator([]Sink{primary, failing}, time.Second, testLog())

	result := c.Persist(context.Background(), quote.Record{})

	if primary.writes.Load() != 1 || failing.writes.Load() != 1 {
		t.Fatal("every sink must be attempted")
	}

	var okSinks, failedSinks []string
	for _, o := range result.Outcomes {
		if o.OK {
			okSinks = append(okSinks, o.Sink)
		} else {
			failedSinks = append(failedSinks, o.Sink)
		}
	}
	if len(okSinks) != 1 || okSinks[0] != "postgres" {
		t.Fatalf("ok sinks = %v", okSinks)
	}
	if len(failedSinks) != 1 || failedSinks[0] != "sheets" {
		t.Fatalf("failed sinks = %v", failedSinks)
	}
	if len(result.Failures()) != 1 {
		t.Fatalf("Failures() = %v", result.Failures())
	}
}

func TestAcceptedPolicyPrimary(t *testing.T) {
	ok := Outcome{Sink: "postgres", OK: true, RecordID: "x"}
	failed := Outcome{Sink: "sheets", Err: errors.New("down")}

	r := PersistResult{Outcomes: []Outcome{ok, failed}}
	if !r.Accepted(PolicyPrimary, "postgres") {
		t.Fatal("primary succeeded, must be accepted")
	}

	r = PersistResult{Outcomes: []Outcome{{Sink: "postgres", Err: errors.New("down")}, {Sink: "sheets", OK: true}}}
	if r.Accepted(PolicyPrimary, "postgres") {
		t.Fatal("primary failed, must not be accepted under primary policy")
	}
}

func TestAcceptedPolicyAny(t *testing.T) {
	r := PersistResult{Outcomes: []Outcome{
		{Sink: "postgres", Err: errors.New("down")},
		{Sink: "sheets", OK: true},
	}}
	if !r.Accepted(PolicyAny, "postgres") {
		t.Fatal("one sink succeeded, must be accepted under any policy")
	}

	r = PersistResult{Outcomes: []Outcome{
		{Sink: "postgres", Err: errors.New("down")},
		{Sink: "sheets", Err: errors.New("down")},
	}}
	if r.Accepted(PolicyAny, "postgres") {
		t.Fatal("all sinks failed, must not be accepted")
	}
}

func TestPersistSinkTimeout(t *testing.T) {
	slow := &stubSink{name: "postgres", id: "x", delay: 200 * time.Millisecond}
	fast := &stubSink{name: "sheets", id: ""}
	c := NewCoordinator([]Sink{slow, fast}, 20*time.Millisecond, testLog())

	result := c.Persist(context.Background(), quote.Record{})

	for _, o := range result.Outcomes {
		switch o.Sink {
		case "postgres":
			if o.OK {
				t.Fatal("slow sink should have timed out")
			}
		case "sheets":
			if !o.OK {
				t.Fatalf("fast sink failed: %v", o.Err)
			}
		}
	}
}

func TestPersistNoSinks(t *testing.T) {
	c := NewCoordinator(nil, time.Second, testLog())
	result := c.Persist(context.Background(), quote.Record{})
	if len(result.Outcomes) != 0 {
		t.Fatalf("outcomes = %v", result.Outcomes)
	}
	if result.Accepted(PolicyAny, c.Primary()) {
		t.Fatal("no sinks must never be accepted")
	}
}
