package sink

import (
	"context"

	"github.com/google/uuid"

	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote"
)

// RecordInserter is the slice of the quote repository the relational sink
// needs.
type RecordInserter interface {
	Insert(ctx context.Context, record quote.Record) (uuid.UUID, error)
}

// PostgresSink adapts the quote repository to the Sink capability. As the
// relational store it issues the record identifier.
type PostgresSink struct {
	inserter RecordInserter
}

// NewPostgresSink wraps the given repository.
func NewPostgresSink(inserter RecordInserter) *PostgresSink {
	return &PostgresSink{inserter: inserter}
}

// Name identifies the sink in persistence outcomes.
func (s *PostgresSink) Name() string { return "postgres" }

// Write inserts the record and reports the issued identifier.
func (s *PostgresSink) Write(ctx context.Context, record quote.Record) (WriteResult, error) {
	id, err := s.inserter.Insert(ctx, record)
	if err != nil {
		return WriteResult{}, err
	}
	return WriteResult{RecordID: id.String()}, nil
}

var _ Sink = (*PostgresSink)(nil)
