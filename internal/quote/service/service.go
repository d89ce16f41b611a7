// Package service orchestrates the quote intake pipeline and the admin
// operations over stored quotes.
package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/events"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote/repository"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/sink"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/apperr"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/logger"
)

const submitFailedMessage = "Failed to submit quote request. Please try again or contact us directly."

// AdminStore is the slice of the repository the admin surface needs.
type AdminStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (repository.StoredQuote, error)
	List(ctx context.Context, params repository.ListParams) ([]repository.StoredQuote, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status quote.Status) (repository.StoredQuote, error)
	Analytics(ctx context.Context) (repository.Analytics, error)
	ExportAll(ctx context.Context) ([]repository.StoredQuote, error)
}

// Service runs submissions through the intake pipeline and serves the
// admin queries. The store is nil when no database is configured; admin
// operations then report the backend as unavailable.
type Service struct {
	builder     *quote.Builder
	coordinator *sink.Coordinator
	policy      sink.Policy
	bus         events.Bus
	store       AdminStore
	log         *logger.Logger
}

func New(builder *quote.Builder, coordinator *sink.Coordinator, policy sink.Policy, bus events.Bus, store AdminStore, log *logger.Logger) *Service {
	return &Service{
		builder:     builder,
		coordinator: coordinator,
		policy:      policy,
		bus:         bus,
		store:       store,
		log:         log,
	}
}

// Submit validates and persists a quote request, then fires the
// notification event. Nothing is persisted and no event fires when
// validation fails; notification is fired only after the persistence
// policy is satisfied.
func (s *Service) Submit(ctx context.Context, in quote.Submission) (quote.Record, error) {
	record, err := s.builder.Build(in)
	if err != nil {
		return quote.Record{}, err
	}

	result := s.coordinator.Persist(ctx, record)
	if !result.Accepted(s.policy, s.coordinator.Primary()) {
		return quote.Record{}, apperr.Unavailable(submitFailedMessage)
	}
	record.ID = result.RecordID

	s.bus.Publish(ctx, events.QuoteSubmitted{
		BaseEvent: events.NewBaseEvent(),
		Record:    record,
	})

	return record, nil
}

func (s *Service) GetQuote(ctx context.Context, id uuid.UUID) (repository.StoredQuote, error) {
	store, err := s.adminStore()
	if err != nil {
		return repository.StoredQuote{}, err
	}
	return store.GetByID(ctx, id)
}

func (s *Service) ListQuotes(ctx context.Context, params repository.ListParams) ([]repository.StoredQuote, int, error) {
	store, err := s.adminStore()
	if err != nil {
		return nil, 0, err
	}
	if params.Status != "" && !quote.ValidStatus(params.Status) {
		return nil, 0, apperr.BadRequest("Invalid status filter")
	}
	return store.List(ctx, params)
}

// UpdateQuoteStatus moves a quote through the sales workflow.
func (s *Service) UpdateQuoteStatus(ctx context.Context, id uuid.UUID, status quote.Status) (repository.StoredQuote, error) {
	store, err := s.adminStore()
	if err != nil {
		return repository.StoredQuote{}, err
	}
	if !quote.ValidStatus(status) {
		return repository.StoredQuote{}, apperr.BadRequest("Invalid status. Must be one of: pending, contacted, quoted, converted, rejected")
	}
	return store.UpdateStatus(ctx, id, status)
}

func (s *Service) Analytics(ctx context.Context) (repository.Analytics, error) {
	store, err := s.adminStore()
	if err != nil {
		return repository.Analytics{}, err
	}
	return store.Analytics(ctx)
}

func (s *Service) ExportQuotes(ctx context.Context) ([]repository.StoredQuote, error) {
	store, err := s.adminStore()
	if err != nil {
		return nil, err
	}
	return store.ExportAll(ctx)
}

func (s *Service) adminStore() (AdminStore, error) {
	if s.store == nil {
		return nil, apperr.Unavailable("Database not configured")
	}
	return s.store, nil
}
