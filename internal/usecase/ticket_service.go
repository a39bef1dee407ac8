package usecase

import (
	"context"
	"time"

	"ticketdesk-service/internal/domain/entity"
	"ticketdesk-service/internal/domain/repository"
	"ticketdesk-service/pkg/apperrors"
	"ticketdesk-service/pkg/logger"
	"ticketdesk-service/pkg/metrics"
)

// TicketService exposes the ticket lifecycle operations, each scoped to
// the exhibition named in the request
type TicketService interface {
	Create(ctx context.Context, exhibition string, ticket *entity.Ticket) error
	CreateBatch(ctx context.Context, exhibition string, tickets []*entity.Ticket) (int, error)
	List(ctx context.Context, exhibition string) ([]*entity.Ticket, error)
	SetVerified(ctx context.Context, exhibition, ticketNumber string, verified bool) error
	Delete(ctx context.Context, exhibition, ticketNumber string) error
	DeleteBatch(ctx context.Context, exhibition string, ticketNumbers []string) (int64, error)
}

type ticketService struct {
	repo    repository.TicketRepository
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewTicketService creates a new ticket service
func NewTicketService(repo repository.TicketRepository, logger logger.Logger, metrics *metrics.Metrics) TicketService {
	return &ticketService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
	}
}

// normalize fills server-side defaults: issuance date falls back to the
// time of creation, and a freshly created ticket is never verified.
func normalize(ticket *entity.Ticket) {
	if ticket.Date.IsZero() {
		ticket.Date = time.Now()
	}
	ticket.Verified = false
}

// Create inserts a single ticket
func (s *ticketService) Create(ctx context.Context, exhibition string, ticket *entity.Ticket) error {
	normalize(ticket)
	if err := s.repo.Insert(ctx, exhibition, ticket); err != nil {
		return err
	}
	s.metrics.TicketsCreated.Inc()
	s.logger.Info("Ticket created", "exhibition", exhibition, "ticketNumber", ticket.TicketNumber)
	return nil
}

// CreateBatch inserts tickets in order. On a uniqueness conflict the
// already-inserted prefix stays persisted; the caller is told how many
// made it in so the operator can reconcile.
func (s *ticketService) CreateBatch(ctx context.Context, exhibition string, tickets []*entity.Ticket) (int, error) {
	for _, ticket := range tickets {
		normalize(ticket)
	}
	inserted, err := s.repo.InsertMany(ctx, exhibition, tickets)
	if inserted > 0 {
		s.metrics.TicketsCreated.Add(float64(inserted))
	}
	if err != nil {
		return inserted, err
	}
	s.logger.Info("Ticket batch created", "exhibition", exhibition, "count", inserted)
	return inserted, nil
}

// List returns the exhibition's full ticket list
func (s *ticketService) List(ctx context.Context, exhibition string) ([]*entity.Ticket, error) {
	return s.repo.List(ctx, exhibition)
}

// SetVerified sets the verification flag on a ticket. The operation is
// an idempotent set; a number matching nothing still succeeds.
func (s *ticketService) SetVerified(ctx context.Context, exhibition, ticketNumber string, verified bool) error {
	if err := s.repo.SetVerified(ctx, exhibition, ticketNumber, verified); err != nil {
		return err
	}
	s.metrics.TicketsVerified.Inc()
	s.logger.Info("Ticket verification updated", "exhibition", exhibition, "ticketNumber", ticketNumber, "verified", verified)
	return nil
}

// Delete removes a single ticket. Matching no document is a request
// error: the operator named a ticket that is not there. A match count
// above one cannot happen while the unique index holds.
func (s *ticketService) Delete(ctx context.Context, exhibition, ticketNumber string) error {
	deleted, err := s.repo.DeleteOne(ctx, exhibition, ticketNumber)
	if err != nil {
		return err
	}
	if deleted != 1 {
		return apperrors.ErrTicketNotFound
	}
	s.metrics.TicketsDeleted.Inc()
	s.logger.Info("Ticket deleted", "exhibition", exhibition, "ticketNumber", ticketNumber)
	return nil
}

// DeleteBatch removes every ticket in ticketNumbers that exists,
// succeeding regardless of how many matched
func (s *ticketService) DeleteBatch(ctx context.Context, exhibition string, ticketNumbers []string) (int64, error) {
	deleted, err := s.repo.DeleteMany(ctx, exhibition, ticketNumbers)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.metrics.TicketsDeleted.Add(float64(deleted))
	}
	s.logger.Info("Ticket batch deleted", "exhibition", exhibition, "requested", len(ticketNumbers), "deleted", deleted)
	return deleted, nil
}
