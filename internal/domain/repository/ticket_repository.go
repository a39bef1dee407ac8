package repository

import (
	"context"

	"ticketdesk-service/internal/domain/entity"
)

// TicketRepository defines the interface for ticket storage operations.
// Every method is scoped to one exhibition's collection.
type TicketRepository interface {
	// Insert stores a single ticket. Returns
	// apperrors.ErrTicketNumberTaken on a duplicate ticket number.
	Insert(ctx context.Context, exhibition string, ticket *entity.Ticket) error

	// InsertMany stores tickets in order, stopping at the first
	// uniqueness conflict. Returns the number of documents actually
	// inserted; on conflict the error is *apperrors.PartialInsertError.
	InsertMany(ctx context.Context, exhibition string, tickets []*entity.Ticket) (int, error)

	// List returns every ticket in the exhibition's collection.
	List(ctx context.Context, exhibition string) ([]*entity.Ticket, error)

	// SetVerified updates the verification flag of the ticket with the
	// given number. Matching nothing is not an error.
	SetVerified(ctx context.Context, exhibition, ticketNumber string, verified bool) error

	// DeleteOne deletes the ticket with the given number, returning the
	// number of documents removed (0 or 1).
	DeleteOne(ctx context.Context, exhibition, ticketNumber string) (int64, error)

	// DeleteMany deletes every ticket whose number is in ticketNumbers,
	// returning the number of documents removed.
	DeleteMany(ctx context.Context, exhibition string, ticketNumbers []string) (int64, error)
}
