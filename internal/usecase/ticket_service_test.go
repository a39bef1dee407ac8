package usecase

import (
	"context"
	"testing"
	"time"

	"ticketdesk-service/internal/domain/entity"
	"ticketdesk-service/pkg/apperrors"
	"ticketdesk-service/pkg/logger"
	"ticketdesk-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTicketRepo is an in-memory TicketRepository with the same
// conflict semantics as the mongo implementation: unique ticket numbers
// per exhibition, ordered batch insert stopping at the first duplicate.
type fakeTicketRepo struct {
	store   map[string]map[string]*entity.Ticket
	failAll error
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{store: make(map[string]map[string]*entity.Ticket)}
}

func (r *fakeTicketRepo) collection(exhibition string) map[string]*entity.Ticket {
	if r.store[exhibition] == nil {
		r.store[exhibition] = make(map[string]*entity.Ticket)
	}
	return r.store[exhibition]
}

func (r *fakeTicketRepo) Insert(ctx context.Context, exhibition string, ticket *entity.Ticket) error {
	if r.failAll != nil {
		return r.failAll
	}
	coll := r.collection(exhibition)
	if _, exists := coll[ticket.TicketNumber]; exists {
		return apperrors.ErrTicketNumberTaken
	}
	copied := *ticket
	copied.Exhibition = exhibition
	coll[ticket.TicketNumber] = &copied
	return nil
}

func (r *fakeTicketRepo) InsertMany(ctx context.Context, exhibition string, tickets []*entity.Ticket) (int, error) {
	if r.failAll != nil {
		return 0, r.failAll
	}
	coll := r.collection(exhibition)
	for i, ticket := range tickets {
		if _, exists := coll[ticket.TicketNumber]; exists {
			return i, &apperrors.PartialInsertError{Inserted: i}
		}
		copied := *ticket
		copied.Exhibition = exhibition
		coll[ticket.TicketNumber] = &copied
	}
	return len(tickets), nil
}

func (r *fakeTicketRepo) List(ctx context.Context, exhibition string) ([]*entity.Ticket, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	var tickets []*entity.Ticket
	for _, ticket := range r.collection(exhibition) {
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

func (r *fakeTicketRepo) SetVerified(ctx context.Context, exhibition, ticketNumber string, verified bool) error {
	if r.failAll != nil {
		return r.failAll
	}
	if ticket, exists := r.collection(exhibition)[ticketNumber]; exists {
		ticket.Verified = verified
	}
	return nil
}

func (r *fakeTicketRepo) DeleteOne(ctx context.Context, exhibition, ticketNumber string) (int64, error) {
	if r.failAll != nil {
		return 0, r.failAll
	}
	coll := r.collection(exhibition)
	if _, exists := coll[ticketNumber]; !exists {
		return 0, nil
	}
	delete(coll, ticketNumber)
	return 1, nil
}

func (r *fakeTicketRepo) DeleteMany(ctx context.Context, exhibition string, ticketNumbers []string) (int64, error) {
	if r.failAll != nil {
		return 0, r.failAll
	}
	coll := r.collection(exhibition)
	var deleted int64
	for _, number := range ticketNumbers {
		if _, exists := coll[number]; exists {
			delete(coll, number)
			deleted++
		}
	}
	return deleted, nil
}

func newTestService(repo *fakeTicketRepo) TicketService {
	m := metrics.NewMetrics("test", prometheus.NewRegistry())
	return NewTicketService(repo, logger.NewNop(), m)
}

func ticketFixture(number string) *entity.Ticket {
	return &entity.Ticket{
		TicketNumber: number,
		Operator:     "A",
		Client:       "B",
		Type:         "adult",
	}
}

func TestCreate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := newFakeTicketRepo()
		service := newTestService(repo)

		ticket := ticketFixture("00001")
		ticket.Verified = true // create must never mint a verified ticket

		require.NoError(t, service.Create(context.Background(), "japan", ticket))

		tickets, err := service.List(context.Background(), "japan")
		require.NoError(t, err)
		require.Len(t, tickets, 1)
		assert.Equal(t, "00001", tickets[0].TicketNumber)
		assert.Equal(t, "japan", tickets[0].Exhibition)
		assert.False(t, tickets[0].Verified)
		assert.False(t, tickets[0].Date.IsZero(), "date should default to creation time")
	})

	t.Run("Failed - duplicate ticket number", func(t *testing.T) {
		repo := newFakeTicketRepo()
		service := newTestService(repo)

		require.NoError(t, service.Create(context.Background(), "japan", ticketFixture("00001")))
		err := service.Create(context.Background(), "japan", ticketFixture("00001"))
		assert.ErrorIs(t, err, apperrors.ErrTicketNumberTaken)
	})

	t.Run("Same number in another exhibition is fine", func(t *testing.T) {
		repo := newFakeTicketRepo()
		service := newTestService(repo)

		require.NoError(t, service.Create(context.Background(), "japan", ticketFixture("00001")))
		require.NoError(t, service.Create(context.Background(), "chagall", ticketFixture("00001")))
	})

	t.Run("Keeps a client-supplied date", func(t *testing.T) {
		repo := newFakeTicketRepo()
		service := newTestService(repo)

		issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		ticket := ticketFixture("00002")
		ticket.Date = issued
		require.NoError(t, service.Create(context.Background(), "japan", ticket))

		tickets, err := service.List(context.Background(), "japan")
		require.NoError(t, err)
		require.Len(t, tickets, 1)
		assert.True(t, tickets[0].Date.Equal(issued))
	})
}

func TestCreateBatch(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := newFakeTicketRepo()
		service := newTestService(repo)

		batch := []*entity.Ticket{ticketFixture("00010"), ticketFixture("00011"), ticketFixture("00012")}
		inserted, err := service.CreateBatch(context.Background(), "japan", batch)
		require.NoError(t, err)
		assert.Equal(t, 3, inserted)
	})

	t.Run("Failed - conflict mid-batch keeps the prefix", func(t *testing.T) {
		repo := newFakeTicketRepo()
		service := newTestService(repo)

		// The 3rd document of 5 collides: exactly 2 must persist.
		require.NoError(t, service.Create(context.Background(), "japan", ticketFixture("00012")))

		batch := []*entity.Ticket{
			ticketFixture("00010"),
			ticketFixture("00011"),
			ticketFixture("00012"),
			ticketFixture("00013"),
			ticketFixture("00014"),
		}
		inserted, err := service.CreateBatch(context.Background(), "japan", batch)

		var partial *apperrors.PartialInsertError
		require.ErrorAs(t, err, &partial)
		assert.Equal(t, 2, partial.Inserted)
		assert.Equal(t, 2, inserted)

		tickets, listErr := service.List(context.Background(), "japan")
		require.NoError(t, listErr)
		assert.Len(t, tickets, 3) // the pre-existing ticket plus the prefix

		numbers := make(map[string]bool)
		for _, ticket := range tickets {
			numbers[ticket.TicketNumber] = true
		}
		assert.True(t, numbers["00010"])
		assert.True(t, numbers["00011"])
		assert.False(t, numbers["00013"], "documents after the conflict must not persist")
		assert.False(t, numbers["00014"], "documents after the conflict must not persist")
	})
}

func TestSetVerified(t *testing.T) {
	t.Run("Idempotent", func(t *testing.T) {
		repo := newFakeTicketRepo()
		service := newTestService(repo)

		require.NoError(t, service.Create(context.Background(), "japan", ticketFixture("00001")))

		require.NoError(t, service.SetVerified(context.Background(), "japan", "00001", true))
		require.NoError(t, service.SetVerified(context.Background(), "japan", "00001", true))

		tickets, err := service.List(context.Background(), "japan")
		require.NoError(t, err)
		require.Len(t, tickets, 1)
		assert.True(t, tickets[0].Verified)
	})

	t.Run("No match still succeeds", func(t *testing.T) {
		repo := newFakeTicketRepo()
		service := newTestService(repo)

		assert.NoError(t, service.SetVerified(context.Background(), "japan", "99999", true))
	})
}

func TestDelete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := newFakeTicketRepo()
		service := newTestService(repo)

		require.NoError(t, service.Create(context.Background(), "japan", ticketFixture("00001")))
		require.NoError(t, service.Delete(context.Background(), "japan", "00001"))

		tickets, err := service.List(context.Background(), "japan")
		require.NoError(t, err)
		assert.Empty(t, tickets)
	})

	t.Run("Failed - no match", func(t *testing.T) {
		repo := newFakeTicketRepo()
		service := newTestService(repo)

		err := service.Delete(context.Background(), "japan", "00001")
		assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
	})
}

func TestDeleteBatch(t *testing.T) {
	t.Run("Deletes matches regardless of count", func(t *testing.T) {
		repo := newFakeTicketRepo()
		service := newTestService(repo)

		require.NoError(t, service.Create(context.Background(), "japan", ticketFixture("00001")))
		require.NoError(t, service.Create(context.Background(), "japan", ticketFixture("00002")))

		deleted, err := service.DeleteBatch(context.Background(), "japan", []string{"00001", "00002", "77777"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		tickets, listErr := service.List(context.Background(), "japan")
		require.NoError(t, listErr)
		assert.Empty(t, tickets)
	})
}
