package tui

import (
	"context"
	"time"

	"ticketdesk-service/internal/client"
	"ticketdesk-service/internal/domain/entity"

	tea "github.com/charmbracelet/bubbletea"
)

// requestTimeout bounds every API call made from the message loop
const requestTimeout = 10 * time.Second

// ticketsLoadedMsg delivers one exhibition's refreshed ticket list
type ticketsLoadedMsg struct {
	exhibition string
	tickets    []*entity.Ticket
	err        error
}

// mutationDoneMsg reports the outcome of a create/verify/delete call.
// The affected exhibition is refetched regardless of outcome: a failed
// batch insert may still have persisted a prefix.
type mutationDoneMsg struct {
	exhibition string
	action     string
	batch      bool
	count      int
	err        error
}

// loginDoneMsg reports the outcome of the auth exchange
type loginDoneMsg struct {
	token string
	err   error
}

func (m *Model) fetchTickets(exhibition string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		tickets, err := m.api.ListTickets(ctx, exhibition)
		return ticketsLoadedMsg{exhibition: exhibition, tickets: tickets, err: err}
	}
}

// fetchAll loads every exhibition's list in parallel
func (m *Model) fetchAll() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.exhibitions))
	for _, exhibition := range m.exhibitions {
		cmds = append(cmds, m.fetchTickets(exhibition))
	}
	return tea.Batch(cmds...)
}

func (m *Model) login(password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		token, err := m.api.Login(ctx, password)
		return loginDoneMsg{token: token, err: err}
	}
}

func (m *Model) createTickets(exhibition string, documents []client.TicketInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if len(documents) == 1 {
			err := m.api.CreateTicket(ctx, exhibition, documents[0])
			return mutationDoneMsg{exhibition: exhibition, action: "create", count: 1, err: err}
		}
		err := m.api.CreateTickets(ctx, exhibition, documents)
		return mutationDoneMsg{exhibition: exhibition, action: "create", batch: true, count: len(documents), err: err}
	}
}

func (m *Model) verifyTicket(exhibition, ticketNumber string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := m.api.SetVerified(ctx, exhibition, ticketNumber, true)
		return mutationDoneMsg{exhibition: exhibition, action: "verify", count: 1, err: err}
	}
}

func (m *Model) deleteTicket(exhibition, ticketNumber string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := m.api.DeleteTicket(ctx, exhibition, ticketNumber)
		return mutationDoneMsg{exhibition: exhibition, action: "delete", count: 1, err: err}
	}
}

func (m *Model) deleteTickets(exhibition string, ticketNumbers []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := m.api.DeleteTickets(ctx, exhibition, ticketNumbers)
		return mutationDoneMsg{exhibition: exhibition, action: "delete", batch: true, count: len(ticketNumbers), err: err}
	}
}
