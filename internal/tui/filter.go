package tui

import (
	"encoding/json"
	"strings"

	"ticketdesk-service/internal/domain/entity"

	"github.com/charmbracelet/lipgloss"
)

// FilterModel narrows the active exhibition's table by case-insensitive
// substring match against the whole serialized ticket record, so a
// query can hit any field: number, client, operator, type, notes, or
// date. The filter is purely client-side; it never round-trips to the
// server.
type FilterModel struct {
	// Input is the current filter query text.
	Input string

	// Active is true when the filter input has keyboard focus.
	Active bool
}

// Matches returns true if the ticket matches the current filter. An
// empty filter matches everything.
func (filter *FilterModel) Matches(ticket *entity.Ticket) bool {
	if filter.Input == "" {
		return true
	}
	serialized, err := json.Marshal(ticket)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(serialized)), strings.ToLower(filter.Input))
}

// Apply filters a ticket slice, returning only the matching records
func (filter *FilterModel) Apply(tickets []*entity.Ticket) []*entity.Ticket {
	if filter.Input == "" {
		return tickets
	}
	var result []*entity.Ticket
	for _, ticket := range tickets {
		if filter.Matches(ticket) {
			result = append(result, ticket)
		}
	}
	return result
}

// HandleRune appends a typed character to the filter input
func (filter *FilterModel) HandleRune(character rune) {
	filter.Input += string(character)
}

// HandleBackspace removes the last character from the filter input
func (filter *FilterModel) HandleBackspace() {
	if len(filter.Input) == 0 {
		return
	}
	runes := []rune(filter.Input)
	filter.Input = string(runes[:len(runes)-1])
}

// Clear resets the filter input and deactivates it
func (filter *FilterModel) Clear() {
	filter.Input = ""
	filter.Active = false
}

// View renders the filter bar. Hidden when inactive and empty.
func (filter *FilterModel) View(theme Theme) string {
	if !filter.Active && filter.Input == "" {
		return ""
	}
	if filter.Active {
		cursor := lipgloss.NewStyle().Bold(true).Render("▎")
		return theme.StatusBar.Render(" / " + filter.Input + cursor)
	}
	return theme.Help.Render(" filter: " + filter.Input)
}
