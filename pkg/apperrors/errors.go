package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrTicketNumberTaken is returned when an insert hits the unique
	// ticketNumber index.
	ErrTicketNumberTaken = errors.New("ticket number already used")
	// ErrTicketNotFound is returned when a single-ticket delete matches
	// no stored document.
	ErrTicketNotFound = errors.New("ticket not found")
	// ErrUnknownExhibition is returned for requests naming an exhibition
	// outside the configured set.
	ErrUnknownExhibition = errors.New("exhibition not specified or not found")
)

// PartialInsertError reports an ordered batch insert that stopped at a
// uniqueness conflict. Inserted is the number of documents persisted
// before the conflicting one; because the insert is ordered, everything
// after it was never attempted.
type PartialInsertError struct {
	Inserted int
}

func (e *PartialInsertError) Error() string {
	return fmt.Sprintf("batch insert conflict: %d documents inserted before the first duplicate ticket number", e.Inserted)
}
