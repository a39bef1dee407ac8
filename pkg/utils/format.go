package utils

import (
	"strings"
	"time"
)

// TicketNumberWidth is the display width paper ticket numbers are
// zero-padded to, matching the printed ticket books.
const TicketNumberWidth = 5

// PadTicketNumber left-pads a numeric ticket number with zeros to the
// standard width. Non-numeric values are returned unchanged.
func PadTicketNumber(value string) string {
	if value == "" {
		return value
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return value
		}
	}
	if len(value) >= TicketNumberWidth {
		return value
	}
	return strings.Repeat("0", TicketNumberWidth-len(value)) + value
}

// ticketDateLayouts are the accepted issuance date formats: full
// RFC3339 timestamps from the desk client and bare dates typed by hand.
var ticketDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// ParseTicketDate parses a client-supplied issuance date. An empty
// string parses to the zero time; callers default that to "now".
func ParseTicketDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	var lastErr error
	for _, layout := range ticketDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
