package client

import (
	"errors"
	"fmt"
	"strconv"

	"ticketdesk-service/pkg/utils"
)

// Serial range expansion is the desk client's job: the server takes a
// pre-expanded document list, because printed ticket books are sold in
// contiguous zero-padded blocks and the range is a data-entry
// convenience, not a storage concept.

var (
	// ErrSerialBounds means a range bound is not a ticket number of
	// the expected numeric form.
	ErrSerialBounds = errors.New("serial bounds must be numeric ticket numbers")
	// ErrSerialOrder means the range start exceeds its end.
	ErrSerialOrder = errors.New("serial range start must not exceed end")
)

// maxSerialRange caps one serial entry at a full ticket book's worth of
// numbers; anything larger is a typo.
const maxSerialRange = 1000

// ExpandSerial expands an inclusive ticket number range into the
// ordered, zero-padded list the batch insert endpoint expects.
func ExpandSerial(start, end string) ([]string, error) {
	first, err := parseSerialBound(start)
	if err != nil {
		return nil, err
	}
	last, err := parseSerialBound(end)
	if err != nil {
		return nil, err
	}
	if first > last {
		return nil, ErrSerialOrder
	}
	if last-first+1 > maxSerialRange {
		return nil, fmt.Errorf("serial range spans %d tickets, limit is %d", last-first+1, maxSerialRange)
	}

	numbers := make([]string, 0, last-first+1)
	for n := first; n <= last; n++ {
		numbers = append(numbers, utils.PadTicketNumber(strconv.Itoa(n)))
	}
	return numbers, nil
}

func parseSerialBound(value string) (int, error) {
	if value == "" || len(value) > utils.TicketNumberWidth {
		return 0, ErrSerialBounds
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, ErrSerialBounds
	}
	return n, nil
}
