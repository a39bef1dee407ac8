package entity

import (
	"time"
)

// Ticket is one paper ticket issued to a client, tracked until it is
// redeemed. Tickets live in one collection per exhibition; the
// exhibition name is duplicated onto the document for display and
// filtering.
type Ticket struct {
	ID           string    `bson:"_id,omitempty" json:"-"`
	TicketNumber string    `bson:"ticketNumber" json:"ticketNumber"` // unique per exhibition collection
	Exhibition   string    `bson:"exhibition" json:"exhibition"`
	Date         time.Time `bson:"date" json:"date"`
	Operator     string    `bson:"operator" json:"operator"`
	Client       string    `bson:"client" json:"client"`
	Type         string    `bson:"type" json:"type"`
	Notes        string    `bson:"notes" json:"notes"`
	Verified     bool      `bson:"verified" json:"verified"`
}
