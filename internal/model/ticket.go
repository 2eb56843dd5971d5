package model

import "time"

// TicketType is the admission tier of a ticket.
type TicketType string

const (
	TicketSingle TicketType = "SINGLE"
	TicketFamily TicketType = "FAMILY"
)

// Static price list. A ticket keeps the price it was bought at.
const (
	SingleTicketPrice = 50.00
	FamilyTicketPrice = 120.00
)

// ParseTicketType maps the requested type onto a tier. Only the exact
// string "FAMILY" selects the family tier; anything else, including an
// empty or misspelled value, is a single ticket.
func ParseTicketType(s string) TicketType {
	if TicketType(s) == TicketFamily {
		return TicketFamily
	}
	return TicketSingle
}

// Price looks up the static price of the tier.
func (t TicketType) Price() float64 {
	if t == TicketFamily {
		return FamilyTicketPrice
	}
	return SingleTicketPrice
}

// Ticket records one admission purchase.
//
// Fields:
//  ID         – UUID primary key.
//  UserID     – owner of the ticket.
//  TicketDate – day of the visit.
//  Type       – SINGLE or FAMILY.
//  Price      – price frozen at purchase time.
//  CreatedAt  – purchase timestamp (UTC).
type Ticket struct {
	ID         string     `db:"id" json:"id"`                  // tickets.id
	UserID     string     `db:"user_id" json:"userId"`         // tickets.user_id
	TicketDate time.Time  `db:"ticket_date" json:"ticketDate"` // tickets.ticket_date
	Type       TicketType `db:"type" json:"type"`              // tickets.type
	Price      float64    `db:"price" json:"price"`            // tickets.price
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`   // tickets.created_at
}
