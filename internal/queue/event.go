// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/iliyamo/themepark/internal/model"
)

// Queue names. Each event type has its own durable queue.
const (
	TicketPurchasedQueue = "ticket.purchased"
	BookingCreatedQueue  = "booking.created"
)

// Event is anything that can be published. QueueName doubles as the
// routing key on the default exchange.
type Event interface {
	QueueName() string
}

// TicketPurchasedEvent is published after a ticket has been persisted.
// It carries enough for a downstream consumer to send a confirmation
// without reading the primary database.
type TicketPurchasedEvent struct {
	TicketID    string  `json:"ticket_id"`
	UserID      string  `json:"user_id"`
	TicketDate  string  `json:"ticket_date"`
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	PurchasedAt string  `json:"purchased_at"`
}

func (TicketPurchasedEvent) QueueName() string { return TicketPurchasedQueue }

// BookingCreatedEvent is published after a booking has been persisted.
type BookingCreatedEvent struct {
	BookingID   string `json:"booking_id"`
	UserID      string `json:"user_id"`
	BookingType string `json:"booking_type"`
	BookingDate string `json:"booking_date"`
	CreatedAt   string `json:"created_at"`
}

func (BookingCreatedEvent) QueueName() string { return BookingCreatedQueue }

// NewTicketPurchased builds the event for t.
func NewTicketPurchased(t model.Ticket) TicketPurchasedEvent {
	return TicketPurchasedEvent{
		TicketID:    t.ID,
		UserID:      t.UserID,
		TicketDate:  t.TicketDate.Format(time.DateOnly),
		Type:        string(t.Type),
		Price:       t.Price,
		PurchasedAt: t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewBookingCreated builds the event for b.
func NewBookingCreated(b model.Booking) BookingCreatedEvent {
	return BookingCreatedEvent{
		BookingID:   b.ID,
		UserID:      b.UserID,
		BookingType: string(b.BookingType),
		BookingDate: b.BookingDate.Format(time.DateOnly),
		CreatedAt:   b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
