package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/themepark/internal/model"
	"github.com/iliyamo/themepark/internal/queue"
)

// TicketStore persists tickets.
type TicketStore interface {
	Create(ctx context.Context, t *model.Ticket) error
	ListByUser(ctx context.Context, userID string) ([]model.Ticket, error)
}

// Publisher delivers domain events. Failures never fail the request that
// produced the event.
type Publisher interface {
	Publish(ctx context.Context, ev queue.Event) error
}

// PurchaseInput is the ticket purchase form. Type is free text; see
// model.ParseTicketType.
type PurchaseInput struct {
	TicketDate string `json:"ticketDate"`
	Type       string `json:"type"`
}

// TicketService sells tickets and lists a user's purchases.
type TicketService struct {
	store  TicketStore
	events Publisher
	now    func() time.Time
	logger *slog.Logger
}

// NewTicketService builds a TicketService. A nil publisher disables
// events.
func NewTicketService(store TicketStore, events Publisher, logger *slog.Logger) *TicketService {
	if events == nil {
		events = queue.NopPublisher{}
	}
	return &TicketService{store: store, events: events, now: time.Now, logger: logger.With("service", "ticket")}
}

// WithClock replaces the time source used for creation timestamps.
func (s *TicketService) WithClock(now func() time.Time) *TicketService {
	s.now = now
	return s
}

// Purchase stores a ticket for userID at the static price of its tier.
func (s *TicketService) Purchase(ctx context.Context, userID string, in PurchaseInput) (model.Ticket, error) {
	if userID == "" {
		return model.Ticket{}, ErrUnauthenticated
	}
	date, err := parseDate("ticketDate", in.TicketDate)
	if err != nil {
		return model.Ticket{}, err
	}

	typ := model.ParseTicketType(in.Type)
	t := model.Ticket{
		ID:         uuid.NewString(),
		UserID:     userID,
		TicketDate: date,
		Type:       typ,
		Price:      typ.Price(),
		CreatedAt:  s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.store.Create(ctx, &t); err != nil {
		return model.Ticket{}, err
	}
	ticketsSold.WithLabelValues(string(t.Type)).Inc()
	s.logger.Info("ticket purchased", "user_id", userID, "ticket_id", t.ID, "type", t.Type)

	_ = s.events.Publish(ctx, queue.NewTicketPurchased(t))
	return t, nil
}

// ListForUser returns the user's tickets, newest first.
func (s *TicketService) ListForUser(ctx context.Context, userID string) ([]model.Ticket, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.store.ListByUser(ctx, userID)
}
