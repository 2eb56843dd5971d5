package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/themepark/internal/model"
	"github.com/iliyamo/themepark/internal/queue"
)

// BookingStore persists bookings.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	ListByUser(ctx context.Context, userID string) ([]model.Booking, error)
}

// BookingInput is the booking form.
type BookingInput struct {
	BookingType string `json:"bookingType"`
	BookingDate string `json:"bookingDate"`
}

// BookingService books park activities.
type BookingService struct {
	store  BookingStore
	events Publisher
	now    func() time.Time
	logger *slog.Logger
}

// NewBookingService builds a BookingService. A nil publisher disables
// events.
func NewBookingService(store BookingStore, events Publisher, logger *slog.Logger) *BookingService {
	if events == nil {
		events = queue.NopPublisher{}
	}
	return &BookingService{store: store, events: events, now: time.Now, logger: logger.With("service", "booking")}
}

// WithClock replaces the time source used for creation timestamps.
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

// Create stores a booking for userID. Only the known activities are
// accepted; the date is not checked against today.
func (s *BookingService) Create(ctx context.Context, userID string, in BookingInput) (model.Booking, error) {
	if userID == "" {
		return model.Booking{}, ErrUnauthenticated
	}
	typ := model.BookingType(in.BookingType)
	if !typ.Valid() {
		names := make([]string, len(model.BookingTypes))
		for i, t := range model.BookingTypes {
			names[i] = string(t)
		}
		return model.Booking{}, invalid("bookingType must be one of " + strings.Join(names, ", ") + ".")
	}
	date, err := parseDate("bookingDate", in.BookingDate)
	if err != nil {
		return model.Booking{}, err
	}

	b := model.Booking{
		ID:          uuid.NewString(),
		UserID:      userID,
		BookingType: typ,
		BookingDate: date,
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.store.Create(ctx, &b); err != nil {
		return model.Booking{}, err
	}
	bookingsCreated.WithLabelValues(string(b.BookingType)).Inc()
	s.logger.Info("booking created", "user_id", userID, "booking_id", b.ID, "type", b.BookingType)

	_ = s.events.Publish(ctx, queue.NewBookingCreated(b))
	return b, nil
}

// ListForUser returns the user's bookings, newest first.
func (s *BookingService) ListForUser(ctx context.Context, userID string) ([]model.Booking, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.store.ListByUser(ctx, userID)
}
