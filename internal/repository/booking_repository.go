package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/themepark/internal/model"
)

// BookingRepo persists activity bookings. Like tickets, bookings are
// insert-only.
type BookingRepo struct{ db *sqlx.DB }

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sqlx.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts b as given.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (id, user_id, booking_type, booking_date, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, b.ID, b.UserID, b.BookingType, b.BookingDate, b.CreatedAt); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// ListByUser returns the user's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	const q = `SELECT id, user_id, booking_type, booking_date, created_at
		FROM bookings WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	bookings := []model.Booking{}
	if err := r.db.SelectContext(ctx, &bookings, q, userID); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}
