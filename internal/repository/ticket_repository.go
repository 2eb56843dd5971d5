package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/themepark/internal/model"
)

// TicketRepo persists purchased tickets. Rows are never updated or
// deleted.
type TicketRepo struct{ db *sqlx.DB }

// NewTicketRepo returns a new TicketRepo bound to the given database.
func NewTicketRepo(db *sqlx.DB) *TicketRepo { return &TicketRepo{db: db} }

// Create inserts t as given.
func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	const q = `INSERT INTO tickets (id, user_id, ticket_date, type, price, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, t.ID, t.UserID, t.TicketDate, t.Type, t.Price, t.CreatedAt); err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

// ListByUser returns the user's tickets, newest first. The id breaks ties
// between rows created in the same millisecond so repeated reads agree.
func (r *TicketRepo) ListByUser(ctx context.Context, userID string) ([]model.Ticket, error) {
	const q = `SELECT id, user_id, ticket_date, type, price, created_at
		FROM tickets WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	tickets := []model.Ticket{}
	if err := r.db.SelectContext(ctx, &tickets, q, userID); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}
