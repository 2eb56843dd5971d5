package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/themepark/internal/model"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id, email, password_hash, first_name, last_name, created_at"

// Create inserts u. The caller supplies the id, hash and timestamp.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, first_name, last_name, created_at) VALUES (?,?,?,?,?,?)",
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.CreatedAt)
	if err != nil {
		if isDuplicate(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail fetches a user by email, matched exactly.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.DB.GetContext(ctx, &u,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := r.DB.GetContext(ctx, &u,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}
