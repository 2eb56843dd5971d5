package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/themepark/internal/model"
	"github.com/iliyamo/themepark/internal/repository"
	"github.com/iliyamo/themepark/internal/utils"
)

// UserStore is the credential store the authentication service needs.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// RegisterInput is the registration form. Field order is the order rules
// are checked in.
type RegisterInput struct {
	Email     string `json:"email" validate:"required,max=255,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
}

// LoginInput is the login form.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is what a successful login hands back.
type LoginResult struct {
	Token string
	User  model.PublicUser
}

// AuthService registers users and exchanges credentials for tokens.
type AuthService struct {
	users  UserStore
	tokens TokenIssuer
	cost   int
	now    func() time.Time
	logger *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService wires the service to its store and token issuer. cost
// is the bcrypt work factor.
func NewAuthService(users UserStore, tokens TokenIssuer, cost int, logger *slog.Logger) *AuthService {
	if cost == 0 {
		cost = utils.DefaultBcryptCost
	}
	return &AuthService{
		users:  users,
		tokens: tokens,
		cost:   cost,
		now:    time.Now,
		logger: logger.With("service", "auth"),
	}
}

// Register validates the form, refuses a taken email, hashes the
// password and stores the user.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (model.PublicUser, error) {
	if err := check(in); err != nil {
		return model.PublicUser{}, err
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return model.PublicUser{}, ErrDuplicateUser
	} else if !errors.Is(err, repository.ErrNotFound) {
		return model.PublicUser{}, err
	}

	hash, err := utils.HashPassword(in.Password, s.cost)
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	u := model.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, &u); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, repository.ErrEmailExists) {
			return model.PublicUser{}, ErrDuplicateUser
		}
		return model.PublicUser{}, err
	}
	usersRegistered.Inc()
	s.logger.Info("user registered", "user_id", u.ID)
	return u.Public(), nil
}

// Login checks the credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	if err := check(in); err != nil {
		return LoginResult{}, err
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Spend the same bcrypt time as a real comparison.
			utils.VerifyPassword(s.dummy(), in.Password)
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, in.Password) {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}
	return LoginResult{Token: token, User: u.Public()}, nil
}

// Me returns the profile of an authenticated user. A token that outlived
// its user is treated as unauthenticated.
func (s *AuthService) Me(ctx context.Context, userID string) (model.Profile, error) {
	if userID == "" {
		return model.Profile{}, ErrUnauthenticated
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Profile{}, ErrUnauthenticated
		}
		return model.Profile{}, err
	}
	return u.Profile(), nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = utils.HashPassword(uuid.NewString(), s.cost)
	})
	return s.dummyHash
}
