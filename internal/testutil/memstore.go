package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/iliyamo/themepark/internal/model"
	"github.com/iliyamo/themepark/internal/repository"
)

// Users is an in-memory credential store with the same error contract as
// repository.UserRepo.
type Users struct {
	mu    sync.Mutex
	byID  map[string]model.User
	Calls int   // number of store calls of any kind
	Err   error // when set, every call fails with it
}

func NewUsers() *Users { return &Users{byID: map[string]model.User{}} }

func (s *Users) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.byID {
		if existing.Email == u.Email {
			return repository.ErrEmailExists
		}
	}
	s.byID[u.ID] = *u
	return nil
}

func (s *Users) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.Err != nil {
		return model.User{}, s.Err
	}
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (s *Users) GetByID(_ context.Context, id string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.Err != nil {
		return model.User{}, s.Err
	}
	u, ok := s.byID[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

// Len is the number of stored users.
func (s *Users) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// Delete removes a user, simulating an account that vanished while a
// token for it is still in circulation.
func (s *Users) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
}

// Tickets is an in-memory ticket store ordered like the MySQL query.
type Tickets struct {
	mu   sync.Mutex
	rows []model.Ticket
	Err  error
}

func NewTickets() *Tickets { return &Tickets{} }

func (s *Tickets) Create(_ context.Context, t *model.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.rows = append(s.rows, *t)
	return nil
}

func (s *Tickets) ListByUser(_ context.Context, userID string) ([]model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []model.Ticket{}
	for _, t := range s.rows {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Len is the number of stored tickets across all users.
func (s *Tickets) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// Bookings is an in-memory booking store ordered like the MySQL query.
type Bookings struct {
	mu   sync.Mutex
	rows []model.Booking
	Err  error
}

func NewBookings() *Bookings { return &Bookings{} }

func (s *Bookings) Create(_ context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.rows = append(s.rows, *b)
	return nil
}

func (s *Bookings) ListByUser(_ context.Context, userID string) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []model.Booking{}
	for _, b := range s.rows {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Len is the number of stored bookings across all users.
func (s *Bookings) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}
