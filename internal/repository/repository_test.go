package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/themepark/internal/model"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "mysql"), mock
}

func TestUserRepoCreateMapsDuplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("u1", "ada@park.io", "hash", "Ada", "Lovelace", sqlmock.AnyArg()).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'ada@park.io'"})

	err := repo.Create(context.Background(), &model.User{
		ID: "u1", Email: "ada@park.io", PasswordHash: "hash",
		FirstName: "Ada", LastName: "Lovelace", CreatedAt: time.Now().UTC(),
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("Create = %v, want ErrEmailExists", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestUserRepoCreateWrapsOtherErrors(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	boom := errors.New("connection reset")
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).WillReturnError(boom)

	err := repo.Create(context.Background(), &model.User{ID: "u1"})
	if !errors.Is(err, boom) {
		t.Errorf("Create = %v, want wrapped %v", err, boom)
	}
	if errors.Is(err, ErrEmailExists) {
		t.Error("non-duplicate error reported as ErrEmailExists")
	}
}

func TestUserRepoGetByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)
	created := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "first_name", "last_name", "created_at"}).
		AddRow("u1", "Ada@park.io", "hash", "Ada", "Lovelace", created)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=?")).
		WithArgs("Ada@park.io").
		WillReturnRows(rows)

	u, err := repo.GetByEmail(context.Background(), "Ada@park.io")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if u.ID != "u1" || u.Email != "Ada@park.io" || u.FirstName != "Ada" || !u.CreatedAt.Equal(created) {
		t.Errorf("GetByEmail = %+v", u)
	}
}

func TestUserRepoNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=?")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	if _, err := repo.GetByEmail(context.Background(), "ghost@park.io"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByEmail = %v, want ErrNotFound", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id=?")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	if _, err := repo.GetByID(context.Background(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID = %v, want ErrNotFound", err)
	}
}

func TestTicketRepoCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTicketRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tickets")).
		WithArgs("t1", "u1", sqlmock.AnyArg(), "FAMILY", 120.0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &model.Ticket{
		ID: "t1", UserID: "u1", TicketDate: time.Now(), Type: model.TicketFamily,
		Price: 120.0, CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestTicketRepoListByUserOrdersNewestFirst(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTicketRepo(db)
	day := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "user_id", "ticket_date", "type", "price", "created_at"}).
		AddRow("t2", "u1", day, "FAMILY", "120.00", day.Add(2*time.Hour)).
		AddRow("t1", "u1", day, "SINGLE", "50.00", day.Add(time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("FROM tickets WHERE user_id = ? ORDER BY created_at DESC, id DESC")).
		WithArgs("u1").
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByUser returned %d tickets, want 2", len(got))
	}
	if got[0].ID != "t2" || got[0].Type != model.TicketFamily || got[0].Price != 120.0 {
		t.Errorf("first ticket = %+v", got[0])
	}
	if got[1].Price != 50.0 {
		t.Errorf("second ticket price = %v, want 50", got[1].Price)
	}
}

func TestTicketRepoListEmptyIsNotNil(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTicketRepo(db)
	mock.ExpectQuery(regexp.QuoteMeta("FROM tickets")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "ticket_date", "type", "price", "created_at"}))

	got, err := repo.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if got == nil {
		t.Error("ListByUser returned nil, want empty slice")
	}
}

func TestBookingRepoRoundTrip(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs("b1", "u1", "VIP_TOUR", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.Create(context.Background(), &model.Booking{
		ID: "b1", UserID: "u1", BookingType: model.BookingVIPTour, BookingDate: day, CreatedAt: day,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE user_id = ? ORDER BY created_at DESC, id DESC")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "booking_type", "booking_date", "created_at"}).
			AddRow("b1", "u1", "VIP_TOUR", day, day))
	got, err := repo.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 1 || got[0].BookingType != model.BookingVIPTour {
		t.Errorf("ListByUser = %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestBookingRepoListError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings")).WillReturnError(errors.New("db down"))
	if _, err := repo.ListByUser(context.Background(), "u1"); err == nil {
		t.Error("expected error")
	}
}
