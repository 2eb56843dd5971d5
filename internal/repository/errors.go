// Package repository defines the MySQL-backed stores for users, tickets
// and bookings, plus the sentinel errors higher layers switch on.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup matches no row. Handlers and
// services translate it according to context (unknown login email,
// stale session token).
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when an insert collides with the unique
// email index.
var ErrEmailExists = errors.New("email already exists")

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
