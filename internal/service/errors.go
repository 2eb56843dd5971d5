package service

import "errors"

// ValidationError reports the first input rule a request broke. Message
// is safe to show to the user verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

var (
	// ErrDuplicateUser is returned by Register when the email is taken.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrInvalidCredentials is returned by Login for an unknown email and
	// for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated is returned when an operation that needs an owner
	// is called without one, or for a token whose user no longer exists.
	ErrUnauthenticated = errors.New("not authenticated")
)
