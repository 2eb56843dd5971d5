package service

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldMessages maps "Field.tag" to the message shown for that failure.
var fieldMessages = map[string]string{
	"Email.required":     "Email is required.",
	"Email.max":          "Email must be at most 255 characters long.",
	"Email.email":        "Must be a valid email.",
	"Password.required":  "Password is required.",
	"Password.min":       "Password must be at least 8 characters long.",
	"FirstName.required": "First name is required.",
	"FirstName.max":      "First name must be at most 100 characters long.",
	"LastName.required":  "Last name is required.",
	"LastName.max":       "Last name must be at most 100 characters long.",
}

// check validates in against its struct tags and returns a
// ValidationError for the first failing field, in declaration order.
func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return invalid("Invalid request.")
	}
	first := verrs[0]
	if msg, ok := fieldMessages[first.StructField()+"."+first.Tag()]; ok {
		return invalid(msg)
	}
	return invalid(first.StructField() + " is invalid.")
}

// dateLayouts are tried in order when parsing a visit or activity date.
var dateLayouts = []string{time.DateOnly, time.RFC3339Nano, time.RFC3339}

// parseDate parses a calendar date supplied by a client. field names the
// JSON field in error messages.
func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, invalid(field + " is required.")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, invalid(field + " must be a valid date.")
}
