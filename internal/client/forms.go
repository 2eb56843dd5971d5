package client

import (
	"errors"
	"time"
)

// Form checks run before a request is sent. They mirror the server's rules
// where one exists and add the "not in the past" date rule, which only the
// client enforces.

// CheckCredentials validates the login form, and the registration form when
// register is set.
func CheckCredentials(register bool, password, firstName, lastName string) error {
	switch {
	case password == "":
		return errors.New("Password is required.")
	case len(password) < 8:
		return errors.New("Password must be at least 8 characters long.")
	}
	if register {
		switch {
		case firstName == "":
			return errors.New("First name is required.")
		case lastName == "":
			return errors.New("Last name is required.")
		}
	}
	return nil
}

// CheckTicketDate validates a YYYY-MM-DD visit date against today in now's
// location.
func CheckTicketDate(date string, now time.Time) error {
	return checkDate(date, now, "Please select a ticket date.", "Ticket date cannot be in the past.")
}

// CheckBookingDate is CheckTicketDate for the booking form.
func CheckBookingDate(date string, now time.Time) error {
	return checkDate(date, now, "Please select a booking date.", "Booking date cannot be in the past.")
}

func checkDate(date string, now time.Time, missing, past string) error {
	if date == "" {
		return errors.New(missing)
	}
	day, err := time.ParseInLocation(time.DateOnly, date, now.Location())
	if err != nil {
		return errors.New(missing)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return errors.New(past)
	}
	return nil
}
