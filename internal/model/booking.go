package model

import "time"

// BookingType names a bookable park activity.
type BookingType string

const (
	BookingRestaurant   BookingType = "RESTAURANT"
	BookingVIPTour      BookingType = "VIP_TOUR"
	BookingPhotoSession BookingType = "PHOTO_SESSION"
)

// BookingTypes lists the activities in display order.
var BookingTypes = []BookingType{BookingRestaurant, BookingVIPTour, BookingPhotoSession}

// Valid reports whether b is one of the known activities.
func (b BookingType) Valid() bool {
	for _, t := range BookingTypes {
		if b == t {
			return true
		}
	}
	return false
}

// Booking reserves an activity for a user on a given day.
//
// Fields:
//  ID          – UUID primary key.
//  UserID      – owner of the booking.
//  BookingType – activity being booked.
//  BookingDate – day of the activity.
//  CreatedAt   – creation timestamp (UTC).
type Booking struct {
	ID          string      `db:"id" json:"id"`                    // bookings.id
	UserID      string      `db:"user_id" json:"userId"`           // bookings.user_id
	BookingType BookingType `db:"booking_type" json:"bookingType"` // bookings.booking_type
	BookingDate time.Time   `db:"booking_date" json:"bookingDate"` // bookings.booking_date
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`     // bookings.created_at
}
