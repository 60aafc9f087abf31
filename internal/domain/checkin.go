package domain

import (
	"time"

	"github.com/google/uuid"
)

// CheckinBooking is the booking state cached inside a public check-in token.
type CheckinBooking struct {
	ID      uuid.UUID     `json:"id"`
	Checkin time.Time     `json:"checkin"`
	Status  BookingStatus `json:"status"`
	MaxPaxs *int          `json:"maxPaxs"`
}

type CheckinHotel struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CheckinSnapshot is what a guest request carries once access was granted.
// It may be up to one token lifetime stale; writes re-read live state.
type CheckinSnapshot struct {
	Booking CheckinBooking `json:"booking"`
	Hotel   CheckinHotel   `json:"hotel"`
}

// CheckinDetails is the guest-facing view of a booking under check-in.
type CheckinDetails struct {
	Booking Booking `json:"booking"`
	Hotel   Hotel   `json:"hotel"`
	Paxs    []Pax   `json:"paxs"`
}
