package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCanceled  BookingStatus = "canceled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusUnknown   BookingStatus = "unknown"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCanceled, BookingStatusCompleted, BookingStatusUnknown:
		return true
	}
	return false
}

type Booking struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	HotelID        uuid.UUID      `db:"hotel_id" json:"hotel_id"`
	UserID         uuid.UUID      `db:"user_id" json:"user_id"`
	ReservationID  string         `db:"reservation_id" json:"reservation_id"`
	Checkin        time.Time      `db:"checkin" json:"checkin"`
	Checkout       *time.Time     `db:"checkout" json:"checkout,omitempty"`
	Status         BookingStatus  `db:"status" json:"status"`
	Nights         *int           `db:"nights" json:"nights,omitempty"`
	Observations   *string        `db:"observations" json:"observations,omitempty"`
	IsActive       bool           `db:"is_active" json:"is_active"`
	IsLocked       bool           `db:"is_locked" json:"is_locked"`
	MaxPaxs        *int           `db:"max_paxs" json:"max_paxs,omitempty"`
	RequiredFields pq.StringArray `db:"required_fields" json:"required_fields"`
	AllowedFields  pq.StringArray `db:"allowed_fields" json:"allowed_fields"`
	Signature      *string        `db:"signature" json:"signature,omitempty"`
	CompletedAt    *time.Time     `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// BookingAccess is a booking joined with the hotel columns that decide whether
// a guest may open its public check-in.
type BookingAccess struct {
	BookingID     uuid.UUID     `db:"booking_id"`
	Checkin       time.Time     `db:"checkin"`
	Status        BookingStatus `db:"status"`
	MaxPaxs       *int          `db:"max_paxs"`
	IsLocked      bool          `db:"is_locked"`
	HotelID       uuid.UUID     `db:"hotel_id"`
	HotelName     string        `db:"hotel_name"`
	HotelSlug     string        `db:"hotel_slug"`
	HotelIsPublic bool          `db:"hotel_is_public"`
	HotelIsActive bool          `db:"hotel_is_active"`
}

type BookingContact struct {
	Firstname string
	Lastname  string
	Email     string
}

type BookingInput struct {
	HotelID        uuid.UUID
	ReservationID  string
	Checkin        time.Time
	Checkout       *time.Time
	Status         BookingStatus
	Nights         *int
	Observations   *string
	IsActive       bool
	IsLocked       bool
	MaxPaxs        *int
	RequiredFields []string
	AllowedFields  []string
}
