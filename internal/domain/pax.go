package domain

import (
	"time"

	"github.com/google/uuid"
)

type DocumentKind string

const (
	DocumentFront    DocumentKind = "front"
	DocumentBack     DocumentKind = "back"
	DocumentPassport DocumentKind = "passport"
)

func (k DocumentKind) Valid() bool {
	switch k {
	case DocumentFront, DocumentBack, DocumentPassport:
		return true
	}
	return false
}

// Pax is one guest registered on a booking.
type Pax struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	BookingID         uuid.UUID  `db:"booking_id" json:"booking_id"`
	Firstname         string     `db:"firstname" json:"firstname"`
	Lastname          string     `db:"lastname" json:"lastname"`
	BirthDate         *string    `db:"birth_date" json:"birth_date,omitempty"`
	Email             *string    `db:"email" json:"email,omitempty"`
	Phone             *string    `db:"phone" json:"phone,omitempty"`
	DocType           string     `db:"doc_type" json:"doc_type"`
	DocNumber         string     `db:"doc_number" json:"doc_number"`
	NationalityCode   *string    `db:"nationality_code" json:"nationality_code,omitempty"`
	ArrivalDate       *string    `db:"arrival_date" json:"arrival_date,omitempty"`
	IsContact         bool       `db:"is_contact" json:"is_contact"`
	DocFrontPath      *string    `db:"doc_front_path" json:"doc_front_path,omitempty"`
	DocBackPath       *string    `db:"doc_back_path" json:"doc_back_path,omitempty"`
	PassportPath      *string    `db:"passport_path" json:"passport_path,omitempty"`
	GuestObservations *string    `db:"guest_observations" json:"guest_observations,omitempty"`
	SubmittedAt       *time.Time `db:"submitted_at" json:"submitted_at,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// PaxInput carries the editable guest fields. Nil pointers leave the stored
// value untouched on update.
type PaxInput struct {
	Firstname         *string
	Lastname          *string
	BirthDate         *string
	Email             *string
	Phone             *string
	DocType           *string
	DocNumber         *string
	NationalityCode   *string
	ArrivalDate       *string
	IsContact         *bool
	GuestObservations *string
}
