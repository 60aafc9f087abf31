package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Guest fields a hotel or booking may ask for beyond the mandatory identity data.
const (
	FieldCarModel = "carModel"
	FieldCarPlate = "carPlate"
	FieldCountry  = "country"
	FieldCity     = "city"
	FieldZipCode  = "zipCode"
	FieldAddress  = "address"
	FieldGender   = "gender"
)

var AvailableFields = []string{
	FieldCarModel,
	FieldCarPlate,
	FieldCountry,
	FieldCity,
	FieldZipCode,
	FieldAddress,
	FieldGender,
}

type Hotel struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	UserID        uuid.UUID      `db:"user_id" json:"user_id"`
	Name          string         `db:"name" json:"name"`
	Slug          string         `db:"slug" json:"slug"`
	CoverImage    *string        `db:"cover_image" json:"cover_image,omitempty"`
	Phone         string         `db:"phone" json:"phone"`
	Email         string         `db:"email" json:"email"`
	IsPublic      bool           `db:"is_public" json:"is_public"`
	IsActive      bool           `db:"is_active" json:"is_active"`
	AllowedFields pq.StringArray `db:"allowed_fields" json:"allowed_fields"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

type HotelInput struct {
	Name          string
	Slug          string
	CoverImage    *string
	Phone         string
	Email         string
	IsPublic      bool
	IsActive      bool
	AllowedFields []string
}
