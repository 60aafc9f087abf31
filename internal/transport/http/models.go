package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
)

// ErrorResponse represents a generic error payload.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid credentials"`
}

// RegisterRequest carries email registration fields.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email" example:"owner@example.com"`
	Password string  `json:"password" validate:"required" example:"StrongPass!23"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=120" example:"Hotel Owner"`
}

// LoginRequest carries email login fields.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"owner@example.com"`
	Password string `json:"password" validate:"required" example:"StrongPass!23"`
}

// GoogleLoginRequest carries the Google ID token for login.
type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required" example:"eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// LoginResponse is returned by both login endpoints. The session cookie is
// set alongside; Token is for clients that send Authorization headers.
type LoginResponse struct {
	User       domain.User `json:"user"`
	Token      string      `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt  time.Time   `json:"expires_at" example:"2026-11-17T09:30:00Z"`
	SessionExp time.Time   `json:"session_expires_at" example:"2026-11-17T09:30:00Z"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"required,email" example:"owner@example.com"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required" example:"NewPass!45"`
}

type ProfileRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,max=120"`
	Avatar *string `json:"avatar,omitempty" validate:"omitempty,url"`
}

// SessionView lists one login of the current user.
type SessionView struct {
	ID         string    `json:"id"`
	DeviceInfo *string   `json:"device_info,omitempty" example:"Chrome on macOS"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
	Current    bool      `json:"current"`
}

type HotelRequest struct {
	Name          string   `json:"name" validate:"required,max=160" example:"Hotel Mirador"`
	Slug          string   `json:"slug" validate:"required,slug,max=80" example:"hotel-mirador"`
	CoverImage    *string  `json:"cover_image,omitempty" validate:"omitempty,url"`
	Phone         string   `json:"phone" validate:"max=40"`
	Email         string   `json:"email" validate:"omitempty,email"`
	IsPublic      bool     `json:"is_public"`
	IsActive      *bool    `json:"is_active,omitempty"`
	AllowedFields []string `json:"allowed_fields"`
}

func (r HotelRequest) toInput() domain.HotelInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return domain.HotelInput{
		Name:          r.Name,
		Slug:          r.Slug,
		CoverImage:    r.CoverImage,
		Phone:         r.Phone,
		Email:         r.Email,
		IsPublic:      r.IsPublic,
		IsActive:      active,
		AllowedFields: r.AllowedFields,
	}
}

// PublicHotel is the subset of a hotel shown to guests.
type PublicHotel struct {
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	CoverImage    *string  `json:"cover_image,omitempty"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	AllowedFields []string `json:"allowed_fields"`
}

type BookingRequest struct {
	HotelID        string     `json:"hotel_id" example:"3d0c3a53-4b0b-4f87-9d5c-1c51f0c2b7a9"`
	ReservationID  string     `json:"reservation_id" validate:"required,max=64" example:"RES-20261024-001"`
	Checkin        time.Time  `json:"checkin" validate:"required" example:"2026-10-24T15:00:00Z"`
	Checkout       *time.Time `json:"checkout,omitempty"`
	Status         string     `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed canceled completed unknown"`
	Nights         *int       `json:"nights,omitempty" validate:"omitempty,gte=0"`
	Observations   *string    `json:"observations,omitempty"`
	IsActive       *bool      `json:"is_active,omitempty"`
	IsLocked       bool       `json:"is_locked"`
	MaxPaxs        *int       `json:"max_paxs,omitempty" validate:"omitempty,gte=1,lte=50"`
	RequiredFields []string   `json:"required_fields"`
	AllowedFields  []string   `json:"allowed_fields"`
}

func (r BookingRequest) toInput() (domain.BookingInput, error) {
	input := domain.BookingInput{
		ReservationID:  r.ReservationID,
		Checkin:        r.Checkin,
		Checkout:       r.Checkout,
		Status:         domain.BookingStatus(r.Status),
		Nights:         r.Nights,
		Observations:   r.Observations,
		IsActive:       true,
		IsLocked:       r.IsLocked,
		MaxPaxs:        r.MaxPaxs,
		RequiredFields: r.RequiredFields,
		AllowedFields:  r.AllowedFields,
	}
	if r.IsActive != nil {
		input.IsActive = *r.IsActive
	}
	if raw := strings.TrimSpace(r.HotelID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return input, fmt.Errorf("hotel_id must be a valid UUID")
		}
		input.HotelID = id
	}
	if r.Checkout != nil && r.Checkout.Before(r.Checkin) {
		return input, fmt.Errorf("checkout must not be before checkin")
	}
	return input, nil
}

// ContactRequest names the guest the booking was made for.
type ContactRequest struct {
	Firstname string `json:"firstname" validate:"required,max=80" example:"Ana"`
	Lastname  string `json:"lastname" validate:"required,max=80" example:"García"`
	Email     string `json:"email" validate:"omitempty,email" example:"ana@example.com"`
}

func (r ContactRequest) toContact() domain.BookingContact {
	return domain.BookingContact{Firstname: r.Firstname, Lastname: r.Lastname, Email: r.Email}
}

type CreateBookingRequest struct {
	BookingRequest
	Contact ContactRequest `json:"contact"`
}

// PaxRequest carries guest data. Absent fields are left unchanged.
type PaxRequest struct {
	Firstname         *string `json:"firstname,omitempty" validate:"omitempty,max=80"`
	Lastname          *string `json:"lastname,omitempty" validate:"omitempty,max=80"`
	BirthDate         *string `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Email             *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone             *string `json:"phone,omitempty" validate:"omitempty,max=40"`
	DocType           *string `json:"doc_type,omitempty" validate:"omitempty,max=40"`
	DocNumber         *string `json:"doc_number,omitempty" validate:"omitempty,max=40"`
	NationalityCode   *string `json:"nationality_code,omitempty" validate:"omitempty,len=2"`
	ArrivalDate       *string `json:"arrival_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	IsContact         *bool   `json:"is_contact,omitempty"`
	GuestObservations *string `json:"guest_observations,omitempty" validate:"omitempty,max=500"`
}

func (r PaxRequest) toInput() domain.PaxInput {
	return domain.PaxInput{
		Firstname:         r.Firstname,
		Lastname:          r.Lastname,
		BirthDate:         r.BirthDate,
		Email:             r.Email,
		Phone:             r.Phone,
		DocType:           r.DocType,
		DocNumber:         r.DocNumber,
		NationalityCode:   r.NationalityCode,
		ArrivalDate:       r.ArrivalDate,
		IsContact:         r.IsContact,
		GuestObservations: r.GuestObservations,
	}
}

type CheckReservationRequest struct {
	Slug          string `json:"slug" validate:"required,slug" example:"hotel-mirador"`
	ReservationID string `json:"reservation_id" validate:"required,max=64" example:"RES-20261024-001"`
	LastName      string `json:"last_name" validate:"required,max=80" example:"García"`
}

type ConfirmCheckinRequest struct {
	Signature *string `json:"signature,omitempty"`
}
