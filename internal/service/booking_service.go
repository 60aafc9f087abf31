package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/repository/ports"
)

type BookingService struct {
	bookings ports.BookingRepository
	hotels   ports.HotelRepository
}

func NewBookingService(bookings ports.BookingRepository, hotels ports.HotelRepository) *BookingService {
	return &BookingService{bookings: bookings, hotels: hotels}
}

// Create registers a pending booking and its contact guest.
func (s *BookingService) Create(ctx context.Context, userID uuid.UUID, input domain.BookingInput, contact domain.BookingContact) (*domain.Booking, error) {
	if _, err := s.hotels.FindByIDForUser(ctx, input.HotelID, userID); err != nil {
		if isNotFound(err) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	input, err := normalizeBookingInput(input)
	if err != nil {
		return nil, err
	}
	input.Status = domain.BookingStatusPending

	contact.Firstname = strings.TrimSpace(contact.Firstname)
	contact.Lastname = strings.TrimSpace(contact.Lastname)
	contact.Email = strings.ToLower(strings.TrimSpace(contact.Email))

	booking, err := s.bookings.CreateWithContact(ctx, userID, input, contact)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrReservationTaken
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) List(ctx context.Context, userID uuid.UUID, hotelID *uuid.UUID) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID, hotelID)
}

func (s *BookingService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookings.FindByIDForUser(ctx, id, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

// Update replaces the editable booking fields. Bookings cannot move between hotels.
func (s *BookingService) Update(ctx context.Context, userID, id uuid.UUID, input domain.BookingInput) (*domain.Booking, error) {
	existing, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if input.HotelID == uuid.Nil {
		input.HotelID = existing.HotelID
	}
	if input.HotelID != existing.HotelID {
		return nil, ErrHotelChange
	}
	if input.Status == "" {
		input.Status = existing.Status
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	input, err = normalizeBookingInput(input)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.Update(ctx, id, userID, input)
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, ErrBookingNotFound
		case isUniqueViolation(err):
			return nil, ErrReservationTaken
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.bookings.Delete(ctx, id, userID); err != nil {
		if isNotFound(err) {
			return ErrBookingNotFound
		}
		return err
	}
	return nil
}

func normalizeBookingInput(input domain.BookingInput) (domain.BookingInput, error) {
	input.ReservationID = strings.TrimSpace(input.ReservationID)
	required, err := normalizeFields(input.RequiredFields)
	if err != nil {
		return input, err
	}
	allowed, err := normalizeFields(input.AllowedFields)
	if err != nil {
		return input, err
	}
	input.RequiredFields = required
	input.AllowedFields = allowed
	return input, nil
}
