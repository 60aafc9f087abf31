package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/repository/ports"
)

type HotelService struct {
	hotels   ports.HotelRepository
	bookings ports.BookingRepository
}

func NewHotelService(hotels ports.HotelRepository, bookings ports.BookingRepository) *HotelService {
	return &HotelService{hotels: hotels, bookings: bookings}
}

func (s *HotelService) List(ctx context.Context, userID uuid.UUID) ([]domain.Hotel, error) {
	return s.hotels.ListByUser(ctx, userID)
}

func (s *HotelService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Hotel, error) {
	hotel, err := s.hotels.FindByIDForUser(ctx, id, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return hotel, nil
}

func (s *HotelService) Create(ctx context.Context, userID uuid.UUID, input domain.HotelInput) (*domain.Hotel, error) {
	input, err := normalizeHotelInput(input)
	if err != nil {
		return nil, err
	}
	hotel, err := s.hotels.Create(ctx, userID, input)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return hotel, nil
}

func (s *HotelService) Update(ctx context.Context, userID, id uuid.UUID, input domain.HotelInput) (*domain.Hotel, error) {
	input, err := normalizeHotelInput(input)
	if err != nil {
		return nil, err
	}
	hotel, err := s.hotels.Update(ctx, id, userID, input)
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, ErrHotelNotFound
		case isUniqueViolation(err):
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return hotel, nil
}

// Delete removes the hotel together with its bookings and guests.
func (s *HotelService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.hotels.Delete(ctx, id, userID); err != nil {
		if isNotFound(err) {
			return ErrHotelNotFound
		}
		return err
	}
	return nil
}

func (s *HotelService) ListBookings(ctx context.Context, userID, id uuid.UUID) ([]domain.Booking, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.bookings.ListByUser(ctx, userID, &id)
}

// GetPublic returns a hotel guests may look up by slug.
func (s *HotelService) GetPublic(ctx context.Context, slug string) (*domain.Hotel, error) {
	hotel, err := s.hotels.FindBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	if !hotel.IsPublic {
		return nil, ErrHotelNotFound
	}
	if !hotel.IsActive {
		return nil, ErrHotelUnavailable
	}
	return hotel, nil
}

func normalizeHotelInput(input domain.HotelInput) (domain.HotelInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Slug = strings.ToLower(strings.TrimSpace(input.Slug))
	input.Phone = strings.TrimSpace(input.Phone)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	fields, err := normalizeFields(input.AllowedFields)
	if err != nil {
		return input, err
	}
	input.AllowedFields = fields
	return input, nil
}

// normalizeFields drops duplicates and rejects names outside domain.AvailableFields.
func normalizeFields(fields []string) ([]string, error) {
	out := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if !isAvailableField(f) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidField, f)
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out, nil
}

func isAvailableField(name string) bool {
	for _, f := range domain.AvailableFields {
		if f == name {
			return true
		}
	}
	return false
}
