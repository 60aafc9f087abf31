package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/repository/ports"
)

// PaxService manages guests on behalf of the booking owner.
type PaxService struct {
	paxs     ports.PaxRepository
	bookings ports.BookingRepository
}

func NewPaxService(paxs ports.PaxRepository, bookings ports.BookingRepository) *PaxService {
	return &PaxService{paxs: paxs, bookings: bookings}
}

func (s *PaxService) Create(ctx context.Context, userID, bookingID uuid.UUID, input domain.PaxInput) (*domain.Pax, error) {
	if _, err := s.ownedBooking(ctx, userID, bookingID); err != nil {
		return nil, err
	}
	return s.paxs.Create(ctx, bookingID, input)
}

func (s *PaxService) ListByBooking(ctx context.Context, userID, bookingID uuid.UUID) (*domain.Booking, []domain.Pax, error) {
	booking, err := s.ownedBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, nil, err
	}
	paxs, err := s.paxs.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	return booking, paxs, nil
}

func (s *PaxService) Get(ctx context.Context, userID, paxID uuid.UUID) (*domain.Pax, error) {
	return s.ownedPax(ctx, userID, paxID)
}

func (s *PaxService) Update(ctx context.Context, userID, paxID uuid.UUID, input domain.PaxInput) (*domain.Pax, error) {
	if _, err := s.ownedPax(ctx, userID, paxID); err != nil {
		return nil, err
	}
	pax, err := s.paxs.Update(ctx, paxID, input, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPaxNotFound
		}
		return nil, err
	}
	return pax, nil
}

func (s *PaxService) Delete(ctx context.Context, userID, paxID uuid.UUID) error {
	if _, err := s.ownedPax(ctx, userID, paxID); err != nil {
		return err
	}
	if err := s.paxs.Delete(ctx, paxID); err != nil {
		if isNotFound(err) {
			return ErrPaxNotFound
		}
		return err
	}
	return nil
}

func (s *PaxService) ownedBooking(ctx context.Context, userID, bookingID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookings.FindByIDForUser(ctx, bookingID, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *PaxService) ownedPax(ctx context.Context, userID, paxID uuid.UUID) (*domain.Pax, error) {
	pax, err := s.paxs.FindByID(ctx, paxID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPaxNotFound
		}
		return nil, err
	}
	if _, err := s.bookings.FindByIDForUser(ctx, pax.BookingID, userID); err != nil {
		if isNotFound(err) {
			return nil, ErrPaxForbidden
		}
		return nil, err
	}
	return pax, nil
}
