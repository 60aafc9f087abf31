package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
)

type BookingRepository interface {
	// CreateWithContact inserts the booking and its contact pax atomically.
	CreateWithContact(ctx context.Context, userID uuid.UUID, input domain.BookingInput, contact domain.BookingContact) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, hotelID *uuid.UUID) ([]domain.Booking, error)
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	FindByReservation(ctx context.Context, hotelID uuid.UUID, reservationID string) (*domain.Booking, error)
	// FindAccess returns the booking joined with the hotel columns that gate public check-in.
	FindAccess(ctx context.Context, id uuid.UUID) (*domain.BookingAccess, error)
	Update(ctx context.Context, id, userID uuid.UUID, input domain.BookingInput) (*domain.Booking, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	MarkCompleted(ctx context.Context, id uuid.UUID, signature *string, completedAt time.Time) (*domain.Booking, error)
}
