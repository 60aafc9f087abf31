package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
)

type HotelRepository interface {
	Create(ctx context.Context, userID uuid.UUID, input domain.HotelInput) (*domain.Hotel, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Hotel, error)
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Hotel, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Hotel, error)
	Update(ctx context.Context, id, userID uuid.UUID, input domain.HotelInput) (*domain.Hotel, error)
	// Delete returns sql.ErrNoRows when the hotel does not belong to userID.
	Delete(ctx context.Context, id, userID uuid.UUID) error
	// OwnerEmail returns the hotel contact email, falling back to the owner's account email.
	OwnerEmail(ctx context.Context, id uuid.UUID) (email string, ownerName *string, err error)
}
