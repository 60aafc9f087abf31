package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
)

type PaxRepository interface {
	Create(ctx context.Context, bookingID uuid.UUID, input domain.PaxInput) (*domain.Pax, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Pax, error)
	CountByBooking(ctx context.Context, bookingID uuid.UUID) (int, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Pax, error)
	// Update applies non-nil fields. submittedAt is only written when the pax has none yet.
	Update(ctx context.Context, id uuid.UUID, input domain.PaxInput, submittedAt *time.Time) (*domain.Pax, error)
	SetDocumentPath(ctx context.Context, id uuid.UUID, kind domain.DocumentKind, path string) (*domain.Pax, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
