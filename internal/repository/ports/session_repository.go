package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
)

type SessionRepository interface {
	// Insert fails when the id already exists.
	Insert(ctx context.Context, session domain.Session) (*domain.Session, error)
	// ListByUser returns up to limit sessions ordered by soonest expiry first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Session, error)
	// FindWithUser returns sql.ErrNoRows when no session has the given id.
	FindWithUser(ctx context.Context, id string) (*domain.SessionWithUser, error)
	UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error
	DeleteByID(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
	// DeleteByIDForUser reports whether a row was removed.
	DeleteByIDForUser(ctx context.Context, id string, userID uuid.UUID) (bool, error)
}
