package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
)

type UserTokenRepository interface {
	// Replace removes the user's existing tokens of the same type before inserting.
	Replace(ctx context.Context, userID uuid.UUID, email string, typeUse domain.UserTokenType, codeHash string, expiresAt time.Time) (*domain.UserToken, error)
	FindByCode(ctx context.Context, codeHash string, typeUse domain.UserTokenType) (*domain.UserToken, error)
	LatestByUser(ctx context.Context, userID uuid.UUID, typeUse domain.UserTokenType) (*domain.UserToken, error)
	Delete(ctx context.Context, id int64) error
}
