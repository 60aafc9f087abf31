package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
)

type UserRepository interface {
	CreateEmailUser(ctx context.Context, email string, name *string, passwordHash, passwordSalt []byte, emailVerified bool) (*domain.User, error)
	UpsertGoogleUser(ctx context.Context, account domain.OAuthAccount, email string, name, avatar *string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, avatar *string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error
	MarkEmailVerified(ctx context.Context, id uuid.UUID) (*domain.User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
