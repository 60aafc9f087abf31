package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
)

type ProfileInput struct {
	Name   *string
	Avatar *string
}

func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	out := user.WithoutCredentials()
	return &out, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) (*domain.User, error) {
	name := trimmed(input.Name)
	avatar := trimmed(input.Avatar)
	user, err := s.users.UpdateProfile(ctx, userID, name, avatar)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	out := user.WithoutCredentials()
	return &out, nil
}

// DeleteAccount revokes every session before removing the user.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.sessions.InvalidateAllSessions(ctx, userID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
