package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
)

type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepo(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Insert(ctx context.Context, session domain.Session) (*domain.Session, error) {
	const query = `
        INSERT INTO sessions (id, user_id, expires_at, device_info)
        VALUES ($1, $2, $3, $4)
        RETURNING id, user_id, expires_at, device_info, created_at
    `
	row := r.db.QueryRowxContext(ctx, query, session.ID, session.UserID, session.ExpiresAt, session.DeviceInfo)
	var stored domain.Session
	if err := row.StructScan(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *SessionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Session, error) {
	query := `
        SELECT id, user_id, expires_at, device_info, created_at
        FROM sessions
        WHERE user_id = $1
        ORDER BY expires_at ASC
    `
	args := []interface{}{userID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}
	sessions := make([]domain.Session, 0)
	if err := r.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, err
	}
	return sessions, nil
}

type sessionUserRow struct {
	ID            string     `db:"id"`
	UserID        uuid.UUID  `db:"user_id"`
	ExpiresAt     time.Time  `db:"expires_at"`
	DeviceInfo    *string    `db:"device_info"`
	CreatedAt     time.Time  `db:"created_at"`
	Email         string     `db:"email"`
	Name          *string    `db:"name"`
	Avatar        *string    `db:"avatar"`
	PasswordHash  []byte     `db:"password_hash"`
	PasswordSalt  []byte     `db:"password_salt"`
	EmailVerified bool       `db:"email_verified"`
	LastLogin     *time.Time `db:"last_login"`
	UserCreatedAt time.Time  `db:"user_created_at"`
	UserUpdatedAt time.Time  `db:"user_updated_at"`
}

func (r *SessionRepository) FindWithUser(ctx context.Context, id string) (*domain.SessionWithUser, error) {
	const query = `
        SELECT s.id, s.user_id, s.expires_at, s.device_info, s.created_at,
               u.email, u.name, u.avatar, u.password_hash, u.password_salt,
               u.email_verified, u.last_login,
               u.created_at AS user_created_at, u.updated_at AS user_updated_at
        FROM sessions s
        INNER JOIN users u ON u.id = s.user_id
        WHERE s.id = $1
    `
	var row sessionUserRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	return &domain.SessionWithUser{
		Session: domain.Session{
			ID:         row.ID,
			UserID:     row.UserID,
			ExpiresAt:  row.ExpiresAt,
			DeviceInfo: row.DeviceInfo,
			CreatedAt:  row.CreatedAt,
		},
		User: domain.User{
			ID:            row.UserID,
			Email:         row.Email,
			Name:          row.Name,
			Avatar:        row.Avatar,
			PasswordHash:  row.PasswordHash,
			PasswordSalt:  row.PasswordSalt,
			EmailVerified: row.EmailVerified,
			LastLogin:     row.LastLogin,
			CreatedAt:     row.UserCreatedAt,
			UpdatedAt:     row.UserUpdatedAt,
		},
	}, nil
}

func (r *SessionRepository) UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE sessions SET expires_at = $2 WHERE id = $1`, id, expiresAt)
	return err
}

func (r *SessionRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

func (r *SessionRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}

func (r *SessionRepository) DeleteByIDForUser(ctx context.Context, id string, userID uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
