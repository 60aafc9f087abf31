package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
)

type UserTokenRepository struct {
	db *sqlx.DB
}

func NewUserTokenRepo(db *sqlx.DB) *UserTokenRepository {
	return &UserTokenRepository{db: db}
}

func (r *UserTokenRepository) Replace(ctx context.Context, userID uuid.UUID, email string, typeUse domain.UserTokenType, codeHash string, expiresAt time.Time) (*domain.UserToken, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_tokens WHERE user_id = $1 AND type_use = $2`, userID, typeUse); err != nil {
		return nil, err
	}

	const query = `
        INSERT INTO user_tokens (user_id, type_use, email, code_hash, expires_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, user_id, type_use, email, code_hash, expires_at, created_at
    `
	var token domain.UserToken
	if err := tx.QueryRowxContext(ctx, query, userID, typeUse, email, codeHash, expiresAt).StructScan(&token); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *UserTokenRepository) FindByCode(ctx context.Context, codeHash string, typeUse domain.UserTokenType) (*domain.UserToken, error) {
	const query = `
        SELECT id, user_id, type_use, email, code_hash, expires_at, created_at
        FROM user_tokens
        WHERE code_hash = $1 AND type_use = $2
    `
	var token domain.UserToken
	if err := r.db.GetContext(ctx, &token, query, codeHash, typeUse); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *UserTokenRepository) LatestByUser(ctx context.Context, userID uuid.UUID, typeUse domain.UserTokenType) (*domain.UserToken, error) {
	const query = `
        SELECT id, user_id, type_use, email, code_hash, expires_at, created_at
        FROM user_tokens
        WHERE user_id = $1 AND type_use = $2
        ORDER BY created_at DESC
        LIMIT 1
    `
	var token domain.UserToken
	if err := r.db.GetContext(ctx, &token, query, userID, typeUse); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *UserTokenRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_tokens WHERE id = $1`, id)
	return err
}
