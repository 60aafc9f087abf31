package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
)

const userColumns = `id, email, name, avatar, password_hash, password_salt, email_verified, last_login, created_at, updated_at`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateEmailUser(ctx context.Context, email string, name *string, passwordHash, passwordSalt []byte, emailVerified bool) (*domain.User, error) {
	query := `
        INSERT INTO users (email, name, password_hash, password_salt, email_verified)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, email, name, passwordHash, passwordSalt, emailVerified)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertGoogleUser links the provider account to the user with the same email,
// creating the user when none exists. Google addresses are treated as verified.
func (r *UserRepository) UpsertGoogleUser(ctx context.Context, account domain.OAuthAccount, email string, name, avatar *string) (*domain.User, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	query := `
        INSERT INTO users (email, name, avatar, email_verified)
        VALUES ($1, $2, $3, TRUE)
        ON CONFLICT (email) DO UPDATE
        SET name = COALESCE(users.name, EXCLUDED.name),
            avatar = COALESCE(users.avatar, EXCLUDED.avatar),
            email_verified = TRUE,
            updated_at = NOW()
        RETURNING ` + userColumns

	var user domain.User
	if err := tx.QueryRowxContext(ctx, query, email, name, avatar).StructScan(&user); err != nil {
		return nil, err
	}

	const link = `
        INSERT INTO oauth_accounts (provider, provider_user_id, user_id)
        VALUES ($1, $2, $3)
        ON CONFLICT (provider, provider_user_id) DO NOTHING
    `
	if _, err := tx.ExecContext(ctx, link, account.Provider, account.ProviderUserID, user.ID); err != nil {
		return nil, fmt.Errorf("link oauth account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, avatar *string) (*domain.User, error) {
	query := `
        UPDATE users
        SET name = COALESCE($2, name),
            avatar = COALESCE($3, avatar),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + userColumns
	var user domain.User
	if err := r.db.QueryRowxContext(ctx, query, id, name, avatar).StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error {
	const query = `
        UPDATE users
        SET password_hash = $2,
            password_salt = $3,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, passwordHash, passwordSalt)
	return err
}

func (r *UserRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
        UPDATE users
        SET email_verified = TRUE,
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + userColumns
	var user domain.User
	if err := r.db.QueryRowxContext(ctx, query, id).StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login = NOW() WHERE id = $1`, id)
	return err
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
