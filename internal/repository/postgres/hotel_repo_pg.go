package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
)

const hotelColumns = `id, user_id, name, slug, cover_image, phone, email, is_public, is_active, allowed_fields, created_at, updated_at`

type HotelRepository struct {
	db *sqlx.DB
}

func NewHotelRepo(db *sqlx.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

func (r *HotelRepository) Create(ctx context.Context, userID uuid.UUID, input domain.HotelInput) (*domain.Hotel, error) {
	query := `
        INSERT INTO hotels (user_id, name, slug, cover_image, phone, email, is_public, is_active, allowed_fields)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING ` + hotelColumns
	var hotel domain.Hotel
	row := r.db.QueryRowxContext(ctx, query, userID, input.Name, input.Slug, input.CoverImage, input.Phone, input.Email,
		input.IsPublic, input.IsActive, pq.StringArray(input.AllowedFields))
	if err := row.StructScan(&hotel); err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *HotelRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Hotel, error) {
	query := `SELECT ` + hotelColumns + ` FROM hotels WHERE user_id = $1 ORDER BY created_at DESC`
	hotels := make([]domain.Hotel, 0)
	if err := r.db.SelectContext(ctx, &hotels, query, userID); err != nil {
		return nil, err
	}
	return hotels, nil
}

func (r *HotelRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Hotel, error) {
	query := `SELECT ` + hotelColumns + ` FROM hotels WHERE id = $1 AND user_id = $2`
	var hotel domain.Hotel
	if err := r.db.GetContext(ctx, &hotel, query, id, userID); err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *HotelRepository) FindBySlug(ctx context.Context, slug string) (*domain.Hotel, error) {
	query := `SELECT ` + hotelColumns + ` FROM hotels WHERE slug = $1`
	var hotel domain.Hotel
	if err := r.db.GetContext(ctx, &hotel, query, slug); err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *HotelRepository) Update(ctx context.Context, id, userID uuid.UUID, input domain.HotelInput) (*domain.Hotel, error) {
	query := `
        UPDATE hotels
        SET name = $3,
            slug = $4,
            cover_image = $5,
            phone = $6,
            email = $7,
            is_public = $8,
            is_active = $9,
            allowed_fields = $10,
            updated_at = NOW()
        WHERE id = $1 AND user_id = $2
        RETURNING ` + hotelColumns
	var hotel domain.Hotel
	row := r.db.QueryRowxContext(ctx, query, id, userID, input.Name, input.Slug, input.CoverImage, input.Phone, input.Email,
		input.IsPublic, input.IsActive, pq.StringArray(input.AllowedFields))
	if err := row.StructScan(&hotel); err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *HotelRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM hotels WHERE id = $1 AND user_id = $2`, id, userID)
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

func (r *HotelRepository) OwnerEmail(ctx context.Context, id uuid.UUID) (string, *string, error) {
	const query = `
        SELECT COALESCE(NULLIF(h.email, ''), u.email) AS email, u.name
        FROM hotels h
        INNER JOIN users u ON u.id = h.user_id
        WHERE h.id = $1
    `
	var row struct {
		Email string  `db:"email"`
		Name  *string `db:"name"`
	}
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return "", nil, err
	}
	return row.Email, row.Name, nil
}
