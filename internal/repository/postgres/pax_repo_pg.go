package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
)

const paxColumns = `id, booking_id, firstname, lastname, birth_date, email, phone, doc_type, doc_number,
        nationality_code, arrival_date, is_contact, doc_front_path, doc_back_path, passport_path,
        guest_observations, submitted_at, created_at, updated_at`

type PaxRepository struct {
	db *sqlx.DB
}

func NewPaxRepo(db *sqlx.DB) *PaxRepository {
	return &PaxRepository{db: db}
}

func (r *PaxRepository) Create(ctx context.Context, bookingID uuid.UUID, input domain.PaxInput) (*domain.Pax, error) {
	query := `
        INSERT INTO paxs (booking_id, firstname, lastname, birth_date, email, phone, doc_type, doc_number,
                          nationality_code, arrival_date, is_contact, guest_observations)
        VALUES ($1, COALESCE($2, ''), COALESCE($3, ''), $4, $5, $6, COALESCE($7, ''), COALESCE($8, ''),
                $9, $10, COALESCE($11, FALSE), $12)
        RETURNING ` + paxColumns
	var pax domain.Pax
	row := r.db.QueryRowxContext(ctx, query, bookingID, input.Firstname, input.Lastname, input.BirthDate,
		input.Email, input.Phone, input.DocType, input.DocNumber, input.NationalityCode, input.ArrivalDate,
		input.IsContact, input.GuestObservations)
	if err := row.StructScan(&pax); err != nil {
		return nil, err
	}
	return &pax, nil
}

func (r *PaxRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Pax, error) {
	query := `SELECT ` + paxColumns + ` FROM paxs WHERE booking_id = $1 ORDER BY is_contact DESC, created_at ASC`
	paxs := make([]domain.Pax, 0)
	if err := r.db.SelectContext(ctx, &paxs, query, bookingID); err != nil {
		return nil, err
	}
	return paxs, nil
}

func (r *PaxRepository) CountByBooking(ctx context.Context, bookingID uuid.UUID) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM paxs WHERE booking_id = $1`, bookingID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PaxRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Pax, error) {
	query := `SELECT ` + paxColumns + ` FROM paxs WHERE id = $1`
	var pax domain.Pax
	if err := r.db.GetContext(ctx, &pax, query, id); err != nil {
		return nil, err
	}
	return &pax, nil
}

func (r *PaxRepository) Update(ctx context.Context, id uuid.UUID, input domain.PaxInput, submittedAt *time.Time) (*domain.Pax, error) {
	query := `
        UPDATE paxs
        SET firstname = COALESCE($2, firstname),
            lastname = COALESCE($3, lastname),
            birth_date = COALESCE($4, birth_date),
            email = COALESCE($5, email),
            phone = COALESCE($6, phone),
            doc_type = COALESCE($7, doc_type),
            doc_number = COALESCE($8, doc_number),
            nationality_code = COALESCE($9, nationality_code),
            arrival_date = COALESCE($10, arrival_date),
            is_contact = COALESCE($11, is_contact),
            guest_observations = COALESCE($12, guest_observations),
            submitted_at = COALESCE(submitted_at, $13),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + paxColumns
	var pax domain.Pax
	row := r.db.QueryRowxContext(ctx, query, id, input.Firstname, input.Lastname, input.BirthDate, input.Email,
		input.Phone, input.DocType, input.DocNumber, input.NationalityCode, input.ArrivalDate, input.IsContact,
		input.GuestObservations, submittedAt)
	if err := row.StructScan(&pax); err != nil {
		return nil, err
	}
	return &pax, nil
}

func (r *PaxRepository) SetDocumentPath(ctx context.Context, id uuid.UUID, kind domain.DocumentKind, path string) (*domain.Pax, error) {
	var column string
	switch kind {
	case domain.DocumentFront:
		column = "doc_front_path"
	case domain.DocumentBack:
		column = "doc_back_path"
	case domain.DocumentPassport:
		column = "passport_path"
	default:
		return nil, fmt.Errorf("unknown document kind %q", kind)
	}
	query := `UPDATE paxs SET ` + column + ` = $2, updated_at = NOW() WHERE id = $1 RETURNING ` + paxColumns
	var pax domain.Pax
	if err := r.db.QueryRowxContext(ctx, query, id, path).StructScan(&pax); err != nil {
		return nil, err
	}
	return &pax, nil
}

func (r *PaxRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM paxs WHERE id = $1`, id)
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
