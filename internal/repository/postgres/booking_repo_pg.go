package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
)

const bookingColumns = `id, hotel_id, user_id, reservation_id, checkin, checkout, status, nights, observations,
        is_active, is_locked, max_paxs, required_fields, allowed_fields, signature, completed_at, created_at, updated_at`

type BookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepo(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) CreateWithContact(ctx context.Context, userID uuid.UUID, input domain.BookingInput, contact domain.BookingContact) (*domain.Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	query := `
        INSERT INTO bookings (hotel_id, user_id, reservation_id, checkin, checkout, status, nights, observations,
                              is_active, is_locked, max_paxs, required_fields, allowed_fields)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING ` + bookingColumns
	var booking domain.Booking
	row := tx.QueryRowxContext(ctx, query, input.HotelID, userID, input.ReservationID, input.Checkin, input.Checkout,
		input.Status, input.Nights, input.Observations, input.IsActive, input.IsLocked, input.MaxPaxs,
		pq.StringArray(input.RequiredFields), pq.StringArray(input.AllowedFields))
	if err := row.StructScan(&booking); err != nil {
		return nil, err
	}

	const paxQuery = `
        INSERT INTO paxs (booking_id, firstname, lastname, email, doc_type, doc_number, is_contact)
        VALUES ($1, $2, $3, NULLIF($4, ''), '', '', TRUE)
    `
	if _, err := tx.ExecContext(ctx, paxQuery, booking.ID, contact.Firstname, contact.Lastname, contact.Email); err != nil {
		return nil, fmt.Errorf("insert contact pax: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID, hotelID *uuid.UUID) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1`
	args := []interface{}{userID}
	if hotelID != nil {
		query += ` AND hotel_id = $2`
		args = append(args, *hotelID)
	}
	query += ` ORDER BY checkin DESC`

	bookings := make([]domain.Booking, 0)
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND user_id = $2`
	var booking domain.Booking
	if err := r.db.GetContext(ctx, &booking, query, id, userID); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	var booking domain.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) FindByReservation(ctx context.Context, hotelID uuid.UUID, reservationID string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE hotel_id = $1 AND reservation_id = $2`
	var booking domain.Booking
	if err := r.db.GetContext(ctx, &booking, query, hotelID, reservationID); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) FindAccess(ctx context.Context, id uuid.UUID) (*domain.BookingAccess, error) {
	const query = `
        SELECT b.id AS booking_id, b.checkin, b.status, b.max_paxs, b.is_locked,
               h.id AS hotel_id, h.name AS hotel_name, h.slug AS hotel_slug,
               h.is_public AS hotel_is_public, h.is_active AS hotel_is_active
        FROM bookings b
        INNER JOIN hotels h ON h.id = b.hotel_id
        WHERE b.id = $1
    `
	var access domain.BookingAccess
	if err := r.db.GetContext(ctx, &access, query, id); err != nil {
		return nil, err
	}
	return &access, nil
}

func (r *BookingRepository) Update(ctx context.Context, id, userID uuid.UUID, input domain.BookingInput) (*domain.Booking, error) {
	query := `
        UPDATE bookings
        SET reservation_id = $3,
            checkin = $4,
            checkout = $5,
            status = $6,
            nights = $7,
            observations = $8,
            is_active = $9,
            is_locked = $10,
            max_paxs = $11,
            required_fields = $12,
            allowed_fields = $13,
            updated_at = NOW()
        WHERE id = $1 AND user_id = $2
        RETURNING ` + bookingColumns
	var booking domain.Booking
	row := r.db.QueryRowxContext(ctx, query, id, userID, input.ReservationID, input.Checkin, input.Checkout,
		input.Status, input.Nights, input.Observations, input.IsActive, input.IsLocked, input.MaxPaxs,
		pq.StringArray(input.RequiredFields), pq.StringArray(input.AllowedFields))
	if err := row.StructScan(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1 AND user_id = $2`, id, userID)
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

func (r *BookingRepository) MarkCompleted(ctx context.Context, id uuid.UUID, signature *string, completedAt time.Time) (*domain.Booking, error) {
	query := `
        UPDATE bookings
        SET status = $2,
            signature = $3,
            completed_at = $4,
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + bookingColumns
	var booking domain.Booking
	row := r.db.QueryRowxContext(ctx, query, id, domain.BookingStatusCompleted, signature, completedAt)
	if err := row.StructScan(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}
