package service

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrEmailAlreadyUsed         = errors.New("email already registered")
	ErrPendingVerification      = errors.New("account pending email verification")
	ErrEmailNotVerified         = errors.New("email not verified")
	ErrEmailAlreadyVerified     = errors.New("email already verified")
	ErrPasswordLoginUnavailable = errors.New("password login unavailable for this account")
	ErrPasswordTooWeak          = errors.New("password does not meet requirements")
	ErrInvalidCode              = errors.New("invalid or expired code")
	ErrThrottled                = errors.New("too many requests, try again later")
	ErrGoogleLoginDisabled      = errors.New("google login is not configured")
	ErrInvalidGoogleToken       = errors.New("invalid google token")
	ErrUserNotFound             = errors.New("user not found")
	ErrSessionNotFound          = errors.New("session not found")
	ErrNoActiveSession          = errors.New("no active session")

	ErrHotelNotFound      = errors.New("hotel not found")
	ErrHotelUnavailable   = errors.New("hotel not available")
	ErrSlugTaken          = errors.New("slug already in use")
	ErrInvalidField       = errors.New("unknown guest field")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrReservationTaken   = errors.New("reservation id already used for this hotel")
	ErrHotelChange        = errors.New("booking hotel cannot be changed")
	ErrInvalidStatus      = errors.New("invalid booking status")
	ErrPaxNotFound        = errors.New("pax not found")
	ErrPaxForbidden       = errors.New("pax does not belong to this booking")
	ErrPaxLimit           = errors.New("booking already has the maximum number of guests")
	ErrCheckinIncomplete  = errors.New("some guests have not submitted their data")
	ErrCheckinClosed      = errors.New("check-in no longer accepts changes")
	ErrInvalidDocument    = errors.New("invalid document upload")
	ErrDocumentTooLarge   = errors.New("document exceeds the size limit")
	ErrReservationUnknown = errors.New("reservation not found")
	ErrLastNameMismatch   = errors.New("last name does not match")
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
