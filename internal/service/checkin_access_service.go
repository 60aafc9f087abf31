package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/metrics"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/repository/ports"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/util"
)

// Denial reasons surfaced to guests.
const (
	ReasonBookingNotFound  = "booking not found"
	ReasonHotelMismatch    = "hotel mismatch"
	ReasonHotelNotPublic   = "hotel not public"
	ReasonHotelInactive    = "hotel inactive"
	ReasonBookingLocked    = "booking locked"
	ReasonNotYetEnabled    = "not yet enabled"
	ReasonAlreadyCompleted = "already completed"
)

// CheckinDenied is returned when a guest may not open a booking's check-in.
type CheckinDenied struct {
	Reason string
}

func (e *CheckinDenied) Error() string {
	return "check-in denied: " + e.Reason
}

// Status is the HTTP status the denial is reported with.
func (e *CheckinDenied) Status() int {
	if e.Reason == ReasonBookingNotFound {
		return http.StatusNotFound
	}
	return http.StatusUnauthorized
}

type CheckinAccess struct {
	Snapshot domain.CheckinSnapshot
	// Token is set when a new public token was minted from store data.
	Token     string
	FromToken bool
}

// CheckinAccessResolver decides whether an unauthenticated guest may work on
// a booking. A short-lived signed snapshot lets repeat requests skip the store.
type CheckinAccessResolver struct {
	bookings ports.BookingRepository
	codec    *util.TokenCodec
	cfg      CheckinConfig
	metrics  *metrics.Metrics
	logger   Logger
	now      func() time.Time
}

func NewCheckinAccessResolver(bookings ports.BookingRepository, codec *util.TokenCodec, cfg CheckinConfig, m *metrics.Metrics, logger Logger) *CheckinAccessResolver {
	defaults := DefaultCheckinConfig()
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaults.TokenTTL
	}
	if cfg.Window <= 0 {
		cfg.Window = defaults.Window
	}
	if codec == nil {
		codec = util.NewTokenCodec()
	}
	return &CheckinAccessResolver{
		bookings: bookings,
		codec:    codec,
		cfg:      cfg,
		metrics:  m,
		logger:   defaultLogger(logger),
		now:      time.Now,
	}
}

// Resolve returns *CheckinDenied for business refusals. Any other error is a
// storage or signing failure.
func (r *CheckinAccessResolver) Resolve(ctx context.Context, slug string, bookingID uuid.UUID, authorization string) (*CheckinAccess, error) {
	if snapshot, ok := r.fromToken(authorization, slug, bookingID); ok {
		r.metrics.CheckinResolved(metrics.CheckinToken, "")
		return &CheckinAccess{Snapshot: snapshot, FromToken: true}, nil
	}

	access, err := r.bookings.FindAccess(ctx, bookingID)
	if err != nil {
		if isNotFound(err) {
			return nil, r.deny(ReasonBookingNotFound)
		}
		r.metrics.CheckinResolved(metrics.CheckinError, "")
		r.logger.Printf("checkin: find booking %s: %v", bookingID, err)
		return nil, fmt.Errorf("find booking access: %w", err)
	}
	if reason := r.denialReason(access, slug); reason != "" {
		return nil, r.deny(reason)
	}

	snapshot := domain.CheckinSnapshot{
		Booking: domain.CheckinBooking{
			ID:      access.BookingID,
			Checkin: access.Checkin,
			Status:  access.Status,
			MaxPaxs: access.MaxPaxs,
		},
		Hotel: domain.CheckinHotel{
			Name: access.HotelName,
			Slug: access.HotelSlug,
		},
	}
	claims := &util.CheckinClaims{Booking: snapshot.Booking, Hotel: snapshot.Hotel}
	claims.Subject = access.BookingID.String()
	token, err := r.codec.Encode(claims, r.cfg.TokenSecret, r.cfg.TokenTTL)
	if err != nil {
		r.metrics.CheckinResolved(metrics.CheckinError, "")
		r.logger.Printf("checkin: sign token: %v", err)
		return nil, fmt.Errorf("sign checkin token: %w", err)
	}
	r.metrics.CheckinResolved(metrics.CheckinStore, "")
	return &CheckinAccess{Snapshot: snapshot, Token: token}, nil
}

func (r *CheckinAccessResolver) fromToken(authorization, slug string, bookingID uuid.UUID) (domain.CheckinSnapshot, bool) {
	signed := bearerValue(authorization)
	if signed == "" {
		return domain.CheckinSnapshot{}, false
	}
	var claims util.CheckinClaims
	if !r.codec.Decode(signed, r.cfg.TokenSecret, &claims) {
		return domain.CheckinSnapshot{}, false
	}
	if claims.Booking.ID != bookingID || claims.Hotel.Slug != slug {
		return domain.CheckinSnapshot{}, false
	}
	if claims.Booking.Status == domain.BookingStatusCompleted {
		return domain.CheckinSnapshot{}, false
	}
	return claims.Snapshot(), true
}

func (r *CheckinAccessResolver) denialReason(access *domain.BookingAccess, slug string) string {
	switch {
	case access.HotelSlug != slug:
		return ReasonHotelMismatch
	case !access.HotelIsPublic:
		return ReasonHotelNotPublic
	case !access.HotelIsActive:
		return ReasonHotelInactive
	case access.IsLocked:
		return ReasonBookingLocked
	case r.now().Before(access.Checkin.Add(-r.cfg.Window)):
		return ReasonNotYetEnabled
	case access.Status == domain.BookingStatusCompleted:
		return ReasonAlreadyCompleted
	}
	return ""
}

func (r *CheckinAccessResolver) deny(reason string) error {
	r.metrics.CheckinResolved(metrics.CheckinDenied, reason)
	return &CheckinDenied{Reason: reason}
}
