package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/util"
)

const testCheckinSecret = "checkin-secret"

type checkinFixture struct {
	store    *memStore
	resolver *CheckinAccessResolver
	now      time.Time
	hotel    domain.Hotel
	booking  domain.Booking
}

func newCheckinFixture(t *testing.T) *checkinFixture {
	t.Helper()
	f := &checkinFixture{
		store: newMemStore(),
		now:   time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	f.hotel = f.store.addHotel(domain.Hotel{UserID: uuid.New(), Name: "Hotel ABC", Slug: "hotel-abc", IsPublic: true, IsActive: true})
	f.booking = f.store.addBooking(domain.Booking{
		HotelID:       f.hotel.ID,
		ReservationID: "R-1",
		Checkin:       f.now.Add(10 * time.Hour),
		MaxPaxs:       intPtr(2),
	})
	clock := func() time.Time { return f.now }
	cfg := DefaultCheckinConfig()
	cfg.TokenSecret = testCheckinSecret
	f.resolver = NewCheckinAccessResolver(memBookingRepo{f.store}, util.NewTokenCodec().WithClock(clock), cfg, nil, &recordingLogger{})
	f.resolver.now = clock
	return f
}

func (f *checkinFixture) updateBooking(fn func(*domain.Booking)) {
	b := f.store.bookings[f.booking.ID]
	fn(&b)
	f.store.bookings[f.booking.ID] = b
}

func (f *checkinFixture) updateHotel(fn func(*domain.Hotel)) {
	h := f.store.hotels[f.hotel.ID]
	fn(&h)
	f.store.hotels[f.hotel.ID] = h
}

func expectDenied(t *testing.T, err error, reason string, status int) {
	t.Helper()
	var denied *CheckinDenied
	if !errors.As(err, &denied) {
		t.Fatalf("expected denial %q, got %v", reason, err)
	}
	if denied.Reason != reason {
		t.Fatalf("expected reason %q, got %q", reason, denied.Reason)
	}
	if denied.Status() != status {
		t.Fatalf("expected status %d, got %d", status, denied.Status())
	}
}

func TestResolveGrantsFromStoreAndMintsToken(t *testing.T) {
	f := newCheckinFixture(t)

	access, err := f.resolver.Resolve(context.Background(), "hotel-abc", f.booking.ID, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if access.FromToken {
		t.Fatalf("expected store resolution")
	}
	if access.Token == "" {
		t.Fatalf("expected a minted token")
	}
	if access.Snapshot.Booking.ID != f.booking.ID || access.Snapshot.Hotel.Slug != "hotel-abc" || access.Snapshot.Hotel.Name != "Hotel ABC" {
		t.Fatalf("unexpected snapshot %+v", access.Snapshot)
	}
	if access.Snapshot.Booking.MaxPaxs == nil || *access.Snapshot.Booking.MaxPaxs != 2 {
		t.Fatalf("expected maxPaxs in snapshot")
	}

	var claims util.CheckinClaims
	if !util.NewTokenCodec().WithClock(func() time.Time { return f.now }).Decode(access.Token, testCheckinSecret, &claims) {
		t.Fatalf("minted token should decode")
	}
	if want := f.now.Add(20 * time.Minute); !claims.ExpiresAt.Time.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, claims.ExpiresAt.Time)
	}
}

func TestResolveFastPathSkipsStore(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()

	first, err := f.resolver.Resolve(ctx, "hotel-abc", f.booking.ID, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	calls := f.store.findAccessCalls

	f.updateHotel(func(h *domain.Hotel) { h.IsActive = false })
	f.now = f.now.Add(19 * time.Minute)

	second, err := f.resolver.Resolve(ctx, "hotel-abc", f.booking.ID, "Bearer "+first.Token)
	if err != nil {
		t.Fatalf("expected cached grant, got %v", err)
	}
	if !second.FromToken || second.Token != "" {
		t.Fatalf("expected fast path without a new token, got %+v", second)
	}
	if f.store.findAccessCalls != calls {
		t.Fatalf("fast path must not hit the store")
	}
	if second.Snapshot.Booking.ID != first.Snapshot.Booking.ID || second.Snapshot.Hotel != first.Snapshot.Hotel {
		t.Fatalf("expected cached snapshot, got %+v", second.Snapshot)
	}
	if !second.Snapshot.Booking.Checkin.Equal(first.Snapshot.Booking.Checkin) {
		t.Fatalf("expected cached checkin date, got %v", second.Snapshot.Booking.Checkin)
	}
}

func TestResolveExpiredTokenFallsThrough(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()

	first, err := f.resolver.Resolve(ctx, "hotel-abc", f.booking.ID, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	f.now = f.now.Add(20 * time.Minute)
	calls := f.store.findAccessCalls

	second, err := f.resolver.Resolve(ctx, "hotel-abc", f.booking.ID, "Bearer "+first.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if second.FromToken || f.store.findAccessCalls != calls+1 {
		t.Fatalf("expected store lookup for expired token")
	}
}

func TestResolveMismatchedTokenFallsThrough(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()

	first, err := f.resolver.Resolve(ctx, "hotel-abc", f.booking.ID, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	other := f.store.addBooking(domain.Booking{HotelID: f.hotel.ID, ReservationID: "R-2", Checkin: f.now.Add(time.Hour)})
	access, err := f.resolver.Resolve(ctx, "hotel-abc", other.ID, "Bearer "+first.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if access.FromToken || access.Snapshot.Booking.ID != other.ID {
		t.Fatalf("token for another booking must not be reused, got %+v", access.Snapshot)
	}

	_, err = f.resolver.Resolve(ctx, "other-hotel", f.booking.ID, "Bearer "+first.Token)
	expectDenied(t, err, ReasonHotelMismatch, http.StatusUnauthorized)
}

func TestResolveIgnoresGarbageAuthorization(t *testing.T) {
	f := newCheckinFixture(t)
	for _, header := range []string{"Bearer", "Bearer garbage", "Basic abc", "' OR 1=1 --"} {
		access, err := f.resolver.Resolve(context.Background(), "hotel-abc", f.booking.ID, header)
		if err != nil {
			t.Fatalf("header %q: %v", header, err)
		}
		if access.FromToken {
			t.Fatalf("header %q should not be trusted", header)
		}
	}
}

func TestResolveRejectsTokenSignedWithOtherSecret(t *testing.T) {
	f := newCheckinFixture(t)
	claims := &util.CheckinClaims{
		Booking: domain.CheckinBooking{ID: f.booking.ID, Status: domain.BookingStatusPending},
		Hotel:   domain.CheckinHotel{Slug: "hotel-abc"},
	}
	forged, err := util.NewTokenCodec().WithClock(func() time.Time { return f.now }).Encode(claims, "attacker", time.Hour)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.updateBooking(func(b *domain.Booking) { b.IsLocked = true })

	_, err = f.resolver.Resolve(context.Background(), "hotel-abc", f.booking.ID, "Bearer "+forged)
	expectDenied(t, err, ReasonBookingLocked, http.StatusUnauthorized)
}

func TestResolveDenials(t *testing.T) {
	cases := []struct {
		name   string
		slug   string
		mutate func(f *checkinFixture)
		reason string
	}{
		{name: "slug mismatch", slug: "elsewhere", reason: ReasonHotelMismatch},
		{name: "not public", mutate: func(f *checkinFixture) { f.updateHotel(func(h *domain.Hotel) { h.IsPublic = false }) }, reason: ReasonHotelNotPublic},
		{name: "inactive", mutate: func(f *checkinFixture) { f.updateHotel(func(h *domain.Hotel) { h.IsActive = false }) }, reason: ReasonHotelInactive},
		{name: "locked", mutate: func(f *checkinFixture) { f.updateBooking(func(b *domain.Booking) { b.IsLocked = true }) }, reason: ReasonBookingLocked},
		{name: "too early", mutate: func(f *checkinFixture) {
			f.updateBooking(func(b *domain.Booking) { b.Checkin = f.now.Add(48*time.Hour + time.Minute) })
		}, reason: ReasonNotYetEnabled},
		{name: "completed", mutate: func(f *checkinFixture) {
			f.updateBooking(func(b *domain.Booking) { b.Status = domain.BookingStatusCompleted })
		}, reason: ReasonAlreadyCompleted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newCheckinFixture(t)
			if tc.mutate != nil {
				tc.mutate(f)
			}
			slug := tc.slug
			if slug == "" {
				slug = "hotel-abc"
			}
			_, err := f.resolver.Resolve(context.Background(), slug, f.booking.ID, "")
			expectDenied(t, err, tc.reason, http.StatusUnauthorized)
		})
	}
}

func TestResolveWindowBoundary(t *testing.T) {
	f := newCheckinFixture(t)
	f.updateBooking(func(b *domain.Booking) { b.Checkin = f.now.Add(47*time.Hour + 59*time.Minute) })
	if _, err := f.resolver.Resolve(context.Background(), "hotel-abc", f.booking.ID, ""); err != nil {
		t.Fatalf("expected grant inside the window, got %v", err)
	}

	f.updateBooking(func(b *domain.Booking) { b.Checkin = f.now.Add(48 * time.Hour) })
	if _, err := f.resolver.Resolve(context.Background(), "hotel-abc", f.booking.ID, ""); err != nil {
		t.Fatalf("expected grant exactly at the window start, got %v", err)
	}
}

func TestResolveBookingNotFound(t *testing.T) {
	f := newCheckinFixture(t)
	_, err := f.resolver.Resolve(context.Background(), "hotel-abc", uuid.New(), "")
	expectDenied(t, err, ReasonBookingNotFound, http.StatusNotFound)
}

func TestResolveStoreFailureIsNotADenial(t *testing.T) {
	f := newCheckinFixture(t)
	f.store.findAccessErr = errors.New("connection refused")

	_, err := f.resolver.Resolve(context.Background(), "hotel-abc", f.booking.ID, "")
	if err == nil {
		t.Fatalf("expected error")
	}
	var denied *CheckinDenied
	if errors.As(err, &denied) {
		t.Fatalf("storage failure must not be reported as a denial")
	}
}

func TestResolveCompletedSnapshotIsNotTrusted(t *testing.T) {
	f := newCheckinFixture(t)
	claims := &util.CheckinClaims{
		Booking: domain.CheckinBooking{ID: f.booking.ID, Status: domain.BookingStatusCompleted},
		Hotel:   domain.CheckinHotel{Slug: "hotel-abc"},
	}
	signed, err := util.NewTokenCodec().WithClock(func() time.Time { return f.now }).Encode(claims, testCheckinSecret, time.Minute)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.updateBooking(func(b *domain.Booking) { b.Status = domain.BookingStatusCompleted })

	_, err = f.resolver.Resolve(context.Background(), "hotel-abc", f.booking.ID, "Bearer "+signed)
	expectDenied(t, err, ReasonAlreadyCompleted, http.StatusUnauthorized)
}
