package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
)

func newBookingFixture(t *testing.T) (*BookingService, *memStore, uuid.UUID, domain.Hotel) {
	t.Helper()
	store := newMemStore()
	owner := uuid.New()
	hotel := store.addHotel(domain.Hotel{UserID: owner, Name: "Hotel ABC", Slug: "hotel-abc", IsPublic: true, IsActive: true})
	return NewBookingService(memBookingRepo{store}, memHotelRepo{store}), store, owner, hotel
}

func TestBookingCreateAddsContactPax(t *testing.T) {
	svc, store, owner, hotel := newBookingFixture(t)

	booking, err := svc.Create(context.Background(), owner, domain.BookingInput{
		HotelID:       hotel.ID,
		ReservationID: " R-100 ",
		Checkin:       time.Now().Add(24 * time.Hour),
		Status:        domain.BookingStatusConfirmed,
		MaxPaxs:       intPtr(2),
	}, domain.BookingContact{Firstname: "Ana", Lastname: "Silva", Email: "ANA@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if booking.Status != domain.BookingStatusPending {
		t.Fatalf("new bookings start pending, got %s", booking.Status)
	}
	if booking.ReservationID != "R-100" {
		t.Fatalf("expected trimmed reservation id, got %q", booking.ReservationID)
	}
	paxs, _ := memPaxRepo{store}.ListByBooking(context.Background(), booking.ID)
	if len(paxs) != 1 || !paxs[0].IsContact || paxs[0].Lastname != "Silva" {
		t.Fatalf("expected contact pax, got %+v", paxs)
	}
	if paxs[0].Email == nil || *paxs[0].Email != "ana@example.com" {
		t.Fatalf("expected normalised contact email")
	}
}

func TestBookingCreateRules(t *testing.T) {
	svc, _, owner, hotel := newBookingFixture(t)
	ctx := context.Background()
	input := domain.BookingInput{HotelID: hotel.ID, ReservationID: "R-1", Checkin: time.Now()}
	contact := domain.BookingContact{Firstname: "Ana", Lastname: "Silva"}

	if _, err := svc.Create(ctx, uuid.New(), input, contact); !errors.Is(err, ErrHotelNotFound) {
		t.Fatalf("expected ErrHotelNotFound for foreign hotel, got %v", err)
	}
	if _, err := svc.Create(ctx, owner, input, contact); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, owner, input, contact); !errors.Is(err, ErrReservationTaken) {
		t.Fatalf("expected ErrReservationTaken, got %v", err)
	}
	bad := input
	bad.ReservationID = "R-2"
	bad.RequiredFields = []string{"unknown"}
	if _, err := svc.Create(ctx, owner, bad, contact); !errors.Is(err, ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField, got %v", err)
	}
}

func TestBookingUpdateRules(t *testing.T) {
	svc, store, owner, hotel := newBookingFixture(t)
	ctx := context.Background()
	other := store.addHotel(domain.Hotel{UserID: owner, Slug: "hotel-other"})

	booking, err := svc.Create(ctx, owner, domain.BookingInput{HotelID: hotel.ID, ReservationID: "R-1", Checkin: time.Now()}, domain.BookingContact{Lastname: "Silva"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, owner, domain.BookingInput{HotelID: hotel.ID, ReservationID: "R-2", Checkin: time.Now()}, domain.BookingContact{Lastname: "Costa"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, owner, booking.ID, domain.BookingInput{HotelID: other.ID, ReservationID: "R-1"}); !errors.Is(err, ErrHotelChange) {
		t.Fatalf("expected ErrHotelChange, got %v", err)
	}
	if _, err := svc.Update(ctx, owner, booking.ID, domain.BookingInput{ReservationID: "R-2"}); !errors.Is(err, ErrReservationTaken) {
		t.Fatalf("expected ErrReservationTaken, got %v", err)
	}
	if _, err := svc.Update(ctx, owner, booking.ID, domain.BookingInput{ReservationID: "R-1", Status: "archived"}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := svc.Update(ctx, uuid.New(), booking.ID, domain.BookingInput{ReservationID: "R-1"}); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}

	updated, err := svc.Update(ctx, owner, booking.ID, domain.BookingInput{ReservationID: "R-1", Status: domain.BookingStatusConfirmed, IsLocked: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.HotelID != hotel.ID || updated.Status != domain.BookingStatusConfirmed || !updated.IsLocked {
		t.Fatalf("unexpected booking %+v", updated)
	}
}

func TestBookingListFiltersByHotel(t *testing.T) {
	svc, store, owner, hotel := newBookingFixture(t)
	ctx := context.Background()
	other := store.addHotel(domain.Hotel{UserID: owner, Slug: "hotel-other"})

	for i, h := range []uuid.UUID{hotel.ID, hotel.ID, other.ID} {
		input := domain.BookingInput{HotelID: h, ReservationID: uuid.NewString(), Checkin: time.Now().Add(time.Duration(i) * time.Hour)}
		if _, err := svc.Create(ctx, owner, input, domain.BookingContact{Lastname: "X"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	all, err := svc.List(ctx, owner, nil)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 bookings, got %d (%v)", len(all), err)
	}
	filtered, err := svc.List(ctx, owner, &hotel.ID)
	if err != nil || len(filtered) != 2 {
		t.Fatalf("expected 2 bookings, got %d (%v)", len(filtered), err)
	}
	if err := svc.Delete(ctx, uuid.New(), all[0].ID); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}
