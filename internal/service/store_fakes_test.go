package service

import (
	"context"
	"database/sql"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
)

var uniqueViolation = &pgconn.PgError{Code: "23505"}

// memStore backs the hotel, booking and pax fakes so joins behave like the database.
type memStore struct {
	hotels   map[uuid.UUID]domain.Hotel
	bookings map[uuid.UUID]domain.Booking
	paxs     map[uuid.UUID]domain.Pax
	owners   map[uuid.UUID]string

	findAccessCalls int
	findAccessErr   error
	markCompleted   []uuid.UUID
	paxCreateErr    error
	paxUpdates      []uuid.UUID
}

func newMemStore() *memStore {
	return &memStore{
		hotels:   make(map[uuid.UUID]domain.Hotel),
		bookings: make(map[uuid.UUID]domain.Booking),
		paxs:     make(map[uuid.UUID]domain.Pax),
		owners:   make(map[uuid.UUID]string),
	}
}

func (m *memStore) addHotel(h domain.Hotel) domain.Hotel {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	m.hotels[h.ID] = h
	return h
}

func (m *memStore) addBooking(b domain.Booking) domain.Booking {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = domain.BookingStatusPending
	}
	m.bookings[b.ID] = b
	return b
}

func (m *memStore) addPax(p domain.Pax) domain.Pax {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().Add(time.Duration(len(m.paxs)) * time.Millisecond)
	}
	m.paxs[p.ID] = p
	return p
}

type memHotelRepo struct{ s *memStore }

func (r memHotelRepo) Create(ctx context.Context, userID uuid.UUID, input domain.HotelInput) (*domain.Hotel, error) {
	for _, h := range r.s.hotels {
		if h.Slug == input.Slug {
			return nil, uniqueViolation
		}
	}
	h := r.s.addHotel(hotelFromInput(uuid.Nil, userID, input))
	return &h, nil
}

func hotelFromInput(id, userID uuid.UUID, input domain.HotelInput) domain.Hotel {
	return domain.Hotel{
		ID:            id,
		UserID:        userID,
		Name:          input.Name,
		Slug:          input.Slug,
		CoverImage:    input.CoverImage,
		Phone:         input.Phone,
		Email:         input.Email,
		IsPublic:      input.IsPublic,
		IsActive:      input.IsActive,
		AllowedFields: pq.StringArray(input.AllowedFields),
	}
}

func (r memHotelRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Hotel, error) {
	out := make([]domain.Hotel, 0)
	for _, h := range r.s.hotels {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memHotelRepo) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Hotel, error) {
	h, ok := r.s.hotels[id]
	if !ok || h.UserID != userID {
		return nil, sql.ErrNoRows
	}
	return &h, nil
}

func (r memHotelRepo) FindBySlug(ctx context.Context, slug string) (*domain.Hotel, error) {
	for _, h := range r.s.hotels {
		if h.Slug == slug {
			return &h, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memHotelRepo) Update(ctx context.Context, id, userID uuid.UUID, input domain.HotelInput) (*domain.Hotel, error) {
	h, ok := r.s.hotels[id]
	if !ok || h.UserID != userID {
		return nil, sql.ErrNoRows
	}
	for _, other := range r.s.hotels {
		if other.ID != id && other.Slug == input.Slug {
			return nil, uniqueViolation
		}
	}
	updated := hotelFromInput(id, userID, input)
	r.s.hotels[id] = updated
	return &updated, nil
}

func (r memHotelRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	h, ok := r.s.hotels[id]
	if !ok || h.UserID != userID {
		return sql.ErrNoRows
	}
	delete(r.s.hotels, id)
	return nil
}

func (r memHotelRepo) OwnerEmail(ctx context.Context, id uuid.UUID) (string, *string, error) {
	h, ok := r.s.hotels[id]
	if !ok {
		return "", nil, sql.ErrNoRows
	}
	if h.Email != "" {
		return h.Email, nil, nil
	}
	return r.s.owners[h.UserID], nil, nil
}

type memBookingRepo struct{ s *memStore }

func bookingFromInput(id, userID uuid.UUID, input domain.BookingInput) domain.Booking {
	return domain.Booking{
		ID:             id,
		HotelID:        input.HotelID,
		UserID:         userID,
		ReservationID:  input.ReservationID,
		Checkin:        input.Checkin,
		Checkout:       input.Checkout,
		Status:         input.Status,
		Nights:         input.Nights,
		Observations:   input.Observations,
		IsActive:       input.IsActive,
		IsLocked:       input.IsLocked,
		MaxPaxs:        input.MaxPaxs,
		RequiredFields: pq.StringArray(input.RequiredFields),
		AllowedFields:  pq.StringArray(input.AllowedFields),
	}
}

func (r memBookingRepo) CreateWithContact(ctx context.Context, userID uuid.UUID, input domain.BookingInput, contact domain.BookingContact) (*domain.Booking, error) {
	for _, b := range r.s.bookings {
		if b.HotelID == input.HotelID && b.ReservationID == input.ReservationID {
			return nil, uniqueViolation
		}
	}
	b := r.s.addBooking(bookingFromInput(uuid.Nil, userID, input))
	email := contact.Email
	r.s.addPax(domain.Pax{BookingID: b.ID, Firstname: contact.Firstname, Lastname: contact.Lastname, Email: &email, IsContact: true})
	return &b, nil
}

func (r memBookingRepo) ListByUser(ctx context.Context, userID uuid.UUID, hotelID *uuid.UUID) ([]domain.Booking, error) {
	out := make([]domain.Booking, 0)
	for _, b := range r.s.bookings {
		if b.UserID != userID {
			continue
		}
		if hotelID != nil && b.HotelID != *hotelID {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Checkin.After(out[j].Checkin) })
	return out, nil
}

func (r memBookingRepo) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Booking, error) {
	b, ok := r.s.bookings[id]
	if !ok || b.UserID != userID {
		return nil, sql.ErrNoRows
	}
	return &b, nil
}

func (r memBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &b, nil
}

func (r memBookingRepo) FindByReservation(ctx context.Context, hotelID uuid.UUID, reservationID string) (*domain.Booking, error) {
	for _, b := range r.s.bookings {
		if b.HotelID == hotelID && b.ReservationID == reservationID {
			return &b, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memBookingRepo) FindAccess(ctx context.Context, id uuid.UUID) (*domain.BookingAccess, error) {
	r.s.findAccessCalls++
	if r.s.findAccessErr != nil {
		return nil, r.s.findAccessErr
	}
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	h, ok := r.s.hotels[b.HotelID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &domain.BookingAccess{
		BookingID:     b.ID,
		Checkin:       b.Checkin,
		Status:        b.Status,
		MaxPaxs:       b.MaxPaxs,
		IsLocked:      b.IsLocked,
		HotelID:       h.ID,
		HotelName:     h.Name,
		HotelSlug:     h.Slug,
		HotelIsPublic: h.IsPublic,
		HotelIsActive: h.IsActive,
	}, nil
}

func (r memBookingRepo) Update(ctx context.Context, id, userID uuid.UUID, input domain.BookingInput) (*domain.Booking, error) {
	b, ok := r.s.bookings[id]
	if !ok || b.UserID != userID {
		return nil, sql.ErrNoRows
	}
	for _, other := range r.s.bookings {
		if other.ID != id && other.HotelID == input.HotelID && other.ReservationID == input.ReservationID {
			return nil, uniqueViolation
		}
	}
	updated := bookingFromInput(id, userID, input)
	r.s.bookings[id] = updated
	return &updated, nil
}

func (r memBookingRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	b, ok := r.s.bookings[id]
	if !ok || b.UserID != userID {
		return sql.ErrNoRows
	}
	delete(r.s.bookings, id)
	return nil
}

func (r memBookingRepo) MarkCompleted(ctx context.Context, id uuid.UUID, signature *string, completedAt time.Time) (*domain.Booking, error) {
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	r.s.markCompleted = append(r.s.markCompleted, id)
	b.Status = domain.BookingStatusCompleted
	b.Signature = signature
	b.CompletedAt = &completedAt
	r.s.bookings[id] = b
	return &b, nil
}

type memPaxRepo struct{ s *memStore }

func (r memPaxRepo) Create(ctx context.Context, bookingID uuid.UUID, input domain.PaxInput) (*domain.Pax, error) {
	if r.s.paxCreateErr != nil {
		return nil, r.s.paxCreateErr
	}
	p := applyPaxInput(domain.Pax{BookingID: bookingID}, input)
	p = r.s.addPax(p)
	return &p, nil
}

func applyPaxInput(p domain.Pax, input domain.PaxInput) domain.Pax {
	if input.Firstname != nil {
		p.Firstname = *input.Firstname
	}
	if input.Lastname != nil {
		p.Lastname = *input.Lastname
	}
	if input.BirthDate != nil {
		p.BirthDate = input.BirthDate
	}
	if input.Email != nil {
		p.Email = input.Email
	}
	if input.Phone != nil {
		p.Phone = input.Phone
	}
	if input.DocType != nil {
		p.DocType = *input.DocType
	}
	if input.DocNumber != nil {
		p.DocNumber = *input.DocNumber
	}
	if input.NationalityCode != nil {
		p.NationalityCode = input.NationalityCode
	}
	if input.ArrivalDate != nil {
		p.ArrivalDate = input.ArrivalDate
	}
	if input.IsContact != nil {
		p.IsContact = *input.IsContact
	}
	if input.GuestObservations != nil {
		p.GuestObservations = input.GuestObservations
	}
	return p
}

func (r memPaxRepo) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Pax, error) {
	out := make([]domain.Pax, 0)
	for _, p := range r.s.paxs {
		if p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsContact != out[j].IsContact {
			return out[i].IsContact
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r memPaxRepo) CountByBooking(ctx context.Context, bookingID uuid.UUID) (int, error) {
	paxs, _ := r.ListByBooking(ctx, bookingID)
	return len(paxs), nil
}

func (r memPaxRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Pax, error) {
	p, ok := r.s.paxs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &p, nil
}

func (r memPaxRepo) Update(ctx context.Context, id uuid.UUID, input domain.PaxInput, submittedAt *time.Time) (*domain.Pax, error) {
	p, ok := r.s.paxs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	r.s.paxUpdates = append(r.s.paxUpdates, id)
	p = applyPaxInput(p, input)
	if p.SubmittedAt == nil && submittedAt != nil {
		at := *submittedAt
		p.SubmittedAt = &at
	}
	r.s.paxs[id] = p
	return &p, nil
}

func (r memPaxRepo) SetDocumentPath(ctx context.Context, id uuid.UUID, kind domain.DocumentKind, path string) (*domain.Pax, error) {
	p, ok := r.s.paxs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	value := path
	switch kind {
	case domain.DocumentFront:
		p.DocFrontPath = &value
	case domain.DocumentBack:
		p.DocBackPath = &value
	case domain.DocumentPassport:
		p.PassportPath = &value
	}
	r.s.paxs[id] = p
	return &p, nil
}

func (r memPaxRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.s.paxs[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.s.paxs, id)
	return nil
}

type fakeStorage struct {
	uploads []struct {
		bucket      string
		objectName  string
		contentType string
		body        []byte
	}
	removed []string
	err     error
}

func (f *fakeStorage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.uploads = append(f.uploads, struct {
		bucket      string
		objectName  string
		contentType string
		body        []byte
	}{bucket, objectName, contentType, body})
	return objectName, nil
}

func (f *fakeStorage) Remove(ctx context.Context, bucket, objectName string) error {
	f.removed = append(f.removed, objectName)
	return f.err
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
