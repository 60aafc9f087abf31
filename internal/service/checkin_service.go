package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/media"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/repository/ports"
)

type CheckinMailer interface {
	SendCheckinCompleted(ctx context.Context, email, hotelName, reservationID string, guests []string) error
}

type DocumentConfig struct {
	Bucket   string
	MaxBytes int64
}

// CheckinService serves guests holding a resolved check-in snapshot. Reads
// trust the snapshot; every write re-reads the booking first.
type CheckinService struct {
	bookings  ports.BookingRepository
	hotels    ports.HotelRepository
	paxs      ports.PaxRepository
	storage   ports.ObjectStorage
	processor media.Processor
	mailer    CheckinMailer
	documents DocumentConfig
	logger    Logger
	now       func() time.Time
}

func NewCheckinService(bookings ports.BookingRepository, hotels ports.HotelRepository, paxs ports.PaxRepository, storage ports.ObjectStorage, processor media.Processor, mailer CheckinMailer, documents DocumentConfig, logger Logger) *CheckinService {
	return &CheckinService{
		bookings:  bookings,
		hotels:    hotels,
		paxs:      paxs,
		storage:   storage,
		processor: processor,
		mailer:    mailer,
		documents: documents,
		logger:    defaultLogger(logger),
		now:       time.Now,
	}
}

// CheckReservation finds the booking a guest refers to by reservation id and
// the contact's last name. Every miss is reported the same way.
func (s *CheckinService) CheckReservation(ctx context.Context, slug, reservationID, lastName string) (uuid.UUID, error) {
	hotel, err := s.hotels.FindBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		if isNotFound(err) {
			return uuid.Nil, ErrReservationUnknown
		}
		return uuid.Nil, err
	}
	booking, err := s.bookings.FindByReservation(ctx, hotel.ID, strings.TrimSpace(reservationID))
	if err != nil {
		if isNotFound(err) {
			return uuid.Nil, ErrReservationUnknown
		}
		return uuid.Nil, err
	}
	paxs, err := s.paxs.ListByBooking(ctx, booking.ID)
	if err != nil {
		return uuid.Nil, err
	}
	for _, pax := range paxs {
		if pax.IsContact && strings.EqualFold(strings.TrimSpace(pax.Lastname), strings.TrimSpace(lastName)) {
			return booking.ID, nil
		}
	}
	return uuid.Nil, ErrReservationUnknown
}

func (s *CheckinService) GetDetails(ctx context.Context, snapshot domain.CheckinSnapshot) (*domain.CheckinDetails, error) {
	booking, err := s.bookings.FindByID(ctx, snapshot.Booking.ID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	hotel, err := s.hotels.FindBySlug(ctx, snapshot.Hotel.Slug)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	if hotel.ID != booking.HotelID {
		return nil, ErrBookingNotFound
	}
	paxs, err := s.paxs.ListByBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	return &domain.CheckinDetails{Booking: *booking, Hotel: *hotel, Paxs: paxs}, nil
}

// Confirm completes the check-in once every expected guest has submitted
// their data, then notifies the hotel.
func (s *CheckinService) Confirm(ctx context.Context, snapshot domain.CheckinSnapshot, signature *string) (*domain.Booking, error) {
	booking, err := s.writableBooking(ctx, snapshot)
	if err != nil {
		return nil, err
	}
	paxs, err := s.paxs.ListByBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	if len(paxs) == 0 || (booking.MaxPaxs != nil && len(paxs) != *booking.MaxPaxs) {
		return nil, ErrCheckinIncomplete
	}
	for _, pax := range paxs {
		if pax.SubmittedAt == nil {
			return nil, ErrCheckinIncomplete
		}
	}

	completed, err := s.bookings.MarkCompleted(ctx, booking.ID, trimmed(signature), s.now())
	if err != nil {
		return nil, err
	}
	s.notifyHotel(ctx, completed, snapshot.Hotel.Name, paxs)
	return completed, nil
}

func (s *CheckinService) notifyHotel(ctx context.Context, booking *domain.Booking, hotelName string, paxs []domain.Pax) {
	if s.mailer == nil {
		return
	}
	email, _, err := s.hotels.OwnerEmail(ctx, booking.HotelID)
	if err != nil || email == "" {
		s.logger.Printf("checkin: hotel contact for booking %s: %v", booking.ID, err)
		return
	}
	guests := make([]string, 0, len(paxs))
	for _, pax := range paxs {
		guests = append(guests, strings.TrimSpace(pax.Firstname+" "+pax.Lastname))
	}
	if err := s.mailer.SendCheckinCompleted(ctx, email, hotelName, booking.ReservationID, guests); err != nil {
		s.logger.Printf("checkin: notify hotel for booking %s: %v", booking.ID, err)
	}
}

// CreatePax adds an empty guest while the booking is below its guest limit.
func (s *CheckinService) CreatePax(ctx context.Context, snapshot domain.CheckinSnapshot) (*domain.Pax, error) {
	booking, err := s.writableBooking(ctx, snapshot)
	if err != nil {
		return nil, err
	}
	if booking.MaxPaxs != nil {
		count, err := s.paxs.CountByBooking(ctx, booking.ID)
		if err != nil {
			return nil, err
		}
		if count >= *booking.MaxPaxs {
			return nil, ErrPaxLimit
		}
	}
	isContact := false
	return s.paxs.Create(ctx, booking.ID, domain.PaxInput{IsContact: &isContact})
}

func (s *CheckinService) GetPax(ctx context.Context, snapshot domain.CheckinSnapshot, paxID uuid.UUID) (*domain.Pax, error) {
	return s.scopedPax(ctx, snapshot.Booking.ID, paxID)
}

// UpdatePax stores guest data. The first update marks the guest as submitted.
func (s *CheckinService) UpdatePax(ctx context.Context, snapshot domain.CheckinSnapshot, paxID uuid.UUID, input domain.PaxInput) (*domain.Pax, error) {
	booking, err := s.writableBooking(ctx, snapshot)
	if err != nil {
		return nil, err
	}
	if _, err := s.scopedPax(ctx, booking.ID, paxID); err != nil {
		return nil, err
	}
	input.IsContact = nil
	submittedAt := s.now()
	pax, err := s.paxs.Update(ctx, paxID, input, &submittedAt)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPaxNotFound
		}
		return nil, err
	}
	return pax, nil
}

// DeletePax removes a guest added during check-in. The booking contact stays.
func (s *CheckinService) DeletePax(ctx context.Context, snapshot domain.CheckinSnapshot, paxID uuid.UUID) error {
	booking, err := s.writableBooking(ctx, snapshot)
	if err != nil {
		return err
	}
	pax, err := s.scopedPax(ctx, booking.ID, paxID)
	if err != nil {
		return err
	}
	if pax.IsContact {
		return ErrPaxForbidden
	}
	if err := s.paxs.Delete(ctx, paxID); err != nil {
		if isNotFound(err) {
			return ErrPaxNotFound
		}
		return err
	}
	return nil
}

func (s *CheckinService) UploadDocument(ctx context.Context, snapshot domain.CheckinSnapshot, paxID uuid.UUID, kind domain.DocumentKind, upload media.Upload) (*domain.Pax, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown document kind %q", ErrInvalidDocument, kind)
	}
	booking, err := s.writableBooking(ctx, snapshot)
	if err != nil {
		return nil, err
	}
	if _, err := s.scopedPax(ctx, booking.ID, paxID); err != nil {
		return nil, err
	}
	if s.storage == nil {
		return nil, fmt.Errorf("document storage not configured")
	}

	doc, err := prepareDocumentForUpload(ctx, s.processor, upload, s.documents.MaxBytes)
	if err != nil {
		return nil, err
	}
	objectName := fmt.Sprintf("bookings/%s/paxs/%s/%s-%d%s", booking.ID, paxID, kind, s.now().UnixNano(), doc.extension)
	location, err := s.storage.Upload(ctx, s.documents.Bucket, objectName, doc.contentType, doc.reader, doc.size)
	if err != nil {
		return nil, err
	}
	pax, err := s.paxs.SetDocumentPath(ctx, paxID, kind, location)
	if err != nil {
		if rmErr := s.storage.Remove(ctx, s.documents.Bucket, objectName); rmErr != nil {
			s.logger.Printf("checkin: remove orphaned document %s: %v", objectName, rmErr)
		}
		if isNotFound(err) {
			return nil, ErrPaxNotFound
		}
		return nil, err
	}
	return pax, nil
}

// writableBooking re-reads the booking since the snapshot may be stale.
func (s *CheckinService) writableBooking(ctx context.Context, snapshot domain.CheckinSnapshot) (*domain.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, snapshot.Booking.ID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.IsLocked || booking.Status == domain.BookingStatusCompleted {
		return nil, ErrCheckinClosed
	}
	return booking, nil
}

func (s *CheckinService) scopedPax(ctx context.Context, bookingID, paxID uuid.UUID) (*domain.Pax, error) {
	pax, err := s.paxs.FindByID(ctx, paxID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPaxNotFound
		}
		return nil, err
	}
	if pax.BookingID != bookingID {
		return nil, ErrPaxForbidden
	}
	return pax, nil
}
