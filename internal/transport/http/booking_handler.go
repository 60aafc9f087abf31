package http

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/service"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/util"
)

type BookingHandler struct {
	bookings *service.BookingService
	paxs     *service.PaxService
}

// RegisterBookings mounts the owner-side booking and guest endpoints.
func RegisterBookings(e *echo.Echo, bookings *service.BookingService, paxs *service.PaxService, requireSession echo.MiddlewareFunc) {
	h := &BookingHandler{bookings: bookings, paxs: paxs}

	g := e.Group("/bookings", requireSession)
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.GET("/:id/paxs", h.listPaxs)
	g.POST("/:id/paxs", h.createPax)

	p := e.Group("/paxs", requireSession)
	p.GET("/:id", h.getPax)
	p.PUT("/:id", h.updatePax)
	p.DELETE("/:id", h.deletePax)
}

func (h *BookingHandler) list(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	var hotelID *uuid.UUID
	if raw := strings.TrimSpace(c.QueryParam("hotel_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("hotel_id must be a valid UUID"))
		}
		hotelID = &id
	}
	bookings, err := h.bookings.List(c.Request().Context(), user.ID, hotelID)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"bookings": bookings})
}

func (h *BookingHandler) get(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid booking id"))
	}
	booking, err := h.bookings.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"booking": booking})
}

func (h *BookingHandler) create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	var req CreateBookingRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	if strings.TrimSpace(req.HotelID) == "" {
		return c.JSON(http.StatusBadRequest, util.Error("hotel_id is required"))
	}
	input, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	booking, err := h.bookings.Create(c.Request().Context(), user.ID, input, req.Contact.toContact())
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Envelope{"booking": booking})
}

func (h *BookingHandler) update(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid booking id"))
	}
	var req BookingRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	input, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	booking, err := h.bookings.Update(c.Request().Context(), user.ID, id, input)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"booking": booking})
}

func (h *BookingHandler) delete(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid booking id"))
	}
	if err := h.bookings.Delete(c.Request().Context(), user.ID, id); err != nil {
		return writeBookingError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BookingHandler) listPaxs(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid booking id"))
	}
	booking, paxs, err := h.paxs.ListByBooking(c.Request().Context(), user.ID, id)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"booking": booking, "paxs": paxs})
}

func (h *BookingHandler) createPax(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid booking id"))
	}
	var req PaxRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	pax, err := h.paxs.Create(c.Request().Context(), user.ID, id, req.toInput())
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Envelope{"pax": pax})
}

func (h *BookingHandler) getPax(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid pax id"))
	}
	pax, err := h.paxs.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"pax": pax})
}

func (h *BookingHandler) updatePax(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid pax id"))
	}
	var req PaxRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	pax, err := h.paxs.Update(c.Request().Context(), user.ID, id, req.toInput())
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"pax": pax})
}

func (h *BookingHandler) deletePax(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid pax id"))
	}
	if err := h.paxs.Delete(c.Request().Context(), user.ID, id); err != nil {
		return writeBookingError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func writeBookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrHotelNotFound),
		errors.Is(err, service.ErrPaxNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	case errors.Is(err, service.ErrPaxForbidden):
		return c.JSON(http.StatusForbidden, util.Error(err.Error()))
	case errors.Is(err, service.ErrReservationTaken):
		return c.JSON(http.StatusConflict, util.Error(err.Error()))
	case errors.Is(err, service.ErrHotelChange),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidField):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	default:
		log.Printf("bookings: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
}
