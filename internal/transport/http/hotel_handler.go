package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/service"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/util"
)

type HotelHandler struct {
	hotels *service.HotelService
}

func RegisterHotels(e *echo.Echo, hotels *service.HotelService, requireSession echo.MiddlewareFunc) {
	h := &HotelHandler{hotels: hotels}

	g := e.Group("/hotels", requireSession)
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.GET("/:id/bookings", h.listBookings)
}

func (h *HotelHandler) list(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	hotels, err := h.hotels.List(c.Request().Context(), user.ID)
	if err != nil {
		return writeHotelError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"hotels": hotels})
}

func (h *HotelHandler) get(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid hotel id"))
	}
	hotel, err := h.hotels.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return writeHotelError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"hotel": hotel})
}

func (h *HotelHandler) create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	var req HotelRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	hotel, err := h.hotels.Create(c.Request().Context(), user.ID, req.toInput())
	if err != nil {
		return writeHotelError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Envelope{"hotel": hotel})
}

func (h *HotelHandler) update(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid hotel id"))
	}
	var req HotelRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	hotel, err := h.hotels.Update(c.Request().Context(), user.ID, id, req.toInput())
	if err != nil {
		return writeHotelError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"hotel": hotel})
}

func (h *HotelHandler) delete(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid hotel id"))
	}
	if err := h.hotels.Delete(c.Request().Context(), user.ID, id); err != nil {
		return writeHotelError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *HotelHandler) listBookings(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid hotel id"))
	}
	bookings, err := h.hotels.ListBookings(c.Request().Context(), user.ID, id)
	if err != nil {
		return writeHotelError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"bookings": bookings})
}

func writeHotelError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrHotelNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	case errors.Is(err, service.ErrHotelUnavailable):
		return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
	case errors.Is(err, service.ErrSlugTaken):
		return c.JSON(http.StatusConflict, util.Error(err.Error()))
	case errors.Is(err, service.ErrInvalidField):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	default:
		log.Printf("hotels: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
}
