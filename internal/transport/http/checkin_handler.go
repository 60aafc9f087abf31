package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/media"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/service"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/util"
)

type CheckinHandler struct {
	hotels  *service.HotelService
	checkin *service.CheckinService
}

// RegisterPublic mounts the unauthenticated guest endpoints. limiter guards
// the lookups that accept guessable input.
func RegisterPublic(e *echo.Echo, hotels *service.HotelService, checkin *service.CheckinService, resolver CheckinResolver, limiter echo.MiddlewareFunc) {
	h := &CheckinHandler{hotels: hotels, checkin: checkin}

	public := e.Group("/public")
	if limiter != nil {
		public.Use(limiter)
	}
	public.GET("/hotels/:slug", h.getHotel)
	public.POST("/check-reservation", h.checkReservation)

	g := public.Group("/checkin/:slug/:bookingId", RequireCheckinAccess(resolver))
	g.GET("", h.getDetails)
	g.POST("/confirm", h.confirm)
	g.POST("/paxs", h.createPax)
	g.GET("/paxs/:id", h.getPax)
	g.PUT("/paxs/:id", h.updatePax)
	g.DELETE("/paxs/:id", h.deletePax)
	g.POST("/paxs/:id/documents/:kind", h.uploadDocument)
}

func (h *CheckinHandler) getHotel(c echo.Context) error {
	slug := c.Param("slug")
	if !slugPattern.MatchString(slug) {
		return c.JSON(http.StatusBadRequest, util.Error("invalid hotel slug"))
	}
	hotel, err := h.hotels.GetPublic(c.Request().Context(), slug)
	if err != nil {
		return writeHotelError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"hotel": PublicHotel{
		Name:          hotel.Name,
		Slug:          hotel.Slug,
		CoverImage:    hotel.CoverImage,
		Phone:         hotel.Phone,
		Email:         hotel.Email,
		AllowedFields: hotel.AllowedFields,
	}})
}

func (h *CheckinHandler) checkReservation(c echo.Context) error {
	var req CheckReservationRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	bookingID, err := h.checkin.CheckReservation(c.Request().Context(), req.Slug, req.ReservationID, req.LastName)
	if err != nil {
		return writeCheckinError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"booking_id": bookingID, "slug": req.Slug})
}

func (h *CheckinHandler) getDetails(c echo.Context) error {
	snapshot, ok := CurrentCheckin(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("check-in access required"))
	}
	details, err := h.checkin.GetDetails(c.Request().Context(), *snapshot)
	if err != nil {
		return writeCheckinError(c, err)
	}
	return c.JSON(http.StatusOK, details)
}

func (h *CheckinHandler) confirm(c echo.Context) error {
	snapshot, ok := CurrentCheckin(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("check-in access required"))
	}
	var req ConfirmCheckinRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	booking, err := h.checkin.Confirm(c.Request().Context(), *snapshot, req.Signature)
	if err != nil {
		return writeCheckinError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"booking": booking})
}

func (h *CheckinHandler) createPax(c echo.Context) error {
	snapshot, ok := CurrentCheckin(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("check-in access required"))
	}
	pax, err := h.checkin.CreatePax(c.Request().Context(), *snapshot)
	if err != nil {
		return writeCheckinError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Envelope{"pax": pax})
}

func (h *CheckinHandler) getPax(c echo.Context) error {
	snapshot, ok := CurrentCheckin(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("check-in access required"))
	}
	paxID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid pax id"))
	}
	pax, err := h.checkin.GetPax(c.Request().Context(), *snapshot, paxID)
	if err != nil {
		return writeCheckinError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"pax": pax})
}

func (h *CheckinHandler) updatePax(c echo.Context) error {
	snapshot, ok := CurrentCheckin(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("check-in access required"))
	}
	paxID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid pax id"))
	}
	var req PaxRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	pax, err := h.checkin.UpdatePax(c.Request().Context(), *snapshot, paxID, req.toInput())
	if err != nil {
		return writeCheckinError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"pax": pax})
}

func (h *CheckinHandler) deletePax(c echo.Context) error {
	snapshot, ok := CurrentCheckin(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("check-in access required"))
	}
	paxID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid pax id"))
	}
	if err := h.checkin.DeletePax(c.Request().Context(), *snapshot, paxID); err != nil {
		return writeCheckinError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CheckinHandler) uploadDocument(c echo.Context) error {
	snapshot, ok := CurrentCheckin(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("check-in access required"))
	}
	paxID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid pax id"))
	}
	kind := domain.DocumentKind(c.Param("kind"))
	if !kind.Valid() {
		return c.JSON(http.StatusBadRequest, util.Error("document kind must be front, back or passport"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("file upload required"))
	}
	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read upload"))
	}
	defer src.Close()

	pax, err := h.checkin.UploadDocument(c.Request().Context(), *snapshot, paxID, kind, media.Upload{
		Reader:      src,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
	})
	if err != nil {
		return writeCheckinError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"pax": pax})
}

// writeCheckinError maps guest-side failures. Lookups that miss all read the
// same so reservation ids cannot be probed.
func writeCheckinError(c echo.Context, err error) error {
	var denied *service.CheckinDenied
	switch {
	case errors.As(err, &denied):
		return c.JSON(denied.Status(), util.Error(denied.Reason))
	case errors.Is(err, service.ErrReservationUnknown):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	case errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrHotelNotFound),
		errors.Is(err, service.ErrPaxNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	case errors.Is(err, service.ErrCheckinClosed):
		return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
	case errors.Is(err, service.ErrPaxForbidden),
		errors.Is(err, service.ErrPaxLimit):
		return c.JSON(http.StatusForbidden, util.Error(err.Error()))
	case errors.Is(err, service.ErrCheckinIncomplete):
		return c.JSON(http.StatusUnprocessableEntity, util.Error(err.Error()))
	case errors.Is(err, service.ErrInvalidDocument):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrDocumentTooLarge):
		return c.JSON(http.StatusRequestEntityTooLarge, util.Error(err.Error()))
	default:
		log.Printf("checkin: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
}
