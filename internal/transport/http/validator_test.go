package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestSlugValidation(t *testing.T) {
	v := NewRequestValidator()
	valid := []string{"hotel", "hotel-mirador", "h2-o"}
	invalid := []string{"Hotel", "hotel--mirador", "-hotel", "hotel-", "hotel mirador", "hôtel"}

	for _, slug := range valid {
		if err := v.Validate(CheckReservationRequest{Slug: slug, ReservationID: "R1", LastName: "Doe"}); err != nil {
			t.Fatalf("expected %q to be valid, got %v", slug, err)
		}
	}
	for _, slug := range invalid {
		if err := v.Validate(CheckReservationRequest{Slug: slug, ReservationID: "R1", LastName: "Doe"}); err == nil {
			t.Fatalf("expected %q to be rejected", slug)
		}
	}
}

func TestValidationMessageUsesJSONNames(t *testing.T) {
	v := NewRequestValidator()
	err := v.Validate(LoginRequest{Email: "not-an-email"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := validationMessage(err)
	if !strings.Contains(msg, "email must be a valid email") || !strings.Contains(msg, "password is required") {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestBindValid(t *testing.T) {
	e := echo.New()
	e.Validator = NewRequestValidator()

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"owner@example.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	var body LoginRequest
	ok, err := bindValid(e.NewContext(req, rec), &body)
	if ok || err != nil {
		t.Fatalf("expected handled failure, got ok=%v err=%v", ok, err)
	}
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "password is required") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	if ok, _ := bindValid(e.NewContext(req, rec), &body); ok || rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed JSON should be rejected, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"owner@example.com","password":"pw"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	if ok, err := bindValid(e.NewContext(req, rec), &body); !ok || err != nil {
		t.Fatalf("expected valid body, got ok=%v err=%v", ok, err)
	}
	if body.Password != "pw" {
		t.Fatalf("body not bound: %+v", body)
	}
}

func TestCreateBookingRequestValidation(t *testing.T) {
	v := NewRequestValidator()
	req := CreateBookingRequest{}
	req.ReservationID = "R-1"
	err := v.Validate(req)
	if err == nil {
		t.Fatalf("expected missing checkin and contact to fail")
	}
	msg := validationMessage(err)
	if !strings.Contains(msg, "checkin is required") || !strings.Contains(msg, "firstname is required") {
		t.Fatalf("unexpected message %q", msg)
	}
}
