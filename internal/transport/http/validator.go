package http

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/util"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// RequestValidator plugs go-playground/validator into echo.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return &RequestValidator{validate: v}
}

func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// validationMessage turns validator output into one readable line.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "invalid request body"
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			parts = append(parts, fmt.Sprintf("%s must be a valid email", fe.Field()))
		case "slug":
			parts = append(parts, fmt.Sprintf("%s must be lowercase letters, digits and single dashes", fe.Field()))
		case "min", "max", "gte", "lte":
			parts = append(parts, fmt.Sprintf("%s must be %s %s", fe.Field(), fe.Tag(), fe.Param()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(parts, ", ")
}

// bindValid binds the request into req and validates it. When it returns
// false the error response has already been written.
func bindValid(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, util.Error(validationMessage(err)))
	}
	return true, nil
}

