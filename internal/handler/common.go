package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/model"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/repository"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/utils"
)

// validate is the shared request validator. Struct tags on the DTOs drive
// the checks; handlers call bindAndValidate instead of Bind directly.
var validate = validator.New()

// bindAndValidate decodes the JSON body into dst and runs its validation
// tags. A false return means an error response has already been written.
func bindAndValidate(c echo.Context, dst interface{}) bool {
	if err := c.Bind(dst); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		return false
	}
	return true
}

// getUserID extracts the user_id from echo.Context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole returns the role claim stored by the JWT middleware.
func getRole(c echo.Context) string {
	if r, ok := c.Get("role").(string); ok {
		return r
	}
	return ""
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// writeError maps the domain error taxonomy onto HTTP statuses. Every
// handler funnels service errors through here so the mapping stays in one
// place.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, model.ErrValidation), errors.Is(err, utils.ErrBadCheckInToken):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrForbidden), errors.Is(err, model.ErrTokenContextMismatch):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrHotelNotFound),
		errors.Is(err, repository.ErrTokenNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, model.ErrInsufficientAvailability),
		errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, model.ErrTokenNotYetValid),
		errors.Is(err, repository.ErrActiveTokenExists),
		errors.Is(err, repository.ErrNoFreeRoom):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenRevoked),
		errors.Is(err, model.ErrTokenUsageExceeded):
		return c.JSON(http.StatusGone, echo.Map{"error": err.Error()})
	case errors.Is(err, model.ErrTransactionConflict):
		// transient: the caller may retry the same command
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": err.Error(), "retryable": true})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
