package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/model"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/service"
)

// TokenHandler exposes the check-in token endpoints.
type TokenHandler struct {
	Tokens *service.TokenService
}

func NewTokenHandler(t *service.TokenService) *TokenHandler {
	return &TokenHandler{Tokens: t}
}

type issueTokenReq struct {
	BookingID uint64 `json:"booking_id" validate:"required"`
}

type validateTokenReq struct {
	Token     string `json:"token" validate:"required"`
	HotelID   uint64 `json:"hotel_id" validate:"required"`
	BookingID uint64 `json:"booking_id" validate:"required"`
}

// Issue creates a fresh check-in token for the caller's CONFIRMED booking,
// revoking any previous ACTIVE one. The issuing IP and user agent are
// stored for audit.
func (h *TokenHandler) Issue(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req issueTokenReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	issued, err := h.Tokens.Issue(c.Request().Context(), req.BookingID, uid, model.SecurityContext{
		IssuedIP:   c.RealIP(),
		DeviceHint: c.Request().UserAgent(),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, issued)
}

// Validate is the desk pre-check: verifies a credential against the
// presented hotel and booking without consuming a use. Grace-window
// acceptance comes back as a warning, never an error.
func (h *TokenHandler) Validate(c echo.Context) error {
	var req validateTokenReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	res, err := h.Tokens.Validate(c.Request().Context(), req.Token, model.TokenContext{
		HotelID:   req.HotelID,
		BookingID: req.BookingID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Revoke kills an ACTIVE token. Revoking an already revoked token is a
// no-op and still answers 204.
func (h *TokenHandler) Revoke(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tokenID := c.Param("id")
	if tokenID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token id required"})
	}
	if err := h.Tokens.Revoke(c.Request().Context(), tokenID, uid, getRole(c)); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UsageLog returns the audit trail of one token. Staff only, wired at the
// router level.
func (h *TokenHandler) UsageLog(c echo.Context) error {
	tokenID := c.Param("id")
	if tokenID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token id required"})
	}
	log, err := h.Tokens.UsageLog(c.Request().Context(), tokenID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, log)
}
