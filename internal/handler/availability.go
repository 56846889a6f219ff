package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/service"
)

// AvailabilityHandler answers the public browsing query. Responses pass
// through the Redis response cache; the cache namespace is flushed after
// every committed booking mutation, so staleness stays bounded by the TTL.
type AvailabilityHandler struct {
	Bookings *service.BookingService
}

func NewAvailabilityHandler(b *service.BookingService) *AvailabilityHandler {
	return &AvailabilityHandler{Bookings: b}
}

// Query handles GET /v1/hotels/:id/availability?from=...&to=...&room_types=1,2
func (h *AvailabilityHandler) Query(c echo.Context) error {
	hotelID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	from, err := parseDay(c.QueryParam("from"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be YYYY-MM-DD"})
	}
	to, err := parseDay(c.QueryParam("to"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be YYYY-MM-DD"})
	}

	var typeIDs []uint64
	if raw := c.QueryParam("room_types"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_types must be a comma-separated id list"})
			}
			typeIDs = append(typeIDs, id)
		}
	}

	snap, err := h.Bookings.Availability(c.Request().Context(), hotelID, typeIDs, from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, snap)
}
