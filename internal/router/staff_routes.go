package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/handler"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/middleware"
)

// RegisterStaff registers desk and back-office endpoints under /v1.  STAFF
// and ADMIN share these routes: validating pending bookings, running the
// check-in and check-out desk flow, marking no-shows and auditing tokens.
func RegisterStaff(e *echo.Echo, b *handler.BookingHandler, t *handler.TokenHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("STAFF", "ADMIN"),
	)

	// Validation work queue and decision.
	g.GET("/hotels/:id/bookings", b.ListByHotel)
	g.POST("/bookings/:id/validate", b.Validate)

	// Desk flow.
	g.POST("/bookings/:id/checkin", b.CheckIn)
	g.POST("/bookings/:id/checkout", b.CheckOut)
	g.POST("/bookings/:id/no-show", b.MarkNoShow)

	// Token pre-check at the desk and audit trail.
	g.POST("/checkin-tokens/validate", t.Validate)
	g.GET("/checkin-tokens/:id/usage", t.UsageLog)
	g.DELETE("/staff/checkin-tokens/:id", t.Revoke)
}
