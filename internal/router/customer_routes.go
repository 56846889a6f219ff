package router

import (
	"github.com/labstack/echo/v4"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/handler"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/middleware"
)

// RegisterCustomer registers customer-scoped endpoints under /v1.  All
// routes require a valid JWT and the CUSTOMER role.  Customers create
// bookings and manage their check-in tokens.
func RegisterCustomer(e *echo.Echo, b *handler.BookingHandler, t *handler.TokenHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER"),
	)
	g.POST("/bookings", b.Create)
	g.GET("/my-bookings", b.ListMine)

	// Check-in token self-service: request a fresh credential for a
	// confirmed booking, or kill one that leaked.
	g.POST("/checkin-tokens", t.Issue)
	g.DELETE("/checkin-tokens/:id", t.Revoke)
}

// RegisterShared registers endpoints available to every authenticated role.
// Ownership is enforced per booking inside the service layer.  Modify and
// cancel live here because staff need them too: the refund override and the
// modify-with-revalidation of a CONFIRMED booking are staff-only paths.
func RegisterShared(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "STAFF", "CUSTOMER"),
	)
	g.GET("/bookings/:id", b.Get)
	g.GET("/bookings/:id/history", b.History)
	g.PATCH("/bookings/:id", b.Modify)
	g.POST("/bookings/:id/cancel", b.Cancel)
}
