package router

// This file registers admin-only routes for managing the hotel catalogue.
// Admins create hotels, define room types with capacity and base rates,
// and register physical rooms.  The booking engine reads this catalogue
// but never mutates it.

import (
	"github.com/labstack/echo/v4"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/handler"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/middleware"
)

// RegisterAdmin wires the catalogue endpoints under /v1 with the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	g.POST("/hotels", a.CreateHotel)
	g.GET("/hotels", a.ListHotels)
	g.POST("/hotels/:id/room-types", a.CreateRoomType)
	g.GET("/hotels/:id/room-types", a.ListRoomTypes)
	g.POST("/hotels/:id/rooms", a.CreateRoom)
	g.GET("/hotels/:id/rooms", a.ListRooms)
}
