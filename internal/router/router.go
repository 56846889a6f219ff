package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/config"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/handler"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring systems use this endpoint to verify
	// that the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotating refresh: invalidates the old refresh token.
	g.POST("/refresh", a.Refresh)
	// Non-rotating: issues a fresh access token only.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts either a bearer token (revoke all sessions) or a
	// refresh token in the body (revoke one session).
	g.POST("/logout", a.Logout)
	e.POST("/v1/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "STAFF", "CUSTOMER"))
	auth.GET("/me", a.Me)
}

// RegisterAvailability exposes the public browsing query.  Responses are
// cached in Redis with a short TTL; the cache namespace is dropped after
// every committed booking mutation so staleness stays bounded.
func RegisterAvailability(e *echo.Echo, av *handler.AvailabilityHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	e.GET("/v1/hotels/:id/availability", av.Query, middleware.NewRedisCache(cacheCfg, rdb))
}
