// Package router wires handlers to routes and applies the middleware
// chain each group needs.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/goalpark/stadium-booking/internal/handler"
	"github.com/goalpark/stadium-booking/internal/middleware"
)

// RegisterRoutes registers the unauthenticated service routes.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints.  Register, login and the
// refresh pair need no session; logout validates its own inputs so an
// expired access token can still end a session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the guest browse endpoints: stadium list,
// stadium detail and day availability.  cache may be nil when Redis is
// down; the routes then serve uncached.
func RegisterPublic(e *echo.Echo, s *handler.StadiumHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1/stadiums")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("", s.List)
	g.GET("/:name", s.Get)
	g.GET("/:name/availability", s.Availability)
}

// RegisterBookings registers the booking lifecycle routes.  Creation,
// the conflict pre-check and slip upload accept guests via OptionalJWT;
// history, detail and cancellation require the owner's session.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	open := e.Group("/v1/bookings", middleware.OptionalJWT(jwtSecret))
	open.POST("", b.Create)
	open.POST("/check-conflict", b.CheckConflict)
	open.POST("/:id/slip", b.UploadSlip)

	owned := e.Group("/v1/bookings", middleware.JWTAuth(jwtSecret))
	owned.GET("", b.ListMine)
	owned.GET("/cancelled", b.ListCancelled)
	owned.GET("/:id", b.GetMine)
	owned.DELETE("/:id", b.Cancel)
}

// RegisterAdmin registers the management panel under /v1/admin, gated
// on the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin", middleware.JWTAuth(jwtSecret), middleware.RequireRole(middleware.RoleAdmin))

	g.POST("/stadiums", a.CreateStadium)
	g.PUT("/stadiums/:id", a.UpdateStadium)
	g.DELETE("/stadiums/:id", a.DeactivateStadium)

	g.GET("/bookings", a.ListBookings)
	g.GET("/bookings/:id", a.GetBooking)
	g.POST("/bookings/:id/cancel", a.CancelBooking)
	g.DELETE("/bookings/:id", a.DeleteBooking)
}
