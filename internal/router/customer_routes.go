package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/themepark/internal/handler"
	"github.com/iliyamo/themepark/internal/middleware"
)

// RegisterCustomer registers the ticket and booking endpoints. Every route
// requires a valid JWT; the cache runs after the guard so entries are keyed
// by the authenticated user.
func RegisterCustomer(e *echo.Echo, t *handler.TicketHandler, b *handler.BookingHandler, tokens middleware.TokenVerifier, cache echo.MiddlewareFunc) {
	g := e.Group("", middleware.JWTAuth(tokens), cache)

	g.POST("/tickets", t.Purchase)
	g.GET("/tickets", t.List)

	g.POST("/bookings", b.Create)
	g.GET("/bookings", b.List)
}
