// Package router registers the API routes.
package router

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/themepark/internal/config"
	"github.com/iliyamo/themepark/internal/handler"
	"github.com/iliyamo/themepark/internal/middleware"
)

// Deps is everything the HTTP surface is assembled from. Redis is
// optional; a nil client disables the list cache.
type Deps struct {
	Auth        *handler.AuthHandler
	Tickets     *handler.TicketHandler
	Bookings    *handler.BookingHandler
	Tokens      middleware.TokenVerifier
	Cache       config.CacheConfig
	Redis       *redis.Client
	CORSOrigins []string
	Logger      *slog.Logger
}

// New builds the Echo instance with the global middleware chain and every
// route registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomw.Recover())
	e.Use(middleware.Metrics())
	if len(d.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: d.CORSOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
		}))
	}

	RegisterRoutes(e)
	RegisterAuth(e, d.Auth, d.Tokens)
	RegisterCustomer(e, d.Tickets, d.Bookings, d.Tokens,
		middleware.NewRedisCache(d.Cache, d.Redis, d.Logger))
	return e
}

// RegisterRoutes registers routes that do not require authentication:
// liveness and the Prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers the /auth routes. Register, login and logout are
// open; /auth/me needs a valid token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, tokens middleware.TokenVerifier) {
	g := e.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout)
	g.GET("/me", a.Me, middleware.JWTAuth(tokens))
}
