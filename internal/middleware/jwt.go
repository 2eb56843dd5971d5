// Package middleware holds the HTTP middleware shared by the API routes.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// TokenVerifier resolves a raw bearer token to the user id it was issued
// for.
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// Guard messages, shared with handlers that answer 401 themselves.
const (
	MsgNoAuthHeader = "No authorization header"
	MsgNoToken      = "No token provided"
	MsgInvalidToken = "Token is invalid or expired"
)

// JWTAuth returns an Echo middleware that validates a Bearer token and
// attaches the caller's Identity to the request context. It is the only
// authorization check: there are no roles, just "authenticated as user X".
// A rejected request never reaches the handler.
func JWTAuth(tokens TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if auth == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": MsgNoAuthHeader})
			}
			scheme, raw, _ := strings.Cut(auth, " ")
			raw = strings.TrimSpace(raw)
			if !strings.EqualFold(scheme, "Bearer") || raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": MsgNoToken})
			}

			userID, err := tokens.Verify(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": MsgInvalidToken})
			}

			setIdentity(c, Identity{UserID: userID})
			return next(c)
		}
	}
}
