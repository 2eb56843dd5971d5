package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a liveness check for load balancers and compose healthchecks.
// It answers plain text "ok" and touches no dependency.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
