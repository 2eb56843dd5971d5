package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/themepark/internal/service"
)

const msgBadBody = "Invalid request body"

func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"message": msg})
}

// fail maps a service error onto the response. Validation and auth
// failures carry their own message; anything else is a persistence
// failure, logged here and answered with the generic fallback.
func fail(c echo.Context, logger *slog.Logger, err error, fallback string) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return message(c, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrDuplicateUser):
		return message(c, http.StatusBadRequest, "User already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		return message(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrUnauthenticated):
		return message(c, http.StatusUnauthorized, "Not authenticated")
	}
	logger.Error(fallback,
		"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		"path", c.Path(),
		"error", err,
	)
	return message(c, http.StatusInternalServerError, fallback)
}
