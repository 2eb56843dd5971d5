package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/themepark/internal/middleware"
	"github.com/iliyamo/themepark/internal/model"
	"github.com/iliyamo/themepark/internal/service"
)

// BookingMaker is the booking service as seen from HTTP.
type BookingMaker interface {
	Create(ctx context.Context, userID string, in service.BookingInput) (model.Booking, error)
	ListForUser(ctx context.Context, userID string) ([]model.Booking, error)
}

type BookingHandler struct {
	Bookings BookingMaker
	Logger   *slog.Logger
}

func NewBookingHandler(bookings BookingMaker, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Logger: logger.With("module", "bookings")}
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return message(c, http.StatusUnauthorized, "Not authenticated")
	}
	var req service.BookingInput
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, msgBadBody)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	booking, err := h.Bookings.Create(ctx, id.UserID, req)
	if err != nil {
		return fail(c, h.Logger, err, "Error creating booking")
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Booking created successfully",
		"booking": booking,
	})
}

// List handles GET /bookings.
func (h *BookingHandler) List(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return message(c, http.StatusUnauthorized, "Not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListForUser(ctx, id.UserID)
	if err != nil {
		return fail(c, h.Logger, err, "Error retrieving bookings")
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}
