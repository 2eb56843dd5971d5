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

// TicketSeller is the ticket service as seen from HTTP.
type TicketSeller interface {
	Purchase(ctx context.Context, userID string, in service.PurchaseInput) (model.Ticket, error)
	ListForUser(ctx context.Context, userID string) ([]model.Ticket, error)
}

type TicketHandler struct {
	Tickets TicketSeller
	Logger  *slog.Logger
}

func NewTicketHandler(tickets TicketSeller, logger *slog.Logger) *TicketHandler {
	return &TicketHandler{Tickets: tickets, Logger: logger.With("module", "tickets")}
}

// Purchase handles POST /tickets.
func (h *TicketHandler) Purchase(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return message(c, http.StatusUnauthorized, "Not authenticated")
	}
	var req service.PurchaseInput
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, msgBadBody)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ticket, err := h.Tickets.Purchase(ctx, id.UserID, req)
	if err != nil {
		return fail(c, h.Logger, err, "Error purchasing ticket")
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Ticket purchased successfully",
		"ticket":  ticket,
	})
}

// List handles GET /tickets.
func (h *TicketHandler) List(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return message(c, http.StatusUnauthorized, "Not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tickets, err := h.Tickets.ListForUser(ctx, id.UserID)
	if err != nil {
		return fail(c, h.Logger, err, "Error retrieving tickets")
	}
	return c.JSON(http.StatusOK, echo.Map{"tickets": tickets})
}
