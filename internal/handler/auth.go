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

// Authenticator is the part of the auth service the HTTP layer drives.
type Authenticator interface {
	Register(ctx context.Context, in service.RegisterInput) (model.PublicUser, error)
	Login(ctx context.Context, in service.LoginInput) (service.LoginResult, error)
	Me(ctx context.Context, userID string) (model.Profile, error)
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Auth   Authenticator
	Logger *slog.Logger
}

func NewAuthHandler(auth Authenticator, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Logger: logger.With("module", "auth")}
}

type registerResp struct {
	Message string           `json:"message"`
	User    model.PublicUser `json:"user"`
}

type loginResp struct {
	Message string           `json:"message"`
	Token   string           `json:"token"`
	User    model.PublicUser `json:"user"`
}

// Register: create the account. No token is issued; the client logs in next.
func (h *AuthHandler) Register(c echo.Context) error {
	var req service.RegisterInput
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, msgBadBody)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Auth.Register(ctx, req)
	if err != nil {
		return fail(c, h.Logger, err, "Internal server error")
	}
	return c.JSON(http.StatusCreated, registerResp{Message: "User registered successfully", User: user})
}

// Login: exchange credentials for a bearer token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req service.LoginInput
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, msgBadBody)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Auth.Login(ctx, req)
	if err != nil {
		return fail(c, h.Logger, err, "Internal server error")
	}
	return c.JSON(http.StatusOK, loginResp{Message: "Login successful", Token: res.Token, User: res.User})
}

// Logout only acknowledges. Tokens are stateless; the client discards its copy.
func (h *AuthHandler) Logout(c echo.Context) error {
	return message(c, http.StatusOK, "Logged out successfully")
}

// Me returns the caller's profile so a client can rebuild its session from
// a stored token.
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return message(c, http.StatusUnauthorized, "Not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	profile, err := h.Auth.Me(ctx, id.UserID)
	if err != nil {
		return fail(c, h.Logger, err, "Internal server error")
	}
	return c.JSON(http.StatusOK, echo.Map{"user": profile})
}
