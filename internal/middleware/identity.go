package middleware

// identity.go carries the authenticated caller through the request. The
// access guard stores an Identity on the request context; handlers and
// other middleware read it back with CurrentIdentity.

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/themepark/internal/ctxstore"
)

// Identity is the caller resolved from a verified bearer token.
type Identity struct {
	UserID string
}

const identityKey = ctxstore.Key("identity")

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return ctxstore.With(ctx, identityKey, id)
}

// IdentityFrom returns the identity on ctx. ok is false when the request
// was never authenticated.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctxstore.From[Identity](ctx, identityKey)
	return id, ok && id.UserID != ""
}

// CurrentIdentity is IdentityFrom for an echo request.
func CurrentIdentity(c echo.Context) (Identity, bool) {
	return IdentityFrom(c.Request().Context())
}

func setIdentity(c echo.Context, id Identity) {
	r := c.Request()
	c.SetRequest(r.WithContext(WithIdentity(r.Context(), id)))
}
