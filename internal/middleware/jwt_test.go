package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type stubVerifier map[string]string

func (s stubVerifier) Verify(raw string) (string, error) {
	if id, ok := s[raw]; ok {
		return id, nil
	}
	return "", errors.New("bad token")
}

func guarded(t *testing.T, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	reached := false
	h := JWTAuth(stubVerifier{"good": "user-1"})(func(c echo.Context) error {
		reached = true
		id, ok := CurrentIdentity(c)
		if !ok || id.UserID != "user-1" {
			t.Errorf("identity = %+v, %v", id, ok)
		}
		return c.NoContent(http.StatusNoContent)
	})
	req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, reached
}

func TestJWTAuth(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{"valid", "Bearer good", http.StatusNoContent, ""},
		{"lowercase scheme", "bearer good", http.StatusNoContent, ""},
		{"missing header", "", http.StatusUnauthorized, MsgNoAuthHeader},
		{"scheme only", "Bearer", http.StatusUnauthorized, MsgNoToken},
		{"blank token", "Bearer   ", http.StatusUnauthorized, MsgNoToken},
		{"other scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, MsgNoToken},
		{"invalid token", "Bearer forged", http.StatusUnauthorized, MsgInvalidToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, reached := guarded(t, tc.header)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if reached != (tc.status == http.StatusNoContent) {
				t.Fatalf("handler reached = %v", reached)
			}
			if tc.message == "" {
				return
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["message"] != tc.message {
				t.Errorf("message = %q, want %q", body["message"], tc.message)
			}
		})
	}
}

func TestIdentityAbsent(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if _, ok := CurrentIdentity(c); ok {
		t.Error("unauthenticated request reported an identity")
	}
	setIdentity(c, Identity{})
	if _, ok := CurrentIdentity(c); ok {
		t.Error("empty user id counted as authenticated")
	}
}
