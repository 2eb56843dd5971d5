package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/themepark/internal/config"
	"github.com/iliyamo/themepark/internal/testutil"
)

type cacheFixture struct {
	e     *echo.Echo
	mr    *miniredis.Miniredis
	count int
	items []string

	// duringList runs once inside the next list handler, after it has
	// read the items.
	duringList func()
}

func newCacheFixture(t *testing.T) *cacheFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	f := &cacheFixture{e: echo.New(), mr: mr}
	cfg := config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "test", MaxBodyBytes: 1 << 20}
	g := f.e.Group("", JWTAuth(stubVerifier{"a": "user-a", "b": "user-b"}), NewRedisCache(cfg, rdb, testutil.Logger()))
	g.GET("/tickets", func(c echo.Context) error {
		f.count++
		id, _ := CurrentIdentity(c)
		items := append([]string{}, f.items...)
		if hook := f.duringList; hook != nil {
			f.duringList = nil
			hook()
		}
		return c.JSON(http.StatusOK, echo.Map{"owner": id.UserID, "tickets": items})
	})
	g.POST("/tickets", func(c echo.Context) error {
		f.items = append(f.items, "t")
		return c.JSON(http.StatusCreated, echo.Map{"message": "ok"})
	})
	return f
}

func (f *cacheFixture) do(method, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/tickets", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func TestCacheHitAndMiss(t *testing.T) {
	f := newCacheFixture(t)

	first := f.do(http.MethodGet, "a")
	if first.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("first X-Cache = %q", first.Header().Get("X-Cache"))
	}
	second := f.do(http.MethodGet, "a")
	if second.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("second X-Cache = %q", second.Header().Get("X-Cache"))
	}
	if second.Body.String() != first.Body.String() {
		t.Errorf("cached body %q != %q", second.Body.String(), first.Body.String())
	}
	if f.count != 1 {
		t.Errorf("handler ran %d times, want 1", f.count)
	}
}

func TestCacheIsPerUser(t *testing.T) {
	f := newCacheFixture(t)
	f.do(http.MethodGet, "a")
	rec := f.do(http.MethodGet, "b")
	if rec.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("user b served user a's entry")
	}
	if f.count != 2 {
		t.Errorf("handler ran %d times, want 2", f.count)
	}
}

func TestCacheInvalidatedByWrite(t *testing.T) {
	f := newCacheFixture(t)
	f.do(http.MethodGet, "a")
	if rec := f.do(http.MethodPost, "a"); rec.Code != http.StatusCreated {
		t.Fatalf("post status = %d", rec.Code)
	}
	rec := f.do(http.MethodGet, "a")
	if rec.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("list after write was served from cache")
	}
	if f.count != 2 {
		t.Errorf("handler ran %d times, want 2", f.count)
	}
}

func TestCacheDropsListRacingAWrite(t *testing.T) {
	f := newCacheFixture(t)
	f.duringList = func() {
		if rec := f.do(http.MethodPost, "a"); rec.Code != http.StatusCreated {
			t.Errorf("post status = %d", rec.Code)
		}
	}
	stale := f.do(http.MethodGet, "a")
	if strings.Contains(stale.Body.String(), `"t"`) {
		t.Fatalf("list read before the write already has it: %s", stale.Body.String())
	}

	rec := f.do(http.MethodGet, "a")
	if rec.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("stale list was served from cache: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"t"`) {
		t.Errorf("list after write = %s, want the new item", rec.Body.String())
	}
	if f.count != 2 {
		t.Errorf("handler ran %d times, want 2", f.count)
	}
}

func TestCacheSkipsUnauthenticated(t *testing.T) {
	f := newCacheFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if len(f.mr.Keys()) != 0 {
		t.Errorf("keys written for rejected request: %v", f.mr.Keys())
	}
}

func TestCacheDisabledPassesThrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil, testutil.Logger())
	e := echo.New()
	called := false
	h := mw(func(c echo.Context) error { called = true; return nil })
	if err := h(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("next not called")
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"a":1}`))
	if err != nil {
		t.Fatal(err)
	}
	status, got, body, ok := decodePayload(bs)
	if !ok || status != http.StatusOK || got.Get("Content-Type") != "application/json" || string(body) != `{"a":1}` {
		t.Errorf("decode = %d %v %q %v", status, got, body, ok)
	}
	if _, _, _, ok := decodePayload([]byte{0, 0}); ok {
		t.Error("short payload decoded")
	}
}
