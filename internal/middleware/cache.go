package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/themepark/internal/config"
)

// captureWriter captures response body/status while forwarding to the client.
// Once more than limit bytes have gone through, the copy is abandoned and
// the response is not cached.
type captureWriter struct {
	http.ResponseWriter
	status   int
	buf      bytes.Buffer
	limit    int64
	overflow bool
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if !cw.overflow {
		if cw.limit > 0 && int64(cw.buf.Len()+len(b)) > cw.limit {
			cw.overflow = true
			cw.buf.Reset()
		} else {
			cw.buf.Write(b)
		}
	}
	return cw.ResponseWriter.Write(b)
}

// genKey holds a user's cache generation. Every successful write bumps it,
// which orphans all entries stored under the previous generation.
func genKey(prefix, userID string) string {
	return fmt.Sprintf("%s:user:%s:gen", prefix, userID)
}

// cacheKey scopes an entry to one user, one generation and one route.
// Lists are private, so two callers must never share an entry.
func cacheKey(prefix, userID string, gen int64, route string) string {
	sum := sha1.Sum([]byte(route))
	return fmt.Sprintf("%s:user:%s:gen:%d:route:%x", prefix, userID, gen, sum[:])
}

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	hdrJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8+len(hdrJSON)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
	copy(out[8:8+len(hdrJSON)], hdrJSON)
	copy(out[8+len(hdrJSON):], body)
	return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(bs) < 8 {
		return 0, nil, nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	hlen := int(binary.BigEndian.Uint32(bs[4:8]))
	if hlen < 0 || 8+hlen > len(bs) {
		return 0, nil, nil, false
	}
	header = make(http.Header)
	if hlen > 0 {
		if err := json.Unmarshal(bs[8:8+hlen], &header); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, header, bs[8+hlen:], true
}

// NewRedisCache caches successful GET responses per user and route. A
// successful write bumps the user's generation, so a caller always sees
// their own purchase or booking on the next list, even when a slower list
// request stores its response after the write. Requests without an
// identity pass straight through.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client, logger *slog.Logger) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	maxBody := int64(cfg.MaxBodyBytes)
	logger = logger.With("module", "cache")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := CurrentIdentity(c)
			if !ok {
				return next(c)
			}
			ctx := c.Request().Context()
			gkey := genKey(cfg.Prefix, id.UserID)

			switch c.Request().Method {
			case http.MethodGet:
			case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
				if err := next(c); err != nil {
					return err
				}
				if s := c.Response().Status; s >= 200 && s < 300 {
					if err := rdb.Incr(context.WithoutCancel(ctx), gkey).Err(); err != nil {
						logger.Warn("invalidate failed", "key", gkey, "error", err)
					}
				}
				return nil
			default:
				return next(c)
			}

			// The generation is read before the handler touches the
			// database. A write that lands meanwhile moves the user on to a
			// new generation and this response is stored where nobody reads.
			gen, err := rdb.Get(ctx, gkey).Int64()
			if err != nil && !errors.Is(err, redis.Nil) {
				logger.Warn("cache read failed", "key", gkey, "error", err)
				return next(c)
			}
			key := cacheKey(cfg.Prefix, id.UserID, gen, c.Path())

			if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
				if status, hdr, body, ok := decodePayload(bs); ok {
					for k, vals := range hdr {
						if strings.EqualFold(k, echo.HeaderContentLength) || strings.EqualFold(k, echo.HeaderXRequestID) {
							continue
						}
						for _, v := range vals {
							c.Response().Header().Add(k, v)
						}
					}
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(status)
					if len(body) > 0 {
						_, _ = c.Response().Write(body)
					}
					return nil
				}
			} else if !errors.Is(err, redis.Nil) {
				logger.Warn("cache read failed", "key", key, "error", err)
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if cw.status != http.StatusOK || cw.overflow {
				return nil
			}

			hdr := c.Response().Header().Clone()
			hdr.Del("X-Cache")
			payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes())
			if err != nil {
				return nil
			}
			if err := rdb.Set(context.WithoutCancel(ctx), key, payload, ttl).Err(); err != nil {
				logger.Warn("cache write failed", "key", key, "error", err)
			}
			return nil
		}
	}
}
