package middleware

import (
    "bytes"
    "crypto/sha1"
    "fmt"
    "net/http"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/event-booking/internal/config"
)

// bodyRecorder captures the response body while forwarding it to the
// client, so a successful response can be stored after it is written.
type bodyRecorder struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
    limit  int
}

func (w *bodyRecorder) WriteHeader(code int) {
    w.status = code
    w.ResponseWriter.WriteHeader(code)
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
    if w.buf.Len()+len(b) <= w.limit {
        w.buf.Write(b)
    } else {
        // Oversized responses are served but never cached.
        w.buf.Reset()
        w.limit = -1
    }
    return w.ResponseWriter.Write(b)
}

// ResponseCache caches successful JSON responses of GET endpoints in
// Redis, keyed by route and query string.  Event listings tolerate the
// short staleness window configured by CacheConfig.TTL; everything else
// about the request falls through untouched.  Disabled cleanly when no
// Redis client is available, and Redis errors always fall back to the
// live handler.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if c.Request().Method != http.MethodGet {
                return next(c)
            }
            key := cacheKey(cfg.Prefix, c)
            ctx := c.Request().Context()

            if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
                c.Response().Header().Set("X-Cache", "HIT")
                return c.JSONBlob(http.StatusOK, body)
            }

            rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
            c.Response().Writer = rec
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }
            if rec.status == http.StatusOK && rec.buf.Len() > 0 {
                _ = rdb.Set(ctx, key, rec.buf.Bytes(), cfg.TTL).Err()
            }
            return nil
        }
    }
}

func cacheKey(prefix string, c echo.Context) string {
    sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
    return fmt.Sprintf("%s:%x", prefix, sum)
}
