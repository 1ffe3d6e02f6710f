package middleware

import (
    "fmt"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/event-booking/internal/config"
)

// fixedWindowScript counts a request against the window key and sets the
// window expiry on the first hit. Runs as a single Lua call so the count
// and the expiry are atomic.
var fixedWindowScript = redis.NewScript(`
    local current = redis.call('INCR', KEYS[1])
    if current == 1 then
        redis.call('PEXPIRE', KEYS[1], ARGV[1])
    end
    local ttl = redis.call('PTTL', KEYS[1])
    return { current, ttl }
`)

// RateLimit returns a fixed-window request limiter backed by Redis,
// applied per client IP and route.  On an exhausted window it responds
// 429 with a Retry-After header.  When limiting is disabled or no Redis
// client is available, the middleware is a no-op; on Redis errors the
// request is allowed through rather than failing closed.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            window := time.Now().UnixMilli() / cfg.Window.Milliseconds()
            key := fmt.Sprintf("%s:%s:%s:%d", cfg.Prefix, c.RealIP(), c.Path(), window)

            vals, err := fixedWindowScript.Run(c.Request().Context(), rdb,
                []string{key}, cfg.Window.Milliseconds()).Int64Slice()
            if err != nil || len(vals) != 2 {
                return next(c)
            }
            count, ttl := vals[0], vals[1]
            remaining := int64(cfg.Limit) - count
            if remaining < 0 {
                remaining = 0
            }
            h := c.Response().Header()
            h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
            h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
            if count > int64(cfg.Limit) {
                retryAfter := (ttl + 999) / 1000 // round up to whole seconds
                if retryAfter < 1 {
                    retryAfter = 1
                }
                h.Set("Retry-After", strconv.FormatInt(retryAfter, 10))
                return c.JSON(http.StatusTooManyRequests, echo.Map{
                    "success": false,
                    "message": "Too many requests",
                    "errors":  []string{},
                })
            }
            return next(c)
        }
    }
}
