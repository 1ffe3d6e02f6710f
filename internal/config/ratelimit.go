package config

import (
    "strconv"
    "time"

    "os"
)

// RateLimitConfig defines settings for the Redis-backed request limiter
// guarding the auth endpoints.  Limit requests are allowed per Window per
// client key; Prefix namespaces the Redis counters.  When Enabled is false
// or no Redis client is available, limiting is disabled.
type RateLimitConfig struct {
    Enabled bool
    Limit   int
    Window  time.Duration
    Prefix  string
}

// LoadRateLimitConfig reads environment variables to build a RateLimitConfig.
// Defaults allow 30 requests per minute per client.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled: getenv("RATE_LIMIT_ENABLED", "true") == "true",
        Limit:   atoiOr(os.Getenv("RATE_LIMIT_REQUESTS"), 30),
        Window:  durOr(os.Getenv("RATE_LIMIT_WINDOW"), time.Minute),
        Prefix:  getenv("RATE_LIMIT_PREFIX", "rl"),
    }
    if cfg.Limit < 1 {
        cfg.Limit = 1
    }
    if cfg.Window <= 0 {
        cfg.Window = time.Minute
    }
    return cfg
}

func atoiOr(s string, def int) int {
    if s == "" {
        return def
    }
    if n, err := strconv.Atoi(s); err == nil {
        return n
    }
    return def
}

func durOr(s string, def time.Duration) time.Duration {
    if s == "" {
        return def
    }
    if d, err := time.ParseDuration(s); err == nil {
        return d
    }
    return def
}
