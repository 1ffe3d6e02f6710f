package config

import (
    "os"
    "time"
)

// CacheConfig defines settings for the response cache on public event
// listings.  When Enabled is false or no Redis client is configured,
// caching is disabled and requests fall through to the database.  TTL
// bounds staleness of the cached event availability numbers; keep it
// short since availableSlots changes with every booking.
type CacheConfig struct {
    Enabled      bool
    TTL          time.Duration
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults cache GET responses for ten seconds, up to 1 MiB of body.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      getenv("CACHE_ENABLED", "true") == "true",
        TTL:          durOr(os.Getenv("CACHE_TTL"), 10*time.Second),
        Prefix:       getenv("CACHE_PREFIX", "cache"),
        MaxBodyBytes: atoiOr(os.Getenv("CACHE_MAX_BODY_BYTES"), 1<<20),
    }
}
