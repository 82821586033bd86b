package config

import (
    "strings"
    "time"
)

// CacheConfig controls the Redis read cache in front of the room
// endpoints.  It is inert when Enabled is false or Redis is unavailable.
type CacheConfig struct {
    Enabled      bool
    Methods      map[string]bool // request methods eligible for caching
    TTL          time.Duration
    Prefix       string // every key lives under Prefix so writes can purge them together
    MaxBodyBytes int    // larger responses are served but not stored; <=0 means no limit
}

func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        Methods:      parseMethods(envStr("CACHE_METHODS", "GET")),
        TTL:          envDur("CACHE_TTL", 30*time.Second),
        Prefix:       envStr("CACHE_PREFIX", "pcm:cache"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
    }
}

func parseMethods(s string) map[string]bool {
    m := make(map[string]bool)
    for _, f := range strings.Split(s, ",") {
        if f = strings.ToUpper(strings.TrimSpace(f)); f != "" {
            m[f] = true
        }
    }
    return m
}
