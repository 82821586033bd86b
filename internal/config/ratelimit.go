package config

import "time"

// RateLimitConfig sizes the per-client token buckets.  Room writes get
// their own, smaller bucket so a misbehaving dashboard cannot flood the
// store with flushes while reads keep flowing.
type RateLimitConfig struct {
    Enabled         bool
    ReadCapacity    int     // burst for GET and HEAD
    WriteCapacity   int     // burst for every other method
    RefillPerSecond float64 // tokens added to each bucket per second
    TTL             time.Duration
    Prefix          string
    Debug           bool // log blocked requests and expose X-RateLimit-Key
}

func LoadRateLimitConfig() RateLimitConfig {
    return RateLimitConfig{
        Enabled:         envBool("RATE_LIMIT_ENABLED", true),
        ReadCapacity:    envInt("RATE_LIMIT_READ_CAPACITY", 120),
        WriteCapacity:   envInt("RATE_LIMIT_WRITE_CAPACITY", 30),
        RefillPerSecond: envFloat("RATE_LIMIT_REFILL_PER_SEC", 2),
        TTL:             envDur("RATE_LIMIT_TTL", 10*time.Minute),
        Prefix:          envStr("RATE_LIMIT_PREFIX", "pcm:rl"),
        Debug:           envBool("RATE_LIMIT_DEBUG", false),
    }.normalize()
}

func (c RateLimitConfig) normalize() RateLimitConfig {
    if c.ReadCapacity < 1 {
        c.ReadCapacity = 1
    }
    if c.WriteCapacity < 1 {
        c.WriteCapacity = 1
    }
    if c.RefillPerSecond <= 0 {
        c.RefillPerSecond = 1
    }
    if c.TTL < time.Minute {
        c.TTL = time.Minute
    }
    return c
}

// CapacityFor returns the burst size of the bucket that method draws from.
func (c RateLimitConfig) CapacityFor(method string) int {
    if isRead(method) {
        return c.ReadCapacity
    }
    return c.WriteCapacity
}

func isRead(method string) bool {
    return method == "GET" || method == "HEAD"
}
