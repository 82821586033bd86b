package middleware

import (
    "math"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "github.com/iliyamo/pcm-room-status/internal/config"
)

// takeToken refills the bucket for the time elapsed since the last call,
// then tries to take one token.  Returns {allowed, tokens left, wait ms}.
var takeToken = redis.NewScript(`
local key      = KEYS[1]
local now      = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local per_ms   = tonumber(ARGV[3])
local ttl      = tonumber(ARGV[4])

local tokens = tonumber(redis.call('HGET', key, 'tokens') or capacity)
local seen   = tonumber(redis.call('HGET', key, 'seen') or now)
if now > seen then
  tokens = math.min(capacity, tokens + (now - seen) * per_ms)
end

local allowed, wait = 0, 0
if tokens >= 1 then
  allowed = 1
  tokens = tokens - 1
else
  wait = math.ceil((1 - tokens) / per_ms)
end

redis.call('HSET', key, 'tokens', tostring(tokens), 'seen', tostring(now))
redis.call('EXPIRE', key, ttl)
return {allowed, math.floor(tokens), wait}
`)

// NewTokenBucket limits each client IP with two Redis token buckets, one
// for reads and one for writes.  Redis errors let the request through.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client, log *zap.Logger) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return passThrough
    }
    perMs := cfg.RefillPerSecond / 1000
    ttl := int64(cfg.TTL / time.Second)

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            method := c.Request().Method
            key := rateKey(cfg.Prefix, method, c.RealIP())
            capacity := cfg.CapacityFor(method)

            res, err := takeToken.Run(c.Request().Context(), rdb, []string{key},
                time.Now().UnixMilli(), capacity, perMs, ttl).Int64Slice()
            if err != nil || len(res) != 3 {
                log.Warn("ratelimit: bucket unavailable", zap.String("key", key), zap.Error(err))
                return next(c)
            }
            allowed, left, waitMs := res[0] == 1, res[1], res[2]

            h := c.Response().Header()
            h.Set("X-RateLimit-Limit", strconv.Itoa(capacity))
            h.Set("X-RateLimit-Remaining", strconv.FormatInt(left, 10))
            if cfg.Debug {
                h.Set("X-RateLimit-Key", key)
            }
            if allowed {
                return next(c)
            }

            secs := int(math.Ceil(float64(waitMs) / 1000))
            h.Set("Retry-After", strconv.Itoa(secs))
            if cfg.Debug {
                log.Info("ratelimit: blocked", zap.String("key", key), zap.Int64("wait_ms", waitMs))
            }
            return c.JSON(http.StatusTooManyRequests, echo.Map{
                "success":     false,
                "error":       "Muitas requisições, tente novamente em instantes",
                "retry_after": secs,
            })
        }
    }
}

func rateKey(prefix, method, ip string) string {
    scope := "write"
    if method == http.MethodGet || method == http.MethodHead {
        scope = "read"
    }
    if ip == "" {
        ip = "unknown"
    }
    return strings.Join([]string{prefix, scope, ip}, ":")
}
