package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "go.uber.org/zap"

    "github.com/iliyamo/pcm-room-status/internal/config"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
    mr := miniredis.RunT(t)
    rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    t.Cleanup(func() { _ = rdb.Close() })
    return mr, rdb
}

func testCacheConfig() config.CacheConfig {
    return config.CacheConfig{
        Enabled:      true,
        Methods:      map[string]bool{http.MethodGet: true},
        TTL:          time.Minute,
        Prefix:       "test:cache",
        MaxBodyBytes: 1 << 20,
    }
}

func serve(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
    return rec
}

func TestRedisCache_HitMissAndInvalidate(t *testing.T) {
    mr, rdb := newTestRedis(t)
    cfg := testCacheConfig()
    log := zap.NewNop()

    calls := 0
    e := echo.New()
    e.GET("/rooms", func(c echo.Context) error {
        calls++
        return c.JSON(http.StatusOK, echo.Map{"calls": calls})
    }, NewRedisCache(cfg, rdb, log))
    e.POST("/rooms/reset", func(c echo.Context) error {
        return c.JSON(http.StatusOK, echo.Map{"success": true})
    }, InvalidateCache(cfg, rdb, log))
    e.POST("/rooms/fail", func(c echo.Context) error {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false})
    }, InvalidateCache(cfg, rdb, log))

    first := serve(e, http.MethodGet, "/rooms")
    assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
    second := serve(e, http.MethodGet, "/rooms")
    assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
    assert.Equal(t, first.Body.String(), second.Body.String())
    assert.Equal(t, echo.MIMEApplicationJSON, second.Header().Get(echo.HeaderContentType))
    assert.Equal(t, 1, calls)

    // different query, different key
    serve(e, http.MethodGet, "/rooms?status=Ocupado")
    assert.Equal(t, 2, calls)
    assert.Len(t, mr.Keys(), 2)

    // a failed mutation keeps the cache
    serve(e, http.MethodPost, "/rooms/fail")
    assert.Len(t, mr.Keys(), 2)

    serve(e, http.MethodPost, "/rooms/reset")
    assert.Empty(t, mr.Keys())

    third := serve(e, http.MethodGet, "/rooms")
    assert.Equal(t, "MISS", third.Header().Get("X-Cache"))
    assert.Equal(t, 3, calls)
}

func TestRedisCache_SkipsErrorsAndOversizedBodies(t *testing.T) {
    mr, rdb := newTestRedis(t)
    cfg := testCacheConfig()
    cfg.MaxBodyBytes = 16

    e := echo.New()
    e.GET("/missing", func(c echo.Context) error {
        return c.JSON(http.StatusNotFound, echo.Map{"success": false})
    }, NewRedisCache(cfg, rdb, zap.NewNop()))
    e.GET("/big", func(c echo.Context) error {
        return c.String(http.StatusOK, "this body is longer than sixteen bytes")
    }, NewRedisCache(cfg, rdb, zap.NewNop()))

    serve(e, http.MethodGet, "/missing")
    rec := serve(e, http.MethodGet, "/big")
    assert.Equal(t, "this body is longer than sixteen bytes", rec.Body.String())
    assert.Empty(t, mr.Keys())
}

func TestRedisCache_DisabledWithoutClient(t *testing.T) {
    calls := 0
    e := echo.New()
    e.GET("/rooms", func(c echo.Context) error {
        calls++
        return c.NoContent(http.StatusOK)
    }, NewRedisCache(testCacheConfig(), nil, zap.NewNop()))

    serve(e, http.MethodGet, "/rooms")
    rec := serve(e, http.MethodGet, "/rooms")
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Empty(t, rec.Header().Get("X-Cache"))
    assert.Equal(t, 2, calls)
}

func TestCacheKey_CanonicalQuery(t *testing.T) {
    a := cacheKey("p", httptest.NewRequest(http.MethodGet, "/api/quartos?status=Ocupado&andar=3", nil))
    b := cacheKey("p", httptest.NewRequest(http.MethodGet, "/api/quartos?andar=3&status=Ocupado", nil))
    assert.Equal(t, a, b)
    assert.Equal(t, "p:GET:/api/quartos", cacheKey("p", httptest.NewRequest(http.MethodGet, "/api/quartos", nil)))
}
