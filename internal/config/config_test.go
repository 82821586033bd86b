package config

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
    t.Chdir(t.TempDir()) // no .env here
    for _, k := range []string{"APP_PORT", "STORAGE_DRIVER", "ROOMS_FILE", "USERS_FILE", "AUTH_STRATEGY",
        "ACCESS_TOKEN_TTL_MIN", "CORS_ORIGINS", "AMQP_ENABLED", "ROOM_EVENTS_QUEUE"} {
        t.Setenv(k, "")
    }
    cfg := Load()

    assert.Equal(t, "3001", cfg.Port)
    assert.Equal(t, "file", cfg.StorageDriver)
    assert.Equal(t, "quartos-data.json", cfg.RoomsFile)
    assert.Equal(t, "users-data.json", cfg.UsersFile)
    assert.Equal(t, "email", cfg.AuthStrategy)
    assert.Equal(t, time.Hour, cfg.AccessTTL)
    assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
    assert.False(t, cfg.AMQPEnabled)
    assert.Equal(t, "pcm.room.events", cfg.RoomEventsQueue)
}

func TestLoad_FromEnvironment(t *testing.T) {
    t.Chdir(t.TempDir())
    t.Setenv("APP_PORT", "8080")
    t.Setenv("STORAGE_DRIVER", "MySQL")
    t.Setenv("AUTH_STRATEGY", "jwt")
    t.Setenv("ACCESS_TOKEN_TTL_MIN", "15")
    t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
    t.Setenv("AMQP_ENABLED", "yes")
    t.Setenv("RABBITMQ_URL", "amqp://pcm@broker:5672/")

    cfg := Load()

    assert.Equal(t, "8080", cfg.Port)
    assert.Equal(t, "mysql", cfg.StorageDriver)
    assert.Equal(t, "jwt", cfg.AuthStrategy)
    assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
    assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
    assert.True(t, cfg.AMQPEnabled)
    assert.Equal(t, "amqp://pcm@broker:5672/", cfg.AMQPURL)
}

func TestLoadRateLimitConfig_Normalizes(t *testing.T) {
    t.Setenv("RATE_LIMIT_READ_CAPACITY", "0")
    t.Setenv("RATE_LIMIT_WRITE_CAPACITY", "bogus")
    t.Setenv("RATE_LIMIT_REFILL_PER_SEC", "-3")
    t.Setenv("RATE_LIMIT_TTL", "1s")

    cfg := LoadRateLimitConfig()

    assert.Equal(t, 1, cfg.ReadCapacity)
    assert.Equal(t, 30, cfg.WriteCapacity)
    assert.Equal(t, 1.0, cfg.RefillPerSecond)
    assert.Equal(t, time.Minute, cfg.TTL)
    assert.Equal(t, 1, cfg.CapacityFor("GET"))
    assert.Equal(t, 30, cfg.CapacityFor("POST"))
}

func TestLoadCacheConfig_Methods(t *testing.T) {
    t.Setenv("CACHE_METHODS", "get, head")

    cfg := LoadCacheConfig()

    assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, cfg.Methods)
    assert.Equal(t, 30*time.Second, cfg.TTL)
}

func TestRedisOptions(t *testing.T) {
    t.Setenv("REDIS_ADDR", "cache:6380")
    t.Setenv("REDIS_HOST", "")
    t.Setenv("REDIS_DB", "2")
    t.Setenv("REDIS_TLS", "true")

    opts := RedisOptions()
    assert.Equal(t, "cache:6380", opts.Addr)
    assert.Equal(t, 2, opts.DB)
    assert.NotNil(t, opts.TLSConfig)

    t.Setenv("REDIS_HOST", "redis")
    t.Setenv("REDIS_PORT", "6379")
    assert.Equal(t, "redis:6379", RedisOptions().Addr)
}
