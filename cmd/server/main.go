package main // entry point of the PCM room status service

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/pcm-room-status/internal/auth"
	"github.com/iliyamo/pcm-room-status/internal/config"
	"github.com/iliyamo/pcm-room-status/internal/database"
	"github.com/iliyamo/pcm-room-status/internal/logging"
	"github.com/iliyamo/pcm-room-status/internal/queue"
	"github.com/iliyamo/pcm-room-status/internal/repository"
	"github.com/iliyamo/pcm-room-status/internal/router"
	"github.com/iliyamo/pcm-room-status/internal/service"
	"github.com/iliyamo/pcm-room-status/internal/storage"
)

func main() {
	cfg := config.Load()
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.Service)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		logger.Fatal("storage backend", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	defer closeBackend()

	store := repository.NewStore(backend, logger)
	store.Load(ctx)

	authn, err := newAuthenticator(cfg)
	if err != nil {
		logger.Fatal("authenticator", zap.String("strategy", cfg.AuthStrategy), zap.Error(err))
	}

	rdb := config.NewRedisClient(ctx)
	if rdb == nil {
		logger.Warn("redis unavailable, cache and rate limit disabled")
	} else {
		defer func() { _ = rdb.Close() }()
	}

	var events service.Publisher = service.NopPublisher{}
	if cfg.AMQPEnabled {
		events = &service.AMQPPublisher{URL: cfg.AMQPURL, Queue: cfg.RoomEventsQueue, Log: logger}
		consumer := &queue.Consumer{URL: cfg.AMQPURL, Queue: cfg.RoomEventsQueue, LogPath: cfg.RoomEventsLog, Log: logger}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("room events consumer stopped", zap.Error(err))
			}
		}()
	}

	e := router.New(router.Deps{
		Rooms:         repository.NewRoomRepo(store),
		Users:         repository.NewUserRepo(store),
		Authenticator: authn,
		Events:        events,
		Redis:         rdb,
		Cache:         config.LoadCacheConfig(),
		RateLimit:     config.LoadRateLimitConfig(),
		CORSOrigins:   cfg.CORSOrigins,
		Log:           logger,
	})

	addr := ":" + cfg.Port
	go func() {
		logger.Info("listening",
			zap.String("addr", addr),
			zap.String("env", cfg.Env),
			zap.String("storage", cfg.StorageDriver),
			zap.String("auth", cfg.AuthStrategy))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	store.Flush(shutdownCtx)
}

func openBackend(ctx context.Context, cfg config.Config) (storage.Backend, func(), error) {
	switch cfg.StorageDriver {
	case "", "file":
		for _, p := range []string{cfg.RoomsFile, cfg.UsersFile} {
			if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
				return nil, nil, err
			}
		}
		return storage.NewFileBackend(cfg.RoomsFile, cfg.UsersFile), func() {}, nil
	case "mysql":
		db, err := database.Open(ctx, database.Options{
			User: cfg.DBUser, Pass: cfg.DBPass, Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
		})
		if err != nil {
			return nil, nil, err
		}
		b, err := storage.NewSQLBackend(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return b, func() { _ = db.Close() }, nil
	default:
		return nil, nil, errors.New("unknown STORAGE_DRIVER " + cfg.StorageDriver)
	}
}

func newAuthenticator(cfg config.Config) (auth.Authenticator, error) {
	switch cfg.AuthStrategy {
	case "", "email":
		return auth.EmailTokenAuthenticator{}, nil
	case "jwt":
		return auth.NewJWTAuthenticator(cfg.JWTSecret, cfg.AccessTTL)
	default:
		return nil, errors.New("unknown AUTH_STRATEGY " + cfg.AuthStrategy)
	}
}
