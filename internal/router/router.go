package router // package router wires handlers and middleware into an Echo instance

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/pcm-room-status/internal/auth"
	"github.com/iliyamo/pcm-room-status/internal/config"
	"github.com/iliyamo/pcm-room-status/internal/handler"
	"github.com/iliyamo/pcm-room-status/internal/middleware"
	"github.com/iliyamo/pcm-room-status/internal/model"
	"github.com/iliyamo/pcm-room-status/internal/repository"
	"github.com/iliyamo/pcm-room-status/internal/service"
)

// Deps is everything the HTTP layer needs.  Redis may be nil, in which
// case caching and rate limiting are skipped.
type Deps struct {
	Rooms         *repository.RoomRepo
	Users         *repository.UserRepo
	Authenticator auth.Authenticator
	Events        service.Publisher
	Redis         *redis.Client
	Cache         config.CacheConfig
	RateLimit     config.RateLimitConfig
	CORSOrigins   []string
	Log           *zap.Logger
}

// New builds the Echo instance with global middleware and all routes.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler(d.Log)

	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: d.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Log))

	RegisterRoutes(e)
	RegisterAuth(e, handler.NewAuthHandler(d.Users, d.Authenticator, d.Log))
	RegisterRooms(e, handler.NewRoomHandler(d.Rooms, d.Events, d.Log),
		middleware.NewRedisCache(d.Cache, d.Redis, d.Log),
		middleware.InvalidateCache(d.Cache, d.Redis, d.Log))
	RegisterAdmin(e, handler.NewAdminHandler(d.Users, d.Log), d.Authenticator, d.Users)
	return e
}

// RegisterRoutes registers routes that sit outside the API.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers login and self-registration.  Neither needs a
// token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/api/auth")
	g.POST("/login", a.Login)
	g.POST("/register", a.Register)
}

// RegisterRooms registers the room endpoints.  They are public, including
// the mutating ones.  Reads go through cache; writes drop it.
func RegisterRooms(e *echo.Echo, h *handler.RoomHandler, cache, invalidate echo.MiddlewareFunc) {
	g := e.Group("/api/quartos")
	g.GET("", h.List, cache)
	g.GET("/andar/:numero", h.ListByFloor, cache)
	g.GET("/:id", h.Get, cache)
	g.POST("/atualizar", h.UpdateStatus, invalidate)
	g.POST("/atualizar-checklist", h.UpdateChecklist, invalidate)
	g.POST("/reset", h.Reset, invalidate)
}

// RegisterAdmin registers account management.  Every route requires a
// token that resolves to an admin.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, a auth.Authenticator, users middleware.UserLookup) {
	g := e.Group(
		"/api/admin",
		middleware.Authenticate(a, users),
		middleware.RequireRole(model.RoleAdmin),
	)
	g.GET("/users", h.ListUsers)
	g.POST("/users", h.CreateUser)
	g.POST("/users/update-nickname", h.UpdateNickname)
	g.DELETE("/users/:email", h.DeleteUser)
}
