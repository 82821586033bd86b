package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/pcm-room-status/internal/auth"
    "github.com/iliyamo/pcm-room-status/internal/model"
    "github.com/iliyamo/pcm-room-status/internal/repository"
)

// AuthHandler bundles dependencies for login and self-registration.
type AuthHandler struct {
    Users *repository.UserRepo
    Auth  auth.Authenticator
    Log   *zap.Logger
}

func NewAuthHandler(u *repository.UserRepo, a auth.Authenticator, log *zap.Logger) *AuthHandler {
    return &AuthHandler{Users: u, Auth: a, Log: log}
}

// ----- DTOs -----

type loginReq struct {
    Email    string `json:"email"`
    Password string `json:"senha"`
}
type registerReq struct {
    Email    string `json:"email"`
    Password string `json:"senha"`
    Nickname string `json:"nickname"`
}
type authResp struct {
    Success bool             `json:"success"`
    User    model.PublicUser `json:"user"`
    Token   string           `json:"token"`
}

// Login: exact email and password match, returns the user and a token.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return invalidBody(c)
    }
    u, err := h.Users.Authenticate(c.Request().Context(), req.Email, req.Password)
    if err != nil {
        return fail(c, http.StatusUnauthorized, "Credenciais inválidas")
    }
    return h.respond(c, u)
}

// Register: create a "user" account and log it in.
func (h *AuthHandler) Register(c echo.Context) error {
    var req registerReq
    if err := c.Bind(&req); err != nil {
        return invalidBody(c)
    }
    if req.Email == "" || req.Password == "" {
        return fail(c, http.StatusBadRequest, "E-mail e senha são obrigatórios")
    }
    u, err := h.Users.Create(c.Request().Context(), repository.NewUser{
        Email:    req.Email,
        Password: req.Password,
        Role:     model.RoleUser,
        Nickname: req.Nickname,
    })
    if errors.Is(err, repository.ErrEmailExists) {
        return fail(c, http.StatusConflict, "E-mail já cadastrado")
    }
    if err != nil {
        return err
    }
    h.Log.Info("user registered", zap.String("email", u.Email))
    return h.respond(c, u)
}

func (h *AuthHandler) respond(c echo.Context, u model.User) error {
    token, err := h.Auth.Issue(u)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, authResp{Success: true, User: u.Public(), Token: token})
}
