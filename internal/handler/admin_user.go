package handler

import (
    "errors"
    "fmt"
    "net/http"
    "net/url"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/pcm-room-status/internal/middleware"
    "github.com/iliyamo/pcm-room-status/internal/model"
    "github.com/iliyamo/pcm-room-status/internal/repository"
)

// AdminHandler serves account management.  Its routes sit behind
// Authenticate and RequireRole("admin").
type AdminHandler struct {
    Users *repository.UserRepo
    Log   *zap.Logger
}

func NewAdminHandler(u *repository.UserRepo, log *zap.Logger) *AdminHandler {
    return &AdminHandler{Users: u, Log: log}
}

type createUserReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
    Role     string `json:"role"`
    Nickname string `json:"nickname"`
}

type updateNicknameReq struct {
    Email    string `json:"email"`
    Nickname string `json:"nickname"`
}

func actor(c echo.Context) zap.Field {
    u, _ := middleware.CurrentUser(c)
    return zap.String("admin", u.Email)
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
    return ok(c, echo.Map{"data": h.Users.List(c.Request().Context())})
}

// CreateUser handles POST /api/admin/users.
func (h *AdminHandler) CreateUser(c echo.Context) error {
    var req createUserReq
    if err := c.Bind(&req); err != nil {
        return invalidBody(c)
    }
    u, err := h.Users.Create(c.Request().Context(), repository.NewUser{
        Email:    req.Email,
        Password: req.Password,
        Role:     req.Role,
        Nickname: req.Nickname,
    })
    switch {
    case errors.Is(err, repository.ErrMissingFields):
        return fail(c, http.StatusBadRequest, "Todos os campos são obrigatórios")
    case errors.Is(err, repository.ErrInvalidRole):
        return fail(c, http.StatusBadRequest, "Perfil inválido", echo.Map{"validRoles": []string{model.RoleAdmin, model.RoleUser}})
    case errors.Is(err, repository.ErrEmailExists):
        return fail(c, http.StatusConflict, "E-mail já cadastrado")
    case err != nil:
        return err
    }
    h.Log.Info("user created", actor(c), zap.String("email", u.Email), zap.String("role", u.Role))
    return ok(c, echo.Map{"user": u.Public()})
}

// UpdateNickname handles POST /api/admin/users/update-nickname.
func (h *AdminHandler) UpdateNickname(c echo.Context) error {
    var req updateNicknameReq
    if err := c.Bind(&req); err != nil {
        return invalidBody(c)
    }
    err := h.Users.UpdateNickname(c.Request().Context(), req.Email, req.Nickname)
    if errors.Is(err, repository.ErrUserNotFound) {
        return fail(c, http.StatusNotFound, "Usuário não encontrado")
    }
    if err != nil {
        return err
    }
    h.Log.Info("nickname updated", actor(c), zap.String("email", req.Email))
    return ok(c, echo.Map{"message": fmt.Sprintf("Apelido de %s atualizado para \"%s\"", req.Email, req.Nickname)})
}

// DeleteUser handles DELETE /api/admin/users/:email.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
    email, err := url.PathUnescape(c.Param("email"))
    if err != nil {
        return fail(c, http.StatusBadRequest, "E-mail inválido")
    }
    err = h.Users.Delete(c.Request().Context(), email)
    if errors.Is(err, repository.ErrUserNotFound) {
        return fail(c, http.StatusNotFound, "Usuário não encontrado")
    }
    if err != nil {
        return err
    }
    h.Log.Info("user deleted", actor(c), zap.String("email", email))
    return ok(c, echo.Map{"message": fmt.Sprintf("Usuário %s removido com sucesso", email)})
}
