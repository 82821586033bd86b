package middleware

import (
    "context"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"

    "github.com/iliyamo/pcm-room-status/internal/auth"
    "github.com/iliyamo/pcm-room-status/internal/model"
    "github.com/iliyamo/pcm-room-status/internal/repository"
)

type stubUsers map[string]model.User

func (s stubUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
    u, ok := s[email]
    if !ok {
        return model.User{}, repository.ErrUserNotFound
    }
    return u, nil
}

func newAdminEcho() *echo.Echo {
    users := stubUsers{
        "admin@goinn.com": {Email: "admin@goinn.com", Role: model.RoleAdmin},
        "user@goinn.com":  {Email: "user@goinn.com", Role: model.RoleUser},
    }
    e := echo.New()
    g := e.Group("/admin", Authenticate(auth.EmailTokenAuthenticator{}, users), RequireRole(model.RoleAdmin))
    g.GET("", func(c echo.Context) error {
        u, _ := CurrentUser(c)
        return c.String(http.StatusOK, u.Email)
    })
    return e
}

func TestAuthenticateAndRequireRole(t *testing.T) {
    e := newAdminEcho()
    cases := []struct {
        name   string
        header string
        status int
        body   string
    }{
        {"missing token", "", http.StatusUnauthorized, "Token não fornecido"},
        {"unknown user", "ghost@goinn.com", http.StatusForbidden, "Token inválido"},
        {"not admin", "user@goinn.com", http.StatusForbidden, "Acesso negado"},
        {"admin", "admin@goinn.com", http.StatusOK, "admin@goinn.com"},
        {"admin with bearer prefix", "Bearer admin@goinn.com", http.StatusOK, "admin@goinn.com"},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            req := httptest.NewRequest(http.MethodGet, "/admin", nil)
            if tc.header != "" {
                req.Header.Set(echo.HeaderAuthorization, tc.header)
            }
            rec := httptest.NewRecorder()
            e.ServeHTTP(rec, req)

            assert.Equal(t, tc.status, rec.Code)
            assert.Contains(t, rec.Body.String(), tc.body)
        })
    }
}

func TestRequireRole_WithoutAuthenticate(t *testing.T) {
    e := echo.New()
    e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequireRole(model.RoleAdmin))

    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
    assert.Equal(t, http.StatusForbidden, rec.Code)
}
