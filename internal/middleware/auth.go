package middleware

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/pcm-room-status/internal/auth"
    "github.com/iliyamo/pcm-room-status/internal/model"
)

// UserLookup finds an account by email.
type UserLookup interface {
    GetByEmail(ctx context.Context, email string) (model.User, error)
}

// Authenticate resolves the Authorization header to a user.  A missing
// header yields 401; a token that does not resolve to an existing user
// yields 403.  On success the user is stored in the context.
func Authenticate(a auth.Authenticator, users UserLookup) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            token := auth.TokenFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
            if token == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Token não fornecido"})
            }
            email, err := a.Resolve(token)
            if err != nil {
                return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "Token inválido"})
            }
            u, err := users.GetByEmail(c.Request().Context(), email)
            if err != nil {
                return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "Token inválido"})
            }
            c.Set(userKey, u)
            return next(c)
        }
    }
}
