package middleware

// identity.go holds the context keys shared by the middleware and the
// handlers.  Authenticate stores the resolved model.User under userKey.

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/pcm-room-status/internal/model"
)

const (
    userKey      = "user"
    requestIDKey = "request_id"
)

// CurrentUser returns the user resolved by Authenticate.
func CurrentUser(c echo.Context) (model.User, bool) {
    u, ok := c.Get(userKey).(model.User)
    return u, ok
}

// RequestID returns the id assigned by RequestLogger, or "".
func RequestID(c echo.Context) string {
    id, _ := c.Get(requestIDKey).(string)
    return id
}
