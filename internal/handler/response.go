package handler

import (
    "errors"
    "fmt"
    "net/http"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/pcm-room-status/internal/middleware"
)

// Every response carries a "success" flag; errors add an "error" string
// and sometimes hint fields.

func ok(c echo.Context, body echo.Map) error {
    body["success"] = true
    return c.JSON(http.StatusOK, body)
}

func fail(c echo.Context, status int, msg string, hints ...echo.Map) error {
    body := echo.Map{"success": false, "error": msg}
    for _, h := range hints {
        for k, v := range h {
            body[k] = v
        }
    }
    return c.JSON(status, body)
}

func invalidBody(c echo.Context) error {
    return fail(c, http.StatusBadRequest, "Corpo da requisição inválido")
}

// ErrorHandler answers errors that escaped a handler.  Echo's own HTTP
// errors (unknown route, wrong method) keep their status; anything else
// is logged and reported as a generic 500.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
    return func(err error, c echo.Context) {
        if c.Response().Committed {
            return
        }
        code := http.StatusInternalServerError
        msg := "Erro interno do servidor"
        var he *echo.HTTPError
        if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
            code = he.Code
            msg = fmt.Sprint(he.Message)
        } else {
            log.Error("unhandled error",
                zap.String("request_id", middleware.RequestID(c)),
                zap.String("method", c.Request().Method),
                zap.String("path", c.Request().URL.Path),
                zap.Error(err))
        }
        if c.Request().Method == http.MethodHead {
            err = c.NoContent(code)
        } else {
            err = c.JSON(code, echo.Map{"success": false, "error": msg})
        }
        if err != nil {
            log.Error("write error response", zap.Error(err))
        }
    }
}
