package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-booking/internal/service"
)

// apiResponse is the JSON envelope wrapping every response of the API.
// Errors carries granular messages when a request fails on more than one
// point; it is always present (possibly empty) so clients can range over
// it unconditionally.
type apiResponse struct {
    Success bool        `json:"success"`
    Message string      `json:"message"`
    Data    interface{} `json:"data,omitempty"`
    Errors  []string    `json:"errors"`
}

// ok writes a success envelope with the given message and payload.
func ok(c echo.Context, message string, data interface{}) error {
    return c.JSON(http.StatusOK, apiResponse{
        Success: true,
        Message: message,
        Data:    data,
        Errors:  []string{},
    })
}

// fail writes a failure envelope with an explicit status code.
func fail(c echo.Context, status int, message string, errs ...string) error {
    if errs == nil {
        errs = []string{}
    }
    return c.JSON(status, apiResponse{
        Success: false,
        Message: message,
        Errors:  errs,
    })
}

// ErrorHandler returns the central echo error handler. Anything that
// escapes the handlers (unknown routes, method mismatches, recovered
// panics, stray errors) is normalized into the same envelope every
// deliberate response uses. Failure detail on 5xx responses is only
// exposed in dev.
func ErrorHandler(dev bool) echo.HTTPErrorHandler {
    return func(err error, c echo.Context) {
        if c.Response().Committed {
            return
        }
        status := http.StatusInternalServerError
        message := "An unexpected error occurred"
        var he *echo.HTTPError
        if errors.As(err, &he) {
            status = he.Code
            if msg, ok := he.Message.(string); ok && status < http.StatusInternalServerError {
                message = msg
            }
        }
        if dev && status >= http.StatusInternalServerError {
            message = err.Error()
        }
        if c.Request().Method == http.MethodHead {
            _ = c.NoContent(status)
            return
        }
        _ = fail(c, status, message)
    }
}

// failFrom translates a workflow error into an HTTP response. Tagged
// workflow errors map kind to status; anything else is an internal error
// reported with a generic message so storage details never leak.
func failFrom(c echo.Context, err error) error {
    var status int
    switch service.KindOf(err) {
    case service.KindInvalid, service.KindInvalidState:
        status = http.StatusBadRequest
    case service.KindUnauthorized:
        status = http.StatusUnauthorized
    case service.KindNotFound:
        status = http.StatusNotFound
    case service.KindConflict:
        status = http.StatusConflict
    default:
        return fail(c, http.StatusInternalServerError, "An unexpected error occurred")
    }
    return fail(c, status, err.Error())
}
