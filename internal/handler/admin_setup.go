package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-booking/internal/service"
)

// AdminSetupHandler serves the bootstrap endpoint that mints the first
// administrator of a deployment. Unauthenticated: without it the /admin
// surface could never be reached on a fresh database.
type AdminSetupHandler struct {
    Auth *service.AuthService
}

func NewAdminSetupHandler(auth *service.AuthService) *AdminSetupHandler {
    return &AdminSetupHandler{Auth: auth}
}

type createAdminReq struct {
    Name         string `json:"name"`
    EmailOrPhone string `json:"emailOrPhone"`
    Password     string `json:"password"`
}

// CreateAdmin handles POST /admin-setup/create-admin: create an admin
// account, or promote the account already registered under the handle.
func (h *AdminSetupHandler) CreateAdmin(c echo.Context) error {
    var req createAdminReq
    if err := c.Bind(&req); err != nil {
        return fail(c, http.StatusBadRequest, "Invalid request body")
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    created, err := h.Auth.BootstrapAdmin(ctx, req.Name, req.EmailOrPhone, req.Password)
    if err != nil {
        return failFrom(c, err)
    }
    if created {
        return ok(c, "Admin user created successfully", nil)
    }
    return ok(c, "User role updated to admin successfully", nil)
}
