package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-booking/internal/service"
)

// AuthHandler exposes signup, login and refresh over the auth workflow.
type AuthHandler struct {
    Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
    return &AuthHandler{Auth: auth}
}

// ----- DTOs -----

type signupReq struct {
    Name         string `json:"name"`
    EmailOrPhone string `json:"emailOrPhone"`
    Password     string `json:"password"`
}
type loginReq struct {
    EmailOrPhone string `json:"emailOrPhone"`
    Password     string `json:"password"`
}
type refreshReq struct {
    AccessToken  string `json:"accessToken"`
    RefreshToken string `json:"refreshToken"`
}

type sessionData struct {
    AccessToken  string    `json:"accessToken"`
    RefreshToken string    `json:"refreshToken"`
    ExpiresAt    time.Time `json:"expiresAt"`
    UserID       uint64    `json:"userId"`
    Name         string    `json:"name"`
    EmailOrPhone string    `json:"emailOrPhone"`
    Role         string    `json:"role"`
}

type tokenPairData struct {
    AccessToken  string    `json:"accessToken"`
    RefreshToken string    `json:"refreshToken"`
    ExpiresAt    time.Time `json:"expiresAt"`
}

func sessionFrom(s service.AuthSession) sessionData {
    return sessionData{
        AccessToken:  s.AccessToken,
        RefreshToken: s.RefreshToken,
        ExpiresAt:    s.AccessExpiresAt,
        UserID:       s.UserID,
        Name:         s.Name,
        EmailOrPhone: s.EmailOrPhone,
        Role:         s.Role,
    }
}

// Signup handles POST /auth/signup: register and open a session.
func (h *AuthHandler) Signup(c echo.Context) error {
    var req signupReq
    if err := c.Bind(&req); err != nil {
        return fail(c, http.StatusBadRequest, "Invalid request body")
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    session, err := h.Auth.Signup(ctx, req.Name, req.EmailOrPhone, req.Password)
    if err != nil {
        return failFrom(c, err)
    }
    return ok(c, "Signup successful", sessionFrom(session))
}

// Login handles POST /auth/login: verify credentials, revoke the previous
// refresh lineage and open a fresh session.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return fail(c, http.StatusBadRequest, "Invalid request body")
    }
    if req.EmailOrPhone == "" || req.Password == "" {
        return fail(c, http.StatusBadRequest, "Email/phone and password are required")
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    session, err := h.Auth.Login(ctx, req.EmailOrPhone, req.Password)
    if err != nil {
        return failFrom(c, err)
    }
    return ok(c, "Login successful", sessionFrom(session))
}

// Refresh handles POST /auth/refresh: rotate the refresh token. Any
// validation failure is answered 401 without detail about which check
// tripped.
func (h *AuthHandler) Refresh(c echo.Context) error {
    var req refreshReq
    if err := c.Bind(&req); err != nil || req.AccessToken == "" || req.RefreshToken == "" {
        return fail(c, http.StatusUnauthorized, "Access and refresh tokens are required")
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    session, err := h.Auth.Refresh(ctx, req.AccessToken, req.RefreshToken)
    if err != nil {
        return failFrom(c, err)
    }
    return ok(c, "Token refreshed", tokenPairData{
        AccessToken:  session.AccessToken,
        RefreshToken: session.RefreshToken,
        ExpiresAt:    session.AccessExpiresAt,
    })
}
