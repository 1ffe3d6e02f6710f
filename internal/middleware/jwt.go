package middleware // middleware provides reusable HTTP middleware for the API

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// Context keys set by JWTAuth for downstream handlers.
const (
    ContextUserID = "user_id"
    ContextRole   = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject and role claims into the request
// context.  The secret, issuer and audience must match the values used
// when issuing tokens.  Unlike the refresh flow, this check enforces
// expiry: an expired access token is rejected with 401.  Handlers behind
// it read the authenticated identity via c.Get(ContextUserID) (uint64)
// and c.Get(ContextRole) (string).
func JWTAuth(secret, issuer, audience string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return unauthorized(c, "Missing bearer token")
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            }, jwt.WithIssuer(issuer), jwt.WithAudience(audience), jwt.WithExpirationRequired())
            if err != nil || !tok.Valid {
                return unauthorized(c, "Invalid or expired token")
            }
            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return unauthorized(c, "Invalid token claims")
            }
            sub, ok := claims["sub"].(float64)
            if !ok || sub <= 0 {
                return unauthorized(c, "Invalid token claims")
            }
            role, _ := claims["role"].(string)

            c.Set(ContextUserID, uint64(sub))
            c.Set(ContextRole, role)
            return next(c)
        }
    }
}

// unauthorized writes a 401 in the application's envelope shape without
// importing the handler package.
func unauthorized(c echo.Context, msg string) error {
    return c.JSON(http.StatusUnauthorized, echo.Map{
        "success": false,
        "message": msg,
        "errors":  []string{},
    })
}
