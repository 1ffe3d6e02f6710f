package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/event-booking/internal/config"
    "github.com/iliyamo/event-booking/internal/handler"
    "github.com/iliyamo/event-booking/internal/middleware"
    "github.com/iliyamo/event-booking/internal/model"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
    Auth       *handler.AuthHandler
    Event      *handler.EventHandler
    Booking    *handler.BookingHandler
    Admin      *handler.AdminHandler
    AdminSetup *handler.AdminSetupHandler
}

// Register mounts all application routes on e.
//
//	/auth/*               unauthenticated, rate limited
//	/admin-setup/*        unauthenticated, rate limited
//	/events (GET)         unauthenticated, response cached
//	/events/:id/book      bearer token
//	/bookings/*           bearer token
//	/admin/*              bearer token, role admin
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
    // Unknown routes, recovered panics and stray errors still answer in
    // the application envelope.
    e.HTTPErrorHandler = handler.ErrorHandler(cfg.Env == "dev")
    e.Use(echomw.Recover())

    e.GET("/healthz", handler.Health)

    // Credential endpoints sit behind the limiter: they are the natural
    // target for stuffing and enumeration attempts.
    limiter := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)
    authGroup := e.Group("/auth", limiter)
    authGroup.POST("/signup", h.Auth.Signup)
    authGroup.POST("/login", h.Auth.Login)
    authGroup.POST("/refresh", h.Auth.Refresh)

    // Deployment bootstrap: create the first admin, or promote an
    // existing account.
    e.POST("/admin-setup/create-admin", h.AdminSetup.CreateAdmin, limiter)

    // Public browse endpoints; short-TTL response cache keeps hot event
    // listings off the database.
    cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)
    e.GET("/events", h.Event.List, cache)
    e.GET("/events/:id", h.Event.Get, cache)

    jwt := middleware.JWTAuth(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)

    // Booking requires a valid (non-expired) access token of any role.
    e.POST("/events/:id/book", h.Booking.Book, jwt,
        middleware.RequireRole(model.RoleUser, model.RoleAdmin))

    bookings := e.Group("/bookings", jwt, middleware.RequireRole(model.RoleUser, model.RoleAdmin))
    bookings.GET("/my-bookings", h.Booking.MyBookings)

    admin := e.Group("/admin", jwt, middleware.RequireRole(model.RoleAdmin))
    admin.POST("/events", h.Admin.CreateEvent)
    admin.GET("/events", h.Admin.ListEvents)
    admin.PUT("/events/:id", h.Admin.UpdateEvent)
    admin.DELETE("/events/:id", h.Admin.DeleteEvent)
    admin.GET("/overview", h.Admin.Overview)
    admin.GET("/users", h.Admin.Users)
    admin.GET("/bookings", h.Admin.Bookings)
}
