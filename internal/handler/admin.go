package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-booking/internal/service"
)

// AdminHandler serves event management and the dashboard aggregates.
// Routes behind it require the admin role.
type AdminHandler struct {
    Events *service.EventService
    Admin  *service.AdminService
}

func NewAdminHandler(events *service.EventService, admin *service.AdminService) *AdminHandler {
    return &AdminHandler{Events: events, Admin: admin}
}

type eventReq struct {
    Title       string `json:"title"`
    Description string `json:"description"`
    EventDate   string `json:"eventDate"`
    EventTime   string `json:"eventTime"`
    Venue       string `json:"venue"`
    Capacity    int    `json:"capacity"`
}

func (r eventReq) toInput() service.EventInput {
    return service.EventInput{
        Title:       r.Title,
        Description: r.Description,
        EventDate:   r.EventDate,
        EventTime:   r.EventTime,
        Venue:       r.Venue,
        Capacity:    r.Capacity,
    }
}

// CreateEvent handles POST /admin/events.
func (h *AdminHandler) CreateEvent(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return fail(c, http.StatusUnauthorized, "Invalid authentication token")
    }
    var req eventReq
    if err := c.Bind(&req); err != nil {
        return fail(c, http.StatusBadRequest, "Invalid request body")
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    view, err := h.Events.Create(ctx, req.toInput(), userID)
    if err != nil {
        return failFrom(c, err)
    }
    return ok(c, "Event created", eventFrom(view))
}

// ListEvents handles GET /admin/events: all events including past ones.
func (h *AdminHandler) ListEvents(c echo.Context) error {
    views, err := h.Events.ListAll(c.Request().Context())
    if err != nil {
        return failFrom(c, err)
    }
    return ok(c, "Events retrieved", eventsFrom(views))
}

// UpdateEvent handles PUT /admin/events/:id.
func (h *AdminHandler) UpdateEvent(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return fail(c, http.StatusBadRequest, "Invalid event id")
    }
    var req eventReq
    if err := c.Bind(&req); err != nil {
        return fail(c, http.StatusBadRequest, "Invalid request body")
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    view, err := h.Events.Update(ctx, id, req.toInput())
    if err != nil {
        return failFrom(c, err)
    }
    return ok(c, "Event updated", eventFrom(view))
}

// DeleteEvent handles DELETE /admin/events/:id.
func (h *AdminHandler) DeleteEvent(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return fail(c, http.StatusBadRequest, "Invalid event id")
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Events.Delete(ctx, id); err != nil {
        return failFrom(c, err)
    }
    return ok(c, "Event deleted", nil)
}

// Overview handles GET /admin/overview.
func (h *AdminHandler) Overview(c echo.Context) error {
    o, err := h.Admin.GetOverview(c.Request().Context())
    if err != nil {
        return failFrom(c, err)
    }
    return ok(c, "Overview retrieved", echo.Map{
        "totalEvents":   o.TotalEvents,
        "totalUsers":    o.TotalUsers,
        "totalBookings": o.TotalBookings,
    })
}

// Users handles GET /admin/users.
func (h *AdminHandler) Users(c echo.Context) error {
    users, err := h.Admin.ListUsers(c.Request().Context())
    if err != nil {
        return failFrom(c, err)
    }
    out := make([]echo.Map, 0, len(users))
    for _, u := range users {
        out = append(out, echo.Map{
            "id":            u.ID,
            "name":          u.Name,
            "emailOrPhone":  u.EmailOrPhone,
            "role":          u.Role,
            "status":        u.Status,
            "createdAt":     u.CreatedAt,
            "totalBookings": u.TotalBookings,
        })
    }
    return ok(c, "Users retrieved", out)
}

// Bookings handles GET /admin/bookings.
func (h *AdminHandler) Bookings(c echo.Context) error {
    bookings, err := h.Admin.ListBookings(c.Request().Context())
    if err != nil {
        return failFrom(c, err)
    }
    out := make([]echo.Map, 0, len(bookings))
    for _, b := range bookings {
        out = append(out, echo.Map{
            "id":            b.ID,
            "reference":     b.Reference,
            "userId":        b.UserID,
            "userName":      b.UserName,
            "userEmail":     b.UserEmail,
            "eventId":       b.EventID,
            "eventTitle":    b.Title,
            "eventDate":     b.EventDate,
            "eventTime":     b.EventTime,
            "venue":         b.Venue,
            "status":        b.Status,
            "numberOfSeats": b.Seats,
            "createdAt":     b.CreatedAt,
        })
    }
    return ok(c, "Bookings retrieved", out)
}
