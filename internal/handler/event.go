package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-booking/internal/service"
)

// EventHandler serves the public, unauthenticated event browse endpoints.
type EventHandler struct {
    Events *service.EventService
}

func NewEventHandler(events *service.EventService) *EventHandler {
    return &EventHandler{Events: events}
}

type eventData struct {
    ID             uint64    `json:"id"`
    Title          string    `json:"title"`
    Description    string    `json:"description"`
    EventDate      string    `json:"eventDate"`
    EventTime      string    `json:"eventTime"`
    Venue          string    `json:"venue"`
    Capacity       int       `json:"capacity"`
    BookedCount    int       `json:"bookedCount"`
    AvailableSlots int       `json:"availableSlots"`
    CreatedAt      time.Time `json:"createdAt"`
}

func eventFrom(v service.EventView) eventData {
    return eventData{
        ID:             v.ID,
        Title:          v.Title,
        Description:    v.Description,
        EventDate:      v.EventDate,
        EventTime:      v.EventTime,
        Venue:          v.Venue,
        Capacity:       v.Capacity,
        BookedCount:    v.BookedCount,
        AvailableSlots: v.AvailableSlots,
        CreatedAt:      v.CreatedAt,
    }
}

func eventsFrom(views []service.EventView) []eventData {
    out := make([]eventData, 0, len(views))
    for _, v := range views {
        out = append(out, eventFrom(v))
    }
    return out
}

// List handles GET /events: upcoming events with availability.
func (h *EventHandler) List(c echo.Context) error {
    views, err := h.Events.ListUpcoming(c.Request().Context())
    if err != nil {
        return failFrom(c, err)
    }
    return ok(c, "Events retrieved", eventsFrom(views))
}

// Get handles GET /events/:id.
func (h *EventHandler) Get(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return fail(c, http.StatusBadRequest, "Invalid event id")
    }
    view, err := h.Events.Get(c.Request().Context(), id)
    if err != nil {
        return failFrom(c, err)
    }
    return ok(c, "Event retrieved", eventFrom(view))
}
