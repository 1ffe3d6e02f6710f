package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-booking/internal/service"
)

// BookingHandler serves seat reservation and booking history for
// authenticated users.
type BookingHandler struct {
    Bookings *service.BookingService
}

func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
    return &BookingHandler{Bookings: bookings}
}

type bookReq struct {
    NumberOfSeats *int `json:"numberOfSeats"`
}

type bookingData struct {
    BookingID uint64 `json:"bookingId"`
    Reference string `json:"reference"`
    EventID   uint64 `json:"eventId"`
    Title     string `json:"eventTitle"`
    EventDate string `json:"eventDate"`
    EventTime string `json:"eventTime"`
    Venue     string `json:"venue"`
    Seats     int    `json:"numberOfSeats"`
}

type myBookingData struct {
    ID        uint64    `json:"id"`
    Reference string    `json:"reference"`
    EventID   uint64    `json:"eventId"`
    Title     string    `json:"eventTitle"`
    EventDate string    `json:"eventDate"`
    EventTime string    `json:"eventTime"`
    Venue     string    `json:"venue"`
    Status    string    `json:"status"`
    Seats     int       `json:"numberOfSeats"`
    CreatedAt time.Time `json:"createdAt"`
}

// Book handles POST /events/:id/book. The body is optional; an absent
// numberOfSeats books a single seat.
func (h *BookingHandler) Book(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return fail(c, http.StatusUnauthorized, "Invalid authentication token")
    }
    eventID, err := pathID(c)
    if err != nil {
        return fail(c, http.StatusBadRequest, "Invalid event id")
    }
    // Bind succeeds on an empty body (seats default to 1); a body that is
    // present but malformed is a client error.
    var req bookReq
    if err := c.Bind(&req); err != nil {
        return fail(c, http.StatusBadRequest, "Invalid request body")
    }
    seats := 1
    if req.NumberOfSeats != nil {
        seats = *req.NumberOfSeats
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    conf, err := h.Bookings.Book(ctx, eventID, userID, seats)
    if err != nil {
        return failFrom(c, err)
    }
    return ok(c, "Event booked successfully", bookingData{
        BookingID: conf.BookingID,
        Reference: conf.Reference,
        EventID:   conf.EventID,
        Title:     conf.Title,
        EventDate: conf.EventDate,
        EventTime: conf.EventTime,
        Venue:     conf.Venue,
        Seats:     conf.Seats,
    })
}

// MyBookings handles GET /bookings/my-bookings.
func (h *BookingHandler) MyBookings(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return fail(c, http.StatusUnauthorized, "Invalid authentication token")
    }
    bookings, err := h.Bookings.ListUserBookings(c.Request().Context(), userID)
    if err != nil {
        return failFrom(c, err)
    }
    out := make([]myBookingData, 0, len(bookings))
    for _, b := range bookings {
        out = append(out, myBookingData{
            ID:        b.ID,
            Reference: b.Reference,
            EventID:   b.EventID,
            Title:     b.Title,
            EventDate: b.EventDate,
            EventTime: b.EventTime,
            Venue:     b.Venue,
            Status:    b.Status,
            Seats:     b.Seats,
            CreatedAt: b.CreatedAt,
        })
    }
    return ok(c, "Bookings retrieved", out)
}
