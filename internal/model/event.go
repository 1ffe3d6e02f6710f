package model

import "time"

// Event represents a bookable event as stored in the `events` table.
// Capacity is a hard ceiling: the sum of seats across active bookings
// for an event never exceeds it.  The booked total is not cached on
// the row; it is aggregated from bookings on demand.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – event title.
//  Description – free-form description (may be empty).
//  EventDate   – calendar date of the event (events.event_date, DATE).
//  EventTime   – start time of day (events.event_time, TIME).
//  Venue       – where the event takes place.
//  Capacity    – total number of seats, at least 1.
//  CreatedBy   – admin user who created the event.
//  CreatedAt   – creation timestamp.
type Event struct {
    ID          uint64    // events.id
    Title       string    // events.title
    Description string    // events.description
    EventDate   string    // events.event_date, formatted 2006-01-02
    EventTime   string    // events.event_time, formatted 15:04:05
    Venue       string    // events.venue
    Capacity    int       // events.capacity
    CreatedBy   uint64    // events.created_by
    CreatedAt   time.Time // events.created_at
}

// StartsAt combines EventDate and EventTime into a single UTC instant.
// A zero time is returned when either column holds an unparseable value.
func (e Event) StartsAt() time.Time {
    t, err := time.Parse("2006-01-02 15:04:05", e.EventDate+" "+e.EventTime)
    if err != nil {
        return time.Time{}
    }
    return t.UTC()
}

// IsPast reports whether the event's start instant lies strictly before now.
func (e Event) IsPast(now time.Time) bool {
    starts := e.StartsAt()
    return !starts.IsZero() && starts.Before(now.UTC())
}
