package model

import "time"

// Booking status values.  A booking is "active" while status is booked;
// cancelled rows keep their seats out of every capacity aggregate.
const (
    BookingStatusBooked    = "booked"
    BookingStatusCancelled = "cancelled"
)

// Booking links a user to an event with a seat count, mirroring the
// `bookings` table.  At most one active booking may exist per
// (user, event) pair.  Rows are created by the booking workflow and are
// never updated in place apart from the status transition; normal flow
// never deletes them.
//
// Fields:
//  ID        – primary key identifier.
//  Reference – external booking reference (uuid string).
//  UserID    – user who booked.
//  EventID   – event being booked.
//  Status    – booked or cancelled.
//  Seats     – number of seats reserved, at least 1.
//  CreatedAt – creation timestamp.
type Booking struct {
    ID        uint64    // bookings.id
    Reference string    // bookings.reference
    UserID    uint64    // bookings.user_id
    EventID   uint64    // bookings.event_id
    Status    string    // bookings.status
    Seats     int       // bookings.seats
    CreatedAt time.Time // bookings.created_at
}
