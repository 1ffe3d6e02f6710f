// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// QueueBookingCreated is the durable queue carrying booking notifications.
const QueueBookingCreated = "booking.created"

// BookingCreatedEvent is published after a reservation commits. It carries
// enough information for downstream consumers to log, notify or feed
// analytics without querying the primary database.
type BookingCreatedEvent struct {
	BookingID uint64 `json:"booking_id"`
	Reference string `json:"reference"`
	UserID    uint64 `json:"user_id"`
	EventID   uint64 `json:"event_id"`
	Title     string `json:"title"`
	EventDate string `json:"event_date"`
	EventTime string `json:"event_time"`
	Venue     string `json:"venue"`
	Seats     int    `json:"seats"`
	BookedAt  string `json:"booked_at"`
}
