package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/event-booking/internal/model"
	"github.com/iliyamo/event-booking/internal/queue"
	"github.com/iliyamo/event-booking/internal/repository"
)

// BookingStore is the slice of the booking repository the workflow needs.
// InTx must run its callback atomically with respect to other bookings of
// the same event; the MySQL implementation locks the event row.
type BookingStore interface {
	InTx(ctx context.Context, fn func(tx repository.BookingTx) error) error
	ListByUser(ctx context.Context, userID uint64) ([]repository.BookingDetail, error)
}

// BookingPublisher emits a booking.created event after a reservation
// commits. Publishing is best effort and never fails the booking.
type BookingPublisher interface {
	PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error
}

// BookingConfirmation is returned to the client after a successful
// reservation.
type BookingConfirmation struct {
	BookingID uint64
	Reference string
	EventID   uint64
	Title     string
	EventDate string
	EventTime string
	Venue     string
	Seats     int
}

// UserBooking is one row of a user's booking history. Status is derived
// for display: cancelled rows stay cancelled, otherwise the event's start
// instant decides between upcoming and completed.
type UserBooking struct {
	ID        uint64
	Reference string
	EventID   uint64
	Title     string
	EventDate string
	EventTime string
	Venue     string
	Status    string
	Seats     int
	CreatedAt time.Time
}

// BookingService validates seat requests against event capacity and
// commits reservations.
type BookingService struct {
	store     BookingStore
	publisher BookingPublisher // may be nil when no broker is configured
	now       func() time.Time
}

func NewBookingService(store BookingStore, publisher BookingPublisher) *BookingService {
	return &BookingService{store: store, publisher: publisher, now: func() time.Time { return time.Now().UTC() }}
}

// Book reserves seats on an event for a user. Checks run in order and the
// first failure wins: seat count, event existence, event timing, duplicate
// booking, capacity. The capacity read and the insert execute inside one
// transaction holding the event row lock, so two concurrent bookings for
// the same event cannot both pass the aggregate check.
func (s *BookingService) Book(ctx context.Context, eventID, userID uint64, seats int) (BookingConfirmation, error) {
	if seats < 1 {
		return BookingConfirmation{}, invalid("Number of seats must be at least 1")
	}
	var (
		out BookingConfirmation
		ev  model.Event
	)
	err := s.store.InTx(ctx, func(tx repository.BookingTx) error {
		var err error
		ev, err = tx.EventForUpdate(ctx, eventID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFound("Event not found")
			}
			return internal("load event failed", err)
		}
		if ev.IsPast(s.now()) {
			return invalidState("Cannot book past events")
		}
		already, err := tx.HasActiveBooking(ctx, userID, eventID)
		if err != nil {
			return internal("check existing booking failed", err)
		}
		if already {
			return conflict("You have already booked this event. You can update your booking instead.")
		}
		booked, err := tx.SumActiveSeats(ctx, eventID)
		if err != nil {
			return internal("sum booked seats failed", err)
		}
		if booked+seats > ev.Capacity {
			return conflict("Not enough seats available. Only %d seat(s) remaining.", ev.Capacity-booked)
		}
		b := model.Booking{
			Reference: uuid.NewString(),
			UserID:    userID,
			EventID:   eventID,
			Status:    model.BookingStatusBooked,
			Seats:     seats,
		}
		if err := tx.InsertBooking(ctx, &b); err != nil {
			return internal("create booking failed", err)
		}
		out = BookingConfirmation{
			BookingID: b.ID,
			Reference: b.Reference,
			EventID:   ev.ID,
			Title:     ev.Title,
			EventDate: ev.EventDate,
			EventTime: ev.EventTime,
			Venue:     ev.Venue,
			Seats:     seats,
		}
		return nil
	})
	if err != nil {
		if _, ok := err.(*Error); ok {
			return BookingConfirmation{}, err
		}
		return BookingConfirmation{}, internal("booking transaction failed", err)
	}
	if s.publisher != nil {
		// Failure here is logged by the publisher; the booking stands.
		_ = s.publisher.PublishBookingCreated(ctx, queue.BookingCreatedEvent{
			BookingID: out.BookingID,
			Reference: out.Reference,
			UserID:    userID,
			EventID:   out.EventID,
			Title:     out.Title,
			EventDate: out.EventDate,
			EventTime: out.EventTime,
			Venue:     out.Venue,
			Seats:     out.Seats,
			BookedAt:  s.now().Format(time.RFC3339),
		})
	}
	return out, nil
}

// ListUserBookings returns the user's bookings with event details and a
// derived display status.
func (s *BookingService) ListUserBookings(ctx context.Context, userID uint64) ([]UserBooking, error) {
	details, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, internal("load bookings failed", err)
	}
	now := s.now()
	out := make([]UserBooking, 0, len(details))
	for _, d := range details {
		status := "upcoming"
		switch {
		case d.Status == model.BookingStatusCancelled:
			status = model.BookingStatusCancelled
		case (model.Event{EventDate: d.EventDate, EventTime: d.EventTime}).IsPast(now):
			status = "completed"
		}
		out = append(out, UserBooking{
			ID:        d.ID,
			Reference: d.Reference,
			EventID:   d.EventID,
			Title:     d.Title,
			EventDate: d.EventDate,
			EventTime: d.EventTime,
			Venue:     d.Venue,
			Status:    status,
			Seats:     d.Seats,
			CreatedAt: d.CreatedAt,
		})
	}
	return out, nil
}
