package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/event-booking/internal/model"
	"github.com/iliyamo/event-booking/internal/repository"
)

// EventStore is the event repository surface the workflow needs.
type EventStore interface {
	Create(ctx context.Context, e model.Event) (model.Event, error)
	GetByID(ctx context.Context, id uint64) (model.Event, error)
	ListUpcoming(ctx context.Context) ([]model.Event, error)
	ListAll(ctx context.Context) ([]model.Event, error)
	Update(ctx context.Context, e model.Event) (model.Event, error)
	Delete(ctx context.Context, id uint64) error
}

// SeatCounter reads the capacity ledger: active seat totals aggregated
// from booking rows on demand, never a stored counter.
type SeatCounter interface {
	SumActiveSeats(ctx context.Context, eventID uint64) (int, error)
	SumActiveSeatsByEvent(ctx context.Context) (map[uint64]int, error)
}

// EventInput carries the client-supplied fields for create and update.
type EventInput struct {
	Title       string
	Description string
	EventDate   string // 2006-01-02
	EventTime   string // 15:04 or 15:04:05
	Venue       string
	Capacity    int
}

// EventView is an event decorated with its live seat accounting.
type EventView struct {
	model.Event
	BookedCount    int
	AvailableSlots int
}

// EventService implements event CRUD with the capacity invariants that
// the booking workflow depends on.
type EventService struct {
	events EventStore
	seats  SeatCounter
}

func NewEventService(events EventStore, seats SeatCounter) *EventService {
	return &EventService{events: events, seats: seats}
}

func validateEventInput(in *EventInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Venue = strings.TrimSpace(in.Venue)
	if in.Title == "" || in.Venue == "" {
		return invalid("Title and venue are required")
	}
	if _, err := time.Parse("2006-01-02", in.EventDate); err != nil {
		return invalid("Event date must be formatted as YYYY-MM-DD")
	}
	// Accept HH:MM and normalize to HH:MM:SS.
	if _, err := time.Parse("15:04:05", in.EventTime); err != nil {
		if _, err2 := time.Parse("15:04", in.EventTime); err2 != nil {
			return invalid("Event time must be formatted as HH:MM or HH:MM:SS")
		}
		in.EventTime += ":00"
	}
	if in.Capacity < 1 {
		return invalid("Capacity must be at least 1")
	}
	return nil
}

// ListUpcoming returns future events with booked/available seat counts.
// This backs the public listing.
func (s *EventService) ListUpcoming(ctx context.Context) ([]EventView, error) {
	events, err := s.events.ListUpcoming(ctx)
	if err != nil {
		return nil, internal("load events failed", err)
	}
	return s.decorate(ctx, events)
}

// ListAll returns every event for the admin views.
func (s *EventService) ListAll(ctx context.Context) ([]EventView, error) {
	events, err := s.events.ListAll(ctx)
	if err != nil {
		return nil, internal("load events failed", err)
	}
	return s.decorate(ctx, events)
}

func (s *EventService) decorate(ctx context.Context, events []model.Event) ([]EventView, error) {
	totals, err := s.seats.SumActiveSeatsByEvent(ctx)
	if err != nil {
		return nil, internal("sum booked seats failed", err)
	}
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		booked := totals[e.ID]
		views = append(views, EventView{Event: e, BookedCount: booked, AvailableSlots: e.Capacity - booked})
	}
	return views, nil
}

// Get returns one event with its seat accounting.
func (s *EventService) Get(ctx context.Context, id uint64) (EventView, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return EventView{}, notFound("Event not found")
		}
		return EventView{}, internal("load event failed", err)
	}
	booked, err := s.seats.SumActiveSeats(ctx, id)
	if err != nil {
		return EventView{}, internal("sum booked seats failed", err)
	}
	return EventView{Event: e, BookedCount: booked, AvailableSlots: e.Capacity - booked}, nil
}

// Create validates the input and stores a new event owned by createdBy.
func (s *EventService) Create(ctx context.Context, in EventInput, createdBy uint64) (EventView, error) {
	if err := validateEventInput(&in); err != nil {
		return EventView{}, err
	}
	e, err := s.events.Create(ctx, model.Event{
		Title:       in.Title,
		Description: in.Description,
		EventDate:   in.EventDate,
		EventTime:   in.EventTime,
		Venue:       in.Venue,
		Capacity:    in.Capacity,
		CreatedBy:   createdBy,
	})
	if err != nil {
		return EventView{}, internal("create event failed", err)
	}
	return EventView{Event: e, BookedCount: 0, AvailableSlots: e.Capacity}, nil
}

// Update rewrites an event. The new capacity may never drop below the
// seats already booked; shrinking under sold seats would break the
// capacity invariant for existing bookings.
func (s *EventService) Update(ctx context.Context, id uint64, in EventInput) (EventView, error) {
	if err := validateEventInput(&in); err != nil {
		return EventView{}, err
	}
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return EventView{}, notFound("Event not found")
		}
		return EventView{}, internal("load event failed", err)
	}
	booked, err := s.seats.SumActiveSeats(ctx, id)
	if err != nil {
		return EventView{}, internal("sum booked seats failed", err)
	}
	if in.Capacity < booked {
		return EventView{}, invalid("Cannot set capacity below current booked seats (%d)", booked)
	}
	e.Title = in.Title
	e.Description = in.Description
	e.EventDate = in.EventDate
	e.EventTime = in.EventTime
	e.Venue = in.Venue
	e.Capacity = in.Capacity
	updated, err := s.events.Update(ctx, e)
	if err != nil {
		return EventView{}, internal("update event failed", err)
	}
	return EventView{Event: updated, BookedCount: booked, AvailableSlots: updated.Capacity - booked}, nil
}

// Delete removes an event that has no active bookings.
func (s *EventService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.events.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("Event not found")
		}
		return internal("load event failed", err)
	}
	booked, err := s.seats.SumActiveSeats(ctx, id)
	if err != nil {
		return internal("sum booked seats failed", err)
	}
	if booked > 0 {
		return invalidState("Cannot delete event with %d booked seat(s)", booked)
	}
	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("Event not found")
		}
		return internal("delete event failed", err)
	}
	return nil
}
