package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-booking/internal/model"
)

func validInput() EventInput {
	return EventInput{
		Title:       "Summer Concert",
		Description: "Open air",
		EventDate:   "2026-07-01",
		EventTime:   "19:00",
		Venue:       "Main Hall",
		Capacity:    100,
	}
}

func newEventService(events ...model.Event) (*EventService, *fakeEventStore, *fakeBookingStore) {
	store := newFakeEventStore(events...)
	seats := newFakeBookingStore(events...)
	return NewEventService(store, seats), store, seats
}

func TestCreateEvent(t *testing.T) {
	svc, _, _ := newEventService()

	view, err := svc.Create(context.Background(), validInput(), 1)
	require.NoError(t, err)
	assert.NotZero(t, view.ID)
	assert.Equal(t, "19:00:00", view.EventTime) // HH:MM normalized
	assert.Equal(t, uint64(1), view.CreatedBy)
	assert.Equal(t, 0, view.BookedCount)
	assert.Equal(t, 100, view.AvailableSlots)
}

func TestCreateEventValidation(t *testing.T) {
	svc, _, _ := newEventService()

	cases := map[string]func(*EventInput){
		"empty title":    func(in *EventInput) { in.Title = "  " },
		"empty venue":    func(in *EventInput) { in.Venue = "" },
		"bad date":       func(in *EventInput) { in.EventDate = "01-07-2026" },
		"bad time":       func(in *EventInput) { in.EventTime = "7pm" },
		"zero capacity":  func(in *EventInput) { in.Capacity = 0 },
		"negative seats": func(in *EventInput) { in.Capacity = -3 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := svc.Create(context.Background(), in, 1)
			require.Error(t, err)
			assert.Equal(t, KindInvalid, KindOf(err))
		})
	}
}

func TestGetEventWithSeatAccounting(t *testing.T) {
	svc, _, seats := newEventService(futureEvent(1, 50))

	booking, _ := newBookingService(seats)
	_, err := booking.Book(context.Background(), 1, 10, 8)
	require.NoError(t, err)

	view, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 8, view.BookedCount)
	assert.Equal(t, 42, view.AvailableSlots)
}

func TestGetEventNotFound(t *testing.T) {
	svc, _, _ := newEventService()

	_, err := svc.Get(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestListDecoratesEveryEvent(t *testing.T) {
	e1 := futureEvent(1, 50)
	e2 := futureEvent(2, 30)
	svc, _, seats := newEventService(e1, e2)

	booking, _ := newBookingService(seats)
	_, err := booking.Book(context.Background(), 2, 10, 5)
	require.NoError(t, err)

	views, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)

	byID := make(map[uint64]EventView)
	for _, v := range views {
		byID[v.ID] = v
	}
	assert.Equal(t, 0, byID[1].BookedCount)
	assert.Equal(t, 50, byID[1].AvailableSlots)
	assert.Equal(t, 5, byID[2].BookedCount)
	assert.Equal(t, 25, byID[2].AvailableSlots)
}

func TestUpdateEventCapacityFloor(t *testing.T) {
	svc, _, seats := newEventService(futureEvent(1, 50))

	booking, _ := newBookingService(seats)
	_, err := booking.Book(context.Background(), 1, 10, 12)
	require.NoError(t, err)

	in := validInput()
	in.Capacity = 10 // below the 12 seats already sold
	_, err = svc.Update(context.Background(), 1, in)
	require.Error(t, err)
	assert.Equal(t, KindInvalid, KindOf(err))
	assert.EqualError(t, err, "Cannot set capacity below current booked seats (12)")

	// Shrinking down to exactly the sold seats is allowed.
	in.Capacity = 12
	view, err := svc.Update(context.Background(), 1, in)
	require.NoError(t, err)
	assert.Equal(t, 12, view.Capacity)
	assert.Equal(t, 0, view.AvailableSlots)
}

func TestUpdateEventNotFound(t *testing.T) {
	svc, _, _ := newEventService()

	_, err := svc.Update(context.Background(), 99, validInput())
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestDeleteEventBlockedByBookings(t *testing.T) {
	svc, store, seats := newEventService(futureEvent(1, 50))

	booking, _ := newBookingService(seats)
	_, err := booking.Book(context.Background(), 1, 10, 3)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))
	assert.EqualError(t, err, "Cannot delete event with 3 booked seat(s)")

	// The event must still exist after the refused delete.
	_, err = store.GetByID(context.Background(), 1)
	require.NoError(t, err)
}

func TestDeleteEventWithoutBookings(t *testing.T) {
	svc, store, _ := newEventService(futureEvent(1, 50))

	require.NoError(t, svc.Delete(context.Background(), 1))
	_, err := store.GetByID(context.Background(), 1)
	require.Error(t, err)
}

func TestDeleteEventNotFound(t *testing.T) {
	svc, _, _ := newEventService()

	err := svc.Delete(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}
