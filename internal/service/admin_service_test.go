package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-booking/internal/model"
	"github.com/iliyamo/event-booking/internal/repository"
)

type fakeEventCounter int

func (f fakeEventCounter) Count(ctx context.Context) (int, error) { return int(f), nil }

type fakeUserDirectory struct{ users []model.User }

func (f fakeUserDirectory) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	out := make([]model.User, 0)
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f fakeUserDirectory) CountByRole(ctx context.Context, role string) (int, error) {
	users, _ := f.ListByRole(ctx, role)
	return len(users), nil
}

type fakeBookingCounter struct {
	perUser map[uint64]int
	details []repository.AdminBookingDetail
}

func (f fakeBookingCounter) CountActive(ctx context.Context) (int, error) {
	total := 0
	for _, n := range f.perUser {
		total += n
	}
	return total, nil
}

func (f fakeBookingCounter) CountActiveByUser(ctx context.Context) (map[uint64]int, error) {
	return f.perUser, nil
}

func (f fakeBookingCounter) ListAllDetailed(ctx context.Context) ([]repository.AdminBookingDetail, error) {
	return f.details, nil
}

func TestGetOverviewCountsOnlyRegularUsers(t *testing.T) {
	svc := NewAdminService(
		fakeEventCounter(4),
		fakeUserDirectory{users: []model.User{
			{ID: 1, Name: "Admin", Role: model.RoleAdmin},
			{ID: 2, Name: "Alice", Role: model.RoleUser},
			{ID: 3, Name: "Bob", Role: model.RoleUser},
		}},
		fakeBookingCounter{perUser: map[uint64]int{2: 2, 3: 1}},
	)

	o, err := svc.GetOverview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, o.TotalEvents)
	assert.Equal(t, 2, o.TotalUsers)
	assert.Equal(t, 3, o.TotalBookings)
}

func TestListUsersAttachesBookingCounts(t *testing.T) {
	created := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	svc := NewAdminService(
		fakeEventCounter(0),
		fakeUserDirectory{users: []model.User{
			{ID: 1, Name: "Admin", EmailOrPhone: "admin@example.com", Role: model.RoleAdmin},
			{ID: 2, Name: "Alice", EmailOrPhone: "alice@example.com", Role: model.RoleUser, CreatedAt: created},
			{ID: 3, Name: "Bob", EmailOrPhone: "bob@example.com", Role: model.RoleUser},
		}},
		fakeBookingCounter{perUser: map[uint64]int{2: 5}},
	)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2) // admins stay out of the listing

	byID := make(map[uint64]AdminUser)
	for _, u := range users {
		byID[u.ID] = u
	}
	assert.Equal(t, 5, byID[2].TotalBookings)
	assert.Equal(t, 0, byID[3].TotalBookings)
	assert.Equal(t, "active", byID[2].Status)
	assert.Equal(t, created, byID[2].CreatedAt)
}

func TestListBookings(t *testing.T) {
	detail := repository.AdminBookingDetail{
		BookingDetail: repository.BookingDetail{
			ID: 1, Reference: "ref-1", EventID: 2, Title: "Summer Concert",
			EventDate: "2026-07-01", EventTime: "19:00:00", Venue: "Main Hall",
			Status: model.BookingStatusBooked, Seats: 2,
		},
		UserID: 5, UserName: "Alice", UserEmail: "alice@example.com",
	}
	svc := NewAdminService(fakeEventCounter(1), fakeUserDirectory{},
		fakeBookingCounter{details: []repository.AdminBookingDetail{detail}})

	out, err := svc.ListBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, detail, out[0])
}
