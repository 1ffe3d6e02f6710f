package service

import (
	"context"
	"time"

	"github.com/iliyamo/event-booking/internal/model"
	"github.com/iliyamo/event-booking/internal/repository"
)

// EventCounter exposes the event total for the dashboard.
type EventCounter interface {
	Count(ctx context.Context) (int, error)
}

// UserDirectory exposes the user queries the dashboard needs.
type UserDirectory interface {
	ListByRole(ctx context.Context, role string) ([]model.User, error)
	CountByRole(ctx context.Context, role string) (int, error)
}

// BookingCounter exposes the booking aggregates the dashboard needs.
type BookingCounter interface {
	CountActive(ctx context.Context) (int, error)
	CountActiveByUser(ctx context.Context) (map[uint64]int, error)
	ListAllDetailed(ctx context.Context) ([]repository.AdminBookingDetail, error)
}

// Overview is the admin dashboard headline: totals of events, regular
// users and active bookings.
type Overview struct {
	TotalEvents   int
	TotalUsers    int
	TotalBookings int
}

// AdminUser is one row of the admin user listing.
type AdminUser struct {
	ID            uint64
	Name          string
	EmailOrPhone  string
	Role          string
	Status        string
	CreatedAt     time.Time
	TotalBookings int
}

// AdminService serves the admin dashboard aggregates.
type AdminService struct {
	events   EventCounter
	users    UserDirectory
	bookings BookingCounter
}

func NewAdminService(events EventCounter, users UserDirectory, bookings BookingCounter) *AdminService {
	return &AdminService{events: events, users: users, bookings: bookings}
}

// GetOverview returns the dashboard totals. Only accounts with role
// "user" count toward TotalUsers and only active bookings toward
// TotalBookings.
func (s *AdminService) GetOverview(ctx context.Context) (Overview, error) {
	events, err := s.events.Count(ctx)
	if err != nil {
		return Overview{}, internal("count events failed", err)
	}
	users, err := s.users.CountByRole(ctx, model.RoleUser)
	if err != nil {
		return Overview{}, internal("count users failed", err)
	}
	bookings, err := s.bookings.CountActive(ctx)
	if err != nil {
		return Overview{}, internal("count bookings failed", err)
	}
	return Overview{TotalEvents: events, TotalUsers: users, TotalBookings: bookings}, nil
}

// ListUsers returns every regular account with its active booking count.
func (s *AdminService) ListUsers(ctx context.Context) ([]AdminUser, error) {
	users, err := s.users.ListByRole(ctx, model.RoleUser)
	if err != nil {
		return nil, internal("load users failed", err)
	}
	counts, err := s.bookings.CountActiveByUser(ctx)
	if err != nil {
		return nil, internal("count bookings failed", err)
	}
	out := make([]AdminUser, 0, len(users))
	for _, u := range users {
		out = append(out, AdminUser{
			ID:            u.ID,
			Name:          u.Name,
			EmailOrPhone:  u.EmailOrPhone,
			Role:          u.Role,
			Status:        "active",
			CreatedAt:     u.CreatedAt,
			TotalBookings: counts[u.ID],
		})
	}
	return out, nil
}

// ListBookings returns every booking with user and event details.
func (s *AdminService) ListBookings(ctx context.Context) ([]repository.AdminBookingDetail, error) {
	details, err := s.bookings.ListAllDetailed(ctx)
	if err != nil {
		return nil, internal("load bookings failed", err)
	}
	return details, nil
}
