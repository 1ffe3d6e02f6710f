package service

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/event-booking/internal/model"
	"github.com/iliyamo/event-booking/internal/repository"
)

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint64]model.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, name, emailOrPhone, passwordHash, role string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.EmailOrPhone == emailOrPhone {
			return model.User{}, repository.ErrDuplicate
		}
	}
	f.nextID++
	u := model.User{
		ID:           f.nextID,
		Name:         name,
		EmailOrPhone: emailOrPhone,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserStore) GetByEmailOrPhone(ctx context.Context, emailOrPhone string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.EmailOrPhone == emailOrPhone {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uint64) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) UpdateRole(ctx context.Context, id uint64, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Role = role
	f.users[id] = u
	return nil
}

func (f *fakeUserStore) delete(id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
}

// fakeTokenStore is an in-memory TokenStore keyed by token hash.
type fakeTokenStore struct {
	mu     sync.Mutex
	nextID uint64
	tokens map[string]model.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]model.RefreshToken)}
}

func (f *fakeTokenStore) Store(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.tokens[tokenHash] = model.RefreshToken{
		ID:        f.nextID,
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: exp,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

func (f *fakeTokenStore) FindByHash(ctx context.Context, tokenHash string) (model.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[tokenHash]
	if !ok {
		return model.RefreshToken{}, repository.ErrNotFound
	}
	return t, nil
}

func (f *fakeTokenStore) Revoke(ctx context.Context, tokenHash string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[tokenHash]
	if !ok || t.RevokedAt != nil {
		return false, nil
	}
	now := time.Now().UTC()
	t.RevokedAt = &now
	f.tokens[tokenHash] = t
	return true, nil
}

func (f *fakeTokenStore) RevokeAllForUser(ctx context.Context, userID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	for h, t := range f.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
			f.tokens[h] = t
		}
	}
	return nil
}

func (f *fakeTokenStore) activeCount(userID uint64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			n++
		}
	}
	return n
}

func (f *fakeTokenStore) expire(tokenHash string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tokens[tokenHash]; ok {
		t.ExpiresAt = time.Now().UTC().Add(-time.Minute)
		f.tokens[tokenHash] = t
	}
}

// fakeBookingStore is an in-memory BookingStore and SeatCounter over a
// shared event table. InTx serializes callbacks with a mutex, mirroring
// the row lock the MySQL implementation takes.
type fakeBookingStore struct {
	mu       sync.Mutex
	nextID   uint64
	events   map[uint64]model.Event
	bookings []model.Booking
}

func newFakeBookingStore(events ...model.Event) *fakeBookingStore {
	f := &fakeBookingStore{events: make(map[uint64]model.Event)}
	for _, e := range events {
		f.events[e.ID] = e
	}
	return f
}

func (f *fakeBookingStore) InTx(ctx context.Context, fn func(tx repository.BookingTx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(fakeBookingTx{f})
}

type fakeBookingTx struct{ f *fakeBookingStore }

func (t fakeBookingTx) EventForUpdate(ctx context.Context, eventID uint64) (model.Event, error) {
	e, ok := t.f.events[eventID]
	if !ok {
		return model.Event{}, repository.ErrNotFound
	}
	return e, nil
}

func (t fakeBookingTx) HasActiveBooking(ctx context.Context, userID, eventID uint64) (bool, error) {
	for _, b := range t.f.bookings {
		if b.UserID == userID && b.EventID == eventID && b.Status == model.BookingStatusBooked {
			return true, nil
		}
	}
	return false, nil
}

func (t fakeBookingTx) SumActiveSeats(ctx context.Context, eventID uint64) (int, error) {
	total := 0
	for _, b := range t.f.bookings {
		if b.EventID == eventID && b.Status == model.BookingStatusBooked {
			total += b.Seats
		}
	}
	return total, nil
}

func (t fakeBookingTx) InsertBooking(ctx context.Context, b *model.Booking) error {
	t.f.nextID++
	b.ID = t.f.nextID
	b.CreatedAt = time.Now().UTC()
	t.f.bookings = append(t.f.bookings, *b)
	return nil
}

func (f *fakeBookingStore) ListByUser(ctx context.Context, userID uint64) ([]repository.BookingDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	details := make([]repository.BookingDetail, 0)
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		e := f.events[b.EventID]
		details = append(details, repository.BookingDetail{
			ID:        b.ID,
			Reference: b.Reference,
			EventID:   e.ID,
			Title:     e.Title,
			EventDate: e.EventDate,
			EventTime: e.EventTime,
			Venue:     e.Venue,
			Status:    b.Status,
			Seats:     b.Seats,
			CreatedAt: b.CreatedAt,
		})
	}
	return details, nil
}

func (f *fakeBookingStore) SumActiveSeats(ctx context.Context, eventID uint64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fakeBookingTx{f}.SumActiveSeats(ctx, eventID)
}

func (f *fakeBookingStore) SumActiveSeatsByEvent(ctx context.Context) (map[uint64]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	totals := make(map[uint64]int)
	for _, b := range f.bookings {
		if b.Status == model.BookingStatusBooked {
			totals[b.EventID] += b.Seats
		}
	}
	return totals, nil
}

// fakeEventStore is an in-memory EventStore.
type fakeEventStore struct {
	mu     sync.Mutex
	nextID uint64
	events map[uint64]model.Event
}

func newFakeEventStore(events ...model.Event) *fakeEventStore {
	f := &fakeEventStore{events: make(map[uint64]model.Event)}
	for _, e := range events {
		f.events[e.ID] = e
		if e.ID > f.nextID {
			f.nextID = e.ID
		}
	}
	return f
}

func (f *fakeEventStore) Create(ctx context.Context, e model.Event) (model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	e.ID = f.nextID
	e.CreatedAt = time.Now().UTC()
	f.events[e.ID] = e
	return e, nil
}

func (f *fakeEventStore) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return model.Event{}, repository.ErrNotFound
	}
	return e, nil
}

func (f *fakeEventStore) ListUpcoming(ctx context.Context) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	out := make([]model.Event, 0)
	for _, e := range f.events {
		if !e.IsPast(now) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventStore) ListAll(ctx context.Context) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventStore) Update(ctx context.Context, e model.Event) (model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[e.ID]; !ok {
		return model.Event{}, repository.ErrNotFound
	}
	f.events[e.ID] = e
	return e, nil
}

func (f *fakeEventStore) Delete(ctx context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.events, id)
	return nil
}
