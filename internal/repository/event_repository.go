package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/event-booking/internal/model"
)

// EventRepo provides CRUD operations for the 'events' table.  Date and
// time-of-day columns are read back as formatted strings so that the rest
// of the application never depends on driver-specific scanning of DATE
// and TIME values.  All timestamps are stored in UTC.
type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

const eventColumns = `id, title, description,
    DATE_FORMAT(event_date, '%Y-%m-%d'), TIME_FORMAT(event_time, '%H:%i:%s'),
    venue, capacity, created_by, created_at`

func scanEvent(row interface{ Scan(...interface{}) error }) (model.Event, error) {
    var e model.Event
    err := row.Scan(&e.ID, &e.Title, &e.Description, &e.EventDate, &e.EventTime,
        &e.Venue, &e.Capacity, &e.CreatedBy, &e.CreatedAt)
    return e, err
}

// Create inserts a new event and returns the stored record.
func (r *EventRepo) Create(ctx context.Context, e model.Event) (model.Event, error) {
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO events (title, description, event_date, event_time, venue, capacity, created_by) VALUES (?,?,?,?,?,?,?)",
        e.Title, e.Description, e.EventDate, e.EventTime, e.Venue, e.Capacity, e.CreatedBy)
    if err != nil {
        return model.Event{}, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return model.Event{}, err
    }
    return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a single event. ErrNotFound when the id does not exist.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
    row := r.DB.QueryRowContext(ctx,
        "SELECT "+eventColumns+" FROM events WHERE id=? LIMIT 1", id)
    e, err := scanEvent(row)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Event{}, ErrNotFound
    }
    return e, err
}

// ListUpcoming returns events whose start instant has not passed yet,
// soonest first.  The comparison runs in the database so listing stays a
// single query.
func (r *EventRepo) ListUpcoming(ctx context.Context) ([]model.Event, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT "+eventColumns+` FROM events
         WHERE TIMESTAMP(event_date, event_time) >= UTC_TIMESTAMP()
         ORDER BY event_date, event_time`)
    if err != nil {
        return nil, err
    }
    return collectEvents(rows)
}

// ListAll returns every event, newest date first. Used by the admin views.
func (r *EventRepo) ListAll(ctx context.Context) ([]model.Event, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT "+eventColumns+" FROM events ORDER BY event_date DESC, event_time DESC")
    if err != nil {
        return nil, err
    }
    return collectEvents(rows)
}

func collectEvents(rows *sql.Rows) ([]model.Event, error) {
    defer rows.Close()
    events := make([]model.Event, 0)
    for rows.Next() {
        e, err := scanEvent(rows)
        if err != nil {
            return nil, err
        }
        events = append(events, e)
    }
    return events, rows.Err()
}

// Update rewrites the mutable columns of an event. ErrNotFound when the id
// does not exist. Capacity floor checks belong to the workflow layer.
func (r *EventRepo) Update(ctx context.Context, e model.Event) (model.Event, error) {
    // Zero affected rows is ambiguous (an update to identical values also
    // reports zero), so existence comes from the read-back instead.
    _, err := r.DB.ExecContext(ctx,
        "UPDATE events SET title=?, description=?, event_date=?, event_time=?, venue=?, capacity=? WHERE id=?",
        e.Title, e.Description, e.EventDate, e.EventTime, e.Venue, e.Capacity, e.ID)
    if err != nil {
        return model.Event{}, err
    }
    return r.GetByID(ctx, e.ID)
}

// Delete removes an event row. ErrNotFound when the id does not exist.
// The workflow layer must refuse deletion while active bookings exist.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.DB.ExecContext(ctx, "DELETE FROM events WHERE id=?", id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrNotFound
    }
    return nil
}

// Count returns the total number of events.
func (r *EventRepo) Count(ctx context.Context) (int, error) {
    var n int
    err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&n)
    return n, err
}
