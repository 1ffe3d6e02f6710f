package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/iliyamo/event-booking/internal/model"
)

// BookingRepo provides access to the 'bookings' table and the seat
// aggregates derived from it.  The reservation path runs through InTx so
// that the capacity check and the insert commit atomically; everything
// else is plain reads.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// BookingTx groups the statements available inside one booking
// transaction.  EventForUpdate locks the event row, which serializes
// concurrent bookings for the same event: the aggregate read and the
// insert that follows cannot interleave with another booking's.
type BookingTx interface {
    // EventForUpdate loads an event and holds a row lock on it until the
    // surrounding transaction ends. ErrNotFound when the id is unknown.
    EventForUpdate(ctx context.Context, eventID uint64) (model.Event, error)
    // HasActiveBooking reports whether the user already holds an active
    // booking for the event.
    HasActiveBooking(ctx context.Context, userID, eventID uint64) (bool, error)
    // SumActiveSeats totals seats over active bookings of the event.
    SumActiveSeats(ctx context.Context, eventID uint64) (int, error)
    // InsertBooking persists a new booking row and fills in its ID and
    // creation timestamp.
    InsertBooking(ctx context.Context, b *model.Booking) error
}

// InTx runs fn inside a database transaction and commits when fn returns
// nil. Any error from fn rolls the transaction back and is returned
// unchanged, so workflow failures (capacity, duplicates) surface intact.
func (r *BookingRepo) InTx(ctx context.Context, fn func(tx BookingTx) error) error {
    tx, err := r.DB.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    if err := fn(bookingTx{tx: tx}); err != nil {
        _ = tx.Rollback()
        return err
    }
    return tx.Commit()
}

type bookingTx struct{ tx *sql.Tx }

func (b bookingTx) EventForUpdate(ctx context.Context, eventID uint64) (model.Event, error) {
    row := b.tx.QueryRowContext(ctx,
        "SELECT "+eventColumns+" FROM events WHERE id=? FOR UPDATE", eventID)
    e, err := scanEvent(row)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Event{}, ErrNotFound
    }
    return e, err
}

func (b bookingTx) HasActiveBooking(ctx context.Context, userID, eventID uint64) (bool, error) {
    var one int
    err := b.tx.QueryRowContext(ctx,
        "SELECT 1 FROM bookings WHERE user_id=? AND event_id=? AND status=? LIMIT 1",
        userID, eventID, model.BookingStatusBooked).Scan(&one)
    if errors.Is(err, sql.ErrNoRows) {
        return false, nil
    }
    return err == nil, err
}

func (b bookingTx) SumActiveSeats(ctx context.Context, eventID uint64) (int, error) {
    var total int
    err := b.tx.QueryRowContext(ctx,
        "SELECT COALESCE(SUM(seats),0) FROM bookings WHERE event_id=? AND status=?",
        eventID, model.BookingStatusBooked).Scan(&total)
    return total, err
}

func (b bookingTx) InsertBooking(ctx context.Context, bk *model.Booking) error {
    res, err := b.tx.ExecContext(ctx,
        "INSERT INTO bookings (reference, user_id, event_id, status, seats) VALUES (?,?,?,?,?)",
        bk.Reference, bk.UserID, bk.EventID, bk.Status, bk.Seats)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    bk.ID = uint64(id)
    return b.tx.QueryRowContext(ctx,
        "SELECT created_at FROM bookings WHERE id=?", bk.ID).Scan(&bk.CreatedAt)
}

// SumActiveSeats totals seats over active bookings of an event outside of
// any transaction. This is the Capacity Ledger read used by event listings
// and mutation checks; it always reflects committed state at query time.
func (r *BookingRepo) SumActiveSeats(ctx context.Context, eventID uint64) (int, error) {
    var total int
    err := r.DB.QueryRowContext(ctx,
        "SELECT COALESCE(SUM(seats),0) FROM bookings WHERE event_id=? AND status=?",
        eventID, model.BookingStatusBooked).Scan(&total)
    return total, err
}

// SumActiveSeatsByEvent returns active seat totals keyed by event id in a
// single aggregate query, so event listings avoid one query per row.
func (r *BookingRepo) SumActiveSeatsByEvent(ctx context.Context) (map[uint64]int, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT event_id, COALESCE(SUM(seats),0) FROM bookings WHERE status=? GROUP BY event_id",
        model.BookingStatusBooked)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    totals := make(map[uint64]int)
    for rows.Next() {
        var (
            eventID uint64
            total   int
        )
        if err := rows.Scan(&eventID, &total); err != nil {
            return nil, err
        }
        totals[eventID] = total
    }
    return totals, rows.Err()
}

// BookingDetail joins a booking with its event for user-facing listings.
type BookingDetail struct {
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

// ListByUser returns the user's bookings with event details, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
    const q = `SELECT b.id, b.reference, e.id, e.title,
                      DATE_FORMAT(e.event_date, '%Y-%m-%d'), TIME_FORMAT(e.event_time, '%H:%i:%s'),
                      e.venue, b.status, b.seats, b.created_at
               FROM bookings b
               JOIN events e ON e.id = b.event_id
               WHERE b.user_id = ?
               ORDER BY b.created_at DESC`
    rows, err := r.DB.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]BookingDetail, 0)
    for rows.Next() {
        var d BookingDetail
        if err := rows.Scan(&d.ID, &d.Reference, &d.EventID, &d.Title,
            &d.EventDate, &d.EventTime, &d.Venue, &d.Status, &d.Seats, &d.CreatedAt); err != nil {
            return nil, err
        }
        details = append(details, d)
    }
    return details, rows.Err()
}

// AdminBookingDetail extends BookingDetail with the booking user's
// identity for the admin dashboard.
type AdminBookingDetail struct {
    BookingDetail
    UserID    uint64
    UserName  string
    UserEmail string
}

// ListAllDetailed returns every booking with user and event details,
// newest first. Admin-only.
func (r *BookingRepo) ListAllDetailed(ctx context.Context) ([]AdminBookingDetail, error) {
    const q = `SELECT b.id, b.reference, e.id, e.title,
                      DATE_FORMAT(e.event_date, '%Y-%m-%d'), TIME_FORMAT(e.event_time, '%H:%i:%s'),
                      e.venue, b.status, b.seats, b.created_at,
                      u.id, u.name, u.email_or_phone
               FROM bookings b
               JOIN events e ON e.id = b.event_id
               JOIN users u ON u.id = b.user_id
               ORDER BY b.created_at DESC`
    rows, err := r.DB.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]AdminBookingDetail, 0)
    for rows.Next() {
        var d AdminBookingDetail
        if err := rows.Scan(&d.ID, &d.Reference, &d.EventID, &d.Title,
            &d.EventDate, &d.EventTime, &d.Venue, &d.Status, &d.Seats, &d.CreatedAt,
            &d.UserID, &d.UserName, &d.UserEmail); err != nil {
            return nil, err
        }
        details = append(details, d)
    }
    return details, rows.Err()
}

// CountActive returns the number of active bookings across all events.
func (r *BookingRepo) CountActive(ctx context.Context) (int, error) {
    var n int
    err := r.DB.QueryRowContext(ctx,
        "SELECT COUNT(*) FROM bookings WHERE status=?", model.BookingStatusBooked).Scan(&n)
    return n, err
}

// CountActiveByUser returns active booking counts keyed by user id.
func (r *BookingRepo) CountActiveByUser(ctx context.Context) (map[uint64]int, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT user_id, COUNT(*) FROM bookings WHERE status=? GROUP BY user_id",
        model.BookingStatusBooked)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    counts := make(map[uint64]int)
    for rows.Next() {
        var (
            userID uint64
            n      int
        )
        if err := rows.Scan(&userID, &n); err != nil {
            return nil, err
        }
        counts[userID] = n
    }
    return counts, rows.Err()
}
