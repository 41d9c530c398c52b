package repository

import (
	"context"
	"crypto/rand"
	"errors"

	"github.com/ashutosh1890/Air-Cargo-booking/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	// Create inserts the booking together with its CREATED event in one
	// transaction and fills in RefID, ID and timestamps.
	Create(ctx context.Context, booking *domain.Booking) error
	GetByRef(ctx context.Context, refID string) (*domain.Booking, error)
	// UpdateStatus moves the booking from one status to another with a
	// conditional write keyed on the current status, inserts the status
	// event and backfills notes/flight ref on the latest event, all in one
	// transaction. A lost race surfaces as InvalidTransitionError against
	// the fresh status.
	UpdateStatus(ctx context.Context, refID string, from, to domain.BookingStatus, location, notes, flightRef *string) (*domain.Booking, error)
	ListEvents(ctx context.Context, bookingID int64) ([]domain.BookingEvent, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const (
	refPrefix      = "AWB"
	refAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	refSuffixLen   = 6
	refMaxAttempts = 20

	uniqueViolation = "23505"

	bookingColumns = `id, ref_id, origin, destination, pieces, weight_kg, owner_id, status, created_at, updated_at`
)

func newRefID() (string, error) {
	buf := make([]byte, refSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	suffix := make([]byte, refSuffixLen)
	for i, b := range buf {
		suffix[i] = refAlphabet[int(b)%len(refAlphabet)]
	}
	return refPrefix + string(suffix), nil
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	for attempt := 0; attempt < refMaxAttempts; attempt++ {
		refID, err := newRefID()
		if err != nil {
			return &domain.StoreError{Op: "generate ref id", Err: err}
		}

		err = r.createWithRef(ctx, booking, refID)
		if err == nil {
			booking.RefID = refID
			return nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			continue
		}
		return &domain.StoreError{Op: "create booking", Err: err}
	}
	return &domain.StoreError{Op: "create booking", Err: errors.New("ref id attempts exhausted")}
}

func (r *PGBookingRepository) createWithRef(ctx context.Context, booking *domain.Booking, refID string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	booking.Status = domain.BookingStatusBooked
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (ref_id, origin, destination, pieces, weight_kg, owner_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		refID, booking.Origin, booking.Destination, booking.Pieces, booking.WeightKg, booking.OwnerID, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO booking_events (booking_id, event_type) VALUES ($1, $2)`,
		booking.ID, domain.EventCreated); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) GetByRef(ctx context.Context, refID string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE ref_id=$1`, refID)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "booking", Key: refID}
		}
		return nil, &domain.StoreError{Op: "get booking", Err: err}
	}
	return b, nil
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, refID string, from, to domain.BookingStatus, location, notes, flightRef *string) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, &domain.StoreError{Op: "begin status update", Err: err}
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now()
		WHERE ref_id=$2 AND status=$3
		RETURNING `+bookingColumns, to, refID, from)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.transitionConflict(ctx, refID, to)
		}
		return nil, &domain.StoreError{Op: "update booking status", Err: err}
	}

	if _, err := tx.Exec(ctx, `INSERT INTO booking_events (booking_id, event_type, location) VALUES ($1, $2, $3)`,
		b.ID, string(to), location); err != nil {
		return nil, &domain.StoreError{Op: "insert status event", Err: err}
	}

	if notes != nil || flightRef != nil {
		if _, err := tx.Exec(ctx, `UPDATE booking_events
			SET notes = COALESCE($2, notes), flight_ref = COALESCE($3, flight_ref)
			WHERE id = (SELECT id FROM booking_events WHERE booking_id=$1 ORDER BY created_at DESC, id DESC LIMIT 1)`,
			b.ID, notes, flightRef); err != nil {
			return nil, &domain.StoreError{Op: "backfill event details", Err: err}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &domain.StoreError{Op: "commit status update", Err: err}
	}
	return b, nil
}

// transitionConflict reports why the conditional write matched no row: the
// booking is gone, or its status moved underneath us.
func (r *PGBookingRepository) transitionConflict(ctx context.Context, refID string, to domain.BookingStatus) error {
	var current domain.BookingStatus
	err := r.db.QueryRow(ctx, `SELECT status FROM bookings WHERE ref_id=$1`, refID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.NotFoundError{Resource: "booking", Key: refID}
		}
		return &domain.StoreError{Op: "read booking status", Err: err}
	}
	return &domain.InvalidTransitionError{From: current, To: to}
}

func (r *PGBookingRepository) ListEvents(ctx context.Context, bookingID int64) ([]domain.BookingEvent, error) {
	rows, err := r.db.Query(ctx, `SELECT id, booking_id, event_type, location, notes, flight_ref, created_at
		FROM booking_events WHERE booking_id=$1 ORDER BY created_at, id`, bookingID)
	if err != nil {
		return nil, &domain.StoreError{Op: "list booking events", Err: err}
	}
	defer rows.Close()

	events := make([]domain.BookingEvent, 0)
	for rows.Next() {
		var e domain.BookingEvent
		if err := rows.Scan(&e.ID, &e.BookingID, &e.EventType, &e.Location, &e.Notes, &e.FlightRef, &e.CreatedAt); err != nil {
			return nil, &domain.StoreError{Op: "scan booking event", Err: err}
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "iterate booking events", Err: err}
	}
	return events, nil
}

func (r *PGBookingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE owner_id=$1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, &domain.StoreError{Op: "list bookings by owner", Err: err}
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.RefID, &b.Origin, &b.Destination, &b.Pieces, &b.WeightKg, &b.OwnerID, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, &domain.StoreError{Op: "scan booking", Err: err}
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "iterate bookings", Err: err}
	}
	return bookings, nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.RefID, &b.Origin, &b.Destination, &b.Pieces, &b.WeightKg, &b.OwnerID, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
