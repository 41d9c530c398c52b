package repository

import (
	"context"
	"time"

	"github.com/ashutosh1890/Air-Cargo-booking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	// ListByRoute returns flights between two airports departing inside
	// [from, to), ordered by departure time.
	ListByRoute(ctx context.Context, origin, destination string, from, to time.Time) ([]domain.Flight, error)
	// ListDepartures returns flights leaving origin inside [from, to) whose
	// destination is not excludeDestination, ordered by departure time.
	ListDepartures(ctx context.Context, origin, excludeDestination string, from, to time.Time) ([]domain.Flight, error)
	// ListConnections returns at most limit flights for a connecting leg,
	// ordered by departure time.
	ListConnections(ctx context.Context, origin, destination string, from, to time.Time, limit int) ([]domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_number, airline_name, origin, destination, departure_datetime, arrival_datetime`

func (r *PGFlightRepository) ListByRoute(ctx context.Context, origin, destination string, from, to time.Time) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE origin=$1 AND destination=$2 AND departure_datetime >= $3 AND departure_datetime < $4
		ORDER BY departure_datetime`, origin, destination, from, to)
	if err != nil {
		return nil, &domain.StoreError{Op: "list flights by route", Err: err}
	}
	defer rows.Close()
	return scanFlights(rows)
}

func (r *PGFlightRepository) ListDepartures(ctx context.Context, origin, excludeDestination string, from, to time.Time) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE origin=$1 AND destination <> $2 AND departure_datetime >= $3 AND departure_datetime < $4
		ORDER BY departure_datetime`, origin, excludeDestination, from, to)
	if err != nil {
		return nil, &domain.StoreError{Op: "list departures", Err: err}
	}
	defer rows.Close()
	return scanFlights(rows)
}

func (r *PGFlightRepository) ListConnections(ctx context.Context, origin, destination string, from, to time.Time, limit int) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE origin=$1 AND destination=$2 AND departure_datetime >= $3 AND departure_datetime < $4
		ORDER BY departure_datetime LIMIT $5`, origin, destination, from, to, limit)
	if err != nil {
		return nil, &domain.StoreError{Op: "list connections", Err: err}
	}
	defer rows.Close()
	return scanFlights(rows)
}

func scanFlights(rows pgx.Rows) ([]domain.Flight, error) {
	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.FlightNumber, &f.AirlineName, &f.Origin, &f.Destination, &f.DepartureTime, &f.ArrivalTime); err != nil {
			return nil, &domain.StoreError{Op: "scan flight", Err: err}
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "iterate flights", Err: err}
	}
	return flights, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
