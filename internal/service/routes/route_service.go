package routes

import (
	"context"
	"sort"
	"time"

	"github.com/ashutosh1890/Air-Cargo-booking/internal/domain"
	"github.com/ashutosh1890/Air-Cargo-booking/internal/repository"
)

const (
	// Minimum connection time between the first leg's arrival and the
	// second leg's departure.
	minLayover = 2 * time.Hour
	// How far past the first leg's arrival a connection may depart.
	maxConnectionWindow = 48 * time.Hour
	// Cap on second-hop candidates per first hop, bounds the fan-out.
	maxConnectionsPerHop = 3

	dateLayout = "2006-01-02"
)

type RouteUseCase interface {
	Search(ctx context.Context, query SearchQuery) ([]domain.RouteOption, error)
}

type Cache interface {
	GetRoutes(ctx context.Context, origin, destination, date string) ([]domain.RouteOption, error)
	SetRoutes(ctx context.Context, origin, destination, date string, routes []domain.RouteOption) error
}

type SearchQuery struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
}

type RouteService struct {
	flights repository.FlightRepository
	cache   Cache
}

func NewRouteService(flights repository.FlightRepository, cache Cache) *RouteService {
	return &RouteService{flights: flights, cache: cache}
}

// Search returns direct and one-stop itineraries for a calendar day, sorted
// by total duration ascending. No matching flights is a valid empty result,
// not an error.
func (s *RouteService) Search(ctx context.Context, query SearchQuery) ([]domain.RouteOption, error) {
	if query.Origin == "" || query.Destination == "" || query.DepartureDate == "" {
		return nil, domain.NewValidationError("origin, destination and departure_date are required")
	}
	day, err := time.Parse(dateLayout, query.DepartureDate)
	if err != nil {
		return nil, domain.NewValidationError("departure_date must be YYYY-MM-DD")
	}

	if s.cache != nil {
		if cached, err := s.cache.GetRoutes(ctx, query.Origin, query.Destination, query.DepartureDate); err == nil && cached != nil {
			return cached, nil
		}
	}

	windowStart := day
	windowEnd := day.AddDate(0, 0, 1)

	direct, err := s.flights.ListByRoute(ctx, query.Origin, query.Destination, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	options := make([]domain.RouteOption, 0, len(direct))
	for _, f := range direct {
		options = append(options, domain.NewDirectRoute(f))
	}

	transit, err := s.searchTransit(ctx, query, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	options = append(options, transit...)

	// Stable keeps encounter order on equal durations, so direct options
	// stay ahead of transit combinations found at the same total time.
	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Duration.TotalMinutes < options[j].Duration.TotalMinutes
	})

	if s.cache != nil {
		_ = s.cache.SetRoutes(ctx, query.Origin, query.Destination, query.DepartureDate, options)
	}
	return options, nil
}

func (s *RouteService) searchTransit(ctx context.Context, query SearchQuery, windowStart, windowEnd time.Time) ([]domain.RouteOption, error) {
	firstHops, err := s.flights.ListDepartures(ctx, query.Origin, query.Destination, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	var options []domain.RouteOption
	for _, first := range firstHops {
		connectFrom := first.ArrivalTime
		connectTo := first.ArrivalTime.Add(maxConnectionWindow)

		seconds, err := s.flights.ListConnections(ctx, first.Destination, query.Destination, connectFrom, connectTo, maxConnectionsPerHop)
		if err != nil {
			return nil, err
		}

		for _, second := range seconds {
			if second.DepartureTime.Sub(first.ArrivalTime) < minLayover {
				continue
			}
			options = append(options, domain.NewTransitRoute(first, second))
		}
	}
	return options, nil
}

var _ RouteUseCase = (*RouteService)(nil)
