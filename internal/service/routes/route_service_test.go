package routes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ashutosh1890/Air-Cargo-booking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) ListByRoute(ctx context.Context, origin, destination string, from, to time.Time) ([]domain.Flight, error) {
	args := m.Called(ctx, origin, destination, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) ListDepartures(ctx context.Context, origin, excludeDestination string, from, to time.Time) ([]domain.Flight, error) {
	args := m.Called(ctx, origin, excludeDestination, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) ListConnections(ctx context.Context, origin, destination string, from, to time.Time, limit int) ([]domain.Flight, error) {
	args := m.Called(ctx, origin, destination, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetRoutes(ctx context.Context, origin, destination, date string) ([]domain.RouteOption, error) {
	args := m.Called(ctx, origin, destination, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RouteOption), args.Error(1)
}

func (m *MockCache) SetRoutes(ctx context.Context, origin, destination, date string, routes []domain.RouteOption) error {
	args := m.Called(ctx, origin, destination, date, routes)
	return args.Error(0)
}

var (
	day         = time.Date(2024, 8, 16, 0, 0, 0, 0, time.UTC)
	dayEnd      = day.AddDate(0, 0, 1)
	delBomEarly = domain.Flight{ID: 1, FlightNumber: "AI101", Origin: "DEL", Destination: "BOM", DepartureTime: day.Add(6 * time.Hour), ArrivalTime: day.Add(8*time.Hour + 30*time.Minute)}
	delBomLate  = domain.Flight{ID: 2, FlightNumber: "AI103", Origin: "DEL", Destination: "BOM", DepartureTime: day.Add(9*time.Hour + 15*time.Minute), ArrivalTime: day.Add(11*time.Hour + 45*time.Minute)}
)

func query(origin, destination string) SearchQuery {
	return SearchQuery{Origin: origin, Destination: destination, DepartureDate: "2024-08-16"}
}

func TestRouteService_Search_ValidationErrors(t *testing.T) {
	service := NewRouteService(&MockFlightRepository{}, nil)
	ctx := context.Background()

	testCases := []struct {
		name  string
		query SearchQuery
	}{
		{"missing origin", SearchQuery{Destination: "BOM", DepartureDate: "2024-08-16"}},
		{"missing destination", SearchQuery{Origin: "DEL", DepartureDate: "2024-08-16"}},
		{"missing date", SearchQuery{Origin: "DEL", Destination: "BOM"}},
		{"malformed date", SearchQuery{Origin: "DEL", Destination: "BOM", DepartureDate: "16-08-2024"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			found, err := service.Search(ctx, tc.query)
			assert.Nil(t, found)
			var validation *domain.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestRouteService_Search_DirectSortedAndStable(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewRouteService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("ListByRoute", ctx, "DEL", "BOM", day, dayEnd).Return([]domain.Flight{delBomEarly, delBomLate}, nil).Once()
	mockRepo.On("ListDepartures", ctx, "DEL", "BOM", day, dayEnd).Return([]domain.Flight{}, nil).Once()

	found, err := service.Search(ctx, query("DEL", "BOM"))

	assert.NoError(t, err)
	assert.Len(t, found, 2)
	// Equal 2h30m durations, encounter order decides.
	assert.Equal(t, int64(1), found[0].Flights[0].ID)
	assert.Equal(t, int64(2), found[1].Flights[0].ID)
	assert.Equal(t, domain.RouteDirect, found[0].Type)
	assert.Equal(t, 150, found[0].Duration.TotalMinutes)

	mockRepo.AssertExpectations(t)
}

func TestRouteService_Search_TransitLayoverPolicy(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewRouteService(mockRepo, nil)
	ctx := context.Background()

	tooTight := domain.Flight{ID: 3, FlightNumber: "6E201", Origin: "BOM", Destination: "BLR", DepartureTime: day.Add(9 * time.Hour), ArrivalTime: day.Add(10*time.Hour + 45*time.Minute)}
	connectable := domain.Flight{ID: 4, FlightNumber: "6E205", Origin: "BOM", Destination: "BLR", DepartureTime: day.Add(10*time.Hour + 45*time.Minute), ArrivalTime: day.Add(12*time.Hour + 30*time.Minute)}

	mockRepo.On("ListByRoute", ctx, "DEL", "BLR", day, dayEnd).Return([]domain.Flight{}, nil).Once()
	mockRepo.On("ListDepartures", ctx, "DEL", "BLR", day, dayEnd).Return([]domain.Flight{delBomEarly}, nil).Once()
	mockRepo.On("ListConnections", ctx, "BOM", "BLR", delBomEarly.ArrivalTime, delBomEarly.ArrivalTime.Add(48*time.Hour), 3).
		Return([]domain.Flight{tooTight, connectable}, nil).Once()

	found, err := service.Search(ctx, query("DEL", "BLR"))

	assert.NoError(t, err)
	// The 30m layover combination is discarded, the 2h15m one kept.
	assert.Len(t, found, 1)
	assert.Equal(t, domain.RouteTransit, found[0].Type)
	assert.Equal(t, int64(4), found[0].Flights[1].ID)
	assert.Equal(t, domain.RouteDuration{Hours: 6, Minutes: 30, TotalMinutes: 390}, found[0].Duration)

	mockRepo.AssertExpectations(t)
}

func TestRouteService_Search_LayoverExactlyTwoHoursIsAccepted(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewRouteService(mockRepo, nil)
	ctx := context.Background()

	boundary := domain.Flight{ID: 5, Origin: "BOM", Destination: "BLR", DepartureTime: day.Add(10*time.Hour + 30*time.Minute), ArrivalTime: day.Add(12 * time.Hour)}

	mockRepo.On("ListByRoute", ctx, "DEL", "BLR", day, dayEnd).Return([]domain.Flight{}, nil).Once()
	mockRepo.On("ListDepartures", ctx, "DEL", "BLR", day, dayEnd).Return([]domain.Flight{delBomEarly}, nil).Once()
	mockRepo.On("ListConnections", ctx, "BOM", "BLR", delBomEarly.ArrivalTime, delBomEarly.ArrivalTime.Add(48*time.Hour), 3).
		Return([]domain.Flight{boundary}, nil).Once()

	found, err := service.Search(ctx, query("DEL", "BLR"))

	assert.NoError(t, err)
	assert.Len(t, found, 1)

	mockRepo.AssertExpectations(t)
}

func TestRouteService_Search_DirectBeforeTransitOnEqualDuration(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewRouteService(mockRepo, nil)
	ctx := context.Background()

	// Direct DEL->BLR takes exactly as long as the two-leg combination.
	directSlow := domain.Flight{ID: 6, Origin: "DEL", Destination: "BLR", DepartureTime: day.Add(6 * time.Hour), ArrivalTime: day.Add(12*time.Hour + 30*time.Minute)}
	second := domain.Flight{ID: 7, Origin: "BOM", Destination: "BLR", DepartureTime: day.Add(10*time.Hour + 45*time.Minute), ArrivalTime: day.Add(12*time.Hour + 30*time.Minute)}

	mockRepo.On("ListByRoute", ctx, "DEL", "BLR", day, dayEnd).Return([]domain.Flight{directSlow}, nil).Once()
	mockRepo.On("ListDepartures", ctx, "DEL", "BLR", day, dayEnd).Return([]domain.Flight{delBomEarly}, nil).Once()
	mockRepo.On("ListConnections", ctx, "BOM", "BLR", delBomEarly.ArrivalTime, delBomEarly.ArrivalTime.Add(48*time.Hour), 3).
		Return([]domain.Flight{second}, nil).Once()

	found, err := service.Search(ctx, query("DEL", "BLR"))

	assert.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Equal(t, domain.RouteDirect, found[0].Type)
	assert.Equal(t, domain.RouteTransit, found[1].Type)
	assert.Equal(t, found[0].Duration.TotalMinutes, found[1].Duration.TotalMinutes)

	mockRepo.AssertExpectations(t)
}

func TestRouteService_Search_EmptyResultIsSuccess(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewRouteService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("ListByRoute", ctx, "DEL", "BOM", day, dayEnd).Return([]domain.Flight{}, nil).Once()
	mockRepo.On("ListDepartures", ctx, "DEL", "BOM", day, dayEnd).Return([]domain.Flight{}, nil).Once()

	found, err := service.Search(ctx, query("DEL", "BOM"))

	assert.NoError(t, err)
	assert.Empty(t, found)

	mockRepo.AssertExpectations(t)
}

func TestRouteService_Search_StoreErrorPropagates(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewRouteService(mockRepo, nil)
	ctx := context.Background()

	storeErr := &domain.StoreError{Op: "list flights by route", Err: errors.New("connection refused")}
	mockRepo.On("ListByRoute", ctx, "DEL", "BOM", day, dayEnd).Return(nil, storeErr).Once()

	found, err := service.Search(ctx, query("DEL", "BOM"))

	assert.Nil(t, found)
	var se *domain.StoreError
	assert.ErrorAs(t, err, &se)

	mockRepo.AssertExpectations(t)
}

func TestRouteService_Search_CacheHitSkipsCatalog(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewRouteService(mockRepo, mockCache)
	ctx := context.Background()

	cached := []domain.RouteOption{domain.NewDirectRoute(delBomEarly)}
	mockCache.On("GetRoutes", ctx, "DEL", "BOM", "2024-08-16").Return(cached, nil).Once()

	found, err := service.Search(ctx, query("DEL", "BOM"))

	assert.NoError(t, err)
	assert.Equal(t, cached, found)

	mockCache.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "ListByRoute")
}

func TestRouteService_Search_CacheMissFillsCache(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewRouteService(mockRepo, mockCache)
	ctx := context.Background()

	mockCache.On("GetRoutes", ctx, "DEL", "BOM", "2024-08-16").Return(nil, nil).Once()
	mockRepo.On("ListByRoute", ctx, "DEL", "BOM", day, dayEnd).Return([]domain.Flight{delBomEarly}, nil).Once()
	mockRepo.On("ListDepartures", ctx, "DEL", "BOM", day, dayEnd).Return([]domain.Flight{}, nil).Once()
	mockCache.On("SetRoutes", ctx, "DEL", "BOM", "2024-08-16", mock.AnythingOfType("[]domain.RouteOption")).Return(nil).Once()

	found, err := service.Search(ctx, query("DEL", "BOM"))

	assert.NoError(t, err)
	assert.Len(t, found, 1)

	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}
