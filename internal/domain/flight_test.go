package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 8, 16, hour, min, 0, 0, time.UTC)
}

func TestNewDirectRoute(t *testing.T) {
	f := Flight{Origin: "DEL", Destination: "BOM", DepartureTime: at(6, 0), ArrivalTime: at(8, 30)}

	opt := NewDirectRoute(f)

	assert.Equal(t, RouteDirect, opt.Type)
	assert.Len(t, opt.Flights, 1)
	assert.Equal(t, RouteDuration{Hours: 2, Minutes: 30, TotalMinutes: 150}, opt.Duration)
	assert.Equal(t, time.Duration(0), opt.Layover())
}

func TestNewTransitRoute(t *testing.T) {
	first := Flight{Origin: "DEL", Destination: "BOM", DepartureTime: at(6, 0), ArrivalTime: at(8, 30)}
	second := Flight{Origin: "BOM", Destination: "BLR", DepartureTime: at(10, 45), ArrivalTime: at(12, 30)}

	opt := NewTransitRoute(first, second)

	assert.Equal(t, RouteTransit, opt.Type)
	assert.Len(t, opt.Flights, 2)
	assert.Equal(t, RouteDuration{Hours: 6, Minutes: 30, TotalMinutes: 390}, opt.Duration)
	assert.Equal(t, 2*time.Hour+15*time.Minute, opt.Layover())
}

func TestRouteDuration_TruncatesSeconds(t *testing.T) {
	f := Flight{
		DepartureTime: at(6, 0),
		ArrivalTime:   at(8, 30).Add(59 * time.Second),
	}

	opt := NewDirectRoute(f)

	assert.Equal(t, 150, opt.Duration.TotalMinutes)
}
