package domain

import "time"

type Flight struct {
	ID            int64     `json:"id"`
	FlightNumber  string    `json:"flight_number"`
	AirlineName   string    `json:"airline_name"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

type RouteType string

const (
	RouteDirect  RouteType = "direct"
	RouteTransit RouteType = "transit"
)

// RouteDuration renders an itinerary length as whole hours and minutes,
// truncated. TotalMinutes is what route options are compared by.
type RouteDuration struct {
	Hours        int `json:"hours"`
	Minutes      int `json:"minutes"`
	TotalMinutes int `json:"total_minutes"`
}

// RouteOption is a search result, never persisted. Direct options carry one
// flight, transit options carry two ordered legs sharing an intermediate stop.
type RouteOption struct {
	Type     RouteType     `json:"type"`
	Flights  []Flight      `json:"flights"`
	Duration RouteDuration `json:"total_duration"`
}

func NewDirectRoute(f Flight) RouteOption {
	return RouteOption{
		Type:     RouteDirect,
		Flights:  []Flight{f},
		Duration: durationBetween(f.DepartureTime, f.ArrivalTime),
	}
}

func NewTransitRoute(first, second Flight) RouteOption {
	return RouteOption{
		Type:     RouteTransit,
		Flights:  []Flight{first, second},
		Duration: durationBetween(first.DepartureTime, second.ArrivalTime),
	}
}

// Layover is the gap between the first leg's arrival and the second leg's
// departure. Zero for direct options.
func (o RouteOption) Layover() time.Duration {
	if o.Type != RouteTransit || len(o.Flights) != 2 {
		return 0
	}
	return o.Flights[1].DepartureTime.Sub(o.Flights[0].ArrivalTime)
}

func durationBetween(departure, arrival time.Time) RouteDuration {
	total := int(arrival.Sub(departure).Minutes())
	return RouteDuration{
		Hours:        total / 60,
		Minutes:      total % 60,
		TotalMinutes: total,
	}
}
