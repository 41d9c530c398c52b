package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "BOOKED"
	BookingStatusDeparted  BookingStatus = "DEPARTED"
	BookingStatusArrived   BookingStatus = "ARRIVED"
	BookingStatusDelivered BookingStatus = "DELIVERED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// EventCreated is the timeline event kind written once at booking creation.
// Every other event kind is the status the booking moved to.
const EventCreated = "CREATED"

var statusTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusBooked:    {BookingStatusDeparted, BookingStatusCancelled},
	BookingStatusDeparted:  {BookingStatusArrived},
	BookingStatusArrived:   {BookingStatusDelivered},
	BookingStatusDelivered: {},
	BookingStatusCancelled: {},
}

func (s BookingStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return len(statusTransitions[s]) == 0
}

type Booking struct {
	ID          int64         `json:"-"`
	RefID       string        `json:"ref_id"`
	Origin      string        `json:"origin"`
	Destination string        `json:"destination"`
	Pieces      int           `json:"pieces"`
	WeightKg    float64       `json:"weight_kg"`
	OwnerID     *uuid.UUID    `json:"owner_id,omitempty"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// BookingEvent is one append-only timeline entry. Notes and FlightRef may be
// backfilled onto the latest event when detail arrives after the transition.
type BookingEvent struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"-"`
	EventType string    `json:"event_type"`
	Location  *string   `json:"location,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	FlightRef *string   `json:"flight_ref,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
