package booking

import (
	"context"
	"log"
	"time"

	"github.com/ashutosh1890/Air-Cargo-booking/internal/domain"
	"github.com/ashutosh1890/Air-Cargo-booking/internal/kafka"
	"github.com/ashutosh1890/Air-Cargo-booking/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	AdvanceStatus(ctx context.Context, input AdvanceStatusInput) (*domain.Booking, error)
	GetHistory(ctx context.Context, refID string) (*BookingHistory, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	Pieces      int        `json:"pieces"`
	WeightKg    float64    `json:"weight_kg"`
	OwnerID     *uuid.UUID `json:"-"`
}

type AdvanceStatusInput struct {
	RefID     string
	Status    string
	Location  *string
	Notes     *string
	FlightRef *string
}

type BookingHistory struct {
	Booking *domain.Booking       `json:"booking"`
	Events  []domain.BookingEvent `json:"events"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

type BookingService struct {
	bookings           repository.BookingRepository
	producer           Producer
	eventsTopic        string
	notificationsTopic string
}

func NewBookingService(bookings repository.BookingRepository, producer Producer, eventsTopic string, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		bookings:    bookings,
		producer:    producer,
		eventsTopic: eventsTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.Origin == "" || input.Destination == "" {
		return nil, domain.NewValidationError("origin and destination are required")
	}
	if input.Pieces <= 0 {
		return nil, domain.NewValidationError("pieces must be positive")
	}
	if input.WeightKg <= 0 {
		return nil, domain.NewValidationError("weight_kg must be positive")
	}

	booking := &domain.Booking{
		Origin:      input.Origin,
		Destination: input.Destination,
		Pieces:      input.Pieces,
		WeightKg:    input.WeightKg,
		OwnerID:     input.OwnerID,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_created", booking, nil)
	return booking, nil
}

// AdvanceStatus validates a requested lifecycle transition, applies it and
// synchronizes the timeline. Checks run in a fixed order so the caller gets
// the most specific failure first.
func (s *BookingService) AdvanceStatus(ctx context.Context, input AdvanceStatusInput) (*domain.Booking, error) {
	if input.RefID == "" || input.Status == "" {
		return nil, domain.NewValidationError("ref_id and status are required")
	}
	requested := domain.BookingStatus(input.Status)
	if !requested.Valid() {
		return nil, domain.NewValidationError("invalid status %q", input.Status)
	}

	current, err := s.bookings.GetByRef(ctx, input.RefID)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransitionTo(requested) {
		return nil, &domain.InvalidTransitionError{From: current.Status, To: requested}
	}
	// Cancellation is re-checked outside the table: a shipment that already
	// arrived or was delivered must never become cancellable through a
	// future table edit.
	if requested == domain.BookingStatusCancelled &&
		(current.Status == domain.BookingStatusArrived || current.Status == domain.BookingStatusDelivered) {
		return nil, &domain.InvalidTransitionError{From: current.Status, To: requested}
	}

	location := input.Location
	if location == nil {
		location = defaultLocation(requested, current)
	}

	updated, err := s.bookings.UpdateStatus(ctx, input.RefID, current.Status, requested, location, input.Notes, input.FlightRef)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "status_changed", updated, input.FlightRef)
	return updated, nil
}

func (s *BookingService) GetHistory(ctx context.Context, refID string) (*BookingHistory, error) {
	if refID == "" {
		return nil, domain.NewValidationError("ref_id is required")
	}
	booking, err := s.bookings.GetByRef(ctx, refID)
	if err != nil {
		return nil, err
	}
	events, err := s.bookings.ListEvents(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	return &BookingHistory{Booking: booking, Events: events}, nil
}

func (s *BookingService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error) {
	return s.bookings.ListByOwner(ctx, ownerID)
}

func defaultLocation(requested domain.BookingStatus, booking *domain.Booking) *string {
	switch requested {
	case domain.BookingStatusDeparted:
		return &booking.Origin
	case domain.BookingStatusArrived, domain.BookingStatusDelivered:
		return &booking.Destination
	}
	return nil
}

// publish is best effort: a broker outage must not fail an accepted request.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking, flightRef *string) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.StatusEvent{
		Type:        eventType,
		RefID:       booking.RefID,
		Origin:      booking.Origin,
		Destination: booking.Destination,
		Status:      string(booking.Status),
		OccurredAt:  time.Now(),
	}
	if flightRef != nil {
		event.FlightRef = *flightRef
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, booking.RefID, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %s: %v", eventType, booking.RefID, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.RefID, event); err != nil {
			log.Printf("WARNING: failed to publish notification for booking %s: %v", booking.RefID, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
