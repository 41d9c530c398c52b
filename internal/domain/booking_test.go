package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_Valid(t *testing.T) {
	for _, s := range []BookingStatus{BookingStatusBooked, BookingStatusDeparted, BookingStatusArrived, BookingStatusDelivered, BookingStatusCancelled} {
		assert.True(t, s.Valid(), "status %s", s)
	}
	assert.False(t, BookingStatus("PENDING").Valid())
	assert.False(t, BookingStatus("").Valid())
}

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	testCases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingStatusBooked, BookingStatusDeparted, true},
		{BookingStatusBooked, BookingStatusCancelled, true},
		{BookingStatusBooked, BookingStatusArrived, false},
		{BookingStatusBooked, BookingStatusDelivered, false},
		{BookingStatusDeparted, BookingStatusArrived, true},
		{BookingStatusDeparted, BookingStatusCancelled, false},
		{BookingStatusDeparted, BookingStatusDelivered, false},
		{BookingStatusArrived, BookingStatusDelivered, true},
		{BookingStatusArrived, BookingStatusCancelled, false},
		{BookingStatusDelivered, BookingStatusCancelled, false},
		{BookingStatusCancelled, BookingStatusBooked, false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestBookingStatus_Terminal(t *testing.T) {
	assert.True(t, BookingStatusDelivered.Terminal())
	assert.True(t, BookingStatusCancelled.Terminal())
	assert.False(t, BookingStatusBooked.Terminal())
	assert.False(t, BookingStatusDeparted.Terminal())
	assert.False(t, BookingStatusArrived.Terminal())
}

func TestTerminalStatusesAllowNothing(t *testing.T) {
	all := []BookingStatus{BookingStatusBooked, BookingStatusDeparted, BookingStatusArrived, BookingStatusDelivered, BookingStatusCancelled}
	for _, terminal := range []BookingStatus{BookingStatusDelivered, BookingStatusCancelled} {
		for _, to := range all {
			assert.False(t, terminal.CanTransitionTo(to), "%s -> %s must be rejected", terminal, to)
		}
	}
}

func TestInvalidTransitionError_Message(t *testing.T) {
	err := &InvalidTransitionError{From: BookingStatusArrived, To: BookingStatusCancelled}
	assert.Equal(t, "Cannot change status from ARRIVED to CANCELLED", err.Error())
}
