package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCapacityConsuming(t *testing.T) {
	tests := []struct {
		status   BookingStatus
		expected bool
	}{
		{StatusDraft, false},
		{StatusBooked, true},
		{StatusConfirmed, true},
		{StatusCompleted, true},
		{StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expected, IsCapacityConsuming(tt.status))
		})
	}
}

func TestCapacityConsumingStatusStrings_MatchesPredicate(t *testing.T) {
	strs := CapacityConsumingStatusStrings()

	assert.Len(t, strs, len(CapacityConsumingStatuses))
	for _, s := range strs {
		assert.True(t, IsCapacityConsuming(BookingStatus(s)))
	}
}

func TestBooking_Transitions(t *testing.T) {
	draft := &Booking{Status: StatusDraft}
	booked := &Booking{Status: StatusBooked}
	confirmed := &Booking{Status: StatusConfirmed}
	completed := &Booking{Status: StatusCompleted}
	cancelled := &Booking{Status: StatusCancelled}

	assert.True(t, draft.CanBeBooked())
	assert.False(t, booked.CanBeBooked())

	assert.True(t, booked.CanBeConfirmed())
	assert.False(t, draft.CanBeConfirmed())
	assert.False(t, confirmed.CanBeConfirmed())

	assert.True(t, confirmed.CanBeCompleted())
	assert.False(t, booked.CanBeCompleted())

	assert.True(t, booked.CanCheckOutEarly())
	assert.True(t, confirmed.CanCheckOutEarly())
	assert.False(t, draft.CanCheckOutEarly())
	assert.False(t, completed.CanCheckOutEarly())

	// Терминальные статусы не отменяются
	assert.True(t, draft.CanBeCancelled())
	assert.True(t, booked.CanBeCancelled())
	assert.False(t, completed.CanBeCancelled())
	assert.False(t, cancelled.CanBeCancelled())
}

func TestBooking_IsPaid(t *testing.T) {
	assert.True(t, (&Booking{PaymentStatus: PaymentPaid}).IsPaid())
	assert.False(t, (&Booking{PaymentStatus: PaymentPending}).IsPaid())
	assert.False(t, (&Booking{PaymentStatus: PaymentRefunded}).IsPaid())
}
