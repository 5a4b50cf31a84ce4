package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestResource_EffectiveCapacity(t *testing.T) {
	tests := []struct {
		name     string
		resource Resource
		expected int
	}{
		{"stay default", Resource{Type: ResourceStay}, DefaultStayRooms},
		{"transportation default", Resource{Type: ResourceTransportation}, DefaultTransportationQuantity},
		{"sightseeing default", Resource{Type: ResourceSightseeing}, DefaultSightseeingSlotsPerDay},
		{"airport transfer default", Resource{Type: ResourceAirportTransfer}, 1},
		{"explicit capacity wins", Resource{Type: ResourceStay, Capacity: intPtr(12)}, 12},
		{"non-positive capacity falls back to default", Resource{Type: ResourceSightseeing, Capacity: intPtr(0)}, DefaultSightseeingSlotsPerDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.resource.EffectiveCapacity())
		})
	}
}

func TestResource_HasDateCapacity(t *testing.T) {
	assert.True(t, (&Resource{Type: ResourceStay}).HasDateCapacity())
	assert.True(t, (&Resource{Type: ResourceSightseeing}).HasDateCapacity())
	assert.False(t, (&Resource{Type: ResourceAirportTransfer}).HasDateCapacity())
}

func TestResource_IsBlockedOn(t *testing.T) {
	r := &Resource{
		Type:             ResourceStay,
		UnavailableDates: []time.Time{date(2026, 7, 3)},
	}

	assert.True(t, r.IsBlockedOn(date(2026, 7, 3)))
	// Сравнение по календарному дню, не по инстанту
	assert.True(t, r.IsBlockedOn(time.Date(2026, 7, 3, 15, 30, 0, 0, time.UTC)))
	assert.False(t, r.IsBlockedOn(date(2026, 7, 4)))
}

func TestResource_FirstBlockedDateIn(t *testing.T) {
	r := &Resource{
		Type: ResourceStay,
		UnavailableDates: []time.Time{
			date(2026, 7, 10),
			date(2026, 7, 3),
			date(2026, 8, 1),
		},
	}

	first := r.FirstBlockedDateIn(NewDateRange(date(2026, 7, 1), date(2026, 7, 15)))
	require.NotNil(t, first)
	assert.Equal(t, date(2026, 7, 3), *first)

	// Блокировка на дате выезда не мешает: граница исключительная
	none := r.FirstBlockedDateIn(NewDateRange(date(2026, 7, 4), date(2026, 7, 10)))
	assert.Nil(t, none)
}

func TestResourceType_IsValid(t *testing.T) {
	assert.True(t, ResourceStay.IsValid())
	assert.True(t, ResourceAirportTransfer.IsValid())
	assert.False(t, ResourceType("hotel").IsValid())
	assert.False(t, ResourceType("").IsValid())
}

func TestTourPackage_RangeFrom(t *testing.T) {
	tour := &TourPackage{DurationDays: 5}

	rng := tour.RangeFrom(date(2026, 7, 1))

	assert.Equal(t, date(2026, 7, 1), rng.CheckIn)
	assert.Equal(t, date(2026, 7, 6), rng.CheckOut)
	assert.Equal(t, 5, rng.Nights())
}
