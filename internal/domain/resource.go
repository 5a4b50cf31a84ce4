package domain

import "time"

// ResourceType identifies a bookable inventory kind
type ResourceType string

const (
	ResourceStay            ResourceType = "stay"
	ResourceTransportation  ResourceType = "transportation"
	ResourceSightseeing     ResourceType = "sightseeing"
	ResourceAirportTransfer ResourceType = "airport_transfer"
)

// IsValid returns true if the resource type is one of the known kinds
func (t ResourceType) IsValid() bool {
	switch t {
	case ResourceStay, ResourceTransportation, ResourceSightseeing, ResourceAirportTransfer:
		return true
	}
	return false
}

// Resource represents a bookable inventory item
// One tagged shape covers all four kinds; UnitPrice is interpreted per type:
// stay - per night, transportation - per day, sightseeing - per person,
// airport_transfer - flat.
type Resource struct {
	ID          int64
	Type        ResourceType
	Name        string
	Description *string
	Location    *string
	UnitPrice   float64

	// Capacity units depend on the type: rooms for stays, vehicles for
	// transportation, slots per day for sightseeing. nil means the per-type
	// default applies. Airport transfers carry no date-based capacity.
	Capacity *int

	IsActive bool

	// UnavailableDates календарные даты, заблокированные администратором
	// вручную независимо от загрузки бронированиями
	UnavailableDates []time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveCapacity returns the capacity figure, falling back to the
// per-type default when not set explicitly
func (r *Resource) EffectiveCapacity() int {
	if r.Capacity != nil && *r.Capacity >= 1 {
		return *r.Capacity
	}
	switch r.Type {
	case ResourceStay:
		return DefaultStayRooms
	case ResourceTransportation:
		return DefaultTransportationQuantity
	case ResourceSightseeing:
		return DefaultSightseeingSlotsPerDay
	default:
		return 1
	}
}

// HasDateCapacity returns true if the resource consumes date-based capacity
func (r *Resource) HasDateCapacity() bool {
	return r.Type != ResourceAirportTransfer
}

// IsBlockedOn returns true if the given calendar day is manually blocked
func (r *Resource) IsBlockedOn(day time.Time) bool {
	y, m, d := day.Date()
	for _, blocked := range r.UnavailableDates {
		by, bm, bd := blocked.Date()
		if y == by && m == bm && d == bd {
			return true
		}
	}
	return false
}

// FirstBlockedDateIn returns the earliest manually blocked date inside the
// half-open range, or nil if none falls inside it
func (r *Resource) FirstBlockedDateIn(rng DateRange) *time.Time {
	var first *time.Time
	for _, blocked := range r.UnavailableDates {
		if !rng.ContainsDay(blocked) {
			continue
		}
		if first == nil || blocked.Before(*first) {
			b := blocked
			first = &b
		}
	}
	return first
}

// ResourceFilter фильтр каталога для выборки ресурсов
type ResourceFilter struct {
	Type     ResourceType // Обязательный параметр
	Location *string      // Фильтр по локации (опционально)
	MaxPrice *float64     // Верхняя граница цены (опционально)
}
