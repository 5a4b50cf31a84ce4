package domain

import "time"

// TourPackage is a curated bundle with a fixed resource selection,
// flat price and fixed duration. Booking one materializes a Booking
// directly in the booked status after the same availability check.
type TourPackage struct {
	ID          int64
	Name        string
	Description *string

	StayID           int64
	TransportationID *int64
	SightseeingIDs   []int64

	FlatPrice    float64
	DurationDays int

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RangeFrom returns the date range a tour occupies starting at checkIn
func (t *TourPackage) RangeFrom(checkIn time.Time) DateRange {
	return NewDateRange(checkIn, checkIn.AddDate(0, 0, t.DurationDays))
}
