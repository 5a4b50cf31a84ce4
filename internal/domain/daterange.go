package domain

import "time"

// DateRange is a half-open calendar range [CheckIn, CheckOut):
// the check-out day itself is not occupied.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewDateRange truncates both instants to calendar days and returns the range
func NewDateRange(checkIn, checkOut time.Time) DateRange {
	return DateRange{
		CheckIn:  truncateToDay(checkIn),
		CheckOut: truncateToDay(checkOut),
	}
}

// IsValid returns true if the range spans at least one night
func (r DateRange) IsValid() bool {
	return r.CheckOut.After(r.CheckIn)
}

// Nights returns the number of occupied nights in the range
func (r DateRange) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// Overlaps reports whether two half-open ranges share at least one day.
// Adjacent ranges (one checks out the day the other checks in) do NOT overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && r.CheckOut.After(other.CheckIn)
}

// ContainsDay reports whether the calendar day falls inside the range:
// CheckIn <= day < CheckOut
func (r DateRange) ContainsDay(day time.Time) bool {
	d := truncateToDay(day)
	return !d.Before(r.CheckIn) && d.Before(r.CheckOut)
}

// Days returns every calendar day of the range in order
// Используется посуточной проверкой вместимости экскурсий: два пересекающихся
// многодневных диапазона могут конфликтовать только в отдельные общие дни,
// поэтому считать нужно по дням, а не по диапазону целиком.
func (r DateRange) Days() []time.Time {
	if !r.IsValid() {
		return []time.Time{}
	}
	days := make([]time.Time, 0, r.Nights())
	for d := r.CheckIn; d.Before(r.CheckOut); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// truncateToDay обнуляет время, оставляя только календарную дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
