package domain

import "time"

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusDraft     BookingStatus = "draft"
	StatusBooked    BookingStatus = "booked"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking represents a multi-component trip package booked by a user
type Booking struct {
	ID     int64
	UserID int64

	StayID           int64
	TransportationID *int64
	SightseeingIDs   []int64

	NumberOfPeople int
	NumberOfDays   int
	CheckInDate    time.Time
	CheckOutDate   time.Time // Exclusive upper bound, see DateRange

	Pricing Pricing

	Status        BookingStatus
	PaymentStatus PaymentStatus

	// Корреляционные идентификаторы платежного шлюза
	PaymentOrderID *string
	PaymentID      *string

	// TourPackageID заполнен, если бронирование создано из готового тура
	TourPackageID *int64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the booking's half-open date range
func (b *Booking) Range() DateRange {
	return NewDateRange(b.CheckInDate, b.CheckOutDate)
}

// IsDraft returns true while the booking is still editable
func (b *Booking) IsDraft() bool {
	return b.Status == StatusDraft
}

// IsTerminal returns true if no further transition is possible
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking may still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return !b.IsTerminal()
}

// CanBeBooked returns true for the draft -> booked transition
func (b *Booking) CanBeBooked() bool {
	return b.Status == StatusDraft
}

// CanBeConfirmed returns true for the booked -> confirmed transition
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusBooked
}

// CanBeCompleted returns true for the confirmed -> completed transition
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed
}

// CanCheckOutEarly returns true if the stay is underway and may be shortened
func (b *Booking) CanCheckOutEarly() bool {
	return b.Status == StatusBooked || b.Status == StatusConfirmed
}

// IsPaid returns true once the booking has been paid for
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentPaid
}

// IsCapacityConsuming возвращает true для статусов, занимающих вместимость
// ресурсов. ЕДИНСТВЕННОЕ место, где этот набор определен: все места подсчета
// пересечений (SQL и in-memory) обязаны ходить через этот предикат или через
// CapacityConsumingStatuses, иначе наборы разъедутся.
func IsCapacityConsuming(status BookingStatus) bool {
	switch status {
	case StatusBooked, StatusConfirmed, StatusCompleted:
		return true
	}
	return false
}

// CapacityConsumingStatuses статусы, занимающие вместимость, в форме для SQL фильтров
// Производная IsCapacityConsuming; draft и cancelled вместимость не занимают
var CapacityConsumingStatuses = []BookingStatus{
	StatusBooked,
	StatusConfirmed,
	StatusCompleted,
}

// CapacityConsumingStatusStrings возвращает набор как []string для squirrel
func CapacityConsumingStatusStrings() []string {
	out := make([]string, len(CapacityConsumingStatuses))
	for i, s := range CapacityConsumingStatuses {
		out[i] = string(s)
	}
	return out
}

// UserBookingsFilter фильтр выборки бронирований пользователя
type UserBookingsFilter struct {
	UserID int64          // Обязательный параметр
	Status *BookingStatus // Фильтр по статусу (опционально)
}
