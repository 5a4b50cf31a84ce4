package update_booking

import (
	"time"

	"github.com/m04kA/TTA-BookingService/internal/domain"
)

// Request модель запроса на изменение черновика
// nil-поля означают "оставить как есть"; SightseeingIDs == nil - не менять,
// пустой срез - убрать все экскурсии
type Request struct {
	BookingID int64
	UserID    int64 // Инициатор запроса
	IsAdmin   bool  // Администратор может менять чужие черновики

	StayID           *int64
	TransportationID *int64
	// ClearTransportation убирает транспорт из пакета; имеет приоритет
	// над TransportationID
	ClearTransportation bool
	SightseeingIDs      []int64
	NumberOfPeople      *int
	CheckIn             *time.Time
	CheckOut            *time.Time
}

// Response модель ответа с обновленным черновиком
type Response struct {
	ID               int64
	UserID           int64
	StayID           int64
	TransportationID *int64
	SightseeingIDs   []int64
	NumberOfPeople   int
	NumberOfDays     int
	CheckInDate      time.Time
	CheckOutDate     time.Time

	// Цена пересчитана сервером под новый состав
	Pricing domain.Pricing

	Status        string
	PaymentStatus string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:               b.ID,
		UserID:           b.UserID,
		StayID:           b.StayID,
		TransportationID: b.TransportationID,
		SightseeingIDs:   b.SightseeingIDs,
		NumberOfPeople:   b.NumberOfPeople,
		NumberOfDays:     b.NumberOfDays,
		CheckInDate:      b.CheckInDate,
		CheckOutDate:     b.CheckOutDate,
		Pricing:          b.Pricing,
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}
