package create_booking

import (
	"time"

	"github.com/m04kA/TTA-BookingService/internal/domain"
)

// Request модель запроса на создание черновика бронирования
type Request struct {
	UserID           int64     // ID пользователя
	StayID           int64     // ID размещения (обязательно)
	TransportationID *int64    // ID транспорта (опционально)
	SightseeingIDs   []int64   // ID экскурсий (может быть пустым)
	NumberOfPeople   int       // Количество гостей
	CheckIn          time.Time // Дата заезда
	CheckOut         time.Time // Дата выезда (исключительная граница)
}

// Response модель ответа с созданным черновиком
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

	// Серверный расчет цены, зафиксированный на черновике
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
