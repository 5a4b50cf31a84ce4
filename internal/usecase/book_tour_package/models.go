package book_tour_package

import (
	"time"

	"github.com/m04kA/TTA-BookingService/internal/domain"
)

// Request модель запроса на бронирование готового тура
// Дата выезда не передается: длительность зафиксирована в туре
type Request struct {
	TourPackageID  int64
	UserID         int64
	CheckIn        time.Time // Дата заезда
	NumberOfPeople int       // Количество гостей
}

// Response модель ответа с созданным бронированием тура
type Response struct {
	ID               int64
	UserID           int64
	TourPackageID    int64
	StayID           int64
	TransportationID *int64
	SightseeingIDs   []int64
	NumberOfPeople   int
	NumberOfDays     int
	CheckInDate      time.Time
	CheckOutDate     time.Time

	// Фиксированная цена тура, покомпонентная разбивка не ведется
	Pricing domain.Pricing

	Status        string
	PaymentStatus string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func toResponse(b *domain.Booking) *Response {
	resp := &Response{
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
	if b.TourPackageID != nil {
		resp.TourPackageID = *b.TourPackageID
	}
	return resp
}
