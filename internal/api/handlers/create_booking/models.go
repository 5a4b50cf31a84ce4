package create_booking

import (
	"time"

	createBooking "github.com/m04kA/TTA-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/TTA-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	StayID           int64   `json:"stayId"`
	TransportationID *int64  `json:"transportationId,omitempty"`
	SightseeingIDs   []int64 `json:"sightseeingIds,omitempty"`
	NumberOfPeople   int     `json:"numberOfPeople"`
	CheckIn          string  `json:"checkIn"`  // "2026-07-01"
	CheckOut         string  `json:"checkOut"` // Исключительная граница
}

// PricingResponse разбивка стоимости пакета
type PricingResponse struct {
	StayTotal           float64 `json:"stayTotal"`
	TransportationTotal float64 `json:"transportationTotal"`
	SightseeingTotal    float64 `json:"sightseeingTotal"`
	GrandTotal          float64 `json:"grandTotal"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64           `json:"id"`
	UserID           int64           `json:"userId"`
	StayID           int64           `json:"stayId"`
	TransportationID *int64          `json:"transportationId,omitempty"`
	SightseeingIDs   []int64         `json:"sightseeingIds"`
	NumberOfPeople   int             `json:"numberOfPeople"`
	NumberOfDays     int             `json:"numberOfDays"`
	CheckInDate      string          `json:"checkInDate"`
	CheckOutDate     string          `json:"checkOutDate"`
	Pricing          PricingResponse `json:"pricing"`
	Status           string          `json:"status"`
	PaymentStatus    string          `json:"paymentStatus"`
	CreatedAt        string          `json:"createdAt"`
	UpdatedAt        string          `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	checkIn, err := types.DateString(r.CheckIn).Time()
	if err != nil {
		return nil, err
	}

	checkOut, err := types.DateString(r.CheckOut).Time()
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:           userID,
		StayID:           r.StayID,
		TransportationID: r.TransportationID,
		SightseeingIDs:   r.SightseeingIDs,
		NumberOfPeople:   r.NumberOfPeople,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	sightseeingIDs := resp.SightseeingIDs
	if sightseeingIDs == nil {
		sightseeingIDs = []int64{}
	}

	return &BookingResponse{
		ID:               resp.ID,
		UserID:           resp.UserID,
		StayID:           resp.StayID,
		TransportationID: resp.TransportationID,
		SightseeingIDs:   sightseeingIDs,
		NumberOfPeople:   resp.NumberOfPeople,
		NumberOfDays:     resp.NumberOfDays,
		CheckInDate:      types.NewDateString(resp.CheckInDate).String(),
		CheckOutDate:     types.NewDateString(resp.CheckOutDate).String(),
		Pricing: PricingResponse{
			StayTotal:           resp.Pricing.StayTotal,
			TransportationTotal: resp.Pricing.TransportationTotal,
			SightseeingTotal:    resp.Pricing.SightseeingTotal,
			GrandTotal:          resp.Pricing.GrandTotal,
		},
		Status:        resp.Status,
		PaymentStatus: resp.PaymentStatus,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
