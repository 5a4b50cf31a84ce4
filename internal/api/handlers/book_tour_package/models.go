package book_tour_package

import (
	"time"

	bookTourPackage "github.com/m04kA/TTA-BookingService/internal/usecase/book_tour_package"
	"github.com/m04kA/TTA-BookingService/pkg/types"
)

// BookTourPackageRequest HTTP request model
// Дата выезда определяется длительностью тура
type BookTourPackageRequest struct {
	CheckIn        string `json:"checkIn"` // "2026-07-01"
	NumberOfPeople int    `json:"numberOfPeople"`
}

// PricingResponse стоимость тура
type PricingResponse struct {
	GrandTotal float64 `json:"grandTotal"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64           `json:"id"`
	UserID           int64           `json:"userId"`
	TourPackageID    int64           `json:"tourPackageId"`
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
func (r *BookTourPackageRequest) ToUseCaseRequest(tourID, userID int64) (*bookTourPackage.Request, error) {
	checkIn, err := types.DateString(r.CheckIn).Time()
	if err != nil {
		return nil, err
	}

	return &bookTourPackage.Request{
		TourPackageID:  tourID,
		UserID:         userID,
		CheckIn:        checkIn,
		NumberOfPeople: r.NumberOfPeople,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookTourPackage.Response) *BookingResponse {
	sightseeingIDs := resp.SightseeingIDs
	if sightseeingIDs == nil {
		sightseeingIDs = []int64{}
	}

	return &BookingResponse{
		ID:               resp.ID,
		UserID:           resp.UserID,
		TourPackageID:    resp.TourPackageID,
		StayID:           resp.StayID,
		TransportationID: resp.TransportationID,
		SightseeingIDs:   sightseeingIDs,
		NumberOfPeople:   resp.NumberOfPeople,
		NumberOfDays:     resp.NumberOfDays,
		CheckInDate:      types.NewDateString(resp.CheckInDate).String(),
		CheckOutDate:     types.NewDateString(resp.CheckOutDate).String(),
		Pricing: PricingResponse{
			GrandTotal: resp.Pricing.GrandTotal,
		},
		Status:        resp.Status,
		PaymentStatus: resp.PaymentStatus,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
