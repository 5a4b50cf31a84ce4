package models

import (
	"errors"
	"time"

	"github.com/m04kA/TTA-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	IsAdmin            bool   `json:"-"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на админский перевод статуса
type UpdateStatusRequest struct {
	UserID  int64  `json:"userId"`
	IsAdmin bool   `json:"-"`
	Status  string `json:"status"`
}

// EarlyCheckoutRequest запрос на досрочный выезд
type EarlyCheckoutRequest struct {
	UserID      int64     `json:"userId"`
	IsAdmin     bool      `json:"-"`
	NewCheckOut time.Time `json:"newCheckOut"`
}

// Response модели

// PricingResponse разбивка стоимости пакета
type PricingResponse struct {
	StayTotal           float64 `json:"stayTotal"`
	TransportationTotal float64 `json:"transportationTotal"`
	SightseeingTotal    float64 `json:"sightseeingTotal"`
	GrandTotal          float64 `json:"grandTotal"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"userId"`

	StayID           int64   `json:"stayId"`
	TransportationID *int64  `json:"transportationId,omitempty"`
	SightseeingIDs   []int64 `json:"sightseeingIds"`

	NumberOfPeople int    `json:"numberOfPeople"`
	NumberOfDays   int    `json:"numberOfDays"`
	CheckInDate    string `json:"checkInDate"`  // "2026-07-01"
	CheckOutDate   string `json:"checkOutDate"` // Исключительная граница

	Pricing PricingResponse `json:"pricing"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	PaymentOrderID *string `json:"paymentOrderId,omitempty"`

	TourPackageID *int64 `json:"tourPackageId,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:               b.ID,
		UserID:           b.UserID,
		StayID:           b.StayID,
		TransportationID: b.TransportationID,
		SightseeingIDs:   b.SightseeingIDs,
		NumberOfPeople:   b.NumberOfPeople,
		NumberOfDays:     b.NumberOfDays,
		CheckInDate:      b.CheckInDate.Format(domain.DateFormat),
		CheckOutDate:     b.CheckOutDate.Format(domain.DateFormat),
		Pricing: PricingResponse{
			StayTotal:           b.Pricing.StayTotal,
			TransportationTotal: b.Pricing.TransportationTotal,
			SightseeingTotal:    b.Pricing.SightseeingTotal,
			GrandTotal:          b.Pricing.GrandTotal,
		},
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		PaymentOrderID:     b.PaymentOrderID,
		TourPackageID:      b.TourPackageID,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if resp.SightseeingIDs == nil {
		resp.SightseeingIDs = []int64{}
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusDraft,
		domain.StatusBooked,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
