package models

import (
	"time"

	"github.com/m04kA/TTA-BookingService/internal/domain"
)

// TourPackageResponse ответ с данными тура
type TourPackageResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`

	StayID           int64   `json:"stayId"`
	TransportationID *int64  `json:"transportationId,omitempty"`
	SightseeingIDs   []int64 `json:"sightseeingIds"`

	FlatPrice    float64 `json:"flatPrice"`
	DurationDays int     `json:"durationDays"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TourPackageListResponse ответ со списком туров
type TourPackageListResponse struct {
	TourPackages []TourPackageResponse `json:"tourPackages"`
}

// FromDomainTourPackage конвертирует domain модель в DTO
func FromDomainTourPackage(t *domain.TourPackage) *TourPackageResponse {
	if t == nil {
		return nil
	}

	resp := &TourPackageResponse{
		ID:               t.ID,
		Name:             t.Name,
		Description:      t.Description,
		StayID:           t.StayID,
		TransportationID: t.TransportationID,
		SightseeingIDs:   t.SightseeingIDs,
		FlatPrice:        t.FlatPrice,
		DurationDays:     t.DurationDays,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}

	if resp.SightseeingIDs == nil {
		resp.SightseeingIDs = []int64{}
	}

	return resp
}

// FromDomainTourPackageList конвертирует список domain моделей в DTO
func FromDomainTourPackageList(tours []*domain.TourPackage) *TourPackageListResponse {
	resp := &TourPackageListResponse{
		TourPackages: make([]TourPackageResponse, 0, len(tours)),
	}

	for _, t := range tours {
		if tr := FromDomainTourPackage(t); tr != nil {
			resp.TourPackages = append(resp.TourPackages, *tr)
		}
	}

	return resp
}
