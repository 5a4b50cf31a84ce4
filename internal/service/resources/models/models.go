package models

import (
	"time"

	"github.com/m04kA/TTA-BookingService/internal/domain"
	"github.com/m04kA/TTA-BookingService/pkg/types"
)

// Request модели

// FindResourcesRequest запрос на поиск ресурсов каталога
type FindResourcesRequest struct {
	Type     *string  `json:"type,omitempty"`
	Location *string  `json:"location,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`
}

// CreateResourceRequest запрос на создание ресурса (администратор)
type CreateResourceRequest struct {
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	UnitPrice   float64 `json:"unitPrice"`
	// Capacity nil означает вместимость по умолчанию для типа
	Capacity         *int               `json:"capacity,omitempty"`
	UnavailableDates []types.DateString `json:"unavailableDates,omitempty"`
}

// UpdateResourceRequest запрос на изменение ресурса (администратор)
// nil-поля означают "оставить как есть"
type UpdateResourceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Location    *string  `json:"location,omitempty"`
	UnitPrice   *float64 `json:"unitPrice,omitempty"`
	Capacity    *int     `json:"capacity,omitempty"`
	IsActive    *bool    `json:"isActive,omitempty"`
	// UnavailableDates nil - не менять, пустой срез - снять все блокировки
	UnavailableDates []types.DateString `json:"unavailableDates,omitempty"`
}

// Response модели

// ResourceResponse ответ с данными ресурса
type ResourceResponse struct {
	ID          int64   `json:"id"`
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	UnitPrice   float64 `json:"unitPrice"`
	// Capacity эффективная вместимость с учетом дефолта типа
	Capacity         int                `json:"capacity"`
	IsActive         bool               `json:"isActive"`
	UnavailableDates []types.DateString `json:"unavailableDates"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ResourceListResponse ответ со списком ресурсов
type ResourceListResponse struct {
	Resources []ResourceResponse `json:"resources"`
}

// Методы конвертации

// FromDomainResource конвертирует domain модель в DTO
func FromDomainResource(r *domain.Resource) *ResourceResponse {
	if r == nil {
		return nil
	}

	dates := make([]types.DateString, 0, len(r.UnavailableDates))
	for _, d := range r.UnavailableDates {
		dates = append(dates, types.NewDateString(d))
	}

	return &ResourceResponse{
		ID:               r.ID,
		Type:             string(r.Type),
		Name:             r.Name,
		Description:      r.Description,
		Location:         r.Location,
		UnitPrice:        r.UnitPrice,
		Capacity:         r.EffectiveCapacity(),
		IsActive:         r.IsActive,
		UnavailableDates: dates,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// FromDomainResourceList конвертирует список domain моделей в DTO
func FromDomainResourceList(resources []*domain.Resource) *ResourceListResponse {
	resp := &ResourceListResponse{
		Resources: make([]ResourceResponse, 0, len(resources)),
	}

	for _, r := range resources {
		if rr := FromDomainResource(r); rr != nil {
			resp.Resources = append(resp.Resources, *rr)
		}
	}

	return resp
}

// ParseDates конвертирует даты DTO в time.Time
func ParseDates(dates []types.DateString) ([]time.Time, error) {
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		t, err := d.Time()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
