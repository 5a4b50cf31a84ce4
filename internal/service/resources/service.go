package resources

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TTA-BookingService/internal/domain"
	resourceRepo "github.com/m04kA/TTA-BookingService/internal/infra/storage/resource"
	"github.com/m04kA/TTA-BookingService/internal/service/resources/models"
)

// Service сервис каталога ресурсов
// Чтение открыто всем, изменения доступны только администратору
type Service struct {
	resourceRepo ResourceRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(resourceRepo ResourceRepository, logger Logger) *Service {
	return &Service{
		resourceRepo: resourceRepo,
		logger:       logger,
	}
}

// Find ищет активные ресурсы по типу с опциональными фильтрами
func (s *Service) Find(ctx context.Context, req *models.FindResourcesRequest) (*models.ResourceListResponse, error) {
	if req.Type == nil {
		return nil, fmt.Errorf("%w: type is required", ErrInvalidInput)
	}

	resourceType := domain.ResourceType(*req.Type)
	if !resourceType.IsValid() {
		s.logger.Warn("Find: unknown resource type %q", *req.Type)
		return nil, fmt.Errorf("%w: unknown resource type %q", ErrInvalidInput, *req.Type)
	}

	s.logger.Info("Find: type=%s, location=%v, maxPrice=%v", resourceType, req.Location, req.MaxPrice)

	resources, err := s.resourceRepo.Find(ctx, domain.ResourceFilter{
		Type:     resourceType,
		Location: req.Location,
		MaxPrice: req.MaxPrice,
	})
	if err != nil {
		s.logger.Error("Find: repository error: %v", err)
		return nil, fmt.Errorf("%w: Find - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Find: found %d resources of type %s", len(resources), resourceType)
	return models.FromDomainResourceList(resources), nil
}

// Get получает ресурс по типу и ID
func (s *Service) Get(ctx context.Context, resourceType string, id int64) (*models.ResourceResponse, error) {
	rt := domain.ResourceType(resourceType)
	if !rt.IsValid() {
		s.logger.Warn("Get: unknown resource type %q", resourceType)
		return nil, fmt.Errorf("%w: unknown resource type %q", ErrInvalidInput, resourceType)
	}

	s.logger.Info("Get: fetching %s id=%d", rt, id)

	resource, err := s.getResource(ctx, rt, id, "Get")
	if err != nil {
		return nil, err
	}

	return models.FromDomainResource(resource), nil
}

// Create создает ресурс каталога
// Доступно только администратору
func (s *Service) Create(ctx context.Context, req *models.CreateResourceRequest, isAdmin bool) (*models.ResourceResponse, error) {
	if !isAdmin {
		return nil, ErrAccessDenied
	}

	resourceType := domain.ResourceType(req.Type)
	if !resourceType.IsValid() {
		s.logger.Warn("Create: unknown resource type %q", req.Type)
		return nil, fmt.Errorf("%w: unknown resource type %q", ErrInvalidInput, req.Type)
	}

	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if req.UnitPrice < 0 {
		return nil, fmt.Errorf("%w: unitPrice must not be negative", ErrInvalidInput)
	}

	if req.Capacity != nil && *req.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be at least 1", ErrInvalidInput)
	}

	dates, err := models.ParseDates(req.UnavailableDates)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Info("Create: type=%s, name=%q", resourceType, req.Name)

	created, err := s.resourceRepo.Create(ctx, &domain.Resource{
		Type:             resourceType,
		Name:             req.Name,
		Description:      req.Description,
		Location:         req.Location,
		UnitPrice:        req.UnitPrice,
		Capacity:         req.Capacity,
		IsActive:         true,
		UnavailableDates: dates,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created %s id=%d", created.Type, created.ID)
	return models.FromDomainResource(created), nil
}

// Update изменяет ресурс каталога, включая ручные блокировки дат
// Доступно только администратору
func (s *Service) Update(ctx context.Context, resourceType string, id int64, req *models.UpdateResourceRequest, isAdmin bool) (*models.ResourceResponse, error) {
	if !isAdmin {
		return nil, ErrAccessDenied
	}

	rt := domain.ResourceType(resourceType)
	if !rt.IsValid() {
		s.logger.Warn("Update: unknown resource type %q", resourceType)
		return nil, fmt.Errorf("%w: unknown resource type %q", ErrInvalidInput, resourceType)
	}

	s.logger.Info("Update: %s id=%d", rt, id)

	current, err := s.getResource(ctx, rt, id, "Update")
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		current.Name = *req.Name
	}
	if req.Description != nil {
		current.Description = req.Description
	}
	if req.Location != nil {
		current.Location = req.Location
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: unitPrice must not be negative", ErrInvalidInput)
		}
		current.UnitPrice = *req.UnitPrice
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, fmt.Errorf("%w: capacity must be at least 1", ErrInvalidInput)
		}
		current.Capacity = req.Capacity
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	if err := s.resourceRepo.Update(ctx, id, current); err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		s.logger.Error("Update: repository error for %s id=%d: %v", rt, id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// Ручные блокировки дат меняются отдельным запросом
	if req.UnavailableDates != nil {
		dates, err := models.ParseDates(req.UnavailableDates)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if err := s.resourceRepo.SetUnavailableDates(ctx, id, dates); err != nil {
			s.logger.Error("Update: failed to set unavailable dates for %s id=%d: %v", rt, id, err)
			return nil, fmt.Errorf("%w: Update - failed to set unavailable dates: %v", ErrInternal, err)
		}

		current.UnavailableDates = dates
	}

	s.logger.Info("Update: updated %s id=%d", rt, id)
	return models.FromDomainResource(current), nil
}

// Delete удаляет ресурс каталога
// Доступно только администратору. Существующие бронирования не трогаются:
// они хранят снимок цены и ссылаются на ресурс только по ID
func (s *Service) Delete(ctx context.Context, resourceType string, id int64, isAdmin bool) error {
	if !isAdmin {
		return ErrAccessDenied
	}

	rt := domain.ResourceType(resourceType)
	if !rt.IsValid() {
		s.logger.Warn("Delete: unknown resource type %q", resourceType)
		return fmt.Errorf("%w: unknown resource type %q", ErrInvalidInput, resourceType)
	}

	s.logger.Info("Delete: %s id=%d", rt, id)

	if _, err := s.getResource(ctx, rt, id, "Delete"); err != nil {
		return err
	}

	if err := s.resourceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		s.logger.Error("Delete: repository error for %s id=%d: %v", rt, id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted %s id=%d", rt, id)
	return nil
}

// getResource получает ресурс и нормализует ошибку отсутствия
func (s *Service) getResource(ctx context.Context, rt domain.ResourceType, id int64, op string) (*domain.Resource, error) {
	resource, err := s.resourceRepo.Get(ctx, rt, id)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("%s: %s id=%d not found", op, rt, id)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("%s: repository error for %s id=%d: %v", op, rt, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return resource, nil
}
