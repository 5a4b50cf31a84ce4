package tours

import (
	"context"
	"errors"
	"fmt"

	tourRepo "github.com/m04kA/TTA-BookingService/internal/infra/storage/tour"
	"github.com/m04kA/TTA-BookingService/internal/service/tours/models"
)

// Service сервис витрины готовых туров
type Service struct {
	tourRepo TourRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса туров
func NewService(tourRepo TourRepository, logger Logger) *Service {
	return &Service{
		tourRepo: tourRepo,
		logger:   logger,
	}
}

// List возвращает активные туры, отсортированные по цене
func (s *Service) List(ctx context.Context) (*models.TourPackageListResponse, error) {
	s.logger.Info("List: fetching active tour packages")

	tours, err := s.tourRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d active tour packages", len(tours))
	return models.FromDomainTourPackageList(tours), nil
}

// Get получает тур по ID
// Неактивный тур на витрине не показывается
func (s *Service) Get(ctx context.Context, id int64) (*models.TourPackageResponse, error) {
	s.logger.Info("Get: fetching tour package id=%d", id)

	tourPackage, err := s.tourRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, tourRepo.ErrTourPackageNotFound) {
			s.logger.Warn("Get: tour package id=%d not found", id)
			return nil, ErrTourPackageNotFound
		}
		s.logger.Error("Get: repository error for tour package id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	if !tourPackage.IsActive {
		s.logger.Warn("Get: tour package id=%d is inactive", id)
		return nil, ErrTourPackageNotFound
	}

	return models.FromDomainTourPackage(tourPackage), nil
}
