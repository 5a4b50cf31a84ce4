package tour

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/TTA-BookingService/internal/domain"
	"github.com/m04kA/TTA-BookingService/pkg/dbmetrics"
	"github.com/m04kA/TTA-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий каталога готовых туров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория туров
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActive возвращает активные туры, отсортированные по цене (ASC)
func (r *Repository) ListActive(ctx context.Context) ([]*domain.TourPackage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectTours().
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("flat_price ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tours := make([]*domain.TourPackage, 0)

	for rows.Next() {
		tourPackage, err := r.scanTour(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		tours = append(tours, tourPackage)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return tours, nil
}

// GetByID получает тур по ID (включая неактивные)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TourPackage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectTours().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	tourPackage, err := r.scanTour(row)
	if err == sql.ErrNoRows {
		return nil, ErrTourPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan tour: %v", ErrScanRow, err)
	}

	return tourPackage, nil
}

func (r *Repository) selectTours() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"name",
		"description",
		"stay_id",
		"transportation_id",
		"sightseeing_ids",
		"flat_price",
		"duration_days",
		"is_active",
		"created_at",
		"updated_at",
	).From("tour_packages")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanTour(row rowScanner) (*domain.TourPackage, error) {
	var tourPackage domain.TourPackage
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&tourPackage.ID,
		&tourPackage.Name,
		&tourPackage.Description,
		&tourPackage.StayID,
		&tourPackage.TransportationID,
		pq.Array(&tourPackage.SightseeingIDs),
		&tourPackage.FlatPrice,
		&tourPackage.DurationDays,
		&tourPackage.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	tourPackage.CreatedAt = createdAt.Time
	tourPackage.UpdatedAt = updatedAt.Time

	return &tourPackage, nil
}
