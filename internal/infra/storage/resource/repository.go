package resource

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/TTA-BookingService/internal/domain"
	"github.com/m04kA/TTA-BookingService/pkg/dbmetrics"
	"github.com/m04kA/TTA-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий каталога ресурсов (stay / transportation / sightseeing / airport_transfer)
// Единственные писатели - административные операции; поток бронирования только читает
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Find возвращает активные ресурсы указанного типа, отсортированные по цене (ASC)
func (r *Repository) Find(ctx context.Context, filter domain.ResourceFilter) ([]*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"type",
		"name",
		"description",
		"location",
		"unit_price",
		"capacity",
		"is_active",
		"unavailable_dates",
		"created_at",
		"updated_at",
	).
		From("resources").
		Where(squirrel.Eq{"type": filter.Type}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("unit_price ASC")

	// Фильтрация по локации (если указана)
	if filter.Location != nil {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"location": "%" + *filter.Location + "%"})
	}

	// Верхняя граница цены (если указана)
	if filter.MaxPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"unit_price": *filter.MaxPrice})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Find - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Find - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanResources(rows)
}

// Get получает ресурс по типу и ID (включая неактивные)
// Поток доступности трактует неактивный ресурс как отсутствующий на своем уровне
func (r *Repository) Get(ctx context.Context, resourceType domain.ResourceType, id int64) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"type",
		"name",
		"description",
		"location",
		"unit_price",
		"capacity",
		"is_active",
		"unavailable_dates",
		"created_at",
		"updated_at",
	).
		From("resources").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"type": resourceType}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	resource, err := r.scanResource(row)
	if err == sql.ErrNoRows {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan resource: %v", ErrScanRow, err)
	}

	return resource, nil
}

// GetMany получает несколько ресурсов одного типа по списку ID
// Порядок результата соответствует порядку запрошенных ID; отсутствие любого
// из ресурсов возвращает ErrResourceNotFound
func (r *Repository) GetMany(ctx context.Context, resourceType domain.ResourceType, ids []int64) ([]*domain.Resource, error) {
	if len(ids) == 0 {
		return []*domain.Resource{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"type",
		"name",
		"description",
		"location",
		"unit_price",
		"capacity",
		"is_active",
		"unavailable_dates",
		"created_at",
		"updated_at",
	).
		From("resources").
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"type": resourceType}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetMany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetMany - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	found, err := r.scanResources(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*domain.Resource, len(found))
	for _, res := range found {
		byID[res.ID] = res
	}

	ordered := make([]*domain.Resource, 0, len(ids))
	for _, id := range ids {
		res, ok := byID[id]
		if !ok {
			return nil, ErrResourceNotFound
		}
		ordered = append(ordered, res)
	}

	return ordered, nil
}

// Create создает новый ресурс (административная операция)
func (r *Repository) Create(ctx context.Context, resource *domain.Resource) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("resources").
		Columns(
			"type",
			"name",
			"description",
			"location",
			"unit_price",
			"capacity",
			"is_active",
			"unavailable_dates",
		).
		Values(
			resource.Type,
			resource.Name,
			resource.Description,
			resource.Location,
			resource.UnitPrice,
			resource.Capacity,
			resource.IsActive,
			pq.Array(resource.UnavailableDates),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&resource.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	resource.CreatedAt = createdAt.Time
	resource.UpdatedAt = updatedAt.Time

	return resource, nil
}

// Update обновляет ресурс (административная операция)
func (r *Repository) Update(ctx context.Context, id int64, resource *domain.Resource) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("resources").
		Set("name", resource.Name).
		Set("description", resource.Description).
		Set("location", resource.Location).
		Set("unit_price", resource.UnitPrice).
		Set("capacity", resource.Capacity).
		Set("is_active", resource.IsActive).
		Set("unavailable_dates", pq.Array(resource.UnavailableDates)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrResourceNotFound
	}

	return nil
}

// SetUnavailableDates заменяет список заблокированных дат ресурса (административная операция)
func (r *Repository) SetUnavailableDates(ctx context.Context, id int64, dates []time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("resources").
		Set("unavailable_dates", pq.Array(dates)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetUnavailableDates - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetUnavailableDates - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetUnavailableDates - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrResourceNotFound
	}

	return nil
}

// Delete удаляет ресурс (административная операция, использовать осторожно)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrResourceNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanResource сканирует одну строку ресурса
func (r *Repository) scanResource(row rowScanner) (*domain.Resource, error) {
	var resource domain.Resource
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&resource.ID,
		&resource.Type,
		&resource.Name,
		&resource.Description,
		&resource.Location,
		&resource.UnitPrice,
		&resource.Capacity,
		&resource.IsActive,
		pq.Array(&resource.UnavailableDates),
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	resource.CreatedAt = createdAt.Time
	resource.UpdatedAt = updatedAt.Time

	return &resource, nil
}

// scanResources сканирует результаты запроса в слайс ресурсов
func (r *Repository) scanResources(rows *sql.Rows) ([]*domain.Resource, error) {
	resources := make([]*domain.Resource, 0)

	for rows.Next() {
		resource, err := r.scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanResources - scan row: %v", ErrScanRow, err)
		}
		resources = append(resources, resource)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanResources - rows error: %v", ErrScanRow, err)
	}

	return resources, nil
}
