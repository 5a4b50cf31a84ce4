package booking

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

// Repository репозиторий для работы с бронированиями (trip packages)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Capacity-consuming создание всегда должно идти внутри сериализуемой транзакции,
// чтобы проверка доступности и вставка были атомарными.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"stay_id",
			"transportation_id",
			"sightseeing_ids",
			"number_of_people",
			"number_of_days",
			"check_in_date",
			"check_out_date",
			"stay_total",
			"transportation_total",
			"sightseeing_total",
			"grand_total",
			"status",
			"payment_status",
			"tour_package_id",
		).
		Values(
			booking.UserID,
			booking.StayID,
			booking.TransportationID,
			pq.Array(booking.SightseeingIDs),
			booking.NumberOfPeople,
			booking.NumberOfDays,
			booking.CheckInDate,
			booking.CheckOutDate,
			booking.Pricing.StayTotal,
			booking.Pricing.TransportationTotal,
			booking.Pricing.SightseeingTotal,
			booking.Pricing.GrandTotal,
			booking.Status,
			booking.PaymentStatus,
			booking.TourPackageID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.selectBookings().Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку: транзишены статуса должны видеть
	// актуальное состояние до записи
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	booking, err := r.scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUser получает список бронирований пользователя
// Опционально фильтрует по статусу; сортировка - сначала новые
func (r *Repository) GetByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.selectBookings().
		Where(squirrel.Eq{"user_id": filter.UserID}).
		OrderBy("check_in_date DESC, id DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountOverlappingForStay подсчитывает capacity-consuming бронирования выбранного
// размещения, пересекающиеся с полуоткрытым диапазоном [checkIn, checkOut)
// excludeBookingID исключает собственное бронирование при редактировании/оплате
func (r *Repository) CountOverlappingForStay(ctx context.Context, stayID int64, rng domain.DateRange, excludeBookingID *int64) (int, error) {
	return r.countOverlapping(ctx, "stay_id", stayID, rng, excludeBookingID)
}

// CountOverlappingForTransportation подсчитывает capacity-consuming бронирования
// выбранного транспорта, пересекающиеся с диапазоном
func (r *Repository) CountOverlappingForTransportation(ctx context.Context, transportationID int64, rng domain.DateRange, excludeBookingID *int64) (int, error) {
	return r.countOverlapping(ctx, "transportation_id", transportationID, rng, excludeBookingID)
}

// countOverlapping общий подсчет пересечений по интервальному тесту:
// existing.check_in < new.check_out AND existing.check_out > new.check_in
// Внутри транзакции строки выбираются с FOR UPDATE, чтобы конкурирующие
// создания сериализовались на одних и тех же строках
func (r *Repository) countOverlapping(ctx context.Context, column string, resourceID int64, rng domain.DateRange, excludeBookingID *int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From("bookings").
		Where(squirrel.Eq{column: resourceID}).
		Where(squirrel.Eq{"status": domain.CapacityConsumingStatusStrings()}).
		Where(squirrel.Lt{"check_in_date": rng.CheckOut}).
		Where(squirrel.Gt{"check_out_date": rng.CheckIn})

	if excludeBookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeBookingID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: countOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: countOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("%w: countOverlapping - scan id: %v", ErrScanRow, err)
		}
		count++
	}

	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: countOverlapping - rows error: %v", ErrScanRow, err)
	}

	return count, nil
}

// SumSightseeingGuestsOnDay возвращает суммарное число гостей по всем
// capacity-consuming бронированиям, включающим экскурсию и занимающим
// календарный день day. Вместимость экскурсий посуточная, поэтому сумма
// считается отдельно для каждого дня диапазона.
func (r *Repository) SumSightseeingGuestsOnDay(ctx context.Context, sightseeingID int64, day time.Time, excludeBookingID *int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Бронирование занимает день d, если check_in <= d < check_out
	nextDay := day.AddDate(0, 0, 1)

	selectBuilder := psqlbuilder.Select("COALESCE(SUM(number_of_people), 0)").
		From("bookings").
		Where(squirrel.Expr("? = ANY(sightseeing_ids)", sightseeingID)).
		Where(squirrel.Eq{"status": domain.CapacityConsumingStatusStrings()}).
		Where(squirrel.Lt{"check_in_date": nextDay}).
		Where(squirrel.Gt{"check_out_date": day})

	if excludeBookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeBookingID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SumSightseeingGuestsOnDay - build select query: %v", ErrBuildQuery, err)
	}

	var sum int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("%w: SumSightseeingGuestsOnDay - scan sum: %v", ErrScanRow, err)
	}

	return sum, nil
}

// Update обновляет редактируемые поля черновика (состав, даты, гости, цены)
func (r *Repository) Update(ctx context.Context, id int64, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("stay_id", booking.StayID).
		Set("transportation_id", booking.TransportationID).
		Set("sightseeing_ids", pq.Array(booking.SightseeingIDs)).
		Set("number_of_people", booking.NumberOfPeople).
		Set("number_of_days", booking.NumberOfDays).
		Set("check_in_date", booking.CheckInDate).
		Set("check_out_date", booking.CheckOutDate).
		Set("stay_total", booking.Pricing.StayTotal).
		Set("transportation_total", booking.Pricing.TransportationTotal).
		Set("sightseeing_total", booking.Pricing.SightseeingTotal).
		Set("grand_total", booking.Pricing.GrandTotal).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	booking.ID = id
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// SetPaymentOrder записывает идентификатор платежного ордера
func (r *Repository) SetPaymentOrder(ctx context.Context, id int64, orderID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_order_id", orderID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPaymentOrder - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetPaymentOrder")
}

// SetPaymentResult фиксирует результат верификации платежа:
// статус бронирования, платежный статус и идентификатор платежа
func (r *Repository) SetPaymentResult(ctx context.Context, id int64, status domain.BookingStatus, paymentStatus domain.PaymentStatus, paymentID *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("payment_status", paymentStatus).
		Set("payment_id", paymentID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPaymentResult - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetPaymentResult")
}

// SetPaymentStatus обновляет только платежный статус (refund)
func (r *Repository) SetPaymentStatus(ctx context.Context, id int64, paymentStatus domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_status", paymentStatus).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPaymentStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetPaymentStatus")
}

// Cancel отменяет бронирование с указанием причины
// Отмененные бронирования исключены из capacity-consuming набора, поэтому
// отмена освобождает вместимость без дополнительных действий
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// EarlyCheckout сокращает диапазон проживания и переводит бронирование в completed
// Освобождает вместимость на оставшиеся дни исходного диапазона
func (r *Repository) EarlyCheckout(ctx context.Context, id int64, newCheckOut time.Time, newNumberOfDays int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("check_out_date", newCheckOut).
		Set("number_of_days", newNumberOfDays).
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: EarlyCheckout - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "EarlyCheckout")
}

// Delete удаляет бронирование (физическое удаление, только для администратора)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Delete")
}

// execExpectingRow выполняет запрос и возвращает ErrBookingNotFound, если ни
// одна строка не была затронута
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// selectBookings общий SELECT builder со всеми колонками бронирования
func (r *Repository) selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"user_id",
		"stay_id",
		"transportation_id",
		"sightseeing_ids",
		"number_of_people",
		"number_of_days",
		"check_in_date",
		"check_out_date",
		"stay_total",
		"transportation_total",
		"sightseeing_total",
		"grand_total",
		"status",
		"payment_status",
		"payment_order_id",
		"payment_id",
		"tour_package_id",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).From("bookings")
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку бронирования
func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.StayID,
		&booking.TransportationID,
		pq.Array(&booking.SightseeingIDs),
		&booking.NumberOfPeople,
		&booking.NumberOfDays,
		&booking.CheckInDate,
		&booking.CheckOutDate,
		&booking.Pricing.StayTotal,
		&booking.Pricing.TransportationTotal,
		&booking.Pricing.SightseeingTotal,
		&booking.Pricing.GrandTotal,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PaymentOrderID,
		&booking.PaymentID,
		&booking.TourPackageID,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
