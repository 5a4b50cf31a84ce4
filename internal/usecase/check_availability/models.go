package check_availability

import (
	"time"

	"github.com/m04kA/TTA-BookingService/internal/domain"
)

// Request модель запроса на проверку доступности
type Request struct {
	StayID           int64     // ID размещения (обязательно)
	TransportationID *int64    // ID транспорта (опционально)
	SightseeingIDs   []int64   // ID экскурсий (может быть пустым)
	CheckIn          time.Time // Дата заезда
	CheckOut         time.Time // Дата выезда (исключительная граница)
	NumberOfPeople   int       // Количество гостей

	// ExcludeBookingID исключает бронирование из подсчетов пересечений.
	// Используется при ре-валидации бронирования против самого себя
	// (редактирование черновика, верификация оплаты).
	ExcludeBookingID *int64
}

// Result результат проверки доступности
// Отказ (Available=false) - ожидаемый бизнес-результат, а не ошибка:
// ошибки возвращаются только для некорректного ввода и отказов инфраструктуры
type Result struct {
	Available bool
	// Reason человекочитаемая причина отказа с именем ресурса
	// (для экскурсий - также конкретная перегруженная дата)
	Reason string
	// DeniedType тип ресурса, вызвавшего отказ (для метрик)
	DeniedType domain.ResourceType
}

// Range возвращает полуоткрытый диапазон дат запроса
func (r *Request) Range() domain.DateRange {
	return domain.NewDateRange(r.CheckIn, r.CheckOut)
}

func available() *Result {
	return &Result{Available: true}
}

func denied(resourceType domain.ResourceType, reason string) *Result {
	return &Result{Available: false, Reason: reason, DeniedType: resourceType}
}
