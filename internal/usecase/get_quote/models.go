package get_quote

import (
	"time"

	"github.com/m04kA/TTA-BookingService/internal/domain"
)

// Request модель запроса на расчет стоимости пакета
type Request struct {
	StayID           int64     // ID размещения (обязательно)
	TransportationID *int64    // ID транспорта (опционально)
	SightseeingIDs   []int64   // ID экскурсий (может быть пустым)
	CheckIn          time.Time // Дата заезда
	CheckOut         time.Time // Дата выезда (исключительная граница)
	NumberOfPeople   int       // Количество гостей
}

// Response модель ответа с котировкой
// Котировка справочная: цена и доступность актуальны на момент запроса
// и не резервируют вместимость
type Response struct {
	Available bool
	// Reason причина отказа, заполнена при Available=false
	Reason string

	NumberOfDays int

	// Pricing заполнен при Available=true
	Pricing *domain.Pricing
}
