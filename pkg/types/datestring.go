package types

import (
	"errors"
	"time"
)

// DateLayout формат календарной даты, используемый во всех HTTP моделях
const DateLayout = "2006-01-02"

// ErrInvalidDateString возвращается при некорректном формате даты
var ErrInvalidDateString = errors.New("invalid date string format, expected YYYY-MM-DD")

// DateString календарная дата в формате "YYYY-MM-DD" (без времени и зоны)
// Используется на границе HTTP для парсинга и форматирования дат
type DateString string

// NewDateString создает DateString из time.Time (время отбрасывается)
func NewDateString(t time.Time) DateString {
	return DateString(t.Format(DateLayout))
}

// NewDateStringFromString парсит строку и возвращает DateString
func NewDateStringFromString(s string) (DateString, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", ErrInvalidDateString
	}
	return DateString(s), nil
}

// IsZero возвращает true, если дата не задана
func (d DateString) IsZero() bool {
	return d == ""
}

// Validate проверяет формат даты
func (d DateString) Validate() error {
	if _, err := time.Parse(DateLayout, string(d)); err != nil {
		return ErrInvalidDateString
	}
	return nil
}

// Time возвращает дату как time.Time (00:00:00 UTC)
func (d DateString) Time() (time.Time, error) {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}, ErrInvalidDateString
	}
	return t, nil
}

// String возвращает строковое представление даты
func (d DateString) String() string {
	return string(d)
}
