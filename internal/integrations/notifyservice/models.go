package notifyservice

// Event типы событий бронирования
const (
	EventBooked    = "booking.booked"
	EventCancelled = "booking.cancelled"
)

// Notification модель уведомления для NotifyService
type Notification struct {
	Event     string  `json:"event"`
	UserID    int64   `json:"user_id"`
	BookingID int64   `json:"booking_id"`
	CheckIn   string  `json:"check_in"`  // "2026-07-01"
	CheckOut  string  `json:"check_out"` // Исключительная граница
	Total     float64 `json:"total"`
	Reason    string  `json:"reason,omitempty"` // Причина отмены
}

// ErrorResponse модель ошибки от NotifyService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
