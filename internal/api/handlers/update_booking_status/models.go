package update_booking_status

// UpdateStatusRequest HTTP request model
// Допустимые значения: confirmed, completed
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
