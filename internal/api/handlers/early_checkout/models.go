package early_checkout

import "github.com/m04kA/TTA-BookingService/pkg/types"

// EarlyCheckoutRequest HTTP request model
type EarlyCheckoutRequest struct {
	// NewCheckOut новая дата выезда в формате "2006-01-02"
	NewCheckOut types.DateString `json:"newCheckOut"`
}
