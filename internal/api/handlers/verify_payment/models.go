package verify_payment

import "github.com/m04kA/TTA-BookingService/internal/service/payments/models"

// VerifyPaymentRequest HTTP request model
type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

// ToServiceRequest конвертирует HTTP модель в модель сервиса
func (r *VerifyPaymentRequest) ToServiceRequest(userID int64, isAdmin bool) *models.VerifyPaymentRequest {
	return &models.VerifyPaymentRequest{
		UserID:    userID,
		IsAdmin:   isAdmin,
		OrderID:   r.OrderID,
		PaymentID: r.PaymentID,
		Signature: r.Signature,
	}
}
