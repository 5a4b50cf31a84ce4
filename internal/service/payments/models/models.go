package models

// Request модели

// VerifyPaymentRequest запрос на верификацию платежа от шлюза
type VerifyPaymentRequest struct {
	UserID  int64 `json:"-"`
	IsAdmin bool  `json:"-"`

	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	// Signature hex-кодированный HMAC-SHA256 от "orderID|paymentID"
	Signature string `json:"signature"`
}

// Response модели

// PaymentOrderResponse ответ с созданным платежным ордером
type PaymentOrderResponse struct {
	BookingID int64   `json:"bookingId"`
	OrderID   string  `json:"orderId"`
	Amount    float64 `json:"amount"`
	KeyID     string  `json:"keyId,omitempty"`
}

// VerifyPaymentResponse ответ с результатом верификации
type VerifyPaymentResponse struct {
	BookingID     int64  `json:"bookingId"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
}
