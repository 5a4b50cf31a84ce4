package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TTA-BookingService/internal/domain"
	"github.com/m04kA/TTA-BookingService/internal/service/payments/models"
	"github.com/m04kA/TTA-BookingService/internal/usecase/check_availability"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	booking *domain.Booking

	paymentStatusSet *domain.PaymentStatus
	resultStatus     *domain.BookingStatus
	resultPayment    *domain.PaymentStatus
	resultPaymentID  *string
	orderSet         *string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	copied := *f.booking
	return &copied, nil
}

func (f *fakeBookingRepo) SetPaymentOrder(_ context.Context, _ int64, orderID string) error {
	f.orderSet = &orderID
	return nil
}

func (f *fakeBookingRepo) SetPaymentResult(_ context.Context, _ int64, status domain.BookingStatus, payment domain.PaymentStatus, paymentID *string) error {
	f.resultStatus = &status
	f.resultPayment = &payment
	f.resultPaymentID = paymentID
	return nil
}

func (f *fakeBookingRepo) SetPaymentStatus(_ context.Context, _ int64, status domain.PaymentStatus) error {
	f.paymentStatusSet = &status
	return nil
}

type fakeAvailability struct {
	result  *check_availability.Result
	lastReq *check_availability.Request
}

func (f *fakeAvailability) Execute(_ context.Context, req *check_availability.Request) (*check_availability.Result, error) {
	f.lastReq = req
	return f.result, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	testKeyID  = "key_test"
	testSecret = "super-secret"
)

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func strPtr(s string) *string { return &s }

func bookedBooking() *domain.Booking {
	return &domain.Booking{
		ID:             10,
		UserID:         7,
		StayID:         1,
		NumberOfPeople: 2,
		CheckInDate:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate:   time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC),
		Pricing:        domain.Pricing{GrandTotal: 610},
		Status:         domain.StatusBooked,
		PaymentStatus:  domain.PaymentPending,
		PaymentOrderID: strPtr("order-1"),
	}
}

type env struct {
	svc          *Service
	repo         *fakeBookingRepo
	availability *fakeAvailability
}

func newTestEnv(testMode bool) *env {
	repo := &fakeBookingRepo{booking: bookedBooking()}
	availability := &fakeAvailability{result: &check_availability.Result{Available: true}}
	svc := NewService(repo, availability, fakeTxManager{}, nil, nopLogger{}, testKeyID, testSecret, testMode)
	return &env{svc: svc, repo: repo, availability: availability}
}

func verifyRequest(signature string) *models.VerifyPaymentRequest {
	return &models.VerifyPaymentRequest{
		UserID:    7,
		OrderID:   "order-1",
		PaymentID: "pay-1",
		Signature: signature,
	}
}

// CreateOrder

func TestCreateOrder_IssuesOrderForBookedBooking(t *testing.T) {
	e := newTestEnv(false)
	e.repo.booking.PaymentOrderID = nil

	resp, err := e.svc.CreateOrder(context.Background(), 10, 7, false)

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.BookingID)
	assert.NotEmpty(t, resp.OrderID)
	assert.Equal(t, 610.0, resp.Amount)
	assert.Equal(t, testKeyID, resp.KeyID)

	require.NotNil(t, e.repo.orderSet)
	assert.Equal(t, resp.OrderID, *e.repo.orderSet)
}

func TestCreateOrder_DraftIsNotPayable(t *testing.T) {
	e := newTestEnv(false)
	e.repo.booking.Status = domain.StatusDraft

	_, err := e.svc.CreateOrder(context.Background(), 10, 7, false)

	assert.ErrorIs(t, err, ErrNotPayable)
}

func TestCreateOrder_PaidBookingRejected(t *testing.T) {
	e := newTestEnv(false)
	e.repo.booking.PaymentStatus = domain.PaymentPaid

	_, err := e.svc.CreateOrder(context.Background(), 10, 7, false)

	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestCreateOrder_ForeignBookingDenied(t *testing.T) {
	e := newTestEnv(false)

	_, err := e.svc.CreateOrder(context.Background(), 10, 999, false)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

// VerifyPayment

func TestVerifyPayment_ValidSignatureMarksPaid(t *testing.T) {
	e := newTestEnv(false)

	resp, err := e.svc.VerifyPayment(context.Background(), 10, verifyRequest(sign("order-1", "pay-1", testSecret)))

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusBooked), resp.Status)
	assert.Equal(t, string(domain.PaymentPaid), resp.PaymentStatus)

	// Оплата не подтверждает бронирование: confirmed выставляет только
	// администратор отдельным переходом
	require.NotNil(t, e.repo.resultStatus)
	assert.Equal(t, domain.StatusBooked, *e.repo.resultStatus)
	assert.Equal(t, domain.PaymentPaid, *e.repo.resultPayment)
	require.NotNil(t, e.repo.resultPaymentID)
	assert.Equal(t, "pay-1", *e.repo.resultPaymentID)
}

func TestVerifyPayment_PaidBookingRemainsConfirmable(t *testing.T) {
	e := newTestEnv(false)

	_, err := e.svc.VerifyPayment(context.Background(), 10, verifyRequest(sign("order-1", "pay-1", testSecret)))
	require.NoError(t, err)

	booking := *e.repo.booking
	booking.Status = *e.repo.resultStatus
	booking.PaymentStatus = *e.repo.resultPayment
	assert.True(t, booking.CanBeConfirmed())
}

func TestVerifyPayment_InvalidSignatureMarksFailed(t *testing.T) {
	e := newTestEnv(false)

	_, err := e.svc.VerifyPayment(context.Background(), 10, verifyRequest("deadbeef"))

	assert.ErrorIs(t, err, ErrInvalidSignature)

	// Оплата помечена failed, статус бронирования не менялся
	require.NotNil(t, e.repo.paymentStatusSet)
	assert.Equal(t, domain.PaymentFailed, *e.repo.paymentStatusSet)
	assert.Nil(t, e.repo.resultStatus)
}

func TestVerifyPayment_SignatureForOtherKeyRejected(t *testing.T) {
	e := newTestEnv(false)

	_, err := e.svc.VerifyPayment(context.Background(), 10, verifyRequest(sign("order-1", "pay-1", "wrong-secret")))

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyPayment_OrderMismatch(t *testing.T) {
	e := newTestEnv(false)

	req := verifyRequest(sign("order-2", "pay-1", testSecret))
	req.OrderID = "order-2"

	_, err := e.svc.VerifyPayment(context.Background(), 10, req)

	assert.ErrorIs(t, err, ErrOrderMismatch)
}

func TestVerifyPayment_NoOrderIssued(t *testing.T) {
	e := newTestEnv(false)
	e.repo.booking.PaymentOrderID = nil

	_, err := e.svc.VerifyPayment(context.Background(), 10, verifyRequest(sign("order-1", "pay-1", testSecret)))

	assert.ErrorIs(t, err, ErrNoPaymentOrder)
}

func TestVerifyPayment_CapacityLostKeepsBookingUntouched(t *testing.T) {
	e := newTestEnv(false)
	e.availability.result = &check_availability.Result{
		Available: false,
		Reason:    "размещение занято",
	}

	_, err := e.svc.VerifyPayment(context.Background(), 10, verifyRequest(sign("order-1", "pay-1", testSecret)))

	assert.ErrorIs(t, err, ErrNotAvailable)

	var capacityErr *CapacityError
	require.ErrorAs(t, err, &capacityErr)
	assert.Equal(t, "размещение занято", capacityErr.Reason)

	// Ни статус, ни оплата не менялись
	assert.Nil(t, e.repo.resultStatus)
	assert.Nil(t, e.repo.paymentStatusSet)
}

func TestVerifyPayment_RecheckExcludesOwnBooking(t *testing.T) {
	e := newTestEnv(false)

	_, err := e.svc.VerifyPayment(context.Background(), 10, verifyRequest(sign("order-1", "pay-1", testSecret)))

	require.NoError(t, err)
	require.NotNil(t, e.availability.lastReq)
	require.NotNil(t, e.availability.lastReq.ExcludeBookingID)
	assert.Equal(t, int64(10), *e.availability.lastReq.ExcludeBookingID)
}

func TestVerifyPayment_TestModeBypassesSignatureOnly(t *testing.T) {
	e := newTestEnv(true)

	// Любая подпись проходит в test mode
	resp, err := e.svc.VerifyPayment(context.Background(), 10, verifyRequest("whatever"))

	require.NoError(t, err)
	assert.Equal(t, string(domain.PaymentPaid), resp.PaymentStatus)
}

func TestVerifyPayment_TestModeStillChecksAvailability(t *testing.T) {
	e := newTestEnv(true)
	e.availability.result = &check_availability.Result{Available: false, Reason: "занято"}

	_, err := e.svc.VerifyPayment(context.Background(), 10, verifyRequest("whatever"))

	// TestMode обходит только подпись, не доступность
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestVerifyPayment_AlreadyPaid(t *testing.T) {
	e := newTestEnv(false)
	e.repo.booking.PaymentStatus = domain.PaymentPaid

	_, err := e.svc.VerifyPayment(context.Background(), 10, verifyRequest(sign("order-1", "pay-1", testSecret)))

	assert.ErrorIs(t, err, ErrAlreadyPaid)
}
