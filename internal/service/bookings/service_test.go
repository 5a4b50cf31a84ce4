package bookings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TTA-BookingService/internal/domain"
	bookingStorage "github.com/m04kA/TTA-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/TTA-BookingService/internal/service/bookings/models"
	"github.com/m04kA/TTA-BookingService/internal/usecase/check_availability"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	statusUpdates  []domain.BookingStatus
	paymentUpdates []domain.PaymentStatus
	cancelledWith  *string
	deletedID      *int64
	earlyCheckout  *time.Time
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingStorage.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByUser(_ context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	out := []*domain.Booking{}
	for _, b := range f.bookings {
		if b.UserID != filter.UserID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	f.statusUpdates = append(f.statusUpdates, status)
	f.bookings[id].Status = status
	return nil
}

func (f *fakeBookingRepo) SetPaymentStatus(_ context.Context, id int64, paymentStatus domain.PaymentStatus) error {
	f.paymentUpdates = append(f.paymentUpdates, paymentStatus)
	f.bookings[id].PaymentStatus = paymentStatus
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	f.cancelledWith = &reason
	f.bookings[id].Status = domain.StatusCancelled
	return nil
}

func (f *fakeBookingRepo) EarlyCheckout(_ context.Context, id int64, newCheckOut time.Time, newNumberOfDays int) error {
	f.earlyCheckout = &newCheckOut
	f.bookings[id].CheckOutDate = newCheckOut
	f.bookings[id].NumberOfDays = newNumberOfDays
	f.bookings[id].Status = domain.StatusCompleted
	return nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	f.deletedID = &id
	delete(f.bookings, id)
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

// fakeNotifyClient потокобезопасен: сервис шлет уведомления из горутин
type fakeNotifyClient struct {
	mu        sync.Mutex
	booked    []int64
	cancelled []int64
	done      chan struct{}
}

func newFakeNotifyClient() *fakeNotifyClient {
	return &fakeNotifyClient{done: make(chan struct{}, 4)}
}

func (f *fakeNotifyClient) NotifyBooked(_ context.Context, booking *domain.Booking) error {
	f.mu.Lock()
	f.booked = append(f.booked, booking.ID)
	f.mu.Unlock()
	f.done <- struct{}{}
	return nil
}

func (f *fakeNotifyClient) NotifyCancelled(_ context.Context, booking *domain.Booking, _ string) error {
	f.mu.Lock()
	f.cancelled = append(f.cancelled, booking.ID)
	f.mu.Unlock()
	f.done <- struct{}{}
	return nil
}

func (f *fakeNotifyClient) wait(t *testing.T) {
	t.Helper()
	select {
	case <-f.done:
	case <-time.After(time.Second):
		t.Fatal("notification was not sent")
	}
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func draftBooking(id, userID int64) *domain.Booking {
	return &domain.Booking{
		ID:             id,
		UserID:         userID,
		StayID:         1,
		NumberOfPeople: 2,
		NumberOfDays:   4,
		CheckInDate:    date(2026, 7, 1),
		CheckOutDate:   date(2026, 7, 5),
		Status:         domain.StatusDraft,
		PaymentStatus:  domain.PaymentPending,
	}
}

type env struct {
	svc          *Service
	repo         *fakeBookingRepo
	availability *fakeAvailability
	notify       *fakeNotifyClient
}

func newTestEnv() *env {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		10: draftBooking(10, 7),
	}}
	availability := &fakeAvailability{result: &check_availability.Result{Available: true}}
	notify := newFakeNotifyClient()
	svc := NewService(repo, availability, notify, fakeTxManager{}, nopLogger{})
	return &env{svc: svc, repo: repo, availability: availability, notify: notify}
}

// Book

func TestBook_DraftBecomesBookedAndNotifies(t *testing.T) {
	e := newTestEnv()

	resp, err := e.svc.Book(context.Background(), 10, 7, false)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusBooked), resp.Status)
	assert.Equal(t, domain.StatusBooked, e.repo.bookings[10].Status)

	e.notify.wait(t)
	assert.Equal(t, []int64{10}, e.notify.booked)
}

func TestBook_RecheckExcludesOwnBooking(t *testing.T) {
	e := newTestEnv()

	_, err := e.svc.Book(context.Background(), 10, 7, false)

	require.NoError(t, err)
	require.NotNil(t, e.availability.lastReq.ExcludeBookingID)
	assert.Equal(t, int64(10), *e.availability.lastReq.ExcludeBookingID)
}

func TestBook_CapacityLostKeepsDraft(t *testing.T) {
	e := newTestEnv()
	e.availability.result = &check_availability.Result{Available: false, Reason: "занято"}

	_, err := e.svc.Book(context.Background(), 10, 7, false)

	assert.ErrorIs(t, err, ErrNotAvailable)

	var capacityErr *CapacityError
	require.ErrorAs(t, err, &capacityErr)
	assert.Equal(t, "занято", capacityErr.Reason)

	assert.Equal(t, domain.StatusDraft, e.repo.bookings[10].Status)
}

func TestBook_NonDraftRejected(t *testing.T) {
	e := newTestEnv()
	e.repo.bookings[10].Status = domain.StatusBooked

	_, err := e.svc.Book(context.Background(), 10, 7, false)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBook_ForeignBookingDenied(t *testing.T) {
	e := newTestEnv()

	_, err := e.svc.Book(context.Background(), 10, 999, false)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestBook_AdminCanBookForeignDraft(t *testing.T) {
	e := newTestEnv()

	_, err := e.svc.Book(context.Background(), 10, 999, true)

	assert.NoError(t, err)
}

// Cancel

func TestCancel_BookedBookingWithReason(t *testing.T) {
	e := newTestEnv()
	e.repo.bookings[10].Status = domain.StatusBooked

	err := e.svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{
		UserID:             7,
		CancellationReason: "планы изменились",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, e.repo.bookings[10].Status)
	require.NotNil(t, e.repo.cancelledWith)
	assert.Equal(t, "планы изменились", *e.repo.cancelledWith)

	e.notify.wait(t)
	assert.Equal(t, []int64{10}, e.notify.cancelled)
}

func TestCancel_PaidBookingMarksRefund(t *testing.T) {
	e := newTestEnv()
	e.repo.bookings[10].Status = domain.StatusConfirmed
	e.repo.bookings[10].PaymentStatus = domain.PaymentPaid

	err := e.svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{UserID: 7})

	require.NoError(t, err)
	assert.Equal(t, []domain.PaymentStatus{domain.PaymentRefunded}, e.repo.paymentUpdates)
}

func TestCancel_TerminalStatusRejected(t *testing.T) {
	e := newTestEnv()

	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled} {
		e.repo.bookings[10].Status = status

		err := e.svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{UserID: 7})
		assert.ErrorIs(t, err, ErrCannotCancel, "status %s", status)
	}
}

// UpdateStatus

func TestUpdateStatus_AdminOnly(t *testing.T) {
	e := newTestEnv()

	err := e.svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: 7,
		Status: "confirmed",
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_AllowedTransitions(t *testing.T) {
	e := newTestEnv()
	e.repo.bookings[10].Status = domain.StatusBooked

	err := e.svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: 1, IsAdmin: true, Status: "confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, e.repo.bookings[10].Status)

	err = e.svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: 1, IsAdmin: true, Status: "completed",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, e.repo.bookings[10].Status)
}

func TestUpdateStatus_SkippingStepRejected(t *testing.T) {
	e := newTestEnv()
	e.repo.bookings[10].Status = domain.StatusBooked

	// booked -> completed минуя confirmed запрещен
	err := e.svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: 1, IsAdmin: true, Status: "completed",
	})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_UnknownStatusRejected(t *testing.T) {
	e := newTestEnv()

	err := e.svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: 1, IsAdmin: true, Status: "archived",
	})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

// Refund

func TestRefund_PaidBooking(t *testing.T) {
	e := newTestEnv()
	e.repo.bookings[10].Status = domain.StatusConfirmed
	e.repo.bookings[10].PaymentStatus = domain.PaymentPaid

	err := e.svc.Refund(context.Background(), 10, 1, true)

	require.NoError(t, err)
	assert.Equal(t, []domain.PaymentStatus{domain.PaymentRefunded}, e.repo.paymentUpdates)
	// Статус бронирования не меняется
	assert.Equal(t, domain.StatusConfirmed, e.repo.bookings[10].Status)
}

func TestRefund_UnpaidRejected(t *testing.T) {
	e := newTestEnv()
	e.repo.bookings[10].Status = domain.StatusBooked

	err := e.svc.Refund(context.Background(), 10, 1, true)

	assert.ErrorIs(t, err, ErrNotPaid)
}

func TestRefund_NonAdminDenied(t *testing.T) {
	e := newTestEnv()
	e.repo.bookings[10].PaymentStatus = domain.PaymentPaid

	err := e.svc.Refund(context.Background(), 10, 7, false)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

// EarlyCheckout

func TestEarlyCheckout_ShrinksRangeAndCompletes(t *testing.T) {
	e := newTestEnv()
	e.repo.bookings[10].Status = domain.StatusConfirmed

	resp, err := e.svc.EarlyCheckout(context.Background(), 10, &models.EarlyCheckoutRequest{
		UserID:      7,
		NewCheckOut: date(2026, 7, 3),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, 2, resp.NumberOfDays)
	require.NotNil(t, e.repo.earlyCheckout)
	assert.Equal(t, date(2026, 7, 3), *e.repo.earlyCheckout)
}

func TestEarlyCheckout_NewDateMustShrinkRange(t *testing.T) {
	e := newTestEnv()
	e.repo.bookings[10].Status = domain.StatusBooked

	tests := []struct {
		name        string
		newCheckOut time.Time
	}{
		{"later check-out", date(2026, 7, 8)},
		{"before check-in", date(2026, 6, 30)},
		{"check-in day itself", date(2026, 7, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.svc.EarlyCheckout(context.Background(), 10, &models.EarlyCheckoutRequest{
				UserID:      7,
				NewCheckOut: tt.newCheckOut,
			})
			assert.ErrorIs(t, err, ErrInvalidCheckout)
		})
	}
}

func TestEarlyCheckout_SameCheckOutCompletesWithoutShrinking(t *testing.T) {
	e := newTestEnv()
	e.repo.bookings[10].Status = domain.StatusBooked

	resp, err := e.svc.EarlyCheckout(context.Background(), 10, &models.EarlyCheckoutRequest{
		UserID:      7,
		NewCheckOut: date(2026, 7, 5),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, 4, resp.NumberOfDays)
}

func TestEarlyCheckout_DraftRejected(t *testing.T) {
	e := newTestEnv()

	_, err := e.svc.EarlyCheckout(context.Background(), 10, &models.EarlyCheckoutRequest{
		UserID:      7,
		NewCheckOut: date(2026, 7, 3),
	})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

// Delete

func TestDelete_AdminDeletesAnyState(t *testing.T) {
	e := newTestEnv()
	e.repo.bookings[10].Status = domain.StatusConfirmed

	err := e.svc.Delete(context.Background(), 10, 1, true)

	require.NoError(t, err)
	require.NotNil(t, e.repo.deletedID)
	assert.Equal(t, int64(10), *e.repo.deletedID)
}

func TestDelete_AdminOnly(t *testing.T) {
	e := newTestEnv()

	// Даже владелец не удаляет свое бронирование
	err := e.svc.Delete(context.Background(), 10, 7, false)

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, e.repo.deletedID)
}

// GetUserBookings

func TestGetUserBookings_FiltersByStatus(t *testing.T) {
	e := newTestEnv()
	booked := draftBooking(11, 7)
	booked.Status = domain.StatusBooked
	e.repo.bookings[11] = booked
	e.repo.bookings[12] = draftBooking(12, 99) // чужое

	status := "booked"
	resp, err := e.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 7,
		Status: &status,
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(11), resp.Bookings[0].ID)
}
