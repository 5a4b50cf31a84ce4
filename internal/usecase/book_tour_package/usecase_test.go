package book_tour_package

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TTA-BookingService/internal/domain"
	tourStorage "github.com/m04kA/TTA-BookingService/internal/infra/storage/tour"
	"github.com/m04kA/TTA-BookingService/internal/usecase/check_availability"
)

// Фейки зависимостей

type fakeAvailability struct {
	result  *check_availability.Result
	lastReq *check_availability.Request
}

func (f *fakeAvailability) Execute(_ context.Context, req *check_availability.Request) (*check_availability.Result, error) {
	f.lastReq = req
	return f.result, nil
}

type fakeTourRepo struct {
	tours map[int64]*domain.TourPackage
}

func (f *fakeTourRepo) GetByID(_ context.Context, id int64) (*domain.TourPackage, error) {
	tour, ok := f.tours[id]
	if !ok {
		return nil, tourStorage.ErrTourPackageNotFound
	}
	copied := *tour
	return &copied, nil
}

type fakeBookingRepo struct {
	created *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	copied := *booking
	copied.ID = 42
	f.created = &copied
	return &copied, nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeNotifyClient struct {
	mu       sync.Mutex
	notified []*domain.Booking
	done     chan struct{}
}

func newFakeNotifyClient() *fakeNotifyClient {
	return &fakeNotifyClient{done: make(chan struct{}, 1)}
}

func (f *fakeNotifyClient) NotifyBooked(_ context.Context, booking *domain.Booking) error {
	f.mu.Lock()
	f.notified = append(f.notified, booking)
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

type countingMetrics struct {
	kinds []string
}

func (m *countingMetrics) IncBookingCreated(kind string) {
	m.kinds = append(m.kinds, kind)
}

type fixedTime struct{ now time.Time }

func (t fixedTime) Now() time.Time { return t.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func int64Ptr(v int64) *int64 { return &v }

func weekInBaikal() *domain.TourPackage {
	return &domain.TourPackage{
		ID:               5,
		Name:             "Неделя на Байкале",
		StayID:           1,
		TransportationID: int64Ptr(2),
		SightseeingIDs:   []int64{3, 4},
		FlatPrice:        1500,
		DurationDays:     7,
		IsActive:         true,
	}
}

type env struct {
	uc           *UseCase
	availability *fakeAvailability
	tours        *fakeTourRepo
	bookings     *fakeBookingRepo
	tx           *fakeTxManager
	notify       *fakeNotifyClient
	metrics      *countingMetrics
}

func newTestEnv() *env {
	availability := &fakeAvailability{result: &check_availability.Result{Available: true}}
	tours := &fakeTourRepo{tours: map[int64]*domain.TourPackage{5: weekInBaikal()}}
	bookings := &fakeBookingRepo{}
	tx := &fakeTxManager{}
	notify := newFakeNotifyClient()
	metrics := &countingMetrics{}

	uc := NewUseCase(availability, tours, bookings, tx, notify, metrics, nopLogger{})
	uc.timeProvider = fixedTime{now: date(2026, 6, 1)}

	return &env{
		uc:           uc,
		availability: availability,
		tours:        tours,
		bookings:     bookings,
		tx:           tx,
		notify:       notify,
		metrics:      metrics,
	}
}

func request() *Request {
	return &Request{
		TourPackageID:  5,
		UserID:         7,
		CheckIn:        date(2026, 7, 1),
		NumberOfPeople: 2,
	}
}

// Тесты

func TestExecute_BooksTourDirectly(t *testing.T) {
	e := newTestEnv()

	resp, err := e.uc.Execute(context.Background(), request())

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, int64(5), resp.TourPackageID)
	// Минует черновик: сразу booked
	assert.Equal(t, string(domain.StatusBooked), resp.Status)
	assert.Equal(t, string(domain.PaymentPending), resp.PaymentStatus)
	assert.Equal(t, 1, e.tx.calls)

	require.NotNil(t, e.bookings.created)
	require.NotNil(t, e.bookings.created.TourPackageID)
	assert.Equal(t, int64(5), *e.bookings.created.TourPackageID)
}

func TestExecute_DatesDerivedFromDuration(t *testing.T) {
	e := newTestEnv()

	resp, err := e.uc.Execute(context.Background(), request())

	require.NoError(t, err)
	assert.Equal(t, date(2026, 7, 1), resp.CheckInDate)
	assert.Equal(t, date(2026, 7, 8), resp.CheckOutDate)
	assert.Equal(t, 7, resp.NumberOfDays)
}

func TestExecute_FlatPriceIgnoresComposition(t *testing.T) {
	e := newTestEnv()

	resp, err := e.uc.Execute(context.Background(), request())

	require.NoError(t, err)
	assert.Equal(t, 1500.0, resp.Pricing.GrandTotal)
	// Покомпонентная разбивка не ведется
	assert.Zero(t, resp.Pricing.StayTotal)
	assert.Zero(t, resp.Pricing.TransportationTotal)
	assert.Zero(t, resp.Pricing.SightseeingTotal)
}

func TestExecute_AvailabilityCheckedForWholeComposition(t *testing.T) {
	e := newTestEnv()

	_, err := e.uc.Execute(context.Background(), request())

	require.NoError(t, err)
	require.NotNil(t, e.availability.lastReq)
	assert.Equal(t, int64(1), e.availability.lastReq.StayID)
	require.NotNil(t, e.availability.lastReq.TransportationID)
	assert.Equal(t, int64(2), *e.availability.lastReq.TransportationID)
	assert.Equal(t, []int64{3, 4}, e.availability.lastReq.SightseeingIDs)
	assert.Equal(t, date(2026, 7, 1), e.availability.lastReq.CheckIn)
	assert.Equal(t, date(2026, 7, 8), e.availability.lastReq.CheckOut)
	assert.Nil(t, e.availability.lastReq.ExcludeBookingID)
}

func TestExecute_DeniedCompositionBecomesCapacityError(t *testing.T) {
	e := newTestEnv()
	e.availability.result = &check_availability.Result{
		Available:  false,
		Reason:     "размещение занято",
		DeniedType: "stay",
	}

	_, err := e.uc.Execute(context.Background(), request())

	assert.ErrorIs(t, err, ErrNotAvailable)

	var capacityErr *CapacityError
	require.ErrorAs(t, err, &capacityErr)
	assert.Equal(t, "размещение занято", capacityErr.Reason)

	assert.Nil(t, e.bookings.created)
}

func TestExecute_MissingTour(t *testing.T) {
	e := newTestEnv()

	req := request()
	req.TourPackageID = 404

	_, err := e.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrTourPackageNotFound)
}

func TestExecute_InactiveTourTreatedAsMissing(t *testing.T) {
	e := newTestEnv()
	e.tours.tours[5].IsActive = false

	_, err := e.uc.Execute(context.Background(), request())

	assert.ErrorIs(t, err, ErrTourPackageNotFound)
}

func TestExecute_PastCheckInRejectedBeforeTx(t *testing.T) {
	e := newTestEnv()

	req := request()
	req.CheckIn = date(2026, 5, 31)

	_, err := e.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrDateInPast)
	assert.Equal(t, 0, e.tx.calls)
}

func TestExecute_CheckInTodayAllowed(t *testing.T) {
	e := newTestEnv()

	req := request()
	req.CheckIn = date(2026, 6, 1)

	_, err := e.uc.Execute(context.Background(), req)

	assert.NoError(t, err)
}

func TestExecute_InvalidInput(t *testing.T) {
	e := newTestEnv()

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"zero tour id", func(r *Request) { r.TourPackageID = 0 }},
		{"zero user id", func(r *Request) { r.UserID = 0 }},
		{"zero people", func(r *Request) { r.NumberOfPeople = 0 }},
		{"too many people", func(r *Request) { r.NumberOfPeople = domain.MaxNumberOfPeople + 1 }},
		{"zero check-in", func(r *Request) { r.CheckIn = time.Time{} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := request()
			tc.mutate(req)

			_, err := e.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_NotifiesAfterBooking(t *testing.T) {
	e := newTestEnv()

	_, err := e.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	e.notify.wait(t)

	e.notify.mu.Lock()
	defer e.notify.mu.Unlock()
	require.Len(t, e.notify.notified, 1)
	assert.Equal(t, int64(42), e.notify.notified[0].ID)
}

func TestExecute_MetricsCountTourBookings(t *testing.T) {
	e := newTestEnv()

	_, err := e.uc.Execute(context.Background(), request())

	require.NoError(t, err)
	assert.Equal(t, []string{"tour_package"}, e.metrics.kinds)
}
