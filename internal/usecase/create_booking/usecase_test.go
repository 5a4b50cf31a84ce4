package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TTA-BookingService/internal/domain"
	"github.com/m04kA/TTA-BookingService/internal/usecase/check_availability"
)

// Фейки зависимостей

type fakeAvailability struct {
	result  *check_availability.Result
	err     error
	lastReq *check_availability.Request
}

func (f *fakeAvailability) Execute(_ context.Context, req *check_availability.Request) (*check_availability.Result, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeResourceRepo struct {
	resources map[int64]*domain.Resource
}

func (f *fakeResourceRepo) Get(_ context.Context, _ domain.ResourceType, id int64) (*domain.Resource, error) {
	return f.resources[id], nil
}

func (f *fakeResourceRepo) GetMany(_ context.Context, _ domain.ResourceType, ids []int64) ([]*domain.Resource, error) {
	out := make([]*domain.Resource, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.resources[id])
	}
	return out, nil
}

type fakeBookingRepo struct {
	created *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	copied := *booking
	copied.ID = 42
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	f.created = &copied
	return &copied, nil
}

// fakeTxManager прозрачно выполняет функцию без настоящей транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
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

type env struct {
	uc           *UseCase
	availability *fakeAvailability
	bookings     *fakeBookingRepo
	tx           *fakeTxManager
}

func newTestEnv() *env {
	availability := &fakeAvailability{result: &check_availability.Result{Available: true}}
	resources := &fakeResourceRepo{resources: map[int64]*domain.Resource{
		1: {ID: 1, Type: domain.ResourceStay, Name: "Hotel", UnitPrice: 100, IsActive: true},
		2: {ID: 2, Type: domain.ResourceTransportation, Name: "Car", UnitPrice: 40, IsActive: true},
		3: {ID: 3, Type: domain.ResourceSightseeing, Name: "Walk", UnitPrice: 25, IsActive: true},
	}}
	bookings := &fakeBookingRepo{}
	tx := &fakeTxManager{}

	uc := NewUseCase(availability, resources, bookings, tx, nil, nopLogger{})
	uc.timeProvider = fixedTime{now: date(2026, 6, 1)}

	return &env{uc: uc, availability: availability, bookings: bookings, tx: tx}
}

func validRequest() *Request {
	return &Request{
		UserID:           7,
		StayID:           1,
		TransportationID: int64Ptr(2),
		SightseeingIDs:   []int64{3},
		NumberOfPeople:   2,
		CheckIn:          date(2026, 7, 1),
		CheckOut:         date(2026, 7, 5),
	}
}

// Тесты

func TestExecute_CreatesDraftWithServerPricing(t *testing.T) {
	e := newTestEnv()

	resp, err := e.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusDraft), resp.Status)
	assert.Equal(t, string(domain.PaymentPending), resp.PaymentStatus)
	assert.Equal(t, 4, resp.NumberOfDays)

	// Цена считается на сервере: 100*4 + 40*4 + 25*2
	assert.Equal(t, 400.0, resp.Pricing.StayTotal)
	assert.Equal(t, 160.0, resp.Pricing.TransportationTotal)
	assert.Equal(t, 50.0, resp.Pricing.SightseeingTotal)
	assert.Equal(t, 610.0, resp.Pricing.GrandTotal)

	// Проверка и вставка идут в одной транзакции
	assert.Equal(t, 1, e.tx.calls)
}

func TestExecute_DeniedAvailabilityBecomesCapacityError(t *testing.T) {
	e := newTestEnv()
	e.availability.result = &check_availability.Result{
		Available:  false,
		Reason:     "размещение занято",
		DeniedType: domain.ResourceStay,
	}

	resp, err := e.uc.Execute(context.Background(), validRequest())

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrNotAvailable)

	var capacityErr *CapacityError
	require.ErrorAs(t, err, &capacityErr)
	assert.Equal(t, "размещение занято", capacityErr.Reason)

	// Черновик не создан
	assert.Nil(t, e.bookings.created)
}

func TestExecute_MissingStayMapsToUseCaseError(t *testing.T) {
	e := newTestEnv()
	e.availability.err = check_availability.ErrStayNotFound

	_, err := e.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrStayNotFound)
}

func TestExecute_CheckInYesterdayRejected(t *testing.T) {
	e := newTestEnv()

	req := validRequest()
	req.CheckIn = date(2026, 5, 31)
	req.CheckOut = date(2026, 6, 4)

	_, err := e.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrDateInPast)
	// До транзакции дело не дошло
	assert.Zero(t, e.tx.calls)
}

func TestExecute_CheckInTodayAllowed(t *testing.T) {
	e := newTestEnv()

	req := validRequest()
	req.CheckIn = date(2026, 6, 1)
	req.CheckOut = date(2026, 6, 5)

	_, err := e.uc.Execute(context.Background(), req)

	assert.NoError(t, err)
}

func TestExecute_InvalidInputRejectedBeforeTx(t *testing.T) {
	e := newTestEnv()

	req := validRequest()
	req.NumberOfPeople = 0

	_, err := e.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, e.tx.calls)
}

func TestExecute_AvailabilityRequestCarriesFullSelection(t *testing.T) {
	e := newTestEnv()

	_, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	req := e.availability.lastReq
	require.NotNil(t, req)
	assert.Equal(t, int64(1), req.StayID)
	require.NotNil(t, req.TransportationID)
	assert.Equal(t, int64(2), *req.TransportationID)
	assert.Equal(t, []int64{3}, req.SightseeingIDs)
	assert.Equal(t, 2, req.NumberOfPeople)
	// Новое бронирование ничего не исключает из подсчетов
	assert.Nil(t, req.ExcludeBookingID)
}

type countingMetrics struct{ created map[string]int }

func (m *countingMetrics) IncBookingCreated(kind string) { m.created[kind]++ }

func TestExecute_SuccessIncrementsDraftCounter(t *testing.T) {
	e := newTestEnv()
	m := &countingMetrics{created: map[string]int{}}
	e.uc.metrics = m

	_, err := e.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, 1, m.created["draft"])
}
