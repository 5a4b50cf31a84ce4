package update_booking

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
	lastReq *check_availability.Request
}

func (f *fakeAvailability) Execute(_ context.Context, req *check_availability.Request) (*check_availability.Result, error) {
	f.lastReq = req
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
	booking *domain.Booking
	updated *domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	copied := *f.booking
	return &copied, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, _ int64, booking *domain.Booking) (*domain.Booking, error) {
	copied := *booking
	copied.UpdatedAt = time.Now()
	f.updated = &copied
	return &copied, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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

func int64Ptr(v int64) *int64       { return &v }
func intPtr(v int) *int             { return &v }
func timePtr(t time.Time) *time.Time { return &t }

func draft() *domain.Booking {
	return &domain.Booking{
		ID:               10,
		UserID:           7,
		StayID:           1,
		TransportationID: int64Ptr(2),
		SightseeingIDs:   []int64{3},
		NumberOfPeople:   2,
		NumberOfDays:     4,
		CheckInDate:      date(2026, 7, 1),
		CheckOutDate:     date(2026, 7, 5),
		Status:           domain.StatusDraft,
		PaymentStatus:    domain.PaymentPending,
	}
}

type env struct {
	uc           *UseCase
	availability *fakeAvailability
	bookings     *fakeBookingRepo
}

func newTestEnv() *env {
	availability := &fakeAvailability{result: &check_availability.Result{Available: true}}
	resources := &fakeResourceRepo{resources: map[int64]*domain.Resource{
		1: {ID: 1, Type: domain.ResourceStay, UnitPrice: 100, IsActive: true},
		2: {ID: 2, Type: domain.ResourceTransportation, UnitPrice: 40, IsActive: true},
		3: {ID: 3, Type: domain.ResourceSightseeing, UnitPrice: 25, IsActive: true},
		4: {ID: 4, Type: domain.ResourceStay, UnitPrice: 200, IsActive: true},
	}}
	bookings := &fakeBookingRepo{booking: draft()}

	uc := NewUseCase(availability, resources, bookings, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{now: date(2026, 6, 1)}

	return &env{uc: uc, availability: availability, bookings: bookings}
}

// Тесты

func TestExecute_PartialPatchKeepsUntouchedFields(t *testing.T) {
	e := newTestEnv()

	resp, err := e.uc.Execute(context.Background(), &Request{
		BookingID:      10,
		UserID:         7,
		NumberOfPeople: intPtr(4),
	})

	require.NoError(t, err)
	assert.Equal(t, 4, resp.NumberOfPeople)
	// Остальное не тронуто
	assert.Equal(t, int64(1), resp.StayID)
	require.NotNil(t, resp.TransportationID)
	assert.Equal(t, int64(2), *resp.TransportationID)
	assert.Equal(t, []int64{3}, resp.SightseeingIDs)
}

func TestExecute_RepricesAfterPatch(t *testing.T) {
	e := newTestEnv()

	resp, err := e.uc.Execute(context.Background(), &Request{
		BookingID: 10,
		UserID:    7,
		StayID:    int64Ptr(4), // дороже: 200 за ночь
	})

	require.NoError(t, err)
	// 200*4 + 40*4 + 25*2
	assert.Equal(t, 800.0, resp.Pricing.StayTotal)
	assert.Equal(t, 1010.0, resp.Pricing.GrandTotal)
}

func TestExecute_ClearTransportationWins(t *testing.T) {
	e := newTestEnv()

	resp, err := e.uc.Execute(context.Background(), &Request{
		BookingID:           10,
		UserID:              7,
		TransportationID:    int64Ptr(2),
		ClearTransportation: true,
	})

	require.NoError(t, err)
	assert.Nil(t, resp.TransportationID)
	assert.Zero(t, resp.Pricing.TransportationTotal)
}

func TestExecute_EmptySightseeingsClears(t *testing.T) {
	e := newTestEnv()

	resp, err := e.uc.Execute(context.Background(), &Request{
		BookingID:      10,
		UserID:         7,
		SightseeingIDs: []int64{},
	})

	require.NoError(t, err)
	assert.Empty(t, resp.SightseeingIDs)
	assert.Zero(t, resp.Pricing.SightseeingTotal)
}

func TestExecute_RecheckExcludesSelf(t *testing.T) {
	e := newTestEnv()

	_, err := e.uc.Execute(context.Background(), &Request{
		BookingID: 10,
		UserID:    7,
		CheckIn:   timePtr(date(2026, 7, 2)),
	})

	require.NoError(t, err)
	require.NotNil(t, e.availability.lastReq.ExcludeBookingID)
	assert.Equal(t, int64(10), *e.availability.lastReq.ExcludeBookingID)
}

func TestExecute_NonDraftNotEditable(t *testing.T) {
	e := newTestEnv()
	e.bookings.booking.Status = domain.StatusBooked

	_, err := e.uc.Execute(context.Background(), &Request{
		BookingID:      10,
		UserID:         7,
		NumberOfPeople: intPtr(3),
	})

	assert.ErrorIs(t, err, ErrNotEditable)
	assert.Nil(t, e.bookings.updated)
}

func TestExecute_ForeignDraftDenied(t *testing.T) {
	e := newTestEnv()

	_, err := e.uc.Execute(context.Background(), &Request{
		BookingID:      10,
		UserID:         999,
		NumberOfPeople: intPtr(3),
	})

	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestExecute_AdminCanEditForeignDraft(t *testing.T) {
	e := newTestEnv()

	_, err := e.uc.Execute(context.Background(), &Request{
		BookingID:      10,
		UserID:         999,
		IsAdmin:        true,
		NumberOfPeople: intPtr(3),
	})

	assert.NoError(t, err)
}

func TestExecute_DeniedAvailabilityBecomesCapacityError(t *testing.T) {
	e := newTestEnv()
	e.availability.result = &check_availability.Result{Available: false, Reason: "занято"}

	_, err := e.uc.Execute(context.Background(), &Request{
		BookingID:      10,
		UserID:         7,
		NumberOfPeople: intPtr(3),
	})

	assert.ErrorIs(t, err, ErrNotAvailable)
	assert.Nil(t, e.bookings.updated)
}

func TestExecute_MergedPastCheckInRejected(t *testing.T) {
	e := newTestEnv()

	_, err := e.uc.Execute(context.Background(), &Request{
		BookingID: 10,
		UserID:    7,
		CheckIn:   timePtr(date(2026, 5, 1)),
		CheckOut:  timePtr(date(2026, 5, 5)),
	})

	assert.ErrorIs(t, err, ErrDateInPast)
}
