package check_availability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TTA-BookingService/internal/domain"
	resourceRepo "github.com/m04kA/TTA-BookingService/internal/infra/storage/resource"
)

// Фейки репозиториев

type fakeResourceRepo struct {
	resources map[int64]*domain.Resource
}

func (f *fakeResourceRepo) Get(_ context.Context, resourceType domain.ResourceType, id int64) (*domain.Resource, error) {
	res, ok := f.resources[id]
	if !ok || res.Type != resourceType {
		return nil, resourceRepo.ErrResourceNotFound
	}
	return res, nil
}

func (f *fakeResourceRepo) GetMany(_ context.Context, resourceType domain.ResourceType, ids []int64) ([]*domain.Resource, error) {
	out := make([]*domain.Resource, 0, len(ids))
	for _, id := range ids {
		res, ok := f.resources[id]
		if !ok || res.Type != resourceType {
			return nil, resourceRepo.ErrResourceNotFound
		}
		out = append(out, res)
	}
	return out, nil
}

type fakeBookingRepo struct {
	stayCounts      map[int64]int
	transportCounts map[int64]int
	// ключ "sightID|2026-07-02" - занятые места на конкретный день
	sightGuests map[string]int

	excludedID *int64
}

func dayKey(id int64, day time.Time) string {
	return fmt.Sprintf("%d|%s", id, day.Format(domain.DateFormat))
}

func (f *fakeBookingRepo) CountOverlappingForStay(_ context.Context, stayID int64, _ domain.DateRange, excludeBookingID *int64) (int, error) {
	f.excludedID = excludeBookingID
	return f.stayCounts[stayID], nil
}

func (f *fakeBookingRepo) CountOverlappingForTransportation(_ context.Context, transportationID int64, _ domain.DateRange, excludeBookingID *int64) (int, error) {
	f.excludedID = excludeBookingID
	return f.transportCounts[transportationID], nil
}

func (f *fakeBookingRepo) SumSightseeingGuestsOnDay(_ context.Context, sightseeingID int64, day time.Time, excludeBookingID *int64) (int, error) {
	f.excludedID = excludeBookingID
	return f.sightGuests[dayKey(sightseeingID, day)], nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Окружение теста

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func newTestEnv() (*UseCase, *fakeResourceRepo, *fakeBookingRepo) {
	resources := &fakeResourceRepo{resources: map[int64]*domain.Resource{
		1: {ID: 1, Type: domain.ResourceStay, Name: "Hotel Baikal", Capacity: intPtr(3), IsActive: true},
		2: {ID: 2, Type: domain.ResourceTransportation, Name: "Minivan", IsActive: true},
		3: {ID: 3, Type: domain.ResourceSightseeing, Name: "Old Town Walk", IsActive: true},
	}}
	bookings := &fakeBookingRepo{
		stayCounts:      map[int64]int{},
		transportCounts: map[int64]int{},
		sightGuests:     map[string]int{},
	}
	uc := NewUseCase(resources, bookings, nil, nopLogger{})
	return uc, resources, bookings
}

func validRequest() *Request {
	return &Request{
		StayID:         1,
		CheckIn:        date(2026, 7, 1),
		CheckOut:       date(2026, 7, 5),
		NumberOfPeople: 2,
	}
}

// Тесты

func TestExecute_AvailableWhenUnderCapacity(t *testing.T) {
	uc, _, bookings := newTestEnv()
	bookings.stayCounts[1] = 2 // 2 из 3 номеров заняты

	result, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Empty(t, result.Reason)
}

func TestExecute_DeniedWhenStayFull(t *testing.T) {
	uc, _, bookings := newTestEnv()
	bookings.stayCounts[1] = 3 // все 3 номера заняты

	result, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, domain.ResourceStay, result.DeniedType)
	assert.Contains(t, result.Reason, "Hotel Baikal")
}

func TestExecute_DeniedWhenTransportationFull(t *testing.T) {
	uc, _, bookings := newTestEnv()
	bookings.transportCounts[2] = 1 // дефолтная вместимость транспорта 1

	req := validRequest()
	req.TransportationID = int64Ptr(2)

	result, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, domain.ResourceTransportation, result.DeniedType)
}

func TestExecute_BlackoutWinsOverFreeCapacity(t *testing.T) {
	uc, resources, bookings := newTestEnv()
	bookings.stayCounts[1] = 0 // вместимость свободна
	resources.resources[1].UnavailableDates = []time.Time{date(2026, 7, 3)}

	result, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Contains(t, result.Reason, "2026-07-03")
	assert.Contains(t, result.Reason, "заблокирована администратором")
}

func TestExecute_BlackoutOnCheckOutDayIsIgnored(t *testing.T) {
	uc, resources, _ := newTestEnv()
	// День выезда не занимается: блокировка на нем не мешает
	resources.resources[1].UnavailableDates = []time.Time{date(2026, 7, 5)}

	result, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.True(t, result.Available)
}

func TestExecute_SightseeingPerDayOverflow(t *testing.T) {
	uc, resources, bookings := newTestEnv()
	resources.resources[3].Capacity = intPtr(50)
	// 2026-07-02 уже занято 40 мест; запрос на 15 человек переполняет только этот день
	bookings.sightGuests[dayKey(3, date(2026, 7, 2))] = 40

	req := validRequest()
	req.SightseeingIDs = []int64{3}
	req.NumberOfPeople = 15

	result, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, domain.ResourceSightseeing, result.DeniedType)
	assert.Contains(t, result.Reason, "2026-07-02")
	assert.Contains(t, result.Reason, "занято 40 из 50")
}

func TestExecute_SightseeingFitsWhenDaysAreIndependent(t *testing.T) {
	uc, resources, bookings := newTestEnv()
	resources.resources[3].Capacity = intPtr(50)
	bookings.sightGuests[dayKey(3, date(2026, 7, 2))] = 35

	req := validRequest()
	req.SightseeingIDs = []int64{3}
	req.NumberOfPeople = 15 // 35 + 15 = 50, ровно впритык

	result, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, result.Available)
}

func TestExecute_ExcludeBookingIDIsPropagated(t *testing.T) {
	uc, _, bookings := newTestEnv()

	req := validRequest()
	req.ExcludeBookingID = int64Ptr(77)

	_, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, bookings.excludedID)
	assert.Equal(t, int64(77), *bookings.excludedID)
}

func TestExecute_MissingStayIsErrorNotDenial(t *testing.T) {
	uc, _, _ := newTestEnv()

	req := validRequest()
	req.StayID = 999

	result, err := uc.Execute(context.Background(), req)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrStayNotFound)
}

func TestExecute_InactiveResourceTreatedAsMissing(t *testing.T) {
	uc, resources, _ := newTestEnv()
	resources.resources[1].IsActive = false

	result, err := uc.Execute(context.Background(), validRequest())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrStayNotFound)
}

func TestExecute_InactiveSightseeingTreatedAsMissing(t *testing.T) {
	uc, resources, _ := newTestEnv()
	resources.resources[3].IsActive = false

	req := validRequest()
	req.SightseeingIDs = []int64{3}

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSightseeingNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc, _, _ := newTestEnv()

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero stay id", func(r *Request) { r.StayID = 0 }},
		{"check-out before check-in", func(r *Request) { r.CheckIn, r.CheckOut = r.CheckOut, r.CheckIn }},
		{"zero-night range", func(r *Request) { r.CheckOut = r.CheckIn }},
		{"too many people", func(r *Request) { r.NumberOfPeople = domain.MaxNumberOfPeople + 1 }},
		{"too long stay", func(r *Request) { r.CheckOut = r.CheckIn.AddDate(0, 0, domain.MaxNumberOfDays+1) }},
		{"duplicate sightseeings", func(r *Request) { r.SightseeingIDs = []int64{3, 3} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

type countingMetrics struct {
	denials map[string]int
}

func (m *countingMetrics) IncAvailabilityDenial(resourceType string) {
	m.denials[resourceType]++
}

func TestExecute_DenialIncrementsMetrics(t *testing.T) {
	_, resources, bookings := newTestEnv()
	m := &countingMetrics{denials: map[string]int{}}
	uc := NewUseCase(resources, bookings, m, nopLogger{})

	bookings.stayCounts[1] = 3

	result, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.False(t, result.Available)
	assert.Equal(t, 1, m.denials["stay"])
}
