package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type fakeReservationRepo struct {
	listWithFilter func(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

func (f *fakeReservationRepo) ListWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	return f.listWithFilter(ctx, filter)
}

type fakeHolidayRepo struct {
	listByDate func(ctx context.Context, date time.Time) ([]domain.HolidayOverride, error)
}

func (f *fakeHolidayRepo) ListByDate(ctx context.Context, date time.Time) ([]domain.HolidayOverride, error) {
	return f.listByDate(ctx, date)
}

type fakeCatalogClient struct {
	getService func(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

func (f *fakeCatalogClient) GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
	return f.getService(ctx, serviceID)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testCalendar() domain.BusinessCalendar {
	return domain.BusinessCalendar{
		WeeklyClosedDay:        time.Monday,
		OpenTime:               types.TimeString("10:00"),
		CloseTime:              types.TimeString("20:00"),
		SlotGranularityMinutes: 60,
	}
}

func timePtr(s string) *types.TimeString {
	ts := types.TimeString(s)
	return &ts
}

var testServices = map[int64]*catalogservice.Service{
	1: {ID: 1, Name: "Стрижка", DurationMinutes: 60, LastBookableStartTime: "18:00", Active: true},
	2: {ID: 2, Name: "Укладка", DurationMinutes: 30, LastBookableStartTime: "17:30", Active: true},
	3: {ID: 3, Name: "Архивная услуга", DurationMinutes: 30, LastBookableStartTime: "19:00", Active: false},
}

func catalogFromMap() *fakeCatalogClient {
	return &fakeCatalogClient{
		getService: func(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
			service, ok := testServices[serviceID]
			if !ok {
				return nil, catalogservice.ErrServiceNotFound
			}
			return service, nil
		},
	}
}

func emptyRepos() (*fakeReservationRepo, *fakeHolidayRepo) {
	reservationRepo := &fakeReservationRepo{
		listWithFilter: func(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
			return nil, nil
		},
	}
	holidayRepo := &fakeHolidayRepo{
		listByDate: func(ctx context.Context, date time.Time) ([]domain.HolidayOverride, error) {
			return nil, nil
		},
	}
	return reservationRepo, holidayRepo
}

func slotByStart(t *testing.T, slots []Slot, start string) Slot {
	t.Helper()
	for _, slot := range slots {
		if slot.StartTime.String() == start {
			return slot
		}
	}
	t.Fatalf("slot %s not found", start)
	return Slot{}
}

func TestExecute_MultiServiceGrid(t *testing.T) {
	tuesday := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)

	reservationRepo, holidayRepo := emptyRepos()
	reservationRepo.listWithFilter = func(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
		require.NotNil(t, filter.Date)
		require.NotNil(t, filter.Status)
		assert.Equal(t, domain.StatusConfirmed, *filter.Status)
		return []*domain.Reservation{
			{Status: domain.StatusConfirmed, StartTime: "12:00", EndTime: "13:00"},
		}, nil
	}

	uc := NewUseCase(reservationRepo, holidayRepo, catalogFromMap(), testCalendar(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:       tuesday,
		ServiceIDs: []int64{1, 2},
	})
	require.NoError(t, err)

	assert.False(t, resp.IsClosed)
	assert.Equal(t, "Tuesday", resp.DayOfWeek)
	// 60 + 30 минут подряд
	assert.Equal(t, 90, resp.TotalDurationMinutes)

	// Сетка с шагом 60 от 10:00; интервал 90 минут помещается до 20:00
	// только при старте не позже 18:30, значит последний кандидат 18:00
	require.Len(t, resp.Slots, 9)
	assert.Equal(t, "10:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "18:00", resp.Slots[8].StartTime.String())

	// Интервал 90 минут от 11:00 и 12:00 пересекается с бронированием 12:00-13:00
	assert.True(t, slotByStart(t, resp.Slots, "10:00").Available)
	assert.False(t, slotByStart(t, resp.Slots, "11:00").Available)
	assert.False(t, slotByStart(t, resp.Slots, "12:00").Available)
	// Старт в момент окончания чужого бронирования разрешен
	assert.True(t, slotByStart(t, resp.Slots, "13:00").Available)

	// Cutoff связывает самая строгая услуга (17:30): 17:00 еще доступен, 18:00 уже нет
	assert.True(t, slotByStart(t, resp.Slots, "17:00").Available)
	assert.False(t, slotByStart(t, resp.Slots, "18:00").Available)
}

func TestExecute_ClosedDayShortCircuits(t *testing.T) {
	tuesday := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)

	reservationRepo, holidayRepo := emptyRepos()
	holidayRepo.listByDate = func(ctx context.Context, date time.Time) ([]domain.HolidayOverride, error) {
		return []domain.HolidayOverride{{Date: tuesday}}, nil
	}
	reservationRepo.listWithFilter = func(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
		t.Fatal("reservations must not be fetched for a closed day")
		return nil, nil
	}

	// Каталог в закрытый день не опрашивается
	catalog := &fakeCatalogClient{
		getService: func(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
			t.Fatal("catalog must not be called for a closed day")
			return nil, nil
		},
	}

	uc := NewUseCase(reservationRepo, holidayRepo, catalog, testCalendar(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:       tuesday,
		ServiceIDs: []int64{1},
	})
	require.NoError(t, err)

	assert.True(t, resp.IsClosed)
	assert.Empty(t, resp.Slots)
	assert.Zero(t, resp.TotalDurationMinutes)
}

func TestExecute_WeeklyClosedDay(t *testing.T) {
	monday := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

	reservationRepo, holidayRepo := emptyRepos()
	uc := NewUseCase(reservationRepo, holidayRepo, catalogFromMap(), testCalendar(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:       monday,
		ServiceIDs: []int64{1},
	})
	require.NoError(t, err)

	assert.True(t, resp.IsClosed)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PartialClosureWindow(t *testing.T) {
	tuesday := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)

	reservationRepo, holidayRepo := emptyRepos()
	holidayRepo.listByDate = func(ctx context.Context, date time.Time) ([]domain.HolidayOverride, error) {
		return []domain.HolidayOverride{
			{Date: tuesday, StartTime: timePtr("13:00"), EndTime: timePtr("15:00")},
		}, nil
	}

	uc := NewUseCase(reservationRepo, holidayRepo, catalogFromMap(), testCalendar(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:       tuesday,
		ServiceIDs: []int64{1},
	})
	require.NoError(t, err)
	require.False(t, resp.IsClosed)

	// Интервал 60 минут: старты 13:00 и 14:00 попадают в окно закрытия,
	// 12:30 в сетку не входит, а 12:00 и 15:00 окна не задевают
	assert.True(t, slotByStart(t, resp.Slots, "12:00").Available)
	assert.False(t, slotByStart(t, resp.Slots, "13:00").Available)
	assert.False(t, slotByStart(t, resp.Slots, "14:00").Available)
	assert.True(t, slotByStart(t, resp.Slots, "15:00").Available)
}

func TestExecute_InvalidSelection(t *testing.T) {
	tuesday := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	reservationRepo, holidayRepo := emptyRepos()
	uc := NewUseCase(reservationRepo, holidayRepo, catalogFromMap(), testCalendar(), nopLogger{})

	tests := []struct {
		name       string
		serviceIDs []int64
	}{
		{name: "empty selection", serviceIDs: nil},
		{name: "duplicate services", serviceIDs: []int64{1, 1}},
		{name: "non-positive id", serviceIDs: []int64{0}},
		{name: "unknown service", serviceIDs: []int64{999}},
		{name: "inactive service", serviceIDs: []int64{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &Request{Date: tuesday, ServiceIDs: tt.serviceIDs})
			assert.ErrorIs(t, err, ErrInvalidSelection)
		})
	}
}

func TestExecute_MissingDate(t *testing.T) {
	reservationRepo, holidayRepo := emptyRepos()
	uc := NewUseCase(reservationRepo, holidayRepo, catalogFromMap(), testCalendar(), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ServiceIDs: []int64{1}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
