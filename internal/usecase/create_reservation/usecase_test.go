package create_reservation

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
	create         func(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	listWithFilter func(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

func (f *fakeReservationRepo) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	return f.create(ctx, reservation)
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

// fakeTxManager исполняет функцию напрямую, как простая транзакция
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
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
		SlotGranularityMinutes: 10,
	}
}

var testServices = map[int64]*catalogservice.Service{
	1: {ID: 1, Name: "Стрижка", DurationMinutes: 60, LastBookableStartTime: "18:00", Active: true},
	2: {ID: 2, Name: "Укладка", DurationMinutes: 30, LastBookableStartTime: "17:30", Active: true},
}

func newFakes() (*fakeReservationRepo, *fakeHolidayRepo, *fakeCatalogClient, *fakeTxManager) {
	reservationRepo := &fakeReservationRepo{
		create: func(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
			created := *reservation
			created.ID = 42
			return &created, nil
		},
		listWithFilter: func(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
			return nil, nil
		},
	}
	holidayRepo := &fakeHolidayRepo{
		listByDate: func(ctx context.Context, date time.Time) ([]domain.HolidayOverride, error) {
			return nil, nil
		},
	}
	catalog := &fakeCatalogClient{
		getService: func(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
			service, ok := testServices[serviceID]
			if !ok {
				return nil, catalogservice.ErrServiceNotFound
			}
			return service, nil
		},
	}
	return reservationRepo, holidayRepo, catalog, &fakeTxManager{}
}

func validRequest() *Request {
	return &Request{
		UserID:     7,
		Date:       time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC),
		StartTime:  types.TimeString("11:00"),
		ServiceIDs: []int64{1, 2},
	}
}

func TestExecute_Success(t *testing.T) {
	reservationRepo, holidayRepo, catalog, txManager := newFakes()

	var captured *domain.Reservation
	reservationRepo.create = func(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
		captured = reservation
		created := *reservation
		created.ID = 42
		return &created, nil
	}

	uc := NewUseCase(reservationRepo, holidayRepo, catalog, txManager, testCalendar(), nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	// 60 + 30 минут от 11:00
	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, "11:00", resp.StartTime.String())
	assert.Equal(t, "12:30", resp.EndTime.String())

	// Позиции сохраняют порядок выбора
	require.Len(t, resp.Lines, 2)
	assert.Equal(t, int64(1), resp.Lines[0].ServiceID)
	assert.Equal(t, 0, resp.Lines[0].OrderIndex)
	assert.Equal(t, int64(2), resp.Lines[1].ServiceID)
	assert.Equal(t, 1, resp.Lines[1].OrderIndex)

	// Вставка прошла внутри сериализуемой транзакции
	assert.Equal(t, 1, txManager.calls)
	require.NotNil(t, captured)
	assert.Equal(t, domain.StatusConfirmed, captured.Status)
	assert.Equal(t, types.TimeString("12:30"), captured.EndTime)
}

func TestExecute_SlotConflict(t *testing.T) {
	reservationRepo, holidayRepo, catalog, txManager := newFakes()

	reservationRepo.listWithFilter = func(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
		return []*domain.Reservation{
			{ID: 1, Status: domain.StatusConfirmed, StartTime: "12:00", EndTime: "13:00"},
		}, nil
	}
	reservationRepo.create = func(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
		t.Fatal("create must not be called when the slot is blocked")
		return nil, nil
	}

	uc := NewUseCase(reservationRepo, holidayRepo, catalog, txManager, testCalendar(), nopLogger{})

	// Интервал 11:00-12:30 пересекается с бронированием 12:00-13:00
	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_SequentialRace(t *testing.T) {
	// Два запроса на один слот подряд: первый занимает, второй получает конфликт.
	// В продакшене ту же пару исходов дает сериализуемая изоляция.
	reservationRepo, holidayRepo, catalog, txManager := newFakes()

	var stored []*domain.Reservation
	reservationRepo.listWithFilter = func(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
		return stored, nil
	}
	reservationRepo.create = func(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
		created := *reservation
		created.ID = int64(len(stored) + 1)
		stored = append(stored, &created)
		return &created, nil
	}

	uc := NewUseCase(reservationRepo, holidayRepo, catalog, txManager, testCalendar(), nopLogger{})

	first, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Len(t, stored, 1)
}

func TestExecute_ClosedDay(t *testing.T) {
	reservationRepo, holidayRepo, catalog, txManager := newFakes()

	req := validRequest()
	holidayRepo.listByDate = func(ctx context.Context, date time.Time) ([]domain.HolidayOverride, error) {
		return []domain.HolidayOverride{{Date: req.Date}}, nil
	}

	uc := NewUseCase(reservationRepo, holidayRepo, catalog, txManager, testCalendar(), nopLogger{})

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClosedDay)
}

func TestExecute_WeeklyClosedDay(t *testing.T) {
	reservationRepo, holidayRepo, catalog, txManager := newFakes()
	uc := NewUseCase(reservationRepo, holidayRepo, catalog, txManager, testCalendar(), nopLogger{})

	req := validRequest()
	req.Date = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC) // понедельник

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClosedDay)
}

func TestExecute_CutoffExceeded(t *testing.T) {
	reservationRepo, holidayRepo, catalog, txManager := newFakes()
	uc := NewUseCase(reservationRepo, holidayRepo, catalog, txManager, testCalendar(), nopLogger{})

	// Cutoff выбора 17:30 (самая строгая услуга)
	req := validRequest()
	req.StartTime = types.TimeString("17:40")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCutoffExceeded)
	// До транзакции дело не дошло
	assert.Equal(t, 0, txManager.calls)
}

func TestExecute_StartExactlyAtCutoff(t *testing.T) {
	reservationRepo, holidayRepo, catalog, txManager := newFakes()
	uc := NewUseCase(reservationRepo, holidayRepo, catalog, txManager, testCalendar(), nopLogger{})

	// Сравнение с cutoff включительное: старт ровно в 17:30 разрешен
	req := validRequest()
	req.StartTime = types.TimeString("17:30")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "19:00", resp.EndTime.String())
}

func TestExecute_InvalidTimeSlot(t *testing.T) {
	reservationRepo, holidayRepo, catalog, txManager := newFakes()
	uc := NewUseCase(reservationRepo, holidayRepo, catalog, txManager, testCalendar(), nopLogger{})

	tests := []struct {
		name  string
		start types.TimeString
	}{
		{name: "before opening", start: "09:30"},
		{name: "interval past closing", start: "19:00"},
		{name: "off the grid", start: "11:05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.StartTime = tt.start
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidTimeSlot)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	reservationRepo, holidayRepo, catalog, txManager := newFakes()
	uc := NewUseCase(reservationRepo, holidayRepo, catalog, txManager, testCalendar(), nopLogger{})

	t.Run("missing user", func(t *testing.T) {
		req := validRequest()
		req.UserID = 0
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing start time", func(t *testing.T) {
		req := validRequest()
		req.StartTime = ""
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown service", func(t *testing.T) {
		req := validRequest()
		req.ServiceIDs = []int64{999}
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidSelection)
	})
}
