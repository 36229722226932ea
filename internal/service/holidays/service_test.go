package holidays

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	holidayRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/holiday"
	"github.com/m04kA/SMC-ReservationService/internal/service/holidays/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

type fakeHolidayRepo struct {
	create      func(ctx context.Context, override *domain.HolidayOverride) (*domain.HolidayOverride, error)
	listByRange func(ctx context.Context, from, to *time.Time) ([]domain.HolidayOverride, error)
	delete      func(ctx context.Context, id int64) error
}

func (f *fakeHolidayRepo) Create(ctx context.Context, override *domain.HolidayOverride) (*domain.HolidayOverride, error) {
	return f.create(ctx, override)
}

func (f *fakeHolidayRepo) ListByRange(ctx context.Context, from, to *time.Time) ([]domain.HolidayOverride, error) {
	return f.listByRange(ctx, from, to)
}

func (f *fakeHolidayRepo) Delete(ctx context.Context, id int64) error {
	return f.delete(ctx, id)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newService() (*Service, *fakeHolidayRepo) {
	repo := &fakeHolidayRepo{
		create: func(ctx context.Context, override *domain.HolidayOverride) (*domain.HolidayOverride, error) {
			created := *override
			created.ID = 1
			created.CreatedAt = time.Now()
			return &created, nil
		},
		listByRange: func(ctx context.Context, from, to *time.Time) ([]domain.HolidayOverride, error) {
			return nil, nil
		},
		delete: func(ctx context.Context, id int64) error {
			return nil
		},
	}
	return NewService(repo, nopLogger{}), repo
}

func TestCreate_FullDay(t *testing.T) {
	service, _ := newService()

	resp, err := service.Create(context.Background(), &models.CreateHolidayRequest{
		Date:   time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC),
		Reason: ptr.Ptr("санитарный день"),
	})
	require.NoError(t, err)

	assert.True(t, resp.FullDay)
	assert.Nil(t, resp.StartTime)
	assert.Nil(t, resp.EndTime)
	assert.Equal(t, "2025-10-14", resp.Date)
}

func TestCreate_PartialWindow(t *testing.T) {
	service, _ := newService()

	resp, err := service.Create(context.Background(), &models.CreateHolidayRequest{
		Date:      time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC),
		StartTime: ptr.Ptr("13:00"),
		EndTime:   ptr.Ptr("15:00"),
	})
	require.NoError(t, err)

	assert.False(t, resp.FullDay)
	require.NotNil(t, resp.StartTime)
	require.NotNil(t, resp.EndTime)
	assert.Equal(t, "13:00", *resp.StartTime)
	assert.Equal(t, "15:00", *resp.EndTime)
}

func TestCreate_Validation(t *testing.T) {
	service, _ := newService()
	date := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  *models.CreateHolidayRequest
	}{
		{
			name: "missing date",
			req:  &models.CreateHolidayRequest{},
		},
		{
			name: "start without end",
			req:  &models.CreateHolidayRequest{Date: date, StartTime: ptr.Ptr("13:00")},
		},
		{
			name: "end without start",
			req:  &models.CreateHolidayRequest{Date: date, EndTime: ptr.Ptr("15:00")},
		},
		{
			name: "start not before end",
			req:  &models.CreateHolidayRequest{Date: date, StartTime: ptr.Ptr("15:00"), EndTime: ptr.Ptr("13:00")},
		},
		{
			name: "invalid time format",
			req:  &models.CreateHolidayRequest{Date: date, StartTime: ptr.Ptr("25:00"), EndTime: ptr.Ptr("26:00")},
		},
		{
			name: "reason too long",
			req:  &models.CreateHolidayRequest{Date: date, Reason: ptr.Ptr(strings.Repeat("x", domain.MaxReasonLength+1))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestList_InvalidRange(t *testing.T) {
	service, _ := newService()

	from := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)

	_, err := service.List(context.Background(), &models.ListHolidaysRequest{From: &from, To: &to})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	service, repo := newService()

	t.Run("success", func(t *testing.T) {
		assert.NoError(t, service.Delete(context.Background(), 1))
	})

	t.Run("not found", func(t *testing.T) {
		repo.delete = func(ctx context.Context, id int64) error {
			return holidayRepo.ErrHolidayNotFound
		}
		assert.ErrorIs(t, service.Delete(context.Background(), 404), ErrHolidayNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		assert.ErrorIs(t, service.Delete(context.Background(), 0), ErrInvalidInput)
	})
}
