package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func testCalendar() BusinessCalendar {
	return BusinessCalendar{
		WeeklyClosedDay:        time.Monday,
		OpenTime:               types.TimeString("10:00"),
		CloseTime:              types.TimeString("20:00"),
		SlotGranularityMinutes: 10,
	}
}

func timePtr(s string) *types.TimeString {
	ts := types.TimeString(s)
	return &ts
}

func TestBusinessCalendar_Resolve(t *testing.T) {
	calendar := testCalendar()

	monday := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	tuesday := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)

	t.Run("weekly closed day", func(t *testing.T) {
		policy := calendar.Resolve(monday, nil)
		assert.True(t, policy.Closed)
		assert.Empty(t, policy.Windows)
	})

	t.Run("weekly closed day ignores overrides", func(t *testing.T) {
		overrides := []HolidayOverride{
			{Date: monday, StartTime: timePtr("13:00"), EndTime: timePtr("15:00")},
		}
		policy := calendar.Resolve(monday, overrides)
		assert.True(t, policy.Closed)
	})

	t.Run("open day without overrides", func(t *testing.T) {
		policy := calendar.Resolve(tuesday, nil)
		assert.False(t, policy.Closed)
		assert.Empty(t, policy.Windows)
	})

	t.Run("full day override closes the date", func(t *testing.T) {
		overrides := []HolidayOverride{{Date: tuesday}}
		policy := calendar.Resolve(tuesday, overrides)
		assert.True(t, policy.Closed)
	})

	t.Run("full day override wins over partial", func(t *testing.T) {
		overrides := []HolidayOverride{
			{Date: tuesday, StartTime: timePtr("13:00"), EndTime: timePtr("15:00")},
			{Date: tuesday},
		}
		policy := calendar.Resolve(tuesday, overrides)
		assert.True(t, policy.Closed)
	})

	t.Run("partial overrides become closed windows", func(t *testing.T) {
		overrides := []HolidayOverride{
			{Date: tuesday, StartTime: timePtr("13:00"), EndTime: timePtr("15:00")},
			{Date: tuesday, StartTime: timePtr("18:00"), EndTime: timePtr("19:00")},
		}
		policy := calendar.Resolve(tuesday, overrides)
		assert.False(t, policy.Closed)
		assert.Equal(t, []ClosedWindow{
			{Start: "13:00", End: "15:00"},
			{Start: "18:00", End: "19:00"},
		}, policy.Windows)
	})
}

func TestHolidayOverride_IsFullDay(t *testing.T) {
	full := HolidayOverride{}
	assert.True(t, full.IsFullDay())

	partial := HolidayOverride{StartTime: timePtr("13:00"), EndTime: timePtr("15:00")}
	assert.False(t, partial.IsFullDay())
}
