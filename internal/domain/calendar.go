package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// BusinessCalendar is the fixed weekly schedule of the salon: one fully
// closed weekday plus daily opening hours, and the slot grid granularity.
type BusinessCalendar struct {
	WeeklyClosedDay        time.Weekday
	OpenTime               types.TimeString
	CloseTime              types.TimeString
	SlotGranularityMinutes int
}

// HolidayOverride is an ad hoc closure layered on top of the weekly schedule.
// StartTime and EndTime are both nil for a full-day closure, or both set
// for a partial-day window.
type HolidayOverride struct {
	ID        int64
	Date      time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Reason    *string
	CreatedAt time.Time
}

// IsFullDay reports whether the override closes the whole day
func (h *HolidayOverride) IsFullDay() bool {
	return h.StartTime == nil && h.EndTime == nil
}

// ClosedWindow is a blocked time range within an otherwise open day
type ClosedWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// DayPolicy is the resolved operability of a single date
type DayPolicy struct {
	Closed  bool
	Windows []ClosedWindow
}

// Resolve combines the weekly schedule with holiday overrides for a date.
// Weekly closed day or any full-day override closes the date entirely;
// otherwise all partial overrides become independent blocked windows.
// Absent data yields an open day with no windows.
func (c BusinessCalendar) Resolve(date time.Time, overrides []HolidayOverride) DayPolicy {
	if date.Weekday() == c.WeeklyClosedDay {
		return DayPolicy{Closed: true}
	}

	var windows []ClosedWindow
	for i := range overrides {
		override := &overrides[i]
		if override.IsFullDay() {
			return DayPolicy{Closed: true}
		}
		if override.StartTime != nil && override.EndTime != nil {
			windows = append(windows, ClosedWindow{Start: *override.StartTime, End: *override.EndTime})
		}
	}

	return DayPolicy{Windows: windows}
}
