package attendance

import (
	"github.com/wathiq-erp/attendance-engine/internal/domain/attendance"
	"github.com/wathiq-erp/attendance-engine/internal/domain/schedule"
	"github.com/wathiq-erp/attendance-engine/internal/pkg/timeutil"
)

// variance is the schedule-vs-actual comparison for one employee day.
type variance struct {
	lateMinutes      int
	earlyExitMinutes int
	scheduledStart   *int
	scheduledEnd     *int
	expectedHours    *float64
	totalHours       *float64
	differenceHours  *float64
}

// computeVariance compares resolved clock times against the employee's
// attendance type, applying the type's grace allowances. Lateness needs
// both an in time and a scheduled start; early exit additionally only
// applies in evening mode. Both are floored at zero.
func computeVariance(times punchTimes, attType *schedule.AttendanceType, mode attendance.RunMode) variance {
	var v variance

	if attType != nil {
		if attType.StartTime != nil {
			if start, err := timeutil.ToMinutes(*attType.StartTime); err == nil {
				v.scheduledStart = &start
			}
		}
		if attType.EndTime != nil {
			if end, err := timeutil.ToMinutes(*attType.EndTime); err == nil {
				v.scheduledEnd = &end
			}
		}
	}

	if times.in != nil && v.scheduledStart != nil {
		late := (*times.in - *v.scheduledStart) - attType.AllowLateMinutes
		if late > 0 {
			v.lateMinutes = late
		}
	}

	if mode == attendance.RunModeEvening && times.out != nil && v.scheduledEnd != nil {
		early := (*v.scheduledEnd - *times.out) - attType.AllowEarlyExitMinutes
		if early > 0 {
			v.earlyExitMinutes = early
		}
	}

	v.expectedHours = timeutil.DurationHours(v.scheduledStart, v.scheduledEnd)
	v.totalHours = timeutil.DurationHours(times.in, times.out)
	if v.totalHours != nil && v.expectedHours != nil {
		diff := *v.totalHours - *v.expectedHours
		v.differenceHours = &diff
	}

	return v
}
