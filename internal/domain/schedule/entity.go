package schedule

import "time"

// AttendanceType is a named schedule template. Multiple employees may
// share one type. Fixed-hour types carry a start/end wall-clock time;
// shift-based types leave them nil and are resolved elsewhere.
type AttendanceType struct {
	ID                    string
	Name                  string
	StartTime             *string // "HH:MM", nil for shift-based types
	EndTime               *string
	AllowLateMinutes      int
	AllowEarlyExitMinutes int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// HasFixedSchedule reports whether the type defines fixed daily hours.
func (t AttendanceType) HasFixedSchedule() bool {
	return t.StartTime != nil && t.EndTime != nil
}
