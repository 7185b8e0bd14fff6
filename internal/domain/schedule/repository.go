package schedule

import "context"

// AttendanceTypeRepository defines read access to schedule templates.
type AttendanceTypeRepository interface {
	// List retrieves every attendance type, keyed by ID in the result map.
	List(ctx context.Context) (map[string]AttendanceType, error)
}
