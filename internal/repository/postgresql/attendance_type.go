package postgresql

import (
	"context"

	"github.com/wathiq-erp/attendance-engine/internal/domain/schedule"
	"github.com/wathiq-erp/attendance-engine/internal/pkg/database"
)

type attendanceTypeRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceTypeRepository(db *database.DB) schedule.AttendanceTypeRepository {
	return &attendanceTypeRepositoryImpl{db: db}
}

// List implements schedule.AttendanceTypeRepository.
func (r *attendanceTypeRepositoryImpl) List(ctx context.Context) (map[string]schedule.AttendanceType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, start_time, end_time, allow_late_minutes, allow_early_exit_minutes,
			created_at, updated_at
		FROM attendance_types
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make(map[string]schedule.AttendanceType)
	for rows.Next() {
		var t schedule.AttendanceType
		err := rows.Scan(
			&t.ID, &t.Name, &t.StartTime, &t.EndTime,
			&t.AllowLateMinutes, &t.AllowEarlyExitMinutes,
			&t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		types[t.ID] = t
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return types, nil
}
