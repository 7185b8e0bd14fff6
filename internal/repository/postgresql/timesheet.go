package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/wathiq-erp/attendance-engine/internal/domain/attendance"
	"github.com/wathiq-erp/attendance-engine/internal/pkg/database"
)

type timesheetRepositoryImpl struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) attendance.TimesheetRepository {
	return &timesheetRepositoryImpl{db: db}
}

const timesheetColumns = `id, employee_id, date, scheduled_start, scheduled_end, actual_start,
	actual_end, late_minutes, early_leave_minutes, absent, deduction_amount, note,
	created_at, updated_at`

// Upsert implements attendance.TimesheetRepository. Keyed by
// (employee_id, date).
func (r *timesheetRepositoryImpl) Upsert(ctx context.Context, entry attendance.TimesheetEntry) (attendance.TimesheetEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO timesheet_entries (
			employee_id, date, scheduled_start, scheduled_end, actual_start,
			actual_end, late_minutes, early_leave_minutes, absent, deduction_amount, note
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			scheduled_start = EXCLUDED.scheduled_start,
			scheduled_end = EXCLUDED.scheduled_end,
			actual_start = EXCLUDED.actual_start,
			actual_end = EXCLUDED.actual_end,
			late_minutes = EXCLUDED.late_minutes,
			early_leave_minutes = EXCLUDED.early_leave_minutes,
			absent = EXCLUDED.absent,
			deduction_amount = EXCLUDED.deduction_amount,
			note = EXCLUDED.note,
			updated_at = NOW()
		RETURNING %s
	`, timesheetColumns)

	var saved attendance.TimesheetEntry
	err := q.QueryRow(ctx, query,
		entry.EmployeeID, entry.Date, entry.ScheduledStart, entry.ScheduledEnd,
		entry.ActualStart, entry.ActualEnd, entry.LateMinutes, entry.EarlyLeaveMinutes,
		entry.Absent, entry.DeductionAmount, entry.Note,
	).Scan(
		&saved.ID, &saved.EmployeeID, &saved.Date, &saved.ScheduledStart, &saved.ScheduledEnd,
		&saved.ActualStart, &saved.ActualEnd, &saved.LateMinutes, &saved.EarlyLeaveMinutes,
		&saved.Absent, &saved.DeductionAmount, &saved.Note, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return attendance.TimesheetEntry{}, fmt.Errorf("failed to upsert timesheet entry: %w", err)
	}

	return saved, nil
}

// ListByDate implements attendance.TimesheetRepository.
func (r *timesheetRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]attendance.TimesheetEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM timesheet_entries
		WHERE date = $1
		ORDER BY employee_id
	`, timesheetColumns)

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []attendance.TimesheetEntry
	for rows.Next() {
		var e attendance.TimesheetEntry
		err := rows.Scan(
			&e.ID, &e.EmployeeID, &e.Date, &e.ScheduledStart, &e.ScheduledEnd,
			&e.ActualStart, &e.ActualEnd, &e.LateMinutes, &e.EarlyLeaveMinutes,
			&e.Absent, &e.DeductionAmount, &e.Note, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
