package attendance

import (
	"context"
	"time"
)

// SummaryRepository persists day-level attendance summaries.
type SummaryRepository interface {
	// Upsert inserts or updates the summary keyed by (employee_code, date).
	Upsert(ctx context.Context, summary AttendanceSummary) (AttendanceSummary, error)

	// ListByDate retrieves all summaries for a date ordered by employee code.
	ListByDate(ctx context.Context, date time.Time) ([]AttendanceSummary, error)

	// MarkNotified stamps the per-mode notification-sent timestamp.
	MarkNotified(ctx context.Context, employeeCode string, date time.Time, mode RunMode, at time.Time) error
}

// TimesheetRepository persists payroll-facing timesheet entries.
type TimesheetRepository interface {
	// Upsert inserts or updates the entry keyed by (employee_id, date).
	Upsert(ctx context.Context, entry TimesheetEntry) (TimesheetEntry, error)

	// ListByDate retrieves all entries for a date ordered by employee ID.
	ListByDate(ctx context.Context, date time.Time) ([]TimesheetEntry, error)
}
