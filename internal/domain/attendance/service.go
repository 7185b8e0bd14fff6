package attendance

import (
	"context"
	"time"
)

// AttendanceService runs the attendance-to-payroll pipeline.
type AttendanceService interface {
	// Process runs one batch for the requested mode and date. Only
	// run-level failures (reading the source tables) return an error;
	// per-employee failures are absorbed into the report's outcomes.
	Process(ctx context.Context, req ProcessRequest, actor Actor) (RunReport, error)

	// ListSummaries retrieves attendance summaries for a date.
	ListSummaries(ctx context.Context, date time.Time) ([]SummaryResponse, error)

	// ListTimesheets retrieves timesheet entries for a date.
	ListTimesheets(ctx context.Context, date time.Time) ([]TimesheetResponse, error)
}
