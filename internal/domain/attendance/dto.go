package attendance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wathiq-erp/attendance-engine/internal/pkg/validator"
)

// ProcessRequest is the invocation contract of a processing run.
type ProcessRequest struct {
	ProcessType       string `json:"process_type"`
	TargetDate        string `json:"target_date"`
	SendNotifications *bool  `json:"send_notifications"`
}

func (r *ProcessRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ProcessType != "" && r.ProcessType != string(RunModeMorning) && r.ProcessType != string(RunModeEvening) {
		errs = append(errs, validator.ValidationError{
			Field:   "process_type",
			Message: "process_type must be \"morning\" or \"evening\"",
		})
	}

	if r.TargetDate != "" {
		if _, ok := validator.IsValidDate(r.TargetDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "target_date",
				Message: "target_date must be formatted YYYY-MM-DD",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Options resolves the request's defaults: morning mode, today's date,
// notifications enabled.
func (r *ProcessRequest) Options(now time.Time) RunOptions {
	opts := RunOptions{
		Mode:   RunModeMorning,
		Date:   now.Truncate(24 * time.Hour),
		Notify: true,
	}
	if r.ProcessType == string(RunModeEvening) {
		opts.Mode = RunModeEvening
	}
	if r.TargetDate != "" {
		if date, ok := validator.IsValidDate(r.TargetDate); ok {
			opts.Date = date
		}
	}
	if r.SendNotifications != nil {
		opts.Notify = *r.SendNotifications
	}
	return opts
}

// RunOptions is a validated, default-resolved run configuration.
type RunOptions struct {
	Mode   RunMode
	Date   time.Time
	Notify bool
}

// Outcome classifies what happened to one employee during a run, so
// callers and tests can assert on failures without inspecting logs.
type Outcome string

const (
	OutcomeOK                   Outcome = "ok"
	OutcomeSummaryWriteFailed   Outcome = "summary_write_failed"
	OutcomeTimesheetWriteFailed Outcome = "timesheet_write_failed"
	OutcomeNotifyFailed         Outcome = "notify_failed"
)

// EmployeeResult is the computed outcome for one employee in one run.
type EmployeeResult struct {
	EmployeeCode     string          `json:"employee_code"`
	Date             string          `json:"date"`
	InTime           *string         `json:"in_time"`
	OutTime          *string         `json:"out_time"`
	LateMinutes      int             `json:"late_minutes"`
	EarlyExitMinutes int             `json:"early_exit_minutes"`
	DeductionAmount  decimal.Decimal `json:"deduction_amount"`
	DeductionRuleID  *string         `json:"deduction_rule_id"`
	HasIssues        bool            `json:"has_issues"`
	IssueType        *IssueType      `json:"issue_type"`
	Outcome          Outcome         `json:"outcome"`
}

// RunReport is the full result of one processing run. Results exclude
// employees whose timesheet write failed; Outcomes carries every
// attempted employee including those.
type RunReport struct {
	Mode              RunMode
	Date              time.Time
	ProcessedCount    int
	NotificationsSent int
	Results           []EmployeeResult
	Outcomes          map[string]Outcome
}

// ProcessResponse is the wire shape of a successful run.
type ProcessResponse struct {
	Message           string           `json:"message"`
	ProcessedCount    int              `json:"processed_count"`
	NotificationsSent int              `json:"notifications_sent"`
	Results           []EmployeeResult `json:"results"`
}

// SummaryResponse is the wire shape of one attendance summary row.
type SummaryResponse struct {
	ID               string          `json:"id"`
	EmployeeCode     string          `json:"employee_code"`
	Date             string          `json:"date"`
	InTime           *string         `json:"in_time"`
	OutTime          *string         `json:"out_time"`
	TotalHours       *float64        `json:"total_hours"`
	ExpectedHours    *float64        `json:"expected_hours"`
	DifferenceHours  *float64        `json:"difference_hours"`
	LateMinutes      int             `json:"late_minutes"`
	EarlyExitMinutes int             `json:"early_exit_minutes"`
	DeductionRuleID  *string         `json:"deduction_rule_id"`
	DeductionAmount  decimal.Decimal `json:"deduction_amount"`
	AutoProcessed    bool            `json:"auto_processed"`
	HasIssues        bool            `json:"has_issues"`
	IssueType        *IssueType      `json:"issue_type"`
	Confirmed        bool            `json:"confirmed"`
}

// TimesheetResponse is the wire shape of one timesheet entry.
type TimesheetResponse struct {
	ID                string          `json:"id"`
	EmployeeID        string          `json:"employee_id"`
	Date              string          `json:"date"`
	ScheduledStart    *string         `json:"scheduled_start"`
	ScheduledEnd      *string         `json:"scheduled_end"`
	ActualStart       *string         `json:"actual_start"`
	ActualEnd         *string         `json:"actual_end"`
	LateMinutes       int             `json:"late_minutes"`
	EarlyLeaveMinutes int             `json:"early_leave_minutes"`
	Absent            bool            `json:"absent"`
	DeductionAmount   decimal.Decimal `json:"deduction_amount"`
	Note              *string         `json:"note"`
}
