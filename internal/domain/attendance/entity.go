package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunMode selects which punches a processing run considers.
type RunMode string

const (
	// RunModeMorning processes check-ins only.
	RunModeMorning RunMode = "morning"
	// RunModeEvening processes both check-in and check-out.
	RunModeEvening RunMode = "evening"
)

// IssueType is the single highest-priority reason a summary was flagged.
type IssueType string

const (
	IssueDeduction  IssueType = "deduction"
	IssueLate       IssueType = "late"
	IssueEarlyExit  IssueType = "early_exit"
	IssueMissingIn  IssueType = "missing_in"
	IssueMissingOut IssueType = "missing_out"
)

// AttendanceSummary is the day-level attendance record, one per
// (employee_code, date). Upserted by the engine, later confirmed or
// edited by a human reviewer.
type AttendanceSummary struct {
	ID               string
	EmployeeCode     string
	Date             time.Time
	InTime           *string // "HH:MM"
	OutTime          *string
	TotalHours       *float64
	ExpectedHours    *float64
	DifferenceHours  *float64
	LateMinutes      int
	EarlyExitMinutes int
	DeductionRuleID  *string
	DeductionAmount  decimal.Decimal
	AutoProcessed    bool
	ProcessedByKind  ActorKind
	ProcessedByID    *string
	HasIssues        bool
	IssueType        *IssueType
	Confirmed        bool
	MorningNotifiedAt *time.Time
	EveningNotifiedAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TimesheetEntry is the payroll-facing day record, one per
// (employee_id, date). Upserted alongside the summary and consumed by
// payroll reporting.
type TimesheetEntry struct {
	ID                string
	EmployeeID        string
	Date              time.Time
	ScheduledStart    *string
	ScheduledEnd      *string
	ActualStart       *string
	ActualEnd         *string
	LateMinutes       int
	EarlyLeaveMinutes int
	Absent            bool
	DeductionAmount   decimal.Decimal
	Note              *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
