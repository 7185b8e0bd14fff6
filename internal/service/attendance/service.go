package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wathiq-erp/attendance-engine/internal/domain/attendance"
	"github.com/wathiq-erp/attendance-engine/internal/domain/deduction"
	"github.com/wathiq-erp/attendance-engine/internal/domain/employee"
	"github.com/wathiq-erp/attendance-engine/internal/domain/notification"
	"github.com/wathiq-erp/attendance-engine/internal/domain/punch"
	"github.com/wathiq-erp/attendance-engine/internal/domain/schedule"
	"github.com/wathiq-erp/attendance-engine/internal/pkg/timeutil"
)

type AttendanceServiceImpl struct {
	cfg Config

	employeeRepo  employee.EmployeeRepository
	typeRepo      schedule.AttendanceTypeRepository
	ruleRepo      deduction.RuleRepository
	punchRepo     punch.PunchRepository
	summaryRepo   attendance.SummaryRepository
	timesheetRepo attendance.TimesheetRepository

	notificationSvc notification.Service

	now func() time.Time
}

func NewAttendanceService(
	cfg Config,
	employeeRepo employee.EmployeeRepository,
	typeRepo schedule.AttendanceTypeRepository,
	ruleRepo deduction.RuleRepository,
	punchRepo punch.PunchRepository,
	summaryRepo attendance.SummaryRepository,
	timesheetRepo attendance.TimesheetRepository,
	notificationSvc notification.Service,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		cfg:             cfg,
		employeeRepo:    employeeRepo,
		typeRepo:        typeRepo,
		ruleRepo:        ruleRepo,
		punchRepo:       punchRepo,
		summaryRepo:     summaryRepo,
		timesheetRepo:   timesheetRepo,
		notificationSvc: notificationSvc,
		now:             time.Now,
	}
}

// Process implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Process(ctx context.Context, req attendance.ProcessRequest, actor attendance.Actor) (attendance.RunReport, error) {
	if err := req.Validate(); err != nil {
		return attendance.RunReport{}, err
	}
	opts := req.Options(s.now())

	// Any failure reading the four source tables aborts the whole run
	// before anything is written.
	employees, err := s.employeeRepo.ListActiveWithBiometricCode(ctx)
	if err != nil {
		return attendance.RunReport{}, fmt.Errorf("failed to list employees: %w", err)
	}

	types, err := s.typeRepo.List(ctx)
	if err != nil {
		return attendance.RunReport{}, fmt.Errorf("failed to list attendance types: %w", err)
	}

	rules, err := s.ruleRepo.ListOrdered(ctx)
	if err != nil {
		return attendance.RunReport{}, fmt.Errorf("failed to list deduction rules: %w", err)
	}

	punches, err := s.punchRepo.ListByDate(ctx, opts.Date)
	if err != nil {
		return attendance.RunReport{}, fmt.Errorf("failed to list punches: %w", err)
	}

	byCode := make(map[string][]punch.Punch)
	for _, p := range punches {
		byCode[p.BiometricCode] = append(byCode[p.BiometricCode], p)
	}

	report := attendance.RunReport{
		Mode:     opts.Mode,
		Date:     opts.Date,
		Outcomes: make(map[string]attendance.Outcome),
	}

	var consumedPunchIDs []string

	for _, emp := range employees {
		if emp.BiometricCode == nil {
			continue
		}
		empPunches := byCode[*emp.BiometricCode]

		// A morning run has nothing to say about an employee who has
		// not punched yet.
		if opts.Mode == attendance.RunModeMorning && len(empPunches) == 0 {
			continue
		}
		absent := opts.Mode == attendance.RunModeEvening && len(empPunches) == 0

		var attType *schedule.AttendanceType
		if emp.AttendanceTypeID != nil {
			if t, ok := types[*emp.AttendanceTypeID]; ok {
				attType = &t
			}
		}

		times := resolvePunches(empPunches, opts.Mode, s.cfg)
		v := computeVariance(times, attType, opts.Mode)
		ded := ComputeDeduction(v.lateMinutes, v.earlyExitMinutes, absent, emp.BasicSalary, rules)

		hasIssues, issueType := s.classifyIssue(ded, v, times, opts.Mode)
		result := attendance.EmployeeResult{
			EmployeeCode:     emp.EmployeeCode,
			Date:             opts.Date.Format("2006-01-02"),
			InTime:           clockPtr(times.in),
			OutTime:          clockPtr(times.out),
			LateMinutes:      v.lateMinutes,
			EarlyExitMinutes: v.earlyExitMinutes,
			DeductionAmount:  ded.Amount,
			DeductionRuleID:  ded.RuleID,
			HasIssues:        hasIssues,
			IssueType:        issueType,
			Outcome:          attendance.OutcomeOK,
		}

		summary := attendance.AttendanceSummary{
			EmployeeCode:     emp.EmployeeCode,
			Date:             opts.Date,
			InTime:           result.InTime,
			OutTime:          result.OutTime,
			TotalHours:       v.totalHours,
			ExpectedHours:    v.expectedHours,
			DifferenceHours:  v.differenceHours,
			LateMinutes:      v.lateMinutes,
			EarlyExitMinutes: v.earlyExitMinutes,
			DeductionRuleID:  ded.RuleID,
			DeductionAmount:  ded.Amount,
			AutoProcessed:    true,
			ProcessedByKind:  actor.Kind,
			ProcessedByID:    actor.UserID,
			HasIssues:        hasIssues,
			IssueType:        issueType,
		}
		if opts.Mode == attendance.RunModeMorning {
			// Morning runs persist the check-in only.
			summary.OutTime = nil
		}

		if _, err := s.summaryRepo.Upsert(ctx, summary); err != nil {
			// Summary loss is tolerated; the timesheet and the
			// notification are still attempted.
			slog.Error("failed to upsert attendance summary",
				"employee_code", emp.EmployeeCode,
				"date", result.Date,
				"error", err)
			result.Outcome = attendance.OutcomeSummaryWriteFailed
		}

		entry := attendance.TimesheetEntry{
			EmployeeID:        emp.ID,
			Date:              opts.Date,
			ScheduledStart:    clockPtr(v.scheduledStart),
			ScheduledEnd:      clockPtr(v.scheduledEnd),
			ActualStart:       result.InTime,
			ActualEnd:         result.OutTime,
			LateMinutes:       v.lateMinutes,
			EarlyLeaveMinutes: v.earlyExitMinutes,
			Absent:            absent,
			DeductionAmount:   ded.Amount,
			Note:              timesheetNote(absent, v),
		}

		if _, err := s.timesheetRepo.Upsert(ctx, entry); err != nil {
			// Without the timesheet the employee drops out of this
			// run: no punch consumption, no notification. They stay
			// eligible for the next run.
			slog.Error("failed to upsert timesheet entry",
				"employee_id", emp.ID,
				"date", result.Date,
				"error", err)
			report.Outcomes[emp.EmployeeCode] = attendance.OutcomeTimesheetWriteFailed
			continue
		}

		for _, p := range empPunches {
			consumedPunchIDs = append(consumedPunchIDs, p.ID)
		}
		report.ProcessedCount++

		if opts.Notify && emp.UserID != nil {
			if s.notify(ctx, emp, result, opts, absent) {
				report.NotificationsSent++
			} else if result.Outcome == attendance.OutcomeOK {
				result.Outcome = attendance.OutcomeNotifyFailed
			}
		}

		report.Outcomes[emp.EmployeeCode] = result.Outcome
		report.Results = append(report.Results, result)
	}

	// Only the evening run closes the day out; the morning run leaves
	// the flag untouched so the evening run still sees the day's first
	// punch. One batched update, deliberately not transactional with
	// the upserts: a crash mid-run leaves re-invocation as the recovery
	// path, which the natural-key upserts keep safe.
	if opts.Mode == attendance.RunModeEvening && len(consumedPunchIDs) > 0 {
		if err := s.punchRepo.MarkProcessed(ctx, consumedPunchIDs); err != nil {
			slog.Error("failed to mark punches processed",
				"date", opts.Date.Format("2006-01-02"),
				"count", len(consumedPunchIDs),
				"error", err)
		}
	}

	return report, nil
}

// notify dispatches the in-app notification, stamps the per-mode sent
// flag, and lets the dispatcher fire the best-effort email. Returns
// whether the notification row made it in.
func (s *AttendanceServiceImpl) notify(ctx context.Context, emp employee.Employee, result attendance.EmployeeResult, opts attendance.RunOptions, absent bool) bool {
	title, message := notificationText(opts.Mode, result, absent)

	err := s.notificationSvc.Dispatch(ctx, notification.CreateNotificationRequest{
		RecipientID: *emp.UserID,
		Email:       emp.Email,
		Type:        notification.TypeAttendance,
		Title:       title,
		Message:     message,
		Data: map[string]interface{}{
			"employee_code":      result.EmployeeCode,
			"date":               result.Date,
			"process_type":       string(opts.Mode),
			"in_time":            result.InTime,
			"out_time":           result.OutTime,
			"late_minutes":       result.LateMinutes,
			"early_exit_minutes": result.EarlyExitMinutes,
			"deduction_amount":   result.DeductionAmount.String(),
			"has_issues":         result.HasIssues,
			"issue_type":         result.IssueType,
		},
	})
	if err != nil {
		slog.Error("failed to dispatch attendance notification",
			"employee_code", result.EmployeeCode,
			"error", err)
		return false
	}

	if err := s.summaryRepo.MarkNotified(ctx, result.EmployeeCode, opts.Date, opts.Mode, s.now()); err != nil {
		slog.Error("failed to stamp notification-sent flag",
			"employee_code", result.EmployeeCode,
			"error", err)
	}

	return true
}

// classifyIssue flags a summary and picks the single highest-priority
// reason: deduction, late, early_exit, missing_in, missing_out.
func (s *AttendanceServiceImpl) classifyIssue(ded Deduction, v variance, times punchTimes, mode attendance.RunMode) (bool, *attendance.IssueType) {
	switch {
	case ded.Amount.IsPositive():
		return true, issuePtr(attendance.IssueDeduction)
	case v.lateMinutes > s.cfg.LateIssueThresholdMinutes:
		return true, issuePtr(attendance.IssueLate)
	case v.earlyExitMinutes > 0:
		return true, issuePtr(attendance.IssueEarlyExit)
	case times.in == nil:
		return true, issuePtr(attendance.IssueMissingIn)
	case mode == attendance.RunModeEvening && times.out == nil:
		return true, issuePtr(attendance.IssueMissingOut)
	}
	return false, nil
}

// ListSummaries implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListSummaries(ctx context.Context, date time.Time) ([]attendance.SummaryResponse, error) {
	summaries, err := s.summaryRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance summaries: %w", err)
	}

	responses := make([]attendance.SummaryResponse, 0, len(summaries))
	for _, sum := range summaries {
		responses = append(responses, attendance.SummaryResponse{
			ID:               sum.ID,
			EmployeeCode:     sum.EmployeeCode,
			Date:             sum.Date.Format("2006-01-02"),
			InTime:           sum.InTime,
			OutTime:          sum.OutTime,
			TotalHours:       sum.TotalHours,
			ExpectedHours:    sum.ExpectedHours,
			DifferenceHours:  sum.DifferenceHours,
			LateMinutes:      sum.LateMinutes,
			EarlyExitMinutes: sum.EarlyExitMinutes,
			DeductionRuleID:  sum.DeductionRuleID,
			DeductionAmount:  sum.DeductionAmount,
			AutoProcessed:    sum.AutoProcessed,
			HasIssues:        sum.HasIssues,
			IssueType:        sum.IssueType,
			Confirmed:        sum.Confirmed,
		})
	}

	return responses, nil
}

// ListTimesheets implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListTimesheets(ctx context.Context, date time.Time) ([]attendance.TimesheetResponse, error) {
	entries, err := s.timesheetRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheet entries: %w", err)
	}

	responses := make([]attendance.TimesheetResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, attendance.TimesheetResponse{
			ID:                e.ID,
			EmployeeID:        e.EmployeeID,
			Date:              e.Date.Format("2006-01-02"),
			ScheduledStart:    e.ScheduledStart,
			ScheduledEnd:      e.ScheduledEnd,
			ActualStart:       e.ActualStart,
			ActualEnd:         e.ActualEnd,
			LateMinutes:       e.LateMinutes,
			EarlyLeaveMinutes: e.EarlyLeaveMinutes,
			Absent:            e.Absent,
			DeductionAmount:   e.DeductionAmount,
			Note:              e.Note,
		})
	}

	return responses, nil
}

// notificationText builds the mode-specific Arabic notification body.
func notificationText(mode attendance.RunMode, result attendance.EmployeeResult, absent bool) (string, string) {
	date := result.Date

	if mode == attendance.RunModeMorning {
		var message string
		if result.InTime == nil {
			message = fmt.Sprintf("تعذر قراءة وقت حضورك بتاريخ %s، يرجى مراجعة قسم الموارد البشرية", date)
		} else {
			message = fmt.Sprintf("تم تسجيل حضورك بتاريخ %s في تمام الساعة %s", date, *result.InTime)
			if result.LateMinutes > 0 {
				message += fmt.Sprintf("، مع تسجيل تأخير %d دقيقة", result.LateMinutes)
			}
		}
		return "تسجيل الحضور", message
	}

	var message string
	switch {
	case absent:
		message = fmt.Sprintf("لم يتم تسجيل أي حضور لك بتاريخ %s وتم احتسابه غياباً", date)
	case result.OutTime == nil:
		message = fmt.Sprintf("لم يتم تسجيل انصرافك بتاريخ %s، يرجى مراجعة قسم الموارد البشرية", date)
	default:
		message = fmt.Sprintf("تم تسجيل انصرافك بتاريخ %s في تمام الساعة %s", date, *result.OutTime)
	}
	if result.DeductionAmount.IsPositive() {
		message += fmt.Sprintf("، وتم احتساب خصم قدره %s", result.DeductionAmount.StringFixed(2))
	}
	return "تسجيل الانصراف", message
}

// timesheetNote summarizes the day's findings for payroll reviewers.
func timesheetNote(absent bool, v variance) *string {
	if absent {
		note := "غياب غير مسجل الحضور"
		return &note
	}

	var parts []string
	if v.lateMinutes > 0 {
		parts = append(parts, fmt.Sprintf("تأخير %d دقيقة", v.lateMinutes))
	}
	if v.earlyExitMinutes > 0 {
		parts = append(parts, fmt.Sprintf("انصراف مبكر %d دقيقة", v.earlyExitMinutes))
	}
	if len(parts) == 0 {
		return nil
	}

	note := strings.Join(parts, "، ")
	return &note
}

func clockPtr(minutes *int) *string {
	if minutes == nil {
		return nil
	}
	clock := timeutil.Clock(*minutes)
	return &clock
}

func issuePtr(t attendance.IssueType) *attendance.IssueType {
	return &t
}
