package attendance

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wathiq-erp/attendance-engine/internal/domain/attendance"
	"github.com/wathiq-erp/attendance-engine/internal/domain/deduction"
	"github.com/wathiq-erp/attendance-engine/internal/domain/employee"
	"github.com/wathiq-erp/attendance-engine/internal/domain/notification"
	"github.com/wathiq-erp/attendance-engine/internal/domain/punch"
	"github.com/wathiq-erp/attendance-engine/internal/domain/schedule"
)

// ===== in-memory fakes =====

type fakeEmployeeRepo struct {
	employees []employee.Employee
	err       error
}

func (f *fakeEmployeeRepo) ListActiveWithBiometricCode(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, f.err
}

func (f *fakeEmployeeRepo) GetByEmployeeCode(ctx context.Context, code string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.EmployeeCode == code {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

type fakeTypeRepo struct {
	types map[string]schedule.AttendanceType
	err   error
}

func (f *fakeTypeRepo) List(ctx context.Context) (map[string]schedule.AttendanceType, error) {
	return f.types, f.err
}

type fakeRuleRepo struct {
	rules []deduction.Rule
	err   error
}

func (f *fakeRuleRepo) ListOrdered(ctx context.Context) ([]deduction.Rule, error) {
	return f.rules, f.err
}

type fakePunchRepo struct {
	punches       []punch.Punch
	err           error
	markedBatches [][]string
	markErr       error
}

func (f *fakePunchRepo) CreateBatch(ctx context.Context, punches []punch.Punch) error {
	f.punches = append(f.punches, punches...)
	return nil
}

// Mirrors the real SQL: reads never filter on the processed flag, and
// marking flips the flag in place.
func (f *fakePunchRepo) ListByDate(ctx context.Context, date time.Time) ([]punch.Punch, error) {
	return f.punches, f.err
}

func (f *fakePunchRepo) MarkProcessed(ctx context.Context, ids []string) error {
	f.markedBatches = append(f.markedBatches, ids)
	if f.markErr != nil {
		return f.markErr
	}
	for _, id := range ids {
		for i := range f.punches {
			if f.punches[i].ID == id {
				f.punches[i].Processed = true
			}
		}
	}
	return nil
}

type fakeSummaryRepo struct {
	rows      map[string]attendance.AttendanceSummary
	upsertErr map[string]error // keyed by employee code
	notified  []string
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{rows: make(map[string]attendance.AttendanceSummary), upsertErr: make(map[string]error)}
}

func summaryKey(code string, date time.Time) string {
	return code + "|" + date.Format("2006-01-02")
}

func (f *fakeSummaryRepo) Upsert(ctx context.Context, s attendance.AttendanceSummary) (attendance.AttendanceSummary, error) {
	if err := f.upsertErr[s.EmployeeCode]; err != nil {
		return attendance.AttendanceSummary{}, err
	}
	key := summaryKey(s.EmployeeCode, s.Date)
	if existing, ok := f.rows[key]; ok {
		s.ID = existing.ID
	} else {
		s.ID = "sum-" + s.EmployeeCode
	}
	f.rows[key] = s
	return s, nil
}

func (f *fakeSummaryRepo) ListByDate(ctx context.Context, date time.Time) ([]attendance.AttendanceSummary, error) {
	var out []attendance.AttendanceSummary
	for _, s := range f.rows {
		if s.Date.Equal(date) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSummaryRepo) MarkNotified(ctx context.Context, code string, date time.Time, mode attendance.RunMode, at time.Time) error {
	f.notified = append(f.notified, code)
	return nil
}

type fakeTimesheetRepo struct {
	rows      map[string]attendance.TimesheetEntry
	upsertErr map[string]error // keyed by employee ID
}

func newFakeTimesheetRepo() *fakeTimesheetRepo {
	return &fakeTimesheetRepo{rows: make(map[string]attendance.TimesheetEntry), upsertErr: make(map[string]error)}
}

func (f *fakeTimesheetRepo) Upsert(ctx context.Context, e attendance.TimesheetEntry) (attendance.TimesheetEntry, error) {
	if err := f.upsertErr[e.EmployeeID]; err != nil {
		return attendance.TimesheetEntry{}, err
	}
	key := e.EmployeeID + "|" + e.Date.Format("2006-01-02")
	if existing, ok := f.rows[key]; ok {
		e.ID = existing.ID
	} else {
		e.ID = "ts-" + e.EmployeeID
	}
	f.rows[key] = e
	return e, nil
}

func (f *fakeTimesheetRepo) ListByDate(ctx context.Context, date time.Time) ([]attendance.TimesheetEntry, error) {
	var out []attendance.TimesheetEntry
	for _, e := range f.rows {
		if e.Date.Equal(date) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeNotificationSvc struct {
	dispatched []notification.CreateNotificationRequest
	err        map[string]error // keyed by recipient ID
}

func newFakeNotificationSvc() *fakeNotificationSvc {
	return &fakeNotificationSvc{err: make(map[string]error)}
}

func (f *fakeNotificationSvc) Dispatch(ctx context.Context, req notification.CreateNotificationRequest) error {
	if err := f.err[req.RecipientID]; err != nil {
		return err
	}
	f.dispatched = append(f.dispatched, req)
	return nil
}

func (f *fakeNotificationSvc) GetNotifications(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]notification.NotificationResponse, int, error) {
	return nil, 0, nil
}

func (f *fakeNotificationSvc) MarkAsRead(ctx context.Context, recipientID string, req notification.MarkAsReadRequest) error {
	return nil
}

// ===== fixtures =====

type testEnv struct {
	svc       *AttendanceServiceImpl
	employees *fakeEmployeeRepo
	types     *fakeTypeRepo
	rules     *fakeRuleRepo
	punches   *fakePunchRepo
	summaries *fakeSummaryRepo
	sheets    *fakeTimesheetRepo
	notifier  *fakeNotificationSvc
}

var testDate = time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC)

func newTestEnv() *testEnv {
	env := &testEnv{
		employees: &fakeEmployeeRepo{},
		types:     &fakeTypeRepo{types: map[string]schedule.AttendanceType{}},
		rules:     &fakeRuleRepo{},
		punches:   &fakePunchRepo{},
		summaries: newFakeSummaryRepo(),
		sheets:    newFakeTimesheetRepo(),
		notifier:  newFakeNotificationSvc(),
	}
	env.svc = &AttendanceServiceImpl{
		cfg:             DefaultConfig(),
		employeeRepo:    env.employees,
		typeRepo:        env.types,
		ruleRepo:        env.rules,
		punchRepo:       env.punches,
		summaryRepo:     env.summaries,
		timesheetRepo:   env.sheets,
		notificationSvc: env.notifier,
		now:             func() time.Time { return testDate.Add(10 * time.Hour) },
	}
	return env
}

func strPtr(s string) *string { return &s }

func (env *testEnv) addEmployee(code string, salary *decimal.Decimal, typeID *string, userID *string) {
	emp := employee.Employee{
		ID:               "emp-" + code,
		UserID:           userID,
		EmployeeCode:     code,
		BiometricCode:    strPtr("bio-" + code),
		FullName:         "Employee " + code,
		AttendanceTypeID: typeID,
		BasicSalary:      salary,
		EmploymentStatus: employee.EmploymentStatusActive,
	}
	if userID != nil {
		emp.Email = strPtr(code + "@example.com")
	}
	env.employees.employees = append(env.employees.employees, emp)
}

func (env *testEnv) addPunches(code string, clocks ...string) {
	for _, c := range clocks {
		env.punches.punches = append(env.punches.punches, punch.Punch{
			ID:            fmt.Sprintf("p-%s-%d", code, len(env.punches.punches)),
			BiometricCode: "bio-" + code,
			Date:          testDate,
			ClockTime:     c,
		})
	}
}

func (env *testEnv) addStandardType() {
	env.types.types["std"] = schedule.AttendanceType{
		ID:                    "std",
		Name:                  "standard",
		StartTime:             strPtr("08:00"),
		EndTime:               strPtr("16:00"),
		AllowLateMinutes:      10,
		AllowEarlyExitMinutes: 0,
	}
}

func processReq(mode string) attendance.ProcessRequest {
	return attendance.ProcessRequest{ProcessType: mode, TargetDate: testDate.Format("2006-01-02")}
}

// ===== tests =====

func TestProcess_MorningScenario(t *testing.T) {
	env := newTestEnv()
	env.addStandardType()
	env.rules.rules = []deduction.Rule{
		lateRule("late-0-30", intPtr(0), intPtr(30), deduction.ValueTypePercentage, "0.1"),
	}
	env.addEmployee("E1", decPtr("3000"), strPtr("std"), strPtr("user-1"))
	env.addPunches("E1", "08:25")

	report, err := env.svc.Process(context.Background(), processReq("morning"), attendance.SystemActor())
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	res := report.Results[0]
	assert.Equal(t, "E1", res.EmployeeCode)
	require.NotNil(t, res.InTime)
	assert.Equal(t, "08:25", *res.InTime)
	assert.Nil(t, res.OutTime)
	assert.Equal(t, 15, res.LateMinutes)
	assert.Equal(t, "10.00", res.DeductionAmount.StringFixed(2))
	require.NotNil(t, res.DeductionRuleID)
	assert.Equal(t, "late-0-30", *res.DeductionRuleID)
	assert.True(t, res.HasIssues)
	require.NotNil(t, res.IssueType)
	assert.Equal(t, attendance.IssueDeduction, *res.IssueType)
	assert.Equal(t, attendance.OutcomeOK, res.Outcome)
	assert.Equal(t, 1, report.ProcessedCount)
	assert.Equal(t, 1, report.NotificationsSent)

	sum := env.summaries.rows[summaryKey("E1", testDate)]
	assert.True(t, sum.AutoProcessed)
	assert.False(t, sum.Confirmed)
	assert.Equal(t, attendance.ActorSystem, sum.ProcessedByKind)
	assert.Nil(t, sum.ProcessedByID)
	assert.Nil(t, sum.OutTime)

	entry := env.sheets.rows["emp-E1|2025-04-07"]
	assert.Equal(t, 15, entry.LateMinutes)
	assert.False(t, entry.Absent)
	assert.Equal(t, "10.00", entry.DeductionAmount.StringFixed(2))
}

func TestProcess_MorningSkipsEmployeesWithoutPunches(t *testing.T) {
	env := newTestEnv()
	env.addStandardType()
	env.addEmployee("E1", decPtr("3000"), strPtr("std"), strPtr("user-1"))

	report, err := env.svc.Process(context.Background(), processReq("morning"), attendance.SystemActor())
	require.NoError(t, err)

	assert.Empty(t, report.Results)
	assert.Zero(t, report.ProcessedCount)
	assert.Empty(t, env.summaries.rows)
	assert.Empty(t, env.sheets.rows)
	assert.Empty(t, env.notifier.dispatched)
}

func TestProcess_EveningMissingOut(t *testing.T) {
	env := newTestEnv()
	env.addStandardType()
	env.addEmployee("E1", decPtr("3000"), strPtr("std"), nil)
	env.addPunches("E1", "08:00", "09:30")

	report, err := env.svc.Process(context.Background(), processReq("evening"), attendance.SystemActor())
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	res := report.Results[0]
	require.NotNil(t, res.InTime)
	assert.Equal(t, "08:00", *res.InTime)
	assert.Nil(t, res.OutTime)
	assert.True(t, res.HasIssues)
	require.NotNil(t, res.IssueType)
	assert.Equal(t, attendance.IssueMissingOut, *res.IssueType)
}

func TestProcess_EveningAbsence(t *testing.T) {
	env := newTestEnv()
	env.addStandardType()
	env.rules.rules = []deduction.Rule{
		{ID: "abs", RuleType: deduction.RuleTypeAbsence, ValueType: deduction.ValueTypePercentage, Value: decimal.NewFromInt(1)},
	}
	env.addEmployee("E1", decPtr("3000"), strPtr("std"), nil)

	report, err := env.svc.Process(context.Background(), processReq("evening"), attendance.SystemActor())
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	res := report.Results[0]
	assert.Nil(t, res.InTime)
	assert.Equal(t, "100.00", res.DeductionAmount.StringFixed(2))
	require.NotNil(t, res.DeductionRuleID)
	assert.Equal(t, "abs", *res.DeductionRuleID)

	entry := env.sheets.rows["emp-E1|2025-04-07"]
	assert.True(t, entry.Absent)
}

func TestProcess_EveningWindowDisambiguation(t *testing.T) {
	env := newTestEnv()
	env.addStandardType()
	env.addEmployee("E1", decPtr("3000"), strPtr("std"), nil)
	env.addPunches("E1", "08:00", "13:00", "15:30", "22:00")

	report, err := env.svc.Process(context.Background(), processReq("evening"), attendance.SystemActor())
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	res := report.Results[0]
	require.NotNil(t, res.InTime)
	assert.Equal(t, "08:00", *res.InTime)
	require.NotNil(t, res.OutTime)
	assert.Equal(t, "22:00", *res.OutTime)

	sum := env.summaries.rows[summaryKey("E1", testDate)]
	require.NotNil(t, sum.OutTime)
	assert.Equal(t, "22:00", *sum.OutTime)
}

func TestProcess_SalaryGate(t *testing.T) {
	env := newTestEnv()
	env.addStandardType()
	env.rules.rules = []deduction.Rule{
		lateRule("late", intPtr(0), nil, deduction.ValueTypePercentage, "0.5"),
	}
	env.addEmployee("E1", nil, strPtr("std"), nil)
	env.addPunches("E1", "10:00")

	report, err := env.svc.Process(context.Background(), processReq("morning"), attendance.SystemActor())
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	res := report.Results[0]
	assert.Equal(t, 110, res.LateMinutes)
	assert.True(t, res.DeductionAmount.IsZero())
	assert.Nil(t, res.DeductionRuleID)
	// Still flagged: lateness above the threshold.
	require.NotNil(t, res.IssueType)
	assert.Equal(t, attendance.IssueLate, *res.IssueType)
}

func TestProcess_Idempotence(t *testing.T) {
	env := newTestEnv()
	env.addStandardType()
	env.rules.rules = []deduction.Rule{
		lateRule("late-0-30", intPtr(0), intPtr(30), deduction.ValueTypePercentage, "0.1"),
	}
	env.addEmployee("E1", decPtr("3000"), strPtr("std"), nil)
	env.addPunches("E1", "08:25", "16:10")

	first, err := env.svc.Process(context.Background(), processReq("evening"), attendance.SystemActor())
	require.NoError(t, err)
	firstSum := env.summaries.rows[summaryKey("E1", testDate)]

	// The first run stamped the punches processed; the second run must
	// still read them and land on the same row.
	second, err := env.svc.Process(context.Background(), processReq("evening"), attendance.SystemActor())
	require.NoError(t, err)
	secondSum := env.summaries.rows[summaryKey("E1", testDate)]

	// One row per natural key, identical content, same identity.
	assert.Len(t, env.summaries.rows, 1)
	assert.Len(t, env.sheets.rows, 1)
	assert.Equal(t, firstSum, secondSum)
	assert.Equal(t, first.Results, second.Results)
}

func TestProcess_RunLevelFailureWritesNothing(t *testing.T) {
	cases := []struct {
		name  string
		wound func(env *testEnv)
	}{
		{"employees", func(env *testEnv) { env.employees.err = errors.New("db down") }},
		{"attendance types", func(env *testEnv) { env.types.err = errors.New("db down") }},
		{"deduction rules", func(env *testEnv) { env.rules.err = errors.New("db down") }},
		{"punches", func(env *testEnv) { env.punches.err = errors.New("db down") }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			env := newTestEnv()
			env.addStandardType()
			env.addEmployee("E1", decPtr("3000"), strPtr("std"), strPtr("user-1"))
			env.addPunches("E1", "08:00")
			c.wound(env)

			_, err := env.svc.Process(context.Background(), processReq("morning"), attendance.SystemActor())
			require.Error(t, err)
			assert.Empty(t, env.summaries.rows)
			assert.Empty(t, env.sheets.rows)
			assert.Empty(t, env.notifier.dispatched)
			assert.Empty(t, env.punches.markedBatches)
		})
	}
}

func TestProcess_SummaryWriteFailureIsNonFatal(t *testing.T) {
	env := newTestEnv()
	env.addStandardType()
	env.addEmployee("E1", decPtr("3000"), strPtr("std"), strPtr("user-1"))
	env.addPunches("E1", "08:00")
	env.summaries.upsertErr["E1"] = errors.New("constraint violation")

	report, err := env.svc.Process(context.Background(), processReq("morning"), attendance.SystemActor())
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, attendance.OutcomeSummaryWriteFailed, report.Results[0].Outcome)
	// Timesheet and notification still went through.
	assert.Len(t, env.sheets.rows, 1)
	assert.Len(t, env.notifier.dispatched, 1)
	assert.Equal(t, 1, report.ProcessedCount)
}

func TestProcess_TimesheetWriteFailureSkipsRemaining(t *testing.T) {
	env := newTestEnv()
	env.addStandardType()
	env.addEmployee("E1", decPtr("3000"), strPtr("std"), strPtr("user-1"))
	env.addEmployee("E2", decPtr("3000"), strPtr("std"), strPtr("user-2"))
	env.addPunches("E1", "08:00")
	env.addPunches("E2", "08:05")
	env.sheets.upsertErr["emp-E1"] = errors.New("constraint violation")

	report, err := env.svc.Process(context.Background(), processReq("evening"), attendance.SystemActor())
	require.NoError(t, err)

	// E1 drops out of the results; E2 is unaffected.
	require.Len(t, report.Results, 1)
	assert.Equal(t, "E2", report.Results[0].EmployeeCode)
	assert.Equal(t, attendance.OutcomeTimesheetWriteFailed, report.Outcomes["E1"])
	assert.Equal(t, 1, report.ProcessedCount)

	// E1's punches stay unconsumed and no notification is sent.
	require.Len(t, env.punches.markedBatches, 1)
	assert.Equal(t, []string{"p-E2-1"}, env.punches.markedBatches[0])
	require.Len(t, env.notifier.dispatched, 1)
	assert.Equal(t, "user-2", env.notifier.dispatched[0].RecipientID)
}

func TestProcess_NotifyFailureIsSwallowed(t *testing.T) {
	env := newTestEnv()
	env.addStandardType()
	env.addEmployee("E1", decPtr("3000"), strPtr("std"), strPtr("user-1"))
	env.addPunches("E1", "08:00")
	env.notifier.err["user-1"] = errors.New("smtp exploded")

	report, err := env.svc.Process(context.Background(), processReq("morning"), attendance.SystemActor())
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, attendance.OutcomeNotifyFailed, report.Results[0].Outcome)
	assert.Equal(t, 1, report.ProcessedCount)
	assert.Zero(t, report.NotificationsSent)
}

func TestProcess_NotificationsDisabled(t *testing.T) {
	env := newTestEnv()
	env.addStandardType()
	env.addEmployee("E1", decPtr("3000"), strPtr("std"), strPtr("user-1"))
	env.addPunches("E1", "08:00")

	off := false
	req := processReq("morning")
	req.SendNotifications = &off

	report, err := env.svc.Process(context.Background(), req, attendance.SystemActor())
	require.NoError(t, err)

	assert.Equal(t, 1, report.ProcessedCount)
	assert.Zero(t, report.NotificationsSent)
	assert.Empty(t, env.notifier.dispatched)
	assert.Empty(t, env.summaries.notified)
}

func TestProcess_NoLinkedAccountNoNotification(t *testing.T) {
	env := newTestEnv()
	env.addStandardType()
	env.addEmployee("E1", decPtr("3000"), strPtr("std"), nil)
	env.addPunches("E1", "08:00")

	report, err := env.svc.Process(context.Background(), processReq("morning"), attendance.SystemActor())
	require.NoError(t, err)

	assert.Equal(t, 1, report.ProcessedCount)
	assert.Zero(t, report.NotificationsSent)
	assert.Empty(t, env.notifier.dispatched)
	assert.Equal(t, attendance.OutcomeOK, report.Results[0].Outcome)
}

func TestProcess_PunchConsumptionBatchedOnce(t *testing.T) {
	env := newTestEnv()
	env.addStandardType()
	env.addEmployee("E1", decPtr("3000"), strPtr("std"), nil)
	env.addEmployee("E2", decPtr("3000"), strPtr("std"), nil)
	env.addPunches("E1", "08:00", "16:05")
	env.addPunches("E2", "08:10")

	_, err := env.svc.Process(context.Background(), processReq("evening"), attendance.SystemActor())
	require.NoError(t, err)

	require.Len(t, env.punches.markedBatches, 1)
	assert.ElementsMatch(t, []string{"p-E1-0", "p-E1-1", "p-E2-2"}, env.punches.markedBatches[0])
}

func TestProcess_MorningRunLeavesPunchesForEvening(t *testing.T) {
	env := newTestEnv()
	env.addStandardType()
	env.addEmployee("E1", decPtr("3000"), strPtr("std"), nil)
	env.addPunches("E1", "08:00")

	_, err := env.svc.Process(context.Background(), processReq("morning"), attendance.SystemActor())
	require.NoError(t, err)
	assert.Empty(t, env.punches.markedBatches)

	env.addPunches("E1", "16:05")

	report, err := env.svc.Process(context.Background(), processReq("evening"), attendance.SystemActor())
	require.NoError(t, err)

	// The evening run still sees the morning punch, so the clock-in
	// stays the day's first punch rather than the afternoon one.
	require.Len(t, report.Results, 1)
	res := report.Results[0]
	require.NotNil(t, res.InTime)
	assert.Equal(t, "08:00", *res.InTime)
	require.NotNil(t, res.OutTime)
	assert.Equal(t, "16:05", *res.OutTime)

	entry := env.sheets.rows["emp-E1|2025-04-07"]
	assert.False(t, entry.Absent)

	require.Len(t, env.punches.markedBatches, 1)
	assert.ElementsMatch(t, []string{"p-E1-0", "p-E1-1"}, env.punches.markedBatches[0])
	for _, p := range env.punches.punches {
		assert.True(t, p.Processed)
	}
}

func TestProcess_MorningOnlyPuncherNotAbsent(t *testing.T) {
	env := newTestEnv()
	env.addStandardType()
	env.rules.rules = []deduction.Rule{
		{ID: "abs", RuleType: deduction.RuleTypeAbsence, ValueType: deduction.ValueTypePercentage, Value: decimal.NewFromInt(1)},
	}
	env.addEmployee("E1", decPtr("3000"), strPtr("std"), nil)
	env.addPunches("E1", "08:00")

	_, err := env.svc.Process(context.Background(), processReq("morning"), attendance.SystemActor())
	require.NoError(t, err)

	report, err := env.svc.Process(context.Background(), processReq("evening"), attendance.SystemActor())
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	res := report.Results[0]
	require.NotNil(t, res.InTime)
	assert.Equal(t, "08:00", *res.InTime)
	assert.True(t, res.DeductionAmount.IsZero())
	assert.Nil(t, res.DeductionRuleID)
	require.NotNil(t, res.IssueType)
	assert.Equal(t, attendance.IssueMissingOut, *res.IssueType)

	entry := env.sheets.rows["emp-E1|2025-04-07"]
	assert.False(t, entry.Absent)
}

func TestProcess_UserActorStamped(t *testing.T) {
	env := newTestEnv()
	env.addStandardType()
	env.addEmployee("E1", decPtr("3000"), strPtr("std"), nil)
	env.addPunches("E1", "08:00")

	_, err := env.svc.Process(context.Background(), processReq("morning"), attendance.UserActor("reviewer-7"))
	require.NoError(t, err)

	sum := env.summaries.rows[summaryKey("E1", testDate)]
	assert.Equal(t, attendance.ActorUser, sum.ProcessedByKind)
	require.NotNil(t, sum.ProcessedByID)
	assert.Equal(t, "reviewer-7", *sum.ProcessedByID)
}

func TestProcess_Defaults(t *testing.T) {
	env := newTestEnv()
	env.addStandardType()
	env.addEmployee("E1", decPtr("3000"), strPtr("std"), nil)

	// Empty request: morning mode, today, notifications on. No punches
	// today, so the morning run skips everyone.
	report, err := env.svc.Process(context.Background(), attendance.ProcessRequest{}, attendance.SystemActor())
	require.NoError(t, err)
	assert.Equal(t, attendance.RunModeMorning, report.Mode)
	assert.Zero(t, report.ProcessedCount)
}

func TestProcess_InvalidRequest(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Process(context.Background(), attendance.ProcessRequest{ProcessType: "midnight"}, attendance.SystemActor())
	require.Error(t, err)

	_, err = env.svc.Process(context.Background(), attendance.ProcessRequest{TargetDate: "07-04-2025"}, attendance.SystemActor())
	require.Error(t, err)
}

func TestProcess_NotificationPayload(t *testing.T) {
	env := newTestEnv()
	env.addStandardType()
	env.rules.rules = []deduction.Rule{
		lateRule("late-0-30", intPtr(0), intPtr(30), deduction.ValueTypePercentage, "0.1"),
	}
	env.addEmployee("E1", decPtr("3000"), strPtr("std"), strPtr("user-1"))
	env.addPunches("E1", "08:25")

	_, err := env.svc.Process(context.Background(), processReq("morning"), attendance.SystemActor())
	require.NoError(t, err)

	require.Len(t, env.notifier.dispatched, 1)
	n := env.notifier.dispatched[0]
	assert.Equal(t, notification.TypeAttendance, n.Type)
	assert.Equal(t, "user-1", n.RecipientID)
	require.NotNil(t, n.Email)
	assert.Equal(t, "E1@example.com", *n.Email)
	assert.Equal(t, "E1", n.Data["employee_code"])
	assert.Equal(t, "10", n.Data["deduction_amount"])
	assert.Equal(t, 15, n.Data["late_minutes"])

	// The sent flag was stamped on the summary.
	assert.Equal(t, []string{"E1"}, env.summaries.notified)
}
