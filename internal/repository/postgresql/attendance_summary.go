package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/wathiq-erp/attendance-engine/internal/domain/attendance"
	"github.com/wathiq-erp/attendance-engine/internal/pkg/database"
)

type summaryRepositoryImpl struct {
	db *database.DB
}

func NewSummaryRepository(db *database.DB) attendance.SummaryRepository {
	return &summaryRepositoryImpl{db: db}
}

const summaryColumns = `id, employee_code, date, in_time, out_time, total_hours, expected_hours,
	difference_hours, late_minutes, early_exit_minutes, deduction_rule_id, deduction_amount,
	auto_processed, processed_by_kind, processed_by_id, has_issues, issue_type, confirmed,
	morning_notified_at, evening_notified_at, created_at, updated_at`

// Upsert implements attendance.SummaryRepository. Keyed by
// (employee_code, date) so repeated runs rewrite in place. The
// notification timestamps are stamped separately and survive the upsert.
func (r *summaryRepositoryImpl) Upsert(ctx context.Context, summary attendance.AttendanceSummary) (attendance.AttendanceSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO attendance_summaries (
			employee_code, date, in_time, out_time, total_hours, expected_hours,
			difference_hours, late_minutes, early_exit_minutes, deduction_rule_id,
			deduction_amount, auto_processed, processed_by_kind, processed_by_id,
			has_issues, issue_type, confirmed
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)
		ON CONFLICT (employee_code, date) DO UPDATE SET
			in_time = EXCLUDED.in_time,
			out_time = EXCLUDED.out_time,
			total_hours = EXCLUDED.total_hours,
			expected_hours = EXCLUDED.expected_hours,
			difference_hours = EXCLUDED.difference_hours,
			late_minutes = EXCLUDED.late_minutes,
			early_exit_minutes = EXCLUDED.early_exit_minutes,
			deduction_rule_id = EXCLUDED.deduction_rule_id,
			deduction_amount = EXCLUDED.deduction_amount,
			auto_processed = EXCLUDED.auto_processed,
			processed_by_kind = EXCLUDED.processed_by_kind,
			processed_by_id = EXCLUDED.processed_by_id,
			has_issues = EXCLUDED.has_issues,
			issue_type = EXCLUDED.issue_type,
			confirmed = EXCLUDED.confirmed,
			updated_at = NOW()
		RETURNING %s
	`, summaryColumns)

	var saved attendance.AttendanceSummary
	err := q.QueryRow(ctx, query,
		summary.EmployeeCode, summary.Date, summary.InTime, summary.OutTime,
		summary.TotalHours, summary.ExpectedHours, summary.DifferenceHours,
		summary.LateMinutes, summary.EarlyExitMinutes, summary.DeductionRuleID,
		summary.DeductionAmount, summary.AutoProcessed, summary.ProcessedByKind,
		summary.ProcessedByID, summary.HasIssues, summary.IssueType, summary.Confirmed,
	).Scan(
		&saved.ID, &saved.EmployeeCode, &saved.Date, &saved.InTime, &saved.OutTime,
		&saved.TotalHours, &saved.ExpectedHours, &saved.DifferenceHours,
		&saved.LateMinutes, &saved.EarlyExitMinutes, &saved.DeductionRuleID,
		&saved.DeductionAmount, &saved.AutoProcessed, &saved.ProcessedByKind,
		&saved.ProcessedByID, &saved.HasIssues, &saved.IssueType, &saved.Confirmed,
		&saved.MorningNotifiedAt, &saved.EveningNotifiedAt, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return attendance.AttendanceSummary{}, fmt.Errorf("failed to upsert attendance summary: %w", err)
	}

	return saved, nil
}

// ListByDate implements attendance.SummaryRepository.
func (r *summaryRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]attendance.AttendanceSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_summaries
		WHERE date = $1
		ORDER BY employee_code
	`, summaryColumns)

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []attendance.AttendanceSummary
	for rows.Next() {
		var s attendance.AttendanceSummary
		err := rows.Scan(
			&s.ID, &s.EmployeeCode, &s.Date, &s.InTime, &s.OutTime,
			&s.TotalHours, &s.ExpectedHours, &s.DifferenceHours,
			&s.LateMinutes, &s.EarlyExitMinutes, &s.DeductionRuleID,
			&s.DeductionAmount, &s.AutoProcessed, &s.ProcessedByKind,
			&s.ProcessedByID, &s.HasIssues, &s.IssueType, &s.Confirmed,
			&s.MorningNotifiedAt, &s.EveningNotifiedAt, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

// MarkNotified implements attendance.SummaryRepository.
func (r *summaryRepositoryImpl) MarkNotified(ctx context.Context, employeeCode string, date time.Time, mode attendance.RunMode, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	column := "morning_notified_at"
	if mode == attendance.RunModeEvening {
		column = "evening_notified_at"
	}

	query := fmt.Sprintf(`
		UPDATE attendance_summaries
		SET %s = $1, updated_at = NOW()
		WHERE employee_code = $2 AND date = $3
	`, column)

	tag, err := q.Exec(ctx, query, at, employeeCode, date)
	if err != nil {
		return fmt.Errorf("failed to stamp notification time: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrSummaryNotFound
	}

	return nil
}
