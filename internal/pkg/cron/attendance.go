package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/wathiq-erp/attendance-engine/internal/config"
	"github.com/wathiq-erp/attendance-engine/internal/domain/attendance"
)

// AttendanceJobs runs the automatic morning and evening processing
// passes. Each job fires hourly and no-ops outside its configured hour,
// so a missed tick is caught within the next hour.
type AttendanceJobs struct {
	attendanceSvc attendance.AttendanceService
	cfg           config.EngineConfig
}

func NewAttendanceJobs(attendanceSvc attendance.AttendanceService, cfg config.EngineConfig) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceSvc: attendanceSvc,
		cfg:           cfg,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("attendance_morning_run", 1*time.Hour, j.MorningRun)
	scheduler.AddJob("attendance_evening_run", 1*time.Hour, j.EveningRun)
}

// MorningRun processes check-ins recorded so far today. Re-running
// within the same hour is harmless because all writes are upserts.
func (j *AttendanceJobs) MorningRun(ctx context.Context) error {
	if time.Now().Hour() != j.cfg.MorningRunHour {
		return nil
	}
	return j.runProcess(ctx, "morning")
}

// EveningRun closes out the day: check-outs, absences, deductions.
func (j *AttendanceJobs) EveningRun(ctx context.Context) error {
	if time.Now().Hour() != j.cfg.EveningRunHour {
		return nil
	}
	return j.runProcess(ctx, "evening")
}

func (j *AttendanceJobs) runProcess(ctx context.Context, mode string) error {
	slog.Info("Cron: Starting attendance processing", "process_type", mode)

	report, err := j.attendanceSvc.Process(ctx, attendance.ProcessRequest{
		ProcessType: mode,
	}, attendance.SystemActor())
	if err != nil {
		return err
	}

	slog.Info("Cron: Attendance processing finished",
		"process_type", mode,
		"date", report.Date.Format("2006-01-02"),
		"processed_count", report.ProcessedCount,
		"notifications_sent", report.NotificationsSent)
	return nil
}
