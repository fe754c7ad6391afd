package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/worktime"
)

type AttendanceJobs struct {
	reportSvc report.ReportService
	calendar  worktime.Calendar
	now       func() time.Time
}

func NewAttendanceJobs(reportSvc report.ReportService, calendar worktime.Calendar, now func() time.Time) *AttendanceJobs {
	if now == nil {
		now = time.Now
	}
	return &AttendanceJobs{
		reportSvc: reportSvc,
		calendar:  calendar,
		now:       now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("archive_attendance", interval, j.ArchiveYesterday)
}

// ArchiveYesterday stores the attendance CSV of the previous local day. Days
// already archived are left alone, so every tick after midnight is safe.
func (j *AttendanceJobs) ArchiveYesterday(ctx context.Context) error {
	today, err := j.calendar.ParseDayKey(j.calendar.DayKey(j.now()))
	if err != nil {
		return err
	}
	yesterday := j.calendar.DayKey(today.AddDate(0, 0, -1))

	result, err := j.reportSvc.ArchiveDay(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to archive attendance for %s: %w", yesterday, err)
	}

	if result.Archived {
		slog.Info("Cron: attendance archived", "date", result.Date, "path", result.Path, "rows", result.Rows)
	}
	return nil
}
