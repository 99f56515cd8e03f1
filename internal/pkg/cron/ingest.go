package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fleetops/attendance-backend-go/internal/domain/attendance"
)

// IngestJobs watches the export directory for fresh DailyUsage files.
type IngestJobs struct {
	attendanceService attendance.AttendanceService
	interval          time.Duration
}

func NewIngestJobs(attendanceService attendance.AttendanceService, intervalMinutes int) *IngestJobs {
	if intervalMinutes <= 0 {
		intervalMinutes = 60
	}
	return &IngestJobs{
		attendanceService: attendanceService,
		interval:          time.Duration(intervalMinutes) * time.Minute,
	}
}

func (j *IngestJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("ingest_daily_usage", j.interval, j.IngestDailyUsage)
}

// IngestDailyUsage imports the newest export. An empty export directory is
// normal between upload cycles, not a failure.
func (j *IngestJobs) IngestDailyUsage(ctx context.Context) error {
	result, err := j.attendanceService.ImportLatestUsage(ctx)
	if err != nil {
		if errors.Is(err, attendance.ErrNoExportFile) {
			slog.Info("Cron: No usage export waiting for import")
			return nil
		}
		return err
	}

	slog.Info("Cron: Usage export imported",
		"source_file", result.SourceFile,
		"rows_read", result.RowsRead,
		"rows_stored", result.RowsStored,
		"dates_touched", result.DatesTouched)
	return nil
}
