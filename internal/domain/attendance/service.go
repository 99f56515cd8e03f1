package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	// ClassifyDate buckets one date's usage rows into late, early-end,
	// not-on-job and exception lists
	ClassifyDate(ctx context.Context, date time.Time) (Classification, error)

	// GetDailyReport classifies one date, persists the resulting report and
	// returns it
	GetDailyReport(ctx context.Context, req DailyReportRequest) (DailyReport, error)

	// ImportLatestUsage ingests the newest DailyUsage export into the row
	// store
	ImportLatestUsage(ctx context.Context) (ImportResult, error)
}
