package attendance

import (
	"context"
	"time"
)

// UsageRepository is the row source the classifier reads from. Tests supply
// an in-memory implementation; production uses PostgreSQL fed by the ingest
// job.
type UsageRepository interface {
	// GetDay retrieves all usage rows recorded for one calendar date
	GetDay(ctx context.Context, date time.Time) ([]UsageRow, error)

	// StoreDay replaces the usage rows recorded for one calendar date
	StoreDay(ctx context.Context, date time.Time, rows []UsageRow) (int, error)

	// ListDates returns the dates with recorded rows inside [start, end],
	// in ascending order
	ListDates(ctx context.Context, start, end time.Time) ([]time.Time, error)
}

// ReportRepository persists generated daily reports for later retrieval and
// validation.
type ReportRepository interface {
	SaveDailyReport(ctx context.Context, report DailyReport) error

	GetDailyReport(ctx context.Context, date string) (DailyReport, error)

	// GetDailyReportRaw returns the stored report JSON as persisted. The
	// report validator consumes this form so that structural defects in the
	// stored document surface instead of being masked by struct decoding.
	GetDailyReportRaw(ctx context.Context, date string) ([]byte, error)
}
