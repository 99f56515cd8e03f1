package trend

import (
	"context"

	"github.com/fleetops/attendance-backend-go/internal/domain/attendance"
)

type TrendService interface {
	// Aggregate folds an ordered sequence of daily classifications into
	// per-driver trend records and a window summary. Pure; no I/O.
	Aggregate(days []attendance.Classification) ([]DriverTrendRecord, TrendSummary)

	// GenerateTrendReport classifies every recorded date in the requested
	// window and aggregates the results into a trend report
	GenerateTrendReport(ctx context.Context, req TrendReportRequest) (TrendReport, error)
}
