package attendance

import (
	"time"

	"github.com/fleetops/attendance-backend-go/internal/pkg/timeparse"
)

// UsageRow is one raw row of a DailyUsage export after column aliasing.
// Values are kept as the export delivered them; parsing happens during
// classification.
type UsageRow struct {
	AssetLabel string
	Driver     string
	Company    string
	JobSite    string
	Date       string
	TimeStart  string
	TimeStop   string
	Duration   string
	Status     string
}

// DriverDayRecord is one driver's attendance facts for one calendar date.
// DriverName is always the normalized grouping key.
type DriverDayRecord struct {
	DriverName string
	EmployeeID *string
	AssetID    string
	Date       time.Time
	StartTime  *timeparse.TimeOfDay
	EndTime    *timeparse.TimeOfDay
	JobSite    string
	Company    string
}

// Issue classifies an anomalous driver-day.
type Issue string

const (
	IssueMissingTimeRecord Issue = "missing_time_record"
	IssueNoTimeRecords     Issue = "no_time_records"
	IssueShortDay          Issue = "short_day"
	IssueLongDay           Issue = "long_day"
)

// ClassifiedDay is a DriverDayRecord plus derived flags. Never mutated after
// classification.
type ClassifiedDay struct {
	DriverDayRecord
	IsLate       bool
	MinutesLate  *int
	IsEarlyEnd   bool
	MinutesEarly *int
	IsAbsent     bool
	Issue        *Issue
}

// Classification is one day's bucketed output. A driver-day may appear in
// more than one bucket (late AND short-day, for example); that is intended.
type Classification struct {
	Date      time.Time
	Late      []ClassifiedDay
	EarlyEnd  []ClassifiedDay
	NotOnJob  []ClassifiedDay
	Exception []ClassifiedDay
	Summary   DailySummary
}

// ClassifierConfig holds the expected-shift thresholds. Immutable; built
// once from configuration and injected into the classifier.
type ClassifierConfig struct {
	ExpectedStart     timeparse.TimeOfDay
	ExpectedEnd       timeparse.TimeOfDay
	LateGraceMinutes  int
	EarlyGraceMinutes int
	ShortDayMinutes   int
	LongDayMinutes    int
}
