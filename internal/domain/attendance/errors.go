package attendance

import "errors"

// Attendance domain errors
var (
	ErrNoUsageData    = errors.New("no usage rows recorded for the requested date")
	ErrReportNotFound = errors.New("daily report not found")
	ErrNoExportFile   = errors.New("no daily usage export file found")
)
