package report

import "context"

type ReportService interface {
	// ValidateStoredReport loads the persisted daily report for a date and
	// validates it in its stored JSON form
	ValidateStoredReport(ctx context.Context, date string) (ValidationResult, error)

	// Validate checks a report document already decoded from JSON. It never
	// fails; every anomaly becomes an error or warning entry in the result.
	Validate(doc map[string]any) ValidationResult
}
