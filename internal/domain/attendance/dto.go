package attendance

import (
	"github.com/fleetops/attendance-backend-go/internal/pkg/validator"
)

type DailyReportRequest struct {
	Date string `json:"date"`
}

func (r *DailyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DailySummary struct {
	TotalDrivers   int `json:"total_drivers"`
	TotalIssues    int `json:"total_issues"`
	LateCount      int `json:"late_count"`
	EarlyEndCount  int `json:"early_end_count"`
	NotOnJobCount  int `json:"not_on_job_count"`
	ExceptionCount int `json:"exception_count"`
}

// DriverIssue is one bucket entry of a daily report as delivered to the
// reporting collaborator.
type DriverIssue struct {
	Name         string  `json:"name"`
	EmployeeID   *string `json:"employee_id,omitempty"`
	AssetID      string  `json:"asset_id"`
	JobSite      string  `json:"job_site,omitempty"`
	Company      string  `json:"company,omitempty"`
	StartTime    *string `json:"start_time,omitempty"`
	EndTime      *string `json:"end_time,omitempty"`
	MinutesLate  *int    `json:"minutes_late,omitempty"`
	MinutesEarly *int    `json:"minutes_early,omitempty"`
	Issue        string  `json:"issue,omitempty"`
}

type DailyReport struct {
	ID               string        `json:"id"`
	Date             string        `json:"date"`
	LateDrivers      []DriverIssue `json:"late_drivers"`
	EarlyEndDrivers  []DriverIssue `json:"early_end_drivers"`
	NotOnJobDrivers  []DriverIssue `json:"not_on_job_drivers"`
	ExceptionDrivers []DriverIssue `json:"exception_drivers"`
	Summary          DailySummary  `json:"summary"`
	GeneratedAt      string        `json:"generated_at"`
}

// ImportResult summarizes one ingest run of a DailyUsage export file.
type ImportResult struct {
	ImportID     string `json:"import_id"`
	SourceFile   string `json:"source_file"`
	RowsRead     int    `json:"rows_read"`
	RowsStored   int    `json:"rows_stored"`
	RowsSkipped  int    `json:"rows_skipped"`
	DatesTouched int    `json:"dates_touched"`
}
