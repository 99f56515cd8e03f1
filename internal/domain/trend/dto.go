package trend

import (
	"time"

	"github.com/fleetops/attendance-backend-go/internal/domain/attendance"
	"github.com/fleetops/attendance-backend-go/internal/pkg/validator"
)

type TrendReportRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *TrendReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	}
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	}

	if r.StartDate != "" && r.EndDate != "" {
		start, okStart := validator.IsValidDate(r.StartDate)
		if !okStart {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
		end, okEnd := validator.IsValidDate(r.EndDate)
		if !okEnd {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
		if okStart && okEnd && start.After(end) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DriverTrend is the reporting-collaborator view of one flagged or observed
// driver.
type DriverTrend struct {
	EmployeeID    *string  `json:"employee_id"`
	Name          string   `json:"name"`
	Flags         []string `json:"flags"`
	DaysAnalyzed  int      `json:"days_analyzed"`
	LateCount     int      `json:"late_count"`
	EarlyEndCount int      `json:"early_end_count"`
	AbsenceCount  int      `json:"absence_count"`
}

type TrendReport struct {
	DateRange      DateRange                          `json:"date_range"`
	DailySummaries map[string]attendance.DailySummary `json:"daily_summaries"`
	DriverTrends   []DriverTrend                      `json:"driver_trends"`
	TrendSummary   TrendSummary                       `json:"trend_summary"`
	GeneratedAt    string                             `json:"generated_at"`
}

// Window converts the request to time bounds. Call only after Validate.
func (r *TrendReportRequest) Window() (time.Time, time.Time) {
	start, _ := time.Parse("2006-01-02", r.StartDate)
	end, _ := time.Parse("2006-01-02", r.EndDate)
	return start, end
}
