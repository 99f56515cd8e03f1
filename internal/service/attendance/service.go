package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fleetops/attendance-backend-go/internal/domain/attendance"
	"github.com/fleetops/attendance-backend-go/internal/pkg/assetlabel"
	"github.com/fleetops/attendance-backend-go/internal/pkg/timeparse"
	"github.com/fleetops/attendance-backend-go/internal/pkg/usagefile"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	usageRepo  attendance.UsageRepository
	reportRepo attendance.ReportRepository
	extractor  *assetlabel.Extractor
	reader     *usagefile.Reader
	cfg        attendance.ClassifierConfig
}

func NewAttendanceService(
	usageRepo attendance.UsageRepository,
	reportRepo attendance.ReportRepository,
	extractor *assetlabel.Extractor,
	reader *usagefile.Reader,
	cfg attendance.ClassifierConfig,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		usageRepo:  usageRepo,
		reportRepo: reportRepo,
		extractor:  extractor,
		reader:     reader,
		cfg:        cfg,
	}
}

// ClassifyDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClassifyDate(ctx context.Context, date time.Time) (attendance.Classification, error) {
	rows, err := s.usageRepo.GetDay(ctx, date)
	if err != nil {
		return attendance.Classification{}, fmt.Errorf("failed to get usage rows: %w", err)
	}

	return s.classifyRows(date, rows), nil
}

// classifyRows buckets one day's rows. Malformed rows (blank driver
// identity) are dropped silently; the export is known to carry noise and a
// bad row must never abort the batch.
func (s *AttendanceServiceImpl) classifyRows(date time.Time, rows []attendance.UsageRow) attendance.Classification {
	result := attendance.Classification{
		Date:      date,
		Late:      []attendance.ClassifiedDay{},
		EarlyEnd:  []attendance.ClassifiedDay{},
		NotOnJob:  []attendance.ClassifiedDay{},
		Exception: []attendance.ClassifiedDay{},
	}

	seenDrivers := make(map[string]bool)
	skipped := 0

	for _, row := range rows {
		assetID, labelName := s.extractor.Extract(row.AssetLabel)

		rawName := row.Driver
		if rawName == "" {
			rawName = labelName
		}
		driverKey := assetlabel.NormalizeName(rawName)
		if driverKey == "" {
			skipped++
			continue
		}

		var employeeID *string
		if id, ok := assetlabel.EmployeeID(rawName); ok {
			employeeID = &id
		}

		rec := attendance.DriverDayRecord{
			DriverName: driverKey,
			EmployeeID: employeeID,
			AssetID:    assetID,
			Date:       date,
			JobSite:    row.JobSite,
			Company:    row.Company,
		}

		start, startErr := timeparse.Parse(row.TimeStart)
		end, endErr := timeparse.Parse(row.TimeStop)
		hasStart := startErr == nil
		hasEnd := endErr == nil
		if hasStart {
			rec.StartTime = &start
		}
		if hasEnd {
			rec.EndTime = &end
		}

		day := attendance.ClassifiedDay{DriverDayRecord: rec}

		switch {
		case !hasStart && !hasEnd:
			issue := attendance.IssueNoTimeRecords
			day.Issue = &issue
			day.IsAbsent = true
			result.Exception = append(result.Exception, day)

		case hasStart != hasEnd:
			issue := attendance.IssueMissingTimeRecord
			day.Issue = &issue
			day.IsAbsent = true
			result.NotOnJob = append(result.NotOnJob, day)

		default:
			// Deviations are signed: negative just means early/late on the
			// other side, never a rollover.
			if late := timeparse.DeviationMinutes(s.cfg.ExpectedStart, start); late > s.cfg.LateGraceMinutes {
				day.IsLate = true
				day.MinutesLate = &late
			}
			if early := timeparse.DeviationMinutes(end, s.cfg.ExpectedEnd); early > s.cfg.EarlyGraceMinutes {
				day.IsEarlyEnd = true
				day.MinutesEarly = &early
			}

			duration := timeparse.MinutesBetween(start, end)
			if duration < s.cfg.ShortDayMinutes {
				issue := attendance.IssueShortDay
				day.Issue = &issue
			} else if duration > s.cfg.LongDayMinutes {
				issue := attendance.IssueLongDay
				day.Issue = &issue
			}

			// One driver-day can land in several buckets; each bucket gets
			// the fully derived record.
			if day.IsLate {
				result.Late = append(result.Late, day)
			}
			if day.IsEarlyEnd {
				result.EarlyEnd = append(result.EarlyEnd, day)
			}
			if day.Issue != nil {
				result.Exception = append(result.Exception, day)
			}
		}

		if day.IsLate || day.IsEarlyEnd || day.IsAbsent || day.Issue != nil {
			seenDrivers[driverKey] = true
		}
	}

	if skipped > 0 {
		slog.Debug("Skipped malformed usage rows", "date", date.Format("2006-01-02"), "count", skipped)
	}

	result.Summary = attendance.DailySummary{
		TotalDrivers:   len(seenDrivers),
		LateCount:      len(result.Late),
		EarlyEndCount:  len(result.EarlyEnd),
		NotOnJobCount:  len(result.NotOnJob),
		ExceptionCount: len(result.Exception),
	}
	result.Summary.TotalIssues = result.Summary.LateCount +
		result.Summary.EarlyEndCount +
		result.Summary.NotOnJobCount +
		result.Summary.ExceptionCount

	return result
}

// GetDailyReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetDailyReport(ctx context.Context, req attendance.DailyReportRequest) (attendance.DailyReport, error) {
	if err := req.Validate(); err != nil {
		return attendance.DailyReport{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	rows, err := s.usageRepo.GetDay(ctx, date)
	if err != nil {
		return attendance.DailyReport{}, fmt.Errorf("failed to get usage rows: %w", err)
	}
	if len(rows) == 0 {
		return attendance.DailyReport{}, attendance.ErrNoUsageData
	}

	classification := s.classifyRows(date, rows)
	report := buildDailyReport(classification)

	if err := s.reportRepo.SaveDailyReport(ctx, report); err != nil {
		return attendance.DailyReport{}, fmt.Errorf("failed to save daily report: %w", err)
	}

	return report, nil
}

func buildDailyReport(c attendance.Classification) attendance.DailyReport {
	return attendance.DailyReport{
		ID:               uuid.NewString(),
		Date:             c.Date.Format("2006-01-02"),
		LateDrivers:      toDriverIssues(c.Late),
		EarlyEndDrivers:  toDriverIssues(c.EarlyEnd),
		NotOnJobDrivers:  toDriverIssues(c.NotOnJob),
		ExceptionDrivers: toDriverIssues(c.Exception),
		Summary:          c.Summary,
		GeneratedAt:      time.Now().UTC().Format(time.RFC3339),
	}
}

func toDriverIssues(days []attendance.ClassifiedDay) []attendance.DriverIssue {
	issues := make([]attendance.DriverIssue, 0, len(days))
	for _, day := range days {
		issue := attendance.DriverIssue{
			Name:         day.DriverName,
			EmployeeID:   day.EmployeeID,
			AssetID:      day.AssetID,
			JobSite:      day.JobSite,
			Company:      day.Company,
			MinutesLate:  day.MinutesLate,
			MinutesEarly: day.MinutesEarly,
		}
		if day.StartTime != nil {
			formatted := day.StartTime.Format()
			issue.StartTime = &formatted
		}
		if day.EndTime != nil {
			formatted := day.EndTime.Format()
			issue.EndTime = &formatted
		}
		if day.Issue != nil {
			issue.Issue = string(*day.Issue)
		}
		issues = append(issues, issue)
	}
	return issues
}

// Accepted date layouts in DailyUsage exports, newest vendor format first.
var exportDateLayouts = []string{"2006-01-02", "01/02/2006", "1/2/2006"}

// ImportLatestUsage implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ImportLatestUsage(ctx context.Context) (attendance.ImportResult, error) {
	path, err := s.reader.LatestExport()
	if err != nil {
		return attendance.ImportResult{}, err
	}

	rows, err := s.reader.ReadRows(path)
	if err != nil {
		return attendance.ImportResult{}, fmt.Errorf("failed to read export %s: %w", path, err)
	}

	byDate := make(map[time.Time][]attendance.UsageRow)
	skipped := 0
	for _, row := range rows {
		date, ok := parseExportDate(row.Date)
		if !ok {
			skipped++
			continue
		}
		byDate[date] = append(byDate[date], row)
	}

	result := attendance.ImportResult{
		ImportID:    uuid.NewString(),
		SourceFile:  path,
		RowsRead:    len(rows),
		RowsSkipped: skipped,
	}

	for date, dateRows := range byDate {
		stored, err := s.usageRepo.StoreDay(ctx, date, dateRows)
		if err != nil {
			return attendance.ImportResult{}, fmt.Errorf("failed to store rows for %s: %w", date.Format("2006-01-02"), err)
		}
		result.RowsStored += stored
		result.DatesTouched++
	}

	slog.Info("Imported daily usage export",
		"file", path,
		"rows_read", result.RowsRead,
		"rows_stored", result.RowsStored,
		"rows_skipped", result.RowsSkipped,
		"dates", result.DatesTouched)

	return result, nil
}

func parseExportDate(raw string) (time.Time, bool) {
	for _, layout := range exportDateLayouts {
		if date, err := time.Parse(layout, raw); err == nil {
			return date, true
		}
	}
	return time.Time{}, false
}
