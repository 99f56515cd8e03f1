package trend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fleetops/attendance-backend-go/internal/domain/attendance"
	"github.com/fleetops/attendance-backend-go/internal/domain/trend"
	"github.com/fleetops/attendance-backend-go/internal/pkg/timeparse"
)

type TrendServiceImpl struct {
	attendanceService attendance.AttendanceService
	usageRepo         attendance.UsageRepository
	cfg               trend.Config
}

func NewTrendService(
	attendanceService attendance.AttendanceService,
	usageRepo attendance.UsageRepository,
	cfg trend.Config,
) trend.TrendService {
	return &TrendServiceImpl{
		attendanceService: attendanceService,
		usageRepo:         usageRepo,
		cfg:               cfg,
	}
}

// Aggregate implements trend.TrendService. The fold is idempotent per
// (driver, day): a duplicate row for the same driver on the same date moves
// each counter at most once, and contributes one series point. Flags are
// evaluated only after every day has been folded; partial-window flags would
// be wrong by construction.
func (s *TrendServiceImpl) Aggregate(days []attendance.Classification) ([]trend.DriverTrendRecord, trend.TrendSummary) {
	records := make(map[string]*trend.DriverTrendRecord)

	for _, day := range days {
		countedLate := make(map[string]bool)
		countedEarly := make(map[string]bool)
		countedAbsent := make(map[string]bool)
		observed := make(map[string]bool)

		fold := func(entries []attendance.ClassifiedDay, counted map[string]bool, counter func(*trend.DriverTrendRecord)) {
			for _, entry := range entries {
				rec := s.ensure(records, entry)
				if counted != nil && !counted[entry.DriverName] {
					counted[entry.DriverName] = true
					counter(rec)
				}
				s.observe(rec, entry, day.Date, observed)
			}
		}

		fold(day.Late, countedLate, func(r *trend.DriverTrendRecord) { r.LateCount++ })
		fold(day.EarlyEnd, countedEarly, func(r *trend.DriverTrendRecord) { r.EarlyEndCount++ })
		fold(day.NotOnJob, countedAbsent, func(r *trend.DriverTrendRecord) { r.AbsenceCount++ })
		fold(day.Exception, nil, nil)
	}

	keys := make([]string, 0, len(records))
	for key := range records {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	summary := trend.TrendSummary{
		DaysAnalyzed:         len(days),
		TotalDriversAnalyzed: len(records),
	}

	result := make([]trend.DriverTrendRecord, 0, len(records))
	for _, key := range keys {
		rec := records[key]
		s.evaluateFlags(rec)

		if rec.HasFlag(trend.FlagChronicLate) {
			summary.ChronicLateCount++
		}
		if rec.HasFlag(trend.FlagRepeatedAbsence) {
			summary.RepeatedAbsenceCount++
		}
		if rec.HasFlag(trend.FlagUnstableShift) {
			summary.UnstableShiftCount++
		}

		result = append(result, *rec)
	}

	return result, summary
}

func (s *TrendServiceImpl) ensure(records map[string]*trend.DriverTrendRecord, entry attendance.ClassifiedDay) *trend.DriverTrendRecord {
	rec, ok := records[entry.DriverName]
	if !ok {
		rec = &trend.DriverTrendRecord{DriverKey: entry.DriverName}
		records[entry.DriverName] = rec
	}
	if rec.EmployeeID == nil && entry.EmployeeID != nil {
		rec.EmployeeID = entry.EmployeeID
	}
	return rec
}

// observe appends the day's start/stop moments to the driver's series once,
// no matter how many buckets the driver-day landed in.
func (s *TrendServiceImpl) observe(rec *trend.DriverTrendRecord, entry attendance.ClassifiedDay, date time.Time, observed map[string]bool) {
	if observed[entry.DriverName] {
		return
	}
	observed[entry.DriverName] = true

	rec.DaysAnalyzed++
	if entry.StartTime != nil {
		rec.StartSeries = append(rec.StartSeries, trend.TimePoint{Date: date, Time: *entry.StartTime})
	}
	if entry.EndTime != nil {
		rec.EndSeries = append(rec.EndSeries, trend.TimePoint{Date: date, Time: *entry.EndTime})
	}
}

func (s *TrendServiceImpl) evaluateFlags(rec *trend.DriverTrendRecord) {
	if rec.LateCount >= s.cfg.ChronicLateThreshold {
		rec.Flags = append(rec.Flags, trend.FlagChronicLate)
	}
	if rec.AbsenceCount >= s.cfg.RepeatedAbsenceThreshold {
		rec.Flags = append(rec.Flags, trend.FlagRepeatedAbsence)
	}
	if s.hasUnstableShifts(rec) {
		rec.Flags = append(rec.Flags, trend.FlagUnstableShift)
	}
}

// hasUnstableShifts checks three independent minute-ranges: start times,
// stop times, and per-date shift durations. Any one meeting the threshold
// flags the driver; a steady 8-hour shift at wildly different times of day
// is just as unstable as a fixed start with wildly different durations.
// Each sub-check needs at least two data points.
func (s *TrendServiceImpl) hasUnstableShifts(rec *trend.DriverTrendRecord) bool {
	if seriesRange(rec.StartSeries) >= s.cfg.UnstableShiftMinutes {
		return true
	}
	if seriesRange(rec.EndSeries) >= s.cfg.UnstableShiftMinutes {
		return true
	}
	return durationRange(rec.StartSeries, rec.EndSeries) >= s.cfg.UnstableShiftMinutes
}

// seriesRange is max - min over the series in total minutes, or -1 with
// fewer than two points so no threshold can match it.
func seriesRange(series []trend.TimePoint) int {
	if len(series) < 2 {
		return -1
	}
	minVal := series[0].Time.TotalMinutes()
	maxVal := minVal
	for _, point := range series[1:] {
		total := point.Time.TotalMinutes()
		if total < minVal {
			minVal = total
		}
		if total > maxVal {
			maxVal = total
		}
	}
	return maxVal - minVal
}

// durationRange pairs starts and stops by calendar date. A shift whose stop
// landed on an ambiguous date never pairs and silently contributes nothing;
// that matching gap is a known limitation of date-keyed pairing.
func durationRange(starts, ends []trend.TimePoint) int {
	endByDate := make(map[string]timeparse.TimeOfDay, len(ends))
	for _, point := range ends {
		endByDate[point.Date.Format("2006-01-02")] = point.Time
	}

	var durations []int
	for _, point := range starts {
		if end, ok := endByDate[point.Date.Format("2006-01-02")]; ok {
			durations = append(durations, timeparse.MinutesBetween(point.Time, end))
		}
	}
	if len(durations) < 2 {
		return -1
	}

	minVal, maxVal := durations[0], durations[0]
	for _, d := range durations[1:] {
		if d < minVal {
			minVal = d
		}
		if d > maxVal {
			maxVal = d
		}
	}
	return maxVal - minVal
}

// GenerateTrendReport implements trend.TrendService.
func (s *TrendServiceImpl) GenerateTrendReport(ctx context.Context, req trend.TrendReportRequest) (trend.TrendReport, error) {
	if err := req.Validate(); err != nil {
		return trend.TrendReport{}, err
	}

	start, end := req.Window()
	dates, err := s.usageRepo.ListDates(ctx, start, end)
	if err != nil {
		return trend.TrendReport{}, fmt.Errorf("failed to list recorded dates: %w", err)
	}
	if len(dates) == 0 {
		return trend.TrendReport{}, trend.ErrEmptyWindow
	}

	dailySummaries := make(map[string]attendance.DailySummary, len(dates))
	classifications := make([]attendance.Classification, 0, len(dates))
	for _, date := range dates {
		classification, err := s.attendanceService.ClassifyDate(ctx, date)
		if err != nil {
			return trend.TrendReport{}, fmt.Errorf("failed to classify %s: %w", date.Format("2006-01-02"), err)
		}
		classifications = append(classifications, classification)
		dailySummaries[date.Format("2006-01-02")] = classification.Summary
	}

	records, summary := s.Aggregate(classifications)

	// Only flagged drivers make the report; the summary still covers
	// everyone analyzed.
	driverTrends := make([]trend.DriverTrend, 0)
	for _, rec := range records {
		if len(rec.Flags) == 0 {
			continue
		}
		flags := make([]string, 0, len(rec.Flags))
		for _, f := range rec.Flags {
			flags = append(flags, string(f))
		}
		driverTrends = append(driverTrends, trend.DriverTrend{
			EmployeeID:    rec.EmployeeID,
			Name:          rec.DriverKey,
			Flags:         flags,
			DaysAnalyzed:  rec.DaysAnalyzed,
			LateCount:     rec.LateCount,
			EarlyEndCount: rec.EarlyEndCount,
			AbsenceCount:  rec.AbsenceCount,
		})
	}

	return trend.TrendReport{
		DateRange: trend.DateRange{
			Start: start.Format("2006-01-02"),
			End:   end.Format("2006-01-02"),
		},
		DailySummaries: dailySummaries,
		DriverTrends:   driverTrends,
		TrendSummary:   summary,
		GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}
