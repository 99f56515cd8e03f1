package trend

import (
	"context"
	"testing"
	"time"

	"github.com/fleetops/attendance-backend-go/internal/domain/attendance"
	"github.com/fleetops/attendance-backend-go/internal/domain/trend"
	"github.com/fleetops/attendance-backend-go/internal/pkg/timeparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) timeparse.TimeOfDay {
	tod, err := timeparse.Parse(s)
	require.NoError(t, err)
	return tod
}

func day(t *testing.T, date string) time.Time {
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	return d
}

func entry(t *testing.T, name, start, end string) attendance.ClassifiedDay {
	e := attendance.ClassifiedDay{
		DriverDayRecord: attendance.DriverDayRecord{DriverName: name},
	}
	if start != "" {
		tod := mustParse(t, start)
		e.StartTime = &tod
	}
	if end != "" {
		tod := mustParse(t, end)
		e.EndTime = &tod
	}
	return e
}

func lateDay(t *testing.T, date string, names ...string) attendance.Classification {
	c := attendance.Classification{Date: day(t, date)}
	for _, name := range names {
		c.Late = append(c.Late, entry(t, name, "09:00 AM", "05:30 PM"))
	}
	return c
}

func newService(cfg trend.Config) *TrendServiceImpl {
	return NewTrendService(nil, nil, cfg).(*TrendServiceImpl)
}

func TestAggregate_ChronicLate(t *testing.T) {
	svc := newService(trend.DefaultConfig())

	days := []attendance.Classification{
		lateDay(t, "2025-03-10", "John Smith"),
		lateDay(t, "2025-03-11", "John Smith"),
		lateDay(t, "2025-03-12", "John Smith"),
	}

	records, summary := svc.Aggregate(days)
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].LateCount)
	assert.True(t, records[0].HasFlag(trend.FlagChronicLate))
	assert.Equal(t, 1, summary.ChronicLateCount)
	assert.Equal(t, 3, summary.DaysAnalyzed)
}

func TestAggregate_BelowChronicLateThreshold(t *testing.T) {
	svc := newService(trend.DefaultConfig())

	days := []attendance.Classification{
		lateDay(t, "2025-03-10", "John Smith"),
		lateDay(t, "2025-03-11", "John Smith"),
	}

	records, summary := svc.Aggregate(days)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].LateCount)
	assert.False(t, records[0].HasFlag(trend.FlagChronicLate))
	assert.Equal(t, 0, summary.ChronicLateCount)
}

// Duplicate rows for the same driver on the same date must not inflate the
// counters or the series.
func TestAggregate_IdempotentPerDriverDay(t *testing.T) {
	svc := newService(trend.DefaultConfig())

	c := attendance.Classification{Date: day(t, "2025-03-10")}
	c.Late = append(c.Late,
		entry(t, "John Smith", "09:00 AM", "05:30 PM"),
		entry(t, "John Smith", "09:00 AM", "05:30 PM"),
	)

	records, _ := svc.Aggregate([]attendance.Classification{c})
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].LateCount)
	assert.Equal(t, 1, records[0].DaysAnalyzed)
	assert.Len(t, records[0].StartSeries, 1)
}

func TestAggregate_RepeatedAbsence(t *testing.T) {
	svc := newService(trend.DefaultConfig())

	absent := func(date string) attendance.Classification {
		c := attendance.Classification{Date: day(t, date)}
		c.NotOnJob = append(c.NotOnJob, entry(t, "Jane Doe", "07:00 AM", ""))
		return c
	}

	records, summary := svc.Aggregate([]attendance.Classification{
		absent("2025-03-10"),
		absent("2025-03-11"),
	})
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].AbsenceCount)
	assert.True(t, records[0].HasFlag(trend.FlagRepeatedAbsence))
	assert.Equal(t, 1, summary.RepeatedAbsenceCount)
}

func TestAggregate_UnstableShift(t *testing.T) {
	svc := newService(trend.DefaultConfig())

	// Start times spread over 3.5 hours; stop times steady.
	starts := []string{"06:00 AM", "09:30 AM", "07:00 AM", "09:00 AM", "06:30 AM"}
	dates := []string{"2025-03-10", "2025-03-11", "2025-03-12", "2025-03-13", "2025-03-14"}

	var days []attendance.Classification
	for i, date := range dates {
		c := attendance.Classification{Date: day(t, date)}
		c.Exception = append(c.Exception, entry(t, "Wild Card", starts[i], "05:30 PM"))
		days = append(days, c)
	}

	records, summary := svc.Aggregate(days)
	require.Len(t, records, 1)
	assert.True(t, records[0].HasFlag(trend.FlagUnstableShift))
	assert.Equal(t, 1, summary.UnstableShiftCount)
}

// A single observation can never trip the stability check; a range needs two
// points.
func TestAggregate_UnstableShiftNeedsTwoPoints(t *testing.T) {
	svc := newService(trend.DefaultConfig())

	c := attendance.Classification{Date: day(t, "2025-03-10")}
	c.Exception = append(c.Exception, entry(t, "One Shot", "06:00 AM", "11:00 PM"))

	records, _ := svc.Aggregate([]attendance.Classification{c})
	require.Len(t, records, 1)
	assert.False(t, records[0].HasFlag(trend.FlagUnstableShift))
}

// Flags fire independently: chronic lateness at identical clock times must
// not drag in the stability flag.
func TestAggregate_FlagIndependence(t *testing.T) {
	svc := newService(trend.DefaultConfig())

	days := []attendance.Classification{
		lateDay(t, "2025-03-10", "John Smith"),
		lateDay(t, "2025-03-11", "John Smith"),
		lateDay(t, "2025-03-12", "John Smith"),
	}

	records, _ := svc.Aggregate(days)
	require.Len(t, records, 1)
	assert.Equal(t, []trend.Flag{trend.FlagChronicLate}, records[0].Flags)
}

func TestAggregate_Empty(t *testing.T) {
	svc := newService(trend.DefaultConfig())

	records, summary := svc.Aggregate(nil)
	assert.Empty(t, records)
	assert.Equal(t, 0, summary.DaysAnalyzed)
	assert.Equal(t, 0, summary.TotalDriversAnalyzed)
}

type fakeAttendanceService struct {
	classifications map[string]attendance.Classification
}

func (f *fakeAttendanceService) ClassifyDate(ctx context.Context, date time.Time) (attendance.Classification, error) {
	return f.classifications[date.Format("2006-01-02")], nil
}

func (f *fakeAttendanceService) GetDailyReport(ctx context.Context, req attendance.DailyReportRequest) (attendance.DailyReport, error) {
	return attendance.DailyReport{}, nil
}

func (f *fakeAttendanceService) ImportLatestUsage(ctx context.Context) (attendance.ImportResult, error) {
	return attendance.ImportResult{}, nil
}

type fakeUsageRepo struct {
	dates []time.Time
}

func (f *fakeUsageRepo) GetDay(ctx context.Context, date time.Time) ([]attendance.UsageRow, error) {
	return nil, nil
}

func (f *fakeUsageRepo) StoreDay(ctx context.Context, date time.Time, rows []attendance.UsageRow) (int, error) {
	return 0, nil
}

func (f *fakeUsageRepo) ListDates(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	return f.dates, nil
}

func TestGenerateTrendReport(t *testing.T) {
	ctx := context.Background()
	dates := []string{"2025-03-10", "2025-03-11", "2025-03-12"}

	classifications := make(map[string]attendance.Classification, len(dates))
	usageRepo := &fakeUsageRepo{}
	for i, date := range dates {
		c := lateDay(t, date, "John Smith")
		if i == 0 {
			// Late a single day; never flagged.
			c.Late = append(c.Late, entry(t, "On Time Mostly", "09:00 AM", "05:30 PM"))
		}
		c.Summary = attendance.DailySummary{LateCount: len(c.Late)}
		classifications[date] = c
		usageRepo.dates = append(usageRepo.dates, day(t, date))
	}

	svc := NewTrendService(&fakeAttendanceService{classifications: classifications}, usageRepo, trend.DefaultConfig())

	report, err := svc.GenerateTrendReport(ctx, trend.TrendReportRequest{
		StartDate: "2025-03-10",
		EndDate:   "2025-03-12",
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", report.DateRange.Start)
	assert.Equal(t, "2025-03-12", report.DateRange.End)
	assert.Len(t, report.DailySummaries, 3)

	// Only the flagged driver appears; the unflagged one still counts in
	// the summary.
	require.Len(t, report.DriverTrends, 1)
	assert.Equal(t, "John Smith", report.DriverTrends[0].Name)
	assert.Contains(t, report.DriverTrends[0].Flags, string(trend.FlagChronicLate))
	assert.Equal(t, 2, report.TrendSummary.TotalDriversAnalyzed)
	assert.Equal(t, 3, report.TrendSummary.DaysAnalyzed)
}

func TestGenerateTrendReport_EmptyWindow(t *testing.T) {
	ctx := context.Background()
	svc := NewTrendService(&fakeAttendanceService{}, &fakeUsageRepo{}, trend.DefaultConfig())

	_, err := svc.GenerateTrendReport(ctx, trend.TrendReportRequest{
		StartDate: "2025-03-10",
		EndDate:   "2025-03-12",
	})
	assert.ErrorIs(t, err, trend.ErrEmptyWindow)
}

func TestGenerateTrendReport_InvalidRange(t *testing.T) {
	ctx := context.Background()
	svc := NewTrendService(&fakeAttendanceService{}, &fakeUsageRepo{}, trend.DefaultConfig())

	_, err := svc.GenerateTrendReport(ctx, trend.TrendReportRequest{
		StartDate: "2025-03-12",
		EndDate:   "2025-03-10",
	})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, trend.ErrEmptyWindow)
}
