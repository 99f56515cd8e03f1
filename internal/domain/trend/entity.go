package trend

import (
	"time"

	"github.com/fleetops/attendance-backend-go/internal/pkg/timeparse"
)

// Flag marks a detected attendance trend. Flags are a set, not mutually
// exclusive; a driver can carry zero to three at once.
type Flag string

const (
	FlagChronicLate     Flag = "CHRONIC_LATE"
	FlagRepeatedAbsence Flag = "REPEATED_ABSENCE"
	FlagUnstableShift   Flag = "UNSTABLE_SHIFT"
)

// TimePoint is one observed start or stop moment within the window.
type TimePoint struct {
	Date time.Time
	Time timeparse.TimeOfDay
}

// DriverTrendRecord accumulates one driver's counts and timestamp series
// over an observation window. Counters advance at most once per driver per
// day; Flags are computed only after every day in the window has been
// folded in. Records live for one aggregation run and are re-derived from
// the per-day data on each invocation.
type DriverTrendRecord struct {
	DriverKey     string
	EmployeeID    *string
	DaysAnalyzed  int
	LateCount     int
	EarlyEndCount int
	AbsenceCount  int
	StartSeries   []TimePoint
	EndSeries     []TimePoint
	Flags         []Flag
}

// HasFlag reports whether the record carries the given flag.
func (r *DriverTrendRecord) HasFlag(f Flag) bool {
	for _, have := range r.Flags {
		if have == f {
			return true
		}
	}
	return false
}

// TrendSummary is the window-level rollup. Counts are not mutually
// exclusive; a driver flagged twice contributes to two counters.
type TrendSummary struct {
	DaysAnalyzed         int `json:"days_analyzed"`
	TotalDriversAnalyzed int `json:"total_drivers_analyzed"`
	ChronicLateCount     int `json:"chronic_late_count"`
	RepeatedAbsenceCount int `json:"repeated_absence_count"`
	UnstableShiftCount   int `json:"unstable_shift_count"`
}

// Config holds the trend thresholds. Immutable; injected into the
// aggregator rather than read from globals.
type Config struct {
	ChronicLateThreshold     int
	RepeatedAbsenceThreshold int
	UnstableShiftMinutes     int
}

// DefaultConfig mirrors the fleet's operational thresholds.
func DefaultConfig() Config {
	return Config{
		ChronicLateThreshold:     3,
		RepeatedAbsenceThreshold: 2,
		UnstableShiftMinutes:     180,
	}
}
