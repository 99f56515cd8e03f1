package timeparse

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnparsableTime is returned when no recognizable clock time is found.
// Callers treat this as "no time recorded", never as a fatal condition.
var ErrUnparsableTime = errors.New("no recognizable time in input")

// TimeOfDay is a normalized moment within a 24h cycle. Immutable once built.
type TimeOfDay struct {
	Minutes       int    // minutes since midnight, 0-1439
	NextDay       bool   // the moment falls on the day after the nominal date
	TimezoneLabel string // trailing timezone token, if any (e.g. "CT", "CST")
}

var (
	nextDayRegex  = regexp.MustCompile(`(?i)\(\s*(?:\+1|next\s*day)\s*\)|\+1\b|\bnext\s*day\b`)
	timezoneRegex = regexp.MustCompile(`\b([A-Z]{2,5})\s*$`)
	clockRegex    = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?\s*(?i:(AM|PM))?$`)
)

// Parse converts a raw time string into a TimeOfDay. Accepted shapes are
// "HH:MM AM/PM" and 24-hour "HH:MM", each optionally suffixed with a
// timezone token and/or a next-day marker ("(+1)", "(Next Day)", "+1",
// "Next Day") in either order.
func Parse(raw string) (TimeOfDay, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return TimeOfDay{}, ErrUnparsableTime
	}

	var tod TimeOfDay

	if nextDayRegex.MatchString(s) {
		tod.NextDay = true
		s = strings.TrimSpace(nextDayRegex.ReplaceAllString(s, ""))
	}

	if m := timezoneRegex.FindStringSubmatch(s); m != nil {
		token := m[1]
		// AM/PM are part of the clock time, not a timezone.
		if token != "AM" && token != "PM" {
			tod.TimezoneLabel = token
			s = strings.TrimSpace(s[:len(s)-len(m[0])])
		}
	}

	// The marker may have preceded the timezone token ("07:00 AM (+1) CT"
	// leaves nothing more to strip; "07:00 AM CT +1" was handled above).
	if nextDayRegex.MatchString(s) {
		tod.NextDay = true
		s = strings.TrimSpace(nextDayRegex.ReplaceAllString(s, ""))
	}

	m := clockRegex.FindStringSubmatch(s)
	if m == nil {
		return TimeOfDay{}, ErrUnparsableTime
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	meridiem := strings.ToUpper(m[4])

	if minute > 59 {
		return TimeOfDay{}, ErrUnparsableTime
	}

	switch meridiem {
	case "AM":
		if hour < 1 || hour > 12 {
			return TimeOfDay{}, ErrUnparsableTime
		}
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 1 || hour > 12 {
			return TimeOfDay{}, ErrUnparsableTime
		}
		if hour != 12 {
			hour += 12
		}
	default:
		// No AM/PM means 24-hour format.
		if hour > 23 {
			return TimeOfDay{}, ErrUnparsableTime
		}
	}

	tod.Minutes = hour*60 + minute
	return tod, nil
}

// TotalMinutes returns minutes since midnight of the nominal date, counting
// a next-day moment as 1440 + clock minutes. Used for ordering and range
// calculations across a window.
func (t TimeOfDay) TotalMinutes() int {
	if t.NextDay {
		return t.Minutes + 1440
	}
	return t.Minutes
}

// Format renders the clock time as 24-hour "HH:MM", with a "(+1)" suffix for
// next-day moments.
func (t TimeOfDay) Format() string {
	s := twoDigits(t.Minutes/60) + ":" + twoDigits(t.Minutes%60)
	if t.NextDay {
		s += " (+1)"
	}
	return s
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// MinutesBetween returns the elapsed minutes from start to end. 1440 minutes
// are added whenever end is explicitly marked next-day or the naive
// difference is negative (end clock-time before start clock-time, implying
// rollover past midnight). This holds even when only one of the two signals
// is present, which is the correctness property overnight shifts rely on.
func MinutesBetween(start, end TimeOfDay) int {
	diff := end.Minutes - start.Minutes
	if end.NextDay || diff < 0 {
		diff += 1440
	}
	return diff
}

// DeviationMinutes returns the signed offset of actual relative to expected:
// positive means actual is after expected, negative means before. No
// midnight rollover is assumed beyond explicit next-day markers; a negative
// value simply means early. Schedule deviation checks (lateness, early end)
// use this, not MinutesBetween.
func DeviationMinutes(expected, actual TimeOfDay) int {
	return actual.TotalMinutes() - expected.TotalMinutes()
}
