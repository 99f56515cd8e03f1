package timeparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name        string
		input       string
		wantMinutes int
		wantNextDay bool
		wantTZ      string
	}{
		{"plain 12h morning", "07:05 AM", 7*60 + 5, false, ""},
		{"plain 12h evening", "05:30 PM", 17*60 + 30, false, ""},
		{"noon", "12:00 PM", 12 * 60, false, ""},
		{"midnight", "12:00 AM", 0, false, ""},
		{"24h format", "17:30", 17*60 + 30, false, ""},
		{"24h midnight", "00:15", 15, false, ""},
		{"with seconds", "07:00:23 AM", 7 * 60, false, ""},
		{"timezone suffix", "07:00 AM CT", 7 * 60, false, "CT"},
		{"long timezone suffix", "07:00 AM AEST", 7 * 60, false, "AEST"},
		{"paren next day marker", "01:30 AM (+1)", 90, true, ""},
		{"paren next day words", "01:30 AM (Next Day)", 90, true, ""},
		{"bare plus one", "01:30 AM +1", 90, true, ""},
		{"bare next day words", "01:30 AM Next Day", 90, true, ""},
		{"marker then timezone", "01:30 AM (+1) CT", 90, true, "CT"},
		{"timezone then marker", "01:30 AM CT (+1)", 90, true, "CT"},
		{"24h with marker", "01:30 (+1)", 90, true, ""},
		{"lowercase meridiem", "07:00 am", 7 * 60, false, ""},
		{"surrounding whitespace", "  07:00 AM  ", 7 * 60, false, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.wantMinutes, got.Minutes)
			assert.Equal(t, tc.wantNextDay, got.NextDay)
			assert.Equal(t, tc.wantTZ, got.TimezoneLabel)
		})
	}
}

func TestParse_Unparsable(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"N/A",
		"no time",
		"25:00",
		"13:00 PM",
		"0:00 AM",
		"07:75",
	}
	for _, input := range inputs {
		_, err := Parse(input)
		assert.ErrorIs(t, err, ErrUnparsableTime, "input %q", input)
	}
}

func TestFormat(t *testing.T) {
	tod, err := Parse("05:30 PM")
	require.NoError(t, err)
	assert.Equal(t, "17:30", tod.Format())

	tod, err = Parse("01:05 AM (+1)")
	require.NoError(t, err)
	assert.Equal(t, "01:05 (+1)", tod.Format())
}

func TestMinutesBetween(t *testing.T) {
	parse := func(s string) TimeOfDay {
		tod, err := Parse(s)
		require.NoError(t, err)
		return tod
	}

	cases := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"same day shift", "07:00 AM", "05:30 PM", 630},
		{"explicit next day marker", "09:00 PM", "05:00 AM (+1)", 480},
		{"implicit rollover", "09:00 PM", "05:00 AM", 480},
		{"zero length", "07:00 AM", "07:00 AM", 0},
		{"one minute before midnight to after", "11:59 PM", "12:01 AM", 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MinutesBetween(parse(tc.start), parse(tc.end)))
		})
	}
}

// An overnight shift must measure the same whether the export marked the
// stop time explicitly or left the rollover implicit.
func TestMinutesBetween_OvernightEquivalence(t *testing.T) {
	start, err := Parse("10:00 PM")
	require.NoError(t, err)
	marked, err := Parse("06:00 AM (+1)")
	require.NoError(t, err)
	unmarked, err := Parse("06:00 AM")
	require.NoError(t, err)

	assert.Equal(t, 480, MinutesBetween(start, marked))
	assert.Equal(t, 480, MinutesBetween(start, unmarked))
}

func TestDeviationMinutes(t *testing.T) {
	parse := func(s string) TimeOfDay {
		tod, err := Parse(s)
		require.NoError(t, err)
		return tod
	}

	expected := parse("07:00 AM")

	// Arriving after the expected start is a positive deviation; arriving
	// before is negative, never a 1400-minute rollover.
	assert.Equal(t, 25, DeviationMinutes(expected, parse("07:25 AM")))
	assert.Equal(t, -30, DeviationMinutes(expected, parse("06:30 AM")))
	assert.Equal(t, 0, DeviationMinutes(expected, parse("07:00 AM")))

	// A next-day actual counts the full offset past midnight.
	assert.Equal(t, 1440, DeviationMinutes(expected, parse("07:00 AM (+1)")))
}

func TestTotalMinutes(t *testing.T) {
	tod := TimeOfDay{Minutes: 90}
	assert.Equal(t, 90, tod.TotalMinutes())

	tod.NextDay = true
	assert.Equal(t, 1530, tod.TotalMinutes())
}
