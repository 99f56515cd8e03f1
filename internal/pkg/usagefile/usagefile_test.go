package usagefile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fleetops/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `DailyUsage Report
Generated,2025-03-11
Fleet,Western Division
,
,
,
,
Asset,Driver,Company,Job Site,Date,Time Start,Time Stop,Duration,Status
ET-01 MATTHEW SHAYLOR,,Acme,North Pit,2025-03-10,07:02 AM,05:31 PM,10:29,Active
PT-07,JOHN SMITH,Acme,South Pit,2025-03-10,09:45 AM,,,"Active"
,,,,,,,,
RT-03,JANE DOE,Acme,North Pit,2025-03-10,,,,
`

func TestParse(t *testing.T) {
	r := NewReader("", 7)
	rows, err := r.parse(strings.NewReader(sampleExport))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, attendance.UsageRow{
		AssetLabel: "ET-01 MATTHEW SHAYLOR",
		Company:    "Acme",
		JobSite:    "North Pit",
		Date:       "2025-03-10",
		TimeStart:  "07:02 AM",
		TimeStop:   "05:31 PM",
		Duration:   "10:29",
		Status:     "Active",
	}, rows[0])

	assert.Equal(t, "JOHN SMITH", rows[1].Driver)
	assert.Equal(t, "", rows[1].TimeStop)

	// Blank rows are dropped; sparse rows are kept.
	assert.Equal(t, "JANE DOE", rows[2].Driver)
	assert.Equal(t, "", rows[2].TimeStart)
}

func TestParse_ColumnAliases(t *testing.T) {
	export := "Asset Label,Driver,Location,Start Time,End Time\n" +
		"ET-01,BOB,North Pit,07:00 AM,05:30 PM\n"

	r := NewReader("", 0)
	rows, err := r.parse(strings.NewReader(export))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "ET-01", rows[0].AssetLabel)
	assert.Equal(t, "North Pit", rows[0].JobSite)
	assert.Equal(t, "07:00 AM", rows[0].TimeStart)
	assert.Equal(t, "05:30 PM", rows[0].TimeStop)
}

func TestParse_ShortRecords(t *testing.T) {
	export := "Asset,Driver,Time Start,Time Stop\n" +
		"ET-01,BOB\n"

	r := NewReader("", 0)
	rows, err := r.parse(strings.NewReader(export))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// Columns past the record's end read as empty, not as an error.
	assert.Equal(t, "BOB", rows[0].Driver)
	assert.Equal(t, "", rows[0].TimeStart)
}

func TestParse_TruncatedMetadata(t *testing.T) {
	r := NewReader("", 7)
	_, err := r.parse(strings.NewReader("only one line\n"))
	assert.Error(t, err)
}

func TestLatestExport(t *testing.T) {
	dir := t.TempDir()

	older := filepath.Join(dir, "DailyUsage_2025-03-09.csv")
	newer := filepath.Join(dir, "dailyusage_2025-03-10.csv")
	require.NoError(t, os.WriteFile(older, []byte("a\n"), 0o644))
	require.NoError(t, os.WriteFile(newer, []byte("b\n"), 0o644))
	require.NoError(t, os.Chtimes(older, time.Now().Add(-time.Hour), time.Now().Add(-time.Hour)))

	// Unrelated files never win.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.csv"), []byte("c\n"), 0o644))

	r := NewReader(dir, 7)
	got, err := r.LatestExport()
	require.NoError(t, err)
	assert.Equal(t, newer, got)
}

func TestLatestExport_NoFiles(t *testing.T) {
	r := NewReader(t.TempDir(), 7)
	_, err := r.LatestExport()
	assert.ErrorIs(t, err, attendance.ErrNoExportFile)
}
