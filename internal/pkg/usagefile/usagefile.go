package usagefile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fleetops/attendance-backend-go/internal/domain/attendance"
)

// Reader locates and parses DailyUsage telematics exports. The exports carry
// a fixed number of non-tabular metadata lines before the real column header
// row; SkipLines is that count.
type Reader struct {
	dir       string
	skipLines int
}

func NewReader(dir string, skipLines int) *Reader {
	return &Reader{dir: dir, skipLines: skipLines}
}

// Column aliases, case-insensitive. The telematics vendor has renamed
// columns across export versions.
var columnAliases = map[string][]string{
	"asset":      {"asset", "asset label"},
	"driver":     {"driver"},
	"company":    {"company"},
	"job_site":   {"job site", "location"},
	"date":       {"date"},
	"time_start": {"time start", "start time"},
	"time_stop":  {"time stop", "end time", "stop time"},
	"duration":   {"duration"},
	"status":     {"status"},
}

// LatestExport returns the newest DailyUsage CSV in the export directory.
func (r *Reader) LatestExport() (string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return "", fmt.Errorf("failed to read export directory: %w", err)
	}

	var newest string
	var newestMod int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		lower := strings.ToLower(name)
		if !strings.HasPrefix(lower, "dailyusage") || !strings.HasSuffix(lower, ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().Unix() > newestMod {
			newest = filepath.Join(r.dir, name)
			newestMod = info.ModTime().Unix()
		}
	}

	if newest == "" {
		return "", attendance.ErrNoExportFile
	}
	return newest, nil
}

// ReadRows parses one export file into usage rows. Rows shorter than the
// header are padded; completely blank rows are dropped. No per-field
// validation happens here; malformed values are classification's concern.
func (r *Reader) ReadRows(path string) ([]attendance.UsageRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export file: %w", err)
	}
	defer f.Close()

	return r.parse(f)
}

func (r *Reader) parse(src io.Reader) ([]attendance.UsageRow, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1

	for i := 0; i < r.skipLines; i++ {
		if _, err := cr.Read(); err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("export file ended inside metadata header")
			}
			return nil, fmt.Errorf("failed to skip metadata line: %w", err)
		}
	}

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read column header: %w", err)
	}
	index := buildColumnIndex(header)

	var rows []attendance.UsageRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read export row: %w", err)
		}
		if isBlank(record) {
			continue
		}
		rows = append(rows, attendance.UsageRow{
			AssetLabel: field(record, index, "asset"),
			Driver:     field(record, index, "driver"),
			Company:    field(record, index, "company"),
			JobSite:    field(record, index, "job_site"),
			Date:       field(record, index, "date"),
			TimeStart:  field(record, index, "time_start"),
			TimeStop:   field(record, index, "time_stop"),
			Duration:   field(record, index, "duration"),
			Status:     field(record, index, "status"),
		})
	}
	return rows, nil
}

func buildColumnIndex(header []string) map[string]int {
	index := make(map[string]int)
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		for canonical, aliases := range columnAliases {
			if _, taken := index[canonical]; taken {
				continue
			}
			for _, alias := range aliases {
				if name == alias {
					index[canonical] = i
					break
				}
			}
		}
	}
	return index
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
