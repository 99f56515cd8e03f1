package report

import (
	"context"
	"testing"

	"github.com/fleetops/attendance-backend-go/internal/domain/attendance"
	"github.com/fleetops/attendance-backend-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDoc() map[string]any {
	return map[string]any{
		"date": "2025-03-10",
		"late_drivers": []any{
			map[string]any{"name": "John Smith", "asset_id": "ET-01"},
			map[string]any{"name": "Jane Doe", "asset_id": "ET-02"},
		},
		"early_end_drivers":  []any{},
		"not_on_job_drivers": []any{},
		"exception_drivers": []any{
			map[string]any{"name": "John Smith", "asset_id": "ET-01", "issue": "short_day"},
		},
		"summary": map[string]any{
			"total_drivers":    float64(2),
			"total_issues":     float64(3),
			"late_count":       float64(2),
			"early_end_count":  float64(0),
			"not_on_job_count": float64(0),
			"exception_count":  float64(1),
		},
	}
}

func issueTypes(issues []report.ValidationIssue) []report.IssueType {
	types := make([]report.IssueType, 0, len(issues))
	for _, issue := range issues {
		types = append(types, issue.Type)
	}
	return types
}

func newTestService() report.ReportService {
	return NewReportService(nil)
}

func TestValidate_ValidReport(t *testing.T) {
	result := newTestService().Validate(validDoc())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)

	// Multi-bucket membership is informational, never an error.
	assert.Equal(t, 2, result.Statistics["unique_drivers"])
	assert.Equal(t, []string{"John Smith"}, result.Statistics["drivers_with_multiple_issues"])
	assert.Equal(t, 1, result.Statistics["multiple_issue_count"])
}

func TestValidate_MissingKeysShortCircuit(t *testing.T) {
	result := newTestService().Validate(map[string]any{"date": "2025-03-10"})

	assert.False(t, result.IsValid)
	// One error per missing key, and no cascading count checks.
	assert.Len(t, result.Errors, 5)
	for _, issue := range result.Errors {
		assert.Equal(t, report.IssueMissingKey, issue.Type)
	}
}

func TestValidate_BucketCountMismatch(t *testing.T) {
	doc := validDoc()
	doc["summary"].(map[string]any)["late_count"] = float64(3)

	result := newTestService().Validate(doc)

	assert.False(t, result.IsValid)
	assert.Contains(t, issueTypes(result.Errors), report.IssueCountMismatch)
}

func TestValidate_TotalIssuesMismatch(t *testing.T) {
	doc := validDoc()
	doc["summary"].(map[string]any)["total_issues"] = float64(99)

	result := newTestService().Validate(doc)

	assert.False(t, result.IsValid)
	assert.Contains(t, issueTypes(result.Errors), report.IssueTotalMismatch)
}

func TestValidate_MalformedBucket(t *testing.T) {
	doc := validDoc()
	doc["late_drivers"] = "not a list"

	result := newTestService().Validate(doc)

	assert.False(t, result.IsValid)
	assert.Contains(t, issueTypes(result.Errors), report.IssueMalformedBucket)
}

func TestValidate_SummaryNotObject(t *testing.T) {
	doc := validDoc()
	doc["summary"] = "nope"

	result := newTestService().Validate(doc)

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, report.IssueMalformedBucket, result.Errors[0].Type)
}

// A wrong unique-driver total is a warning, not an error; the buckets
// themselves are still consistent.
func TestValidate_DriverCountMismatchIsWarning(t *testing.T) {
	doc := validDoc()
	doc["summary"].(map[string]any)["total_drivers"] = float64(7)

	result := newTestService().Validate(doc)

	assert.True(t, result.IsValid)
	assert.Contains(t, issueTypes(result.Warnings), report.IssueDriverCountMismatch)
}

func TestValidate_MissingIdentityIsWarning(t *testing.T) {
	doc := validDoc()
	doc["late_drivers"] = []any{
		map[string]any{"name": "John Smith", "asset_id": "ET-01"},
		map[string]any{"name": "", "asset_id": "ET-02"},
	}
	doc["summary"].(map[string]any)["total_drivers"] = float64(2)

	result := newTestService().Validate(doc)

	assert.True(t, result.IsValid)
	assert.Contains(t, issueTypes(result.Warnings), report.IssueMissingIdentity)
}

// Legacy reports carry "driver"/"asset" instead of "name"/"asset_id"; both
// spellings must satisfy the identity check.
func TestValidate_LegacyFieldNames(t *testing.T) {
	doc := validDoc()
	doc["late_drivers"] = []any{
		map[string]any{"driver": "John Smith", "asset": "ET-01"},
		map[string]any{"name": "Jane Doe", "asset_id": "ET-02"},
	}
	doc["exception_drivers"] = []any{
		map[string]any{"driver": "JOHN SMITH", "asset": "ET-01"},
	}

	result := newTestService().Validate(doc)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Warnings)
	// Name normalization unifies the two renderings of the same driver.
	assert.Equal(t, 2, result.Statistics["unique_drivers"])
	assert.Equal(t, []string{"John Smith"}, result.Statistics["drivers_with_multiple_issues"])
}

type rawReportRepo struct {
	raw map[string][]byte
}

func (f *rawReportRepo) SaveDailyReport(ctx context.Context, r attendance.DailyReport) error {
	return nil
}

func (f *rawReportRepo) GetDailyReport(ctx context.Context, date string) (attendance.DailyReport, error) {
	return attendance.DailyReport{}, attendance.ErrReportNotFound
}

func (f *rawReportRepo) GetDailyReportRaw(ctx context.Context, date string) ([]byte, error) {
	raw, ok := f.raw[date]
	if !ok {
		return nil, attendance.ErrReportNotFound
	}
	return raw, nil
}

func TestValidateStoredReport_CorruptJSON(t *testing.T) {
	repo := &rawReportRepo{raw: map[string][]byte{"2025-03-10": []byte("{broken")}}
	svc := NewReportService(repo)

	result, err := svc.ValidateStoredReport(context.Background(), "2025-03-10")
	require.NoError(t, err)

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, report.IssueMalformedBucket, result.Errors[0].Type)
}

func TestValidateStoredReport_NotFound(t *testing.T) {
	svc := NewReportService(&rawReportRepo{raw: map[string][]byte{}})

	_, err := svc.ValidateStoredReport(context.Background(), "2025-03-10")
	assert.ErrorIs(t, err, attendance.ErrReportNotFound)
}
