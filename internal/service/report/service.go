package report

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/fleetops/attendance-backend-go/internal/domain/attendance"
	"github.com/fleetops/attendance-backend-go/internal/domain/report"
	"github.com/fleetops/attendance-backend-go/internal/pkg/assetlabel"
)

type ReportServiceImpl struct {
	reportRepo attendance.ReportRepository
}

func NewReportService(reportRepo attendance.ReportRepository) report.ReportService {
	return &ReportServiceImpl{reportRepo: reportRepo}
}

var bucketKeys = []string{"late_drivers", "early_end_drivers", "not_on_job_drivers", "exception_drivers"}

// summary count field per bucket
var bucketCountKeys = map[string]string{
	"late_drivers":       "late_count",
	"early_end_drivers":  "early_end_count",
	"not_on_job_drivers": "not_on_job_count",
	"exception_drivers":  "exception_count",
}

// ValidateStoredReport implements report.ReportService.
func (s *ReportServiceImpl) ValidateStoredReport(ctx context.Context, date string) (report.ValidationResult, error) {
	raw, err := s.reportRepo.GetDailyReportRaw(ctx, date)
	if err != nil {
		return report.ValidationResult{}, fmt.Errorf("failed to load stored report: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		// A corrupt document is a finding, not a failure of the validator.
		return report.ValidationResult{
			IsValid: false,
			Errors: []report.ValidationIssue{{
				Type:    report.IssueMalformedBucket,
				Message: fmt.Sprintf("stored report is not valid JSON: %v", err),
			}},
			Warnings:   []report.ValidationIssue{},
			Statistics: map[string]any{},
		}, nil
	}

	return s.Validate(doc), nil
}

// Validate implements report.ReportService. Every anomaly becomes an error
// or warning entry; nothing is ever auto-corrected. A count mismatch means
// the producing stage is broken and must be fixed there, not papered over
// here.
func (s *ReportServiceImpl) Validate(doc map[string]any) report.ValidationResult {
	result := report.ValidationResult{
		Errors:     []report.ValidationIssue{},
		Warnings:   []report.ValidationIssue{},
		Statistics: map[string]any{},
	}

	// Structural check first; without the basic shape the remaining checks
	// would only cascade noise.
	required := append([]string{"date", "summary"}, bucketKeys...)
	missing := false
	for _, key := range required {
		if _, ok := doc[key]; !ok {
			missing = true
			result.Errors = append(result.Errors, report.ValidationIssue{
				Type:    report.IssueMissingKey,
				Message: fmt.Sprintf("required key %q is missing", key),
			})
		}
	}
	if missing {
		return result
	}

	summary, ok := doc["summary"].(map[string]any)
	if !ok {
		result.Errors = append(result.Errors, report.ValidationIssue{
			Type:    report.IssueMalformedBucket,
			Message: "summary is not an object",
		})
		return result
	}

	buckets := make(map[string][]any, len(bucketKeys))
	for _, key := range bucketKeys {
		entries, ok := doc[key].([]any)
		if !ok {
			result.Errors = append(result.Errors, report.ValidationIssue{
				Type:    report.IssueMalformedBucket,
				Message: fmt.Sprintf("%s is not a list", key),
			})
			continue
		}
		buckets[key] = entries
	}

	totalActual := 0
	for _, key := range bucketKeys {
		entries, ok := buckets[key]
		if !ok {
			continue
		}
		totalActual += len(entries)

		declared, ok := asInt(summary[bucketCountKeys[key]])
		if !ok {
			result.Errors = append(result.Errors, report.ValidationIssue{
				Type:    report.IssueCountMismatch,
				Message: fmt.Sprintf("summary.%s is missing or not a number", bucketCountKeys[key]),
			})
			continue
		}
		if declared != len(entries) {
			result.Errors = append(result.Errors, report.ValidationIssue{
				Type:    report.IssueCountMismatch,
				Message: fmt.Sprintf("summary.%s = %d but %s has %d entries", bucketCountKeys[key], declared, key, len(entries)),
			})
		}
	}

	if declared, ok := asInt(summary["total_issues"]); !ok || declared != totalActual {
		result.Errors = append(result.Errors, report.ValidationIssue{
			Type:    report.IssueTotalMismatch,
			Message: fmt.Sprintf("summary.total_issues = %v but buckets hold %d entries", summary["total_issues"], totalActual),
		})
	}

	s.checkDrivers(buckets, summary, &result)

	result.IsValid = len(result.Errors) == 0
	return result
}

// checkDrivers verifies the driver-level soft invariants: the declared
// unique-driver total, identity-field completeness, and the informational
// multi-bucket statistic.
func (s *ReportServiceImpl) checkDrivers(buckets map[string][]any, summary map[string]any, result *report.ValidationResult) {
	driverBuckets := make(map[string][]string)
	var missingIdentity []string

	for _, key := range bucketKeys {
		for i, raw := range buckets[key] {
			entry, ok := raw.(map[string]any)
			if !ok {
				missingIdentity = append(missingIdentity, fmt.Sprintf("%s[%d]", key, i))
				continue
			}

			name := firstString(entry, "name", "driver")
			asset := firstString(entry, "asset_id", "asset")
			if name == "" || asset == "" {
				missingIdentity = append(missingIdentity, fmt.Sprintf("%s[%d]", key, i))
			}
			if name == "" {
				continue
			}

			driverKey := assetlabel.NormalizeName(name)
			bucketsForDriver := driverBuckets[driverKey]
			if !contains(bucketsForDriver, key) {
				driverBuckets[driverKey] = append(bucketsForDriver, key)
			}
		}
	}

	if declared, ok := asInt(summary["total_drivers"]); ok && declared != len(driverBuckets) {
		// Known to be approximate upstream; worth surfacing, not failing.
		result.Warnings = append(result.Warnings, report.ValidationIssue{
			Type:    report.IssueDriverCountMismatch,
			Message: fmt.Sprintf("summary.total_drivers = %d but buckets hold %d unique drivers", declared, len(driverBuckets)),
		})
	}

	if len(missingIdentity) > 0 {
		sample := missingIdentity
		if len(sample) > 5 {
			sample = sample[:5]
		}
		result.Warnings = append(result.Warnings, report.ValidationIssue{
			Type:    report.IssueMissingIdentity,
			Message: fmt.Sprintf("%d records lack driver/asset identity, first at %v", len(missingIdentity), sample),
		})
	}

	// Multi-bucket membership is valid output (late AND short-day, say);
	// enumerate it for the reader instead of flagging it.
	var multi []string
	for driver, memberOf := range driverBuckets {
		if len(memberOf) > 1 {
			multi = append(multi, driver)
		}
	}
	sort.Strings(multi)

	result.Statistics["unique_drivers"] = len(driverBuckets)
	result.Statistics["drivers_with_multiple_issues"] = multi
	result.Statistics["multiple_issue_count"] = len(multi)
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	default:
		return 0, false
	}
}

func firstString(entry map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := entry[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
