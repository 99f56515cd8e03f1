package report

// IssueType identifies one class of validation finding.
type IssueType string

const (
	IssueMissingKey          IssueType = "missing_key"
	IssueCountMismatch       IssueType = "count_mismatch"
	IssueTotalMismatch       IssueType = "total_mismatch"
	IssueDriverCountMismatch IssueType = "driver_count_mismatch"
	IssueMissingIdentity     IssueType = "missing_identity"
	IssueMalformedBucket     IssueType = "malformed_bucket"
)

// ValidationIssue is one typed finding. Findings are recorded, never raised.
type ValidationIssue struct {
	Type    IssueType `json:"type"`
	Message string    `json:"message"`
}

// ValidationResult cross-checks a daily report's declared summary against
// its actual contents. Errors mean the summary cannot be trusted; warnings
// are soft anomalies. Statistics carry informational figures such as
// drivers appearing in more than one bucket, which is valid output and not
// a defect.
type ValidationResult struct {
	IsValid    bool              `json:"is_valid"`
	Errors     []ValidationIssue `json:"errors"`
	Warnings   []ValidationIssue `json:"warnings"`
	Statistics map[string]any    `json:"statistics"`
}
