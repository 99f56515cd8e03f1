package assetlabel

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Extractor splits combined asset labels (e.g. "ET-01 MATTHEW C. SHAYLOR")
// into an asset identifier and a driver name, trying the configured fleet ID
// patterns first and falling back to generic heuristics.
type Extractor struct {
	patterns []*regexp.Regexp
}

// DefaultPatterns cover the fleet's known equipment/vehicle ID prefixes.
var DefaultPatterns = []string{
	`^ET-\d+`,
	`^PT-\d+`,
	`^RT-\d+`,
	`RAM-\d+`,
	`^TRK-\d+`,
}

var (
	genericIDRegex  = regexp.MustCompile(`[A-Za-z]+[\-\s]?\d+`)
	idSuffixRegex   = regexp.MustCompile(`(?i)\s*[-–]\s*(ID\s*\w+)\s*$`)
	parenIDRegex    = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	parenTokenRegex = regexp.MustCompile(`\(([^)]*)\)`)
	spaceRegex      = regexp.MustCompile(`\s+`)
)

type patternFile struct {
	AssetPatterns []string `yaml:"asset_patterns"`
}

// NewExtractor compiles the given ID patterns. Invalid patterns are
// rejected rather than silently skipped.
func NewExtractor(patterns []string) (*Extractor, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid asset pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return &Extractor{patterns: compiled}, nil
}

// NewExtractorFromFile loads pattern rules from a YAML file with an
// `asset_patterns` list. A missing path falls back to DefaultPatterns.
func NewExtractorFromFile(path string) (*Extractor, error) {
	if path == "" {
		return NewExtractor(DefaultPatterns)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset pattern rules: %w", err)
	}
	var pf patternFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse asset pattern rules: %w", err)
	}
	if len(pf.AssetPatterns) == 0 {
		return NewExtractor(DefaultPatterns)
	}
	return NewExtractor(pf.AssetPatterns)
}

// Extract splits a combined label into (assetID, driverName). First match
// wins, in priority order: configured ID patterns anchored wherever the rule
// anchors them, then a generic letters+digits pattern, then the first
// whitespace-delimited token, then the whole label with an empty name.
func (e *Extractor) Extract(label string) (assetID, driverName string) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", ""
	}

	for _, re := range e.patterns {
		if loc := re.FindStringIndex(label); loc != nil {
			assetID = label[loc[0]:loc[1]]
			driverName = trimSeparators(label[:loc[0]] + label[loc[1]:])
			return assetID, driverName
		}
	}

	if loc := genericIDRegex.FindStringIndex(label); loc != nil {
		assetID = label[loc[0]:loc[1]]
		driverName = trimSeparators(label[:loc[0]] + label[loc[1]:])
		return assetID, driverName
	}

	if i := strings.IndexAny(label, " \t"); i >= 0 {
		return label[:i], trimSeparators(label[i:])
	}

	return label, ""
}

func trimSeparators(s string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(s), "-_ \t"))
}

// NormalizeName produces the canonical grouping key for a driver identity.
// It strips parenthetical employee IDs and trailing "- ID123" suffixes,
// collapses internal whitespace, and title-cases the result. Two renderings
// of the same human must normalize to the same key; every cross-record
// comparison downstream uses this form.
func NormalizeName(name string) string {
	name = parenIDRegex.ReplaceAllString(name, " ")
	name = idSuffixRegex.ReplaceAllString(name, "")
	name = spaceRegex.ReplaceAllString(strings.TrimSpace(name), " ")
	if name == "" {
		return ""
	}

	words := strings.Split(name, " ")
	for i, w := range words {
		words[i] = titleCaseWord(w)
	}
	return strings.Join(words, " ")
}

// EmployeeID pulls an embedded employee identifier out of a raw driver
// label, either a parenthetical token containing digits ("(ID123)") or a
// trailing "- ID123" suffix. Returns false when the label carries neither.
func EmployeeID(raw string) (string, bool) {
	if m := parenTokenRegex.FindStringSubmatch(raw); m != nil {
		token := strings.TrimSpace(m[1])
		if token != "" && strings.ContainsAny(token, "0123456789") {
			return strings.ToUpper(spaceRegex.ReplaceAllString(token, "")), true
		}
	}
	if m := idSuffixRegex.FindStringSubmatch(raw); m != nil {
		return strings.ToUpper(spaceRegex.ReplaceAllString(m[1], "")), true
	}
	return "", false
}

func titleCaseWord(w string) string {
	if w == "" {
		return w
	}
	runes := []rune(strings.ToLower(w))
	// Initials like "C." and short particles are capitalized too; simple
	// first-letter capitalization matches the export's conventions.
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}
