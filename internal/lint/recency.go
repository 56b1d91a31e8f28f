package lint

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/mkrogh/veridoc/internal/model"
)

var yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// metadataDateKeys are the alternate field names checked, in order, when
// a source carries no explicit publication date.
var metadataDateKeys = []string{"published", "publication_date", "date", "year"}

// RecencyRule flags sources strictly older than the configured window.
// Sources whose publication date cannot be derived are silently skipped:
// absence of information is not a violation.
type RecencyRule struct {
	lastCount
	maxAgeYears int
	now         func() time.Time
}

// NewRecencyRule creates the rule with the given age window in years.
func NewRecencyRule(maxAgeYears int) *RecencyRule {
	return &RecencyRule{
		maxAgeYears: maxAgeYears,
		now:         time.Now,
	}
}

// Name identifies the rule.
func (r *RecencyRule) Name() string { return "source-recency" }

// Lint derives a publication year for every source and flags stale ones.
func (r *RecencyRule) Lint(ctx *Context) []model.Issue {
	var issues []model.Issue
	currentYear := r.now().Year()

	for _, src := range ctx.Sources {
		year, ok := publicationYear(src)
		if !ok {
			continue
		}
		age := currentYear - year
		if age <= r.maxAgeYears {
			continue
		}
		issues = append(issues, model.NewIssue(ctx.RunID, model.IssueOutdatedGuideline,
			fmt.Sprintf("source %s published %d is %d years old", src.ID, year, age)).
			ForSource(src.ID))
	}

	return r.record(issues)
}

// publicationYear derives a year from the source's explicit fields first,
// then from the alternate metadata field names.
func publicationYear(src model.Source) (int, bool) {
	if src.Year > 0 {
		return src.Year, true
	}
	if y, ok := yearFromString(src.Published); ok {
		return y, true
	}
	for _, key := range metadataDateKeys {
		v, present := src.Metadata[key]
		if !present {
			continue
		}
		switch val := v.(type) {
		case int:
			if plausibleYear(val) {
				return val, true
			}
		case float64:
			if plausibleYear(int(val)) {
				return int(val), true
			}
		case string:
			if y, ok := yearFromString(val); ok {
				return y, true
			}
		}
	}
	return 0, false
}

func yearFromString(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "02.01.2006", "2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Year(), true
		}
	}
	if m := yearRe.FindString(s); m != "" {
		if y, err := strconv.Atoi(m); err == nil {
			return y, true
		}
	}
	return 0, false
}

func plausibleYear(y int) bool {
	return y >= 1900 && y <= 2100
}
