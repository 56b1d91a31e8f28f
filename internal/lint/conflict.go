package lint

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mkrogh/veridoc/internal/model"
)

// ConflictRule detects contradictory numeric claims. DOSE claims are
// grouped by drug name (first word of the claim text) and conflicting
// values are safety-critical; THRESHOLD claims are grouped by the clinical
// parameter keyword and conflicts are quality-critical. Claims without a
// normalized value never participate.
type ConflictRule struct {
	lastCount
}

// NewConflictRule creates the rule.
func NewConflictRule() *ConflictRule {
	return &ConflictRule{}
}

// Name identifies the rule.
func (r *ConflictRule) Name() string { return "conflict-detection" }

// Lint groups dose and threshold claims and flags conflicting values.
func (r *ConflictRule) Lint(ctx *Context) []model.Issue {
	var issues []model.Issue

	issues = append(issues, conflictsFor(ctx, model.ClaimTypeDose, model.IssueConflictingDoses, "conflicting doses for %s: %s")...)
	issues = append(issues, conflictsFor(ctx, model.ClaimTypeThreshold, model.IssueConflictingThresholds, "conflicting thresholds for %s: %s")...)

	return r.record(issues)
}

func conflictsFor(ctx *Context, claimType model.ClaimType, code model.IssueCode, format string) []model.Issue {
	groups := make(map[string][]float64)
	for _, c := range ctx.Claims {
		if c.Type != claimType || c.NormalizedValue == nil {
			continue
		}
		key := firstWord(c.Text)
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], *c.NormalizedValue)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var issues []model.Issue
	for _, key := range keys {
		distinct := distinctValues(groups[key])
		if len(distinct) < 2 {
			continue
		}
		issues = append(issues, model.NewIssue(ctx.RunID, code,
			fmt.Sprintf(format, key, formatValues(distinct))))
	}
	return issues
}

func firstWord(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

func distinctValues(values []float64) []float64 {
	seen := make(map[float64]bool)
	var distinct []float64
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			distinct = append(distinct, v)
		}
	}
	sort.Float64s(distinct)
	return distinct
}

func formatValues(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ", ")
}
