package lint

import (
	"fmt"

	"github.com/mkrogh/veridoc/internal/model"
)

// EvidenceCoverageRule flags claims the binder could not match to any
// evidence chunk. An uncovered dose is safety-critical, an uncovered
// threshold quality-critical; everything else is advisory.
type EvidenceCoverageRule struct {
	lastCount
}

// NewEvidenceCoverageRule creates the rule.
func NewEvidenceCoverageRule() *EvidenceCoverageRule {
	return &EvidenceCoverageRule{}
}

// Name identifies the rule.
func (r *EvidenceCoverageRule) Name() string { return "evidence-coverage" }

// Lint emits one finding per unbound claim.
func (r *EvidenceCoverageRule) Lint(ctx *Context) []model.Issue {
	var issues []model.Issue

	for _, c := range ctx.Unbound {
		var code model.IssueCode
		switch c.Type {
		case model.ClaimTypeDose:
			code = model.IssueDoseWithoutEvidence
		case model.ClaimTypeThreshold:
			code = model.IssueThresholdWithoutEvidence
		default:
			code = model.IssueClaimBindingFailed
		}
		issues = append(issues, model.NewIssue(ctx.RunID, code,
			fmt.Sprintf("no supporting evidence for %s claim %q", c.Type, c.Text)).
			ForClaim(c.ID).
			AtLine(c.LineNumber))
	}

	return r.record(issues)
}
