// Package gate aggregates lint findings into pass/fail release gates.
package gate

import (
	"fmt"

	"github.com/mkrogh/veridoc/internal/model"
)

// Evaluation is the outcome of one gate run: the three gates, per-severity
// counts over all issues, and the overall verdict.
type Evaluation struct {
	Gates          []model.Gate
	S0Count        int
	S1Count        int
	S2Count        int
	AllGatesPassed bool
}

// Evaluator computes gate decisions from an issue set. Every run is
// computed from scratch; no state carries between evaluations, so
// re-running on the same issues is idempotent.
type Evaluator struct{}

// NewEvaluator creates an evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate computes the S0_SAFETY and S1_QUALITY gates from unresolved
// issues of the matching severity, and FINAL as their logical AND. The
// issue set itself is never modified.
func (e *Evaluator) Evaluate(runID string, issues []model.Issue) Evaluation {
	var eval Evaluation

	for _, issue := range issues {
		switch issue.Severity {
		case model.SeverityS0:
			eval.S0Count++
		case model.SeverityS1:
			eval.S1Count++
		case model.SeverityS2:
			eval.S2Count++
		}
	}

	safety := severityGate(runID, model.GateS0Safety, model.SeverityS0, issues)
	quality := severityGate(runID, model.GateS1Quality, model.SeverityS1, issues)

	final := model.NewGate(runID, model.GateFinal)
	final.IssuesChecked = safety.IssuesChecked + quality.IssuesChecked
	final.IssuesFailed = safety.IssuesFailed + quality.IssuesFailed
	if safety.Passed() && quality.Passed() {
		final.Status = model.GatePass
		final.Message = "all gates passed"
	} else {
		final.Status = model.GateFail
		final.Message = "blocked by failing severity gates"
	}

	eval.Gates = []model.Gate{safety, quality, final}
	eval.AllGatesPassed = final.Passed()
	return eval
}

// severityGate computes one severity gate: it fails iff at least one
// unresolved issue of the severity exists.
func severityGate(runID string, gateType model.GateType, severity model.IssueSeverity, issues []model.Issue) model.Gate {
	g := model.NewGate(runID, gateType)

	for _, issue := range issues {
		if issue.Severity != severity {
			continue
		}
		g.IssuesChecked++
		if !issue.Resolved {
			g.IssuesFailed++
		}
	}

	if g.IssuesFailed > 0 {
		g.Status = model.GateFail
		g.Message = fmt.Sprintf("%d unresolved %s issue(s)", g.IssuesFailed, severity)
	} else {
		g.Status = model.GatePass
		g.Message = fmt.Sprintf("no unresolved %s issues", severity)
	}
	return g
}
