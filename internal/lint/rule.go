// Package lint holds the independent consistency and quality checks run
// against a draft after extraction and binding. Rules never communicate
// with each other and never mutate the shared context; the caller simply
// concatenates their findings.
package lint

import (
	"sync"

	"github.com/mkrogh/veridoc/internal/model"
)

// Context is the shared read-only input handed to every rule. Rules must
// tolerate empty or missing optional fields.
type Context struct {
	RunID   string
	Title   string
	Draft   string
	Claims  []model.Claim
	Links   []model.ClaimEvidenceLink
	Unbound []model.Claim
	Sources []model.Source
}

// Rule is a single stateless check. The only state a rule carries between
// calls is the issue count of its last run, for diagnostics.
type Rule interface {
	Name() string
	Lint(ctx *Context) []model.Issue
	LastIssueCount() int
}

// lastCount implements the last-run diagnostic shared by all rules.
type lastCount struct {
	n int
}

func (c *lastCount) record(issues []model.Issue) []model.Issue {
	c.n = len(issues)
	return issues
}

// LastIssueCount returns the number of issues emitted by the last run.
func (c *lastCount) LastIssueCount() int {
	return c.n
}

// DefaultRules returns the full rule battery in its fixed order.
func DefaultRules(cfg model.LintConfig) []Rule {
	return []Rule{
		NewCitationIntegrityRule(),
		NewConflictRule(),
		NewOverconfidenceRule(),
		NewRecencyRule(cfg.MaxSourceAgeYears),
		NewTemplateRule(cfg.MinSectionChars),
		NewUnitRule(),
		NewEvidenceCoverageRule(),
	}
}

// RunAll executes every rule against the context. Rules are independent,
// so they run concurrently; findings are merged in rule order.
func RunAll(ctx *Context, rules []Rule) []model.Issue {
	results := make([][]model.Issue, len(rules))

	var wg sync.WaitGroup
	for i, rule := range rules {
		wg.Add(1)
		go func(idx int, r Rule) {
			defer wg.Done()
			results[idx] = r.Lint(ctx)
		}(i, rule)
	}
	wg.Wait()

	var issues []model.Issue
	for _, rs := range results {
		issues = append(issues, rs...)
	}
	return issues
}
