package lint

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mkrogh/veridoc/internal/model"
)

// strictCitationRe matches the fixed citation-tag wire convention,
// case-sensitive: [CIT-123], [S:SRC001] or [SRC001]. Changing this syntax
// is a breaking change and must be versioned explicitly.
var strictCitationRe = regexp.MustCompile(`\[(CIT-[A-Za-z0-9]+|(?:S:)?SRC[A-Za-z0-9]+)\]`)

// CitationIntegrityRule flags citation tags whose identifier has no exact
// match among the supplied sources. Each distinct orphan identifier is
// reported once regardless of how often it repeats.
type CitationIntegrityRule struct {
	lastCount
}

// NewCitationIntegrityRule creates the rule.
func NewCitationIntegrityRule() *CitationIntegrityRule {
	return &CitationIntegrityRule{}
}

// Name identifies the rule.
func (r *CitationIntegrityRule) Name() string { return "citation-integrity" }

// Lint scans the draft for citation tags and reports orphans.
func (r *CitationIntegrityRule) Lint(ctx *Context) []model.Issue {
	known := make(map[string]bool, len(ctx.Sources))
	for _, s := range ctx.Sources {
		known[s.ID] = true
	}

	var issues []model.Issue
	seen := make(map[string]bool)

	for lineIdx, line := range strings.Split(ctx.Draft, "\n") {
		for _, m := range strictCitationRe.FindAllStringSubmatch(line, -1) {
			id := strings.TrimPrefix(m[1], "S:")
			if known[id] || seen[id] {
				continue
			}
			seen[id] = true
			issues = append(issues, model.NewIssue(ctx.RunID, model.IssueOrphanCitation,
				fmt.Sprintf("citation [%s] has no matching source", id)).
				AtLine(lineIdx+1).
				ForSource(id))
		}
	}

	return r.record(issues)
}
