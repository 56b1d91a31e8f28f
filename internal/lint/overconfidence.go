package lint

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mkrogh/veridoc/internal/model"
)

// overconfidentTerms is the fixed bilingual vocabulary of absolute-
// certainty language, in reporting order.
var overconfidentTerms = []struct {
	term string
	re   *regexp.Regexp
}{
	{"always", regexp.MustCompile(`(?i)\balways\b`)},
	{"never", regexp.MustCompile(`(?i)\bnever\b`)},
	{"guaranteed", regexp.MustCompile(`(?i)\bguaranteed\b`)},
	{"definitely", regexp.MustCompile(`(?i)\bdefinitely\b`)},
	{"100%", regexp.MustCompile(`\b100\s?%`)},
	{"altid", regexp.MustCompile(`(?i)\baltid\b`)},
	{"aldrig", regexp.MustCompile(`(?i)\baldrig\b`)},
	{"garanteret", regexp.MustCompile(`(?i)\bgaranteret\b`)},
	{"helt sikkert", regexp.MustCompile(`(?i)\bhelt sikkert\b`)},
	{"uden tvivl", regexp.MustCompile(`(?i)\buden tvivl\b`)},
}

// OverconfidenceRule flags absolute-certainty language. Clinical text
// should hedge; every occurrence of a vocabulary term is one advisory
// finding carrying its line number.
type OverconfidenceRule struct {
	lastCount
}

// NewOverconfidenceRule creates the rule.
func NewOverconfidenceRule() *OverconfidenceRule {
	return &OverconfidenceRule{}
}

// Name identifies the rule.
func (r *OverconfidenceRule) Name() string { return "overconfidence" }

// Lint scans the draft line by line for overconfident terms.
func (r *OverconfidenceRule) Lint(ctx *Context) []model.Issue {
	var issues []model.Issue

	for lineIdx, line := range strings.Split(ctx.Draft, "\n") {
		for _, t := range overconfidentTerms {
			for occurrence := range t.re.FindAllStringIndex(line, -1) {
				msg := fmt.Sprintf("overconfident language %q", t.term)
				if occurrence > 0 {
					// Keep issue IDs distinct for repeats on the same line
					msg = fmt.Sprintf("overconfident language %q (occurrence %d)", t.term, occurrence+1)
				}
				issues = append(issues, model.NewIssue(ctx.RunID, model.IssueOverconfidentLanguage, msg).
					AtLine(lineIdx+1))
			}
		}
	}

	return r.record(issues)
}
