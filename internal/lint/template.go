package lint

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mkrogh/veridoc/internal/model"
)

var headingRe = regexp.MustCompile(`^#{2,3}\s+(.+?)\s*$`)

// mandatorySection is one required heading of the clinical procedure
// template, with its accepted short variants.
type mandatorySection struct {
	name     string
	variants []string
}

// mandatorySections is the fixed ordered template every procedure
// document must follow.
var mandatorySections = []mandatorySection{
	{"Indikationer", []string{"indikation", "indikationer", "indications"}},
	{"Kontraindikationer", []string{"kontraindikation", "kontraindikationer", "contraindications"}},
	{"Fremgangsmåde", []string{"fremgangsmåde", "procedure", "udførelse"}},
	{"Komplikationer", []string{"komplikationer", "complications", "bivirkninger"}},
	{"Referencer", []string{"referencer", "references", "kilder"}},
}

// TemplateRule checks the draft against the mandatory section template.
// A wholly absent section is safety-critical; a present but skeletal one
// is quality-critical.
type TemplateRule struct {
	lastCount
	minSectionChars int
}

// NewTemplateRule creates the rule with the given minimum body length.
func NewTemplateRule(minSectionChars int) *TemplateRule {
	return &TemplateRule{minSectionChars: minSectionChars}
}

// Name identifies the rule.
func (r *TemplateRule) Name() string { return "template-compliance" }

type foundSection struct {
	line    int // 1-based heading line
	bodyLen int
}

// Lint verifies presence and substance of every mandatory section. An
// empty draft has nothing to check and yields no findings.
func (r *TemplateRule) Lint(ctx *Context) []model.Issue {
	if strings.TrimSpace(ctx.Draft) == "" {
		return r.record(nil)
	}

	found := scanSections(ctx.Draft)

	var issues []model.Issue
	for _, sec := range mandatorySections {
		var match *foundSection
		for _, variant := range sec.variants {
			if f, ok := found[variant]; ok {
				match = &f
				break
			}
		}

		if match == nil {
			issues = append(issues, model.NewIssue(ctx.RunID, model.IssueMissingMandatorySection,
				fmt.Sprintf("mandatory section %q is missing", sec.name)))
			continue
		}
		if match.bodyLen < r.minSectionChars {
			issues = append(issues, model.NewIssue(ctx.RunID, model.IssueTemplateIncomplete,
				fmt.Sprintf("section %q has only %d characters of content", sec.name, match.bodyLen)).
				AtLine(match.line))
		}
	}

	return r.record(issues)
}

// scanSections maps normalized heading text to its line and body length.
// The body of a section runs until the next heading or end of draft.
func scanSections(draft string) map[string]foundSection {
	sections := make(map[string]foundSection)
	lines := strings.Split(draft, "\n")

	currentKey := ""
	currentLine := 0
	bodyLen := 0

	flush := func() {
		if currentKey == "" {
			return
		}
		if _, exists := sections[currentKey]; !exists {
			sections[currentKey] = foundSection{line: currentLine, bodyLen: bodyLen}
		}
		currentKey = ""
		bodyLen = 0
	}

	for i, line := range lines {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			flush()
			currentKey = normalizeHeading(m[1])
			currentLine = i + 1
			continue
		}
		if currentKey != "" {
			bodyLen += len(strings.TrimSpace(line))
		}
	}
	flush()

	return sections
}

func normalizeHeading(h string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(h), ":"))
}
