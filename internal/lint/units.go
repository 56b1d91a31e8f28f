package lint

import (
	"fmt"
	"strings"

	"github.com/mkrogh/veridoc/internal/model"
)

// canonicalUnits is the accepted unit vocabulary: mass, volume,
// concentration, percentage, time and common clinical synonyms. Compound
// units are validated per component after splitting on '/'.
var canonicalUnits = map[string]bool{
	// Mass
	"ng": true, "mcg": true, "µg": true, "ug": true, "mg": true, "g": true, "kg": true,
	// Volume
	"µl": true, "ul": true, "ml": true, "dl": true, "l": true,
	// Concentration
	"mmol": true, "mol": true, "meq": true,
	// Percentage
	"%": true, "pct": true,
	// Time
	"s": true, "sek": true, "min": true, "h": true, "t": true, "time": true,
	"d": true, "dag": true, "døgn": true, "day": true, "uge": true,
	// Clinical
	"ie": true, "iu": true, "e": true, "enheder": true, "mmhg": true,
	"dråber": true, "drops": true,
}

// UnitRule validates the unit strings of dose and threshold claims.
// Claims without a unit are skipped; every unrecognized component of a
// compound unit is one finding.
type UnitRule struct {
	lastCount
}

// NewUnitRule creates the rule.
func NewUnitRule() *UnitRule {
	return &UnitRule{}
}

// Name identifies the rule.
func (r *UnitRule) Name() string { return "unit-validity" }

// Lint checks every dose/threshold claim unit against the vocabulary.
func (r *UnitRule) Lint(ctx *Context) []model.Issue {
	var issues []model.Issue

	for _, c := range ctx.Claims {
		if c.Type != model.ClaimTypeDose && c.Type != model.ClaimTypeThreshold {
			continue
		}
		if c.Unit == "" {
			continue
		}

		for _, component := range strings.Split(c.Unit, "/") {
			component = strings.TrimSpace(component)
			if component == "" {
				continue
			}
			if canonicalUnits[strings.ToLower(component)] {
				continue
			}
			issues = append(issues, model.NewIssue(ctx.RunID, model.IssueUnitMismatch,
				fmt.Sprintf("unrecognized unit %q in %q", component, c.Unit)).
				ForClaim(c.ID).
				AtLine(c.LineNumber))
		}
	}

	return r.record(issues)
}
