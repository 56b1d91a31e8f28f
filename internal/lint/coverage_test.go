package lint

import (
	"testing"

	"github.com/mkrogh/veridoc/internal/model"
)

func TestEvidenceCoverageRule_SeverityByClaimType(t *testing.T) {
	rule := NewEvidenceCoverageRule()

	rec, err := model.NewClaim("run1", model.ClaimTypeRecommendation, "bør overvåges", 5, 0.7)
	if err != nil {
		t.Fatal(err)
	}

	ctx := &Context{
		RunID: "run1",
		Unbound: []model.Claim{
			doseClaim(t, "Adrenalin 0.5 mg", 0.5, 1),
			thresholdClaim(t, "sat < 90", 90, 3),
			rec,
		},
	}

	issues := rule.Lint(ctx)
	if len(issues) != 3 {
		t.Fatalf("expected 1 issue per unbound claim, got %d", len(issues))
	}

	want := []struct {
		code     model.IssueCode
		severity model.IssueSeverity
	}{
		{model.IssueDoseWithoutEvidence, model.SeverityS0},
		{model.IssueThresholdWithoutEvidence, model.SeverityS1},
		{model.IssueClaimBindingFailed, model.SeverityS2},
	}
	for i, w := range want {
		if issues[i].Code != w.code {
			t.Errorf("issue %d: expected %s, got %s", i, w.code, issues[i].Code)
		}
		if issues[i].Severity != w.severity {
			t.Errorf("issue %d: expected %s, got %s", i, w.severity, issues[i].Severity)
		}
		if issues[i].ClaimID != ctx.Unbound[i].ID {
			t.Errorf("issue %d must reference its claim", i)
		}
	}
}

func TestEvidenceCoverageRule_BoundClaimsClean(t *testing.T) {
	rule := NewEvidenceCoverageRule()

	ctx := &Context{
		RunID:  "run1",
		Claims: []model.Claim{doseClaim(t, "Adrenalin 0.5 mg", 0.5, 1)},
	}

	if issues := rule.Lint(ctx); len(issues) != 0 {
		t.Errorf("bound claims must not be flagged, got %+v", issues)
	}
}
