package lint

import (
	"testing"

	"github.com/mkrogh/veridoc/internal/model"
)

func TestOverconfidenceRule_BilingualTerms(t *testing.T) {
	rule := NewOverconfidenceRule()

	ctx := &Context{
		RunID: "run1",
		Draft: "Behandlingen virker altid.\nThis treatment never fails.\nEffekten er 100% sikker.",
	}

	issues := rule.Lint(ctx)
	if len(issues) != 3 {
		t.Fatalf("expected 3 findings, got %d: %+v", len(issues), issues)
	}
	for _, issue := range issues {
		if issue.Code != model.IssueOverconfidentLanguage {
			t.Errorf("expected OVERCONFIDENT_LANGUAGE, got %s", issue.Code)
		}
		if issue.Severity != model.SeverityS2 {
			t.Errorf("expected S2, got %s", issue.Severity)
		}
	}
	if issues[0].LineNumber != 1 || issues[1].LineNumber != 2 || issues[2].LineNumber != 3 {
		t.Errorf("expected line numbers 1,2,3, got %d,%d,%d",
			issues[0].LineNumber, issues[1].LineNumber, issues[2].LineNumber)
	}
}

func TestOverconfidenceRule_RepeatsKeepDistinctIDs(t *testing.T) {
	rule := NewOverconfidenceRule()

	ctx := &Context{
		RunID: "run1",
		Draft: "altid, altid og altid",
	}

	issues := rule.Lint(ctx)
	if len(issues) != 3 {
		t.Fatalf("expected 3 findings for 3 occurrences, got %d", len(issues))
	}
	seen := make(map[string]bool)
	for _, issue := range issues {
		if seen[issue.ID] {
			t.Errorf("duplicate issue ID %s", issue.ID)
		}
		seen[issue.ID] = true
	}
}

func TestOverconfidenceRule_HedgedTextClean(t *testing.T) {
	rule := NewOverconfidenceRule()

	ctx := &Context{
		RunID: "run1",
		Draft: "Behandlingen er ofte effektiv og bør som regel overvejes.",
	}

	if issues := rule.Lint(ctx); len(issues) != 0 {
		t.Errorf("hedged language must not be flagged: %+v", issues)
	}
}

func TestOverconfidenceRule_WordBoundaries(t *testing.T) {
	rule := NewOverconfidenceRule()

	// "altid" embedded in another word is not a term occurrence.
	ctx := &Context{
		RunID: "run1",
		Draft: "universaltider er ikke et begreb",
	}

	if issues := rule.Lint(ctx); len(issues) != 0 {
		t.Errorf("embedded substrings must not be flagged: %+v", issues)
	}
}
