package model

import "fmt"

// IssueCode enumerates the closed set of lint findings
type IssueCode string

const (
	IssueOrphanCitation           IssueCode = "ORPHAN_CITATION"
	IssueConflictingDoses         IssueCode = "CONFLICTING_DOSES"
	IssueConflictingThresholds    IssueCode = "CONFLICTING_THRESHOLDS"
	IssueDoseWithoutEvidence      IssueCode = "DOSE_WITHOUT_EVIDENCE"
	IssueThresholdWithoutEvidence IssueCode = "THRESHOLD_WITHOUT_EVIDENCE"
	IssueClaimBindingFailed       IssueCode = "CLAIM_BINDING_FAILED"
	IssueMissingMandatorySection  IssueCode = "MISSING_MANDATORY_SECTION"
	IssueTemplateIncomplete       IssueCode = "TEMPLATE_INCOMPLETE"
	IssueOverconfidentLanguage    IssueCode = "OVERCONFIDENT_LANGUAGE"
	IssueOutdatedGuideline        IssueCode = "OUTDATED_GUIDELINE"
	IssueUnitMismatch             IssueCode = "UNIT_MISMATCH"
)

// IssueSeverity classifies how serious a finding is
type IssueSeverity string

const (
	SeverityS0 IssueSeverity = "S0" // Safety-critical
	SeverityS1 IssueSeverity = "S1" // Quality-critical
	SeverityS2 IssueSeverity = "S2" // Advisory
)

// SeverityFor maps an issue code to its severity. The mapping is fixed;
// severity is never set independently of the code. Unknown codes are a
// programming error.
func SeverityFor(code IssueCode) IssueSeverity {
	switch code {
	case IssueOrphanCitation,
		IssueConflictingDoses,
		IssueDoseWithoutEvidence,
		IssueMissingMandatorySection:
		return SeverityS0
	case IssueConflictingThresholds,
		IssueThresholdWithoutEvidence,
		IssueTemplateIncomplete,
		IssueOutdatedGuideline,
		IssueUnitMismatch:
		return SeverityS1
	case IssueClaimBindingFailed,
		IssueOverconfidentLanguage:
		return SeverityS2
	default:
		panic(fmt.Sprintf("model: no severity mapping for issue code %q", code))
	}
}

// Issue is a finding from a lint rule. Severity is always derived from
// the code at construction.
type Issue struct {
	ID             string        `json:"id"`
	RunID          string        `json:"run_id,omitempty"`
	Code           IssueCode     `json:"code"`
	Severity       IssueSeverity `json:"severity"`
	Message        string        `json:"message"`
	LineNumber     int           `json:"line_number,omitempty"` // 0 when not line-bound
	ClaimID        string        `json:"claim_id,omitempty"`
	SourceID       string        `json:"source_id,omitempty"`
	Resolved       bool          `json:"resolved"`
	ResolutionNote string        `json:"resolution_note,omitempty"`
}

// NewIssue constructs an issue, deriving severity from the code.
func NewIssue(runID string, code IssueCode, message string) Issue {
	i := Issue{
		RunID:    runID,
		Code:     code,
		Severity: SeverityFor(code),
		Message:  message,
	}
	i.ID = i.deriveID()
	return i
}

func (i Issue) deriveID() string {
	return DeterministicID("issue", i.RunID, string(i.Code), i.Message,
		fmt.Sprintf("%d", i.LineNumber), i.ClaimID, i.SourceID)
}

// AtLine returns a copy of the issue bound to a 1-based line number.
func (i Issue) AtLine(line int) Issue {
	i.LineNumber = line
	i.ID = i.deriveID()
	return i
}

// ForClaim returns a copy of the issue referencing a claim.
func (i Issue) ForClaim(claimID string) Issue {
	i.ClaimID = claimID
	i.ID = i.deriveID()
	return i
}

// ForSource returns a copy of the issue referencing a source.
func (i Issue) ForSource(sourceID string) Issue {
	i.SourceID = sourceID
	i.ID = i.deriveID()
	return i
}
