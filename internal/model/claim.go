package model

import "fmt"

// ClaimType categorizes the nature of an extracted assertion
type ClaimType string

const (
	ClaimTypeDose             ClaimType = "DOSE"             // Drug + quantity + unit
	ClaimTypeThreshold        ClaimType = "THRESHOLD"        // Score/vital compared to a cutoff
	ClaimTypeRecommendation   ClaimType = "RECOMMENDATION"   // Modal verb + action
	ClaimTypeContraindication ClaimType = "CONTRAINDICATION" // Negated/forbidden constructions
	ClaimTypeRedFlag          ClaimType = "RED_FLAG"         // Warning markers
	ClaimTypeAlgorithmStep    ClaimType = "ALGORITHM_STEP"   // Numbered/named procedure steps
)

// Claim represents a single verifiable assertion extracted from draft text.
// Claims are created once by the extractor and never mutated afterwards.
type Claim struct {
	ID              string    `json:"id"`
	RunID           string    `json:"run_id,omitempty"`
	Type            ClaimType `json:"claim_type"`
	Text            string    `json:"text"`                       // Exact matched substring
	NormalizedValue *float64  `json:"normalized_value,omitempty"` // Extracted numeric value, if any
	Unit            string    `json:"unit,omitempty"`
	SourceRefs      []string  `json:"source_refs,omitempty"` // Source IDs cited on the same line
	LineNumber      int       `json:"line_number"`           // 1-based
	Confidence      float64   `json:"confidence"`            // 0.0-1.0
}

// NewClaim constructs a claim and validates its invariants. Invalid values
// are programming errors and are rejected at construction, not downstream.
func NewClaim(runID string, claimType ClaimType, text string, lineNumber int, confidence float64) (Claim, error) {
	if text == "" {
		return Claim{}, fmt.Errorf("claim text must not be empty")
	}
	if confidence < 0 || confidence > 1 {
		return Claim{}, fmt.Errorf("claim confidence %.3f outside [0,1]", confidence)
	}
	if lineNumber < 1 {
		return Claim{}, fmt.Errorf("claim line number %d must be 1-based", lineNumber)
	}
	return Claim{
		ID:         DeterministicID("claim", runID, string(claimType), fmt.Sprintf("%d", lineNumber), text),
		RunID:      runID,
		Type:       claimType,
		Text:       text,
		LineNumber: lineNumber,
		Confidence: confidence,
	}, nil
}

// HasSourceRef reports whether the claim cites the given source ID.
func (c Claim) HasSourceRef(sourceID string) bool {
	for _, ref := range c.SourceRefs {
		if ref == sourceID {
			return true
		}
	}
	return false
}
