package model

// GateType identifies an aggregate checkpoint
type GateType string

const (
	GateS0Safety  GateType = "S0_SAFETY"
	GateS1Quality GateType = "S1_QUALITY"
	GateFinal     GateType = "FINAL"
)

// GateStatus is the evaluation state of a gate
type GateStatus string

const (
	GatePending GateStatus = "PENDING" // Only state before evaluation
	GatePass    GateStatus = "PASS"
	GateFail    GateStatus = "FAIL"
)

// Gate is an aggregate pass/fail checkpoint computed from the issue set.
// S0_SAFETY fails iff at least one unresolved S0 issue exists, S1_QUALITY
// likewise for S1, and FINAL passes iff both pass.
type Gate struct {
	ID            string     `json:"id"`
	RunID         string     `json:"run_id,omitempty"`
	Type          GateType   `json:"gate_type"`
	Status        GateStatus `json:"status"`
	IssuesChecked int        `json:"issues_checked"`
	IssuesFailed  int        `json:"issues_failed"`
	Message       string     `json:"message,omitempty"`
}

// NewGate creates a gate in the PENDING state.
func NewGate(runID string, gateType GateType) Gate {
	return Gate{
		ID:     DeterministicID("gate", runID, string(gateType)),
		RunID:  runID,
		Type:   gateType,
		Status: GatePending,
	}
}

// Passed reports whether the gate evaluated to PASS.
func (g Gate) Passed() bool {
	return g.Status == GatePass
}
