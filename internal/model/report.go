package model

import "time"

// BindStats summarizes a binder run. TotalClaims is always
// Bound + Unbound; TotalLinks equals the number of links produced.
type BindStats struct {
	TotalClaims int `json:"total_claims"`
	Bound       int `json:"bound"`
	Unbound     int `json:"unbound"`
	TotalLinks  int `json:"total_links"`
}

// Report is the complete verification output handed back to the
// revision-loop stage: claims, bindings, findings and gate decisions.
type Report struct {
	RunID      string    `json:"run_id,omitempty"`
	Title      string    `json:"title,omitempty"`
	VerifiedAt time.Time `json:"verified_at"`

	Claims        []Claim             `json:"claims"`
	Links         []ClaimEvidenceLink `json:"links"`
	UnboundClaims []Claim             `json:"unbound_claims"`
	Issues        []Issue             `json:"issues"`
	Gates         []Gate              `json:"gates"`

	BindStats BindStats `json:"bind_stats"`

	S0Count        int  `json:"s0_count"`
	S1Count        int  `json:"s1_count"`
	S2Count        int  `json:"s2_count"`
	AllGatesPassed bool `json:"all_gates_passed"`
}

// Gate returns the gate of the given type, if present.
func (r *Report) Gate(gateType GateType) (Gate, bool) {
	for _, g := range r.Gates {
		if g.Type == gateType {
			return g, true
		}
	}
	return Gate{}, false
}
