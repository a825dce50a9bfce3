// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// EliminationReason is a protocol-specific label explaining why a candidate
// fell (e.g. "counterexample_upheld", "decisive_inconsistency").
// Per prd001-derivation R4.2, prd005-protocols R1.3.
type EliminationReason string

// EliminationRecord ties an eliminated candidate to its cause. CauseID names
// the challenge — or, for accumulated weak pressure, the StrengthJudgement —
// that eliminated the candidate. No elimination is ever recorded without a
// traceable cause. Per prd001-derivation R4.2.
type EliminationRecord struct {
	CandidateID string            `json:"candidate_id" yaml:"candidate_id"`
	Reason      EliminationReason `json:"reason" yaml:"reason"`
	CauseID     string            `json:"cause_id" yaml:"cause_id"`
}

// SurvivorRecord is a candidate that withstood every challenge, carrying the
// limitations accumulated from valid scope_narrowing rebuttals in challenge
// input order. Per prd001-derivation R4.3.
type SurvivorRecord struct {
	CandidateID string   `json:"candidate_id" yaml:"candidate_id"`
	Limitations []string `json:"limitations,omitempty" yaml:"limitations,omitempty"`
}

// Derivation is the computed elimination/survivor partition of a candidate
// pool. It is always derived from (pool, challenges), never hand-authored,
// and the two lists partition the pool exactly: every candidate id appears
// in exactly one. Per prd001-derivation R4.1.
type Derivation struct {
	Eliminated []EliminationRecord `json:"eliminated" yaml:"eliminated"`
	Survivors  []SurvivorRecord    `json:"survivors" yaml:"survivors"`
}

// SurvivorIDs returns the surviving candidate ids in derivation order.
func (d Derivation) SurvivorIDs() []string {
	ids := make([]string, 0, len(d.Survivors))
	for _, s := range d.Survivors {
		ids = append(ids, s.CandidateID)
	}
	return ids
}

// Survivor returns the survivor record for a candidate id, if present.
func (d Derivation) Survivor(candidateID string) (SurvivorRecord, bool) {
	for _, s := range d.Survivors {
		if s.CandidateID == candidateID {
			return s, true
		}
	}
	return SurvivorRecord{}, false
}
