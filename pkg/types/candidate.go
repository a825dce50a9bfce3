// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for dialectical runs:
// candidates, challenges, rebuttals, derivations, obligations, revisions,
// and the immutable Outcome record.
// Implements: prd001-derivation (data model); docs/ARCHITECTURE § Data Model.
package types

// Candidate is a proposed solution, hypothesis, or definition under
// adversarial evaluation. Candidates belong to exactly one run version and
// are replaced wholesale on revision, never patched in place.
// Per prd001-derivation R1.1-R1.3.
type Candidate struct {
	// ID is unique within a run version (e.g. "C1", "H-configmap").
	ID string `json:"id" yaml:"id"`

	// Statement is the opaque domain payload: the definition, decomposition,
	// hypothesis, or mapping being defended. The engine never interprets it.
	Statement string `json:"statement" yaml:"statement"`

	// Claims lists the upstream requirement identifiers this candidate
	// purports to satisfy. Used by merge acceptance checks.
	Claims []string `json:"claims,omitempty" yaml:"claims,omitempty"`

	// FailureModes lists known failure modes the proposer concedes up front.
	// A merged candidate may not introduce a failure mode absent from every
	// survivor it replaces. Per prd003-selection R2.2.
	FailureModes []string `json:"failure_modes,omitempty" yaml:"failure_modes,omitempty"`
}

// HasClaim reports whether the candidate claims the given requirement.
func (c Candidate) HasClaim(claim string) bool {
	for _, cl := range c.Claims {
		if cl == claim {
			return true
		}
	}
	return false
}
