// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Obligation is a single argued proof obligation that must hold before a
// finalist is adopted. Per prd004-obligations R1.1-R1.3: Blocker is required
// non-empty exactly when Satisfied is false.
type Obligation struct {
	// Property states what must hold (e.g. "definition is non-circular").
	Property string `json:"property" yaml:"property"`

	// Argument is the evaluator's case that the property holds or fails.
	Argument string `json:"argument" yaml:"argument"`

	// Satisfied is the individual verdict for this obligation.
	Satisfied bool `json:"satisfied" yaml:"satisfied"`

	// Blocker describes what prevents satisfaction. Required when
	// Satisfied is false, forbidden otherwise.
	Blocker string `json:"blocker,omitempty" yaml:"blocker,omitempty"`
}
