// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gate evaluates the final proof-obligation checklist. The overall
// pass flag is computed as the conjunction of the individual satisfied
// flags, never asserted independently; any unsatisfied obligation blocks
// adoption and leaves the run open at the gate stage.
// Implements: prd004-obligations (R1-R2); docs/ARCHITECTURE § Gate.
package gate

import (
	"github.com/pdiddy/dialectic-engine/pkg/types"
)

// Result is the gate's verdict over one obligation set. A failed gate is
// recoverable data, not an error: the run stays open pending revision of
// the obligation or the finalist.
type Result struct {
	// Passed is true iff every obligation's satisfied flag is true.
	Passed bool `json:"passed" yaml:"passed"`

	// Unsatisfied lists the properties of the obligations that failed, in
	// input order.
	Unsatisfied []string `json:"unsatisfied,omitempty" yaml:"unsatisfied,omitempty"`
}

// Evaluate validates and folds an obligation set. Validation errors (an
// unargued obligation, a blocker missing where required or present where
// forbidden) are fatal; an unsatisfied obligation is not.
func Evaluate(obligations []types.Obligation) (Result, error) {
	res := Result{Passed: true}

	if len(obligations) == 0 {
		return Result{}, types.Validationf(types.CodeBadObligation, []string{"(gate)"},
			"adoption requires at least one argued obligation")
	}

	for _, ob := range obligations {
		if ob.Property == "" {
			return Result{}, types.Validationf(types.CodeBadObligation, []string{"(gate)"},
				"obligation with an empty property")
		}
		if ob.Argument == "" {
			return Result{}, types.Validationf(types.CodeBadObligation, []string{ob.Property},
				"obligation must be independently argued")
		}
		if !ob.Satisfied && ob.Blocker == "" {
			return Result{}, types.Validationf(types.CodeBadObligation, []string{ob.Property},
				"unsatisfied obligation must name its blocker")
		}
		if ob.Satisfied && ob.Blocker != "" {
			return Result{}, types.Validationf(types.CodeBadObligation, []string{ob.Property},
				"satisfied obligation must not carry a blocker")
		}
		if !ob.Satisfied {
			res.Passed = false
			res.Unsatisfied = append(res.Unsatisfied, ob.Property)
		}
	}

	return res, nil
}
