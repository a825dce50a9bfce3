// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SelectionCriterion names the tie-break rule that decided a multi-survivor
// selection. Per prd003-selection R3.1-R3.4.
type SelectionCriterion string

const (
	// CriterionMerge means an evaluator-proposed merge passed all acceptance
	// checks and replaced the survivors it covers.
	CriterionMerge SelectionCriterion = "merge"

	// CriterionFewestLimitations picks the survivor with strictly fewer
	// accumulated limitations than every alternative.
	CriterionFewestLimitations SelectionCriterion = "fewest_limitations"

	// CriterionStrongestBenefit picks the survivor with the strictly highest
	// evaluator-assigned benefit score.
	CriterionStrongestBenefit SelectionCriterion = "strongest_benefit"

	// CriterionEvaluator is the explicit free-text judgement call — the one
	// point in the engine where an unstructured choice is permitted. It must
	// carry a non-empty rationale.
	CriterionEvaluator SelectionCriterion = "evaluator_judgement"

	// CriterionSoleSurvivor marks the degenerate case: one survivor, no
	// selection performed.
	CriterionSoleSurvivor SelectionCriterion = "sole_survivor"
)

// MergeDescriptor records an accepted collapse of several survivors into one
// strictly-at-least-as-strong candidate. Per prd003-selection R2.1-R2.4.
type MergeDescriptor struct {
	// Candidate is the merged candidate adopted in place of the survivors.
	Candidate Candidate `json:"candidate" yaml:"candidate"`

	// Replaces lists the survivor ids the merge subsumes.
	Replaces []string `json:"replaces" yaml:"replaces"`

	// Rationale is the evaluator's argument for the synthesis.
	Rationale string `json:"rationale" yaml:"rationale"`
}

// RejectedAlternative records a survivor passed over during selection and
// the reason it lost. Mandatory for every non-winning survivor.
// Per prd003-selection R4.2.
type RejectedAlternative struct {
	CandidateID string `json:"candidate_id" yaml:"candidate_id"`
	Reason      string `json:"reason" yaml:"reason"`
}

// SelectionResult is the fully auditable outcome of the selection/collapse
// stage: exactly one finalist, how it was chosen, and why each alternative
// was rejected. Per prd003-selection R4.1-R4.3.
type SelectionResult struct {
	// WinnerID names the finalist. For a merge this is the merged
	// candidate's id.
	WinnerID string `json:"winner_id" yaml:"winner_id"`

	// Merge is set when the finalist is a merged candidate.
	Merge *MergeDescriptor `json:"merge,omitempty" yaml:"merge,omitempty"`

	// Criterion names the rule that discriminated.
	Criterion SelectionCriterion `json:"criterion" yaml:"criterion"`

	// Rationale explains the decision. Mandatory and non-empty.
	Rationale string `json:"rationale" yaml:"rationale"`

	// MergeRejected explains why a proposed merge was not accepted, when one
	// was proposed and failed. Empty otherwise.
	MergeRejected string `json:"merge_rejected,omitempty" yaml:"merge_rejected,omitempty"`

	// Rejected lists every passed-over survivor with its reason.
	Rejected []RejectedAlternative `json:"rejected,omitempty" yaml:"rejected,omitempty"`
}
