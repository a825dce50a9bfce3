// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ChallengeSubtype names a protocol-registered kind of challenge (e.g.
// "counterexample", "foundational_mismatch"). The subtype determines whether
// the challenge is rebuttable at all and which rebuttal kinds are legal
// against it. Per prd005-protocols R1.1.
type ChallengeSubtype string

// ChallengeWeight grades the pressure a challenge exerts.
// Per prd001-derivation R3.1-R3.4.
type ChallengeWeight string

const (
	// WeightStrong is the default: an unrebutted strong challenge stands,
	// and a failed non-concessive rebuttal against it eliminates.
	WeightStrong ChallengeWeight = "strong"

	// WeightWeak marks a low-weight inconsistency. Weak challenges never
	// eliminate on their own; they participate only through an explicitly
	// argued StrengthJudgement.
	WeightWeak ChallengeWeight = "weak"

	// WeightDecisive marks an inconsistency so severe that no rebuttal is
	// permitted at all. Elimination is immediate and absolute.
	WeightDecisive ChallengeWeight = "decisive"
)

// RebuttalKind classifies a rebuttal's stance toward its challenge. The two
// universal kinds are RebuttalRefutation and RebuttalScopeNarrowing; protocol
// instantiations may register additional non-concessive kinds.
// Per prd001-derivation R2.1, prd005-protocols R2.3.
type RebuttalKind string

const (
	// RebuttalRefutation disputes the challenge outright. Validity false
	// means the refutation failed and the challenge stands.
	RebuttalRefutation RebuttalKind = "refutation"

	// RebuttalScopeNarrowing concedes the challenge and retreats the
	// candidate's claimed coverage. It is definitionally valid and records
	// an acknowledged limitation instead of eliminating.
	RebuttalScopeNarrowing RebuttalKind = "scope_narrowing"

	// RebuttalEvidenceReliability disputes the reliability of the evidence
	// behind an inconsistency challenge rather than the inference from it.
	// Registered by the causal-hypothesis protocol; non-concessive.
	RebuttalEvidenceReliability RebuttalKind = "evidence_reliability"
)

// Concessive reports whether the kind concedes the challenge rather than
// disputing it. Only concessive rebuttals accumulate limitations.
func (k RebuttalKind) Concessive() bool {
	return k == RebuttalScopeNarrowing
}

// Rebuttal is a response to a challenge. Per prd001-derivation R2.1-R2.4:
// a scope_narrowing rebuttal must have Valid true and a non-empty Limitation;
// any other kind must leave Limitation empty.
type Rebuttal struct {
	// Kind determines whether the rebuttal disputes or concedes.
	Kind RebuttalKind `json:"kind" yaml:"kind"`

	// Argument is the evaluator-authored case for the rebuttal. Mandatory.
	Argument string `json:"argument" yaml:"argument"`

	// Valid records whether the rebuttal was judged to hold. For
	// scope_narrowing this is always true: a concession is never a dispute.
	Valid bool `json:"valid" yaml:"valid"`

	// Limitation describes the coverage retreated by a scope_narrowing
	// rebuttal. Required non-empty exactly when Kind is scope_narrowing.
	Limitation string `json:"limitation,omitempty" yaml:"limitation,omitempty"`
}

// ExperimentNote declares an external experiment that could bear on a
// challenge. The engine records feasibility and cost as inert metadata; it
// never schedules or executes the experiment. Per prd001-derivation R5.2.
type ExperimentNote struct {
	// Description says what would be measured or attempted.
	Description string `json:"description" yaml:"description"`

	// Feasibility is the declarer's assessment (e.g. "days", "infeasible").
	Feasibility string `json:"feasibility,omitempty" yaml:"feasibility,omitempty"`

	// Cost is the declared cost in the declarer's own units.
	Cost string `json:"cost,omitempty" yaml:"cost,omitempty"`
}

// Challenge is targeted pressure against a single candidate.
// Per prd001-derivation R1.4-R1.7.
type Challenge struct {
	// ID is unique within a run version (e.g. "CH1").
	ID string `json:"id" yaml:"id"`

	// Subtype must belong to the run's protocol catalogue.
	Subtype ChallengeSubtype `json:"subtype" yaml:"subtype"`

	// TargetID names the candidate under attack. A target absent from the
	// current pool is a validation error at intake, never a silent no-op.
	TargetID string `json:"target_id" yaml:"target_id"`

	// Argument is the evaluator-authored case for the challenge. Mandatory.
	Argument string `json:"argument" yaml:"argument"`

	// Minimal asserts the counterexample has been reduced to its smallest
	// form. Required true for counterexample-class subtypes.
	Minimal bool `json:"minimal,omitempty" yaml:"minimal,omitempty"`

	// Weight grades the pressure. Empty is treated as WeightStrong.
	Weight ChallengeWeight `json:"weight,omitempty" yaml:"weight,omitempty"`

	// Reference names the subject of a previously finalized Outcome that a
	// composition-class challenge argues against. Required for
	// composition-class subtypes, forbidden otherwise.
	Reference string `json:"reference,omitempty" yaml:"reference,omitempty"`

	// Experiment optionally declares an external experiment bearing on this
	// challenge. Inert metadata.
	Experiment *ExperimentNote `json:"experiment,omitempty" yaml:"experiment,omitempty"`

	// Rebuttal is the optional response. Structurally irrebuttable subtypes
	// and decisive challenges must not carry one.
	Rebuttal *Rebuttal `json:"rebuttal,omitempty" yaml:"rebuttal,omitempty"`
}

// EffectiveWeight returns the challenge weight, defaulting empty to strong.
func (c Challenge) EffectiveWeight() ChallengeWeight {
	if c.Weight == "" {
		return WeightStrong
	}
	return c.Weight
}

// StrengthJudgement is the evaluator's argued call on whether accumulated
// weak pressure against one candidate rises to strong. The source material
// defines no numeric threshold, so only this record — never a count — may
// participate in elimination. Per prd001-derivation R3.3-R3.4.
type StrengthJudgement struct {
	// ID is unique within a run version (e.g. "J1").
	ID string `json:"id" yaml:"id"`

	// TargetID names the candidate the aggregated pressure bears on.
	TargetID string `json:"target_id" yaml:"target_id"`

	// ChallengeIDs lists the contributing weak challenges. Every entry must
	// exist, carry WeightWeak, and target the same candidate.
	ChallengeIDs []string `json:"challenge_ids" yaml:"challenge_ids"`

	// RisesToStrong is the judgement itself.
	RisesToStrong bool `json:"rises_to_strong" yaml:"rises_to_strong"`

	// Argument is the mandatory free-text justification for the call.
	Argument string `json:"argument" yaml:"argument"`
}
