// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Diagnosis explains a zero-survivor derivation. The three values are shared
// across protocols; each protocol maps them to its own restart targets.
// Per prd002-revision R2.1.
type Diagnosis string

const (
	// DiagnosisConstraintsTooStrong: the upstream constraints over-filtered;
	// restart constraint declaration.
	DiagnosisConstraintsTooStrong Diagnosis = "constraints_too_strong"

	// DiagnosisCandidatesTooWeak: the pool was inadequate; restart candidate
	// declaration.
	DiagnosisCandidatesTooWeak Diagnosis = "candidates_too_weak"

	// DiagnosisSubjectNotViable: the subject does not suit this protocol and
	// should be reframed; close the run as unresolved.
	DiagnosisSubjectNotViable Diagnosis = "subject_not_viable"
)

// ResolutionAction is the upstream restart selected for a diagnosis.
// Per prd002-revision R2.2.
type ResolutionAction string

const (
	ResolutionRestartConstraints ResolutionAction = "restart_constraints"
	ResolutionRestartCandidates  ResolutionAction = "restart_candidates"
	ResolutionCloseUnresolved    ResolutionAction = "close_unresolved"
)

// RevisionRecord documents one trigger of the revision controller. The
// Revision counter is monotonically increasing and scoped to one run; the
// run version increments with it, and prior versions are retained for audit.
// Per prd002-revision R1.1-R1.4.
type RevisionRecord struct {
	// Triggered is always true for a recorded revision; retained so that the
	// record is self-describing when serialized alongside outcomes.
	Triggered bool `json:"triggered" yaml:"triggered"`

	// Diagnosis is the evaluator's explanation for the empty survivor set.
	Diagnosis Diagnosis `json:"diagnosis" yaml:"diagnosis"`

	// Resolution is the restart action the diagnosis maps to under the
	// run's protocol. Forced to close_unresolved once the trigger bound is
	// exceeded, regardless of diagnosis.
	Resolution ResolutionAction `json:"resolution" yaml:"resolution"`

	// Notes carries the evaluator's free-text remarks. Mandatory non-empty.
	Notes string `json:"notes" yaml:"notes"`

	// Revision is the 1-based trigger counter for this run.
	Revision int `json:"revision" yaml:"revision"`
}
