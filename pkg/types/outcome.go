// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Verdict is the terminal label of a run. The concrete strings are supplied
// by the protocol instantiation (e.g. the formalization protocol adopts as
// "formalized"); the four roles below are universal.
// Per prd005-protocols R3.1.
type Verdict string

// VerdictRole classifies a protocol verdict label by its universal meaning.
type VerdictRole string

const (
	// RoleAdopted: a finalist passed the obligation gate and was adopted.
	RoleAdopted VerdictRole = "adopted"

	// RoleRejected: an evaluator deliberately closed the run against all
	// candidates before the revision bound was reached.
	RoleRejected VerdictRole = "rejected"

	// RoleUnresolved: zero survivors persisted past the revision bound, or
	// the subject was diagnosed as not viable.
	RoleUnresolved VerdictRole = "unresolved"

	// RoleAbandoned: the run was explicitly abandoned mid-flight. The audit
	// trail is preserved, never discarded.
	RoleAbandoned VerdictRole = "abandoned"
)

// Outcome is the immutable terminal record of a completed run. Once
// assembled it is never edited; later runs may supersede it with a new
// Outcome for the same subject but cannot mutate it.
// Per prd001-derivation R6.1-R6.3, prd006-registry R1.1.
type Outcome struct {
	// RunID identifies the run that produced this outcome.
	RunID string `json:"run_id" yaml:"run_id"`

	// Protocol is the instantiation id (e.g. "causal", "formalize").
	Protocol string `json:"protocol" yaml:"protocol"`

	// Subject names what the run was about. Registry lookups for
	// composition-class challenges key on this.
	Subject string `json:"subject" yaml:"subject"`

	// Verdict is the protocol-specific terminal label.
	Verdict Verdict `json:"verdict" yaml:"verdict"`

	// Role is the universal meaning of the verdict.
	Role VerdictRole `json:"role" yaml:"role"`

	// Winner is the adopted candidate. Nil unless Role is adopted.
	Winner *Candidate `json:"winner,omitempty" yaml:"winner,omitempty"`

	// Merge describes the collapse that produced the winner, when the
	// winner is a merged candidate.
	Merge *MergeDescriptor `json:"merge,omitempty" yaml:"merge,omitempty"`

	// Selection is the audited selection record, when selection ran.
	Selection *SelectionResult `json:"selection,omitempty" yaml:"selection,omitempty"`

	// Limitations is the full list of acknowledged limitations accumulated
	// by the winner across all scope_narrowing concessions.
	Limitations []string `json:"limitations,omitempty" yaml:"limitations,omitempty"`

	// Obligations is the gate checklist as last evaluated.
	Obligations []Obligation `json:"obligations,omitempty" yaml:"obligations,omitempty"`

	// Revisions is the complete revision history, in trigger order.
	Revisions []RevisionRecord `json:"revisions,omitempty" yaml:"revisions,omitempty"`

	// Versions is the number of candidate-pool versions the run consumed.
	Versions int `json:"versions" yaml:"versions"`

	// Notes carries closing remarks (rejection grounds, abandonment reason).
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`

	// FinalizedAt is when the outcome was assembled.
	FinalizedAt time.Time `json:"finalized_at" yaml:"finalized_at"`
}
