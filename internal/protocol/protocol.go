// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package protocol defines the configuration that parameterizes the generic
// elimination engine: challenge-subtype catalogues, allowed rebuttal kinds
// per subtype, elimination reasons, diagnosis resolutions, tie-break
// ordering, and verdict labels. Each of the six built-in instantiations is a
// configuration value, not a subtype or override of the kernel.
// Implements: prd005-protocols (R1-R3); docs/ARCHITECTURE § Protocols.
package protocol

import (
	"fmt"
	"sort"

	"github.com/pdiddy/dialectic-engine/pkg/types"
)

// TieBreak names an ordered selection criterion applied when a merge is not
// attempted or fails. Per prd005-protocols R2.4.
type TieBreak string

const (
	TieBreakFewestLimitations TieBreak = "fewest_limitations"
	TieBreakStrongestBenefit  TieBreak = "strongest_benefit"
	TieBreakEvaluator         TieBreak = "evaluator_judgement"
)

// SubtypeSpec describes one challenge subtype in a protocol's catalogue.
type SubtypeSpec struct {
	// Subtype is the catalogue key.
	Subtype types.ChallengeSubtype

	// Description says what the challenge alleges.
	Description string

	// Irrebuttable marks a subtype whose rebuttal slot is absent by design.
	// Any candidate it targets is eliminated unconditionally, and a
	// populated rebuttal is a validation error.
	Irrebuttable bool

	// Counterexample marks a subtype whose challenges must assert
	// minimality.
	Counterexample bool

	// Composition marks a subtype whose challenges must reference a
	// previously finalized Outcome by subject.
	Composition bool

	// AllowedRebuttals is the per-subtype allow-list. A rebuttal of any
	// other kind is rejected at intake, never silently accepted. Empty for
	// irrebuttable subtypes.
	AllowedRebuttals []types.RebuttalKind

	// Reason is the elimination reason recorded when this subtype
	// eliminates.
	Reason types.EliminationReason
}

// Allows reports whether the subtype permits rebuttals of the given kind.
func (s SubtypeSpec) Allows(kind types.RebuttalKind) bool {
	for _, k := range s.AllowedRebuttals {
		if k == kind {
			return true
		}
	}
	return false
}

// VerdictLabels maps the four universal verdict roles to a protocol's own
// outcome vocabulary.
type VerdictLabels struct {
	Adopted    types.Verdict
	Rejected   types.Verdict
	Unresolved types.Verdict
	Abandoned  types.Verdict
}

// ForRole returns the protocol label for a universal verdict role.
func (v VerdictLabels) ForRole(role types.VerdictRole) types.Verdict {
	switch role {
	case types.RoleAdopted:
		return v.Adopted
	case types.RoleRejected:
		return v.Rejected
	case types.RoleUnresolved:
		return v.Unresolved
	default:
		return v.Abandoned
	}
}

// Spec is one protocol instantiation: everything the generic engine needs to
// run a dialectic in that protocol's vocabulary.
type Spec struct {
	// ID is the protocol identifier used in run documents (e.g. "causal").
	ID string

	// Name is the human-readable protocol name.
	Name string

	// SubjectKind says what a subject of this protocol is (e.g. "an
	// informal concept", "a causal question").
	SubjectKind string

	// Subtypes is the challenge catalogue.
	Subtypes []SubtypeSpec

	// ExtraRebuttalKinds lists non-universal rebuttal kinds this protocol
	// registers beyond refutation and scope_narrowing.
	ExtraRebuttalKinds []types.RebuttalKind

	// AccumulatedReason is recorded when a StrengthJudgement eliminates.
	AccumulatedReason types.EliminationReason

	// Resolutions maps each diagnosis to the upstream restart it selects.
	Resolutions map[types.Diagnosis]types.ResolutionAction

	// TieBreaks is the ordered criterion list for multi-survivor selection.
	TieBreaks []TieBreak

	// Verdicts supplies the protocol's outcome labels.
	Verdicts VerdictLabels
}

// SubtypeSpec returns the catalogue entry for a subtype, if registered.
func (s Spec) SubtypeSpec(st types.ChallengeSubtype) (SubtypeSpec, bool) {
	for _, sub := range s.Subtypes {
		if sub.Subtype == st {
			return sub, true
		}
	}
	return SubtypeSpec{}, false
}

// KindRegistered reports whether a rebuttal kind exists in this protocol's
// vocabulary (the two universal kinds plus any registered extras).
func (s Spec) KindRegistered(kind types.RebuttalKind) bool {
	if kind == types.RebuttalRefutation || kind == types.RebuttalScopeNarrowing {
		return true
	}
	for _, k := range s.ExtraRebuttalKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Resolution returns the restart action for a diagnosis.
func (s Spec) Resolution(d types.Diagnosis) (types.ResolutionAction, bool) {
	a, ok := s.Resolutions[d]
	return a, ok
}

// Validate checks the catalogue for internal consistency: unique subtypes,
// irrebuttable subtypes with empty allow-lists, allow-lists drawn from
// registered kinds, scope_narrowing never the sole recourse against an
// irrebuttable claim, and complete resolution/verdict tables.
func (s Spec) Validate() error {
	if s.ID == "" || s.Name == "" {
		return fmt.Errorf("protocol spec missing id or name")
	}
	if len(s.Subtypes) == 0 {
		return fmt.Errorf("protocol %s: empty subtype catalogue", s.ID)
	}
	seen := make(map[types.ChallengeSubtype]bool)
	for _, sub := range s.Subtypes {
		if seen[sub.Subtype] {
			return fmt.Errorf("protocol %s: duplicate subtype %q", s.ID, sub.Subtype)
		}
		seen[sub.Subtype] = true
		if sub.Reason == "" {
			return fmt.Errorf("protocol %s: subtype %q has no elimination reason", s.ID, sub.Subtype)
		}
		if sub.Irrebuttable && len(sub.AllowedRebuttals) > 0 {
			return fmt.Errorf("protocol %s: irrebuttable subtype %q lists allowed rebuttals", s.ID, sub.Subtype)
		}
		if !sub.Irrebuttable && len(sub.AllowedRebuttals) == 0 {
			return fmt.Errorf("protocol %s: rebuttable subtype %q allows no rebuttal kinds", s.ID, sub.Subtype)
		}
		for _, k := range sub.AllowedRebuttals {
			if !s.KindRegistered(k) {
				return fmt.Errorf("protocol %s: subtype %q allows unregistered rebuttal kind %q", s.ID, sub.Subtype, k)
			}
		}
	}
	if s.AccumulatedReason == "" {
		return fmt.Errorf("protocol %s: no accumulated-pressure elimination reason", s.ID)
	}
	for _, d := range []types.Diagnosis{
		types.DiagnosisConstraintsTooStrong,
		types.DiagnosisCandidatesTooWeak,
		types.DiagnosisSubjectNotViable,
	} {
		if _, ok := s.Resolutions[d]; !ok {
			return fmt.Errorf("protocol %s: no resolution for diagnosis %q", s.ID, d)
		}
	}
	if len(s.TieBreaks) == 0 {
		return fmt.Errorf("protocol %s: empty tie-break ordering", s.ID)
	}
	if s.Verdicts.Adopted == "" || s.Verdicts.Rejected == "" ||
		s.Verdicts.Unresolved == "" || s.Verdicts.Abandoned == "" {
		return fmt.Errorf("protocol %s: incomplete verdict labels", s.ID)
	}
	return nil
}

// defaultResolutions is the shared diagnosis-to-restart mapping. Protocols
// that need a different mapping supply their own table.
func defaultResolutions() map[types.Diagnosis]types.ResolutionAction {
	return map[types.Diagnosis]types.ResolutionAction{
		types.DiagnosisConstraintsTooStrong: types.ResolutionRestartConstraints,
		types.DiagnosisCandidatesTooWeak:    types.ResolutionRestartCandidates,
		types.DiagnosisSubjectNotViable:     types.ResolutionCloseUnresolved,
	}
}

// defaultTieBreaks is the typical criterion ordering.
func defaultTieBreaks() []TieBreak {
	return []TieBreak{TieBreakFewestLimitations, TieBreakStrongestBenefit, TieBreakEvaluator}
}

// builtins holds the registered protocol instantiations.
var builtins = map[string]Spec{}

func register(s Spec) {
	if err := s.Validate(); err != nil {
		panic(err)
	}
	if _, dup := builtins[s.ID]; dup {
		panic(fmt.Sprintf("protocol %s registered twice", s.ID))
	}
	builtins[s.ID] = s
}

// Get returns the registered protocol with the given id.
func Get(id string) (Spec, bool) {
	s, ok := builtins[id]
	return s, ok
}

// All returns every registered protocol sorted by id.
func All() []Spec {
	specs := make([]Spec, 0, len(builtins))
	for _, s := range builtins {
		specs = append(specs, s)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].ID < specs[j].ID })
	return specs
}
