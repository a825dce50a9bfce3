// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package derive

import (
	"github.com/pdiddy/dialectic-engine/internal/protocol"
	"github.com/pdiddy/dialectic-engine/pkg/types"
)

// Validate checks a run version's input against the protocol catalogue.
// Validation failures are fatal: the run cannot proceed until the input is
// corrected upstream. Per prd001-derivation R5.1-R5.3.
func Validate(spec protocol.Spec, in Input) error {
	pool := make(map[string]bool, len(in.Pool))
	for _, c := range in.Pool {
		if c.ID == "" {
			return types.Validationf(types.CodeDuplicateID, []string{"(candidate)"},
				"candidate with empty id")
		}
		if pool[c.ID] {
			return types.Validationf(types.CodeDuplicateID, []string{c.ID},
				"duplicate candidate id")
		}
		pool[c.ID] = true
		if c.Statement == "" {
			return types.Validationf(types.CodeMissingArgument, []string{c.ID},
				"candidate has an empty statement")
		}
	}

	challenges := make(map[string]types.Challenge, len(in.Challenges))
	for _, ch := range in.Challenges {
		if ch.ID == "" {
			return types.Validationf(types.CodeDuplicateID, []string{"(challenge)"},
				"challenge with empty id")
		}
		if _, dup := challenges[ch.ID]; dup {
			return types.Validationf(types.CodeDuplicateID, []string{ch.ID},
				"duplicate challenge id")
		}
		challenges[ch.ID] = ch

		if !pool[ch.TargetID] {
			return types.Validationf(types.CodeDanglingTarget, []string{ch.ID},
				"target candidate %q is not in the current pool", ch.TargetID)
		}
		sub, ok := spec.SubtypeSpec(ch.Subtype)
		if !ok {
			return types.Validationf(types.CodeUnknownSubtype, []string{ch.ID},
				"subtype %q is not in the %s catalogue", ch.Subtype, spec.ID)
		}
		if ch.Argument == "" {
			return types.Validationf(types.CodeMissingArgument, []string{ch.ID},
				"challenge has an empty argument")
		}
		switch ch.EffectiveWeight() {
		case types.WeightStrong, types.WeightWeak, types.WeightDecisive:
		default:
			return types.Validationf(types.CodeUnknownSubtype, []string{ch.ID},
				"unknown challenge weight %q", ch.Weight)
		}
		if sub.Counterexample && !ch.Minimal {
			return types.Validationf(types.CodeMissingMinimality, []string{ch.ID},
				"counterexample-class challenge must assert minimality")
		}
		if sub.Composition {
			if ch.Reference == "" {
				return types.Validationf(types.CodeMissingReference, []string{ch.ID},
					"composition-class challenge must reference a finalized outcome subject")
			}
			if _, ok := in.References[ch.Reference]; !ok {
				return types.Validationf(types.CodeUnknownReference, []string{ch.ID},
					"no finalized outcome for subject %q", ch.Reference)
			}
		} else if ch.Reference != "" {
			return types.Validationf(types.CodeUnknownReference, []string{ch.ID},
				"subtype %q does not take an outcome reference", ch.Subtype)
		}

		if ch.Rebuttal == nil {
			continue
		}
		reb := ch.Rebuttal
		if sub.Irrebuttable {
			return types.Validationf(types.CodeIrrebuttable, []string{ch.ID},
				"subtype %q is structurally irrebuttable", ch.Subtype)
		}
		if ch.EffectiveWeight() == types.WeightDecisive {
			return types.Validationf(types.CodeDecisiveRebutted, []string{ch.ID},
				"a decisive challenge permits no rebuttal")
		}
		if !spec.KindRegistered(reb.Kind) {
			return types.Validationf(types.CodeUnknownRebuttal, []string{ch.ID},
				"rebuttal kind %q is not registered for protocol %s", reb.Kind, spec.ID)
		}
		if !sub.Allows(reb.Kind) {
			return types.Validationf(types.CodeDisallowedRebuttal, []string{ch.ID},
				"subtype %q does not accept %q rebuttals", ch.Subtype, reb.Kind)
		}
		if reb.Argument == "" {
			return types.Validationf(types.CodeMissingArgument, []string{ch.ID},
				"rebuttal has an empty argument")
		}
		if reb.Kind.Concessive() {
			// A concession is never a dispute: validity must be true and the
			// retreated coverage must be named.
			if !reb.Valid {
				return types.Validationf(types.CodeScopeNarrowing, []string{ch.ID},
					"scope_narrowing rebuttal marked invalid")
			}
			if reb.Limitation == "" {
				return types.Validationf(types.CodeScopeNarrowing, []string{ch.ID},
					"scope_narrowing rebuttal missing its limitation text")
			}
		} else if reb.Limitation != "" {
			return types.Validationf(types.CodeScopeNarrowing, []string{ch.ID},
				"limitation text is only legal on scope_narrowing rebuttals")
		}
	}

	judgements := make(map[string]bool, len(in.Judgements))
	for _, j := range in.Judgements {
		if j.ID == "" {
			return types.Validationf(types.CodeDuplicateID, []string{"(judgement)"},
				"judgement with empty id")
		}
		if judgements[j.ID] {
			return types.Validationf(types.CodeDuplicateID, []string{j.ID},
				"duplicate judgement id")
		}
		judgements[j.ID] = true
		if !pool[j.TargetID] {
			return types.Validationf(types.CodeDanglingTarget, []string{j.ID},
				"target candidate %q is not in the current pool", j.TargetID)
		}
		if j.Argument == "" {
			return types.Validationf(types.CodeBadJudgement, []string{j.ID},
				"strength judgement requires an argued justification")
		}
		if len(j.ChallengeIDs) == 0 {
			return types.Validationf(types.CodeBadJudgement, []string{j.ID},
				"strength judgement names no contributing challenges")
		}
		for _, cid := range j.ChallengeIDs {
			ch, ok := challenges[cid]
			if !ok {
				return types.Validationf(types.CodeBadJudgement, []string{j.ID, cid},
					"contributing challenge does not exist")
			}
			if ch.EffectiveWeight() != types.WeightWeak {
				return types.Validationf(types.CodeBadJudgement, []string{j.ID, cid},
					"contributing challenge is not weak; strong pressure eliminates on its own terms")
			}
			if ch.TargetID != j.TargetID {
				return types.Validationf(types.CodeBadJudgement, []string{j.ID, cid},
					"contributing challenge targets %q, judgement targets %q", ch.TargetID, j.TargetID)
			}
		}
	}

	return nil
}
