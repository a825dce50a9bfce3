// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package derive computes the eliminated/survivor partition of a candidate
// pool under a challenge set whose rebuttals have already been evaluated.
// The partition is deterministic: identical input always yields the
// identical partition, and every candidate lands in exactly one half.
// Implements: prd001-derivation (R4-R5); docs/ARCHITECTURE § Derivation.
package derive

import (
	"github.com/pdiddy/dialectic-engine/internal/protocol"
	"github.com/pdiddy/dialectic-engine/pkg/types"
)

// Input is one run version's wholesale stage input. References holds the
// finalized outcomes resolved for composition-class challenges, keyed by
// subject; the engine reads them and never alters them.
type Input struct {
	Pool       []types.Candidate
	Challenges []types.Challenge
	Judgements []types.StrengthJudgement
	References map[string]*types.Outcome
}

// Derive validates the input and computes the partition. A candidate is
// eliminated by the first cause, in challenge input order, among:
//
//	(a) a structurally irrebuttable subtype targeting it;
//	(b) a decisive-weight challenge targeting it;
//	(c) a strong challenge whose non-concessive rebuttal was judged invalid;
//	(d) a StrengthJudgement aggregating weak pressure that rises to strong.
//
// scope_narrowing rebuttals never eliminate; each appends its limitation to
// the survivor record. Weak challenges never eliminate directly, and an
// unanswered rebuttable challenge does not eliminate on its own.
func Derive(spec protocol.Spec, in Input) (types.Derivation, error) {
	if err := Validate(spec, in); err != nil {
		return types.Derivation{}, err
	}

	d := types.Derivation{
		Eliminated: []types.EliminationRecord{},
		Survivors:  []types.SurvivorRecord{},
	}

	for _, cand := range in.Pool {
		rec, limitations := evaluate(spec, cand, in)
		if rec != nil {
			d.Eliminated = append(d.Eliminated, *rec)
			continue
		}
		d.Survivors = append(d.Survivors, types.SurvivorRecord{
			CandidateID: cand.ID,
			Limitations: limitations,
		})
	}

	return d, nil
}

// evaluate applies every challenge and judgement against one candidate. It
// returns the elimination record for the first eliminating cause, or nil
// with the accumulated limitations if the candidate survives.
func evaluate(spec protocol.Spec, cand types.Candidate, in Input) (*types.EliminationRecord, []string) {
	var limitations []string

	for _, ch := range in.Challenges {
		if ch.TargetID != cand.ID {
			continue
		}
		sub, _ := spec.SubtypeSpec(ch.Subtype)

		if sub.Irrebuttable {
			return &types.EliminationRecord{
				CandidateID: cand.ID, Reason: sub.Reason, CauseID: ch.ID,
			}, nil
		}
		if ch.EffectiveWeight() == types.WeightDecisive {
			return &types.EliminationRecord{
				CandidateID: cand.ID, Reason: sub.Reason, CauseID: ch.ID,
			}, nil
		}
		if ch.Rebuttal == nil {
			continue
		}
		if ch.Rebuttal.Kind.Concessive() {
			limitations = append(limitations, ch.Rebuttal.Limitation)
			continue
		}
		if !ch.Rebuttal.Valid && ch.EffectiveWeight() == types.WeightStrong {
			return &types.EliminationRecord{
				CandidateID: cand.ID, Reason: sub.Reason, CauseID: ch.ID,
			}, nil
		}
	}

	for _, j := range in.Judgements {
		if j.TargetID == cand.ID && j.RisesToStrong {
			return &types.EliminationRecord{
				CandidateID: cand.ID, Reason: spec.AccumulatedReason, CauseID: j.ID,
			}, nil
		}
	}

	return nil, limitations
}
