// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collapse reduces a multi-survivor derivation to a single finalist:
// first by validating an evaluator-proposed merge, then by the protocol's
// ordered tie-break criteria. The engine never authors a merged candidate
// and never guesses a winner; every decision is recorded with its rationale
// and the rejected alternatives.
// Implements: prd003-selection (R1-R5); docs/ARCHITECTURE § Selection.
package collapse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/dialectic-engine/internal/protocol"
	"github.com/pdiddy/dialectic-engine/pkg/types"
)

// MergeProposal is an evaluator-synthesized candidate offered as a collapse
// of every survivor. The engine only checks the acceptance conditions.
type MergeProposal struct {
	// Candidate is the proposed merged candidate. Its id must be new.
	Candidate types.Candidate `json:"candidate" yaml:"candidate"`

	// Rationale argues the synthesis. Mandatory non-empty.
	Rationale string `json:"rationale" yaml:"rationale"`
}

// EvaluatorChoice is the explicit free-text judgement call permitted as the
// final tie-break. It must be fully auditable: a bare pick with no rationale
// is rejected.
type EvaluatorChoice struct {
	// CandidateID names the chosen survivor.
	CandidateID string `json:"candidate_id" yaml:"candidate_id"`

	// Rationale is the mandatory justification.
	Rationale string `json:"rationale" yaml:"rationale"`
}

// Input carries the selection stage's wholesale input.
type Input struct {
	// Survivors is the derivation's survivor list, length > 1.
	Survivors []types.SurvivorRecord

	// Pool is the current version's candidate pool, used to resolve
	// survivor claims and failure modes.
	Pool []types.Candidate

	// Merge is the optional merge proposal, tried before any tie-break.
	Merge *MergeProposal

	// BenefitScores are evaluator-assigned domain-benefit ranks by
	// candidate id. The strongest_benefit criterion abstains unless every
	// survivor is scored.
	BenefitScores map[string]int

	// Evaluator is the optional explicit judgement call.
	Evaluator *EvaluatorChoice
}

// Resolve picks exactly one finalist. If the merge proposal fails its
// acceptance checks the failure reason is recorded and the tie-breaks run;
// if no criterion discriminates and no evaluator choice exists, the result
// is an AmbiguousSelectionError, never a guess.
func Resolve(spec protocol.Spec, in Input) (types.SelectionResult, error) {
	if len(in.Survivors) < 2 {
		return types.SelectionResult{}, fmt.Errorf("selection requires more than one survivor, got %d", len(in.Survivors))
	}

	candidates := make(map[string]types.Candidate, len(in.Pool))
	for _, c := range in.Pool {
		candidates[c.ID] = c
	}
	for _, s := range in.Survivors {
		if _, ok := candidates[s.CandidateID]; !ok {
			return types.SelectionResult{}, fmt.Errorf("survivor %s is not in the candidate pool", s.CandidateID)
		}
	}

	var mergeRejected string
	if in.Merge != nil {
		result, reason := tryMerge(*in.Merge, in.Survivors, candidates)
		if reason == "" {
			return result, nil
		}
		mergeRejected = reason
	}

	for _, tb := range spec.TieBreaks {
		result, decided := applyTieBreak(tb, in)
		if decided {
			result.MergeRejected = mergeRejected
			return result, nil
		}
	}

	ids := make([]string, 0, len(in.Survivors))
	for _, s := range in.Survivors {
		ids = append(ids, s.CandidateID)
	}
	return types.SelectionResult{}, &types.AmbiguousSelectionError{CandidateIDs: ids}
}

// tryMerge checks the three acceptance conditions. It returns the accepted
// result, or an empty result with the reason the proposal failed:
//
//	(a) the merge satisfies every claim satisfied by every survivor — with
//	    set-valued claims this also rules out being strictly weaker than
//	    any survivor on any claim;
//	(b) the merge introduces no failure mode absent from all survivors.
func tryMerge(p MergeProposal, survivors []types.SurvivorRecord, candidates map[string]types.Candidate) (types.SelectionResult, string) {
	merged := p.Candidate
	if merged.ID == "" || merged.Statement == "" {
		return types.SelectionResult{}, "merge proposal is missing an id or statement"
	}
	if p.Rationale == "" {
		return types.SelectionResult{}, "merge proposal is missing its rationale"
	}
	if _, clash := candidates[merged.ID]; clash {
		return types.SelectionResult{}, fmt.Sprintf("merge id %s collides with an existing candidate", merged.ID)
	}

	knownModes := make(map[string]bool)
	for _, s := range survivors {
		c := candidates[s.CandidateID]
		for _, claim := range c.Claims {
			if !merged.HasClaim(claim) {
				return types.SelectionResult{}, fmt.Sprintf(
					"merge does not satisfy claim %q of survivor %s", claim, s.CandidateID)
			}
		}
		for _, fm := range c.FailureModes {
			knownModes[fm] = true
		}
	}
	for _, fm := range merged.FailureModes {
		if !knownModes[fm] {
			return types.SelectionResult{}, fmt.Sprintf(
				"merge introduces failure mode %q absent from every survivor", fm)
		}
	}

	replaces := make([]string, 0, len(survivors))
	rejected := make([]types.RejectedAlternative, 0, len(survivors))
	for _, s := range survivors {
		replaces = append(replaces, s.CandidateID)
		rejected = append(rejected, types.RejectedAlternative{
			CandidateID: s.CandidateID,
			Reason:      fmt.Sprintf("subsumed by merge %s", merged.ID),
		})
	}

	return types.SelectionResult{
		WinnerID: merged.ID,
		Merge: &types.MergeDescriptor{
			Candidate: merged,
			Replaces:  replaces,
			Rationale: p.Rationale,
		},
		Criterion: types.CriterionMerge,
		Rationale: p.Rationale,
		Rejected:  rejected,
	}, ""
}

// applyTieBreak runs one criterion. decided is false when the criterion
// abstains or fails to discriminate.
func applyTieBreak(tb protocol.TieBreak, in Input) (types.SelectionResult, bool) {
	switch tb {
	case protocol.TieBreakFewestLimitations:
		return byFewestLimitations(in.Survivors)
	case protocol.TieBreakStrongestBenefit:
		return byStrongestBenefit(in.Survivors, in.BenefitScores)
	case protocol.TieBreakEvaluator:
		return byEvaluator(in.Survivors, in.Evaluator)
	default:
		return types.SelectionResult{}, false
	}
}

func byFewestLimitations(survivors []types.SurvivorRecord) (types.SelectionResult, bool) {
	min := -1
	winners := 0
	var winner types.SurvivorRecord
	for _, s := range survivors {
		n := len(s.Limitations)
		switch {
		case min < 0 || n < min:
			min, winners, winner = n, 1, s
		case n == min:
			winners++
		}
	}
	if winners != 1 {
		return types.SelectionResult{}, false
	}

	counts := make([]string, 0, len(survivors)-1)
	rejected := make([]types.RejectedAlternative, 0, len(survivors)-1)
	for _, s := range survivors {
		if s.CandidateID == winner.CandidateID {
			continue
		}
		counts = append(counts, fmt.Sprintf("%s: %d", s.CandidateID, len(s.Limitations)))
		rejected = append(rejected, types.RejectedAlternative{
			CandidateID: s.CandidateID,
			Reason:      fmt.Sprintf("more limitations (%d vs %d)", len(s.Limitations), min),
		})
	}
	return types.SelectionResult{
		WinnerID:  winner.CandidateID,
		Criterion: types.CriterionFewestLimitations,
		Rationale: fmt.Sprintf("fewest accumulated limitations: %d against %s",
			min, strings.Join(counts, ", ")),
		Rejected: rejected,
	}, true
}

func byStrongestBenefit(survivors []types.SurvivorRecord, scores map[string]int) (types.SelectionResult, bool) {
	// Abstain unless the evaluator scored every survivor: a partial scoring
	// cannot rank what it never looked at.
	for _, s := range survivors {
		if _, ok := scores[s.CandidateID]; !ok {
			return types.SelectionResult{}, false
		}
	}

	max := 0
	winners := 0
	var winner types.SurvivorRecord
	for i, s := range survivors {
		n := scores[s.CandidateID]
		switch {
		case i == 0 || n > max:
			max, winners, winner = n, 1, s
		case n == max:
			winners++
		}
	}
	if winners != 1 {
		return types.SelectionResult{}, false
	}

	ranked := make([]string, 0, len(survivors))
	for _, s := range survivors {
		ranked = append(ranked, fmt.Sprintf("%s: %d", s.CandidateID, scores[s.CandidateID]))
	}
	sort.Strings(ranked)

	rejected := make([]types.RejectedAlternative, 0, len(survivors)-1)
	for _, s := range survivors {
		if s.CandidateID == winner.CandidateID {
			continue
		}
		rejected = append(rejected, types.RejectedAlternative{
			CandidateID: s.CandidateID,
			Reason:      fmt.Sprintf("lower benefit score (%d vs %d)", scores[s.CandidateID], max),
		})
	}
	return types.SelectionResult{
		WinnerID:  winner.CandidateID,
		Criterion: types.CriterionStrongestBenefit,
		Rationale: fmt.Sprintf("strongest benefit score %d (%s)", max, strings.Join(ranked, ", ")),
		Rejected:  rejected,
	}, true
}

func byEvaluator(survivors []types.SurvivorRecord, choice *EvaluatorChoice) (types.SelectionResult, bool) {
	if choice == nil || choice.Rationale == "" {
		return types.SelectionResult{}, false
	}
	found := false
	for _, s := range survivors {
		if s.CandidateID == choice.CandidateID {
			found = true
			break
		}
	}
	if !found {
		return types.SelectionResult{}, false
	}

	rejected := make([]types.RejectedAlternative, 0, len(survivors)-1)
	for _, s := range survivors {
		if s.CandidateID == choice.CandidateID {
			continue
		}
		rejected = append(rejected, types.RejectedAlternative{
			CandidateID: s.CandidateID,
			Reason:      fmt.Sprintf("passed over by evaluator judgement: %s", choice.Rationale),
		})
	}
	return types.SelectionResult{
		WinnerID:  choice.CandidateID,
		Criterion: types.CriterionEvaluator,
		Rationale: choice.Rationale,
		Rejected:  rejected,
	}, true
}
