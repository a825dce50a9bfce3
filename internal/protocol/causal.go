// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package protocol

import "github.com/pdiddy/dialectic-engine/pkg/types"

// Causal-hypothesis protocol: the evidence-weight instantiation. Candidate
// hypotheses are eliminated by inconsistencies with observations; challenges
// carry weights, a decisive inconsistency permits no rebuttal, and weak
// inconsistencies eliminate only through an argued StrengthJudgement. It
// registers the evidence_reliability rebuttal kind, which disputes the
// observation itself rather than the inference drawn from it.
const (
	// SubtypeInconsistency reports an observation the hypothesis cannot
	// accommodate. Weight-graded.
	SubtypeInconsistency types.ChallengeSubtype = "inconsistency"

	// SubtypeConfound names an uncontrolled alternative cause.
	SubtypeConfound types.ChallengeSubtype = "confound"

	// SubtypeMechanismGap argues no plausible mechanism links cause to
	// effect. Only refutation is legal: conceding it concedes the
	// hypothesis.
	SubtypeMechanismGap types.ChallengeSubtype = "mechanism_gap"

	// SubtypeTemporalViolation shows the effect preceding the claimed
	// cause. Structurally irrebuttable.
	SubtypeTemporalViolation types.ChallengeSubtype = "temporal_violation"
)

func init() {
	register(Spec{
		ID:          "causal",
		Name:        "Causal-hypothesis elimination",
		SubjectKind: "a phenomenon whose cause is sought",
		Subtypes: []SubtypeSpec{
			{
				Subtype:     SubtypeInconsistency,
				Description: "an observation the hypothesis cannot accommodate",
				AllowedRebuttals: []types.RebuttalKind{
					types.RebuttalRefutation,
					types.RebuttalScopeNarrowing,
					types.RebuttalEvidenceReliability,
				},
				Reason: "inconsistency_upheld",
			},
			{
				Subtype:     SubtypeConfound,
				Description: "an uncontrolled alternative cause",
				AllowedRebuttals: []types.RebuttalKind{
					types.RebuttalRefutation,
					types.RebuttalEvidenceReliability,
				},
				Reason: "unruled_confound",
			},
			{
				Subtype:          SubtypeMechanismGap,
				Description:      "no plausible mechanism links cause and effect",
				AllowedRebuttals: []types.RebuttalKind{types.RebuttalRefutation},
				Reason:           "mechanism_gap",
			},
			{
				Subtype:      SubtypeTemporalViolation,
				Description:  "the effect precedes the claimed cause",
				Irrebuttable: true,
				Reason:       "temporal_violation",
			},
		},
		ExtraRebuttalKinds: []types.RebuttalKind{types.RebuttalEvidenceReliability},
		AccumulatedReason:  "accumulated_inconsistency",
		Resolutions:        defaultResolutions(),
		TieBreaks:          defaultTieBreaks(),
		Verdicts: VerdictLabels{
			Adopted:    "cause_identified",
			Rejected:   "all_causes_rejected",
			Unresolved: "inconclusive",
			Abandoned:  "abandoned",
		},
	})
}
