// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package protocol

import "github.com/pdiddy/dialectic-engine/pkg/types"

// Decomposition protocol: candidate breakdowns of a problem into parts.
const (
	// SubtypeGap names a requirement no part of the decomposition covers.
	SubtypeGap types.ChallengeSubtype = "gap"

	// SubtypeOverlap shows two parts claiming the same responsibility.
	SubtypeOverlap types.ChallengeSubtype = "overlap"

	// SubtypeHiddenCoupling shows two supposedly independent parts that
	// cannot in fact be solved separately.
	SubtypeHiddenCoupling types.ChallengeSubtype = "hidden_coupling"

	// SubtypeResidualMonolith shows the undecomposed remainder is as hard
	// as the original problem. Structurally irrebuttable: such a
	// decomposition decomposed nothing.
	SubtypeResidualMonolith types.ChallengeSubtype = "residual_monolith"
)

func init() {
	register(Spec{
		ID:          "decompose",
		Name:        "Decomposition",
		SubjectKind: "a problem to be broken into independently solvable parts",
		Subtypes: []SubtypeSpec{
			{
				Subtype:     SubtypeGap,
				Description: "a requirement uncovered by every part",
				AllowedRebuttals: []types.RebuttalKind{
					types.RebuttalRefutation, types.RebuttalScopeNarrowing,
				},
				Reason: "coverage_gap",
			},
			{
				Subtype:     SubtypeOverlap,
				Description: "two parts own the same responsibility",
				AllowedRebuttals: []types.RebuttalKind{
					types.RebuttalRefutation, types.RebuttalScopeNarrowing,
				},
				Reason: "unresolved_overlap",
			},
			{
				Subtype:          SubtypeHiddenCoupling,
				Description:      "parts presented as independent are mutually dependent",
				AllowedRebuttals: []types.RebuttalKind{types.RebuttalRefutation},
				Reason:           "hidden_coupling",
			},
			{
				Subtype:      SubtypeResidualMonolith,
				Description:  "the remainder is as hard as the whole",
				Irrebuttable: true,
				Reason:       "residual_monolith",
			},
		},
		AccumulatedReason: "accumulated_friction",
		Resolutions:       defaultResolutions(),
		TieBreaks:         defaultTieBreaks(),
		Verdicts: VerdictLabels{
			Adopted:    "decomposed",
			Rejected:   "rejected",
			Unresolved: "indecomposable",
			Abandoned:  "abandoned",
		},
	})
}
