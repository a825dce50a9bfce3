// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package protocol

import "github.com/pdiddy/dialectic-engine/pkg/types"

// Analogy-transfer protocol: candidate mappings that transfer structure or
// results from a source domain to a target domain.
const (
	// SubtypeBrokenMapping shows the mapping fails to preserve the relation
	// the transfer depends on. Only refutation is legal against it.
	SubtypeBrokenMapping types.ChallengeSubtype = "broken_mapping"

	// SubtypeDisanalogy names a relevant respect in which the domains
	// differ. Conceding it narrows the scope of the transfer.
	SubtypeDisanalogy types.ChallengeSubtype = "disanalogy"

	// SubtypeNegativeAnalogy proves a load-bearing property of the source
	// provably fails in the target. Structurally irrebuttable.
	SubtypeNegativeAnalogy types.ChallengeSubtype = "negative_analogy"
)

func init() {
	register(Spec{
		ID:          "analogy",
		Name:        "Analogy transfer",
		SubjectKind: "a result or structure to be transferred across domains",
		Subtypes: []SubtypeSpec{
			{
				Subtype:          SubtypeBrokenMapping,
				Description:      "the mapping does not preserve the load-bearing relation",
				AllowedRebuttals: []types.RebuttalKind{types.RebuttalRefutation},
				Reason:           "broken_mapping",
			},
			{
				Subtype:     SubtypeDisanalogy,
				Description: "the domains differ in a relevant respect",
				AllowedRebuttals: []types.RebuttalKind{
					types.RebuttalRefutation, types.RebuttalScopeNarrowing,
				},
				Reason: "disanalogy_upheld",
			},
			{
				Subtype:      SubtypeNegativeAnalogy,
				Description:  "a load-bearing source property provably fails in the target",
				Irrebuttable: true,
				Reason:       "negative_analogy",
			},
		},
		AccumulatedReason: "accumulated_disanalogy",
		Resolutions:       defaultResolutions(),
		TieBreaks:         defaultTieBreaks(),
		Verdicts: VerdictLabels{
			Adopted:    "transferred",
			Rejected:   "rejected",
			Unresolved: "untransferable",
			Abandoned:  "abandoned",
		},
	})
}
