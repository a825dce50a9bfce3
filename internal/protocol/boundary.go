// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package protocol

import "github.com/pdiddy/dialectic-engine/pkg/types"

// Concept-boundary protocol: candidate boundary criteria that decide what
// falls inside and outside a concept.
const (
	// SubtypeBorderlineCase presents a case the criterion cannot classify.
	// Counterexample-class: must be minimal.
	SubtypeBorderlineCase types.ChallengeSubtype = "borderline_case"

	// SubtypeOverextension shows the criterion admits clear non-instances.
	SubtypeOverextension types.ChallengeSubtype = "overextension"

	// SubtypeUnderextension shows the criterion excludes clear instances.
	SubtypeUnderextension types.ChallengeSubtype = "underextension"

	// SubtypeIncoherentBoundary shows the criterion classifies the same
	// case both ways. Structurally irrebuttable.
	SubtypeIncoherentBoundary types.ChallengeSubtype = "incoherent_boundary"
)

func init() {
	register(Spec{
		ID:          "boundary",
		Name:        "Concept boundary",
		SubjectKind: "a concept whose extension is in dispute",
		Subtypes: []SubtypeSpec{
			{
				Subtype:        SubtypeBorderlineCase,
				Description:    "a minimal case the criterion cannot classify",
				Counterexample: true,
				AllowedRebuttals: []types.RebuttalKind{
					types.RebuttalRefutation, types.RebuttalScopeNarrowing,
				},
				Reason: "borderline_unclassified",
			},
			{
				Subtype:     SubtypeOverextension,
				Description: "the criterion admits clear non-instances",
				AllowedRebuttals: []types.RebuttalKind{
					types.RebuttalRefutation, types.RebuttalScopeNarrowing,
				},
				Reason: "overextension",
			},
			{
				Subtype:     SubtypeUnderextension,
				Description: "the criterion excludes clear instances",
				AllowedRebuttals: []types.RebuttalKind{
					types.RebuttalRefutation, types.RebuttalScopeNarrowing,
				},
				Reason: "underextension",
			},
			{
				Subtype:      SubtypeIncoherentBoundary,
				Description:  "the criterion classifies one case both ways",
				Irrebuttable: true,
				Reason:       "incoherent_boundary",
			},
		},
		AccumulatedReason: "accumulated_misclassification",
		Resolutions:       defaultResolutions(),
		TieBreaks:         defaultTieBreaks(),
		Verdicts: VerdictLabels{
			Adopted:    "bounded",
			Rejected:   "rejected",
			Unresolved: "unboundable",
			Abandoned:  "abandoned",
		},
	})
}
