// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package protocol

import "github.com/pdiddy/dialectic-engine/pkg/types"

// Formalization protocol: candidate formal definitions of an informal
// concept are pressed until one survives with acknowledged limitations.
const (
	// SubtypeCounterexample presents a concrete case the definition
	// misclassifies. Counterexample-class: must be minimal.
	SubtypeCounterexample types.ChallengeSubtype = "counterexample"

	// SubtypeFoundationalMismatch argues the definition rests on the wrong
	// primitives. Conceding it would hollow out the candidate entirely, so
	// only refutation is legal against it.
	SubtypeFoundationalMismatch types.ChallengeSubtype = "foundational_mismatch"

	// SubtypeCircularity shows the definition presupposes the concept being
	// defined. Structurally irrebuttable: a circular definition is void.
	SubtypeCircularity types.ChallengeSubtype = "circularity"

	// SubtypeTriviality argues the definition admits everything (or
	// nothing) and therefore defines nothing.
	SubtypeTriviality types.ChallengeSubtype = "triviality"
)

func init() {
	register(Spec{
		ID:          "formalize",
		Name:        "Formalization",
		SubjectKind: "an informal concept to be given a formal definition",
		Subtypes: []SubtypeSpec{
			{
				Subtype:        SubtypeCounterexample,
				Description:    "a minimal concrete case the definition misclassifies",
				Counterexample: true,
				AllowedRebuttals: []types.RebuttalKind{
					types.RebuttalRefutation, types.RebuttalScopeNarrowing,
				},
				Reason: "counterexample_upheld",
			},
			{
				Subtype:          SubtypeFoundationalMismatch,
				Description:      "the definition is built on the wrong primitives",
				AllowedRebuttals: []types.RebuttalKind{types.RebuttalRefutation},
				Reason:           "foundational_mismatch",
			},
			{
				Subtype:      SubtypeCircularity,
				Description:  "the definition presupposes the concept it defines",
				Irrebuttable: true,
				Reason:       "circular_definition",
			},
			{
				Subtype:          SubtypeTriviality,
				Description:      "the definition admits everything or nothing",
				AllowedRebuttals: []types.RebuttalKind{types.RebuttalRefutation},
				Reason:           "trivial_definition",
			},
		},
		AccumulatedReason: "accumulated_misclassification",
		Resolutions:       defaultResolutions(),
		TieBreaks:         defaultTieBreaks(),
		Verdicts: VerdictLabels{
			Adopted:    "formalized",
			Rejected:   "rejected",
			Unresolved: "unformalizable",
			Abandoned:  "abandoned",
		},
	})
}
