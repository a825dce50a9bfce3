// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package protocol

import "github.com/pdiddy/dialectic-engine/pkg/types"

// Emergence-classification protocol: candidate classifications of a
// system-level phenomenon as emergent or reducible. Its composition_conflict
// subtype evaluates a candidate against a previously adopted Outcome, read
// through the registry; such challenges must name the referenced subject.
const (
	// SubtypeReducibility derives the phenomenon from component behavior.
	SubtypeReducibility types.ChallengeSubtype = "reducibility"

	// SubtypeCompositionConflict shows the classification contradicts a
	// previously adopted outcome for a constituent subject.
	// Composition-class: must reference that outcome's subject.
	SubtypeCompositionConflict types.ChallengeSubtype = "composition_conflict"

	// SubtypeScaleArtifact argues the phenomenon is an artifact of the
	// observation scale, not a property of the system.
	SubtypeScaleArtifact types.ChallengeSubtype = "scale_artifact"

	// SubtypeDefinitionDrift shows the classification holds only by
	// shifting the phenomenon's definition mid-argument. Structurally
	// irrebuttable.
	SubtypeDefinitionDrift types.ChallengeSubtype = "definition_drift"
)

func init() {
	register(Spec{
		ID:          "emergence",
		Name:        "Emergence classification",
		SubjectKind: "a system-level phenomenon to be classified",
		Subtypes: []SubtypeSpec{
			{
				Subtype:          SubtypeReducibility,
				Description:      "the phenomenon follows from component behavior",
				AllowedRebuttals: []types.RebuttalKind{types.RebuttalRefutation},
				Reason:           "reduced_to_parts",
			},
			{
				Subtype:     SubtypeCompositionConflict,
				Description: "the classification contradicts an adopted outcome for a constituent",
				Composition: true,
				AllowedRebuttals: []types.RebuttalKind{
					types.RebuttalRefutation, types.RebuttalScopeNarrowing,
				},
				Reason: "composition_conflict",
			},
			{
				Subtype:     SubtypeScaleArtifact,
				Description: "the phenomenon is an artifact of observation scale",
				AllowedRebuttals: []types.RebuttalKind{
					types.RebuttalRefutation, types.RebuttalScopeNarrowing,
				},
				Reason: "scale_artifact",
			},
			{
				Subtype:      SubtypeDefinitionDrift,
				Description:  "the classification shifts definitions mid-argument",
				Irrebuttable: true,
				Reason:       "definition_drift",
			},
		},
		AccumulatedReason: "accumulated_reducibility",
		Resolutions:       defaultResolutions(),
		TieBreaks:         defaultTieBreaks(),
		Verdicts: VerdictLabels{
			Adopted:    "classified_emergent",
			Rejected:   "classified_reducible",
			Unresolved: "unclassifiable",
			Abandoned:  "abandoned",
		},
	})
}
