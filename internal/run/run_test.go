// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package run

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dialectic-engine/internal/collapse"
	"github.com/pdiddy/dialectic-engine/internal/protocol"
	"github.com/pdiddy/dialectic-engine/pkg/types"
)

func mustSpec(t *testing.T, id string) protocol.Spec {
	t.Helper()
	spec, ok := protocol.Get(id)
	require.True(t, ok, "protocol %s not registered", id)
	return spec
}

func newRun(t *testing.T, protocolID string) *Run {
	t.Helper()
	r, err := New("", mustSpec(t, protocolID), "test subject", types.EngineConfig{MaxRevisions: 2}, nil)
	require.NoError(t, err)
	return r
}

func obligationsPass() []types.Obligation {
	return []types.Obligation{
		{Property: "soundness", Argument: "checked against every recorded case", Satisfied: true},
	}
}

func TestNewRun(t *testing.T) {
	r := newRun(t, "formalize")
	assert.Equal(t, StageDeclaring, r.Stage())
	assert.NotEmpty(t, r.ID())
	assert.Nil(t, r.Outcome())

	_, err := New("", mustSpec(t, "formalize"), "", types.EngineConfig{}, nil)
	assert.Error(t, err, "a run requires a subject")
}

func TestSoleSurvivorAdoption(t *testing.T) {
	r := newRun(t, "formalize")
	ctx := context.Background()

	pool := []types.Candidate{{ID: "C1", Statement: "recursive definition over cases"}}
	require.NoError(t, r.SubmitVersion(ctx, pool, nil, nil))

	d, err := r.Derive(ctx)
	require.NoError(t, err)
	require.Len(t, d.Survivors, 1)
	assert.Equal(t, StageGating, r.Stage(), "a sole survivor skips selection")

	sel := r.Selection()
	require.NotNil(t, sel)
	assert.Equal(t, types.CriterionSoleSurvivor, sel.Criterion)
	assert.Equal(t, "C1", sel.WinnerID)

	res, err := r.SubmitObligations(obligationsPass())
	require.NoError(t, err)
	require.True(t, res.Passed)
	assert.Equal(t, StageAdoptable, r.Stage())

	out, err := r.Finalize()
	require.NoError(t, err)
	assert.Equal(t, StageClosed, r.Stage())
	assert.Equal(t, types.RoleAdopted, out.Role)
	assert.Equal(t, types.Verdict("formalized"), out.Verdict)
	require.NotNil(t, out.Winner)
	assert.Equal(t, "C1", out.Winner.ID)
	assert.Equal(t, 1, out.Versions)
	assert.Empty(t, out.Revisions)
}

func TestAdoptedOutcomeCarriesLimitations(t *testing.T) {
	r := newRun(t, "formalize")
	ctx := context.Background()

	pool := []types.Candidate{{ID: "C1", Statement: "definition over finite cases"}}
	challenges := []types.Challenge{{
		ID: "CH1", Subtype: protocol.SubtypeCounterexample, TargetID: "C1",
		Argument: "case Z is misclassified", Minimal: true,
		Rebuttal: &types.Rebuttal{
			Kind: types.RebuttalScopeNarrowing, Argument: "conceded",
			Valid: true, Limitation: "excludes case Z",
		},
	}}
	require.NoError(t, r.SubmitVersion(ctx, pool, challenges, nil))
	_, err := r.Derive(ctx)
	require.NoError(t, err)

	_, err = r.SubmitObligations(obligationsPass())
	require.NoError(t, err)
	out, err := r.Finalize()
	require.NoError(t, err)
	assert.Equal(t, []string{"excludes case Z"}, out.Limitations)
}

func TestRevisionLoopThenAdoption(t *testing.T) {
	r := newRun(t, "formalize")
	ctx := context.Background()

	// Version 1: the sole candidate is circular, so nothing survives.
	pool := []types.Candidate{{ID: "C1", Statement: "defines truth via truth"}}
	challenges := []types.Challenge{{
		ID: "CH1", Subtype: protocol.SubtypeCircularity, TargetID: "C1",
		Argument: "the definiens contains the definiendum",
	}}
	require.NoError(t, r.SubmitVersion(ctx, pool, challenges, nil))

	d, err := r.Derive(ctx)
	require.NoError(t, err)
	require.Empty(t, d.Survivors)
	assert.Equal(t, StageRevising, r.Stage())

	// Every non-revision operation is illegal while the diagnosis is pending.
	assert.Error(t, r.SubmitVersion(ctx, pool, nil, nil))
	_, err = r.Derive(ctx)
	assert.Error(t, err)

	rec, err := r.Revise(types.DiagnosisCandidatesTooWeak, "the pool held a single circular candidate")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Revision)
	assert.Equal(t, types.ResolutionRestartCandidates, rec.Resolution)
	assert.Equal(t, StageDeclaring, r.Stage())

	// Version 2 survives and adopts.
	pool2 := []types.Candidate{{ID: "C2", Statement: "definition grounded in primitive cases"}}
	require.NoError(t, r.SubmitVersion(ctx, pool2, nil, nil))
	_, err = r.Derive(ctx)
	require.NoError(t, err)
	_, err = r.SubmitObligations(obligationsPass())
	require.NoError(t, err)

	out, err := r.Finalize()
	require.NoError(t, err)
	assert.Equal(t, 2, out.Versions)
	require.Len(t, out.Revisions, 1)
	assert.Equal(t, types.DiagnosisCandidatesTooWeak, out.Revisions[0].Diagnosis)
}

func TestRevisionBoundClosesUnresolved(t *testing.T) {
	r := newRun(t, "formalize")
	ctx := context.Background()

	failingVersion := func() {
		pool := []types.Candidate{{ID: "C1", Statement: "circular again"}}
		challenges := []types.Challenge{{
			ID: "CH1", Subtype: protocol.SubtypeCircularity, TargetID: "C1",
			Argument: "circular",
		}}
		require.NoError(t, r.SubmitVersion(ctx, pool, challenges, nil))
		_, err := r.Derive(ctx)
		require.NoError(t, err)
	}

	// Bound is 2: the first two triggers restart, the third closes.
	for i := 0; i < 2; i++ {
		failingVersion()
		_, err := r.Revise(types.DiagnosisCandidatesTooWeak, "still circular")
		require.NoError(t, err)
		require.Equal(t, StageDeclaring, r.Stage())
	}

	failingVersion()
	rec, err := r.Revise(types.DiagnosisCandidatesTooWeak, "still circular")
	require.NoError(t, err)
	assert.Equal(t, types.ResolutionCloseUnresolved, rec.Resolution)
	assert.Equal(t, StageClosed, r.Stage())

	out := r.Outcome()
	require.NotNil(t, out)
	assert.Equal(t, types.RoleUnresolved, out.Role)
	assert.Equal(t, types.Verdict("unformalizable"), out.Verdict)
	assert.Len(t, out.Revisions, 3)
	assert.Nil(t, out.Winner)
}

func TestSubjectNotViableClosesImmediately(t *testing.T) {
	r := newRun(t, "formalize")
	ctx := context.Background()

	pool := []types.Candidate{{ID: "C1", Statement: "circular"}}
	challenges := []types.Challenge{{
		ID: "CH1", Subtype: protocol.SubtypeCircularity, TargetID: "C1", Argument: "circular",
	}}
	require.NoError(t, r.SubmitVersion(ctx, pool, challenges, nil))
	_, err := r.Derive(ctx)
	require.NoError(t, err)

	rec, err := r.Revise(types.DiagnosisSubjectNotViable, "the concept dissolves under formalization")
	require.NoError(t, err)
	assert.Equal(t, types.ResolutionCloseUnresolved, rec.Resolution)
	assert.Equal(t, StageClosed, r.Stage())
	assert.Equal(t, types.RoleUnresolved, r.Outcome().Role)
}

func TestMultiSurvivorSelection(t *testing.T) {
	r := newRun(t, "decompose")
	ctx := context.Background()

	pool := []types.Candidate{
		{ID: "D1", Statement: "split by lifecycle", Claims: []string{"covers ingest"}},
		{ID: "D2", Statement: "split by ownership", Claims: []string{"covers ingest"}},
	}
	require.NoError(t, r.SubmitVersion(ctx, pool, nil, nil))

	d, err := r.Derive(ctx)
	require.NoError(t, err)
	require.Len(t, d.Survivors, 2)
	assert.Equal(t, StageSelecting, r.Stage())

	// The gate refuses a run with no finalist yet.
	_, err = r.SubmitObligations(obligationsPass())
	assert.Error(t, err)

	sel, err := r.Select(collapse.Input{
		Evaluator: &collapse.EvaluatorChoice{
			CandidateID: "D2",
			Rationale:   "ownership boundaries match the team structure",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "D2", sel.WinnerID)
	assert.Equal(t, StageGating, r.Stage())

	_, err = r.SubmitObligations(obligationsPass())
	require.NoError(t, err)
	out, err := r.Finalize()
	require.NoError(t, err)
	assert.Equal(t, "D2", out.Winner.ID)
	require.NotNil(t, out.Selection)
	assert.Equal(t, types.CriterionEvaluator, out.Selection.Criterion)
	require.Len(t, out.Selection.Rejected, 1)
	assert.Equal(t, "D1", out.Selection.Rejected[0].CandidateID)
}

func TestMergeWinnerAndLimitationUnion(t *testing.T) {
	r := newRun(t, "decompose")
	ctx := context.Background()

	pool := []types.Candidate{
		{ID: "D1", Statement: "split by lifecycle", Claims: []string{"covers ingest"}},
		{ID: "D2", Statement: "split by ownership", Claims: []string{"isolates state"}},
	}
	challenges := []types.Challenge{
		{
			ID: "CH1", Subtype: protocol.SubtypeGap, TargetID: "D1",
			Argument: "batch ingest is uncovered",
			Rebuttal: &types.Rebuttal{
				Kind: types.RebuttalScopeNarrowing, Argument: "conceded",
				Valid: true, Limitation: "excludes batch ingest",
			},
		},
		{
			ID: "CH2", Subtype: protocol.SubtypeOverlap, TargetID: "D2",
			Argument: "cache ownership is shared",
			Rebuttal: &types.Rebuttal{
				Kind: types.RebuttalScopeNarrowing, Argument: "conceded",
				Valid: true, Limitation: "shared cache stays ambiguous",
			},
		},
	}
	require.NoError(t, r.SubmitVersion(ctx, pool, challenges, nil))
	_, err := r.Derive(ctx)
	require.NoError(t, err)

	_, err = r.Select(collapse.Input{
		Merge: &collapse.MergeProposal{
			Candidate: types.Candidate{
				ID:        "D3",
				Statement: "ownership split with a lifecycle facade",
				Claims:    []string{"covers ingest", "isolates state"},
			},
			Rationale: "the facade restores lifecycle coverage over the ownership split",
		},
	})
	require.NoError(t, err)

	_, err = r.SubmitObligations(obligationsPass())
	require.NoError(t, err)
	out, err := r.Finalize()
	require.NoError(t, err)

	assert.Equal(t, "D3", out.Winner.ID)
	require.NotNil(t, out.Merge)
	assert.ElementsMatch(t, []string{"D1", "D2"}, out.Merge.Replaces)
	assert.Equal(t, []string{"excludes batch ingest", "shared cache stays ambiguous"}, out.Limitations,
		"a merge inherits the union of the replaced survivors' limitations")
}

func TestGateBlocksUntilSatisfied(t *testing.T) {
	r := newRun(t, "formalize")
	ctx := context.Background()

	require.NoError(t, r.SubmitVersion(ctx, []types.Candidate{{ID: "C1", Statement: "grounded definition"}}, nil, nil))
	_, err := r.Derive(ctx)
	require.NoError(t, err)

	res, err := r.SubmitObligations([]types.Obligation{
		{Property: "soundness", Argument: "argued", Satisfied: true},
		{Property: "coverage", Argument: "argued", Satisfied: false, Blocker: "edge cases pending"},
	})
	require.NoError(t, err)
	assert.False(t, res.Passed)
	assert.Equal(t, StageGating, r.Stage(), "a failed gate keeps the run open")

	_, err = r.Finalize()
	assert.Error(t, err, "finalize is illegal while the gate blocks")

	// Resubmission with the blocker cleared passes.
	res, err = r.SubmitObligations([]types.Obligation{
		{Property: "soundness", Argument: "argued", Satisfied: true},
		{Property: "coverage", Argument: "edge cases now enumerated", Satisfied: true},
	})
	require.NoError(t, err)
	assert.True(t, res.Passed)

	out, err := r.Finalize()
	require.NoError(t, err)
	assert.Equal(t, types.RoleAdopted, out.Role)
}

func TestCloseRejectedAndAbandon(t *testing.T) {
	ctx := context.Background()

	r := newRun(t, "formalize")
	require.NoError(t, r.SubmitVersion(ctx, []types.Candidate{{ID: "C1", Statement: "s"}}, nil, nil))
	_, err := r.Derive(ctx)
	require.NoError(t, err)

	_, err = r.CloseRejected("")
	assert.Error(t, err, "rejection requires notes")

	out, err := r.CloseRejected("the survivor misses the intuitive core of the concept")
	require.NoError(t, err)
	assert.Equal(t, types.RoleRejected, out.Role)
	assert.Equal(t, types.Verdict("rejected"), out.Verdict)
	assert.Equal(t, 1, out.Versions, "the audit trail survives an explicit rejection")

	_, err = r.Abandon("changed priorities")
	assert.Error(t, err, "a closed run cannot be abandoned")

	r2 := newRun(t, "formalize")
	out2, err := r2.Abandon("superseded by a larger modelling effort")
	require.NoError(t, err)
	assert.Equal(t, types.RoleAbandoned, out2.Role)
	assert.Equal(t, types.Verdict("abandoned"), out2.Verdict)
}

// fixedSource serves a canned outcome for one subject.
type fixedSource struct {
	subject string
	outcome *types.Outcome
}

func (s *fixedSource) Lookup(ctx context.Context, subject string) (*types.Outcome, error) {
	if subject == s.subject {
		return s.outcome, nil
	}
	return nil, nil
}

func TestCompositionReferenceResolution(t *testing.T) {
	ctx := context.Background()
	source := &fixedSource{
		subject: "flocking-parts",
		outcome: &types.Outcome{
			RunID: "emergence-flocking-parts-1", Subject: "flocking-parts",
			Role: types.RoleAdopted,
		},
	}

	r, err := New("", mustSpec(t, "emergence"), "flocking", types.EngineConfig{}, source)
	require.NoError(t, err)

	pool := []types.Candidate{{ID: "E1", Statement: "flocking is emergent coordination"}}
	challenges := []types.Challenge{{
		ID: "CH1", Subtype: protocol.SubtypeCompositionConflict, TargetID: "E1",
		Argument:  "contradicts the adopted per-bird classification",
		Reference: "flocking-parts",
		Rebuttal: &types.Rebuttal{
			Kind:     types.RebuttalRefutation,
			Argument: "the per-bird classification concerns a different scale",
			Valid:    true,
		},
	}}
	require.NoError(t, r.SubmitVersion(ctx, pool, challenges, nil))

	d, err := r.Derive(ctx)
	require.NoError(t, err)
	assert.Len(t, d.Survivors, 1)

	// The same input with no resolvable reference fails at intake.
	r2, err := New("", mustSpec(t, "emergence"), "flocking", types.EngineConfig{}, nil)
	require.NoError(t, err)
	err = r2.SubmitVersion(ctx, pool, challenges, nil)
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, types.CodeUnknownReference, verr.Code)
}

func TestPriorVersionsRetained(t *testing.T) {
	r := newRun(t, "formalize")
	ctx := context.Background()

	pool := []types.Candidate{{ID: "C1", Statement: "circular"}}
	challenges := []types.Challenge{{
		ID: "CH1", Subtype: protocol.SubtypeCircularity, TargetID: "C1", Argument: "circular",
	}}
	require.NoError(t, r.SubmitVersion(ctx, pool, challenges, nil))
	_, err := r.Derive(ctx)
	require.NoError(t, err)
	_, err = r.Revise(types.DiagnosisCandidatesTooWeak, "restart")
	require.NoError(t, err)

	require.NoError(t, r.SubmitVersion(ctx, []types.Candidate{{ID: "C2", Statement: "grounded"}}, nil, nil))
	assert.Equal(t, 2, r.VersionCount(), "prior versions are retained, never overwritten")
}
