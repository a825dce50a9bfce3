// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package run orchestrates one dialectical run: versioned candidate pools,
// the derive/revise loop, selection, the obligation gate, and assembly of
// the immutable Outcome. Execution within a run is strictly sequential; a
// stage completes fully before the next begins. Independent runs share no
// mutable state — the only cross-run coupling is read-only access to
// previously finalized Outcomes through an OutcomeSource.
// Implements: prd001-derivation R6, prd002-revision, prd003-selection,
// prd004-obligations (orchestration); docs/ARCHITECTURE § Run Lifecycle.
package run

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/dialectic-engine/internal/collapse"
	"github.com/pdiddy/dialectic-engine/internal/derive"
	"github.com/pdiddy/dialectic-engine/internal/gate"
	"github.com/pdiddy/dialectic-engine/internal/protocol"
	"github.com/pdiddy/dialectic-engine/internal/revise"
	"github.com/pdiddy/dialectic-engine/pkg/types"
)

// Stage is the run's position in the shared state machine.
type Stage string

const (
	// StageDeclaring: awaiting a wholesale version submission (initial, or
	// after a revision restart).
	StageDeclaring Stage = "declaring"

	// StageRevising: the active version derived zero survivors; a diagnosed
	// revision is required before anything else.
	StageRevising Stage = "revising"

	// StageSelecting: more than one survivor; selection/collapse must pick
	// exactly one finalist.
	StageSelecting Stage = "selecting"

	// StageGating: a single finalist awaits the obligation gate. The run
	// stays here while any obligation is unsatisfied.
	StageGating Stage = "gating"

	// StageAdoptable: the gate passed; the run may be finalized.
	StageAdoptable Stage = "adoptable"

	// StageClosed: a terminal Outcome has been assembled.
	StageClosed Stage = "closed"
)

// OutcomeSource is read-only access to previously finalized Outcomes, keyed
// by subject. Lookup returns (nil, nil) when no finalized outcome exists.
// A run reads referenced outcomes to evaluate composition-class challenges;
// it never alters them.
type OutcomeSource interface {
	Lookup(ctx context.Context, subject string) (*types.Outcome, error)
}

// Version is one immutable candidate-pool version. Prior versions are
// retained, never overwritten, for audit.
type Version struct {
	// Number is 1-based.
	Number int

	// Input is the wholesale stage input this version was declared with.
	Input derive.Input

	// Derivation is the computed partition, once Derive has run.
	Derivation *types.Derivation
}

// Run is a single dialectical run. It is not safe for concurrent use;
// independent runs are independent values.
type Run struct {
	id      string
	spec    protocol.Spec
	subject string
	cfg     types.EngineConfig
	source  OutcomeSource

	stage    Stage
	versions []Version
	ctl      *revise.Controller

	selection   *types.SelectionResult
	finalistID  string
	limitations []string
	merged      *types.MergeDescriptor
	obligations []types.Obligation
	gateResult  *gate.Result

	outcome *types.Outcome
}

// New starts a run of the given protocol over a subject. An empty id is
// replaced with a generated one. source may be nil for protocols without
// composition-class subtypes.
func New(id string, spec protocol.Spec, subject string, cfg types.EngineConfig, source OutcomeSource) (*Run, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if subject == "" {
		return nil, fmt.Errorf("run requires a subject")
	}
	if id == "" {
		id = fmt.Sprintf("%s-%s-%d", spec.ID, slug(subject), time.Now().UTC().Unix())
	}
	return &Run{
		id:      id,
		spec:    spec,
		subject: subject,
		cfg:     cfg,
		source:  source,
		stage:   StageDeclaring,
		ctl:     revise.NewController(cfg),
	}, nil
}

// ID returns the run identifier.
func (r *Run) ID() string { return r.id }

// Stage returns the current stage.
func (r *Run) Stage() Stage { return r.stage }

// VersionCount returns how many pool versions have been declared.
func (r *Run) VersionCount() int { return len(r.versions) }

// Revisions returns the revision history recorded so far.
func (r *Run) Revisions() []types.RevisionRecord { return r.ctl.History() }

// Outcome returns the terminal record, or nil while the run is open.
func (r *Run) Outcome() *types.Outcome { return r.outcome }

// Selection returns the recorded selection result, or nil before one
// exists. A sole survivor records a sole_survivor marker here even though
// the selection stage itself is skipped.
func (r *Run) Selection() *types.SelectionResult { return r.selection }

// SubmitVersion declares a new candidate pool wholesale. It validates the
// input at intake — including resolution of composition-class references
// through the OutcomeSource — and replaces the active version rather than
// patching it. Legal only in the declaring stage.
func (r *Run) SubmitVersion(ctx context.Context, pool []types.Candidate, challenges []types.Challenge, judgements []types.StrengthJudgement) error {
	if r.stage != StageDeclaring {
		return fmt.Errorf("run %s: cannot declare a version in stage %s", r.id, r.stage)
	}

	in := derive.Input{
		Pool:       pool,
		Challenges: challenges,
		Judgements: judgements,
	}

	refs, err := r.resolveReferences(ctx, challenges)
	if err != nil {
		return err
	}
	in.References = refs

	if err := derive.Validate(r.spec, in); err != nil {
		return err
	}

	r.versions = append(r.versions, Version{
		Number: len(r.versions) + 1,
		Input:  in,
	})
	return nil
}

// resolveReferences looks up the finalized outcome for every subject named
// by a composition-class challenge. Unknown subjects surface later as
// intake validation errors; lookup failures are infrastructure errors.
func (r *Run) resolveReferences(ctx context.Context, challenges []types.Challenge) (map[string]*types.Outcome, error) {
	refs := make(map[string]*types.Outcome)
	for _, ch := range challenges {
		sub, ok := r.spec.SubtypeSpec(ch.Subtype)
		if !ok || !sub.Composition || ch.Reference == "" {
			continue
		}
		if _, done := refs[ch.Reference]; done {
			continue
		}
		if r.source == nil {
			continue
		}
		out, err := r.source.Lookup(ctx, ch.Reference)
		if err != nil {
			return nil, fmt.Errorf("resolving reference %q: %w", ch.Reference, err)
		}
		if out != nil {
			refs[ch.Reference] = out
		}
	}
	return refs, nil
}

// Derive computes the partition for the active version and advances the
// state machine: zero survivors moves to revising, a sole survivor skips
// selection and moves straight to gating, multiple survivors move to
// selecting.
func (r *Run) Derive(ctx context.Context) (types.Derivation, error) {
	if r.stage != StageDeclaring {
		return types.Derivation{}, fmt.Errorf("run %s: cannot derive in stage %s", r.id, r.stage)
	}
	if len(r.versions) == 0 {
		return types.Derivation{}, fmt.Errorf("run %s: no version declared", r.id)
	}

	active := &r.versions[len(r.versions)-1]
	d, err := derive.Derive(r.spec, active.Input)
	if err != nil {
		return types.Derivation{}, err
	}
	active.Derivation = &d

	switch {
	case r.ctl.Check(d) == revise.StateTriggered:
		r.stage = StageRevising
	case len(d.Survivors) == 1:
		sole := d.Survivors[0]
		r.finalistID = sole.CandidateID
		r.limitations = append([]string(nil), sole.Limitations...)
		r.selection = &types.SelectionResult{
			WinnerID:  sole.CandidateID,
			Criterion: types.CriterionSoleSurvivor,
			Rationale: "sole survivor; selection not required",
		}
		r.stage = StageGating
	default:
		r.stage = StageSelecting
	}

	return d, nil
}

// Revise records a diagnosed revision for a zero-survivor derivation. A
// restart resolution returns the run to declaring for a wholesale new
// version; close_unresolved — diagnosed or forced by the trigger bound —
// assembles the terminal unresolved outcome immediately.
func (r *Run) Revise(diagnosis types.Diagnosis, notes string) (types.RevisionRecord, error) {
	if r.stage != StageRevising {
		return types.RevisionRecord{}, fmt.Errorf("run %s: no revision pending in stage %s", r.id, r.stage)
	}

	rec, exhausted, err := r.ctl.Trigger(r.spec, diagnosis, notes)
	if err != nil {
		return types.RevisionRecord{}, err
	}

	if exhausted || rec.Resolution == types.ResolutionCloseUnresolved {
		r.close(types.RoleUnresolved, nil, rec.Notes)
		return rec, nil
	}

	r.stage = StageDeclaring
	return rec, nil
}

// Select collapses a multi-survivor derivation to one finalist. Legal in
// the selecting stage, and again in the gating stage to revise the finalist
// while the gate holds the run open.
func (r *Run) Select(in collapse.Input) (types.SelectionResult, error) {
	if r.stage != StageSelecting && r.stage != StageGating {
		return types.SelectionResult{}, fmt.Errorf("run %s: cannot select in stage %s", r.id, r.stage)
	}
	active := r.versions[len(r.versions)-1]
	if active.Derivation == nil || len(active.Derivation.Survivors) < 2 {
		return types.SelectionResult{}, fmt.Errorf("run %s: selection requires multiple survivors", r.id)
	}

	in.Survivors = active.Derivation.Survivors
	in.Pool = active.Input.Pool

	result, err := collapse.Resolve(r.spec, in)
	if err != nil {
		return types.SelectionResult{}, err
	}

	r.selection = &result
	r.finalistID = result.WinnerID
	r.merged = result.Merge
	r.limitations = winnerLimitations(result, active.Derivation.Survivors)
	r.stage = StageGating
	return result, nil
}

// SubmitObligations evaluates the gate over the finalist. A failed gate
// leaves the run open in the gating stage — adoption stays blocked until
// every obligation is satisfied.
func (r *Run) SubmitObligations(obligations []types.Obligation) (gate.Result, error) {
	if r.stage != StageGating {
		return gate.Result{}, fmt.Errorf("run %s: no finalist awaiting the gate in stage %s", r.id, r.stage)
	}

	res, err := gate.Evaluate(obligations)
	if err != nil {
		return gate.Result{}, err
	}

	r.obligations = append([]types.Obligation(nil), obligations...)
	r.gateResult = &res
	if res.Passed {
		r.stage = StageAdoptable
	}
	return res, nil
}

// Finalize assembles the adopted Outcome. Legal only after the gate passed.
func (r *Run) Finalize() (*types.Outcome, error) {
	if r.stage != StageAdoptable {
		return nil, fmt.Errorf("run %s: cannot finalize in stage %s", r.id, r.stage)
	}
	winner := r.winnerCandidate()
	if winner == nil {
		return nil, fmt.Errorf("run %s: finalist %s not found", r.id, r.finalistID)
	}
	r.close(types.RoleAdopted, winner, "")
	return r.outcome, nil
}

// CloseRejected closes an open run against all candidates on explicit
// evaluator judgement. Notes are mandatory.
func (r *Run) CloseRejected(notes string) (*types.Outcome, error) {
	if r.stage == StageClosed {
		return nil, fmt.Errorf("run %s: already closed", r.id)
	}
	if notes == "" {
		return nil, fmt.Errorf("run %s: rejection requires argued notes", r.id)
	}
	r.close(types.RoleRejected, nil, notes)
	return r.outcome, nil
}

// Abandon marks an open run as abandoned. The audit trail — versions,
// revisions, partial selections — is preserved, never discarded.
func (r *Run) Abandon(notes string) (*types.Outcome, error) {
	if r.stage == StageClosed {
		return nil, fmt.Errorf("run %s: already closed", r.id)
	}
	if notes == "" {
		return nil, fmt.Errorf("run %s: abandonment requires a reason", r.id)
	}
	r.close(types.RoleAbandoned, nil, notes)
	return r.outcome, nil
}

// close assembles the immutable terminal record and seals the run.
func (r *Run) close(role types.VerdictRole, winner *types.Candidate, notes string) {
	out := &types.Outcome{
		RunID:       r.id,
		Protocol:    r.spec.ID,
		Subject:     r.subject,
		Verdict:     r.spec.Verdicts.ForRole(role),
		Role:        role,
		Winner:      winner,
		Merge:       r.merged,
		Selection:   r.selection,
		Obligations: append([]types.Obligation(nil), r.obligations...),
		Revisions:   r.ctl.History(),
		Versions:    len(r.versions),
		Notes:       notes,
		FinalizedAt: time.Now().UTC(),
	}
	if role == types.RoleAdopted {
		out.Limitations = append([]string(nil), r.limitations...)
	}
	r.outcome = out
	r.stage = StageClosed
}

// winnerCandidate resolves the finalist id against the active pool or the
// accepted merge.
func (r *Run) winnerCandidate() *types.Candidate {
	if r.merged != nil && r.merged.Candidate.ID == r.finalistID {
		c := r.merged.Candidate
		return &c
	}
	active := r.versions[len(r.versions)-1]
	for _, c := range active.Input.Pool {
		if c.ID == r.finalistID {
			cand := c
			return &cand
		}
	}
	return nil
}

// winnerLimitations carries the acknowledged limitations forward: the
// winning survivor's own, or — for a merge — the union of the limitations
// conceded by every survivor it replaces, deduplicated in input order.
func winnerLimitations(result types.SelectionResult, survivors []types.SurvivorRecord) []string {
	if result.Merge == nil {
		for _, s := range survivors {
			if s.CandidateID == result.WinnerID {
				return append([]string(nil), s.Limitations...)
			}
		}
		return nil
	}

	seen := make(map[string]bool)
	var union []string
	for _, s := range survivors {
		for _, lim := range s.Limitations {
			if !seen[lim] {
				seen[lim] = true
				union = append(union, lim)
			}
		}
	}
	return union
}

// slug lowercases a subject and replaces whitespace for use in run ids.
func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "-")
}
