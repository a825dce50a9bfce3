// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package revise is the zero-survivor state machine: it checks every
// derivation, records diagnosed revision triggers, and enforces the trigger
// bound that guarantees termination.
// Implements: prd002-revision (R1-R3); docs/ARCHITECTURE § Revision.
package revise

import (
	"fmt"

	"github.com/pdiddy/dialectic-engine/internal/protocol"
	"github.com/pdiddy/dialectic-engine/pkg/types"
)

// State is the controller's position after checking a derivation.
type State string

const (
	// StateProceed: survivors exist; control passes to selection (or the
	// gate, for a sole survivor).
	StateProceed State = "proceed"

	// StateTriggered: zero survivors; a diagnosis must be supplied before
	// the run can continue.
	StateTriggered State = "triggered"
)

// Controller tracks revision triggers for one run. Zero survivors is not
// outright failure: the run stays recoverable until the trigger bound is
// exceeded or an evaluator deliberately closes it.
type Controller struct {
	bound   int
	history []types.RevisionRecord
}

// NewController builds a controller with the configured trigger bound.
func NewController(cfg types.EngineConfig) *Controller {
	return &Controller{bound: cfg.RevisionBound()}
}

// Check classifies a derivation: proceed on any survivor, triggered on none.
func (c *Controller) Check(d types.Derivation) State {
	if len(d.Survivors) > 0 {
		return StateProceed
	}
	return StateTriggered
}

// Trigger records a diagnosed revision and returns the record plus whether
// the bound is now exhausted. The revision counter increments on every
// trigger; once the bound is exceeded the resolution is forced to
// close_unresolved regardless of diagnosis, which guarantees every run
// reaches a terminal outcome. Notes are mandatory: the diagnosis is an
// evaluator judgement call and must be argued, not inferred.
func (c *Controller) Trigger(spec protocol.Spec, diagnosis types.Diagnosis, notes string) (types.RevisionRecord, bool, error) {
	if notes == "" {
		return types.RevisionRecord{}, false, fmt.Errorf("revision diagnosis requires notes")
	}
	resolution, ok := spec.Resolution(diagnosis)
	if !ok {
		return types.RevisionRecord{}, false, fmt.Errorf("protocol %s has no resolution for diagnosis %q", spec.ID, diagnosis)
	}

	rec := types.RevisionRecord{
		Triggered:  true,
		Diagnosis:  diagnosis,
		Resolution: resolution,
		Notes:      notes,
		Revision:   len(c.history) + 1,
	}

	exhausted := rec.Revision > c.bound
	if exhausted {
		rec.Resolution = types.ResolutionCloseUnresolved
		rec.Notes = fmt.Sprintf("%s [revision bound %d exceeded; forced unresolved]", notes, c.bound)
	}

	c.history = append(c.history, rec)
	return rec, exhausted, nil
}

// Count returns the number of triggers recorded so far.
func (c *Controller) Count() int {
	return len(c.history)
}

// History returns the recorded triggers in order. The returned slice is a
// copy; prior records are never overwritten.
func (c *Controller) History() []types.RevisionRecord {
	out := make([]types.RevisionRecord, len(c.history))
	copy(out, c.history)
	return out
}
