// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package revise

import (
	"strings"
	"testing"

	"github.com/pdiddy/dialectic-engine/internal/protocol"
	"github.com/pdiddy/dialectic-engine/pkg/types"
)

func spec(t *testing.T) protocol.Spec {
	t.Helper()
	s, ok := protocol.Get("formalize")
	if !ok {
		t.Fatal("formalize protocol not registered")
	}
	return s
}

func TestCheck(t *testing.T) {
	c := NewController(types.EngineConfig{})

	withSurvivor := types.Derivation{Survivors: []types.SurvivorRecord{{CandidateID: "C1"}}}
	if got := c.Check(withSurvivor); got != StateProceed {
		t.Errorf("Check(survivors) = %s, want %s", got, StateProceed)
	}
	if got := c.Check(types.Derivation{}); got != StateTriggered {
		t.Errorf("Check(empty) = %s, want %s", got, StateTriggered)
	}
}

func TestTriggerRecordsDiagnosis(t *testing.T) {
	c := NewController(types.EngineConfig{MaxRevisions: 3})

	rec, exhausted, err := c.Trigger(spec(t), types.DiagnosisConstraintsTooStrong,
		"the minimality requirement excludes every plausible definition")
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	if exhausted {
		t.Fatal("first trigger within the bound reported exhausted")
	}
	if rec.Revision != 1 {
		t.Errorf("revision = %d, want 1", rec.Revision)
	}
	if rec.Resolution != types.ResolutionRestartConstraints {
		t.Errorf("resolution = %s, want %s", rec.Resolution, types.ResolutionRestartConstraints)
	}
	if c.Count() != 1 {
		t.Errorf("count = %d, want 1", c.Count())
	}
}

func TestTriggerRequiresNotes(t *testing.T) {
	c := NewController(types.EngineConfig{})
	if _, _, err := c.Trigger(spec(t), types.DiagnosisCandidatesTooWeak, ""); err == nil {
		t.Fatal("Trigger accepted an unargued diagnosis")
	}
	if c.Count() != 0 {
		t.Errorf("a rejected trigger must not be recorded, count = %d", c.Count())
	}
}

func TestTriggerDiagnosisResolutions(t *testing.T) {
	tests := []struct {
		diagnosis  types.Diagnosis
		resolution types.ResolutionAction
	}{
		{types.DiagnosisConstraintsTooStrong, types.ResolutionRestartConstraints},
		{types.DiagnosisCandidatesTooWeak, types.ResolutionRestartCandidates},
		{types.DiagnosisSubjectNotViable, types.ResolutionCloseUnresolved},
	}
	for _, tc := range tests {
		c := NewController(types.EngineConfig{})
		rec, _, err := c.Trigger(spec(t), tc.diagnosis, "argued")
		if err != nil {
			t.Fatalf("Trigger(%s): %v", tc.diagnosis, err)
		}
		if rec.Resolution != tc.resolution {
			t.Errorf("Trigger(%s) resolution = %s, want %s", tc.diagnosis, rec.Resolution, tc.resolution)
		}
	}
}

func TestTriggerBoundForcesUnresolved(t *testing.T) {
	c := NewController(types.EngineConfig{MaxRevisions: 2})

	for i := 1; i <= 2; i++ {
		rec, exhausted, err := c.Trigger(spec(t), types.DiagnosisCandidatesTooWeak, "pool too thin")
		if err != nil {
			t.Fatalf("Trigger %d: %v", i, err)
		}
		if exhausted {
			t.Fatalf("trigger %d within bound 2 reported exhausted", i)
		}
		if rec.Revision != i {
			t.Errorf("trigger %d revision = %d", i, rec.Revision)
		}
	}

	rec, exhausted, err := c.Trigger(spec(t), types.DiagnosisCandidatesTooWeak, "pool still too thin")
	if err != nil {
		t.Fatalf("Trigger 3: %v", err)
	}
	if !exhausted {
		t.Fatal("third trigger over bound 2 must exhaust the run")
	}
	if rec.Resolution != types.ResolutionCloseUnresolved {
		t.Errorf("forced resolution = %s, want %s", rec.Resolution, types.ResolutionCloseUnresolved)
	}
	if !strings.Contains(rec.Notes, "revision bound 2 exceeded") {
		t.Errorf("notes = %q, want forced-unresolved annotation", rec.Notes)
	}
}

func TestDefaultBound(t *testing.T) {
	c := NewController(types.EngineConfig{})
	exhausted := false
	var err error
	for i := 0; i < 4; i++ {
		_, exhausted, err = c.Trigger(spec(t), types.DiagnosisCandidatesTooWeak, "pool too thin")
		if err != nil {
			t.Fatalf("Trigger %d: %v", i+1, err)
		}
	}
	if !exhausted {
		t.Error("fourth trigger must exceed the default bound of 3")
	}
	if c.Count() != 4 {
		t.Errorf("count = %d, want 4", c.Count())
	}
}

func TestHistoryIsACopy(t *testing.T) {
	c := NewController(types.EngineConfig{})
	if _, _, err := c.Trigger(spec(t), types.DiagnosisSubjectNotViable, "the question dissolves"); err != nil {
		t.Fatalf("Trigger: %v", err)
	}

	h := c.History()
	h[0].Notes = "mutated"
	if c.History()[0].Notes == "mutated" {
		t.Error("History must return a copy; prior records are never overwritten")
	}
}
