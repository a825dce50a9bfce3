// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package runfile

import (
	"context"
	"fmt"

	"github.com/pdiddy/dialectic-engine/internal/collapse"
	"github.com/pdiddy/dialectic-engine/internal/gate"
	"github.com/pdiddy/dialectic-engine/internal/protocol"
	"github.com/pdiddy/dialectic-engine/internal/run"
	"github.com/pdiddy/dialectic-engine/pkg/types"
)

// Trace is the audited record of executing one run document: every
// derivation, every revision trigger, the selection, the gate verdict, and
// the terminal outcome when one was reached. Outcome is nil exactly when
// the run remains open at the gate.
type Trace struct {
	RunID       string                 `json:"run_id" yaml:"run_id"`
	Derivations []types.Derivation     `json:"derivations" yaml:"derivations"`
	Revisions   []types.RevisionRecord `json:"revisions,omitempty" yaml:"revisions,omitempty"`
	Selection   *types.SelectionResult `json:"selection,omitempty" yaml:"selection,omitempty"`
	Gate        *gate.Result           `json:"gate,omitempty" yaml:"gate,omitempty"`
	Outcome     *types.Outcome         `json:"outcome,omitempty" yaml:"outcome,omitempty"`
}

// Execute drives a run document through the engine. Versions are consumed
// strictly in order; a version after the first is reachable only through a
// revision restart, and a version left unconsumed is an error — the
// document promised input the run never asked for.
func Execute(ctx context.Context, doc *Document, spec protocol.Spec, cfg types.EngineConfig, source run.OutcomeSource) (*Trace, error) {
	if doc.Protocol != spec.ID {
		return nil, fmt.Errorf("document protocol %q does not match %q", doc.Protocol, spec.ID)
	}

	r, err := run.New(doc.RunID, spec, doc.Subject, cfg, source)
	if err != nil {
		return nil, err
	}
	trace := &Trace{RunID: r.ID()}

	consumed := 0
	for _, v := range doc.Versions {
		if r.Stage() != run.StageDeclaring {
			break
		}
		consumed++

		if err := r.SubmitVersion(ctx, v.Candidates, v.Challenges, v.Judgements); err != nil {
			return trace, err
		}
		d, err := r.Derive(ctx)
		if err != nil {
			return trace, err
		}
		trace.Derivations = append(trace.Derivations, d)

		if r.Stage() != run.StageRevising {
			continue
		}
		if v.Revision == nil {
			return trace, fmt.Errorf("version %d eliminated every candidate and authored no revision", consumed)
		}
		if _, err := r.Revise(v.Revision.Diagnosis, v.Revision.Notes); err != nil {
			return trace, err
		}
	}
	trace.Revisions = r.Revisions()

	if consumed < len(doc.Versions) {
		return trace, fmt.Errorf("version %d is unreachable: the run left the declaring stage at version %d",
			consumed+1, consumed)
	}

	if r.Stage() == run.StageDeclaring {
		return trace, fmt.Errorf("revision %d restarts upstream but the document declares no further version",
			len(trace.Revisions))
	}

	if doc.Close != nil && r.Stage() != run.StageClosed {
		trace.Outcome, err = applyClose(r, doc.Close)
		return trace, err
	}

	if r.Stage() == run.StageSelecting {
		if doc.Selection == nil {
			return trace, fmt.Errorf("multiple survivors but the document supplies no selection input")
		}
		sel, err := r.Select(collapse.Input{
			Merge:         doc.Selection.Merge,
			BenefitScores: doc.Selection.BenefitScores,
			Evaluator:     doc.Selection.Evaluator,
		})
		if err != nil {
			return trace, err
		}
		trace.Selection = &sel
	}

	if r.Stage() == run.StageGating {
		if trace.Selection == nil {
			trace.Selection = r.Selection()
		}
		if len(doc.Obligations) == 0 {
			return trace, fmt.Errorf("finalist awaits the gate but the document supplies no obligations")
		}
		res, err := r.SubmitObligations(doc.Obligations)
		if err != nil {
			return trace, err
		}
		trace.Gate = &res
		if !res.Passed {
			// Adoption is blocked; the run stays open at the gate.
			return trace, nil
		}
	}

	if r.Stage() == run.StageAdoptable {
		out, err := r.Finalize()
		if err != nil {
			return trace, err
		}
		trace.Outcome = out
	}

	if r.Stage() == run.StageClosed && trace.Outcome == nil {
		trace.Outcome = r.Outcome()
	}
	return trace, nil
}

func applyClose(r *run.Run, c *CloseDoc) (*types.Outcome, error) {
	switch c.Action {
	case CloseReject:
		return r.CloseRejected(c.Notes)
	case CloseAbandon:
		return r.Abandon(c.Notes)
	default:
		return nil, fmt.Errorf("unknown close action %q", c.Action)
	}
}
