// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runfile reads and executes run documents: YAML files declaring a
// run's staged input wholesale — candidate-pool versions with their
// challenge sets, authored revision responses, selection input, and the
// obligation checklist. There is no incremental append; each stage is
// supplied complete.
// Implements: prd007-cli (R2); docs/ARCHITECTURE § Run Documents.
package runfile

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dialectic-engine/internal/collapse"
	"github.com/pdiddy/dialectic-engine/pkg/types"
)

// RevisionPlan is the authored response applied if its version derives zero
// survivors. Diagnosis and notes are evaluator judgement calls, supplied as
// content, never inferred by the engine.
type RevisionPlan struct {
	Diagnosis types.Diagnosis `yaml:"diagnosis" json:"diagnosis"`
	Notes     string          `yaml:"notes" json:"notes"`
}

// VersionDoc is one wholesale candidate-pool version.
type VersionDoc struct {
	Candidates []types.Candidate         `yaml:"candidates" json:"candidates"`
	Challenges []types.Challenge         `yaml:"challenges,omitempty" json:"challenges,omitempty"`
	Judgements []types.StrengthJudgement `yaml:"judgements,omitempty" json:"judgements,omitempty"`

	// Revision is consulted only when this version eliminates everything.
	Revision *RevisionPlan `yaml:"revision,omitempty" json:"revision,omitempty"`
}

// SelectionDoc carries the selection stage's input.
type SelectionDoc struct {
	Merge         *collapse.MergeProposal  `yaml:"merge,omitempty" json:"merge,omitempty"`
	BenefitScores map[string]int           `yaml:"benefit_scores,omitempty" json:"benefit_scores,omitempty"`
	Evaluator     *collapse.EvaluatorChoice `yaml:"evaluator,omitempty" json:"evaluator,omitempty"`
}

// CloseAction deliberately closes a run instead of carrying it to adoption.
type CloseAction string

const (
	CloseReject  CloseAction = "reject"
	CloseAbandon CloseAction = "abandon"
)

// CloseDoc is a deliberate evaluator close.
type CloseDoc struct {
	Action CloseAction `yaml:"action" json:"action"`
	Notes  string      `yaml:"notes" json:"notes"`
}

// Document is the on-disk representation of a complete run.
type Document struct {
	// RunID optionally fixes the run identifier; empty means generated.
	RunID string `yaml:"run_id,omitempty" json:"run_id,omitempty"`

	// Protocol is the instantiation id (e.g. "causal").
	Protocol string `yaml:"protocol" json:"protocol"`

	// Subject names what the run is about.
	Subject string `yaml:"subject" json:"subject"`

	// Versions are consumed in order; each after the first is reachable
	// only through a revision restart.
	Versions []VersionDoc `yaml:"versions" json:"versions"`

	// Selection is required when the surviving version keeps more than one
	// candidate.
	Selection *SelectionDoc `yaml:"selection,omitempty" json:"selection,omitempty"`

	// Obligations is the gate checklist for the finalist.
	Obligations []types.Obligation `yaml:"obligations,omitempty" json:"obligations,omitempty"`

	// Close, when present, rejects or abandons the run instead of gating.
	Close *CloseDoc `yaml:"close,omitempty" json:"close,omitempty"`
}

// Load reads and structurally validates a run document.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run document: %w", err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing run document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks document structure. Semantic validation — catalogue
// membership, rebuttal legality, dangling targets — happens at version
// intake against the protocol.
func (d *Document) Validate() error {
	if d.Protocol == "" {
		return fmt.Errorf("run document missing protocol")
	}
	if d.Subject == "" {
		return fmt.Errorf("run document missing subject")
	}
	if len(d.Versions) == 0 {
		return fmt.Errorf("run document declares no versions")
	}
	for i, v := range d.Versions {
		if len(v.Candidates) == 0 {
			return fmt.Errorf("version %d declares no candidates", i+1)
		}
	}
	if d.Close != nil {
		switch d.Close.Action {
		case CloseReject, CloseAbandon:
		default:
			return fmt.Errorf("unknown close action %q", d.Close.Action)
		}
		if d.Close.Notes == "" {
			return fmt.Errorf("close action requires notes")
		}
	}
	return nil
}

// Write saves a run document to disk.
func Write(path string, doc *Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling run document: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
