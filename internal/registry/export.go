// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dialectic-engine/pkg/types"
)

// exportFile is the structure written by Export* (R4.2). Collaborating
// components — the log projector and the cross-run reconciler — consume
// this file; the registry's only obligation to them is that every outcome
// carries its full field set.
type exportFile struct {
	ExportedAt time.Time        `json:"exported_at" yaml:"exported_at"`
	Total      int              `json:"total" yaml:"total"`
	Outcomes   []*types.Outcome `json:"outcomes" yaml:"outcomes"`
}

// ExportYAML writes all outcomes matching the filters to
// stateDir/index/export.yaml.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	ef, err := s.collectExport(ctx, opts)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(ef)
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	return s.writeExport("export.yaml", data)
}

// ExportJSON writes all outcomes matching the filters to
// stateDir/index/export.json.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	ef, err := s.collectExport(ctx, opts)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(ef, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	return s.writeExport("export.json", data)
}

func (s *Store) collectExport(ctx context.Context, opts QueryOptions) (*exportFile, error) {
	if opts.MaxResults <= 0 {
		// Exports default to everything, unlike listings.
		opts.MaxResults = 1 << 30
	}
	rows, err := s.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	ef := &exportFile{ExportedAt: time.Now().UTC()}
	for _, r := range rows {
		o, err := s.Get(ctx, r.RunID)
		if err != nil {
			return nil, err
		}
		ef.Outcomes = append(ef.Outcomes, o)
	}
	ef.Total = len(ef.Outcomes)
	return ef, nil
}

func (s *Store) writeExport(name string, data []byte) error {
	path := filepath.Join(s.stateDir, indexDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
