// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// EngineConfig holds settings for run execution.
// Per prd002-revision R3.1.
type EngineConfig struct {
	// MaxRevisions bounds the number of revision triggers per run. Once
	// exceeded the run is forced to its unresolved verdict regardless of
	// diagnosis (default 3).
	MaxRevisions int `json:"max_revisions" yaml:"max_revisions"`
}

// RevisionBound returns the configured trigger bound, defaulting to 3.
func (c EngineConfig) RevisionBound() int {
	if c.MaxRevisions <= 0 {
		return 3
	}
	return c.MaxRevisions
}

// RegistryConfig holds settings for the outcome registry.
// Per prd006-registry R1.2, R3.3.
type RegistryConfig struct {
	// StateDir is the base directory for engine state (contains index/).
	StateDir string `json:"state_dir" yaml:"state_dir"`

	// MaxResults is the default maximum number of listed outcomes
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// EngineSettings groups all configuration for the CLI.
type EngineSettings struct {
	Engine   EngineConfig   `json:"engine" yaml:"engine"`
	Registry RegistryConfig `json:"registry" yaml:"registry"`
}
