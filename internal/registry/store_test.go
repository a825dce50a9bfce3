// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dialectic-engine/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.RegistryConfig{StateDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func outcome(runID, subject string, role types.VerdictRole, at time.Time) *types.Outcome {
	verdict := types.Verdict("formalized")
	if role != types.RoleAdopted {
		verdict = types.Verdict(string(role))
	}
	out := &types.Outcome{
		RunID:       runID,
		Protocol:    "formalize",
		Subject:     subject,
		Verdict:     verdict,
		Role:        role,
		FinalizedAt: at,
	}
	if role == types.RoleAdopted {
		out.Winner = &types.Candidate{ID: "C1", Statement: "grounded definition"}
		out.Limitations = []string{"excludes case Z"}
	}
	return out
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Save(ctx, outcome("run-1", "knowledge", types.RoleAdopted, at)))

	got, err := s.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "knowledge", got.Subject)
	assert.Equal(t, types.RoleAdopted, got.Role)
	require.NotNil(t, got.Winner)
	assert.Equal(t, "C1", got.Winner.ID)
	assert.Equal(t, []string{"excludes case Z"}, got.Limitations)

	_, err = s.Get(ctx, "run-9")
	assert.Error(t, err)
}

func TestSaveIsAppendOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	at := time.Now().UTC()

	require.NoError(t, s.Save(ctx, outcome("run-1", "knowledge", types.RoleAdopted, at)))
	err := s.Save(ctx, outcome("run-1", "knowledge", types.RoleRejected, at))
	assert.Error(t, err, "re-saving a run id must fail, never overwrite")

	err = s.Save(ctx, nil)
	assert.Error(t, err)
	err = s.Save(ctx, &types.Outcome{})
	assert.Error(t, err)
}

func TestLookupLatestAdopted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Save(ctx, outcome("run-1", "knowledge", types.RoleAdopted, base)))
	require.NoError(t, s.Save(ctx, outcome("run-2", "knowledge", types.RoleUnresolved, base.Add(time.Hour))))
	require.NoError(t, s.Save(ctx, outcome("run-3", "knowledge", types.RoleAdopted, base.Add(2*time.Hour))))

	got, err := s.Lookup(ctx, "knowledge")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "run-3", got.RunID, "lookup resolves to the latest adopted outcome")

	// Subjects with no adopted outcome resolve to nothing, without error.
	require.NoError(t, s.Save(ctx, outcome("run-4", "justice", types.RoleUnresolved, base)))
	got, err = s.Lookup(ctx, "justice")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.Lookup(ctx, "unknown")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestHistoryOldestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Save(ctx, outcome("run-1", "knowledge", types.RoleUnresolved, base)))
	require.NoError(t, s.Save(ctx, outcome("run-2", "knowledge", types.RoleAdopted, base.Add(time.Hour))))
	require.NoError(t, s.Save(ctx, outcome("run-3", "other", types.RoleAdopted, base)))

	history, err := s.History(ctx, "knowledge")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "run-1", history[0].RunID)
	assert.Equal(t, "run-2", history[1].RunID)
}

func TestListFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Save(ctx, outcome("run-1", "knowledge", types.RoleAdopted, base)))
	require.NoError(t, s.Save(ctx, outcome("run-2", "justice", types.RoleUnresolved, base.Add(time.Hour))))
	require.NoError(t, s.Save(ctx, outcome("run-3", "knowledge", types.RoleAdopted, base.Add(2*time.Hour))))

	rows, err := s.List(ctx, QueryOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "run-3", rows[0].RunID, "listings are newest first")

	rows, err = s.List(ctx, QueryOptions{Subject: "knowledge"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = s.List(ctx, QueryOptions{Role: types.RoleUnresolved})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "run-2", rows[0].RunID)

	rows, err = s.List(ctx, QueryOptions{Protocol: "causal"})
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = s.List(ctx, QueryOptions{MaxResults: 1})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestStoreReopens(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	at := time.Now().UTC()

	s, err := NewStore(types.RegistryConfig{StateDir: dir})
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, outcome("run-1", "knowledge", types.RoleAdopted, at)))
	require.NoError(t, s.Close())

	s2, err := NewStore(types.RegistryConfig{StateDir: dir})
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "knowledge", got.Subject)
}

func TestExportYAML(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	s, err := NewStore(types.RegistryConfig{StateDir: dir, MaxResults: 1})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(ctx, outcome("run-1", "knowledge", types.RoleAdopted, base)))
	require.NoError(t, s.Save(ctx, outcome("run-2", "justice", types.RoleAdopted, base.Add(time.Hour))))

	require.NoError(t, s.ExportYAML(ctx, QueryOptions{}))

	data, err := os.ReadFile(filepath.Join(dir, "index", "export.yaml"))
	require.NoError(t, err)

	var ef exportFile
	require.NoError(t, yaml.Unmarshal(data, &ef))
	assert.Equal(t, 2, ef.Total, "exports ignore the listing default and take everything")
	require.Len(t, ef.Outcomes, 2)
}

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewStore(types.RegistryConfig{StateDir: dir})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(ctx, outcome("run-1", "knowledge", types.RoleAdopted, time.Now().UTC())))
	require.NoError(t, s.ExportJSON(ctx, QueryOptions{Subject: "knowledge"}))

	_, err = os.Stat(filepath.Join(dir, "index", "export.json"))
	assert.NoError(t, err)
}
