package history_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docgate/docgate/internal/adapters/outbound/history"
	"github.com/docgate/docgate/internal/domain"
)

func TestHistory_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	entry := domain.HistoryEntry{
		RunID:         "run-1",
		Timestamp:     "2026-08-20T10:00:00Z",
		Commit:        "abc1234",
		TotalErrors:   3,
		TotalWarnings: 1,
		ExitCode:      domain.ExitViolations,
	}

	require.NoError(t, h.Save(dir, entry))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "run-1", entries[0].RunID)
	assert.Equal(t, "abc1234", entries[0].Commit)
	assert.Equal(t, 3, entries[0].TotalErrors)
}

func TestHistory_AppendKeepsRunOrder(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	require.NoError(t, h.Save(dir, domain.HistoryEntry{RunID: "run-1", TotalErrors: 5}))
	require.NoError(t, h.Save(dir, domain.HistoryEntry{RunID: "run-2", TotalErrors: 2}))
	require.NoError(t, h.Save(dir, domain.HistoryEntry{RunID: "run-3", TotalErrors: 0, ExitCode: domain.ExitClean}))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "run-1", entries[0].RunID)
	assert.Equal(t, 0, entries[2].TotalErrors)
}

func TestHistory_LoadEmpty(t *testing.T) {
	h := history.New()

	entries, err := h.Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistory_CreatesDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "deep", "nested")
	h := history.New()

	require.NoError(t, h.Save(nested, domain.HistoryEntry{RunID: "run-1"}))

	entries, err := h.Load(nested)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
