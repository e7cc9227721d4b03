package main

import (
	"path/filepath"
	"testing"

	"github.com/fentz26/daybook/internal/config"
	"github.com/fentz26/daybook/internal/models"
	"github.com/fentz26/daybook/internal/planner"
	"github.com/fentz26/daybook/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useDataDir points the global flags at a fresh directory.
func useDataDir(t *testing.T, backend string) string {
	t.Helper()
	dir := t.TempDir()
	oldConfig, oldDir, oldBackend := configPath, dataDirFlag, backendFlag
	configPath = filepath.Join(dir, "missing.yaml")
	dataDirFlag = dir
	backendFlag = backend
	t.Cleanup(func() {
		configPath, dataDirFlag, backendFlag = oldConfig, oldDir, oldBackend
	})
	return dir
}

func TestResolveID(t *testing.T) {
	tasks := []models.Task{{ID: "abc123"}, {ID: "abd456"}, {ID: "xyz"}}
	id := func(t models.Task) string { return t.ID }

	got, err := resolveID("task", tasks, id, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	got, err = resolveID("task", tasks, id, "xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", got)

	_, err = resolveID("task", tasks, id, "ab")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = resolveID("task", tasks, id, "nope")
	assert.ErrorIs(t, err, planner.ErrNotFound)

	_, err = resolveID("task", tasks, id, "")
	assert.ErrorIs(t, err, planner.ErrNotFound)
}

func TestSessionPersistsAcrossOpens(t *testing.T) {
	for _, backend := range []string{config.BackendSQLite, config.BackendFile} {
		t.Run(backend, func(t *testing.T) {
			useDataDir(t, backend)

			s, err := openSession()
			require.NoError(t, err)
			task, err := s.state.Tasks.Add(models.TaskDraft{Title: "Persist me", Category: models.CategoryWork, Priority: models.PriorityHigh})
			require.NoError(t, err)
			_, err = s.state.Tasks.Complete(task.ID)
			require.NoError(t, err)
			require.NoError(t, s.Close())

			s, err = openSession()
			require.NoError(t, err)
			defer s.Close()

			got, err := s.state.Tasks.Get(task.ID)
			require.NoError(t, err)
			assert.True(t, got.Completed)
			assert.Equal(t, 30, s.state.Ledger.Total())

			recent, err := s.rec.Recent(10)
			require.NoError(t, err)
			assert.Len(t, recent, 2)
		})
	}
}

func TestSessionLocksDataDir(t *testing.T) {
	useDataDir(t, config.BackendFile)

	s, err := openSession()
	require.NoError(t, err)
	defer s.Close()

	_, err = openSession()
	assert.ErrorIs(t, err, store.ErrLocked)
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	useDataDir(t, "postgres")

	_, err := loadConfig()
	assert.Error(t, err)
}
