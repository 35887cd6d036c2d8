// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/cto-ai/clif/internal/config"
	"github.com/cto-ai/clif/internal/intent"
	"github.com/cto-ai/clif/internal/store"
	"github.com/cto-ai/clif/internal/ui"
)

// NewTestStore opens an in-memory journal closed when the test finishes.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(store.MemoryPath)
	require.NoError(t, err, "failed to open in-memory journal")

	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

// SeedRun describes a finished run to insert.
type SeedRun struct {
	Command []string
	State   intent.State
	Steps   int
}

// SeedRuns journals runs one minute apart, oldest first.
func SeedRuns(t *testing.T, s *store.Store, runs ...SeedRun) {
	t.Helper()

	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, r := range runs {
		id := uuid.New()
		require.NoError(t, s.Begin(ctx, intent.Run{ID: id, Command: r.Command, Started: base.Add(time.Duration(i) * time.Minute)}))
		require.NoError(t, s.Finish(ctx, id, intent.Outcome{RunID: id, State: r.State, Steps: r.Steps}, nil), "failed to seed run: %+v", r)
	}
}

// NewSettings writes content to a temporary settings file and loads it
// with an empty environment.
func NewSettings(t *testing.T, content string) *config.Settings {
	t.Helper()

	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	s, err := config.LoadWithEnv(path, func(string) string { return "" })
	require.NoError(t, err)
	return s
}

// NewOutput returns a pager-less writer and the buffer behind it.
func NewOutput() (*ui.Writer, *bytes.Buffer) {
	var buf bytes.Buffer
	return ui.NewWriterTo(&buf, ui.WithPagerDisabled()), &buf
}
