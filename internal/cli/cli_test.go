package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cto-ai/clif/internal/actions"
	"github.com/cto-ai/clif/internal/command"
	"github.com/cto-ai/clif/internal/format"
	"github.com/cto-ai/clif/internal/intent"
	"github.com/cto-ai/clif/internal/modules"
	"github.com/cto-ai/clif/internal/pattern"
	"github.com/cto-ai/clif/internal/store"
	"github.com/cto-ai/clif/internal/testutil"
	"github.com/cto-ai/clif/internal/usage"
)

type harness struct {
	engine *intent.Engine
	out    *bytes.Buffer
	errOut *bytes.Buffer
	store  *store.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	w, out := testutil.NewOutput()
	h := &harness{out: out, errOut: &bytes.Buffer{}, store: testutil.NewTestStore(t)}

	deps := actions.DefaultDeps()
	deps.Out = w
	deps.Err = h.errOut
	deps.Stdin = strings.NewReader("piped\n")
	deps.History = h.store
	deps.Version = "0.9.0"

	bindings, errs := actions.Bindings(deps)
	require.Empty(t, errs)
	reg := pattern.New()
	modules.Register(reg, bindings)
	h.engine = intent.New(reg, intent.WithJournal(h.store))
	return h
}

// run composes the manifest and executes argv the way the entry point
// does.
func (h *harness) run(t *testing.T, settings any, argv ...string) error {
	t.Helper()
	tree, errs := LoadCommands()
	require.Empty(t, errs)
	program, err := command.Compose(tree, command.Options{
		Root:     Root("0.9.0"),
		Engine:   h.engine,
		Settings: settings,
	})
	require.NoError(t, err)
	return program.Execute(context.Background(), argv)
}

func TestLoadCommands_ManifestComposes(t *testing.T) {
	tree, errs := LoadCommands()
	require.Empty(t, errs)

	program, err := command.Compose(tree, command.Options{Root: Root("1.0.0")})
	require.NoError(t, err)

	for _, path := range [][]string{
		{"cat"}, {"echo"}, {"exit"}, {"version"}, {"completions"},
		{"config", "get"}, {"config", "list"}, {"config", "set"}, {"config", "unset"},
		{"history", "list"}, {"history", "show"}, {"history", "prune"},
	} {
		require.NotNil(t, program.Lookup(path), "missing %v", path)
	}
}

func TestLogic_EveryEntryIsUsed(t *testing.T) {
	for name := range Logic() {
		require.Contains(t, string(Commands), "logic: "+name)
	}
}

func TestSplitGlobals(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		want     Globals
		wantRest []string
	}{
		{name: "none", argv: []string{"echo", "hi"}, wantRest: []string{"echo", "hi"}},
		{name: "no-color", argv: []string{"--no-color", "echo"}, want: Globals{NoColor: true}, wantRest: []string{"echo"}},
		{name: "no-pager anywhere", argv: []string{"history", "list", "--no-pager"}, want: Globals{NoPager: true}, wantRest: []string{"history", "list"}},
		{name: "pager value", argv: []string{"--pager", "more", "config", "list"}, want: Globals{Pager: "more"}, wantRest: []string{"config", "list"}},
		{name: "pager equals", argv: []string{"config", "list", "--pager=cat"}, want: Globals{Pager: "cat"}, wantRest: []string{"config", "list"}},
		{name: "after double dash", argv: []string{"echo", "--", "--no-color"}, wantRest: []string{"echo", "--", "--no-color"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, rest := SplitGlobals(tt.argv)
			require.Equal(t, tt.want, g)
			require.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestEcho(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want string
	}{
		{name: "words", argv: []string{"echo", "hello", "world"}, want: "hello world\n"},
		{name: "upper", argv: []string{"echo", "-u", "hi"}, want: "HI\n"},
		{name: "prefix alias", argv: []string{"echo", "--pre", "> ", "quoted"}, want: "> quoted\n"},
		{name: "upper and prefix", argv: []string{"echo", "--upper", "--prefix=# ", "x"}, want: "# X\n"},
		{name: "empty", argv: []string{"echo"}, want: "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			require.NoError(t, h.run(t, nil, tt.argv...))
			require.Equal(t, tt.want, h.out.String())
		})
	}
}

func TestEcho_ToFile(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "out.txt")

	require.NoError(t, h.run(t, nil, "echo", "-o", path, "saved"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "saved\n", string(data))
	require.Empty(t, h.out.String())
}

func TestCat(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0600))

	require.NoError(t, h.run(t, nil, "cat", "-n", path))
	require.Equal(t, "     1\tone\n     2\ttwo\n", h.out.String())
}

func TestCat_Stdin(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, nil, "cat", "-"))
	require.Equal(t, "piped\n", h.out.String())
}

func TestCat_MissingFileIsRecovered(t *testing.T) {
	h := newHarness(t)
	missing := filepath.Join(t.TempDir(), "nope")

	require.NoError(t, h.run(t, nil, "cat", missing))
	require.Contains(t, h.errOut.String(), missing+": no such file or directory")

	runs, err := h.store.List(context.Background(), store.RunFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.True(t, runs[0].Recovered)
}

func TestCat_MissingArgument(t *testing.T) {
	h := newHarness(t)
	err := h.run(t, nil, "cat")
	require.Equal(t, 2, usage.ExitCode(err))
}

func TestExit(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 3, usage.ExitCode(h.run(t, nil, "exit", "3")))
	require.Equal(t, 0, usage.ExitCode(h.run(t, nil, "exit")))

	err := h.run(t, nil, "exit", "three")
	require.Equal(t, "EINVAL", intent.AsFailure(err).Extra["code"])
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, nil, "version"))
	require.Equal(t, "clif version 0.9.0\n", h.out.String())
}

func TestConfigCommands(t *testing.T) {
	h := newHarness(t)
	settings := testutil.NewSettings(t, "")

	require.NoError(t, h.run(t, settings, "config", "set", "pager", "more"))
	require.NoError(t, h.run(t, settings, "config:get", "pager"))
	require.NoError(t, h.run(t, settings, "config", "list"))
	require.NoError(t, h.run(t, settings, "config", "unset", "pager"))

	out := h.out.String()
	require.Contains(t, out, "pager = more\n")
	require.Contains(t, out, "\nmore\n")
	require.Contains(t, out, "Display\npager=more (file)\n")
	require.Contains(t, out, "pager restored to its default\n")

	v, _ := settings.Get("pager")
	require.Equal(t, "less -FRSX", v)
}

func TestConfigGet_UnknownKey(t *testing.T) {
	h := newHarness(t)
	err := h.run(t, testutil.NewSettings(t, ""), "config", "get", "nope")
	require.ErrorContains(t, err, "unknown setting 'nope'")
}

func TestHistoryCommands(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, nil, "echo", "first"))
	require.NoError(t, h.run(t, nil, "echo", "second"))
	h.out.Reset()

	require.NoError(t, h.run(t, nil, "history", "list", "--limit", "5"))
	lines := strings.Split(strings.TrimSpace(h.out.String()), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "running")
	require.Contains(t, lines[0], "history list")
	require.Contains(t, lines[1], "done")
	require.Contains(t, lines[1], "echo")

	runs, err := h.store.List(context.Background(), store.RunFilter{Command: "echo"})
	require.NoError(t, err)
	h.out.Reset()
	require.NoError(t, h.run(t, nil, "history", "show", runs[0].ID))
	require.Contains(t, h.out.String(), "command:  echo\n")
	require.Contains(t, h.out.String(), `"cmd":"print"`)

	h.out.Reset()
	require.NoError(t, h.run(t, nil, "history", "prune", "--keep", "1"))
	require.Contains(t, h.out.String(), "pruned ")
}

func TestHistoryList_InvalidLimit(t *testing.T) {
	h := newHarness(t)
	err := h.run(t, nil, "history", "list", "--limit", "lots")
	require.Equal(t, 2, usage.ExitCode(err))
}

func TestRenderRuns(t *testing.T) {
	started := time.Date(2026, 3, 4, 10, 0, 0, 0, time.Local)
	finished := started.Add(1500 * time.Millisecond)
	out := renderRuns([]store.RunRecord{
		{ID: "0123456789abcdef", Command: "echo", StartedAt: started, FinishedAt: &finished, State: "done"},
		{ID: "fedcba", Command: "cat", StartedAt: started, State: "failed"},
	}, testClock())

	require.Equal(t,
		"01234567  03-04 10:00  done    echo  1.5s\n"+
			"fedcba    03-04 10:00  failed  cat   -\n",
		out)
	require.Equal(t, "no runs recorded", renderRuns(nil, testClock()))
}

func TestNumberLines(t *testing.T) {
	require.Equal(t, "     1\ta\n     2\tb", numberLines("a\nb"))
}

func testClock() format.Clock {
	return format.NewClock(nil)
}
