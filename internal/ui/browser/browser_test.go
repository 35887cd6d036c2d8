package browser

import (
	"bytes"
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/cto-ai/clif/internal/dispatchers"
	"github.com/cto-ai/clif/internal/ui"
)

func testProgram(t *testing.T) *dispatchers.Program {
	t.Helper()
	p := dispatchers.NewProgram(dispatchers.RootSpec{Name: "clif"},
		dispatchers.WithOutput(ui.NewWriterTo(&bytes.Buffer{}, ui.WithPagerDisabled())))
	noop := func(context.Context, []string) error { return nil }

	_, err := p.Command(dispatchers.CommandSpec{Path: []string{"echo"}, Summary: "Print text", Action: noop})
	require.NoError(t, err)
	_, err = p.Group(dispatchers.GroupSpec{Path: []string{"config"}})
	require.NoError(t, err)
	_, err = p.Command(dispatchers.CommandSpec{Path: []string{"config", "get"}, Summary: "Get a setting", Action: noop})
	require.NoError(t, err)
	_, err = p.Command(dispatchers.CommandSpec{Path: []string{"version"}, Category: dispatchers.CategoryBuiltin, Action: noop})
	require.NoError(t, err)
	return p
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m model, keys ...string) model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(model)
	}
	return m
}

func TestBuildItems(t *testing.T) {
	items := buildItems(testProgram(t))

	var labels []string
	for _, it := range items {
		labels = append(labels, it.label)
	}
	require.Equal(t, []string{"COMMANDS", "config get", "echo", "BUILT-IN COMMANDS", "version"}, labels)
	require.True(t, items[0].isCategory)
	require.NotNil(t, items[1].node)
}

func TestModel_CursorSkipsCategories(t *testing.T) {
	m := newModel(testProgram(t))
	require.Equal(t, 1, m.cursor)

	m = press(m, "down", "down")
	require.Equal(t, "version", m.items[m.cursor].label)

	m = press(m, "down")
	require.Equal(t, "config get", m.items[m.cursor].label)

	m = press(m, "up")
	require.Equal(t, "version", m.items[m.cursor].label)

	m = press(m, "g")
	require.Equal(t, 1, m.cursor)
	m = press(m, "G")
	require.Equal(t, "version", m.items[m.cursor].label)
}

func TestModel_TabMovesFocus(t *testing.T) {
	m := newModel(testProgram(t))
	m = press(m, "tab")
	require.False(t, m.focusSide)

	before := m.cursor
	m = press(m, "j")
	require.Equal(t, before, m.cursor)
}

func TestModel_QuitKeys(t *testing.T) {
	m := newModel(testProgram(t))
	for _, k := range []string{"q"} {
		_, cmd := m.Update(key(k))
		require.NotNil(t, cmd)
		require.IsType(t, tea.QuitMsg{}, cmd())
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
}

func TestModel_ViewShowsSelectedHelp(t *testing.T) {
	m := newModel(testProgram(t))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = next.(model)

	out := m.View()
	require.Contains(t, out, "config get")
	require.Contains(t, out, "Get a setting")
	require.Contains(t, out, "USAGE")
}

func TestAction_RequiresTerminal(t *testing.T) {
	err := Action(testProgram(t))(context.Background(), nil)
	require.ErrorIs(t, err, ErrNotTerminal)
}
