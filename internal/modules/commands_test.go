package modules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cto-ai/clif/internal/command"
	"github.com/cto-ai/clif/internal/intent"
)

var echoLogic = intent.Sequence()

const manifest = `
commands:
  echo:
    description: Print text
    positionals: ["[text]"]
    logic: echo
    flags:
      upper: {description: Uppercase, type: boolean, alias: u}
      prefix:
        description: Prefix each line
        type: string
        alias: [p, pre]
        default: ""
  config:
    description: Manage settings
    commands:
      get:
        description: Print a setting
        positionals: ["<key>"]
        logic: echo
        category: settings
`

func TestLoadCommands(t *testing.T) {
	tree, errs := LoadCommands("demo", []byte(manifest), map[string]intent.Logic{"echo": echoLogic})
	require.Empty(t, errs)
	require.Len(t, tree, 2)

	echo, ok := tree["echo"].(*command.Declaration)
	require.True(t, ok)
	require.Equal(t, "Print text", echo.Description)
	require.Equal(t, []string{"[text]"}, echo.Positionals)
	require.NotNil(t, echo.Logic)
	require.Equal(t, []command.Flag{
		{Name: "upper", Description: "Uppercase", Type: command.FlagBoolean, Alias: []string{"u"}},
		{Name: "prefix", Description: "Prefix each line", Type: command.FlagString, Alias: []string{"p", "pre"}, Default: ""},
	}, echo.Flags)

	cfg, ok := tree["config"].(*command.Branch)
	require.True(t, ok)
	require.Equal(t, "Manage settings", cfg.Description)
	get, ok := cfg.Tree["get"].(*command.Declaration)
	require.True(t, ok)
	require.Equal(t, "settings", string(get.Category))

	_, err := command.Compose(tree, command.Options{})
	require.NoError(t, err)
}

func TestLoadCommands_ShapeErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{
			name:    "missing commands",
			yaml:    "other: 1\n",
			wantMsg: "missing top-level commands table",
		},
		{
			name:    "commands not a mapping",
			yaml:    "commands: [a, b]\n",
			wantMsg: "commands must be a mapping",
		},
		{
			name:    "positionals not a list",
			yaml:    "commands:\n  x:\n    description: d\n    logic: echo\n    positionals: text\n",
			wantMsg: "positionals must be a list",
		},
		{
			name:    "alias of wrong shape",
			yaml:    "commands:\n  x:\n    description: d\n    logic: echo\n    flags:\n      f: {description: d, type: string, alias: {a: b}}\n",
			wantMsg: "alias must be a string or a list of strings",
		},
		{
			name:    "alias list with non string",
			yaml:    "commands:\n  x:\n    description: d\n    logic: echo\n    flags:\n      f: {description: d, type: string, alias: [a, 3]}\n",
			wantMsg: "every element must be a string",
		},
		{
			name:    "unknown logic",
			yaml:    "commands:\n  x:\n    description: d\n    logic: nope\n",
			wantMsg: `unknown logic "nope"`,
		},
		{
			name:    "logic on a branch",
			yaml:    "commands:\n  x:\n    description: d\n    logic: echo\n    commands: {}\n",
			wantMsg: "cannot have both logic and subcommands",
		},
		{
			name:    "invalid yaml",
			yaml:    "commands: [\n",
			wantMsg: "module demo:",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := LoadCommands("demo", []byte(tt.yaml), map[string]intent.Logic{"echo": echoLogic})
			require.Len(t, errs, 1)
			require.ErrorIs(t, errs[0], ErrInvalidModule)
			require.Contains(t, errs[0].Error(), tt.wantMsg)
		})
	}
}

func TestLoadCommands_ErrorCarriesLine(t *testing.T) {
	_, errs := LoadCommands("demo", []byte("commands:\n  x:\n    description: d\n    logic: nope\n"), nil)
	require.Len(t, errs, 1)

	var merr *ModuleError
	require.ErrorAs(t, errs[0], &merr)
	require.Equal(t, 3, merr.Line)
	require.Equal(t, "module demo:3: command \"x\": unknown logic \"nope\"", merr.Error())
}
