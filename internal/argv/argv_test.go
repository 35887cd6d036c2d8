package argv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func echoConfig() Config {
	return Config{
		Strings:     []string{"prefix"},
		Booleans:    []string{"upper"},
		Alias:       map[string][]string{"prefix": {"p"}, "upper": {"u", "U"}},
		Defaults:    map[string]any{"prefix": ">"},
		Positionals: []string{"<text>", "[more]"},
	}
}

func TestParse_DeclaredFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want map[string]any
	}{
		{
			name: "defaults only",
			args: nil,
			want: map[string]any{"prefix": ">", "p": ">", "upper": false, "u": false, "U": false},
		},
		{
			name: "long string with separate value",
			args: []string{"--prefix", "#"},
			want: map[string]any{"prefix": "#", "p": "#", "upper": false, "u": false, "U": false},
		},
		{
			name: "long string with equals",
			args: []string{"--prefix=a=b"},
			want: map[string]any{"prefix": "a=b", "p": "a=b", "upper": false, "u": false, "U": false},
		},
		{
			name: "short alias boolean",
			args: []string{"-u"},
			want: map[string]any{"prefix": ">", "p": ">", "upper": true, "u": true, "U": true},
		},
		{
			name: "short bundle with attached value",
			args: []string{"-up#"},
			want: map[string]any{"prefix": "#", "p": "#", "upper": true, "u": true, "U": true},
		},
		{
			name: "negated boolean",
			args: []string{"--upper", "--no-upper"},
			want: map[string]any{"prefix": ">", "p": ">", "upper": false, "u": false, "U": false},
		},
		{
			name: "boolean with explicit value",
			args: []string{"--upper=true"},
			want: map[string]any{"prefix": ">", "p": ">", "upper": true, "u": true, "U": true},
		},
		{
			name: "string flag without value",
			args: []string{"--prefix"},
			want: map[string]any{"prefix": "", "p": "", "upper": false, "u": false, "U": false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.args, Config{
				Strings:  []string{"prefix"},
				Booleans: []string{"upper"},
				Alias:    map[string][]string{"prefix": {"p"}, "upper": {"u", "U"}},
				Defaults: map[string]any{"prefix": ">"},
			})
			require.Equal(t, tt.want, got.Inputs)
			require.Empty(t, got.Implicits.Flags.Raw)
		})
	}
}

func TestParse_Positionals(t *testing.T) {
	got := Parse([]string{"hello", "-u", "world", "extra", "more-extra"}, echoConfig())

	require.Equal(t, "hello", got.Inputs["text"])
	require.Equal(t, "world", got.Inputs["more"])
	require.Equal(t, true, got.Inputs["upper"])
	require.Equal(t, []string{"extra", "more-extra"}, got.Implicits.Positionals)
}

func TestParse_MissingOptionalPositional(t *testing.T) {
	got := Parse([]string{"hello"}, echoConfig())

	require.Equal(t, "hello", got.Inputs["text"])
	require.NotContains(t, got.Inputs, "more")
	require.Empty(t, got.Implicits.Positionals)
}

func TestParse_Implicits(t *testing.T) {
	got := Parse([]string{"--verbose", "--level=3", "-xy", "--no-color", "text"}, echoConfig())

	require.Equal(t, []string{"--verbose", "--level=3", "-xy", "--no-color"}, got.Implicits.Flags.Raw)
	require.Equal(t, map[string]any{
		"verbose": true,
		"level":   "3",
		"x":       true,
		"y":       true,
		"color":   false,
	}, got.Implicits.Flags.Parsed)
	require.Equal(t, "text", got.Inputs["text"])
	require.NotContains(t, got.Inputs, "verbose")
}

func TestParse_MixedShortBundle(t *testing.T) {
	got := Parse([]string{"-uz"}, echoConfig())

	require.Equal(t, true, got.Inputs["upper"])
	require.Equal(t, []string{"-z"}, got.Implicits.Flags.Raw)
}

func TestParse_Posteriors(t *testing.T) {
	args := []string{"a", "--", "-u", "--prefix", "b"}
	got := Parse(args, echoConfig())

	require.Equal(t, []string{"-u", "--prefix", "b"}, got.Posteriors)
	require.Equal(t, false, got.Inputs["upper"])
	require.Equal(t, ">", got.Inputs["prefix"])
	require.Equal(t, args, got.Argv)
}

func TestParse_DashIsPositional(t *testing.T) {
	got := Parse([]string{"-"}, echoConfig())
	require.Equal(t, "-", got.Inputs["text"])
}

func TestPositionalName(t *testing.T) {
	tests := map[string]string{
		"<path>":  "path",
		"[dest]":  "dest",
		"plain":   "plain",
		" <sp> ":  "sp",
		"<":       "<",
		"[broken": "[broken",
	}
	for in, want := range tests {
		require.Equal(t, want, PositionalName(in), in)
	}
}
