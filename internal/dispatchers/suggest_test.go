package dispatchers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "identical strings", a: "echo", b: "echo", want: 0},
		{name: "one character difference", a: "echo", b: "echoo", want: 1},
		{name: "typo - transposition", a: "history", b: "histroy", want: 2},
		{name: "typo - substitution", a: "echo", b: "ecko", want: 1},
		{name: "completely different", a: "echo", b: "xyz123", want: 6},
		{name: "empty string a", a: "", b: "echo", want: 4},
		{name: "empty string b", a: "echo", b: "", want: 4},
		{name: "both empty", a: "", b: "", want: 0},
		{name: "case insensitive", a: "ECHO", b: "echo", want: 0},
		{name: "missing letter", a: "config", b: "confg", want: 1},
		{name: "extra letter", a: "config", b: "confiig", want: 1},
		{name: "runes not bytes", a: "café", b: "cafe", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, levenshtein(tt.a, tt.b))
		})
	}
}

func flatRoot(names ...string) *DispatchNode {
	root := NewNode("clif", nil, "", "", nil, nil, nil)
	for _, name := range names {
		NewNode(name, root, "", "", nil, nil, nil)
	}
	return root
}

func TestFindSimilarCommands(t *testing.T) {
	root := flatRoot("cat", "echo", "config", "history", "exit", "version", "help")

	tests := []struct {
		name  string
		input string
		node  *DispatchNode
		want  []string
	}{
		{name: "closest first then alphabetical", input: "ecko", node: root, want: []string{"echo", "cat", "exit"}},
		{name: "missing letter", input: "confg", node: root, want: []string{"config"}},
		{name: "transposition", input: "histroy", node: root, want: []string{"history"}},
		{name: "completely different", input: "xyz123", node: root, want: []string{}},
		{name: "exact match is not suggested", input: "echo", node: root, want: []string{"cat", "exit"}},
		{name: "nil node", input: "echo", node: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindSimilarCommands(tt.input, tt.node, 3)
			if tt.want == nil {
				require.Nil(t, got)
				return
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFindSimilarCommands_LimitsResults(t *testing.T) {
	root := flatRoot("cat", "echo", "exit")
	require.Equal(t, []string{"echo"}, FindSimilarCommands("ecko", root, 1))
}

func TestFindSimilarCommands_Subcommands(t *testing.T) {
	root := flatRoot()
	config := NewNode("config", root, "", "", nil, nil, nil)
	NewNode("get", config, "", "", nil, nil, nil)
	NewNode("list", config, "", "", nil, nil, nil)

	require.Equal(t, []string{"list", "get"}, FindSimilarCommands("lsit", config, 3))
}
