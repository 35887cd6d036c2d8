// Package completions generates bash, zsh and fish completion scripts
// from a program's command tree.
package completions

import (
	"maps"
	"slices"
	"strings"

	"github.com/cto-ai/clif/internal/dispatchers"
)

// CommandInfo represents a command extracted from the dispatch tree
type CommandInfo struct {
	Name        string
	Path        []string // Full path from root (e.g., ["clif", "config", "set"])
	Summary     string
	Subcommands []string
	Flags       []FlagInfo
}

// FlagInfo represents a flag for a command
type FlagInfo struct {
	Names       []string
	Description string
	HasValue    bool
}

// ExtractCommands walks the dispatch tree depth-first, children in
// name order.
func ExtractCommands(root *dispatchers.DispatchNode) []CommandInfo {
	var commands []CommandInfo
	extractNode(root, &commands)
	return commands
}

func extractNode(node *dispatchers.DispatchNode, commands *[]CommandInfo) {
	if node == nil {
		return
	}

	names := slices.Sorted(maps.Keys(node.Children))

	var flags []FlagInfo
	for _, f := range node.Flags {
		flags = append(flags, FlagInfo{
			Names:       f.Names,
			Description: f.Description,
			HasValue:    f.ValueHint != "",
		})
	}

	*commands = append(*commands, CommandInfo{
		Name:        node.Name,
		Path:        node.Path,
		Summary:     node.Summary,
		Subcommands: names,
		Flags:       flags,
	})

	for _, name := range names {
		extractNode(node.Children[name], commands)
	}
}

// FindCommand finds a command by its path
func FindCommand(commands []CommandInfo, path []string) *CommandInfo {
	for i := range commands {
		if slices.Equal(commands[i].Path, path) {
			return &commands[i]
		}
	}
	return nil
}

// subPath is the command path without the program name, space joined.
func (c CommandInfo) subPath() string {
	if len(c.Path) <= 1 {
		return ""
	}
	return strings.Join(c.Path[1:], " ")
}

// flagWords lists every flag spelling of c.
func (c CommandInfo) flagWords() []string {
	var out []string
	for _, f := range c.Flags {
		out = append(out, f.Names...)
	}
	return out
}
