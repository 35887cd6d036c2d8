package modules

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cto-ai/clif/internal/command"
	"github.com/cto-ai/clif/internal/dispatchers"
	"github.com/cto-ai/clif/internal/intent"
)

// A command manifest looks like:
//
//	commands:
//	  echo:
//	    description: Print text
//	    positionals: ["[text]"]
//	    logic: echo
//	    flags:
//	      upper: {description: Uppercase, type: boolean, alias: u}
//	  config:
//	    description: Manage settings
//	    commands:
//	      get: {description: Print a setting, positionals: ["<key>"], logic: config-get}
//
// A node with a commands table is a branch; anything else is a leaf whose
// logic names an entry of the Go logic table.
type rawCommand struct {
	Description string    `yaml:"description"`
	Positionals yaml.Node `yaml:"positionals"`
	Logic       string    `yaml:"logic"`
	Category    string    `yaml:"category"`
	Flags       yaml.Node `yaml:"flags"`
	Commands    yaml.Node `yaml:"commands"`
}

type rawFlag struct {
	Description string    `yaml:"description"`
	Type        string    `yaml:"type"`
	Alias       yaml.Node `yaml:"alias"`
	Default     any       `yaml:"default"`
}

// LoadCommands decodes a command manifest. Shape violations are returned
// as *ModuleError values; the tree holds everything that could be read so
// the composer can report declaration problems alongside them.
func LoadCommands(module string, data []byte, logic map[string]intent.Logic) (command.Tree, []error) {
	l := &commandLoader{module: module, logic: logic}

	var doc struct {
		Commands yaml.Node `yaml:"commands"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, []error{&ModuleError{Module: module, Msg: err.Error()}}
	}
	if doc.Commands.Kind == 0 {
		return nil, []error{&ModuleError{Module: module, Msg: "missing top-level commands table"}}
	}

	tree := l.tree(&doc.Commands)
	return tree, l.errs
}

type commandLoader struct {
	module string
	logic  map[string]intent.Logic
	errs   []error
}

func (l *commandLoader) fail(n *yaml.Node, format string, args ...any) {
	l.errs = append(l.errs, &ModuleError{Module: l.module, Line: n.Line, Msg: fmt.Sprintf(format, args...)})
}

func (l *commandLoader) tree(n *yaml.Node) command.Tree {
	if n.Kind != yaml.MappingNode {
		l.fail(n, "commands must be a mapping of names to commands")
		return nil
	}

	tree := command.Tree{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if node := l.node(key.Value, value); node != nil {
			tree[key.Value] = node
		}
	}
	return tree
}

func (l *commandLoader) node(name string, n *yaml.Node) command.Node {
	if n.Kind != yaml.MappingNode {
		l.fail(n, "command %q must be a mapping", name)
		return nil
	}

	var raw rawCommand
	if err := n.Decode(&raw); err != nil {
		l.fail(n, "command %q: %v", name, err)
		return nil
	}

	if raw.Commands.Kind != 0 {
		if raw.Logic != "" {
			l.fail(n, "command %q cannot have both logic and subcommands", name)
		}
		return &command.Branch{Description: raw.Description, Tree: l.tree(&raw.Commands)}
	}

	decl := &command.Declaration{
		Description: raw.Description,
		Positionals: l.positionals(name, &raw.Positionals),
		Flags:       l.flags(name, &raw.Flags),
		Category:    dispatchers.CommandCategory(raw.Category),
	}
	if raw.Logic != "" {
		fn, ok := l.logic[raw.Logic]
		if !ok {
			l.fail(n, "command %q: unknown logic %q", name, raw.Logic)
		}
		decl.Logic = fn
	}
	return decl
}

func (l *commandLoader) positionals(name string, n *yaml.Node) []string {
	switch n.Kind {
	case 0:
		return nil
	case yaml.SequenceNode:
		var out []string
		if err := n.Decode(&out); err != nil {
			l.fail(n, "command %q: positionals must be a list of strings", name)
			return nil
		}
		return out
	default:
		l.fail(n, "command %q: positionals must be a list", name)
		return nil
	}
}

func (l *commandLoader) flags(name string, n *yaml.Node) []command.Flag {
	switch n.Kind {
	case 0:
		return nil
	case yaml.MappingNode:
	default:
		l.fail(n, "command %q: flags must be a mapping", name)
		return nil
	}

	var out []command.Flag
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		flagName := strings.TrimLeft(key.Value, "-")

		var raw rawFlag
		if err := value.Decode(&raw); err != nil {
			l.fail(value, "command %q, flag %q: %v", name, flagName, err)
			continue
		}
		out = append(out, command.Flag{
			Name:        flagName,
			Description: raw.Description,
			Type:        command.FlagType(raw.Type),
			Alias:       l.alias(name, flagName, &raw.Alias),
			Default:     raw.Default,
		})
	}
	return out
}

// alias accepts a single string or a list of strings.
func (l *commandLoader) alias(cmd, flag string, n *yaml.Node) []string {
	switch n.Kind {
	case 0:
		return nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil
		}
		if n.Tag != "!!str" {
			l.fail(n, "command %q, flag %q: alias must be a string or a list of strings", cmd, flag)
			return nil
		}
		return []string{n.Value}
	case yaml.SequenceNode:
		out := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				l.fail(item, "command %q, flag %q: when alias is a list, every element must be a string", cmd, flag)
				return nil
			}
			out = append(out, item.Value)
		}
		return out
	default:
		l.fail(n, "command %q, flag %q: alias must be a string or a list of strings", cmd, flag)
		return nil
	}
}
