// Package command declares command trees and composes them into a
// routable program.
package command

import (
	"github.com/cto-ai/clif/internal/argv"
	"github.com/cto-ai/clif/internal/dispatchers"
	"github.com/cto-ai/clif/internal/intent"
)

// FlagType is the value kind of a flag.
type FlagType string

const (
	FlagString  FlagType = "string"
	FlagBoolean FlagType = "boolean"
)

// Flag declares one named flag of a command.
type Flag struct {
	Name        string
	Description string
	Type        FlagType
	Alias       []string
	Default     any
}

// Node is either a *Declaration (leaf) or a *Branch.
type Node interface {
	node()
}

// Declaration describes an executable command.
//
// Positionals use bracket notation: "<name>" is required, "[name]" is
// optional and a bare name is required.
type Declaration struct {
	Description string
	Positionals []string
	Logic       intent.Logic
	Flags       []Flag
	Category    dispatchers.CommandCategory
}

// Branch groups subcommands under a shared name.
type Branch struct {
	Description string
	Tree        Tree
}

// Tree maps command names to nodes.
type Tree map[string]Node

func (*Declaration) node() {}
func (*Branch) node()      {}

// Names returns the flag name followed by its aliases.
func (f Flag) Names() []string {
	return append([]string{f.Name}, f.Alias...)
}

// positional is one parsed positional declaration.
type positional struct {
	Name     string
	Required bool
}

func parsePositional(decl string) positional {
	if len(decl) >= 2 && decl[0] == '[' && decl[len(decl)-1] == ']' {
		return positional{Name: decl[1 : len(decl)-1]}
	}
	return positional{Name: argv.PositionalName(decl), Required: true}
}
