package command

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/cto-ai/clif/internal/argv"
	"github.com/cto-ai/clif/internal/dispatchers"
	"github.com/cto-ai/clif/internal/intent"
	"github.com/cto-ai/clif/internal/pattern"
	"github.com/cto-ai/clif/internal/usage"
)

// Options configures Compose.
type Options struct {
	Root dispatchers.RootSpec

	// Engine runs every leaf. A nil Engine gets an empty registry.
	Engine *intent.Engine

	// Settings is handed to every handler as is.
	Settings any

	Program []dispatchers.ProgramOption
}

// Compose walks tree depth-first and registers every valid leaf on a new
// program. Invalid nodes are left out and reported together in a
// *StructuralError once the walk is complete; the program is returned
// only when the tree has no problems.
func Compose(tree Tree, opts Options) (*dispatchers.Program, error) {
	if opts.Engine == nil {
		opts.Engine = intent.New(pattern.New())
	}
	c := &composer{
		opts:    opts,
		program: dispatchers.NewProgram(opts.Root, opts.Program...),
	}
	c.walk(tree, nil, true)

	if len(c.errs) > 0 {
		return nil, &StructuralError{Errs: c.errs}
	}
	return c.program, nil
}

type composer struct {
	opts    Options
	program *dispatchers.Program
	errs    []error
}

func (c *composer) fail(path []string, field, format string, args ...any) {
	c.errs = append(c.errs, &DeclarationError{
		Command: strings.Join(path, " "),
		Field:   field,
		Msg:     fmt.Sprintf(format, args...),
	})
}

// walk visits children in name order. Nodes below an invalid branch are
// still validated but never registered.
func (c *composer) walk(tree Tree, parent []string, register bool) {
	for _, name := range slices.Sorted(maps.Keys(tree)) {
		path := append(slices.Clone(parent), name)

		if name == "" || strings.ContainsAny(name, " :") || strings.HasPrefix(name, "-") {
			c.fail(path, "", "invalid command name %q", name)
			continue
		}

		switch n := tree[name].(type) {
		case *Declaration:
			c.leaf(path, n, register)
		case *Branch:
			c.branch(path, n, register)
		default:
			c.fail(path, "", "expected a command declaration or branch, got %T", n)
		}
	}
}

func (c *composer) branch(path []string, b *Branch, register bool) {
	if b == nil {
		c.fail(path, "", "branch is nil")
		return
	}
	if strings.TrimSpace(b.Description) == "" {
		c.fail(path, "description", "branch must have a non-empty description")
		register = false
	}
	if register {
		if _, err := c.program.Group(dispatchers.GroupSpec{Path: path, Summary: b.Description}); err != nil {
			c.errs = append(c.errs, err)
			register = false
		}
	}
	c.walk(b.Tree, path, register)
}

func (c *composer) leaf(path []string, decl *Declaration, register bool) {
	if errs := Validate(strings.Join(path, " "), decl); len(errs) > 0 {
		c.errs = append(c.errs, errs...)
		return
	}
	if !register {
		return
	}

	spec := dispatchers.CommandSpec{
		Path:     path,
		Summary:  decl.Description,
		Usage:    UsageLine(c.opts.Root.Name, path, decl),
		Flags:    FlagDescriptors(decl.Flags),
		Args:     argSpecs(decl.Positionals),
		Action:   c.action(path, decl),
		Category: decl.Category,
	}
	if _, err := c.program.Command(spec); err != nil {
		c.errs = append(c.errs, err)
	}
}

func (c *composer) action(path []string, decl *Declaration) dispatchers.CommandFunc {
	cfg := ArgvConfig(decl)
	var required []string
	for _, raw := range decl.Positionals {
		if p := parsePositional(raw); p.Required {
			required = append(required, p.Name)
		}
	}

	return func(ctx context.Context, args []string) error {
		parsed := argv.Parse(args, cfg)
		for _, name := range required {
			if _, ok := parsed.Inputs[name]; !ok {
				return usage.MissingArgument(name)
			}
		}
		_, err := c.opts.Engine.Run(ctx, decl.Logic, intent.Input{
			Command:    path,
			Inputs:     parsed.Inputs,
			Settings:   c.opts.Settings,
			Implicits:  parsed.Implicits,
			Posteriors: parsed.Posteriors,
			Argv:       parsed.Argv,
		})
		return err
	}
}

// ArgvConfig derives the argument parser configuration of decl.
func ArgvConfig(decl *Declaration) argv.Config {
	cfg := argv.Config{
		Alias:       map[string][]string{},
		Defaults:    map[string]any{},
		Positionals: slices.Clone(decl.Positionals),
	}
	for _, f := range decl.Flags {
		switch f.Type {
		case FlagBoolean:
			cfg.Booleans = append(cfg.Booleans, f.Name)
		default:
			cfg.Strings = append(cfg.Strings, f.Name)
		}
		if len(f.Alias) > 0 {
			cfg.Alias[f.Name] = slices.Clone(f.Alias)
		}
		if f.Default != nil {
			cfg.Defaults[f.Name] = f.Default
		}
	}
	return cfg
}

// FlagDescriptors renders flags for help output.
func FlagDescriptors(flags []Flag) []dispatchers.FlagDescriptor {
	out := make([]dispatchers.FlagDescriptor, 0, len(flags))
	for _, f := range flags {
		d := dispatchers.FlagDescriptor{Description: f.Description}
		for _, n := range f.Names() {
			d.Names = append(d.Names, dashed(n))
		}
		if f.Type == FlagString {
			d.ValueHint = "<" + f.Name + ">"
		}
		if f.Default != nil && f.Default != false && f.Default != "" {
			d.Default = fmt.Sprint(f.Default)
		}
		out = append(out, d)
	}
	return out
}

func dashed(name string) string {
	if len(name) == 1 {
		return "-" + name
	}
	return "--" + name
}

func argSpecs(decls []string) []dispatchers.ArgSpec {
	out := make([]dispatchers.ArgSpec, 0, len(decls))
	for _, raw := range decls {
		p := parsePositional(raw)
		out = append(out, dispatchers.ArgSpec{Name: p.Name, Required: p.Required})
	}
	return out
}

// UsageLine builds "<program> <path> [flags] <required> [optional]".
func UsageLine(program string, path []string, decl *Declaration) string {
	parts := append([]string{program}, path...)
	if len(decl.Flags) > 0 {
		parts = append(parts, "[flags]")
	}
	for _, raw := range decl.Positionals {
		p := parsePositional(raw)
		if p.Required {
			parts = append(parts, "<"+p.Name+">")
		} else {
			parts = append(parts, "["+p.Name+"]")
		}
	}
	return strings.Join(parts, " ")
}
