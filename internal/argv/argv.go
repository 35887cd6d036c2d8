// Package argv parses command arguments against a per-command flag
// configuration. Declared flags and named positionals become inputs;
// undeclared dash flags and surplus positionals are kept as implicits
// rather than rejected.
package argv

import (
	"strings"
)

// Config describes the flags and positionals of one command.
type Config struct {
	Strings     []string
	Booleans    []string
	Alias       map[string][]string
	Defaults    map[string]any
	Positionals []string
}

// Implicits holds what the command did not declare.
type Implicits struct {
	Flags       ImplicitFlags
	Positionals []string
}

// ImplicitFlags are undeclared dash flags, both as given and parsed
// without any configuration.
type ImplicitFlags struct {
	Raw    []string
	Parsed map[string]any
}

// Parsed is the result of Parse.
type Parsed struct {
	Inputs     map[string]any
	Implicits  Implicits
	Posteriors []string
	Argv       []string
}

type flagKind int

const (
	kindUnknown flagKind = iota
	kindString
	kindBoolean
)

type flagTable struct {
	kinds     map[string]flagKind
	canonical map[string]string
	names     map[string][]string
}

func newFlagTable(cfg Config) flagTable {
	t := flagTable{
		kinds:     map[string]flagKind{},
		canonical: map[string]string{},
		names:     map[string][]string{},
	}
	add := func(name string, kind flagKind) {
		t.kinds[name] = kind
		t.canonical[name] = name
		t.names[name] = []string{name}
		for _, alias := range cfg.Alias[name] {
			t.kinds[alias] = kind
			t.canonical[alias] = name
			t.names[name] = append(t.names[name], alias)
		}
	}
	for _, name := range cfg.Strings {
		add(name, kindString)
	}
	for _, name := range cfg.Booleans {
		add(name, kindBoolean)
	}
	return t
}

// set stores v under the flag's canonical name and every alias.
func (t flagTable) set(inputs map[string]any, name string, v any) {
	for _, n := range t.names[t.canonical[name]] {
		inputs[n] = v
	}
}

// PositionalName strips bracket notation from a positional declaration.
func PositionalName(decl string) string {
	decl = strings.TrimSpace(decl)
	if len(decl) >= 2 {
		if (decl[0] == '<' && decl[len(decl)-1] == '>') || (decl[0] == '[' && decl[len(decl)-1] == ']') {
			return decl[1 : len(decl)-1]
		}
	}
	return decl
}

// Parse splits args per cfg. It never fails: anything it cannot place
// ends up in Implicits.
func Parse(args []string, cfg Config) Parsed {
	table := newFlagTable(cfg)
	inputs := map[string]any{}
	var raw, positionals, posteriors []string

	for _, name := range cfg.Booleans {
		table.set(inputs, name, false)
	}
	for name, v := range cfg.Defaults {
		if _, ok := table.kinds[name]; ok {
			table.set(inputs, name, v)
		} else {
			inputs[name] = v
		}
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--":
			posteriors = append(posteriors, args[i+1:]...)
			i = len(args)

		case strings.HasPrefix(arg, "--") && len(arg) > 2:
			body := arg[2:]
			name, value, hasValue := strings.Cut(body, "=")

			if kind, ok := table.kinds[name]; ok {
				switch {
				case hasValue && kind == kindBoolean:
					table.set(inputs, name, value != "false")
				case hasValue:
					table.set(inputs, name, value)
				case kind == kindBoolean:
					table.set(inputs, name, true)
				case i+1 < len(args) && !isFlag(args[i+1]):
					table.set(inputs, name, args[i+1])
					i++
				default:
					table.set(inputs, name, "")
				}
				continue
			}

			if neg, ok := strings.CutPrefix(name, "no-"); ok && !hasValue && table.kinds[neg] == kindBoolean {
				table.set(inputs, neg, false)
				continue
			}
			raw = append(raw, arg)

		case strings.HasPrefix(arg, "-") && len(arg) > 1 && arg != "-":
			i = parseShort(args, i, table, inputs, &raw)

		default:
			positionals = append(positionals, arg)
		}
	}

	for ix, decl := range cfg.Positionals {
		if ix < len(positionals) {
			inputs[PositionalName(decl)] = positionals[ix]
		}
	}
	var extra []string
	if len(positionals) > len(cfg.Positionals) {
		extra = positionals[len(cfg.Positionals):]
	}

	return Parsed{
		Inputs: inputs,
		Implicits: Implicits{
			Flags: ImplicitFlags{
				Raw:    raw,
				Parsed: ParseImplicit(raw),
			},
			Positionals: extra,
		},
		Posteriors: posteriors,
		Argv:       args,
	}
}

// parseShort handles one -abc token and returns the index of the last
// argument consumed.
func parseShort(args []string, i int, table flagTable, inputs map[string]any, raw *[]string) int {
	arg := args[i]
	letters := arg[1:]
	var unknown []byte

	for j := 0; j < len(letters); j++ {
		name := letters[j : j+1]
		kind, ok := table.kinds[name]
		if !ok {
			unknown = append(unknown, letters[j])
			continue
		}
		if kind == kindBoolean {
			table.set(inputs, name, true)
			continue
		}

		rest := letters[j+1:]
		switch {
		case strings.HasPrefix(rest, "="):
			table.set(inputs, name, rest[1:])
		case rest != "":
			table.set(inputs, name, rest)
		case i+1 < len(args) && !isFlag(args[i+1]):
			table.set(inputs, name, args[i+1])
			i++
		default:
			table.set(inputs, name, "")
		}
		break
	}

	if len(unknown) > 0 {
		*raw = append(*raw, "-"+string(unknown))
	}
	return i
}

// ParseImplicit parses flags with no configuration: --name=value gives a
// string, anything else is true, and -abc sets a, b and c.
func ParseImplicit(raw []string) map[string]any {
	out := make(map[string]any, len(raw))
	for _, arg := range raw {
		if body, ok := strings.CutPrefix(arg, "--"); ok {
			name, value, hasValue := strings.Cut(body, "=")
			switch {
			case hasValue:
				out[name] = value
			case strings.HasPrefix(name, "no-"):
				out[name[3:]] = false
			default:
				out[name] = true
			}
			continue
		}
		for _, r := range strings.TrimPrefix(arg, "-") {
			out[string(r)] = true
		}
	}
	return out
}

func isFlag(s string) bool {
	return len(s) > 1 && s[0] == '-'
}
