package dispatchers

import "strings"

// ParsedFlags gives the router a look at the dash tokens of argv that
// come before "--", without knowing any command's flag set.
type ParsedFlags struct {
	raw []string
}

// NewParsedFlags collects the flag tokens of argv.
func NewParsedFlags(argv []string) *ParsedFlags {
	var raw []string
	for _, tok := range argv {
		if tok == "--" {
			break
		}
		if len(tok) > 1 && strings.HasPrefix(tok, "-") {
			raw = append(raw, tok)
		}
	}
	return &ParsedFlags{raw: raw}
}

// NewCommandFlags collects the dash tokens of args that node does not
// declare itself. The value following one of node's value flags is
// skipped, so "--prefix -h" passes -h to the command.
func NewCommandFlags(node *DispatchNode, args []string) *ParsedFlags {
	claimed := map[string]bool{}
	takesValue := map[string]bool{}
	if node != nil {
		for _, f := range node.Flags {
			for _, name := range f.Names {
				claimed[name] = true
				takesValue[name] = f.ValueHint != ""
			}
		}
	}

	var raw []string
	for i := 0; i < len(args); i++ {
		tok := args[i]
		if tok == "--" {
			break
		}
		if len(tok) < 2 || !strings.HasPrefix(tok, "-") {
			continue
		}
		name, _, inline := strings.Cut(tok, "=")
		if claimed[name] {
			if takesValue[name] && !inline {
				i++
			}
			continue
		}
		raw = append(raw, tok)
	}
	return &ParsedFlags{raw: raw}
}

// Raw returns the underlying flag strings.
func (f *ParsedFlags) Raw() []string {
	return f.raw
}

// Has returns true if the flag is present (for boolean flags).
func (f *ParsedFlags) Has(name string) bool {
	for _, flag := range f.raw {
		if flag == name {
			return true
		}
	}
	return false
}
