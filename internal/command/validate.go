package command

import (
	"fmt"
	"strings"
)

// Validate reports every structural problem of decl. It never panics and
// returns nil for a valid declaration.
func Validate(name string, decl *Declaration) []error {
	var errs []error
	fail := func(field, format string, args ...any) {
		errs = append(errs, &DeclarationError{Command: name, Field: field, Msg: fmt.Sprintf(format, args...)})
	}

	if decl == nil {
		fail("", "declaration is nil")
		return errs
	}
	if decl.Logic == nil {
		fail("logic", "must be a resumable procedure")
	}
	if strings.TrimSpace(decl.Description) == "" {
		fail("description", "must be a non-empty string")
	}

	validatePositionals(decl.Positionals, fail)
	validateFlags(decl.Flags, fail)
	return errs
}

func validatePositionals(decls []string, fail func(field, format string, args ...any)) {
	seen := map[string]bool{}
	optional := false
	for i, raw := range decls {
		field := fmt.Sprintf("positionals[%d]", i)
		if !balanced(raw) {
			fail(field, "malformed positional %q", raw)
			continue
		}
		p := parsePositional(raw)
		if p.Name == "" {
			fail(field, "positional name must not be empty")
			continue
		}
		if strings.ContainsAny(p.Name, "<>[] ") {
			fail(field, "malformed positional %q", raw)
			continue
		}
		if seen[p.Name] {
			fail(field, "duplicate positional %q", p.Name)
		}
		seen[p.Name] = true
		if p.Required && optional {
			fail(field, "required positional %q follows an optional one", p.Name)
		}
		optional = optional || !p.Required
	}
}

func balanced(s string) bool {
	opensAngle, closesAngle := strings.HasPrefix(s, "<"), strings.HasSuffix(s, ">")
	opensSquare, closesSquare := strings.HasPrefix(s, "["), strings.HasSuffix(s, "]")
	return opensAngle == closesAngle && opensSquare == closesSquare && !(opensAngle && closesSquare) && !(opensSquare && closesAngle)
}

func validateFlags(flags []Flag, fail func(field, format string, args ...any)) {
	seen := map[string]string{}
	for i, f := range flags {
		field := fmt.Sprintf("flags[%d]", i)
		if f.Name != "" {
			field = "--" + f.Name
		}

		if f.Name == "" || strings.HasPrefix(f.Name, "-") || strings.ContainsAny(f.Name, " =") {
			fail(field, "invalid flag name %q", f.Name)
		}
		if strings.TrimSpace(f.Description) == "" {
			fail(field, "description must be a non-empty string")
		}
		switch f.Type {
		case FlagString:
			if _, ok := f.Default.(string); f.Default != nil && !ok {
				fail(field, "default %v is not a string", f.Default)
			}
		case FlagBoolean:
			if _, ok := f.Default.(bool); f.Default != nil && !ok {
				fail(field, "default %v is not a boolean", f.Default)
			}
		default:
			fail(field, "type must be %q or %q, got %q", FlagString, FlagBoolean, f.Type)
		}

		for j, alias := range f.Alias {
			if strings.TrimSpace(alias) == "" || strings.HasPrefix(alias, "-") {
				fail(field, "alias[%d] must be a non-empty name", j)
			}
		}
		for _, n := range f.Names() {
			if n == "" {
				continue
			}
			if owner, dup := seen[n]; dup {
				fail(field, "name %q already used by --%s", n, owner)
				continue
			}
			seen[n] = f.Name
		}
	}
}
