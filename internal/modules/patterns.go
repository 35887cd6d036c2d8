package modules

import (
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/cto-ai/clif/internal/pattern"
)

// Binding pairs a named pattern with the handler of the same name.
type Binding struct {
	Name    string
	Pattern pattern.Pattern
	Handler pattern.Handler
}

// LoadPatterns decodes a pattern manifest of the form
//
//	patterns:
//	  print: {ns: io, cmd: print}
//
// and pairs every pattern with the same-named handler. A pattern without
// a handler, a handler without a pattern and a nil handler are all
// errors. Bindings keep document order.
func LoadPatterns(module string, data []byte, handlers map[string]pattern.Handler) ([]Binding, []error) {
	var errs []error
	fail := func(line int, format string, args ...any) {
		errs = append(errs, &ModuleError{Module: module, Line: line, Msg: fmt.Sprintf(format, args...)})
	}

	var doc struct {
		Patterns yaml.Node `yaml:"patterns"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, []error{&ModuleError{Module: module, Msg: err.Error()}}
	}
	if doc.Patterns.Kind != yaml.MappingNode {
		return nil, []error{&ModuleError{Module: module, Line: doc.Patterns.Line, Msg: "patterns must be a mapping of names to patterns"}}
	}

	var bindings []Binding
	seen := map[string]bool{}
	n := &doc.Patterns
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		name := key.Value
		seen[name] = true

		var p map[string]any
		if value.Kind != yaml.MappingNode {
			fail(value.Line, "pattern %q must be a mapping", name)
			continue
		}
		if err := value.Decode(&p); err != nil {
			fail(value.Line, "pattern %q: %v", name, err)
			continue
		}

		h, ok := handlers[name]
		switch {
		case !ok:
			fail(key.Line, "pattern %q must have a corresponding handler of the same name", name)
			continue
		case h == nil:
			fail(key.Line, "handler %q must be a function", name)
			continue
		}
		bindings = append(bindings, Binding{Name: name, Pattern: p, Handler: h})
	}

	for _, name := range slices.Sorted(maps.Keys(handlers)) {
		if !seen[name] {
			fail(0, "handler %q must have a corresponding pattern of the same name", name)
		}
	}
	return bindings, errs
}

// Register binds every binding on reg in order.
func Register(reg *pattern.Registry, bindings []Binding) {
	for _, b := range bindings {
		reg.Bind(b.Name, b.Pattern, b.Handler)
	}
}
