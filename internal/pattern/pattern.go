// Package pattern matches structural values against partially specified
// templates.
//
// A Pattern matches a candidate when every key of the pattern is present in
// the candidate with a structurally equal value. Nested maps recurse; the
// candidate may carry any number of extra keys.
package pattern

import (
	"reflect"
)

// Pattern is a partially specified structural value.
type Pattern map[string]any

// Fielder is implemented by values that expose a structural view of
// themselves for matching (errors, typed intents).
type Fielder interface {
	Fields() map[string]any
}

// Fields returns the structural view of v, or false if v cannot be matched.
func Fields(v any) (map[string]any, bool) {
	switch c := v.(type) {
	case nil:
		return nil, false
	case Pattern:
		return c, true
	case map[string]any:
		return c, true
	case Fielder:
		f := c.Fields()
		return f, f != nil
	default:
		return nil, false
	}
}

// Match reports whether candidate satisfies p.
func Match(p Pattern, candidate any) bool {
	fields, ok := Fields(candidate)
	if !ok {
		return false
	}
	return matchFields(p, fields)
}

func matchFields(p map[string]any, fields map[string]any) bool {
	for key, want := range p {
		got, ok := fields[key]
		if !ok {
			return false
		}
		if !matchValue(want, got) {
			return false
		}
	}
	return true
}

func matchValue(want, got any) bool {
	if nested, ok := asMap(want); ok {
		sub, ok := Fields(got)
		if !ok {
			return false
		}
		return matchFields(nested, sub)
	}
	if a, ok := toFloat(want); ok {
		if b, ok := toFloat(got); ok {
			return a == b
		}
		return false
	}
	return reflect.DeepEqual(want, got)
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Pattern:
		return m, true
	case map[string]any:
		return m, true
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Specificity returns the number of leaf values in p and its maximum
// nesting depth. Higher values are more specific.
func Specificity(p Pattern) (leaves, depth int) {
	return specificity(p, 1)
}

func specificity(p map[string]any, level int) (leaves, depth int) {
	depth = level
	for _, v := range p {
		if nested, ok := asMap(v); ok && len(nested) > 0 {
			l, d := specificity(nested, level+1)
			leaves += l
			if d > depth {
				depth = d
			}
			continue
		}
		leaves++
	}
	return leaves, depth
}

// Clone returns a deep copy of p. Nested maps are copied; leaf values are
// shared.
func Clone(p Pattern) Pattern {
	if p == nil {
		return nil
	}
	out := make(Pattern, len(p))
	for k, v := range p {
		if nested, ok := asMap(v); ok {
			out[k] = map[string]any(Clone(nested))
			continue
		}
		out[k] = v
	}
	return out
}
