package intent

import (
	"errors"
	"fmt"
	"maps"

	"github.com/cto-ai/clif/internal/pattern"
)

// DefaultNamespace is the namespace given to failures that do not name one.
const DefaultNamespace = "failure"

// Failure is the normalized shape of a raised error: a namespace, a
// message and any extra fields. Recovery patterns match against Fields.
type Failure struct {
	NS      string
	Message string
	Extra   map[string]any

	cause error
}

// Fail builds a Failure from structural fields. A "message" field takes
// precedence over message; a missing "ns" defaults to DefaultNamespace.
func Fail(fields map[string]any, message string) *Failure {
	f := &Failure{NS: DefaultNamespace, Message: message, Extra: map[string]any{}}
	for k, v := range fields {
		switch k {
		case "ns":
			if s, ok := v.(string); ok && s != "" {
				f.NS = s
			}
		case "message":
			if s, ok := v.(string); ok && s != "" {
				f.Message = s
			}
		default:
			f.Extra[k] = v
		}
	}
	return f
}

// Failf builds a Failure in the default namespace.
func Failf(format string, args ...any) *Failure {
	return Fail(nil, fmt.Sprintf(format, args...))
}

// Wrap returns a copy of f that unwraps to cause.
func (f *Failure) Wrap(cause error) *Failure {
	out := *f
	out.Extra = maps.Clone(f.Extra)
	out.cause = cause
	return &out
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.cause
}

// Fields returns the structural view used for matching.
func (f *Failure) Fields() map[string]any {
	out := make(map[string]any, len(f.Extra)+2)
	maps.Copy(out, f.Extra)
	out["ns"] = f.NS
	out["message"] = f.Message
	return out
}

// AsFailure normalizes err. A *Failure anywhere in the chain is returned
// as is; errors exposing fields keep them; anything else becomes a
// failure in the default namespace carrying the error text.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}

	var f *Failure
	if errors.As(err, &f) {
		return f
	}

	if fe, ok := err.(pattern.Fielder); ok {
		out := Fail(fe.Fields(), err.Error())
		out.cause = err
		return out
	}

	return &Failure{
		NS:      DefaultNamespace,
		Message: err.Error(),
		Extra:   map[string]any{},
		cause:   err,
	}
}

var _ pattern.Fielder = (*Failure)(nil)
