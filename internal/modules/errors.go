// Package modules loads command trees and pattern bindings from YAML
// manifests and binds them, by name, to Go logic and handlers.
package modules

import (
	"errors"
	"fmt"
)

// ErrInvalidModule is matched by every *ModuleError.
var ErrInvalidModule = errors.New("invalid module")

// ModuleError is one shape violation in a manifest.
type ModuleError struct {
	Module string
	Line   int
	Msg    string
}

func (e *ModuleError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("module %s:%d: %s", e.Module, e.Line, e.Msg)
	}
	return fmt.Sprintf("module %s: %s", e.Module, e.Msg)
}

func (e *ModuleError) Unwrap() error {
	return ErrInvalidModule
}
