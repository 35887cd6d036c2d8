package command

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDeclaration is matched by every *DeclarationError.
var ErrInvalidDeclaration = errors.New("invalid command declaration")

// DeclarationError is one structural problem of one command.
type DeclarationError struct {
	Command string
	Field   string
	Msg     string
}

func (e *DeclarationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Command, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Command, e.Field, e.Msg)
}

func (e *DeclarationError) Unwrap() error {
	return ErrInvalidDeclaration
}

// StructuralError aggregates every problem found while composing a tree.
type StructuralError struct {
	Errs []error
}

func (e *StructuralError) Error() string {
	lines := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		lines[i] = err.Error()
	}
	return strings.Join(lines, "\n")
}

func (e *StructuralError) Unwrap() []error {
	return e.Errs
}
