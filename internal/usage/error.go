package usage

import "errors"

// ProgramName prefixes every usage message.
var ProgramName = "clif"

// ErrorKind represents the type of usage error.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrInvalidFlag
	ErrMissingArgument
	ErrUnknownCommand
	ErrInvalidSettingKey
	ErrInvalidDeclaration
	ErrExitRequested
	ErrInterrupted
)

// Exit codes:
//
//	Exit 1: Environment/system errors
//	  - Unknown errors
//	  - Unknown command
//	  - Invalid setting key
//	  - Invalid command declarations
//
//	Exit 2: User input errors
//	  - Invalid flag
//	  - Missing argument
//
//	Exit 130: Interrupted (SIGINT)
//
// ErrExitRequested carries the code the command asked for.
var exitCodes = map[ErrorKind]int{
	ErrUnknown:            1,
	ErrInvalidFlag:        2,
	ErrMissingArgument:    2,
	ErrUnknownCommand:     1,
	ErrInvalidSettingKey:  1,
	ErrInvalidDeclaration: 1,
	ErrInterrupted:        130,
}

// Error represents a user-facing usage error with semantic type information.
type Error struct {
	Kind     ErrorKind
	Message  string
	ExitCode int // computed from Kind if zero

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// GetExitCode returns the appropriate exit code for this error.
// If ExitCode is explicitly set, it is returned; otherwise, the code is derived from Kind.
func (e *Error) GetExitCode() int {
	if e.ExitCode != 0 || e.Kind == ErrExitRequested {
		return e.ExitCode
	}
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return 1
}

// ExitCode returns the exit status for err: the usage code when err is
// or wraps an *Error, 1 for any other error and 0 for nil.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue *Error
	if errors.As(err, &ue) {
		return ue.GetExitCode()
	}
	return 1
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
