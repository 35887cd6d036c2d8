package usage

import (
	"fmt"
	"strings"
)

// UnknownCommand is returned when argv matches no command.
func UnknownCommand(command string, suggestions ...string) *Error {
	msg := fmt.Sprintf("%s: '%s' is not a %s command. See '%s --help'.", ProgramName, command, ProgramName, ProgramName)
	if len(suggestions) > 0 {
		msg += "\n\nThe most similar commands are:\n\t" + strings.Join(suggestions, "\n\t")
	}
	return &Error{Kind: ErrUnknownCommand, Message: msg}
}

// InvalidFlag is returned when a flag is not valid in the current context.
func InvalidFlag(flag string) *Error {
	return &Error{
		Kind:    ErrInvalidFlag,
		Message: fmt.Sprintf("%s: invalid flag '%s'", ProgramName, flag),
	}
}

// MissingArgument is returned when a required argument is not provided.
func MissingArgument(arg string) *Error {
	return &Error{
		Kind:    ErrMissingArgument,
		Message: fmt.Sprintf("%s: missing required argument '%s'", ProgramName, arg),
	}
}

// InvalidSettingKey is returned for settings keys that do not exist.
func InvalidSettingKey(key string) *Error {
	return &Error{
		Kind:    ErrInvalidSettingKey,
		Message: fmt.Sprintf("%s: unknown setting '%s'. See '%s config list'.", ProgramName, key, ProgramName),
	}
}

// InvalidDeclaration wraps the structural errors found while building
// the command tree.
func InvalidDeclaration(cause error) *Error {
	return &Error{
		Kind:    ErrInvalidDeclaration,
		Message: fmt.Sprintf("%s: invalid command declarations:\n%v", ProgramName, cause),
		cause:   cause,
	}
}

// Exit asks the process to exit with code.
func Exit(code int) *Error {
	return &Error{
		Kind:     ErrExitRequested,
		Message:  fmt.Sprintf("exit status %d", code),
		ExitCode: code,
	}
}

// Interrupted is returned when the run was cancelled by a signal.
func Interrupted(cause error) *Error {
	return &Error{
		Kind:    ErrInterrupted,
		Message: fmt.Sprintf("%s: interrupted", ProgramName),
		cause:   cause,
	}
}
