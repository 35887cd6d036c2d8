package dispatchers

import "errors"

var (
	// ErrProgramRunning is returned when a command is registered after
	// the program started executing.
	ErrProgramRunning = errors.New("dispatchers: program already running")

	// ErrDuplicateCommand is returned when a path is registered twice.
	ErrDuplicateCommand = errors.New("dispatchers: duplicate command")

	// ErrMissingParent is returned when a path's parent branch is not
	// registered yet.
	ErrMissingParent = errors.New("dispatchers: missing parent branch")

	// ErrNoAction is returned when a leaf is registered without an action.
	ErrNoAction = errors.New("dispatchers: command has no action")

	// ErrEmptyPath is returned for a registration without a name.
	ErrEmptyPath = errors.New("dispatchers: empty command path")
)
