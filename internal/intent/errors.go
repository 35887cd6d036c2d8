package intent

import "errors"

var (
	// ErrNoLogic indicates a run was started without command logic.
	ErrNoLogic = errors.New("intent: no command logic")

	// ErrStopped is returned from Yielder.Yield once the engine has
	// abandoned the procedure.
	ErrStopped = errors.New("intent: procedure stopped")

	// ErrProcedurePanic indicates the command logic panicked.
	ErrProcedurePanic = errors.New("intent: procedure panic")

	// ErrHandlerPanic indicates an intent handler panicked.
	ErrHandlerPanic = errors.New("intent: handler panic")

	// ErrHalted marks errors that end a run without consulting recovery
	// handlers.
	ErrHalted = errors.New("intent: run halted")
)

type haltError struct {
	err error
}

func (h *haltError) Error() string { return h.err.Error() }

func (h *haltError) Unwrap() []error { return []error{h.err, ErrHalted} }

// Halt wraps err so the engine ends the run with it unchanged. Exit
// requests use it; a catch-all recovery must not absorb them.
func Halt(err error) error {
	if err == nil {
		return nil
	}
	return &haltError{err: err}
}
