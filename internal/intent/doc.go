// Package intent runs command logic as a sequence of intents resolved
// against a pattern registry.
//
// Command logic is a Procedure: a resumable producer that yields intent
// values one at a time. The Engine resolves each intent to a handler in the
// registry, invokes it, and resumes the procedure with the handler's result.
// Exactly one intent is in flight per run, and intents are resolved in the
// order they are produced.
//
// # Lifecycle
//
// A run moves through these states:
//
//	Running -> AwaitingResolution -> Running ... -> Done
//	Running | AwaitingResolution -> Recovering -> Done | Failed
//
// An intent that no handler matches resumes the procedure with nil. This
// keeps optional intents cheap, but it also hides typos in intent values;
// enable debug logging to see unresolved intents.
//
// # Errors
//
// When the procedure (or a handler) fails, the error is normalized into a
// *Failure and resolved against the same registry. A matching recovery
// handler absorbs the error and the run completes; otherwise the original
// error is returned unchanged. A recovery handler that fails is not
// recovered again.
//
// # Writing logic
//
// Most commands use Generator, which runs a plain Go function as a
// coroutine:
//
//	logic := intent.Generator(func(y *intent.Yielder, in intent.Input) (any, error) {
//	    data, err := y.Yield(map[string]any{"ns": "io", "op": "read", "path": in.String("path")})
//	    if err != nil {
//	        return nil, err
//	    }
//	    _, err = y.Yield(map[string]any{"ns": "io", "op": "print", "text": data})
//	    return nil, err
//	})
package intent
