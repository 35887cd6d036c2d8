package intent

import (
	"context"
	"iter"

	"github.com/cto-ai/clif/internal/argv"
)

// Input is what command logic receives when a run starts.
type Input struct {
	Command    []string
	Inputs     map[string]any
	Settings   any
	Implicits  argv.Implicits
	Posteriors []string
	Argv       []string
}

// String returns the named input as a string, or "" if absent.
func (in Input) String(name string) string {
	if v, ok := in.Inputs[name].(string); ok {
		return v
	}
	return ""
}

// Bool returns the named input as a bool.
func (in Input) Bool(name string) bool {
	v, _ := in.Inputs[name].(bool)
	return v
}

// Has reports whether the named input was provided or defaulted.
func (in Input) Has(name string) bool {
	v, ok := in.Inputs[name]
	return ok && v != nil
}

// Yield is one step of a procedure: either an intent to resolve or
// completion with a final value.
type Yield struct {
	Intent any
	Done   bool
	Value  any
}

// Procedure is resumable command logic. Step receives the resolved value
// of the previous intent (nil on the first call) and returns the next
// intent or completion. A returned error is a raise.
type Procedure interface {
	Step(ctx context.Context, resume any) (Yield, error)
	// Stop releases the procedure. It is safe to call more than once and
	// after completion.
	Stop()
}

// Logic starts a procedure for one run.
type Logic func(in Input) (Procedure, error)

// StepFunc adapts a function to a Procedure with no cleanup.
type StepFunc func(ctx context.Context, resume any) (Yield, error)

func (f StepFunc) Step(ctx context.Context, resume any) (Yield, error) {
	return f(ctx, resume)
}

func (f StepFunc) Stop() {}

// Yielder is the suspension handle given to generator functions.
type Yielder struct {
	yield  func(any) bool
	resume any
	ctx    context.Context
}

// Yield suspends until the engine resolves intent and returns the
// resolved value. It returns ErrStopped if the run was abandoned; the
// generator should return promptly.
func (y *Yielder) Yield(intent any) (any, error) {
	if !y.yield(intent) {
		return nil, ErrStopped
	}
	return y.resume, nil
}

// Context returns the context of the step that resumed the generator.
func (y *Yielder) Context() context.Context {
	if y.ctx == nil {
		return context.Background()
	}
	return y.ctx
}

// GeneratorFunc is command logic written as straight-line Go.
type GeneratorFunc func(y *Yielder, in Input) (any, error)

// Generator runs fn as a coroutine. Each call to Yielder.Yield hands one
// intent to the engine and blocks until the resolved value comes back;
// the two sides never run at the same time.
func Generator(fn GeneratorFunc) Logic {
	return func(in Input) (Procedure, error) {
		g := &generator{y: &Yielder{}}
		seq := func(yield func(any) bool) {
			g.y.yield = yield
			g.value, g.err = fn(g.y, in)
		}
		g.next, g.stop = iter.Pull(seq)
		return g, nil
	}
}

type generator struct {
	y     *Yielder
	next  func() (any, bool)
	stop  func()
	value any
	err   error
}

func (g *generator) Step(ctx context.Context, resume any) (Yield, error) {
	g.y.resume = resume
	g.y.ctx = ctx
	intent, ok := g.next()
	if !ok {
		if g.err != nil {
			return Yield{}, g.err
		}
		return Yield{Done: true, Value: g.value}, nil
	}
	return Yield{Intent: intent}, nil
}

func (g *generator) Stop() {
	g.stop()
}

// Sequence yields intents in order and completes with the resolved values.
func Sequence(intents ...any) Logic {
	return func(Input) (Procedure, error) {
		i := 0
		results := make([]any, 0, len(intents))
		return StepFunc(func(_ context.Context, resume any) (Yield, error) {
			if i > 0 {
				results = append(results, resume)
			}
			if i == len(intents) {
				return Yield{Done: true, Value: results}, nil
			}
			next := intents[i]
			i++
			return Yield{Intent: next}, nil
		}), nil
	}
}
