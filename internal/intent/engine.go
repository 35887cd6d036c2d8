package intent

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cto-ai/clif/internal/domain"
	"github.com/cto-ai/clif/internal/log"
	"github.com/cto-ai/clif/internal/pattern"
)

// Journal records runs. Journal failures are logged and never affect the
// outcome of a run.
type Journal interface {
	Begin(ctx context.Context, run Run) error
	Step(ctx context.Context, run uuid.UUID, step StepRecord) error
	Finish(ctx context.Context, run uuid.UUID, outcome Outcome, err error) error
}

// Run identifies one execution of command logic.
type Run struct {
	ID      uuid.UUID
	Command []string
	Started time.Time
}

// StepRecord describes one resolved intent.
type StepRecord struct {
	Seq      int
	Intent   any
	Handler  string
	Resolved bool
	Err      error
}

// Outcome is the terminal result of a run.
type Outcome struct {
	RunID     uuid.UUID
	State     State
	Value     any
	Recovered bool
	Failure   *Failure
	Steps     int
}

// Engine drives command logic against a registry.
type Engine struct {
	registry *pattern.Registry
	logger   domain.Logger
	journal  Journal
	newID    func() uuid.UUID
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l domain.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithJournal records every run in j.
func WithJournal(j Journal) Option {
	return func(e *Engine) {
		e.journal = j
	}
}

// WithIDGenerator overrides run ID generation.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// New creates an engine resolving against registry.
func New(registry *pattern.Registry, opts ...Option) *Engine {
	e := &Engine{
		registry: registry,
		logger:   log.NopLogger{},
		newID:    uuid.New,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the registry the engine resolves against.
func (e *Engine) Registry() *pattern.Registry {
	return e.registry
}

// Run executes logic to completion. It returns an error only when the run
// ends Failed; a recovered error yields a Done outcome with Recovered set.
func (e *Engine) Run(ctx context.Context, logic Logic, in Input) (Outcome, error) {
	r := &runState{
		Run: Run{ID: e.newID(), Command: in.Command, Started: e.now()},
	}
	name := strings.Join(in.Command, " ")
	e.logger.Debug("intent: run %s started (%s)", r.ID, name)
	if e.journal != nil {
		if err := e.journal.Begin(ctx, r.Run); err != nil {
			e.logger.Warn("intent: journal begin failed: %v", err)
		}
	}

	value, err := e.drive(ctx, r, logic, in)

	var out Outcome
	if err == nil {
		r.to(Done)
		out = Outcome{RunID: r.ID, State: Done, Value: value, Steps: r.steps}
	} else {
		out, err = e.recoverFrom(ctx, r, err, in.Settings)
	}

	e.logger.Debug("intent: run %s finished: %s after %d steps", r.ID, out.State, out.Steps)
	if e.journal != nil {
		if jerr := e.journal.Finish(context.WithoutCancel(ctx), r.ID, out, err); jerr != nil {
			e.logger.Warn("intent: journal finish failed: %v", jerr)
		}
	}
	return out, err
}

type runState struct {
	Run
	machine
	steps int
}

func (e *Engine) drive(ctx context.Context, r *runState, logic Logic, in Input) (any, error) {
	if logic == nil {
		return nil, ErrNoLogic
	}

	proc, err := start(logic, in)
	if err != nil {
		return nil, err
	}
	defer proc.Stop()

	var resume any
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		y, err := step(ctx, proc, resume)
		if err != nil {
			return nil, err
		}
		if y.Done {
			return y.Value, nil
		}

		r.to(AwaitingResolution)
		r.steps++
		resume, err = e.resolve(ctx, r, y.Intent, in.Settings)
		if err != nil {
			return nil, err
		}
		r.to(Running)
	}
}

// resolve invokes the first callable handler matching value. No match
// resumes with nil.
func (e *Engine) resolve(ctx context.Context, r *runState, value any, settings any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec := StepRecord{Seq: r.steps, Intent: value}
	var result any
	for entry := range e.registry.ResolveAll(value) {
		if entry.Handler == nil {
			continue
		}
		rec.Resolved = true
		rec.Handler = entry.Name
		result, rec.Err = invoke(ctx, entry.Handler, value, settings)
		break
	}

	if !rec.Resolved {
		e.logger.Debug("intent: run %s: unresolved intent %v", r.ID, value)
	}
	if e.journal != nil {
		if err := e.journal.Step(ctx, r.ID, rec); err != nil {
			e.logger.Warn("intent: journal step failed: %v", err)
		}
	}
	if rec.Err != nil {
		return nil, rec.Err
	}
	return result, nil
}

func (e *Engine) recoverFrom(ctx context.Context, r *runState, raised error, settings any) (Outcome, error) {
	r.to(Recovering)
	failure := AsFailure(raised)
	out := Outcome{RunID: r.ID, Failure: failure, Steps: r.steps}

	// Interrupts and halts end the run; they are not offered to recovery
	// handlers.
	if errors.Is(raised, ErrHalted) || errors.Is(raised, context.Canceled) || errors.Is(raised, context.DeadlineExceeded) {
		r.to(Failed)
		out.State = Failed
		return out, raised
	}

	for entry := range e.registry.ResolveAll(failure) {
		if entry.Handler == nil {
			continue
		}
		e.logger.Info("intent: run %s: recovering %q (%s)", r.ID, failure.Message, failure.NS)
		value, err := invoke(ctx, entry.Handler, raised, settings)
		if err != nil {
			r.to(Failed)
			out.State = Failed
			return out, err
		}
		r.to(Done)
		out.State = Done
		out.Value = value
		out.Recovered = true
		return out, nil
	}

	e.logger.Error("intent: run %s failed: %v", r.ID, raised)
	r.to(Failed)
	out.State = Failed
	return out, raised
}

func start(logic Logic, in Input) (p Procedure, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = panicError(ErrProcedurePanic, rec)
		}
	}()
	return logic(in)
}

func step(ctx context.Context, p Procedure, resume any) (y Yield, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = panicError(ErrProcedurePanic, rec)
		}
	}()
	return p.Step(ctx, resume)
}

func invoke(ctx context.Context, h pattern.Handler, value any, settings any) (result any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = panicError(ErrHandlerPanic, rec)
		}
	}()
	return h(ctx, value, settings)
}

func panicError(kind error, rec any) error {
	stack := make([]byte, 4096)
	n := runtime.Stack(stack, false)
	return fmt.Errorf("%w: %v\n%s", kind, rec, stack[:n])
}
