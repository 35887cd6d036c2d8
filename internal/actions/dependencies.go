// Package actions holds the stock intent handlers every clif program
// gets: terminal and file IO, process exit, settings, run history and
// logging. Handlers are bound to their patterns through the embedded
// patterns.yaml module.
package actions

import (
	"context"
	"io"
	"os"

	"github.com/cto-ai/clif/internal/dispatchers"
	"github.com/cto-ai/clif/internal/domain"
	"github.com/cto-ai/clif/internal/log"
	"github.com/cto-ai/clif/internal/store"
	"github.com/cto-ai/clif/internal/ui"
)

// History is the read side of the run journal.
type History interface {
	List(ctx context.Context, filter store.RunFilter) ([]store.RunRecord, error)
	Get(ctx context.Context, id string) (store.RunRecord, []store.StepRow, error)
	Prune(ctx context.Context, keep int) (int64, error)
}

type Deps struct {
	Out       domain.OutputWriter
	Err       io.Writer
	Stdin     io.Reader
	ReadFile  func(string) ([]byte, error)
	WriteFile func(string, []byte, os.FileMode) error
	Getenv    func(string) string
	History   History // nil when the journal could not be opened
	Logger    domain.Logger
	Version   string

	// Commands returns the composed command tree. It is only called
	// while a command runs, after composition is complete.
	Commands func() *dispatchers.DispatchNode
}

func DefaultDeps() Deps {
	return Deps{
		Out:       ui.NewWriter(),
		Err:       os.Stderr,
		Stdin:     os.Stdin,
		ReadFile:  os.ReadFile,
		WriteFile: os.WriteFile,
		Getenv:    os.Getenv,
		Logger:    log.NopLogger{},
	}
}
