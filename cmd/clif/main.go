package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/cto-ai/clif/internal/app"
	"github.com/cto-ai/clif/internal/cli"
	"github.com/cto-ai/clif/internal/domain"
	"github.com/cto-ai/clif/internal/intent"
	"github.com/cto-ai/clif/internal/ui/style"
	"github.com/cto-ai/clif/internal/usage"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

// interruptGrace is how long a run may take to unwind after SIGINT or
// SIGTERM before the process exits regardless.
const interruptGrace = 2 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	done := make(chan struct{})
	defer close(done)
	go watchInterrupt(ctx, stop, done, interruptGrace, os.Exit)

	globals, argv := cli.SplitGlobals(args)

	opts := app.DefaultOptions()
	opts.Version = Version
	opts.PagerDisabled = globals.NoPager
	opts.PagerOverride = globals.Pager
	// Enable styling if stdout is a terminal and --no-color is not set
	opts.StyleEnabled = term.IsTerminal(int(os.Stdout.Fd())) && !globals.NoColor

	errTerminal := term.IsTerminal(int(os.Stderr.Fd())) && !globals.NoColor

	a, err := app.New(opts)
	if err != nil {
		return report(ctx, stderr, style.NewStyler(errTerminal, ""), err)
	}
	defer a.Close()

	err = a.Program.Execute(ctx, argv)
	return report(ctx, stderr, a.ErrorStyler(errTerminal), err)
}

// watchInterrupt ends the process with status 130 when a signal
// cancelled ctx and the run has not returned within grace. Once ctx is
// done the default signal behaviour is restored, so a second signal
// kills the process at once.
func watchInterrupt(ctx context.Context, stop func(), done <-chan struct{}, grace time.Duration, exit func(int)) {
	select {
	case <-done:
		return
	case <-ctx.Done():
	}
	stop()

	select {
	case <-done:
	case <-time.After(grace):
		exit(usage.Interrupted(ctx.Err()).GetExitCode())
	}
}

// report prints err for the user and returns the exit status.
func report(ctx context.Context, w io.Writer, st domain.Styler, err error) int {
	if err == nil {
		return 0
	}

	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		err = usage.Interrupted(err)
	}

	var ue *usage.Error
	if errors.As(err, &ue) {
		if ue.Kind != usage.ErrExitRequested {
			fmt.Fprintln(w, ue.Error())
		}
		return ue.GetExitCode()
	}

	f := intent.AsFailure(err)
	fmt.Fprintf(w, "%s: %s %s\n", usage.ProgramName, st.Error(f.NS), f.Message)
	for _, k := range slices.Sorted(maps.Keys(f.Extra)) {
		fmt.Fprintf(w, "  %s %v\n", st.Muted(k+":"), f.Extra[k])
	}
	return 1
}
