// Package app wires settings, logging, the run journal, the stock
// actions and the command modules into a runnable program.
package app

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cto-ai/clif/internal/actions"
	"github.com/cto-ai/clif/internal/cli"
	"github.com/cto-ai/clif/internal/command"
	"github.com/cto-ai/clif/internal/config"
	"github.com/cto-ai/clif/internal/dispatchers"
	"github.com/cto-ai/clif/internal/domain"
	"github.com/cto-ai/clif/internal/intent"
	"github.com/cto-ai/clif/internal/log"
	"github.com/cto-ai/clif/internal/modules"
	"github.com/cto-ai/clif/internal/paths"
	"github.com/cto-ai/clif/internal/pattern"
	"github.com/cto-ai/clif/internal/store"
	"github.com/cto-ai/clif/internal/ui"
	"github.com/cto-ai/clif/internal/ui/browser"
	"github.com/cto-ai/clif/internal/ui/style"
	"github.com/cto-ai/clif/internal/usage"
)

// Module is one pair of command and pattern manifests with the Go code
// they name. Either half may be empty.
type Module struct {
	Name     string
	Commands []byte
	Logic    map[string]intent.Logic
	Patterns []byte
	Handlers map[string]pattern.Handler
}

// Options configures the application factory.
type Options struct {
	Version string

	// Pager options
	PagerDisabled bool
	PagerOverride string

	// StyleEnabled is the terminal's answer; the color setting may
	// override it.
	StyleEnabled bool

	// Paths default to the per-user application directories.
	SettingsPath string
	JournalPath  string
	LogPath      string

	// Stdout defaults to os.Stdout, Stderr to os.Stderr, Stdin to
	// os.Stdin.
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	// Modules are composed after the built-in cli module.
	Modules []Module
}

// DefaultOptions returns the default application options.
func DefaultOptions() Options {
	return Options{
		StyleEnabled: true,
		SettingsPath: paths.SettingsFilePath(),
		JournalPath:  paths.JournalPath(),
		LogPath:      paths.LogFilePath(),
	}
}

// App is a composed program and everything it holds open.
type App struct {
	Program  *dispatchers.Program
	Engine   *intent.Engine
	Settings *config.Settings
	Store    *store.Store
	Logger   domain.Logger
	Output   *ui.Writer
}

// New creates the application. Structural problems in any module are
// reported together as a usage error.
func New(opts Options) (*App, error) {
	settings, err := config.Load(opts.SettingsPath)
	if err != nil {
		return nil, err
	}

	a := &App{Settings: settings, Logger: newLogger(opts, settings)}

	style.Init(colorEnabled(opts.StyleEnabled, settings), settingValue(settings, "theme"))

	writerOpts := []ui.WriterOption{ui.WithSettings(settings)}
	if opts.PagerDisabled {
		writerOpts = append(writerOpts, ui.WithPagerDisabled())
	}
	if opts.PagerOverride != "" {
		writerOpts = append(writerOpts, ui.WithPagerOverride(opts.PagerOverride))
	}
	if opts.Stdout != nil {
		a.Output = ui.NewWriterTo(opts.Stdout, writerOpts...)
	} else {
		a.Output = ui.NewWriter(writerOpts...)
	}

	if opts.JournalPath != "" {
		s, err := store.New(opts.JournalPath)
		if err != nil {
			// History is optional; commands still run without it.
			a.Logger.Warn("app: journal unavailable: %v", err)
		} else {
			a.Store = s
		}
	}

	if err := a.compose(opts); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// NewForTesting creates an App with an in-memory journal, no log file,
// no styling and a pager-less writer to out.
func NewForTesting(out io.Writer, modules ...Module) (*App, error) {
	return New(Options{
		Version:       "test",
		PagerDisabled: true,
		JournalPath:   store.MemoryPath,
		Stdout:        out,
		Stderr:        out,
		Stdin:         strings.NewReader(""),
		Modules:       modules,
	})
}

func (a *App) compose(opts Options) error {
	deps := actions.DefaultDeps()
	deps.Out = a.Output
	deps.Logger = a.Logger
	deps.Version = opts.Version
	if opts.Stderr != nil {
		deps.Err = opts.Stderr
	}
	if opts.Stdin != nil {
		deps.Stdin = opts.Stdin
	}
	if a.Store != nil {
		deps.History = a.Store
	}
	deps.Commands = func() *dispatchers.DispatchNode {
		if a.Program == nil {
			return nil
		}
		return a.Program.Root
	}

	registry := pattern.New()
	var errs []error

	bindings, berrs := actions.Bindings(deps)
	errs = append(errs, berrs...)
	modules.Register(registry, bindings)

	tree, cerrs := cli.LoadCommands()
	errs = append(errs, cerrs...)
	if tree == nil {
		tree = command.Tree{}
	}

	for _, m := range opts.Modules {
		if len(m.Patterns) > 0 || len(m.Handlers) > 0 {
			bindings, berrs := modules.LoadPatterns(m.Name, m.Patterns, m.Handlers)
			errs = append(errs, berrs...)
			modules.Register(registry, bindings)
		}
		if len(m.Commands) > 0 {
			extra, cerrs := modules.LoadCommands(m.Name, m.Commands, m.Logic)
			errs = append(errs, cerrs...)
			errs = append(errs, merge(tree, extra, m.Name)...)
		}
	}

	engineOpts := []intent.Option{intent.WithLogger(a.Logger)}
	if a.Store != nil && a.Settings.Bool("journal") {
		engineOpts = append(engineOpts, intent.WithJournal(a.Store))
	}
	a.Engine = intent.New(registry, engineOpts...)

	program, err := command.Compose(tree, command.Options{
		Root:     cli.Root(opts.Version),
		Engine:   a.Engine,
		Settings: a.Settings,
		Program:  []dispatchers.ProgramOption{dispatchers.WithOutput(a.Output)},
	})
	var structural *command.StructuralError
	switch {
	case errors.As(err, &structural):
		errs = append(errs, structural.Errs...)
	case err != nil:
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return usage.InvalidDeclaration(&command.StructuralError{Errs: errs})
	}

	if err := program.SetBrowser(browser.Action(program)); err != nil {
		return err
	}
	a.Program = program
	a.Logger.Debug("app: composed %d commands and %d patterns", len(program.Paths()), registry.Len())
	return nil
}

// merge adds the top-level commands of extra to tree. Names already
// taken are errors.
func merge(tree, extra command.Tree, module string) []error {
	var errs []error
	for name, node := range extra {
		if _, ok := tree[name]; ok {
			errs = append(errs, &modules.ModuleError{Module: module, Msg: fmt.Sprintf("command %q is already declared", name)})
			continue
		}
		tree[name] = node
	}
	return errs
}

func newLogger(opts Options, settings *config.Settings) domain.Logger {
	if opts.LogPath == "" || !settings.Bool("enable_log") {
		return log.NopLogger{}
	}
	level := log.ParseLevel(settingValue(settings, "log_level"))
	if err := log.Init(opts.LogPath, level); err != nil {
		return log.NopLogger{}
	}
	if l := log.GetLogger(); l != nil {
		return l
	}
	return log.NopLogger{}
}

func colorEnabled(terminal bool, settings *config.Settings) bool {
	switch settingValue(settings, "color") {
	case "always":
		return true
	case "never":
		return false
	default:
		return terminal
	}
}

// ErrorStyler returns the styler for failures reported on stderr. The
// color setting applies to it the same way it applies to stdout.
func (a *App) ErrorStyler(terminal bool) domain.Styler {
	return style.NewStyler(colorEnabled(terminal, a.Settings), settingValue(a.Settings, "theme"))
}

func settingValue(settings *config.Settings, key string) string {
	v, _ := settings.Get(key)
	return v
}

// Close cleans up application resources.
func (a *App) Close() error {
	var errs []error
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	if a.Logger != nil {
		errs = append(errs, a.Logger.Close())
	}
	return errors.Join(errs...)
}
