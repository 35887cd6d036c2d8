package actions

import (
	"context"

	"github.com/cto-ai/clif/internal/completions"
	"github.com/cto-ai/clif/internal/intent"
	"github.com/cto-ai/clif/internal/usage"
)

// exit ends the run with the requested status. The returned error is
// halted, so no recovery handler sees it, and the entry point maps it to
// the exit code.
func (d Deps) exit(_ context.Context, value any, _ any) (any, error) {
	a := argsOf(value)
	code, ok := a.Int("code")
	if !ok && a["code"] != nil {
		return nil, intent.Fail(map[string]any{"code": "EINVAL"}, "exit: code must be a whole number, got "+a.String("code"))
	}
	if code < 0 || code > 255 {
		return nil, intent.Failf("exit: code %d out of range 0-255", code)
	}
	d.Logger.Debug("actions: exit %d requested", code)
	return nil, intent.Halt(usage.Exit(code))
}

func (d Deps) version(_ context.Context, _ any, _ any) (any, error) {
	return d.Version, nil
}

// completions resolves to the completion script for the running program.
func (d Deps) completions(_ context.Context, value any, _ any) (any, error) {
	if d.Commands == nil || d.Commands() == nil {
		return nil, intent.Fail(map[string]any{"code": "ENOTREE"}, "completions: no command tree")
	}
	name := argsOf(value).String("shell")
	if name == "" && d.Getenv != nil {
		name = d.Getenv("SHELL")
	}
	shell, err := completions.ParseShell(name)
	if err != nil {
		return nil, intent.Fail(map[string]any{"code": "EINVAL", "shell": name}, err.Error()).Wrap(err)
	}
	root := d.Commands()
	return completions.Generate(shell, root.Name, completions.ExtractCommands(root))
}
