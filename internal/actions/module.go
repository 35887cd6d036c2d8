package actions

import (
	_ "embed"

	"github.com/cto-ai/clif/internal/modules"
	"github.com/cto-ai/clif/internal/pattern"
)

// ModuleName identifies the stock pattern module in errors.
const ModuleName = "actions"

//go:embed patterns.yaml
var Patterns []byte

// Handlers returns the stock handlers keyed by pattern name.
func Handlers(deps Deps) map[string]pattern.Handler {
	return map[string]pattern.Handler{
		"print":          deps.print,
		"read":           deps.read,
		"write":          deps.write,
		"exit":           deps.exit,
		"version":        deps.version,
		"completions":    deps.completions,
		"settings-get":   deps.getSetting,
		"settings-list":  deps.listSettings,
		"settings-set":   deps.setSetting,
		"settings-unset": deps.unsetSetting,
		"journal-list":   deps.listRuns,
		"journal-show":   deps.showRun,
		"journal-prune":  deps.pruneRuns,
		"log":            deps.log,
		"missing-file":   deps.missingFile,
	}
}

// Bindings pairs the embedded patterns with the handlers built from deps.
func Bindings(deps Deps) ([]modules.Binding, []error) {
	return modules.LoadPatterns(ModuleName, Patterns, Handlers(deps))
}
