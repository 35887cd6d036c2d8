// Package cli declares the commands of the clif program.
package cli

import (
	_ "embed"

	"github.com/cto-ai/clif/internal/command"
	"github.com/cto-ai/clif/internal/modules"
)

const ModuleName = "cli"

//go:embed commands.yaml
var Commands []byte

// LoadCommands reads the embedded command manifest against Logic.
func LoadCommands() (command.Tree, []error) {
	return modules.LoadCommands(ModuleName, Commands, Logic())
}
