package cli

import (
	"strings"

	"github.com/cto-ai/clif/internal/dispatchers"
)

// RootFlags are shown on the root help page. They apply to every
// command.
var RootFlags = []dispatchers.FlagDescriptor{
	{
		Names:       []string{"--help", "-h"},
		Description: "Show help",
	},
	{
		Names:       []string{"--version", "-v"},
		Description: "Show version",
	},
	{
		Names:       []string{"--no-color"},
		Description: "Disable colored output",
	},
	{
		Names:       []string{"--no-pager"},
		Description: "Do not use pager for output",
	},
	{
		Names:       []string{"--pager"},
		ValueHint:   "<cmd>",
		Description: "Use specified pager for this command",
	},
}

// Globals are the presentation flags handled before routing.
type Globals struct {
	NoColor bool
	NoPager bool
	Pager   string
}

// SplitGlobals removes the presentation flags from argv. Arguments
// after "--" are left alone.
func SplitGlobals(argv []string) (Globals, []string) {
	var (
		g    Globals
		rest = make([]string, 0, len(argv))
	)
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--":
			return g, append(rest, argv[i:]...)
		case arg == "--no-color":
			g.NoColor = true
		case arg == "--no-pager":
			g.NoPager = true
		case arg == "--pager":
			if i+1 < len(argv) {
				g.Pager = argv[i+1]
				i++
			}
		case strings.HasPrefix(arg, "--pager="):
			g.Pager = strings.TrimPrefix(arg, "--pager=")
		default:
			rest = append(rest, arg)
		}
	}
	return g, rest
}

// Root describes the clif program itself.
func Root(version string) dispatchers.RootSpec {
	return dispatchers.RootSpec{
		Name:    "clif",
		Summary: "Run commands composed from declarative modules",
		Version: version,
		Flags:   RootFlags,
	}
}
