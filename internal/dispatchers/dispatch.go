package dispatchers

import (
	"context"
	"slices"
	"strings"

	"github.com/cto-ai/clif/internal/usage"
)

const defaultSuggestionsCount = 3

// Execute routes argv and runs the matched command. Global --help/-h
// renders help for the routed node and a leading --version/-v prints the
// version, both before any command runs. A miss goes to the fallthrough
// handler when one is set.
func (p *Program) Execute(ctx context.Context, argv []string) error {
	p.mu.Lock()
	p.running = true
	p.mu.Unlock()

	flags := NewParsedFlags(argv)

	if len(argv) > 0 && (argv[0] == "--version" || argv[0] == "-v") {
		return p.printVersion()
	}
	if len(argv) == 0 {
		return HelpAction(p.Root, p)(ctx, nil)
	}

	if res, handled, err := p.handleHelpCommand(argv, flags); handled {
		if err != nil {
			return err
		}
		return res.Execute(ctx, res.Args)
	}

	res, ok := p.Route(argv)
	if !ok {
		if hasHelpFlag(flags) {
			return HelpAction(p.Root, p)(ctx, nil)
		}
		p.mu.RLock()
		fallback := p.fallback
		p.mu.RUnlock()
		if fallback != nil {
			return fallback(ctx, argv)
		}
		return usage.UnknownCommand(argv[0], FindSimilarCommands(argv[0], p.Root, defaultSuggestionsCount)...)
	}

	if hasHelpFlag(NewCommandFlags(res.Node, res.Args)) {
		return HelpAction(res.Node, p)(ctx, nil)
	}

	if res.Node.IsBranch() {
		if extra := leadingWords(res.Args); len(extra) > 0 {
			suggestions := FindSimilarCommands(extra[0], res.Node, defaultSuggestionsCount)
			cmdPath := strings.Join(append(slices.Clone(res.Node.CommandPath()), extra[0]), " ")
			return usage.UnknownCommand(cmdPath, suggestions...)
		}
	}

	return res.Execute(ctx, res.Args)
}

func (p *Program) printVersion() error {
	_, err := p.out.Printf("%s version %s\n", p.Root.Name, p.Version)
	return err
}

// handleHelpCommand serves `help [command...]` and `help --interactive`.
func (p *Program) handleHelpCommand(argv []string, flags *ParsedFlags) (Resolution, bool, error) {
	if argv[0] != "help" {
		return Resolution{}, false, nil
	}

	p.mu.RLock()
	browser := p.browser
	p.mu.RUnlock()
	if hasInteractiveFlag(flags) && browser != nil {
		return Resolution{Node: p.Root, Execute: browser}, true, nil
	}

	var target []string
	for _, word := range leadingWords(argv[1:]) {
		target = append(target, strings.Split(word, ":")...)
	}

	node := p.Lookup(target)
	if node == nil {
		parent := p.Root
		for i := range target {
			if n := p.Lookup(target[:i]); n != nil {
				parent = n
			}
		}
		suggestions := FindSimilarCommands(target[len(target)-1], parent, defaultSuggestionsCount)
		return Resolution{}, true, usage.UnknownCommand(strings.Join(target, " "), suggestions...)
	}
	return Resolution{Node: node, Execute: HelpAction(node, p)}, true, nil
}

func hasHelpFlag(flags *ParsedFlags) bool {
	return flags.Has("--help") || flags.Has("-h")
}

func hasInteractiveFlag(flags *ParsedFlags) bool {
	return flags.Has("--interactive") || flags.Has("-i")
}
