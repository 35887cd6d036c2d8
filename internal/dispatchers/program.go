package dispatchers

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/cto-ai/clif/internal/domain"
	"github.com/cto-ai/clif/internal/ui"
)

// Program routes argv to registered commands. Commands are addressable
// by their space separated path ("config get") and, below the top
// level, by their colon joined path ("config:get"), which must match
// exactly.
type Program struct {
	Root    *DispatchNode
	Version string

	mu       sync.RWMutex
	out      domain.OutputWriter
	routes   map[string]*DispatchNode
	fallback CommandFunc
	browser  CommandFunc
	running  bool
}

// ProgramOption configures a Program.
type ProgramOption func(*Program)

// WithOutput sets where help and version output go.
func WithOutput(w domain.OutputWriter) ProgramOption {
	return func(p *Program) {
		p.out = w
	}
}

// WithFallthrough handles argv that matches no command.
func WithFallthrough(fn CommandFunc) ProgramOption {
	return func(p *Program) {
		p.fallback = fn
	}
}

// NewProgram creates a program with an empty root.
func NewProgram(spec RootSpec, opts ...ProgramOption) *Program {
	root := NewNode(spec.Name, nil, spec.Summary, spec.Usage, spec.Flags, nil, nil)
	if root.Usage == "" {
		root.Usage = spec.Name + " <command> [flags]"
	}
	p := &Program{
		Root:    root,
		Version: spec.Version,
		out:     ui.NewWriter(),
		routes:  make(map[string]*DispatchNode),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Output returns the writer used for help and version output.
func (p *Program) Output() domain.OutputWriter {
	return p.out
}

// Group registers a branch.
func (p *Program) Group(spec GroupSpec) (*DispatchNode, error) {
	return p.add(spec.Path, func(parent *DispatchNode, name string) *DispatchNode {
		return NewNode(name, parent, spec.Summary, spec.Usage, nil, nil, nil)
	})
}

// Command registers a leaf.
func (p *Program) Command(spec CommandSpec) (*DispatchNode, error) {
	if spec.Action == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoAction, strings.Join(spec.Path, " "))
	}
	return p.add(spec.Path, func(parent *DispatchNode, name string) *DispatchNode {
		node := NewNode(name, parent, spec.Summary, spec.Usage, spec.Flags, spec.Args, spec.Action)
		node.Category = spec.Category
		return node
	})
}

func (p *Program) add(path []string, build func(parent *DispatchNode, name string) *DispatchNode) (*DispatchNode, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil, ErrProgramRunning
	}
	if len(path) == 0 || slices.Contains(path, "") {
		return nil, ErrEmptyPath
	}

	spaced := strings.Join(path, " ")
	if _, exists := p.routes[spaced]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCommand, spaced)
	}

	parent := p.Root
	if len(path) > 1 {
		var ok bool
		parent, ok = p.routes[strings.Join(path[:len(path)-1], " ")]
		if !ok || !parent.IsBranch() {
			return nil, fmt.Errorf("%w: %s", ErrMissingParent, spaced)
		}
	}

	node := build(parent, path[len(path)-1])
	p.routes[spaced] = node
	if len(path) > 1 {
		p.routes[strings.Join(path, ":")] = node
	}
	return node, nil
}

// SetFallthrough replaces the handler for unmatched argv.
func (p *Program) SetFallthrough(fn CommandFunc) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return ErrProgramRunning
	}
	p.fallback = fn
	return nil
}

// SetBrowser sets the action behind `help --interactive`.
func (p *Program) SetBrowser(fn CommandFunc) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return ErrProgramRunning
	}
	p.browser = fn
	return nil
}

// Lookup returns the node registered at path, or the root for an empty
// path.
func (p *Program) Lookup(path []string) *DispatchNode {
	if len(path) == 0 {
		return p.Root
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.routes[strings.Join(path, " ")]
}

// Paths returns every registered space separated path, sorted.
func (p *Program) Paths() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, 0, len(p.routes))
	for key := range p.routes {
		if !strings.Contains(key, ":") {
			out = append(out, key)
		}
	}
	slices.Sort(out)
	return out
}

// Route resolves argv to a node. A colon addressed first token must match
// exactly; otherwise the longest registered prefix of the leading
// non-flag tokens wins. On a miss the argv is returned unconsumed.
func (p *Program) Route(argv []string) (Resolution, bool) {
	if len(argv) == 0 {
		return Resolution{Args: argv}, false
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if strings.Contains(argv[0], ":") {
		node, ok := p.routes[argv[0]]
		if !ok {
			return Resolution{Args: argv}, false
		}
		return p.resolution(node, argv[1:]), true
	}

	words := leadingWords(argv)
	for k := len(words); k > 0; k-- {
		if node, ok := p.routes[strings.Join(words[:k], " ")]; ok {
			return p.resolution(node, argv[k:]), true
		}
	}
	return Resolution{Args: argv}, false
}

func (p *Program) resolution(node *DispatchNode, args []string) Resolution {
	exec := node.Action
	if exec == nil {
		exec = HelpAction(node, p)
	}
	return Resolution{Node: node, Args: args, Execute: exec}
}

// leadingWords returns the tokens before the first flag or "--".
func leadingWords(argv []string) []string {
	for i, tok := range argv {
		if strings.HasPrefix(tok, "-") {
			return argv[:i]
		}
	}
	return argv
}
