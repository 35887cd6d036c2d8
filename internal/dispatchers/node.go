package dispatchers

import "context"

// CommandFunc executes a routed command with the argv left after the
// command path.
type CommandFunc func(ctx context.Context, argv []string) error

// Resolution is the outcome of routing argv to a node.
type Resolution struct {
	Node    *DispatchNode
	Args    []string
	Execute CommandFunc
}

type FlagDescriptor struct {
	Names       []string
	ValueHint   string
	Description string
	Default     string
}

type ArgSpec struct {
	Name        string
	Description string
	Required    bool
}

// DispatchNode is one routable command. Nodes without an Action are
// branches; routing to them renders help.
type DispatchNode struct {
	Name     string
	Path     []string
	Summary  string
	Usage    string
	Flags    []FlagDescriptor
	Args     []ArgSpec
	Children map[string]*DispatchNode
	Action   CommandFunc
	Category CommandCategory
}

func NewNode(
	name string,
	parent *DispatchNode,
	summary string,
	usage string,
	flags []FlagDescriptor,
	args []ArgSpec,
	action CommandFunc,
) *DispatchNode {

	node := &DispatchNode{
		Name:     name,
		Summary:  summary,
		Usage:    usage,
		Flags:    flags,
		Args:     args,
		Action:   action,
		Children: make(map[string]*DispatchNode),
	}

	if parent == nil {
		node.Path = []string{name}
	} else {
		node.Path = append(append([]string(nil), parent.Path...), name)
		parent.Children[name] = node
	}

	return node
}

// IsBranch reports whether the node groups other commands.
func (n *DispatchNode) IsBranch() bool {
	return n.Action == nil
}

// CommandPath is the node path without the program name.
func (n *DispatchNode) CommandPath() []string {
	if len(n.Path) == 0 {
		return nil
	}
	return n.Path[1:]
}
