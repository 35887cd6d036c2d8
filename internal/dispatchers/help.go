package dispatchers

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cto-ai/clif/internal/ui/style"
)

// formatUsage styles the usage line with the command in Info color and the rest muted.
func formatUsage(usage string) string {
	// Find where the command ends (first [ or <)
	cmdEnd := len(usage)
	for i, c := range usage {
		if c == '[' || c == '<' {
			cmdEnd = i
			break
		}
	}

	cmd := strings.TrimSpace(usage[:cmdEnd])
	rest := ""
	if cmdEnd < len(usage) {
		rest = usage[cmdEnd:]
	}

	if rest == "" {
		return style.Info(cmd)
	}
	return style.Info(cmd) + " " + style.Muted(rest)
}

func collectLeafCommands(node *DispatchNode, out *[]*DispatchNode) {
	if node.Action != nil {
		*out = append(*out, node)
		return
	}

	for _, child := range node.Children {
		collectLeafCommands(child, out)
	}
}

func displayName(n *DispatchNode) string {
	return strings.Join(n.CommandPath(), " ")
}

// HelpAction renders help for node through the program's output.
func HelpAction(node *DispatchNode, p *Program) CommandFunc {
	return func(_ context.Context, _ []string) error {
		var out bytes.Buffer
		if node == p.Root {
			writeRootHelp(&out, p)
		} else {
			writeNodeHelp(&out, node, p.Root.Name)
		}
		p.out.Pager(out.String())
		return nil
	}
}

// CommandGroup is the runnable commands of one category, sorted by name.
type CommandGroup struct {
	Category CommandCategory
	Commands []*DispatchNode
}

// Catalog lists every runnable command grouped in category order.
func (p *Program) Catalog() []CommandGroup {
	var leaves []*DispatchNode
	for _, child := range p.Root.Children {
		collectLeafCommands(child, &leaves)
	}

	grouped := make(map[CommandCategory][]*DispatchNode)
	var present []CommandCategory
	for _, cmd := range leaves {
		if _, seen := grouped[cmd.Category]; !seen {
			present = append(present, cmd.Category)
		}
		grouped[cmd.Category] = append(grouped[cmd.Category], cmd)
	}

	groups := make([]CommandGroup, 0, len(present))
	for _, cat := range CategoryOrder(present) {
		cmds := grouped[cat]
		sort.Slice(cmds, func(i, j int) bool {
			return displayName(cmds[i]) < displayName(cmds[j])
		})
		groups = append(groups, CommandGroup{Category: cat, Commands: cmds})
	}
	return groups
}

// NodeHelp renders the help page of a single node.
func NodeHelp(node *DispatchNode, program string) string {
	var out bytes.Buffer
	writeNodeHelp(&out, node, program)
	return out.String()
}

func writeRootHelp(out *bytes.Buffer, p *Program) {
	root := p.Root
	out.WriteString(root.Name)
	if root.Summary != "" {
		out.WriteString(" - ")
		out.WriteString(root.Summary)
	}
	out.WriteString("\n\n")

	out.WriteString("USAGE\n   ")
	out.WriteString(formatUsage(root.Usage))
	out.WriteString("\n\n")

	for _, group := range p.Catalog() {
		out.WriteString(style.Header(strings.ToUpper(group.Category.String())))
		out.WriteString("\n")
		for _, cmd := range group.Commands {
			fmt.Fprintf(out, "   %s  %s\n", style.Info(fmt.Sprintf("%-16s", displayName(cmd))), cmd.Summary)
		}
		out.WriteString("\n")
	}

	if len(root.Flags) > 0 {
		writeFlags(out, "GLOBAL FLAGS", root.Flags)
	}

	fmt.Fprintf(out, "See '%s help <command>' for detailed help on a specific command.\n", root.Name)
	fmt.Fprintf(out, "See '%s help --interactive' to browse all commands.\n", root.Name)
}

func writeNodeHelp(out *bytes.Buffer, node *DispatchNode, program string) {
	out.WriteString(program + " " + displayName(node))
	if node.Summary != "" {
		out.WriteString(" - ")
		out.WriteString(node.Summary)
	}
	out.WriteString("\n\n")

	usage := node.Usage
	if usage == "" {
		usage = program + " " + displayName(node)
		if node.IsBranch() {
			usage += " <command>"
		}
	}
	out.WriteString("USAGE\n   ")
	out.WriteString(formatUsage(usage))
	out.WriteString("\n")
	if len(node.CommandPath()) > 1 {
		out.WriteString("   ")
		out.WriteString(style.Muted(program + " " + strings.Join(node.CommandPath(), ":")))
		out.WriteString("\n")
	}
	out.WriteString("\n")

	if len(node.Children) > 0 {
		out.WriteString("COMMANDS\n")

		children := make([]*DispatchNode, 0, len(node.Children))
		for _, child := range node.Children {
			children = append(children, child)
		}
		sort.Slice(children, func(i, j int) bool {
			return children[i].Name < children[j].Name
		})

		for _, child := range children {
			fmt.Fprintf(out, "   %s  %s\n", style.Info(fmt.Sprintf("%-12s", child.Name)), child.Summary)
		}
		out.WriteString("\n")
	}

	if len(node.Args) > 0 {
		out.WriteString("ARGUMENTS\n")
		for _, a := range node.Args {
			name := "<" + a.Name + ">"
			if !a.Required {
				name = "[" + a.Name + "]"
			}
			fmt.Fprintf(out, "   %s  %s\n", style.Info(fmt.Sprintf("%-16s", name)), a.Description)
		}
		out.WriteString("\n")
	}

	if len(node.Flags) > 0 {
		writeFlags(out, "FLAGS", node.Flags)
	}

	fmt.Fprintf(out, "See '%s help <command>' to read about a specific command.\n", program)
}

func writeFlags(out *bytes.Buffer, title string, flags []FlagDescriptor) {
	out.WriteString(title)
	out.WriteString("\n")
	for _, f := range flags {
		name := strings.Join(f.Names, ", ")
		if f.ValueHint != "" {
			name = name + " " + f.ValueHint
		}
		desc := f.Description
		if f.Default != "" {
			desc += " " + style.Muted("(default "+f.Default+")")
		}
		fmt.Fprintf(out, "   %s  %s\n", style.Info(fmt.Sprintf("%-24s", name)), desc)
	}
	out.WriteString("\n")
}
