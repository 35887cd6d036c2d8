package completions

import (
	"fmt"
	"strings"
)

// GenerateFish emits one complete line per subcommand and flag.
func GenerateFish(program string, commands []CommandInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s fish completion script\n\n", program)
	fmt.Fprintf(&b, "complete -c %s -f\n", program)

	for _, c := range commands {
		cond := fishCondition(c.Path[1:])
		for _, name := range c.Subcommands {
			summary := ""
			if sub := FindCommand(commands, append(append([]string{}, c.Path...), name)); sub != nil {
				summary = sub.Summary
			}
			fmt.Fprintf(&b, "complete -c %s -n %s -a %s -d %s\n", program, quote(cond), quote(name), quote(summary))
		}

		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c %s", program)
			if len(c.Path) > 1 {
				line += " -n " + quote(cond)
			}
			for _, n := range f.Names {
				if long, ok := strings.CutPrefix(n, "--"); ok {
					line += " -l " + long
				} else if short, ok := strings.CutPrefix(n, "-"); ok {
					line += " -s " + short
				}
			}
			if f.HasValue {
				line += " -r"
			}
			fmt.Fprintf(&b, "%s -d %s\n", line, quote(f.Description))
		}
	}
	return b.String()
}

// fishCondition matches once every word of path has been typed.
func fishCondition(path []string) string {
	if len(path) == 0 {
		return "__fish_use_subcommand"
	}
	parts := make([]string, len(path))
	for i, w := range path {
		parts[i] = "__fish_seen_subcommand_from " + w
	}
	return strings.Join(parts, "; and ")
}
