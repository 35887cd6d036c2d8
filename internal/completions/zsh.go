package completions

import (
	"fmt"
	"strings"
)

// GenerateZsh describes subcommands and flags of every command.
func GenerateZsh(program string, commands []CommandInfo) string {
	id := identifier(program)

	var b strings.Builder
	fmt.Fprintf(&b, "#compdef %s\n\n", program)
	fmt.Fprintf(&b, "_%s() {\n", id)
	b.WriteString(`    local -a path_words
    local i
    for ((i=2; i<CURRENT; i++)); do
        [[ ${words[i]} == -* ]] || path_words+=(${words[i]})
    done

    case "${(j: :)path_words}" in
`)
	for _, c := range commands {
		fmt.Fprintf(&b, "        %s) %s ;;\n", quote(c.subPath()), zshFunc(id, c))
	}
	b.WriteString("        *) _files ;;\n    esac\n}\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "\n%s() {\n", zshFunc(id, c))
		b.WriteString("    local -a entries\n    entries=(\n")
		for _, name := range c.Subcommands {
			summary := ""
			if sub := FindCommand(commands, append(append([]string{}, c.Path...), name)); sub != nil {
				summary = sub.Summary
			}
			fmt.Fprintf(&b, "        %s\n", quote(zshEscape(name)+":"+summary))
		}
		for _, f := range c.Flags {
			for _, n := range f.Names {
				fmt.Fprintf(&b, "        %s\n", quote(zshEscape(n)+":"+f.Description))
			}
		}
		b.WriteString("    )\n")
		if len(c.Subcommands) > 0 {
			b.WriteString("    _describe 'command' entries\n}\n")
		} else {
			b.WriteString("    _describe 'flag' entries || _files\n}\n")
		}
	}

	fmt.Fprintf(&b, "\n_%s \"$@\"\n", id)
	return b.String()
}

func zshFunc(id string, c CommandInfo) string {
	if len(c.Path) <= 1 {
		return "_" + id + "_commands"
	}
	return "_" + id + "_" + identifier(strings.Join(c.Path[1:], "_")) + "_commands"
}

// zshEscape escapes the separator _describe splits on.
func zshEscape(s string) string {
	return strings.ReplaceAll(s, ":", `\:`)
}
