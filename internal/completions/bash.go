package completions

import (
	"fmt"
	"strings"
)

// GenerateBash completes subcommands and flags by the command path typed
// so far. Unknown paths fall back to file names.
func GenerateBash(program string, commands []CommandInfo) string {
	fn := "_" + identifier(program) + "_completions"

	var b strings.Builder
	fmt.Fprintf(&b, "# %s bash completion script\n\n", program)
	fmt.Fprintf(&b, "%s() {\n", fn)
	b.WriteString(`    local cur="${COMP_WORDS[COMP_CWORD]}"
    local path="" opts="" i
    for ((i=1; i<COMP_CWORD; i++)); do
        case "${COMP_WORDS[i]}" in
            -*) ;;
            *) path="${path:+$path }${COMP_WORDS[i]}" ;;
        esac
    done

    case "$path" in
`)
	for _, c := range commands {
		words := append(append([]string{}, c.Subcommands...), c.flagWords()...)
		fmt.Fprintf(&b, "        %s) opts=%s ;;\n", quote(c.subPath()), quote(strings.Join(words, " ")))
	}
	b.WriteString(`        *) return 0 ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
}
`)
	fmt.Fprintf(&b, "complete -o default -F %s %s\n", fn, program)
	return b.String()
}
