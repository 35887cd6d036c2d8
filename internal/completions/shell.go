package completions

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Shell is a supported shell.
type Shell string

const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// Shells lists the supported shells.
var Shells = []Shell{ShellBash, ShellZsh, ShellFish}

// ParseShell accepts a shell name or a path to a shell binary.
func ParseShell(s string) (Shell, error) {
	name := strings.ToLower(filepath.Base(strings.TrimSpace(s)))
	for _, sh := range Shells {
		if name == string(sh) {
			return sh, nil
		}
	}
	return "", fmt.Errorf("unsupported shell %q (supported: bash, zsh, fish)", s)
}

// Generate returns the completion script of shell for program.
func Generate(shell Shell, program string, commands []CommandInfo) (string, error) {
	switch shell {
	case ShellBash:
		return GenerateBash(program, commands), nil
	case ShellZsh:
		return GenerateZsh(program, commands), nil
	case ShellFish:
		return GenerateFish(program, commands), nil
	default:
		return "", fmt.Errorf("unsupported shell: %s", shell)
	}
}

// SourceInstructions returns the line that loads completions for bin.
func SourceInstructions(shell Shell, bin string) string {
	switch shell {
	case ShellBash, ShellZsh:
		return fmt.Sprintf(`eval "$(%s completions %s)"`, bin, shell)
	case ShellFish:
		return fmt.Sprintf(`%s completions fish | source`, bin)
	default:
		return ""
	}
}

// RcFile returns the rc file path for the given shell
func RcFile(shell Shell) string {
	switch shell {
	case ShellBash:
		return "~/.bashrc"
	case ShellZsh:
		return "~/.zshrc"
	case ShellFish:
		return "~/.config/fish/config.fish"
	default:
		return ""
	}
}

// identifier turns a program name into a shell function name part.
func identifier(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}

// quote single-quotes s for any POSIX-like shell.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
