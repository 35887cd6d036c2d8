package actions

import "github.com/cto-ai/clif/internal/store"

// Intent constructors for the stock patterns. Command logic may just as
// well yield literal maps; these only spell the shapes out.

func Print(text string) map[string]any {
	return map[string]any{"ns": "io", "cmd": "print", "text": text}
}

// PrintErr prints text on standard error.
func PrintErr(text string) map[string]any {
	return map[string]any{"ns": "io", "cmd": "print", "text": text, "stream": "stderr"}
}

// Page prints text through the configured pager.
func Page(text string) map[string]any {
	return map[string]any{"ns": "io", "cmd": "print", "text": text, "pager": true}
}

// Read reads a file, or standard input when path is "-".
func Read(path string) map[string]any {
	return map[string]any{"ns": "io", "cmd": "read", "path": path}
}

func Write(path, data string) map[string]any {
	return map[string]any{"ns": "io", "cmd": "write", "path": path, "data": data}
}

func Exit(code int) map[string]any {
	return map[string]any{"ns": "process", "cmd": "exit", "code": code}
}

func Version() map[string]any {
	return map[string]any{"ns": "process", "cmd": "version"}
}

// Completions asks for the completion script of shell. An empty shell
// is taken from $SHELL.
func Completions(shell string) map[string]any {
	return map[string]any{"ns": "process", "cmd": "completions", "shell": shell}
}

func GetSetting(key string) map[string]any {
	return map[string]any{"ns": "settings", "cmd": "get", "key": key}
}

func ListSettings() map[string]any {
	return map[string]any{"ns": "settings", "cmd": "list"}
}

func SetSetting(key, value string) map[string]any {
	return map[string]any{"ns": "settings", "cmd": "set", "key": key, "value": value}
}

func UnsetSetting(key string) map[string]any {
	return map[string]any{"ns": "settings", "cmd": "unset", "key": key}
}

// ListRuns asks for journaled runs. A zero limit uses history_limit.
func ListRuns(filter store.RunFilter) map[string]any {
	return map[string]any{
		"ns":      "journal",
		"cmd":     "list",
		"limit":   filter.Limit,
		"command": filter.Command,
		"state":   filter.State,
	}
}

func ShowRun(id string) map[string]any {
	return map[string]any{"ns": "journal", "cmd": "show", "id": id}
}

func PruneRuns(keep int) map[string]any {
	return map[string]any{"ns": "journal", "cmd": "prune", "keep": keep}
}

func Log(level, message string) map[string]any {
	return map[string]any{"ns": "log", "level": level, "message": message}
}
