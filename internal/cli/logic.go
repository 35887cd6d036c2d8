package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cto-ai/clif/internal/actions"
	"github.com/cto-ai/clif/internal/domain"
	"github.com/cto-ai/clif/internal/format"
	"github.com/cto-ai/clif/internal/intent"
	"github.com/cto-ai/clif/internal/store"
	"github.com/cto-ai/clif/internal/ui/style"
	"github.com/cto-ai/clif/internal/usage"
)

// Logic is the table commands.yaml refers to by name.
func Logic() map[string]intent.Logic {
	return map[string]intent.Logic{
		"cat":           intent.Generator(cat),
		"echo":          intent.Generator(echo),
		"config-get":    intent.Generator(configGet),
		"config-list":   intent.Generator(configList),
		"config-set":    intent.Generator(configSet),
		"config-unset":  intent.Generator(configUnset),
		"history-list":  intent.Generator(historyList),
		"history-show":  intent.Generator(historyShow),
		"history-prune": intent.Generator(historyPrune),
		"exit":          intent.Generator(exit),
		"version":       intent.Generator(version),
		"completions":   intent.Generator(completionScript),
	}
}

func cat(y *intent.Yielder, in intent.Input) (any, error) {
	content, err := y.Yield(actions.Read(in.String("path")))
	if err != nil {
		return nil, err
	}
	text, _ := content.(string)
	if text == "" {
		return nil, nil
	}
	if in.Bool("number") {
		text = numberLines(text)
	}
	_, err = y.Yield(actions.Print(text))
	return nil, err
}

func echo(y *intent.Yielder, in intent.Input) (any, error) {
	words := in.Implicits.Positionals
	if in.Has("text") {
		words = append([]string{in.String("text")}, words...)
	}
	text := strings.Join(words, " ")

	if in.Bool("upper") {
		text = strings.ToUpper(text)
	}
	if prefix := in.String("prefix"); prefix != "" {
		lines := strings.Split(text, "\n")
		for i := range lines {
			lines[i] = prefix + lines[i]
		}
		text = strings.Join(lines, "\n")
	}

	if out := in.String("out"); out != "" {
		_, err := y.Yield(actions.Write(out, text+"\n"))
		return nil, err
	}
	_, err := y.Yield(actions.Print(text))
	return nil, err
}

func configGet(y *intent.Yielder, in intent.Input) (any, error) {
	v, err := y.Yield(actions.GetSetting(in.String("key")))
	if err != nil {
		return nil, err
	}
	_, err = y.Yield(actions.Print(fmt.Sprint(v)))
	return nil, err
}

func configList(y *intent.Yielder, _ intent.Input) (any, error) {
	v, err := y.Yield(actions.ListSettings())
	if err != nil {
		return nil, err
	}
	rows, _ := v.([]actions.Setting)
	_, err = y.Yield(actions.Page(renderSettings(rows)))
	return nil, err
}

func configSet(y *intent.Yielder, in intent.Input) (any, error) {
	key, value := in.String("key"), in.String("value")
	if _, err := y.Yield(actions.SetSetting(key, value)); err != nil {
		return nil, err
	}
	_, err := y.Yield(actions.Print(style.Success(key + " = " + value)))
	return nil, err
}

func configUnset(y *intent.Yielder, in intent.Input) (any, error) {
	key := in.String("key")
	if _, err := y.Yield(actions.UnsetSetting(key)); err != nil {
		return nil, err
	}
	_, err := y.Yield(actions.Print(style.Success(key + " restored to its default")))
	return nil, err
}

func historyList(y *intent.Yielder, in intent.Input) (any, error) {
	filter := store.RunFilter{
		Command: in.String("command"),
		State:   in.String("state"),
	}
	if in.String("limit") != "" {
		n, err := strconv.Atoi(in.String("limit"))
		if err != nil || n <= 0 {
			return nil, usage.InvalidFlag("--limit=" + in.String("limit"))
		}
		filter.Limit = n
	}

	v, err := y.Yield(actions.ListRuns(filter))
	if err != nil {
		return nil, err
	}
	runs, _ := v.([]store.RunRecord)
	_, err = y.Yield(actions.Page(renderRuns(runs, clock(in))))
	return nil, err
}

func historyShow(y *intent.Yielder, in intent.Input) (any, error) {
	v, err := y.Yield(actions.ShowRun(in.String("id")))
	if err != nil {
		return nil, err
	}
	detail, _ := v.(actions.RunDetail)
	_, err = y.Yield(actions.Page(renderRun(detail, clock(in))))
	return nil, err
}

func historyPrune(y *intent.Yielder, in intent.Input) (any, error) {
	keep, err := strconv.Atoi(in.String("keep"))
	if err != nil || keep < 0 {
		return nil, usage.InvalidFlag("--keep=" + in.String("keep"))
	}
	v, err := y.Yield(actions.PruneRuns(keep))
	if err != nil {
		return nil, err
	}
	_, err = y.Yield(actions.Print(fmt.Sprintf("pruned %v runs", v)))
	return nil, err
}

func exit(y *intent.Yielder, in intent.Input) (any, error) {
	code := 0
	if raw := in.String("code"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, intent.Fail(map[string]any{"code": "EINVAL"}, fmt.Sprintf("exit: %q is not a status code", raw))
		}
		code = n
	}
	_, err := y.Yield(actions.Exit(code))
	return nil, err
}

func version(y *intent.Yielder, _ intent.Input) (any, error) {
	v, err := y.Yield(actions.Version())
	if err != nil {
		return nil, err
	}
	_, err = y.Yield(actions.Print(fmt.Sprintf("%s version %v", usage.ProgramName, v)))
	return nil, err
}

func completionScript(y *intent.Yielder, in intent.Input) (any, error) {
	script, err := y.Yield(actions.Completions(in.String("shell")))
	if err != nil {
		return nil, err
	}
	text, _ := script.(string)
	_, err = y.Yield(actions.Print(text))
	return nil, err
}

func clock(in intent.Input) format.Clock {
	settings, _ := in.Settings.(domain.SettingsProvider)
	return format.NewClock(settings)
}

func numberLines(text string) string {
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%6d\t%s", i+1, line)
	}
	return b.String()
}
