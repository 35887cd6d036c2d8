package actions

import (
	"context"
	"errors"
	"strconv"

	"github.com/cto-ai/clif/internal/intent"
	"github.com/cto-ai/clif/internal/store"
)

const defaultHistoryLimit = 20

// RunDetail is what `journal show` resolves to.
type RunDetail struct {
	Run   store.RunRecord
	Steps []store.StepRow
}

var errNoHistory = intent.Fail(map[string]any{"code": "ENOJOURNAL"}, "run history is unavailable")

func (d Deps) listRuns(ctx context.Context, value any, settings any) (any, error) {
	if d.History == nil {
		return nil, errNoHistory
	}
	a := argsOf(value)
	limit, ok := a.Int("limit")
	if !ok || limit <= 0 {
		limit = historyLimit(settings)
	}
	return d.History.List(ctx, store.RunFilter{
		Command: a.String("command"),
		State:   a.String("state"),
		Limit:   limit,
	})
}

func historyLimit(settings any) int {
	if s, ok := settings.(interface{ Int(string, int) int }); ok {
		return s.Int("history_limit", defaultHistoryLimit)
	}
	if p, err := provider(settings); err == nil {
		if v, ok := p.Get("history_limit"); ok {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				return n
			}
		}
	}
	return defaultHistoryLimit
}

func (d Deps) showRun(ctx context.Context, value any, _ any) (any, error) {
	if d.History == nil {
		return nil, errNoHistory
	}
	id := argsOf(value).String("id")
	run, steps, err := d.History.Get(ctx, id)
	if errors.Is(err, store.ErrRunNotFound) {
		return nil, intent.Fail(map[string]any{"code": "ENORUN", "id": id}, "no run with id "+id).Wrap(err)
	}
	if err != nil {
		return nil, err
	}
	return RunDetail{Run: run, Steps: steps}, nil
}

// pruneRuns resolves to the number of runs removed.
func (d Deps) pruneRuns(ctx context.Context, value any, _ any) (any, error) {
	if d.History == nil {
		return nil, errNoHistory
	}
	keep, ok := argsOf(value).Int("keep")
	if !ok || keep < 0 {
		return nil, intent.Fail(map[string]any{"code": "EINVAL"}, "prune: keep must be a non-negative number")
	}
	n, err := d.History.Prune(ctx, keep)
	if err != nil {
		return nil, err
	}
	d.Logger.Info("actions: pruned %d runs, kept %d", n, keep)
	return int(n), nil
}
