package actions

import (
	"context"
	"strings"
)

func (d Deps) log(_ context.Context, value any, _ any) (any, error) {
	a := argsOf(value)
	msg := a.String("message")
	switch strings.ToLower(a.String("level")) {
	case "debug":
		d.Logger.Debug("%s", msg)
	case "warn", "warning":
		d.Logger.Warn("%s", msg)
	case "error":
		d.Logger.Error("%s", msg)
	default:
		d.Logger.Info("%s", msg)
	}
	return nil, nil
}
