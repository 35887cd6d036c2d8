package actions

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cto-ai/clif/internal/pattern"
)

// args gives typed access to the fields of an intent.
type args map[string]any

func argsOf(value any) args {
	f, _ := pattern.Fields(value)
	return f
}

func (a args) String(key string) string {
	switch v := a[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func (a args) Bool(key string) bool {
	b, _ := a[key].(bool)
	return b
}

// Int reads a whole number of any numeric type or a numeric string.
func (a args) Int(key string) (int, bool) {
	switch v := a[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	case uint:
		return int(v), true
	case uint64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	}
	return 0, false
}
