package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cto-ai/clif/internal/actions"
	"github.com/cto-ai/clif/internal/format"
	"github.com/cto-ai/clif/internal/store"
	"github.com/cto-ai/clif/internal/ui/style"
)

// renderSettings prints key=value lines under their section headers.
// Values that do not come from the defaults are annotated.
func renderSettings(rows []actions.Setting) string {
	var b strings.Builder
	section := ""
	for _, r := range rows {
		if r.Section != section {
			if section != "" {
				b.WriteString("\n")
			}
			section = r.Section
			b.WriteString(style.Header(section) + "\n")
		}
		line := r.Key + "=" + r.Value
		if r.Source != "" && r.Source != "default" {
			line += " " + style.Muted("("+r.Source+")")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func renderRuns(runs []store.RunRecord, c format.Clock) string {
	if len(runs) == 0 {
		return style.Muted("no runs recorded")
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			style.Header(shortID(r.ID)),
			c.DateTimeShort(r.StartedAt.Local()),
			stateLabel(r),
			r.Command,
			style.Muted(duration(r)),
		})
	}
	return columns(rows)
}

func renderRun(d actions.RunDetail, c format.Clock) string {
	r := d.Run
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", style.Header("run"), r.ID)
	fmt.Fprintf(&b, "command:  %s\n", r.Command)
	fmt.Fprintf(&b, "started:  %s\n", c.Full(r.StartedAt.Local()))
	fmt.Fprintf(&b, "state:    %s\n", stateLabel(r))
	fmt.Fprintf(&b, "duration: %s\n", duration(r))
	if r.FailureMsg != "" {
		fmt.Fprintf(&b, "failure:  %s %s\n", style.Error(r.FailureNS), r.FailureMsg)
	}

	if len(d.Steps) == 0 {
		return b.String()
	}
	b.WriteString("\n" + style.Header("intents") + "\n")
	rows := make([][]string, 0, len(d.Steps))
	for _, st := range d.Steps {
		handler := st.Handler
		switch {
		case st.Error != "":
			handler = style.Error("error: " + st.Error)
		case !st.Resolved:
			handler = style.Warning("unresolved")
		}
		rows = append(rows, []string{fmt.Sprint(st.Seq), st.Intent, handler})
	}
	b.WriteString(columns(rows))
	return b.String()
}

func stateLabel(r store.RunRecord) string {
	switch {
	case r.State == "failed":
		return style.Error(r.State)
	case r.Recovered:
		return style.Warning(r.State + " (recovered)")
	case r.State == "done":
		return style.Success(r.State)
	default:
		return r.State
	}
}

func duration(r store.RunRecord) string {
	if r.FinishedAt == nil {
		return "-"
	}
	return format.Duration(r.FinishedAt.Sub(r.StartedAt))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// columns left-aligns cells on their display width, so styled cells
// line up with plain ones.
func columns(rows [][]string) string {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			b.WriteString(cell)
			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+2))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
