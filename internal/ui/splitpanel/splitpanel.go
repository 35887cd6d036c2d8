// Package splitpanel renders a bordered sidebar and content pane side by side.
package splitpanel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cto-ai/clif/internal/ui/style"
)

// Panel is the visible slice of one pane.
type Panel struct {
	Lines      []string
	ScrollPos  int
	TotalItems int
}

// Config bounds the sidebar width.
type Config struct {
	SidebarWidthPercent float64
	SidebarMinWidth     int
	SidebarMaxWidth     int
}

// Layout holds computed dimensions for one frame.
type Layout struct {
	Width        int
	Height       int
	SidebarWidth int
	ContentWidth int
	FocusSidebar bool
	Colors       style.ColorConfig
}

// NewLayout splits width between the sidebar and the content pane.
func NewLayout(width, height int, cfg Config, colors style.ColorConfig) *Layout {
	sidebarWidth := int(float64(width) * cfg.SidebarWidthPercent)
	sidebarWidth = max(sidebarWidth, cfg.SidebarMinWidth)
	sidebarWidth = min(sidebarWidth, cfg.SidebarMaxWidth)

	return &Layout{
		Width:        width,
		Height:       height,
		SidebarWidth: sidebarWidth,
		ContentWidth: max(width-sidebarWidth, 0),
		FocusSidebar: true,
		Colors:       colors,
	}
}

// Render joins both panes horizontally.
func (l *Layout) Render(sidebar, content Panel) string {
	active := lipgloss.Color(l.Colors.UIActive)
	dim := lipgloss.Color(l.Colors.UIDim)

	left := l.buildPanel(sidebar, l.SidebarWidth, l.FocusSidebar, active, dim)
	right := l.buildPanel(content, l.ContentWidth, !l.FocusSidebar, active, dim)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// border(2) + padding(2) + scrollbar(2)
const chrome = 6

func (l *Layout) buildPanel(panel Panel, width int, focused bool, active, dim lipgloss.Color) string {
	contentWidth := max(width-chrome, 1)
	visible := l.VisibleHeight()

	lines := panel.Lines
	if len(lines) > visible {
		lines = lines[:visible]
	}

	total := panel.TotalItems
	if total == 0 {
		total = len(panel.Lines)
	}
	bar := BuildScrollbar(visible, total, panel.ScrollPos, active, dim, focused)

	rows := make([]string, visible)
	for i := range rows {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		if w := lipgloss.Width(line); w > contentWidth {
			line = Truncate(line, contentWidth)
		} else {
			line += strings.Repeat(" ", contentWidth-w)
		}
		rows[i] = line + " " + bar[i]
	}

	border := dim
	if focused {
		border = active
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(strings.Join(rows, "\n"))
}

// Truncate shortens s to maxWidth cells, ending in "...".
func Truncate(s string, maxWidth int) string {
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for i := len(runes); i > 0; i-- {
		candidate := string(runes[:i])
		if lipgloss.Width(candidate) <= maxWidth-3 {
			return candidate + "..."
		}
	}
	return "..."
}

// SidebarContentWidth is the usable text width of the sidebar.
func (l *Layout) SidebarContentWidth() int {
	return max(l.SidebarWidth-chrome, 1)
}

// MainContentWidth is the usable text width of the content pane.
func (l *Layout) MainContentWidth() int {
	return max(l.ContentWidth-chrome, 1)
}

// VisibleHeight is the number of text rows inside a pane.
func (l *Layout) VisibleHeight() int {
	return max(l.Height-2, 1)
}
