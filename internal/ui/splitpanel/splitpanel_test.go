package splitpanel

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/cto-ai/clif/internal/ui/style"
)

func TestNewLayout_ClampsSidebar(t *testing.T) {
	cfg := Config{SidebarWidthPercent: 0.25, SidebarMinWidth: 24, SidebarMaxWidth: 32}
	colors := style.LoadColorConfig("mono-dark")

	tests := []struct {
		width       int
		wantSidebar int
	}{
		{width: 60, wantSidebar: 24},
		{width: 112, wantSidebar: 28},
		{width: 200, wantSidebar: 32},
	}
	for _, tt := range tests {
		l := NewLayout(tt.width, 20, cfg, colors)
		require.Equal(t, tt.wantSidebar, l.SidebarWidth)
		require.Equal(t, tt.width-tt.wantSidebar, l.ContentWidth)
	}
}

func TestLayout_RenderHeight(t *testing.T) {
	l := NewLayout(80, 10, Config{SidebarWidthPercent: 0.3, SidebarMinWidth: 10, SidebarMaxWidth: 40}, style.LoadColorConfig("mono-dark"))
	out := l.Render(Panel{Lines: []string{"a", "b"}}, Panel{Lines: []string{"content"}})
	require.Equal(t, 10, lipgloss.Height(out))
	require.Contains(t, out, "content")
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", Truncate("short", 10))
	require.Equal(t, "abcd...", Truncate("abcdefghij", 7))
}

func TestBuildScrollbar(t *testing.T) {
	fits := BuildScrollbar(5, 3, 0, "1", "2", true)
	require.Equal(t, []string{" ", " ", " ", " ", " "}, fits)

	bar := BuildScrollbar(10, 100, 90, "1", "2", false)
	require.Len(t, bar, 10)
	require.True(t, strings.Contains(bar[9], ScrollThumbChar))
	require.True(t, strings.Contains(bar[0], ScrollTrackChar))
}
