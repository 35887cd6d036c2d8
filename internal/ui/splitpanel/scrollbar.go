package splitpanel

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	ScrollThumbChar = "█"
	ScrollTrackChar = "│"
)

// BuildScrollbar returns one cell per visible row. Content that fits
// gets a blank column.
func BuildScrollbar(viewHeight, totalItems, scrollOffset int, activeColor, trackColor lipgloss.Color, focused bool) []string {
	bar := make([]string, viewHeight)
	if totalItems <= viewHeight {
		for i := range bar {
			bar[i] = " "
		}
		return bar
	}

	thumbSize := min(max(viewHeight*viewHeight/totalItems, 1), max(viewHeight-2, 1))
	trackSpace := max(viewHeight-thumbSize, 0)
	maxScroll := max(totalItems-viewHeight, 1)
	thumbPos := min(max(scrollOffset*trackSpace/maxScroll, 0), trackSpace)

	thumbColor := trackColor
	if focused {
		thumbColor = activeColor
	}
	thumb := lipgloss.NewStyle().Foreground(thumbColor).Render(ScrollThumbChar)
	track := lipgloss.NewStyle().Foreground(trackColor).Render(ScrollTrackChar)

	for i := range bar {
		if i >= thumbPos && i < thumbPos+thumbSize {
			bar[i] = thumb
		} else {
			bar[i] = track
		}
	}
	return bar
}
