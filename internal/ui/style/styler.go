package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/cto-ai/clif/internal/domain"
)

// Styler styles text for a single stream with its own on/off switch.
// The package functions follow stdout; failures are reported on stderr,
// which may be a terminal when stdout is piped.
type Styler struct {
	enabled bool
	errorS  lipgloss.Style
	mutedS  lipgloss.Style
}

// NewStyler returns a Styler for theme. NO_COLOR and CLIF_NO_COLOR
// disable it the same way they disable Init.
func NewStyler(enable bool, theme string) *Styler {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("CLIF_NO_COLOR") != "" {
		enable = false
	}
	s := &Styler{enabled: enable}
	if enable {
		r := lipgloss.NewRenderer(os.Stderr)
		r.SetColorProfile(termenv.ANSI256)
		c := LoadColorConfig(theme)
		s.errorS = streamStyle(r, c.Error)
		s.mutedS = streamStyle(r, c.Muted)
	}
	return s
}

func streamStyle(r *lipgloss.Renderer, value string) lipgloss.Style {
	if value == "bold" {
		return r.NewStyle().Bold(true)
	}
	return r.NewStyle().Foreground(lipgloss.Color(value))
}

func (s *Styler) Enabled() bool { return s.enabled }

func (s *Styler) Error(text string) string { return s.render(s.errorS, text) }

func (s *Styler) Muted(text string) string { return s.render(s.mutedS, text) }

func (s *Styler) render(st lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return st.Render(text)
}

var _ domain.Styler = (*Styler)(nil)
