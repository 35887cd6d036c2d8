package style

import (
	"strings"

	"github.com/muesli/termenv"
)

// ColorConfig holds all colors for the UI.
// Values can be ANSI color numbers (0-255) or "bold" for bold styling.
type ColorConfig struct {
	Success  string
	Warning  string
	Error    string
	Info     string
	Muted    string
	Header   string
	UIActive string // focused panel border in the help browser
	UIDim    string // unfocused panel border
}

// BaseThemeNames lists available theme bases (auto-detects dark/light).
var BaseThemeNames = []string{"default", "mono"}

// Themes contains the built-in color themes.
// Dark themes use bright colors, light themes dark ones.
var Themes = map[string]ColorConfig{
	"default-dark": {
		Success:  "10",
		Warning:  "11",
		Error:    "9",
		Info:     "14",
		Muted:    "245",
		Header:   "bold",
		UIActive: "14",
		UIDim:    "240",
	},
	"default-light": {
		Success:  "28",
		Warning:  "130",
		Error:    "124",
		Info:     "27",
		Muted:    "243",
		Header:   "bold",
		UIActive: "27",
		UIDim:    "250",
	},
	"mono-dark": {
		Success:  "15",
		Warning:  "15",
		Error:    "15",
		Info:     "15",
		Muted:    "245",
		Header:   "bold",
		UIActive: "15",
		UIDim:    "240",
	},
	"mono-light": {
		Success:  "0",
		Warning:  "0",
		Error:    "0",
		Info:     "0",
		Muted:    "243",
		Header:   "bold",
		UIActive: "0",
		UIDim:    "250",
	},
}

// IsDarkBackground returns true if the terminal has a dark background.
// Returns true if detection fails.
func IsDarkBackground() bool {
	return termenv.HasDarkBackground()
}

// ResolveThemeName appends -dark or -light to a base theme name based on
// the terminal background. Names that already carry a suffix are kept.
func ResolveThemeName(name string) string {
	if name == "" {
		name = "default"
	}
	if strings.HasSuffix(name, "-dark") || strings.HasSuffix(name, "-light") {
		return name
	}
	if IsDarkBackground() {
		return name + "-dark"
	}
	return name + "-light"
}

// LoadColorConfig returns the colors of the named theme, falling back to
// default-dark for unknown names.
func LoadColorConfig(theme string) ColorConfig {
	if c, ok := Themes[ResolveThemeName(theme)]; ok {
		return c
	}
	return Themes["default-dark"]
}
