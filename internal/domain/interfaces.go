package domain

import (
	"io"
)

// SettingsProvider defines read access to the settings handed to every
// pattern handler.
type SettingsProvider interface {
	// Get returns the value for a settings key.
	Get(key string) (string, bool)

	// All returns every known key with its effective value.
	All() map[string]string
}

// Logger defines logging operations.
type Logger interface {
	// Debug logs a debug message.
	Debug(format string, args ...any)

	// Info logs an info message.
	Info(format string, args ...any)

	// Warn logs a warning message.
	Warn(format string, args ...any)

	// Error logs an error message.
	Error(format string, args ...any)

	// Close closes the logger.
	Close() error
}

// OutputWriter defines output operations.
type OutputWriter interface {
	io.Writer

	// Printf formats and prints to the output.
	Printf(format string, args ...any) (int, error)

	// Println prints a line to the output.
	Println(args ...any) (int, error)

	// Pager displays content through a pager if appropriate.
	Pager(content string)
}

// Styler styles the text of one output stream.
type Styler interface {
	Enabled() bool
	Error(text string) string
	Muted(text string) string
}
