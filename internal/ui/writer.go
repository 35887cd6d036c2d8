// Package ui provides the terminal output writer with pager support.
//
// The pager command comes from the --pager override, the "pager" setting
// or $PAGER, and is executed as given. Users should only configure
// pagers they trust.
package ui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/cto-ai/clif/internal/domain"
)

// Writer implements domain.OutputWriter. Writes are serialized.
type Writer struct {
	mu            sync.Mutex
	out           io.Writer
	pagerDisabled bool
	pagerOverride string
	settings      domain.SettingsProvider
	envGetter     func(string) string
}

const defaultPager = "less -FRSX"

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithPagerDisabled disables the pager.
func WithPagerDisabled() WriterOption {
	return func(w *Writer) {
		w.pagerDisabled = true
	}
}

// WithPagerOverride sets a pager command override.
func WithPagerOverride(cmd string) WriterOption {
	return func(w *Writer) {
		w.pagerOverride = cmd
	}
}

// WithSettings reads the "pager" setting from s.
func WithSettings(s domain.SettingsProvider) WriterOption {
	return func(w *Writer) {
		w.settings = s
	}
}

// WithEnvGetter sets the environment variable getter function.
func WithEnvGetter(fn func(string) string) WriterOption {
	return func(w *Writer) {
		w.envGetter = fn
	}
}

// NewWriter creates a new Writer that writes to stdout.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{
		out:       os.Stdout,
		envGetter: os.Getenv,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewWriterTo creates a new Writer that writes to the specified writer.
func NewWriterTo(out io.Writer, opts ...WriterOption) *Writer {
	w := &Writer{
		out:       out,
		envGetter: os.Getenv,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.Write(p)
}

// Printf formats and prints to the output.
func (w *Writer) Printf(format string, args ...any) (int, error) {
	return fmt.Fprintf(w, format, args...)
}

// Println prints a line to the output.
func (w *Writer) Println(args ...any) (int, error) {
	return fmt.Fprintln(w, args...)
}

// Pager displays content through a pager when the output is a terminal.
// Anything else, or a failing pager, gets the content written directly.
func (w *Writer) Pager(content string) {
	if !w.interactive() {
		fmt.Fprint(w, content)
		return
	}
	parts := strings.Fields(w.PagerCommand())
	if len(parts) == 0 || parts[0] == "cat" {
		fmt.Fprint(w, content)
		return
	}

	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = w.out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprint(w, content)
	}
}

// PagerCommand resolves the pager command line. Precedence is the
// override, then the "pager" setting, then $PAGER, then less.
func (w *Writer) PagerCommand() string {
	if w.pagerOverride != "" {
		return w.pagerOverride
	}
	if w.settings != nil {
		if v, ok := w.settings.Get("pager"); ok && v != "" {
			return v
		}
	}
	if w.envGetter != nil {
		if v := w.envGetter("PAGER"); v != "" {
			return v
		}
	}
	return defaultPager
}

func (w *Writer) interactive() bool {
	if w.pagerDisabled {
		return false
	}
	f, ok := w.out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Verify Writer implements domain.OutputWriter
var _ domain.OutputWriter = (*Writer)(nil)
