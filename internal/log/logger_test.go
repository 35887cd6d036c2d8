package log

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"Warn", LevelWarn},
		{"error", LevelError},
		{"", LevelWarn},
		{"verbose", LevelWarn},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestLevel_Mapping(t *testing.T) {
	tests := []struct {
		level  Level
		name   string
		logrus logrus.Level
	}{
		{LevelDebug, "DEBUG", logrus.DebugLevel},
		{LevelInfo, "INFO", logrus.InfoLevel},
		{LevelWarn, "WARN", logrus.WarnLevel},
		{LevelError, "ERROR", logrus.ErrorLevel},
		{Level(9), "UNKNOWN", logrus.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.name, tt.level.String())
			require.Equal(t, tt.logrus, tt.level.logrus())
		})
	}
}

func TestNewWithWriter_FiltersBelowMinimum(t *testing.T) {
	tests := []struct {
		min  Level
		want []string
	}{
		{LevelDebug, []string{"level=debug", "level=info", "level=warning", "level=error"}},
		{LevelInfo, []string{"level=info", "level=warning", "level=error"}},
		{LevelWarn, []string{"level=warning", "level=error"}},
		{LevelError, []string{"level=error"}},
	}
	for _, tt := range tests {
		t.Run(tt.min.String(), func(t *testing.T) {
			var buf bytes.Buffer
			l := NewWithWriter(&buf, tt.min)
			l.Debug("d")
			l.Info("i")
			l.Warn("w")
			l.Error("e")

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			require.Len(t, lines, len(tt.want))
			for i, want := range tt.want {
				require.Contains(t, lines[i], want)
			}
		})
	}
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, LevelInfo)
	l.Info("run %s took %dms", "abc", 12)

	line := buf.String()
	require.Contains(t, line, `msg="run abc took 12ms"`)
	require.Regexp(t, `time="\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}"`, line)
	require.NotContains(t, line, "\x1b[")
}

func TestLogger_WithField(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, LevelDebug)
	l.WithField("run", "r-1").Info("step")

	require.Contains(t, buf.String(), "run=r-1")
	require.Contains(t, buf.String(), "msg=step")
}

func TestLogger_SetEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, LevelDebug)

	l.SetEnabled(false)
	l.Error("hidden")
	require.Empty(t, buf.String())

	l.SetEnabled(true)
	l.Error("shown")
	require.Contains(t, buf.String(), "msg=shown")
}

func TestLogger_Writer(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, LevelInfo)

	n, err := l.Writer(LevelInfo).Write([]byte("from writer\n"))
	require.NoError(t, err)
	require.Equal(t, len("from writer\n"), n)
	require.Contains(t, buf.String(), `msg="from writer"`)
}

func TestNew_FileModes(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	dir := filepath.Join(t.TempDir(), "logs")
	path := filepath.Join(dir, "clif.log")

	l, err := New(path, LevelInfo)
	require.NoError(t, err)
	l.Info("first")
	require.NoError(t, l.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
	info, err = os.Stat(dir)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0700), info.Mode().Perm())

	// An existing world-readable file is tightened and appended to.
	require.NoError(t, os.Chmod(path, 0644))
	l, err = New(path, LevelInfo)
	require.NoError(t, err)
	l.Info("second")
	require.NoError(t, l.Close())

	info, err = os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "msg=first")
	require.Contains(t, string(data), "msg=second")
}

func TestNew_UnwritablePath(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(parent, nil, 0600))

	_, err := New(filepath.Join(parent, "clif.log"), LevelInfo)
	require.ErrorContains(t, err, "create log directory")
}

func TestLogger_CloseStopsLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clif.log")
	l, err := New(path, LevelInfo)
	require.NoError(t, err)
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	l.Error("after close")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Empty(t, data)
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	require.NotPanics(t, func() {
		l.Info("x")
		l.SetEnabled(true)
	})
	require.NoError(t, l.Close())

	if GetLogger() == nil {
		require.NotPanics(t, func() { Warn("no global logger yet") })
	}
}

func TestNopLogger(t *testing.T) {
	var l NopLogger
	l.Debug("x")
	l.Error("y")
	require.NoError(t, l.Close())
}
