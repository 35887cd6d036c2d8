package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cto-ai/clif/internal/usage"
)

func noEnv(string) string { return "" }

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaults(t *testing.T) {
	s := Defaults()
	v, ok := s.Get("pager")
	require.True(t, ok)
	require.Equal(t, "less -FRSX", v)
	require.True(t, s.Bool("journal"))
	require.Equal(t, 20, s.Int("history_limit", 5))
	require.Equal(t, SourceDefault, s.Source("pager"))

	_, ok = s.Get("nope")
	require.False(t, ok)
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.toml"), noEnv)
	require.NoError(t, err)
	require.Equal(t, Defaults().All(), s.All())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeSettings(t, `
theme = "mono"
unknown_key = 1

[history]
history_limit = 50
journal = false
`)
	s, err := LoadWithEnv(path, noEnv)
	require.NoError(t, err)

	v, _ := s.Get("theme")
	require.Equal(t, "mono", v)
	require.Equal(t, SourceFile, s.Source("theme"))
	require.Equal(t, 50, s.Int("history_limit", 0))
	require.False(t, s.Bool("journal"))
	_, ok := s.Get("unknown_key")
	require.False(t, ok)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeSettings(t, "log_level = \"info\"\n")
	env := map[string]string{"CLIF_LOG_LEVEL": "debug"}
	s, err := LoadWithEnv(path, func(k string) string { return env[k] })
	require.NoError(t, err)

	v, _ := s.Get("log_level")
	require.Equal(t, "debug", v)
	require.Equal(t, SourceEnv, s.Source("log_level"))
	require.Equal(t, "env", s.Source("log_level").String())
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeSettings(t, "theme = \n")
	_, err := LoadWithEnv(path, noEnv)
	require.Error(t, err)
}

func TestSettings_SetAndUnset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clif", "settings.toml")
	s, err := LoadWithEnv(path, noEnv)
	require.NoError(t, err)

	require.NoError(t, s.Set("pager", "more"))
	v, _ := s.Get("pager")
	require.Equal(t, "more", v)

	reloaded, err := LoadWithEnv(path, noEnv)
	require.NoError(t, err)
	v, _ = reloaded.Get("pager")
	require.Equal(t, "more", v)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(content), "[display]")

	require.NoError(t, s.Unset("pager"))
	v, _ = s.Get("pager")
	require.Equal(t, "less -FRSX", v)

	_, err = os.Stat(path + ".lock")
	require.True(t, os.IsNotExist(err))
}

func TestSettings_SetUnknownKey(t *testing.T) {
	s, err := LoadWithEnv(filepath.Join(t.TempDir(), "settings.toml"), noEnv)
	require.NoError(t, err)

	err = s.Set("bogus", "1")
	var uerr *usage.Error
	require.ErrorAs(t, err, &uerr)
	require.Equal(t, usage.ErrInvalidSettingKey, uerr.Kind)
}

func TestSettings_SetWithoutFile(t *testing.T) {
	require.Error(t, Defaults().Set("pager", "more"))
}

func TestSettings_IntFallback(t *testing.T) {
	path := writeSettings(t, "history_limit = \"many\"\n")
	s, err := LoadWithEnv(path, noEnv)
	require.NoError(t, err)
	require.Equal(t, 7, s.Int("history_limit", 7))
}

func TestWithLock_TimesOutWhenHeld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path+".lock", []byte("1"), 0600))

	ran := false
	err := WithLock(path, func() error { ran = true; return nil })
	require.ErrorIs(t, err, ErrLockTimeout)
	require.False(t, ran)
}
