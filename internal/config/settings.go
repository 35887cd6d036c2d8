// Package config loads the user settings: code defaults from
// domain.SettingKeys, overlaid by the TOML settings file, overlaid by
// CLIF_* environment variables.
package config

import (
	"fmt"
	"maps"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/cto-ai/clif/internal/domain"
	"github.com/cto-ai/clif/internal/usage"
)

// EnvPrefix prefixes environment overrides, e.g. CLIF_LOG_LEVEL.
const EnvPrefix = "CLIF_"

// Source tells where a setting value came from.
type Source int

const (
	SourceDefault Source = iota
	SourceFile
	SourceEnv
)

func (s Source) String() string {
	switch s {
	case SourceFile:
		return "file"
	case SourceEnv:
		return "env"
	default:
		return "default"
	}
}

// Settings is the resolved settings value handed to every handler.
type Settings struct {
	mu      sync.RWMutex
	path    string
	getenv  func(string) string
	file    map[string]string
	values  map[string]string
	sources map[string]Source
}

// Load reads the settings file at path. A missing file is not an error.
func Load(path string) (*Settings, error) {
	return LoadWithEnv(path, os.Getenv)
}

// LoadWithEnv is Load with an explicit environment lookup.
func LoadWithEnv(path string, getenv func(string) string) (*Settings, error) {
	file := map[string]string{}
	if path != "" {
		var err error
		if file, err = readFile(path); err != nil {
			return nil, err
		}
	}
	s := &Settings{path: path, getenv: getenv, file: file}
	s.resolve()
	return s, nil
}

// Defaults returns settings with no file and no environment.
func Defaults() *Settings {
	s := &Settings{getenv: func(string) string { return "" }, file: map[string]string{}}
	s.resolve()
	return s
}

func (s *Settings) resolve() {
	s.values = make(map[string]string, len(domain.SettingKeys))
	s.sources = make(map[string]Source, len(domain.SettingKeys))
	for _, key := range domain.SettingKeys {
		s.values[key.Name] = key.Default
		s.sources[key.Name] = SourceDefault
		if v, ok := s.file[key.Name]; ok {
			s.values[key.Name] = v
			s.sources[key.Name] = SourceFile
		}
		if v := s.getenv(EnvPrefix + strings.ToUpper(key.Name)); v != "" {
			s.values[key.Name] = v
			s.sources[key.Name] = SourceEnv
		}
	}
}

// Path is the settings file this value was loaded from.
func (s *Settings) Path() string {
	return s.path
}

// Get returns the value of a known setting.
func (s *Settings) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// All returns a copy of every setting.
func (s *Settings) All() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}

// Source reports where key's value came from.
func (s *Settings) Source(key string) Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sources[key]
}

// Bool parses key as a boolean; anything unparsable is false.
func (s *Settings) Bool(key string) bool {
	v, _ := s.Get(key)
	b, _ := strconv.ParseBool(v)
	return b
}

// Int parses key as an integer, falling back when it is not one.
func (s *Settings) Int(key string, fallback int) int {
	v, _ := s.Get(key)
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return n
}

// Set stores value in the settings file. An environment override still
// wins over the stored value.
func (s *Settings) Set(key, value string) error {
	if !domain.IsValidSettingKey(key) {
		return usage.InvalidSettingKey(key)
	}
	return s.update(func(file map[string]string) { file[key] = value })
}

// Unset removes key from the settings file, restoring its default.
func (s *Settings) Unset(key string) error {
	if !domain.IsValidSettingKey(key) {
		return usage.InvalidSettingKey(key)
	}
	return s.update(func(file map[string]string) { delete(file, key) })
}

func (s *Settings) update(edit func(map[string]string)) error {
	if s.path == "" {
		return fmt.Errorf("config: settings have no backing file")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return WithLock(s.path, func() error {
		file, err := readFile(s.path)
		if err != nil {
			return err
		}
		edit(file)
		if err := writeFile(s.path, file); err != nil {
			return err
		}
		s.file = file
		s.resolve()
		return nil
	})
}

var _ domain.SettingsProvider = (*Settings)(nil)
