package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/cto-ai/clif/internal/domain"
)

const fileHeader = "# clif settings\n# Edit values below or use: clif config set <key> <value>\n\n"

// writeFile replaces the settings file atomically. Keys are grouped under
// their section tables.
func writeFile(path string, values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	sections := map[string]map[string]string{}
	for key, value := range values {
		meta, ok := domain.GetSettingKey(key)
		if !ok {
			continue
		}
		section := strings.ToLower(meta.Section)
		if sections[section] == nil {
			sections[section] = map[string]string{}
		}
		sections[section][key] = value
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".settings.tmp.*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := tmpFile.Chmod(0600); err != nil {
		return err
	}

	w := bufio.NewWriter(tmpFile)
	if _, err := w.WriteString(fileHeader); err != nil {
		return err
	}
	if err := toml.NewEncoder(w).Encode(sections); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}

	success = true
	return nil
}
