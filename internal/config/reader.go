package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/cto-ai/clif/internal/domain"
	"github.com/cto-ai/clif/internal/log"
)

// readFile decodes the settings file into a flat key map. Keys may sit at
// the top level or inside a section table such as [display]. Unknown keys
// are logged and dropped.
func readFile(path string) (map[string]string, error) {
	out := map[string]string{}

	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return out, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := os.Chmod(path, 0600); err != nil {
		log.Warn("config: could not set permissions on settings file: %v", err)
	}

	for k, v := range raw {
		table, ok := v.(map[string]any)
		if !ok {
			put(out, k, v)
			continue
		}
		for inner, iv := range table {
			put(out, inner, iv)
		}
	}
	return out, nil
}

func put(out map[string]string, key string, v any) {
	key = strings.ToLower(key)
	if !domain.IsValidSettingKey(key) {
		log.Warn("config: ignoring unknown setting %q", key)
		return
	}
	out[key] = fmt.Sprint(v)
}
