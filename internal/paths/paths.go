package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "clif"

// HomeEnv overrides every directory below when set.
const HomeEnv = "CLIF_HOME"

// AppDataDir returns the application data directory for settings and logs.
// Uses os.UserConfigDir() which returns:
//   - macOS: ~/Library/Application Support
//   - Linux: $XDG_CONFIG_HOME or ~/.config
//   - Windows: %AppData% (roaming)
func AppDataDir() string {
	if home := os.Getenv(HomeEnv); home != "" {
		_ = os.MkdirAll(home, 0700)
		return home
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	path := filepath.Join(dir, appDirName)
	_ = os.MkdirAll(path, 0700)

	return path
}

// AppLocalDataDir returns the OS-appropriate local data directory, where
// the history database lives.
//   - macOS: ~/Library/Application Support/clif
//   - Linux: $XDG_DATA_HOME/clif or ~/.local/share/clif
//   - Windows: %LOCALAPPDATA%\clif
func AppLocalDataDir() string {
	if home := os.Getenv(HomeEnv); home != "" {
		return home
	}

	var base string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		base = filepath.Join(home, "Library", "Application Support")

	case "windows":
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, "AppData", "Local")
		}

	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, ".local", "share")
		}
	}

	return filepath.Join(base, appDirName)
}

// SettingsFilePath returns the path of the TOML settings file.
func SettingsFilePath() string {
	return filepath.Join(AppDataDir(), "settings.toml")
}

// JournalPath returns the path of the run history database.
func JournalPath() string {
	return filepath.Join(AppLocalDataDir(), "history.db")
}

// LogFilePath returns the path to the application log file.
func LogFilePath() string {
	return filepath.Join(AppDataDir(), "clif.log")
}
