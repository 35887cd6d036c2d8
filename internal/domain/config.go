package domain

// SettingKey defines a settings key with its metadata.
type SettingKey struct {
	Name        string
	Default     string
	Description string
	Section     string // Section for grouping in `clif config list`
	Hidden      bool
}

// SettingKeys is the single source of truth for settings.
// Order determines display order in `clif config list`.
var SettingKeys = []SettingKey{
	// Display
	{
		Name:        "pager",
		Default:     "less -FRSX",
		Description: "Pager command for long output",
		Section:     "Display",
	},
	{
		Name:        "theme",
		Default:     "default",
		Description: "Color theme: default, mono",
		Section:     "Display",
	},
	{
		Name:        "color",
		Default:     "auto",
		Description: "Colorize output: auto, always, never",
		Section:     "Display",
	},
	{
		Name:        "display_date",
		Default:     "yyyy-mm-dd",
		Description: "Date format: dd/mm/yyyy, mm/dd/yyyy, yyyy-mm-dd, or a Go layout",
		Section:     "Display",
	},
	{
		Name:        "display_time",
		Default:     "24h",
		Description: "Time format: 12h, 24h",
		Section:     "Display",
	},
	// Logging
	{
		Name:        "log_level",
		Default:     "warn",
		Description: "Log file level: debug, info, warn, error",
		Section:     "Logging",
	},
	{
		Name:        "enable_log",
		Default:     "true",
		Description: "Enable logging to file (true/false)",
		Section:     "Logging",
	},
	// History
	{
		Name:        "journal",
		Default:     "true",
		Description: "Record every command run in the history database (true/false)",
		Section:     "History",
	},
	{
		Name:        "history_limit",
		Default:     "20",
		Description: "Default number of runs shown by `clif history list`",
		Section:     "History",
	},
}

var settingKeyMap map[string]SettingKey

func init() {
	settingKeyMap = make(map[string]SettingKey, len(SettingKeys))
	for _, key := range SettingKeys {
		settingKeyMap[key.Name] = key
	}
}

// GetSettingKey returns the SettingKey for a given name.
func GetSettingKey(name string) (SettingKey, bool) {
	key, ok := settingKeyMap[name]
	return key, ok
}

// IsValidSettingKey checks if a key name is valid.
func IsValidSettingKey(name string) bool {
	_, ok := settingKeyMap[name]
	return ok
}

// VisibleSettingKeys returns all non-hidden settings keys.
func VisibleSettingKeys() []SettingKey {
	var visible []SettingKey
	for _, key := range SettingKeys {
		if !key.Hidden {
			visible = append(visible, key)
		}
	}
	return visible
}

// SettingSections returns the ordered list of section names.
func SettingSections() []string {
	return []string{"Display", "Logging", "History"}
}
