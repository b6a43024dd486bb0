package config

import (
	"os"
	"path/filepath"
	"sort"

	"eyeterm/internal/errors"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
// It defines the colour theme, terminal behaviour and log output.
type Config struct {
	Theme struct {
		Name     string `yaml:"name"`     // Theme name (default, dark, light, monochrome, matrix)
		Primary  string `yaml:"primary"`  // Prompt and title colour
		Success  string `yaml:"success"`  // Boot line colour
		Warning  string `yaml:"warning"`  // Completion candidate colour
		Error    string `yaml:"error"`    // Error output colour
		Info     string `yaml:"info"`     // Informational output colour
		Emphasis string `yaml:"emphasis"` // Echoed command colour
		Border   string `yaml:"border"`   // Frame colour
	} `yaml:"theme"`
	Terminal struct {
		AltScreen bool `yaml:"alt_screen"` // Run the TUI in the alternate screen buffer
		Watch     bool `yaml:"watch"`      // Re-apply the theme when this file changes
	} `yaml:"terminal"`
	Logging struct {
		File  string `yaml:"file"`  // Log file; empty discards TUI logs
		Debug bool   `yaml:"debug"` // Enable debug level
		JSON  bool   `yaml:"json"`  // Emit JSON lines
	} `yaml:"logging"`
}

// DefaultPath returns ~/.config/eyeterm/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate home directory")
	}
	return filepath.Join(home, ".config", "eyeterm", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("failed to read config file", path, errors.ConfigNotFound, err)
	}

	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, errors.NewConfigError("failed to parse config file", path, errors.InvalidConfig, err)
	}

	cfg.merge(&tempCfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge copies the values set in loaded over the defaults. Colours given
// explicitly win over the palette of the named theme.
func (c *Config) merge(loaded *Config) {
	if loaded.Theme.Name != "" {
		c.ApplyTheme(loaded.Theme.Name)
	}
	overrides := []struct {
		dst *string
		src string
	}{
		{&c.Theme.Primary, loaded.Theme.Primary},
		{&c.Theme.Success, loaded.Theme.Success},
		{&c.Theme.Warning, loaded.Theme.Warning},
		{&c.Theme.Error, loaded.Theme.Error},
		{&c.Theme.Info, loaded.Theme.Info},
		{&c.Theme.Emphasis, loaded.Theme.Emphasis},
		{&c.Theme.Border, loaded.Theme.Border},
	}
	for _, o := range overrides {
		if o.src != "" {
			*o.dst = o.src
		}
	}

	c.Terminal = loaded.Terminal
	if loaded.Logging.File != "" {
		c.Logging.File = loaded.Logging.File
	}
	c.Logging.Debug = loaded.Logging.Debug
	c.Logging.JSON = loaded.Logging.JSON
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.ApplyTheme("default")
	cfg.Terminal.AltScreen = false
	cfg.Terminal.Watch = false
	cfg.Logging.File = ""
	cfg.Logging.Debug = false
	cfg.Logging.JSON = false
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewConfigError("failed to create config directory", path, errors.InvalidConfig, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.NewConfigError("failed to marshal config", path, errors.InvalidConfig, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewConfigError("failed to write config file", path, errors.InvalidConfig, err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}
	if _, ok := themes[c.Theme.Name]; !ok {
		return errors.NewConfigError("unknown theme "+c.Theme.Name, "theme.name", errors.InvalidConfig, nil)
	}
	if c.Logging.File != "" {
		dir := filepath.Dir(c.Logging.File)
		info, err := os.Stat(dir)
		if err != nil {
			return errors.NewConfigError("log directory is not accessible", "logging.file", errors.InvalidConfig, err)
		}
		if !info.IsDir() {
			return errors.NewConfigError("log directory is not a directory", "logging.file", errors.InvalidConfig, nil)
		}
	}
	return nil
}

var themes = map[string]map[string]string{
	"default": {
		"primary":  "213", // Purple
		"success":  "114", // Green
		"warning":  "220", // Yellow
		"error":    "196", // Red
		"info":     "39",  // Blue
		"emphasis": "212", // Light Pink
		"border":   "213", // Purple
	},
	"dark": {
		"primary":  "105",
		"success":  "78",
		"warning":  "214",
		"error":    "160",
		"info":     "33",
		"emphasis": "147",
		"border":   "105",
	},
	"light": {
		"primary":  "135",
		"success":  "150",
		"warning":  "222",
		"error":    "210",
		"info":     "117",
		"emphasis": "219",
		"border":   "135",
	},
	"monochrome": {
		"primary":  "245",
		"success":  "252",
		"warning":  "241",
		"error":    "255",
		"info":     "248",
		"emphasis": "255",
		"border":   "245",
	},
	"matrix": {
		"primary":  "46", // Bright Green
		"success":  "40",
		"warning":  "154",
		"error":    "196",
		"info":     "34",
		"emphasis": "82",
		"border":   "22",
	},
}

// GetTheme returns a predefined palette by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	if theme, exists := themes[name]; exists {
		return theme
	}
	return themes["default"]
}

// ApplyTheme sets the theme in the configuration.
// Unknown names keep the name, so Validate can report them.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Success = theme["success"]
	c.Theme.Warning = theme["warning"]
	c.Theme.Error = theme["error"]
	c.Theme.Info = theme["info"]
	c.Theme.Emphasis = theme["emphasis"]
	c.Theme.Border = theme["border"]
}

// ListThemes returns the available theme names, sorted.
func ListThemes() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
