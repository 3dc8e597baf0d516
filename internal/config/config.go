package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"termpick/internal/screen"
)

// EnvPath overrides the config file location
const EnvPath = "TERMPICK_CONFIG"

var (
	ErrListNotFound = errors.New("list not found")
	ErrListExists   = errors.New("list already exists")
)

// Config holds menu defaults and saved item lists
type Config struct {
	Prompt      string              `yaml:"prompt"`
	InputPrompt string              `yaml:"input_prompt"`
	QuitKey     string              `yaml:"quit_key"`
	Matcher     string              `yaml:"matcher"`
	IgnoreCase  bool                `yaml:"ignore_case"`
	MinRows     int                 `yaml:"min_rows"`
	MinCols     int                 `yaml:"min_cols"`
	LogFile     string              `yaml:"log_file,omitempty"`
	Lists       map[string][]string `yaml:"lists,omitempty"`

	path string
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Prompt:      ">",
		InputPrompt: "search: ",
		QuitKey:     "esc",
		Matcher:     "prefix",
		IgnoreCase:  true,
		MinRows:     screen.DefaultMinRows,
		MinCols:     screen.DefaultMinCols,
		Lists:       map[string][]string{},
	}
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "termpick"), nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from disk
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(configPath)
}

// LoadFile reads the config at path. A missing file yields the defaults.
// Fields absent from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Lists == nil {
		cfg.Lists = map[string][]string{}
	}
	cfg.path = path

	return cfg, nil
}

// Path returns where the config is read from and saved to
func (c *Config) Path() string {
	return c.path
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Marshal returns the config as YAML
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// AddList saves a named list of items
func (c *Config) AddList(name string, items []string) error {
	if !IsValidName(name) {
		return fmt.Errorf("invalid list name '%s': must contain only letters, numbers, underscores and dashes", name)
	}
	if _, ok := c.Lists[name]; ok {
		return fmt.Errorf("%w: '%s'", ErrListExists, name)
	}
	if len(items) == 0 {
		return fmt.Errorf("list '%s' needs at least one item", name)
	}

	c.Lists[name] = append([]string(nil), items...)
	return nil
}

// RemoveList removes a named list
func (c *Config) RemoveList(name string) error {
	if _, ok := c.Lists[name]; !ok {
		return fmt.Errorf("%w: '%s'", ErrListNotFound, name)
	}
	delete(c.Lists, name)
	return nil
}

// GetList returns the items of a named list
func (c *Config) GetList(name string) ([]string, error) {
	items, ok := c.Lists[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrListNotFound, name)
	}
	return items, nil
}

// ListNames returns a sorted list of all list names
func (c *Config) ListNames() []string {
	names := make([]string, 0, len(c.Lists))
	for name := range c.Lists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsValidName checks if a list name is valid (alphanumeric, underscores and dashes, no spaces)
func IsValidName(name string) bool {
	if len(name) == 0 {
		return false
	}

	for _, c := range name {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '-') {
			return false
		}
	}

	return true
}
