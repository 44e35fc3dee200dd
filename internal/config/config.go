package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"dropselect/internal/domain"
	"dropselect/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version    int                    `toml:"version"`
	UISettings UISettings             `toml:"ui"`
	Keys       KeySettings            `toml:"keys,omitempty"`
	Theme      map[string]StyleConfig `toml:"theme,omitempty"` // class name -> override
	Dropdowns  []DropdownConfig       `toml:"dropdown"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Autosave bool `toml:"autosave"`
	Width    int  `toml:"width"`
	ShowHelp bool `toml:"show_help"`
}

// KeySettings overrides the dropdown key bindings. Empty lists keep the defaults.
type KeySettings struct {
	Toggle []string `toml:"toggle,omitempty"`
	Up     []string `toml:"up,omitempty"`
	Down   []string `toml:"down,omitempty"`
	Close  []string `toml:"close,omitempty"`
}

// StyleConfig overrides the appearance of one theme class
type StyleConfig struct {
	Foreground string `toml:"foreground,omitempty"`
	Background string `toml:"background,omitempty"`
	Bold       bool   `toml:"bold,omitempty"`
}

// DropdownConfig describes one dropdown and its saved selection
type DropdownConfig struct {
	Name     string         `toml:"name"`
	Multiple bool           `toml:"multiple"`
	Selected []interface{}  `toml:"selected"` // option values, in selection order
	Options  []OptionConfig `toml:"option"`
}

// OptionConfig is one option as stored on disk
type OptionConfig struct {
	Label string      `toml:"label"`
	Value interface{} `toml:"value"` // string or number
}

// DefaultWidth is used when the config does not set ui.width
const DefaultWidth = 40

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the config file location under the user config dir
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "dropselect", "config.toml")
}

// NewConfigService creates a config service reading and writing path.
// An empty path selects DefaultPath.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{
		filePath: path,
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// Path returns the file the service loads from and saves to
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		// Return default config if file doesn't exist
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:      cs.filePath,
			Dropdowns: len(cfg.Dropdowns),
		})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.UISettings.Width <= 0 {
		cfg.UISettings.Width = DefaultWidth
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks every dropdown. The first problem found is returned.
func (c *Config) Validate() error {
	names := make(map[string]bool, len(c.Dropdowns))
	for i, dd := range c.Dropdowns {
		if strings.TrimSpace(dd.Name) == "" {
			return fmt.Errorf("%w: dropdown %d has no name", ErrInvalidConfig, i)
		}
		// Selections are saved by name
		if names[dd.Name] {
			return fmt.Errorf("%w: dropdown name %q is used more than once", ErrInvalidConfig, dd.Name)
		}
		names[dd.Name] = true
		for j, opt := range dd.Options {
			if strings.TrimSpace(opt.Label) == "" {
				return fmt.Errorf("%w: dropdown %q option %d has no label", ErrInvalidConfig, dd.Name, j)
			}
			if _, err := domain.ValueOf(opt.Value); err != nil {
				return fmt.Errorf("%w: dropdown %q option %q: %v", ErrInvalidConfig, dd.Name, opt.Label, err)
			}
		}
		if !dd.Multiple && len(dd.Selected) > 1 {
			return fmt.Errorf("%w: dropdown %q is single-select but has %d saved selections", ErrInvalidConfig, dd.Name, len(dd.Selected))
		}
		for _, v := range dd.Selected {
			if _, err := domain.ValueOf(v); err != nil {
				return fmt.Errorf("%w: dropdown %q selection: %v", ErrInvalidConfig, dd.Name, err)
			}
		}
	}
	return nil
}

// BuildOptions creates the option instances for a dropdown.
// Each call returns fresh instances; callers keep the slice to preserve identity.
func (d DropdownConfig) BuildOptions() []*domain.Option {
	options := make([]*domain.Option, 0, len(d.Options))
	for _, oc := range d.Options {
		v, err := domain.ValueOf(oc.Value)
		if err != nil {
			continue
		}
		options = append(options, domain.NewOption(oc.Label, v))
	}
	return options
}

// SelectedFrom maps the saved selection onto the given option instances.
// Values that no longer match any option are dropped, repeated values are kept once.
func (d DropdownConfig) SelectedFrom(options []*domain.Option) []*domain.Option {
	var selected []*domain.Option
	seen := make(map[*domain.Option]bool, len(d.Selected))
	for _, raw := range d.Selected {
		v, err := domain.ValueOf(raw)
		if err != nil {
			continue
		}
		if opt := domain.FindByValue(options, v); opt != nil && !seen[opt] {
			seen[opt] = true
			selected = append(selected, opt)
		}
	}
	return selected
}

// SetSelected records the selection of the named dropdown.
// It reports false when no dropdown has that name.
func (c *Config) SetSelected(name string, values []domain.Value) bool {
	for i := range c.Dropdowns {
		if c.Dropdowns[i].Name != name {
			continue
		}
		selected := make([]interface{}, 0, len(values))
		for _, v := range values {
			selected = append(selected, v.Encode())
		}
		c.Dropdowns[i].Selected = selected
		return true
	}
	return false
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	letters := []OptionConfig{
		{Label: "A", Value: int64(1)},
		{Label: "B", Value: int64(2)},
		{Label: "C", Value: int64(3)},
	}

	return &Config{
		Version: 1,
		UISettings: UISettings{
			Autosave: true,
			Width:    DefaultWidth,
			ShowHelp: true,
		},
		Dropdowns: []DropdownConfig{
			{
				Name:     "Letter",
				Multiple: false,
				Selected: []interface{}{},
				Options:  letters,
			},
			{
				Name:     "Letters",
				Multiple: true,
				Selected: []interface{}{},
				Options:  letters,
			},
		},
	}
}
