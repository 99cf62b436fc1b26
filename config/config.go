// Package config loads the navtoggle configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	nav "github.com/schlosser/go-nav"
	"github.com/schlosser/go-nav/state"
)

// DefaultToggleKey is the key that toggles the navigation panel in the UI.
const DefaultToggleKey = "n"

// Config holds all navtoggle configuration.
type Config struct {
	Nav NavConfig `toml:"nav"`
	UI  UIConfig  `toml:"ui"`
}

// NavConfig mirrors the controller settings that can be set from a file.
type NavConfig struct {
	ID           string      `toml:"id"`
	ClassPrefix  string      `toml:"class_prefix"`
	Event        string      `toml:"event"`
	InitialState state.State `toml:"initial_state"`
}

// UIConfig holds terminal front end settings.
type UIConfig struct {
	ToggleKey string `toml:"toggle_key"`

	// ConfirmClose asks for a y/n confirmation before the panel closes.
	ConfirmClose bool `toml:"confirm_close"`

	// OpenDelay makes the open guard answer only after the given duration,
	// e.g. "250ms". Zero opens immediately.
	OpenDelay Duration `toml:"open_delay"`
}

// Duration is a time.Duration written as a string such as "1.5s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	if v < 0 {
		return fmt.Errorf("invalid duration %q: must not be negative", text)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	s := nav.DefaultSettings()
	return &Config{
		Nav: NavConfig{
			ID:           s.NavID,
			ClassPrefix:  s.ClassPrefix,
			Event:        s.Event,
			InitialState: s.InitialState,
		},
		UI: UIConfig{
			ToggleKey: DefaultToggleKey,
		},
	}
}

// DefaultPath returns the default config file path: $HOME/.config/go-nav.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "go-nav.toml"
	}
	return filepath.Join(home, ".config", "go-nav.toml")
}

// Load parses a TOML config file at path on top of the defaults.
// If the file does not exist, the defaults are returned with no error.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprint(os.Stderr, "Config file not present. Using default values\n")
			return cfg, nil
		}
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports values the controller would refuse.
func (c *Config) Validate() error {
	if c.Nav.InitialState != state.Closed && c.Nav.InitialState != state.Open {
		return fmt.Errorf("%w: nav.initial_state must be closed or open, got '%s'",
			state.ErrInvalidState, c.Nav.InitialState)
	}
	if c.UI.ToggleKey == "" {
		return errors.New("ui.toggle_key cannot be empty")
	}
	return nil
}

// Options converts the [nav] section into controller options. Empty strings
// keep the controller defaults.
func (c *Config) Options() []nav.Option {
	var opts []nav.Option
	if c.Nav.ID != "" {
		opts = append(opts, nav.WithNavID(c.Nav.ID))
	}
	if c.Nav.ClassPrefix != "" {
		opts = append(opts, nav.WithClassPrefix(c.Nav.ClassPrefix))
	}
	if c.Nav.Event != "" {
		opts = append(opts, nav.WithEvent(c.Nav.Event))
	}
	return append(opts, nav.WithInitialState(c.Nav.InitialState))
}
