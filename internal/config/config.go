package config

import (
	"os"
	"path/filepath"

	"github.com/PixPMusic/gopher-twister/internal/control"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Profile holds the binding for one controller. Channels are stored
// 1-based, the way they are printed on the hardware.
type Profile struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	InPort  string `yaml:"inPort"`
	OutPort string `yaml:"outPort"`

	ControlChannel uint8 `yaml:"controlChannel"` // inbound edit channel
	ValueChannel   uint8 `yaml:"valueChannel"`   // outbound ring-value channel
	ColorChannel   uint8 `yaml:"colorChannel"`   // outbound state-color channel

	Pool            []uint8 `yaml:"pool,flow"` // encoder CC numbers in allocation order
	RepeatThreshold int     `yaml:"repeatThreshold"`
	IncreaseValue   uint8   `yaml:"increaseValue"`
	DecreaseValue   uint8   `yaml:"decreaseValue"`
}

// NewProfile creates a profile with a generated ID and the defaults for
// a 16-encoder controller with twos-complement relative firmware.
func NewProfile() Profile {
	pool := make([]uint8, 16)
	for i := range pool {
		pool[i] = uint8(i)
	}
	return Profile{
		ID:              uuid.New().String(),
		Name:            "New Controller",
		InPort:          "Midi Fighter Twister",
		OutPort:         "Midi Fighter Twister",
		ControlChannel:  1,
		ValueChannel:    1,
		ColorChannel:    2,
		Pool:            pool,
		RepeatThreshold: 4,
		IncreaseValue:   65,
		DecreaseValue:   63,
	}
}

// Params converts the profile into session parameters (0-based channels)
func (p Profile) Params() control.Params {
	threshold := p.RepeatThreshold
	if threshold < 1 {
		threshold = 1
	}
	return control.Params{
		Pool:           p.Pool,
		ControlChannel: zeroBased(p.ControlChannel),
		ValueChannel:   zeroBased(p.ValueChannel),
		ColorChannel:   zeroBased(p.ColorChannel),
		Threshold:      threshold,
		Increase:       p.IncreaseValue,
		Decrease:       p.DecreaseValue,
	}
}

func zeroBased(channel uint8) uint8 {
	if channel == 0 {
		return 0
	}
	return (channel - 1) & 0x0F
}

// Config holds application configuration
type Config struct {
	Profiles         []Profile `yaml:"profiles"`
	CurrentProfileID string    `yaml:"currentProfileId"`
	Debug            bool      `yaml:"debug,omitempty"`
}

// CurrentProfile returns the selected profile
func (c *Config) CurrentProfile() *Profile {
	for i := range c.Profiles {
		if c.Profiles[i].ID == c.CurrentProfileID {
			return &c.Profiles[i]
		}
	}
	if len(c.Profiles) > 0 {
		return &c.Profiles[0]
	}
	return nil
}

// AddProfile adds a new profile to the config
func (c *Config) AddProfile(p Profile) {
	c.Profiles = append(c.Profiles, p)
}

// RemoveProfile removes a profile by ID
func (c *Config) RemoveProfile(id string) {
	for i, p := range c.Profiles {
		if p.ID == id {
			c.Profiles = append(c.Profiles[:i], c.Profiles[i+1:]...)
			return
		}
	}
}

// configDir returns the platform-appropriate config directory
func configDir() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, "gopher-twister"), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from disk, returning defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return loadFrom(path)
}

func loadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return defaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Profiles) == 0 {
		return defaultConfig(), nil
	}
	return &cfg, nil
}

func defaultConfig() *Config {
	p := NewProfile()
	return &Config{
		Profiles:         []Profile{p},
		CurrentProfileID: p.ID,
	}
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.saveTo(path)
}

func (c *Config) saveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
