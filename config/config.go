package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ControllerConfig defines a saved controller configuration
type ControllerConfig struct {
	PortName    string `json:"portName"`
	AutoConnect bool   `json:"autoConnect"`
}

// VelocityConfig holds the three step velocity levels
type VelocityConfig struct {
	Normal uint8 `json:"normal,omitempty"`
	Soft   uint8 `json:"soft,omitempty"`
	Accent uint8 `json:"accent,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Controllers    []ControllerConfig `json:"controllers,omitempty"`
	PlayheadPollMs int                `json:"playheadPollMs,omitempty"`
	Tempo          int                `json:"tempo,omitempty"`
	Velocity       VelocityConfig     `json:"velocity,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Controllers: []ControllerConfig{
			{
				PortName:    "APC mini mk2",
				AutoConnect: true,
			},
		},
		PlayheadPollMs: 60,
		Tempo:          120,
		Velocity:       VelocityConfig{Normal: 100, Soft: 60, Accent: 127},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "apcstep"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found.
// Missing fields fall back to defaults so old configs keep working.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// First run: write the defaults so the user has a file to
			// edit. A read-only home just means they stay in memory.
			cfg := DefaultConfig()
			cfg.Save()
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.PlayheadPollMs <= 0 {
		cfg.PlayheadPollMs = 60
	}
	if cfg.Velocity.Normal == 0 {
		cfg.Velocity.Normal = 100
	}
	if cfg.Velocity.Soft == 0 {
		cfg.Velocity.Soft = 60
	}
	if cfg.Velocity.Accent == 0 {
		cfg.Velocity.Accent = 127
	}
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// FindController finds a controller config by port name
func (c *Config) FindController(portName string) *ControllerConfig {
	for i := range c.Controllers {
		if c.Controllers[i].PortName == portName {
			return &c.Controllers[i]
		}
	}
	return nil
}
