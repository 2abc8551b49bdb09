package mcgen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is read when no --config flag is given.
const DefaultConfigPath = "mc-schem-gen.yaml"

type Config struct {
	OutputDir      string        `yaml:"output_dir"`
	Name           string        `yaml:"name"`
	GameVersion    string        `yaml:"game_version"`
	SignalStrength int           `yaml:"signal_strength"`
	WordsFile      string        `yaml:"words_file"`
	Layout         *LayoutConfig `yaml:"layout"`
}

// LayoutConfig overrides parts of the default barrel grid. Zero fields keep
// the default.
type LayoutConfig struct {
	Columns  int `yaml:"columns"`
	Rows     int `yaml:"rows"`
	Layers   int `yaml:"layers"`
	SpacingX int `yaml:"spacing_x"`
	SpacingY int `yaml:"spacing_y"`
	SpacingZ int `yaml:"spacing_z"`
}

// DefaultConfig writes rom.schem into the working directory: a 3x3 grid of
// four-high barrel stacks, all empty.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:   ".",
		Name:        "rom",
		GameVersion: DefaultGameVersion,
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fills empty fields with defaults and rejects unusable values.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Name == "" {
		c.Name = "rom"
	}
	if c.GameVersion == "" {
		c.GameVersion = DefaultGameVersion
	}
	if err := ValidateSignal(c.SignalStrength); err != nil {
		return fmt.Errorf("signal_strength: %w", err)
	}
	if _, err := ResolveVersion(c.GameVersion); err != nil {
		return fmt.Errorf("game_version: %w", err)
	}
	if _, err := c.GridLayout(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	return nil
}

// GridLayout returns the default layout with the configured overrides applied.
func (c *Config) GridLayout() (Layout, error) {
	l := DefaultLayout()
	if o := c.Layout; o != nil {
		override(&l.Columns, o.Columns)
		override(&l.Rows, o.Rows)
		override(&l.Layers, o.Layers)
		override(&l.SpacingX, o.SpacingX)
		override(&l.SpacingY, o.SpacingY)
		override(&l.SpacingZ, o.SpacingZ)
	}
	return l, l.Validate()
}

func override(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
