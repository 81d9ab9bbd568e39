// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	OrientationAuto      = "auto"
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"

	DefaultAnkiConnectURL = "http://localhost:8765"
)

type Size struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

type Spacing struct {
	MarginX float64 `yaml:"margin_x" toml:"margin_x"`
	MarginY float64 `yaml:"margin_y" toml:"margin_y"`
	Gap     float64 `yaml:"gap" toml:"gap"`
}

type Fonts struct {
	SideA int `yaml:"side_a" toml:"side_a"`
	SideB int `yaml:"side_b" toml:"side_b"`
	Tag   int `yaml:"tag" toml:"tag"`
}

type Anki struct {
	URL   string `yaml:"url" toml:"url"`
	Deck  string `yaml:"deck" toml:"deck"`
	Model string `yaml:"model" toml:"model"`
}

type Server struct {
	Addr string `yaml:"addr" toml:"addr"`
}

type Config struct {
	Input            string  `yaml:"input" toml:"input"`
	Delimiter        string  `yaml:"delimiter" toml:"delimiter"`
	Paper            string  `yaml:"paper" toml:"paper"`
	Orientation      string  `yaml:"orientation" toml:"orientation"`
	Unit             string  `yaml:"unit" toml:"unit"`
	Card             Size    `yaml:"card" toml:"card"`
	Spacing          Spacing `yaml:"spacing" toml:"spacing"`
	Fonts            Fonts   `yaml:"fonts" toml:"fonts"`
	WrapWidth        int     `yaml:"wrap_width" toml:"wrap_width"`
	Output           string  `yaml:"output" toml:"output"`
	Merge            *bool   `yaml:"merge" toml:"merge"`
	KeepIntermediate bool    `yaml:"keep_intermediate" toml:"keep_intermediate"`
	Anki             Anki    `yaml:"anki" toml:"anki"`
	Server           Server  `yaml:"server" toml:"server"`
}

// Default returns the settings used when nothing else is specified: A4 paper,
// 6x4 cm cards and half a centimetre of margin and gap.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults(setKeys{})
	return cfg
}

// Load reads a YAML or TOML file, picked by extension, and fills in defaults
// for everything left unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var (
		cfg  Config
		keys setKeys
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
		if err := toml.Unmarshal(data, &keys); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
		if err := yaml.Unmarshal(data, &keys); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	cfg.applyDefaults(keys)
	return &cfg, nil
}

// setKeys records which card and spacing keys a file sets, so an explicit 0
// survives while a missing key takes its default.
type setKeys struct {
	Card struct {
		Width  *float64 `yaml:"width" toml:"width"`
		Height *float64 `yaml:"height" toml:"height"`
	} `yaml:"card" toml:"card"`
	Spacing struct {
		MarginX *float64 `yaml:"margin_x" toml:"margin_x"`
		MarginY *float64 `yaml:"margin_y" toml:"margin_y"`
		Gap     *float64 `yaml:"gap" toml:"gap"`
	} `yaml:"spacing" toml:"spacing"`
}

func defaultFloat(v *float64, set *float64, def float64) {
	if set == nil && *v == 0 {
		*v = def
	}
}

// LoadOrDefault behaves like Load but treats a missing file as empty.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) applyDefaults(keys setKeys) {
	if c.Delimiter == "" {
		c.Delimiter = ";"
	}
	if c.Paper == "" {
		c.Paper = "A4"
	}
	if c.Orientation == "" {
		c.Orientation = OrientationAuto
	}
	if c.Unit == "" {
		c.Unit = "cm"
	}
	defaultFloat(&c.Card.Width, keys.Card.Width, 6)
	defaultFloat(&c.Card.Height, keys.Card.Height, 4)
	defaultFloat(&c.Spacing.MarginX, keys.Spacing.MarginX, 0.5)
	defaultFloat(&c.Spacing.MarginY, keys.Spacing.MarginY, 0.5)
	defaultFloat(&c.Spacing.Gap, keys.Spacing.Gap, 0.5)
	if c.Fonts.SideA == 0 {
		c.Fonts.SideA = 11
	}
	if c.Fonts.SideB == 0 {
		c.Fonts.SideB = 11
	}
	if c.WrapWidth == 0 {
		c.WrapWidth = 30
	}
	if c.Output == "" {
		c.Output = "flashcards.pdf"
	}
	if c.Merge == nil {
		c.Merge = Bool(true)
	}
	if c.Anki.URL == "" {
		c.Anki.URL = DefaultAnkiConnectURL
	}
	if c.Anki.Model == "" {
		c.Anki.Model = "PrintCards"
	}
	if c.Anki.Deck == "" {
		c.Anki.Deck = "PrintCards"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
}

// TagFont returns the explicit tag size, or derives it from the current
// side A size when none was set.
func (c *Config) TagFont() int {
	if c.Fonts.Tag > 0 {
		return c.Fonts.Tag
	}
	return TagFontSize(c.Fonts.SideA)
}

// TagFontSize derives the tag size from the front font, never below 8pt.
func TagFontSize(sideA int) int {
	return max(8, int(float64(sideA)*0.85))
}

func (c *Config) MergeEnabled() bool {
	return c.Merge == nil || *c.Merge
}

func Bool(v bool) *bool {
	return &v
}
