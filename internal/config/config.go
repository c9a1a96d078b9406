// Package config loads the optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ConserveLee/barricade-timer/internal/constants"
)

// Env variables read by Load.
const (
	EnvConfigPath = "BARRICADE_CONFIG"
	EnvDisplay    = "BARRICADE_DISPLAY"
	EnvDebug      = "BARRICADE_DEBUG"

	DefaultPath = "config.yaml"
)

type Config struct {
	Display int           `yaml:"display"`
	Chat    ChatConfig    `yaml:"chat"`
	OCR     OCRConfig     `yaml:"ocr"`
	Scan    ScanConfig    `yaml:"scan"`
	Journal JournalConfig `yaml:"journal"`
	Web     WebConfig     `yaml:"web"`
	Debug   bool          `yaml:"debug"`
}

// ChatConfig locates the chatbox. Region is relative to the top-left of
// the anchor match.
type ChatConfig struct {
	Anchor         string `yaml:"anchor"`
	Region         Rect   `yaml:"region"`
	Tolerance      int    `yaml:"tolerance"`
	ColorTolerance int    `yaml:"color_tolerance"`
}

type Rect struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Image returns the rectangle in image coordinates.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

type OCRConfig struct {
	Language string `yaml:"language"`
}

type ScanConfig struct {
	AcquireInterval time.Duration `yaml:"acquire_interval"`
	PollInterval    time.Duration `yaml:"poll_interval"`
}

type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type WebConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Display: 0,
		Chat: ChatConfig{
			Anchor:         "assets/chat_anchor.png",
			Region:         Rect{X: 0, Y: 20, Width: 480, Height: 160},
			Tolerance:      constants.DefaultTolerance,
			ColorTolerance: constants.ChatColorTolerance,
		},
		OCR: OCRConfig{Language: "eng"},
		Scan: ScanConfig{
			AcquireInterval: constants.AcquireInterval,
			PollInterval:    constants.PollInterval,
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    "barricade.db",
		},
		Web: WebConfig{
			Enabled: false,
			Addr:    "127.0.0.1:8737",
		},
	}
}

// Load reads the file named by BARRICADE_CONFIG (or config.yaml), applies env
// overrides and validates the result. A missing file yields the defaults.
func Load() (Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = DefaultPath
	}
	return LoadFile(path)
}

// LoadFile is Load with an explicit path.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// optional
	default:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvDisplay); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDisplay, err)
		}
		cfg.Display = n
	}
	if v := os.Getenv(EnvDebug); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebug, err)
		}
		cfg.Debug = b
	}
	return nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Display < 0 {
		return fmt.Errorf("display must be >= 0, got %d", c.Display)
	}
	if c.Chat.Anchor == "" {
		return fmt.Errorf("chat.anchor is required")
	}
	if c.Chat.Region.Width <= 0 || c.Chat.Region.Height <= 0 {
		return fmt.Errorf("chat.region must have a positive size, got %dx%d", c.Chat.Region.Width, c.Chat.Region.Height)
	}
	if c.Chat.Tolerance < 0 || c.Chat.Tolerance > 255 {
		return fmt.Errorf("chat.tolerance out of range: %d", c.Chat.Tolerance)
	}
	if c.Chat.ColorTolerance < 0 || c.Chat.ColorTolerance > 255 {
		return fmt.Errorf("chat.color_tolerance out of range: %d", c.Chat.ColorTolerance)
	}
	if c.OCR.Language == "" {
		return fmt.Errorf("ocr.language is required")
	}
	if c.Scan.AcquireInterval <= 0 || c.Scan.PollInterval <= 0 {
		return fmt.Errorf("scan intervals must be positive")
	}
	if c.Journal.Enabled && c.Journal.Path == "" {
		return fmt.Errorf("journal.path is required when the journal is enabled")
	}
	if c.Web.Enabled && c.Web.Addr == "" {
		return fmt.Errorf("web.addr is required when the web mirror is enabled")
	}
	return nil
}
