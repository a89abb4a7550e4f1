// Package config loads viewer settings: YAML file first, then a .env file, then VIEWER_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"text-stage/internal/camera"
	"text-stage/internal/logger"
	"text-stage/internal/params"
	"text-stage/internal/renderer"
	"text-stage/internal/shortcut"
)

const (
	// DefaultPath is the config file relative to the working directory.
	DefaultPath = "config/viewer.yaml"
	// DotEnvPath is loaded into the environment before overrides are read.
	DotEnvPath = ".env"
	// EnvPrefix starts every override variable.
	EnvPrefix = "VIEWER_"
)

// Window is the native window setup.
type Window struct {
	Width      int32  `yaml:"width" env:"WIDTH"`
	Height     int32  `yaml:"height" env:"HEIGHT"`
	Title      string `yaml:"title" env:"TITLE"`
	Fullscreen bool   `yaml:"fullscreen" env:"FULLSCREEN"`
	TargetFPS  int32  `yaml:"target_fps" env:"TARGET_FPS"`
}

// Config is everything the viewer reads at startup.
type Config struct {
	Window Window `yaml:"window" envPrefix:"WINDOW_"`
	// Font is a font file path or a name searched under assets/fonts. Empty uses Go Regular.
	Font     string          `yaml:"font" env:"FONT"`
	Renderer renderer.Config `yaml:",inline"`
	Camera   camera.Config   `yaml:"camera" envPrefix:"CAMERA_"`
	// HomeDuration is the length of the camera home animation in seconds.
	HomeDuration float32                   `yaml:"home_duration" env:"HOME_DURATION"`
	ShowFPS      bool                      `yaml:"show_fps" env:"SHOW_FPS"`
	ShowGrid     bool                      `yaml:"show_grid" env:"SHOW_GRID"`
	ShowPanel    bool                      `yaml:"show_panel" env:"SHOW_PANEL"`
	Log          logger.Config             `yaml:"log" envPrefix:"LOG_"`
	Params       params.GeometryParameters `yaml:"params"`
	Keys         shortcut.Keymap           `yaml:"keys" envPrefix:"KEYS_"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Window: Window{
			Width:     1280,
			Height:    720,
			Title:     "text-stage",
			TargetFPS: 60,
		},
		Renderer:     renderer.DefaultConfig(),
		Camera:       camera.DefaultConfig(),
		HomeDuration: 0.6,
		ShowGrid:     true,
		ShowPanel:    true,
		Log:          logger.DefaultConfig(),
		Params:       params.Default(),
		Keys:         shortcut.DefaultKeymap(),
	}
}

// Load reads path over the defaults. A missing file yields Default() and no error; fields the
// file leaves out keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyEnv overrides cfg from VIEWER_* variables, e.g. VIEWER_TEXT, VIEWER_CAMERA_FOVY,
// VIEWER_LOG_LEVEL or VIEWER_KEYS_RESET="Ctrl+Z,Ctrl+Y".
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Resolve runs the full chain: YAML at path, then the .env file, then the environment.
func Resolve(path, dotenv string) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if err := LoadDotEnv(dotenv); err != nil {
		return cfg, fmt.Errorf("load %s: %w", dotenv, err)
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the viewer cannot start with.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if err := c.Params.Validate(); err != nil {
		return fmt.Errorf("config params: %w", err)
	}
	if c.Camera.Damping < 0 || c.Camera.Damping > 1 {
		return fmt.Errorf("config: camera damping %v outside [0, 1]", c.Camera.Damping)
	}
	return nil
}
