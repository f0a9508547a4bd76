package main

import (
	"fmt"
	"os"

	"fbcon/device/video/console"
	"fbcon/device/video/console/font"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// config describes the console that conspreview renders into. It can be
// loaded from a TOML file and individual settings overridden via flags.
type config struct {
	// Font is either the name of a builtin font or the path to a PSF2 file.
	Font string `toml:"font"`

	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`

	Fg string `toml:"fg"`
	Bg string `toml:"bg"`

	SingleBuffered bool   `toml:"single_buffered"`
	TabWidth       uint32 `toml:"tab_width"`

	// Output is the PNG file to write; when empty a block preview is
	// printed to the terminal.
	Output string `toml:"output"`

	LogLevel string `toml:"log_level"`
}

func defaultConfig() config {
	return config{
		Font:     font.Basic7x13,
		Width:    640,
		Height:   200,
		Fg:       "#c0caf5",
		Bg:       "#1a1b26",
		TabWidth: console.DefaultTabWidth,
		LogLevel: "info",
	}
}

// decodeConfig overlays the TOML document in data on top of cfg.
func decodeConfig(data string, cfg *config) error {
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return err
	}

	for _, key := range md.Undecoded() {
		logrus.WithField("key", key.String()).Warn("ignoring unknown config key")
	}

	return nil
}

// loadConfig returns the default configuration overlaid with the contents of
// the TOML file at path. An empty path returns the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err = decodeConfig(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// colors parses the configured foreground and background colors.
func (cfg *config) colors() (fg, bg console.Color, err error) {
	var ok bool
	if fg, ok = console.ParseColor(cfg.Fg); !ok {
		return 0, 0, fmt.Errorf("invalid foreground color %q", cfg.Fg)
	}

	if bg, ok = console.ParseColor(cfg.Bg); !ok {
		return 0, 0, fmt.Errorf("invalid background color %q", cfg.Bg)
	}

	return fg, bg, nil
}

// loadFont returns the builtin font with the configured name or loads it from
// a PSF2 file.
func (cfg *config) loadFont() (*font.Font, error) {
	if f := font.FindByName(cfg.Font); f != nil {
		return f, nil
	}

	data, err := os.ReadFile(cfg.Font)
	if err != nil {
		return nil, fmt.Errorf("font %q is neither a builtin font nor a readable file: %w", cfg.Font, err)
	}

	f, err := font.Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Font, err)
	}

	f.Name = cfg.Font
	return f, nil
}
