// Package config holds persistent editor settings and server settings.
//
// Editor settings live in ~/.fpedit as simple key = "value" lines. Server
// settings come from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ha1tch/floorplan-toolkit/pkg/editor"
	"github.com/ha1tch/floorplan-toolkit/pkg/history"
	"github.com/ha1tch/floorplan-toolkit/pkg/scene"
)

// Config holds persistent editor settings.
type Config struct {
	WallThickness int
	WallColor     string
	TextSize      int
	TextColor     string
	ExportFormat  string // "png" or "svg"
	HistoryLimit  int    // 0 = unlimited
	Devices       string // device source location, see source.Open
	LastDir       string // last used directory
}

// Default returns default configuration.
func Default() Config {
	cwd, _ := os.Getwd()
	return Config{
		WallThickness: editor.DefaultWallThickness,
		WallColor:     editor.DefaultWallColor,
		TextSize:      editor.DefaultTextSize,
		TextColor:     editor.DefaultTextColor,
		ExportFormat:  "png",
		HistoryLimit:  history.DefaultLimit,
		Devices:       "sample",
		LastDir:       cwd,
	}
}

// Path returns the path to the config file.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fpedit"
	}
	return filepath.Join(home, ".fpedit")
}

// Load reads the config file at Path. A missing or unreadable file yields
// the defaults.
func Load() Config {
	return LoadFile(Path())
}

// LoadFile reads the config file at path.
func LoadFile(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default()
	}
	return Parse(string(data))
}

// Parse reads key = "value" lines over the defaults. Unknown keys and
// invalid values are ignored.
func Parse(data string) Config {
	cfg := Default()
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.Trim(strings.TrimSpace(val), "\"")

		switch key {
		case "wall_thickness":
			if n, err := strconv.Atoi(val); err == nil {
				cfg.WallThickness = n
			}
		case "wall_color":
			if _, err := scene.ParseColor(val); err == nil {
				cfg.WallColor = val
			}
		case "text_size":
			if n, err := strconv.Atoi(val); err == nil {
				cfg.TextSize = n
			}
		case "text_color":
			if _, err := scene.ParseColor(val); err == nil {
				cfg.TextColor = val
			}
		case "export_format":
			if val == "png" || val == "svg" {
				cfg.ExportFormat = val
			}
		case "history_limit":
			if n, err := strconv.Atoi(val); err == nil && n >= 0 {
				cfg.HistoryLimit = n
			}
		case "devices":
			if val != "" {
				cfg.Devices = val
			}
		case "last_dir":
			if val != "" {
				cfg.LastDir = val
			}
		}
	}
	return cfg
}

// String renders the config in the file format.
func (c Config) String() string {
	var sb strings.Builder
	sb.WriteString("# fpedit configuration\n")
	fmt.Fprintf(&sb, "wall_thickness = %d\n", c.WallThickness)
	fmt.Fprintf(&sb, "wall_color = %q\n", c.WallColor)
	fmt.Fprintf(&sb, "text_size = %d\n", c.TextSize)
	fmt.Fprintf(&sb, "text_color = %q\n", c.TextColor)
	fmt.Fprintf(&sb, "export_format = %q\n", c.ExportFormat)
	fmt.Fprintf(&sb, "history_limit = %d\n", c.HistoryLimit)
	fmt.Fprintf(&sb, "devices = %q\n", c.Devices)
	fmt.Fprintf(&sb, "last_dir = %q\n", c.LastDir)
	return sb.String()
}

// Save writes the config to Path.
func (c Config) Save() error {
	return c.SaveFile(Path())
}

// SaveFile writes the config to path.
func (c Config) SaveFile(path string) error {
	return os.WriteFile(path, []byte(c.String()), 0644)
}

// Settings converts the stored tool options, clamping out-of-range values.
func (c Config) Settings() editor.Settings {
	s := editor.DefaultSettings()
	s.SetWallThickness(c.WallThickness)
	s.SetTextSize(c.TextSize)
	// Colours were validated by Parse; a bad value keeps the default.
	_ = s.SetWallColor(c.WallColor)
	_ = s.SetTextColor(c.TextColor)
	return s
}

// Capture copies the editor's current tool options into c.
func (c *Config) Capture(s *editor.Settings) {
	c.WallThickness = s.WallThickness()
	c.WallColor = s.WallColor()
	c.TextSize = s.TextSize()
	c.TextColor = s.TextColor()
}

// EditorOptions returns the options that apply c to a new editor.
func (c Config) EditorOptions() []editor.Option {
	return []editor.Option{
		editor.WithSettings(c.Settings()),
		editor.WithHistoryLimit(c.HistoryLimit),
	}
}
