package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cfg := Parse(`
# fpedit configuration
wall_thickness = 7
wall_color = "#ff0000"
text_size = "18"
text_color = "not-a-colour"
export_format = "svg"
history_limit = 25
devices = "fleet.db"
last_dir = "/tmp/plans"
unknown = "ignored"
`)

	if cfg.WallThickness != 7 || cfg.WallColor != "#ff0000" {
		t.Errorf("wall = %d %s", cfg.WallThickness, cfg.WallColor)
	}
	if cfg.TextSize != 18 {
		t.Errorf("text size = %d, want 18", cfg.TextSize)
	}
	if cfg.TextColor != Default().TextColor {
		t.Errorf("invalid colour should keep default, got %s", cfg.TextColor)
	}
	if cfg.ExportFormat != "svg" || cfg.HistoryLimit != 25 || cfg.Devices != "fleet.db" || cfg.LastDir != "/tmp/plans" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestParseIgnoresBadValues(t *testing.T) {
	cfg := Parse("export_format = \"gif\"\nhistory_limit = -3\nwall_thickness = thick\nnonsense line\n")
	def := Default()
	if cfg.ExportFormat != def.ExportFormat || cfg.HistoryLimit != def.HistoryLimit || cfg.WallThickness != def.WallThickness {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fpedit")
	cfg := Default()
	cfg.WallThickness = 12
	cfg.TextColor = "#abcdef"
	cfg.ExportFormat = "svg"
	cfg.HistoryLimit = 0
	cfg.LastDir = "/home/user/plans"

	if err := cfg.SaveFile(path); err != nil {
		t.Fatal(err)
	}
	got := LoadFile(path)
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	got := LoadFile(filepath.Join(t.TempDir(), "nope"))
	if got.WallThickness != Default().WallThickness {
		t.Errorf("missing file should give defaults, got %+v", got)
	}
}

func TestSettingsClamp(t *testing.T) {
	cfg := Default()
	cfg.WallThickness = 40
	cfg.TextSize = 1
	s := cfg.Settings()
	if s.WallThickness() != 20 || s.TextSize() != 8 {
		t.Errorf("settings = %d %d, want 20 8", s.WallThickness(), s.TextSize())
	}

	s.SetWallThickness(3)
	cfg.Capture(&s)
	if cfg.WallThickness != 3 || cfg.TextSize != 8 {
		t.Errorf("captured = %+v", cfg)
	}
}

func TestLoadServer(t *testing.T) {
	t.Setenv("FLOORPLAN_ADDR", ":9999")
	t.Setenv("FLOORPLAN_READ_TIMEOUT", "30")
	t.Setenv("FLOORPLAN_WRITE_TIMEOUT", "soon")

	s := LoadServer()
	if s.Addr != ":9999" {
		t.Errorf("addr = %s", s.Addr)
	}
	if s.ReadTimeoutDuration() != 30*time.Second {
		t.Errorf("read timeout = %v", s.ReadTimeoutDuration())
	}
	if s.WriteTimeout != 10 {
		t.Errorf("invalid write timeout should fall back to 10, got %d", s.WriteTimeout)
	}
	if s.Devices != "sample" {
		t.Errorf("devices = %s", s.Devices)
	}
}
