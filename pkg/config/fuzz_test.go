package config

import (
	"testing"

	"github.com/ha1tch/floorplan-toolkit/pkg/editor"
)

// FuzzParse checks that any config text yields usable settings.
func FuzzParse(f *testing.F) {
	f.Add("wall_thickness = \"6\"\nwall_color = \"#ff0000\"")
	f.Add("text_size = \"999\"\nexport_format = \"gif\"")
	f.Add("history_limit = \"-1\"\n# comment\nlast_dir = \"\"")
	f.Add("=\n==\n\"\"")
	f.Add("")

	f.Fuzz(func(t *testing.T, data string) {
		cfg := Parse(data)
		if cfg.ExportFormat != "png" && cfg.ExportFormat != "svg" {
			t.Errorf("export format %q", cfg.ExportFormat)
		}
		if cfg.HistoryLimit < 0 {
			t.Errorf("history limit %d", cfg.HistoryLimit)
		}
		s := cfg.Settings()
		if n := s.WallThickness(); n < editor.MinWallThickness || n > editor.MaxWallThickness {
			t.Errorf("wall thickness %d", n)
		}
		if n := s.TextSize(); n < editor.MinTextSize || n > editor.MaxTextSize {
			t.Errorf("text size %d", n)
		}
	})
}
