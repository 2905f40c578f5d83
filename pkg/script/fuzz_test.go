package script

import (
	"testing"

	"github.com/ha1tch/floorplan-toolkit/pkg/editor"
	"github.com/ha1tch/floorplan-toolkit/pkg/geom"
	"github.com/ha1tch/floorplan-toolkit/pkg/scene"
)

// FuzzParseAndRun feeds arbitrary text through the parser and replays
// whatever parses. Looking for panics and broken editor invariants.
// Run with: go test -fuzz=FuzzParseAndRun -fuzztime=30s ./pkg/script/
func FuzzParseAndRun(f *testing.F) {
	// Seed with valid scripts
	f.Add("tool wall\nclick 100 100\nmove 300 100\nclick 300 100")
	f.Add("tool text\nclick 10 10\ntext \"Hi\"\nundo\nredo")
	f.Add("tool select\ndown 150 100\nmove 900 -40\nup 900 -40")
	f.Add("zoom in\nzoom in\npan -20 15\ntool eraser\nclick 0 0")
	f.Add("thickness 99\nsize -3\nwallcolor \"#fff\"\ntextcolor \"nope\"")

	// Seed with edge cases
	f.Add("")
	f.Add("# only a comment")
	f.Add("tool")
	f.Add("click 1")
	f.Add("text \"unterminated")
	f.Add("leave\nleave\ncancel")

	f.Fuzz(func(t *testing.T, src string) {
		s, err := ParseString(src)
		if err != nil {
			return
		}
		devices := []scene.Device{
			{ID: "a", Name: "A", Position: geom.Pt(150, 100), Status: scene.StatusOnline, Category: scene.CategoryAdPoint},
		}
		sc := scene.New(devices)
		ed := editor.New(sc, editor.WithHistoryLimit(5))

		// Errors such as bad colours are fine; panics are not
		_ = NewRunner(ed).Run(s)

		if i, n := ed.HistoryIndex(), ed.HistoryLen(); i < 0 || i >= n || n > 5 {
			t.Errorf("history index %d of %d", i, n)
		}
		for _, d := range sc.Devices() {
			if !sc.Bounds().Contains(d.Position) {
				t.Errorf("device %s escaped bounds: %v", d.ID, d.Position)
			}
		}
		z := ed.Transform().Zoom
		if z < 0.5-1e-9 || z > 3+1e-9 {
			t.Errorf("zoom %v out of range", z)
		}
	})
}
