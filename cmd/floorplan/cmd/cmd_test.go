package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ha1tch/floorplan-toolkit/pkg/editor"
	"github.com/ha1tch/floorplan-toolkit/pkg/scene"
	"github.com/ha1tch/floorplan-toolkit/pkg/source"
)

const wallScript = `# one wall and a label
tool wall
thickness 6
click 100 100
move 300 100
click 300 100
tool text
click 200 200
text "Lobby"
`

// execute runs the root command with fresh flag values and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	devicesFlag, configFlag, verbose = "", "", false
	renderOutput, renderFormat = "", ""
	renderWidth, renderHeight, renderSupersample = 0, 0, 1

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "missing")))
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInfoE2E(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
	}{
		{
			name: "sample fleet",
			args: []string{"info"},
			wantContain: []string{
				"Devices:     5",
				"Warning:     2",
				"AP-001",
				"Smart Bin",
			},
		},
		{
			name: "single device",
			args: []string{"info", "4"},
			wantContain: []string{
				"AP-003 (Ad Point)",
				"Battery: 15% [critical]",
				"Position: X: 600, Y: 150",
			},
		},
		{
			name:    "unknown device",
			args:    []string{"info", "99"},
			wantErr: true,
		},
		{
			name:    "missing source",
			args:    []string{"info", "-d", "/nonexistent/devices.json"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got output:\n%s", out)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q\nGot:\n%s", want, out)
				}
			}
		})
	}
}

func TestRunScriptE2E(t *testing.T) {
	path := writeFile(t, "session.fps", wallScript)

	out, err := execute(t, "run", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "walls 1  labels 1  devices 5") {
		t.Errorf("status not reported:\n%s", out)
	}

	bad := writeFile(t, "bad.fps", "tool wall\ntool hammer\n")
	if _, err := execute(t, "run", bad); err == nil || !strings.Contains(err.Error(), "command 2") {
		t.Errorf("err = %v, want failure at command 2", err)
	}
}

func TestRenderE2E(t *testing.T) {
	path := writeFile(t, "session.fps", wallScript)

	out, err := execute(t, "render", path, "--format", "svg")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "<svg") || !strings.Contains(out, "Lobby") || !strings.Contains(out, `stroke-width="6"`) {
		t.Errorf("unexpected SVG:\n%s", out)
	}

	png := filepath.Join(t.TempDir(), "plan.png")
	if _, err := execute(t, "render", path, "-o", png, "--width", "200", "--height", "150"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(png)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}

	if _, err := execute(t, "render", "--format", "gif"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestDevicesImportE2E(t *testing.T) {
	db := filepath.Join(t.TempDir(), "fleet.db")

	out, err := execute(t, "devices", "import", "sample", db)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Imported 5 devices") {
		t.Errorf("output = %q", out)
	}

	out, err = execute(t, "info", "-d", db, "5")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "SB-002 (Smart Bin)") {
		t.Errorf("device from db:\n%s", out)
	}

	out, err = execute(t, "devices", "export", "-d", db)
	if err != nil {
		t.Fatal(err)
	}
	devices, err := source.ParseJSON([]byte(out))
	if err != nil {
		t.Fatalf("export is not readable: %v", err)
	}
	if len(devices) != 5 {
		t.Errorf("exported %d devices", len(devices))
	}
}

func TestREPL(t *testing.T) {
	devices, _ := source.Sample().Devices(t.Context())
	ed := editor.New(scene.New(devices))
	svg := filepath.Join(t.TempDir(), "plan.svg")

	in := strings.NewReader(strings.Join([]string{
		"tool wall",
		"click 10 10",
		"click 50 10",
		"tool hammer",
		"drawing",
		"undo",
		"status",
		"save " + svg,
		"quit",
		"tool text",
	}, "\n"))

	var out bytes.Buffer
	if err := repl(in, &out, ed); err != nil {
		t.Fatal(err)
	}
	got := out.String()

	for _, want := range []string{
		"wall  10,10 -> 50,10",
		"Error:",
		"walls 0",
		"Saved " + svg,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\nGot:\n%s", want, got)
		}
	}
	if ed.Tool() != editor.ToolWall {
		t.Error("commands after quit should not run")
	}
	if _, err := os.Stat(svg); err != nil {
		t.Errorf("save: %v", err)
	}
}
