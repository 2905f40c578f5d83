package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/floorplan-toolkit/pkg/editor"
	"github.com/ha1tch/floorplan-toolkit/pkg/render"
	"github.com/ha1tch/floorplan-toolkit/pkg/script"
)

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Replay an event script or start an interactive session",
	Long: `With a script file: replays it and prints the resulting status.
Without one: reads commands from standard input, one per line.

Script commands:
  tool select|wall|text|eraser
  thickness N, size N, wallcolor "#hex", textcolor "#hex"
  down X Y, move X Y, up X Y, click X Y, leave
  text "label", cancel
  undo, redo
  zoom in|out|reset, pan DX DY

Session commands: status, devices, drawing, save <file>, help, quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ed, _, err := newEditor(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		s, err := script.ParseFile(args[0])
		if err != nil {
			return err
		}
		if err := script.NewRunner(ed).Run(s); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		printStatus(out, ed)
		return nil
	}

	return repl(cmd.InOrStdin(), out, ed)
}

// repl reads commands line by line until EOF or quit.
func repl(in io.Reader, out io.Writer, ed *editor.Editor) error {
	runner := script.NewRunner(ed)

	fmt.Fprintln(out, "Floor plan session")
	fmt.Fprintln(out, "Type 'help' for commands, 'quit' to exit")
	fmt.Fprintln(out)
	printStatus(out, ed)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		word, rest, _ := strings.Cut(line, " ")

		switch word {
		case "quit", "exit", "q":
			return nil
		case "status":
			printStatus(out, ed)
		case "devices":
			printFleet(out, ed.Scene().Devices())
		case "drawing":
			printDrawing(out, ed)
		case "save":
			if err := save(ed, strings.TrimSpace(rest)); err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "Saved %s\n", strings.TrimSpace(rest))
		case "help":
			fmt.Fprintln(out, "Script commands: tool, thickness, size, wallcolor, textcolor,")
			fmt.Fprintln(out, "  down, move, up, click, leave, text, cancel, undo, redo, zoom, pan")
			fmt.Fprintln(out, "Session commands:")
			fmt.Fprintln(out, "  status       - Show tool, view and history")
			fmt.Fprintln(out, "  devices      - List devices")
			fmt.Fprintln(out, "  drawing      - List walls and labels")
			fmt.Fprintln(out, "  save <file>  - Render to .svg or .png")
			fmt.Fprintln(out, "  quit         - Exit")
		default:
			s, err := script.ParseString(line)
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				continue
			}
			if err := runner.Run(s); err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				continue
			}
			printStatus(out, ed)
		}
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

func printStatus(out io.Writer, ed *editor.Editor) {
	stats := ed.Stats()
	fmt.Fprintf(out, "[%s] %s  zoom %d%%  walls %d  labels %d  devices %d  history %d/%d\n",
		ed.Tool().Badge(), ed.Interaction().Kind,
		ed.Transform().Percent(),
		stats.Walls, stats.Labels, stats.Devices,
		ed.HistoryIndex()+1, ed.HistoryLen())
	if p, ok := ed.PendingText(); ok {
		fmt.Fprintf(out, "  waiting for text at %.0f,%.0f (text \"...\" or cancel)\n", p.X, p.Y)
	}
}

func printDrawing(out io.Writer, ed *editor.Editor) {
	d := ed.Drawing()
	if d.Empty() {
		fmt.Fprintln(out, "(empty)")
		return
	}
	for _, w := range d.Walls {
		fmt.Fprintf(out, "  wall  %.0f,%.0f -> %.0f,%.0f  %dpx %s\n",
			w.Start.X, w.Start.Y, w.End.X, w.End.Y, w.Thickness, w.Color)
	}
	for _, l := range d.Labels {
		fmt.Fprintf(out, "  text  %.0f,%.0f  %q  %dpx %s\n",
			l.Position.X, l.Position.Y, l.Text, l.FontSize, l.Color)
	}
}

// save renders the editor to path, choosing the format by extension.
func save(ed *editor.Editor, path string) error {
	if path == "" {
		return fmt.Errorf("usage: save <file.svg|file.png>")
	}
	frame := render.FrameOf(ed)
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".svg"):
		return os.WriteFile(path, []byte(render.SVG(frame, render.DefaultSVGOptions())), 0o644)
	case strings.HasSuffix(strings.ToLower(path), ".png"):
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := render.PNG(frame, f, render.DefaultPNGOptions()); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return fmt.Errorf("unknown extension for %s (use .svg or .png)", path)
}
