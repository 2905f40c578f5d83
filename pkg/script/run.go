package script

import (
	"fmt"

	"github.com/ha1tch/floorplan-toolkit/pkg/editor"
	"github.com/ha1tch/floorplan-toolkit/pkg/geom"
)

// Runner applies scripts to an editor. It remembers the last pointer
// position so that "leave" can be written without coordinates.
type Runner struct {
	ed   *editor.Editor
	last geom.Point
}

// NewRunner returns a runner driving ed.
func NewRunner(ed *editor.Editor) *Runner {
	return &Runner{ed: ed}
}

// Run applies every command in order and stops at the first failure. The
// error names the 1-based command index and its source line.
func (r *Runner) Run(s *Script) error {
	for i, cmd := range s.Commands {
		if err := r.apply(cmd); err != nil {
			return fmt.Errorf("command %d (%s, line %d): %w", i+1, cmd.Name(), cmd.Pos.Line, err)
		}
	}
	return nil
}

func (r *Runner) apply(c *Command) error {
	ed := r.ed
	switch {
	case c.Tool != nil:
		t, err := editor.ParseTool(*c.Tool)
		if err != nil {
			return err
		}
		ed.SelectTool(t)

	case c.Thickness != nil:
		ed.Settings().SetWallThickness(*c.Thickness)

	case c.Size != nil:
		ed.Settings().SetTextSize(*c.Size)

	case c.WallColor != nil:
		return ed.Settings().SetWallColor(*c.WallColor)

	case c.TextColor != nil:
		return ed.Settings().SetTextColor(*c.TextColor)

	case c.Pointer != nil:
		p := geom.Pt(c.Pointer.X, c.Pointer.Y)
		r.last = p
		switch c.Pointer.Action {
		case "down":
			ed.PointerDown(p)
		case "move":
			ed.PointerMove(p)
		case "up":
			ed.PointerUp(p)
		case "click":
			ed.Click(p)
		}

	case c.Leave:
		ed.PointerLeave(r.last)

	case c.Text != nil:
		_, err := ed.ConfirmText(*c.Text)
		return err

	case c.Cancel:
		ed.CancelText()

	case c.Undo:
		ed.Undo()

	case c.Redo:
		ed.Redo()

	case c.Zoom != nil:
		switch *c.Zoom {
		case "in":
			ed.ZoomIn()
		case "out":
			ed.ZoomOut()
		case "reset":
			ed.ResetView()
		}

	case c.Pan != nil:
		ed.PanBy(c.Pan.DX, c.Pan.DY)
	}
	return nil
}

// Exec parses src and runs it against ed.
func Exec(ed *editor.Editor, src string) error {
	s, err := ParseString(src)
	if err != nil {
		return err
	}
	return NewRunner(ed).Run(s)
}
