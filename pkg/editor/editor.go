// Package editor implements the interactive floor-plan editor: tool modes,
// pointer gestures, undoable drawing commits and the view transform.
//
// An Editor is driven synchronously by one input surface at a time and is
// not safe for concurrent use.
package editor

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/ha1tch/floorplan-toolkit/pkg/geom"
	"github.com/ha1tch/floorplan-toolkit/pkg/history"
	"github.com/ha1tch/floorplan-toolkit/pkg/scene"
	"github.com/ha1tch/floorplan-toolkit/pkg/view"
)

// ErrNotPlacingText is returned when text is confirmed with no pending
// text position.
var ErrNotPlacingText = errors.New("no text placement in progress")

// Editor ties the scene, history, view and tool state machine together.
type Editor struct {
	scene    *scene.Scene
	history  *history.History
	view     *view.Controller
	settings Settings

	tool     Tool
	inter    Interaction
	selected string // last device grabbed in select mode

	newID func(prefix string) string
}

// Option configures an Editor.
type Option func(*Editor)

// WithSettings sets the initial tool options.
func WithSettings(s Settings) Option {
	return func(ed *Editor) {
		ed.settings = s
	}
}

// WithHistoryLimit bounds the undo journal. Zero means unlimited.
func WithHistoryLimit(n int) Option {
	return func(ed *Editor) {
		ed.history = history.New(scene.DrawingState{}, n)
	}
}

// WithIDFunc replaces the id generator for new walls and labels.
func WithIDFunc(fn func(prefix string) string) Option {
	return func(ed *Editor) {
		ed.newID = fn
	}
}

// New creates an editor over sc with an empty drawing.
func New(sc *scene.Scene, opts ...Option) *Editor {
	ed := &Editor{
		scene:    sc,
		history:  history.New(scene.DrawingState{}, history.DefaultLimit),
		view:     view.NewController(),
		settings: DefaultSettings(),
		tool:     ToolSelect,
		newID:    uuidID,
	}
	for _, opt := range opts {
		opt(ed)
	}
	return ed
}

func uuidID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// Scene returns the live scene.
func (ed *Editor) Scene() *scene.Scene { return ed.scene }

// View returns the view controller.
func (ed *Editor) View() *view.Controller { return ed.view }

// Settings returns the mutable tool options.
func (ed *Editor) Settings() *Settings { return &ed.settings }

// Tool returns the active tool.
func (ed *Editor) Tool() Tool { return ed.tool }

// Interaction returns the gesture in progress.
func (ed *Editor) Interaction() Interaction { return ed.inter }

// Drawing returns the current drawing snapshot. Treat it as read-only.
func (ed *Editor) Drawing() scene.DrawingState { return ed.history.Current() }

// Stats counts walls, labels and devices.
func (ed *Editor) Stats() scene.Stats { return ed.scene.StatsFor(ed.Drawing()) }

// SelectTool switches tools. Any gesture in progress is dropped without
// being committed, and the device selection is cleared.
func (ed *Editor) SelectTool(t Tool) {
	ed.tool = t
	ed.inter = Interaction{}
	ed.selected = ""
}

// Selected returns the device most recently grabbed in select mode.
func (ed *Editor) Selected() (scene.Device, bool) {
	if ed.selected == "" {
		return scene.Device{}, false
	}
	return ed.scene.Device(ed.selected)
}

// Handle feeds a pointer event given in screen coordinates through the
// tool state machine and applies the resulting effect.
func (ed *Editor) Handle(ev Event) {
	ev.Pos = ed.view.Transform().ScreenToScene(ev.Pos)
	env := Env{Tool: ed.tool, DeviceAt: ed.scene.DeviceAt}

	next, eff := Step(ed.inter, ev, env)
	ed.inter = next
	ed.apply(eff)
}

func (ed *Editor) PointerDown(p geom.Point)  { ed.Handle(Event{Kind: PointerDown, Pos: p}) }
func (ed *Editor) PointerMove(p geom.Point)  { ed.Handle(Event{Kind: PointerMove, Pos: p}) }
func (ed *Editor) PointerUp(p geom.Point)    { ed.Handle(Event{Kind: PointerUp, Pos: p}) }
func (ed *Editor) PointerLeave(p geom.Point) { ed.Handle(Event{Kind: PointerLeave, Pos: p}) }

// Click is a press and release at the same screen point.
func (ed *Editor) Click(p geom.Point) {
	ed.PointerDown(p)
	ed.PointerUp(p)
}

func (ed *Editor) apply(eff Effect) {
	switch eff.Kind {
	case SelectDevice:
		ed.selected = eff.DeviceID

	case MoveDevice:
		// Device layout is live state and never enters the history.
		ed.scene.MoveDevice(eff.DeviceID, eff.Pos)

	case CommitWall:
		w := scene.Wall{
			ID:        ed.newID("wall"),
			Start:     eff.Start,
			End:       eff.End,
			Thickness: ed.settings.WallThickness(),
			Color:     ed.settings.WallColor(),
		}
		ed.history.Commit(ed.Drawing().WithWall(w))

	case EraseAt:
		if next, changed := ed.Drawing().Erase(eff.Pos, EraseRadius); changed {
			ed.history.Commit(next)
		}
	}
}

// PendingText returns where a label will be placed while text entry is
// open.
func (ed *Editor) PendingText() (geom.Point, bool) {
	if ed.inter.Kind != PlacingText {
		return geom.Point{}, false
	}
	return ed.inter.TextAt, true
}

// ConfirmText finishes text placement. Blank text is discarded without a
// history entry; the bool reports whether a label was committed.
func (ed *Editor) ConfirmText(text string) (bool, error) {
	if ed.inter.Kind != PlacingText {
		return false, ErrNotPlacingText
	}
	at := ed.inter.TextAt
	ed.inter = Interaction{}

	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}
	l := scene.TextLabel{
		ID:       ed.newID("text"),
		Position: at,
		Text:     text,
		FontSize: ed.settings.TextSize(),
		Color:    ed.settings.TextColor(),
	}
	ed.history.Commit(ed.Drawing().WithLabel(l))
	return true, nil
}

// CancelText abandons text placement. It reports whether one was open.
func (ed *Editor) CancelText() bool {
	if ed.inter.Kind != PlacingText {
		return false
	}
	ed.inter = Interaction{}
	return true
}

// Preview returns the wall being drawn, styled with the current settings.
func (ed *Editor) Preview() (scene.Wall, bool) {
	if ed.inter.Kind != DrawingWall {
		return scene.Wall{}, false
	}
	return scene.Wall{
		Start:     ed.inter.WallStart,
		End:       ed.inter.WallEnd,
		Thickness: ed.settings.WallThickness(),
		Color:     ed.settings.WallColor(),
	}, true
}

// Undo restores the previous drawing. It is a no-op with nothing to undo.
func (ed *Editor) Undo() bool {
	_, ok := ed.history.Undo()
	return ok
}

// Redo re-applies the next drawing. It is a no-op at the newest entry.
func (ed *Editor) Redo() bool {
	_, ok := ed.history.Redo()
	return ok
}

func (ed *Editor) CanUndo() bool   { return ed.history.CanUndo() }
func (ed *Editor) CanRedo() bool   { return ed.history.CanRedo() }
func (ed *Editor) HistoryLen() int { return ed.history.Len() }

// HistoryIndex returns the history cursor.
func (ed *Editor) HistoryIndex() int { return ed.history.Index() }

func (ed *Editor) ZoomIn()              { ed.view.ZoomIn() }
func (ed *Editor) ZoomOut()             { ed.view.ZoomOut() }
func (ed *Editor) ResetView()           { ed.view.Reset() }
func (ed *Editor) PanBy(dx, dy float64) { ed.view.PanBy(dx, dy) }

// Transform returns the current view transform.
func (ed *Editor) Transform() view.Transform { return ed.view.Transform() }
