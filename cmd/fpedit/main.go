// Command fpedit is a TUI editor for device floor plans.
package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/ha1tch/floorplan-toolkit/pkg/config"
	"github.com/ha1tch/floorplan-toolkit/pkg/editor"
	"github.com/ha1tch/floorplan-toolkit/pkg/geom"
	"github.com/ha1tch/floorplan-toolkit/pkg/render"
	"github.com/ha1tch/floorplan-toolkit/pkg/scene"
	"github.com/ha1tch/floorplan-toolkit/pkg/source"
)

// TUI holds the terminal session around an editor.
type TUI struct {
	screen      tcell.Screen
	ed          *editor.Editor
	config      config.Config
	mode        Mode
	message     string
	messageType MessageType

	// Pointer tracking
	leftDown bool
	inCanvas bool
	lastPos  geom.Point // last canvas position, in editor screen pixels

	// UI regions
	sidebarWidth int

	// Input state
	inputBuffer string
	inputPrompt string
	inputAction func(string)
	inputCancel func()

	// Message flash state
	messageFlashStart atomic.Int64 // Unix milliseconds when message was shown
}

// Mode represents the TUI mode
type Mode int

const (
	ModeCanvas Mode = iota
	ModeInput
	ModeHelp
)

// MessageType for status messages
type MessageType int

const (
	MsgInfo    MessageType = iota // Informative, no flash
	MsgError                      // Errors, flash
	MsgSuccess                    // State changes, flash
)

// Pan step in editor screen pixels for the arrow keys.
const panStep = 50

// Colours cycled by the c and C keys.
var palette = []string{"#374151", "#000000", "#ef4444", "#2563eb", "#10b981", "#f59e0b"}

func main() {
	cfg := config.Load()

	location := cfg.Devices
	if len(os.Args) > 1 {
		location = os.Args[1]
	}
	devices, err := source.Load(context.Background(), location)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading devices from %s: %v\n", location, err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.Clear()

	t := newTUI(screen, editor.New(scene.New(devices), cfg.EditorOptions()...), cfg)
	t.run()

	screen.Fini()

	t.config.Capture(t.ed.Settings())
	if err := t.config.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
	}
}

func newTUI(screen tcell.Screen, ed *editor.Editor, cfg config.Config) *TUI {
	return &TUI{
		screen:       screen,
		ed:           ed,
		config:       cfg,
		sidebarWidth: 32,
	}
}

func (t *TUI) run() {
	done := make(chan struct{})
	defer close(done)
	go t.flashTicker(done)

	for {
		t.draw()
		t.screen.Show()

		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			if t.handleKey(ev) {
				return
			}
		case *tcell.EventMouse:
			t.handleMouse(ev)
		case *tcell.EventInterrupt:
			// Refresh for flash animation
		case nil:
			return
		}
	}
}

// flashTicker posts refresh events while a message is flashing. It only
// reads the flash start, which is the one field shared with the event loop.
func (t *TUI) flashTicker(done <-chan struct{}) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			start := t.messageFlashStart.Load()
			if start == 0 {
				continue
			}
			if elapsed := time.Now().UnixMilli() - start; elapsed >= 0 && elapsed < 700 {
				t.screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}
}

// Canvas geometry

// canvasSize returns the canvas area in cells.
func (t *TUI) canvasSize() (int, int) {
	w, h := t.screen.Size()
	cw := w - t.sidebarWidth
	ch := h - 2 // status and help bars
	if cw < 1 {
		cw = 1
	}
	if ch < 1 {
		ch = 1
	}
	return cw, ch
}

// cellSize returns the editor screen pixels covered by one cell. The whole
// canvas extent is fitted to the canvas area.
func (t *TUI) cellSize() (float64, float64) {
	cw, ch := t.canvasSize()
	w, h := t.ed.Scene().Size()
	return w / float64(cw), h / float64(ch)
}

// cellToScreen returns the editor screen point at the centre of a cell.
func (t *TUI) cellToScreen(x, y int) geom.Point {
	sx, sy := t.cellSize()
	return geom.Pt((float64(x)+0.5)*sx, (float64(y)+0.5)*sy)
}

// screenToCell returns the cell containing an editor screen point.
func (t *TUI) screenToCell(p geom.Point) (int, int) {
	sx, sy := t.cellSize()
	return int(math.Floor(p.X / sx)), int(math.Floor(p.Y / sy))
}

// sceneToCell maps a scene point through the view onto a cell.
func (t *TUI) sceneToCell(p geom.Point) (int, int) {
	return t.screenToCell(t.ed.Transform().SceneToScreen(p))
}

func (t *TUI) inCanvasCell(x, y int) bool {
	cw, ch := t.canvasSize()
	return x >= 0 && x < cw && y >= 0 && y < ch
}

// Input handling

func (t *TUI) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}

	switch t.mode {
	case ModeInput:
		t.handleInputKey(ev)
		return false
	case ModeHelp:
		t.mode = ModeCanvas
		return false
	}
	return t.handleCanvasKey(ev)
}

func (t *TUI) handleCanvasKey(ev *tcell.EventKey) bool {
	ed := t.ed
	s := ed.Settings()

	switch ev.Key() {
	case tcell.KeyEscape:
		// Drop any gesture in progress
		ed.SelectTool(ed.Tool())
		return false
	case tcell.KeyCtrlZ:
		t.undo()
		return false
	case tcell.KeyCtrlY:
		t.redo()
		return false
	case tcell.KeyUp:
		ed.PanBy(0, panStep)
		return false
	case tcell.KeyDown:
		ed.PanBy(0, -panStep)
		return false
	case tcell.KeyLeft:
		ed.PanBy(panStep, 0)
		return false
	case tcell.KeyRight:
		ed.PanBy(-panStep, 0)
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 's', '1':
		t.selectTool(editor.ToolSelect)
	case 'w', '2':
		t.selectTool(editor.ToolWall)
	case 't', '3':
		t.selectTool(editor.ToolText)
	case 'e', '4':
		t.selectTool(editor.ToolEraser)
	case 'u':
		t.undo()
	case 'r':
		t.redo()
	case '+', '=':
		ed.ZoomIn()
	case '-':
		ed.ZoomOut()
	case '0':
		ed.ResetView()
	case '[':
		s.SetWallThickness(s.WallThickness() - 1)
	case ']':
		s.SetWallThickness(s.WallThickness() + 1)
	case ',':
		s.SetTextSize(s.TextSize() - 2)
	case '.':
		s.SetTextSize(s.TextSize() + 2)
	case 'c':
		s.SetWallColor(nextColor(s.WallColor()))
	case 'C':
		s.SetTextColor(nextColor(s.TextColor()))
	case 'f':
		t.toggleExportFormat()
	case 'x':
		t.promptExport()
	case '?', 'h':
		t.mode = ModeHelp
	}
	return false
}

func (t *TUI) handleInputKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		t.mode = ModeCanvas
		if t.inputAction != nil {
			t.inputAction(t.inputBuffer)
		}
	case tcell.KeyEscape:
		t.mode = ModeCanvas
		if t.inputCancel != nil {
			t.inputCancel()
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(t.inputBuffer) > 0 {
			r := []rune(t.inputBuffer)
			t.inputBuffer = string(r[:len(r)-1])
		}
	case tcell.KeyRune:
		t.inputBuffer += string(ev.Rune())
	}
}

func (t *TUI) handleMouse(ev *tcell.EventMouse) {
	if t.mode != ModeCanvas {
		return
	}
	x, y := ev.Position()
	buttons := ev.Buttons()

	if !t.inCanvasCell(x, y) {
		// Leaving the canvas ends a wall or drag like the pointer leaving
		// the drawing surface.
		if t.inCanvas {
			t.inCanvas = false
			t.ed.PointerLeave(t.lastPos)
			t.leftDown = false
		}
		return
	}
	t.inCanvas = true
	p := t.cellToScreen(x, y)
	t.lastPos = p

	switch {
	case buttons&tcell.WheelUp != 0:
		t.ed.ZoomIn()
		return
	case buttons&tcell.WheelDown != 0:
		t.ed.ZoomOut()
		return
	}

	pressed := buttons&tcell.Button1 != 0
	switch {
	case pressed && !t.leftDown:
		t.leftDown = true
		t.ed.PointerDown(p)
	case !pressed && t.leftDown:
		t.leftDown = false
		t.ed.PointerUp(p)
	default:
		t.ed.PointerMove(p)
	}

	if _, ok := t.ed.PendingText(); ok {
		t.promptText()
	}
}

// Actions

func (t *TUI) selectTool(tool editor.Tool) {
	t.ed.SelectTool(tool)
	t.showMessage(tool.Hint(), MsgInfo)
}

func (t *TUI) undo() {
	if t.ed.Undo() {
		t.showMessage("Undo", MsgSuccess)
	} else {
		t.showMessage("Nothing to undo", MsgInfo)
	}
}

func (t *TUI) redo() {
	if t.ed.Redo() {
		t.showMessage("Redo", MsgSuccess)
	} else {
		t.showMessage("Nothing to redo", MsgInfo)
	}
}

func (t *TUI) promptText() {
	t.openInput("Label: ", "", func(text string) {
		ok, err := t.ed.ConfirmText(text)
		switch {
		case err != nil:
			t.showMessage(err.Error(), MsgError)
		case ok:
			t.showMessage("Added label", MsgSuccess)
		}
	}, func() {
		t.ed.CancelText()
	})
}

func (t *TUI) promptExport() {
	name := "floorplan." + t.config.ExportFormat
	t.openInput("Export to: ", filepath.Join(t.config.LastDir, name), func(path string) {
		path = strings.TrimSpace(path)
		if path == "" {
			return
		}
		if err := t.export(path); err != nil {
			t.showMessage(fmt.Sprintf("Export failed: %v", err), MsgError)
			return
		}
		t.config.LastDir = filepath.Dir(path)
		t.showMessage("Exported "+filepath.Base(path), MsgSuccess)
	}, nil)
}

func (t *TUI) openInput(prompt, initial string, action func(string), cancel func()) {
	t.mode = ModeInput
	t.inputPrompt = prompt
	t.inputBuffer = initial
	t.inputAction = action
	t.inputCancel = cancel
}

func (t *TUI) toggleExportFormat() {
	if t.config.ExportFormat == "svg" {
		t.config.ExportFormat = "png"
	} else {
		t.config.ExportFormat = "svg"
	}
	t.showMessage("Export format: "+strings.ToUpper(t.config.ExportFormat), MsgInfo)
}

// export renders the floor plan to path. The extension picks the format,
// falling back to the configured one.
func (t *TUI) export(path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format != "svg" && format != "png" {
		format = t.config.ExportFormat
	}

	frame := render.FrameOf(t.ed)
	if format == "svg" {
		return os.WriteFile(path, []byte(render.SVG(frame, render.DefaultSVGOptions())), 0o644)
	}

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

func (t *TUI) showMessage(msg string, msgType MessageType) {
	t.message = msg
	t.messageType = msgType
	t.messageFlashStart.Store(time.Now().UnixMilli())
}

func nextColor(current string) string {
	for i, c := range palette {
		if strings.EqualFold(c, current) {
			return palette[(i+1)%len(palette)]
		}
	}
	return palette[0]
}
