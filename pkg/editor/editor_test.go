package editor

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ha1tch/floorplan-toolkit/pkg/geom"
	"github.com/ha1tch/floorplan-toolkit/pkg/scene"
)

func testDevices() []scene.Device {
	return []scene.Device{
		{ID: "1", Name: "AP-001", Position: geom.Pt(150, 100), Battery: 85, Capacity: 30, Status: scene.StatusOnline, Category: scene.CategoryAdPoint},
		{ID: "2", Name: "SB-001", Position: geom.Pt(300, 350), Battery: 92, Capacity: 20, Status: scene.StatusOnline, Category: scene.CategorySmartBin},
	}
}

// newTestEditor returns an editor with predictable ids.
func newTestEditor() *Editor {
	n := 0
	return New(scene.New(testDevices()), WithIDFunc(func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}))
}

func TestNewEditor(t *testing.T) {
	ed := newTestEditor()

	if ed.Tool() != ToolSelect {
		t.Errorf("initial tool = %v, want select", ed.Tool())
	}
	if ed.Interaction().Kind != Idle {
		t.Errorf("initial interaction = %v, want idle", ed.Interaction().Kind)
	}
	if ed.HistoryLen() != 1 || ed.HistoryIndex() != 0 {
		t.Errorf("history = %d/%d, want 1/0", ed.HistoryLen(), ed.HistoryIndex())
	}
	if !ed.Drawing().Empty() {
		t.Error("initial drawing should be empty")
	}
	if ed.CanUndo() || ed.CanRedo() {
		t.Error("fresh editor should have nothing to undo or redo")
	}
}

func TestDrawWall(t *testing.T) {
	ed := newTestEditor()
	ed.SelectTool(ToolWall)

	ed.Click(geom.Pt(100, 100))
	if ed.Interaction().Kind != DrawingWall {
		t.Fatalf("after first click interaction = %v, want drawing", ed.Interaction().Kind)
	}

	ed.PointerMove(geom.Pt(300, 100))
	pw, ok := ed.Preview()
	if !ok {
		t.Fatal("expected a wall preview while drawing")
	}
	if pw.Start != geom.Pt(100, 100) || pw.End != geom.Pt(300, 100) {
		t.Errorf("preview = %v-%v", pw.Start, pw.End)
	}

	ed.Click(geom.Pt(300, 100))

	walls := ed.Drawing().Walls
	if len(walls) != 1 {
		t.Fatalf("walls = %d, want 1", len(walls))
	}
	w := walls[0]
	if w.Start != geom.Pt(100, 100) || w.End != geom.Pt(300, 100) {
		t.Errorf("wall = %v-%v, want (100,100)-(300,100)", w.Start, w.End)
	}
	if w.Thickness != 4 || w.Color != "#374151" {
		t.Errorf("wall style = %d %s", w.Thickness, w.Color)
	}
	if w.ID != "wall-1" {
		t.Errorf("wall id = %q", w.ID)
	}
	if ed.HistoryLen() != 2 {
		t.Errorf("history length = %d, want 2", ed.HistoryLen())
	}
	if ed.Interaction().Kind != Idle {
		t.Errorf("interaction after commit = %v", ed.Interaction().Kind)
	}
	if _, ok := ed.Preview(); ok {
		t.Error("no preview expected after commit")
	}
}

func TestWallUsesSettingsAtCommit(t *testing.T) {
	ed := newTestEditor()
	ed.SelectTool(ToolWall)

	ed.Click(geom.Pt(10, 10))
	ed.Settings().SetWallThickness(9)
	if err := ed.Settings().SetWallColor("#ff0000"); err != nil {
		t.Fatal(err)
	}
	ed.Click(geom.Pt(50, 10))

	w := ed.Drawing().Walls[0]
	if w.Thickness != 9 || w.Color != "#ff0000" {
		t.Errorf("wall style = %d %s, want 9 #ff0000", w.Thickness, w.Color)
	}
}

func TestLeaveFinalizesWall(t *testing.T) {
	ed := newTestEditor()
	ed.SelectTool(ToolWall)

	ed.Click(geom.Pt(100, 100))
	ed.PointerMove(geom.Pt(250, 180))
	ed.PointerLeave(geom.Pt(900, 180))

	walls := ed.Drawing().Walls
	if len(walls) != 1 {
		t.Fatalf("walls = %d, want 1", len(walls))
	}
	if walls[0].End != geom.Pt(250, 180) {
		t.Errorf("wall end = %v, want last preview point (250,180)", walls[0].End)
	}
}

func TestToolSwitchCancelsWall(t *testing.T) {
	ed := newTestEditor()
	ed.SelectTool(ToolWall)

	ed.Click(geom.Pt(100, 100))
	ed.PointerMove(geom.Pt(200, 100))
	ed.SelectTool(ToolSelect)

	if ed.Interaction().Kind != Idle {
		t.Errorf("interaction = %v, want idle", ed.Interaction().Kind)
	}
	if len(ed.Drawing().Walls) != 0 {
		t.Error("half-drawn wall must not be committed")
	}
	if ed.HistoryLen() != 1 {
		t.Errorf("history length = %d, want 1", ed.HistoryLen())
	}

	// Wall, text, wall again: the abandoned wall must not come back
	ed.SelectTool(ToolWall)
	ed.Click(geom.Pt(100, 100))
	ed.PointerMove(geom.Pt(300, 200))
	ed.SelectTool(ToolText)
	ed.SelectTool(ToolWall)

	if _, ok := ed.Preview(); ok {
		t.Error("preview survived a tool round trip")
	}
	if ed.Interaction().Kind != Idle {
		t.Errorf("interaction = %v, want idle", ed.Interaction().Kind)
	}
	ed.PointerMove(geom.Pt(400, 400))
	if _, ok := ed.Preview(); ok {
		t.Error("moving after the round trip resumed the old wall")
	}
	if len(ed.Drawing().Walls) != 0 || ed.HistoryLen() != 1 {
		t.Errorf("walls = %d, history = %d; want 0, 1", len(ed.Drawing().Walls), ed.HistoryLen())
	}
}

func TestPlaceText(t *testing.T) {
	ed := newTestEditor()
	ed.SelectTool(ToolText)

	ed.Click(geom.Pt(200, 150))
	at, ok := ed.PendingText()
	if !ok || at != geom.Pt(200, 150) {
		t.Fatalf("pending text = %v %v", at, ok)
	}

	// Pointer input is ignored while text entry is open
	ed.Click(geom.Pt(400, 400))
	if at, _ := ed.PendingText(); at != geom.Pt(200, 150) {
		t.Errorf("pending text moved to %v", at)
	}

	committed, err := ed.ConfirmText("Exit")
	if err != nil {
		t.Fatal(err)
	}
	if !committed {
		t.Fatal("expected a label to be committed")
	}

	labels := ed.Drawing().Labels
	if len(labels) != 1 {
		t.Fatalf("labels = %d, want 1", len(labels))
	}
	l := labels[0]
	if l.Text != "Exit" || l.Position != geom.Pt(200, 150) || l.FontSize != 14 || l.Color != "#1f2937" {
		t.Errorf("label = %+v", l)
	}
	if ed.HistoryLen() != 2 {
		t.Errorf("history length = %d, want 2", ed.HistoryLen())
	}
	if _, ok := ed.PendingText(); ok {
		t.Error("text entry should be closed after confirm")
	}
}

func TestBlankOrCancelledTextDoesNotCommit(t *testing.T) {
	ed := newTestEditor()
	ed.SelectTool(ToolText)

	ed.Click(geom.Pt(200, 150))
	committed, err := ed.ConfirmText("   ")
	if err != nil {
		t.Fatal(err)
	}
	if committed {
		t.Error("blank text should not commit")
	}

	ed.Click(geom.Pt(220, 160))
	if !ed.CancelText() {
		t.Error("CancelText should report an open entry")
	}
	if ed.CancelText() {
		t.Error("second CancelText should report nothing open")
	}

	if ed.HistoryLen() != 1 {
		t.Errorf("history length = %d, want 1", ed.HistoryLen())
	}
	if _, err := ed.ConfirmText("late"); !errors.Is(err, ErrNotPlacingText) {
		t.Errorf("confirm without placement err = %v", err)
	}
}

func TestEraser(t *testing.T) {
	ed := newTestEditor()
	ed.SelectTool(ToolWall)
	ed.Click(geom.Pt(100, 100))
	ed.Click(geom.Pt(300, 100))
	ed.SelectTool(ToolText)
	ed.Click(geom.Pt(500, 500))
	if _, err := ed.ConfirmText("Store"); err != nil {
		t.Fatal(err)
	}

	ed.SelectTool(ToolEraser)

	// A miss leaves drawing and history alone
	before := ed.HistoryLen()
	ed.Click(geom.Pt(200, 300))
	if ed.HistoryLen() != before {
		t.Errorf("miss grew history to %d", ed.HistoryLen())
	}

	ed.Click(geom.Pt(200, 108))
	if n := len(ed.Drawing().Walls); n != 0 {
		t.Errorf("walls after erase = %d, want 0", n)
	}
	if n := len(ed.Drawing().Labels); n != 1 {
		t.Errorf("labels after erase = %d, want 1", n)
	}
	if ed.HistoryLen() != before+1 {
		t.Errorf("history length = %d, want %d", ed.HistoryLen(), before+1)
	}
}

func TestDragDevice(t *testing.T) {
	ed := newTestEditor()

	// Grab 5 units off-centre; the marker must not jump to the pointer
	ed.PointerDown(geom.Pt(155, 105))
	if ed.Interaction().Kind != DraggingDevice {
		t.Fatalf("interaction = %v, want dragging", ed.Interaction().Kind)
	}
	if d, ok := ed.Selected(); !ok || d.ID != "1" {
		t.Errorf("selected = %v %v, want device 1", d.ID, ok)
	}

	ed.PointerMove(geom.Pt(255, 205))
	d, _ := ed.Scene().Device("1")
	if d.Position != geom.Pt(250, 200) {
		t.Errorf("position = %v, want (250,200)", d.Position)
	}

	ed.PointerMove(geom.Pt(-50, -50))
	d, _ = ed.Scene().Device("1")
	if d.Position != geom.Pt(20, 20) {
		t.Errorf("clamped position = %v, want (20,20)", d.Position)
	}

	ed.PointerUp(geom.Pt(-50, -50))
	if ed.Interaction().Kind != Idle {
		t.Errorf("interaction after release = %v", ed.Interaction().Kind)
	}

	// Moves after release do nothing
	ed.PointerMove(geom.Pt(400, 400))
	d, _ = ed.Scene().Device("1")
	if d.Position != geom.Pt(20, 20) {
		t.Errorf("device moved after release to %v", d.Position)
	}

	if ed.HistoryLen() != 1 {
		t.Errorf("device moves must not enter history, len = %d", ed.HistoryLen())
	}
}

func TestDragMovesOnlyGrabbedDevice(t *testing.T) {
	ed := New(scene.New([]scene.Device{
		{ID: "a", Name: "A", Position: geom.Pt(100, 100), Status: scene.StatusOnline, Category: scene.CategoryAdPoint},
		{ID: "b", Name: "B", Position: geom.Pt(400, 400), Status: scene.StatusOnline, Category: scene.CategorySmartBin},
	}))

	ed.PointerDown(geom.Pt(400, 400))
	ed.PointerMove(geom.Pt(500, 300))
	ed.PointerUp(geom.Pt(500, 300))

	if b, _ := ed.Scene().Device("b"); b.Position != geom.Pt(500, 300) {
		t.Errorf("grabbed device at %v, want (500,300)", b.Position)
	}
	if a, _ := ed.Scene().Device("a"); a.Position != geom.Pt(100, 100) {
		t.Errorf("other device moved to %v", a.Position)
	}
}

func TestDragUnderZoom(t *testing.T) {
	ed := newTestEditor()
	ed.ZoomIn()
	ed.ZoomIn() // 1.44
	ed.PanBy(10, 20)

	tr := ed.Transform()
	start := tr.SceneToScreen(geom.Pt(150, 100))
	ed.PointerDown(start)
	ed.PointerMove(start.Add(geom.Pt(144, 72)))

	d, _ := ed.Scene().Device("1")
	if d.Position.Dist(geom.Pt(250, 150)) > 1e-9 {
		t.Errorf("position = %v, want (250,150)", d.Position)
	}
}

func TestPressOnEmptyCanvasDoesNothing(t *testing.T) {
	ed := newTestEditor()
	ed.PointerDown(geom.Pt(600, 500))
	ed.PointerMove(geom.Pt(610, 510))

	if ed.Interaction().Kind != Idle {
		t.Errorf("interaction = %v, want idle", ed.Interaction().Kind)
	}
	if _, ok := ed.Selected(); ok {
		t.Error("nothing should be selected")
	}
}

func TestSelectToolClearsSelection(t *testing.T) {
	ed := newTestEditor()
	ed.Click(geom.Pt(300, 350))
	if _, ok := ed.Selected(); !ok {
		t.Fatal("expected device 2 selected")
	}
	ed.SelectTool(ToolSelect)
	if _, ok := ed.Selected(); ok {
		t.Error("selection should be cleared on tool switch")
	}
}

func TestUndoRedo(t *testing.T) {
	ed := newTestEditor()
	ed.SelectTool(ToolWall)
	ed.Click(geom.Pt(0, 0))
	ed.Click(geom.Pt(100, 0))
	ed.Click(geom.Pt(0, 50))
	ed.Click(geom.Pt(100, 50))

	if n := len(ed.Drawing().Walls); n != 2 {
		t.Fatalf("walls = %d, want 2", n)
	}

	if !ed.Undo() {
		t.Fatal("undo should succeed")
	}
	if n := len(ed.Drawing().Walls); n != 1 {
		t.Errorf("walls after undo = %d, want 1", n)
	}
	if !ed.Redo() {
		t.Fatal("redo should succeed")
	}
	if n := len(ed.Drawing().Walls); n != 2 {
		t.Errorf("walls after redo = %d, want 2", n)
	}
	if ed.Redo() {
		t.Error("redo at newest entry should be a no-op")
	}

	ed.Undo()
	ed.Undo()
	if ed.Undo() {
		t.Error("undo at oldest entry should be a no-op")
	}
	if !ed.Drawing().Empty() {
		t.Error("drawing should be empty at oldest entry")
	}

	// A new commit drops the redo branch
	ed.Click(geom.Pt(10, 10))
	ed.Click(geom.Pt(20, 20))
	if ed.CanRedo() {
		t.Error("commit should clear redo entries")
	}
	if ed.HistoryLen() != 2 {
		t.Errorf("history length = %d, want 2", ed.HistoryLen())
	}
}

func TestViewDoesNotTouchHistory(t *testing.T) {
	ed := newTestEditor()
	ed.ZoomIn()
	ed.ZoomIn()
	ed.ZoomIn()
	if p := ed.Transform().Percent(); p != 173 {
		t.Errorf("zoom percent = %d, want 173", p)
	}
	ed.PanBy(30, -10)
	ed.ResetView()
	if tr := ed.Transform(); tr.Zoom != 1 || tr.Pan != geom.Pt(0, 0) {
		t.Errorf("reset transform = %+v", tr)
	}
	if ed.HistoryLen() != 1 {
		t.Errorf("history length = %d, want 1", ed.HistoryLen())
	}
}

func TestHistoryLimitOption(t *testing.T) {
	ed := New(scene.New(nil), WithHistoryLimit(3))
	ed.SelectTool(ToolWall)
	for i := 0; i < 5; i++ {
		ed.Click(geom.Pt(float64(i), 0))
		ed.Click(geom.Pt(float64(i), 100))
	}
	if ed.HistoryLen() != 3 {
		t.Errorf("history length = %d, want 3", ed.HistoryLen())
	}
	if n := len(ed.Drawing().Walls); n != 5 {
		t.Errorf("walls = %d, want 5", n)
	}
}

func TestStats(t *testing.T) {
	ed := newTestEditor()
	ed.SelectTool(ToolWall)
	ed.Click(geom.Pt(0, 0))
	ed.Click(geom.Pt(10, 0))

	st := ed.Stats()
	if st.Walls != 1 || st.Labels != 0 || st.Devices != 2 {
		t.Errorf("stats = %+v", st)
	}
}
