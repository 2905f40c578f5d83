package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/ha1tch/floorplan-toolkit/pkg/editor"
	"github.com/ha1tch/floorplan-toolkit/pkg/geom"
	"github.com/ha1tch/floorplan-toolkit/pkg/scene"
)

// Styles
var (
	styleDefault    = tcell.StyleDefault
	styleGrid       = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleSidebar    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleSidebarH   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleSidebarSel = tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite)
	styleStatus     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgInfo    = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleMsgError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleMsgSuccess = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleHelp       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCursor     = tcell.StyleDefault.Background(tcell.ColorDarkGray)
	styleInput      = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleBorder     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Cell glyphs
const (
	glyphGrid     = '·'
	glyphWall     = '█'
	glyphPreview  = '░'
	glyphAdPoint  = '■'
	glyphSmartBin = '●'
	glyphStatus   = '•'
	glyphCursor   = '+'
	glyphDivider  = '│'
	nameOffset    = 35 // scene units below the marker centre
	statusOffset  = 15
	flashPeriodMs = 500
	flashPhaseMs  = 125
)

func (t *TUI) draw() {
	t.screen.Clear()
	w, h := t.screen.Size()

	t.drawCanvas()
	t.drawSidebar(w, h)

	switch t.mode {
	case ModeInput:
		t.drawInputBox(w, h)
	case ModeHelp:
		t.drawHelp(w, h)
	}

	t.drawStatusBar(w, h)
}

func (t *TUI) drawCanvas() {
	cw, ch := t.canvasSize()

	for y := 0; y < ch; y++ {
		t.screen.SetContent(cw, y, glyphDivider, nil, styleBorder)
	}

	// Grid, then walls, then labels and devices on top
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			if t.gridAt(x, y) {
				t.screen.SetContent(x, y, glyphGrid, nil, styleGrid)
			}
		}
	}

	drawing := t.ed.Drawing()
	for _, w := range drawing.Walls {
		t.drawWall(w, glyphWall)
	}
	if p, ok := t.ed.Preview(); ok {
		t.drawWall(p, glyphPreview)
	}

	for _, l := range drawing.Labels {
		x, y := t.sceneToCell(l.Position)
		style := tcell.StyleDefault.Foreground(colorOf(l.Color))
		t.drawClipped(x-len([]rune(l.Text))/2, y, l.Text, style)
	}

	selected, hasSelected := t.ed.Selected()
	for _, d := range t.ed.Scene().Devices() {
		t.drawDevice(d, hasSelected && d.ID == selected.ID)
	}

	if p, ok := t.ed.PendingText(); ok {
		x, y := t.sceneToCell(p)
		t.drawClipped(x, y, "_", styleCursor)
	}

	if t.inCanvas && t.mode == ModeCanvas {
		x, y := t.screenToCell(t.lastPos)
		if t.inCanvasCell(x, y) {
			mainc, _, style, _ := t.screen.GetContent(x, y)
			if mainc == ' ' || mainc == glyphGrid {
				mainc = glyphCursor
			}
			t.screen.SetContent(x, y, mainc, nil, style.Background(tcell.ColorDarkGray))
		}
	}
}

// gridAt reports whether a grid intersection falls inside the cell.
func (t *TUI) gridAt(x, y int) bool {
	sx, sy := t.cellSize()
	tr := t.ed.Transform()
	lo := tr.ScreenToScene(geom.Pt(float64(x)*sx, float64(y)*sy))
	hi := tr.ScreenToScene(geom.Pt(float64(x+1)*sx, float64(y+1)*sy))
	w, h := t.ed.Scene().Size()
	if !geom.R(0, 0, w, h).Contains(lo) {
		return false
	}
	return crossesGrid(lo.X, hi.X) && crossesGrid(lo.Y, hi.Y)
}

func crossesGrid(lo, hi float64) bool {
	k := math.Ceil(lo / scene.GridSize)
	return k*scene.GridSize < hi
}

// drawWall marks every cell whose centre lies within the stroke. The stroke
// is widened to half a cell so thin walls stay visible.
func (t *TUI) drawWall(w scene.Wall, glyph rune) {
	cw, ch := t.canvasSize()
	sx, sy := t.cellSize()
	tr := t.ed.Transform()
	reach := math.Max(float64(w.Thickness)/2, math.Max(sx, sy)/2/tr.Zoom)
	style := tcell.StyleDefault.Foreground(colorOf(w.Color))

	// Only scan the cells around the segment
	x0, y0 := t.sceneToCell(w.Start)
	x1, y1 := t.sceneToCell(w.End)
	pad := 1
	for y := max(min(y0, y1)-pad, 0); y <= min(max(y0, y1)+pad, ch-1); y++ {
		for x := max(min(x0, x1)-pad, 0); x <= min(max(x0, x1)+pad, cw-1); x++ {
			c := tr.ScreenToScene(t.cellToScreen(x, y))
			if geom.DistanceToSegment(c, w.Start, w.End) <= reach {
				t.screen.SetContent(x, y, glyph, nil, style)
			}
		}
	}
}

func (t *TUI) drawDevice(d scene.Device, selected bool) {
	x, y := t.sceneToCell(d.Position)

	glyph := glyphAdPoint
	if d.Category == scene.CategorySmartBin {
		glyph = glyphSmartBin
	}
	style := tcell.StyleDefault.Foreground(colorOf(d.MarkerColor()))
	if selected {
		style = style.Reverse(true)
	}
	if t.inCanvasCell(x, y) {
		t.screen.SetContent(x, y, glyph, nil, style)
	}

	sx, sy := t.sceneToCell(d.Position.Add(geom.Pt(statusOffset, -statusOffset)))
	if (sx != x || sy != y) && t.inCanvasCell(sx, sy) {
		t.screen.SetContent(sx, sy, glyphStatus, nil, tcell.StyleDefault.Foreground(colorOf(d.StatusColor())))
	}

	nx, ny := t.sceneToCell(d.Position.Add(geom.Pt(0, nameOffset)))
	if ny == y {
		ny++
	}
	t.drawClipped(nx-len(d.Name)/2, ny, d.Name, styleSidebar)
}

// drawClipped writes s on the canvas, dropping cells outside it.
func (t *TUI) drawClipped(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		if t.inCanvasCell(x+i, y) {
			t.screen.SetContent(x+i, y, r, nil, style)
		}
	}
}

func (t *TUI) drawSidebar(w, h int) {
	x := w - t.sidebarWidth + 2
	y := 0
	width := t.sidebarWidth - 3
	ed := t.ed
	s := ed.Settings()

	line := func(text string, style tcell.Style) {
		if y < h-2 {
			t.drawString(x, y, truncate(text, width), style)
		}
		y++
	}

	line("Floor Plan", styleSidebarH)
	y++

	line("Tools:", styleSidebarH)
	for i, tool := range editor.Tools {
		style := styleSidebar
		if tool == ed.Tool() {
			style = styleSidebarSel
		}
		line(fmt.Sprintf(" %d %-8s", i+1, tool), style)
	}
	y++

	line("Settings:", styleSidebarH)
	line(fmt.Sprintf(" Wall  %2dpx %s", s.WallThickness(), s.WallColor()), styleSidebar)
	line(fmt.Sprintf(" Text  %2dpx %s", s.TextSize(), s.TextColor()), styleSidebar)
	line(fmt.Sprintf(" Zoom  %d%%", ed.Transform().Percent()), styleSidebar)
	line(fmt.Sprintf(" Export %s", strings.ToUpper(t.config.ExportFormat)), styleSidebar)
	y++

	stats := ed.Stats()
	line("Plan:", styleSidebarH)
	line(fmt.Sprintf(" Walls    %d", stats.Walls), styleSidebar)
	line(fmt.Sprintf(" Labels   %d", stats.Labels), styleSidebar)
	line(fmt.Sprintf(" Devices  %d", stats.Devices), styleSidebar)
	line(fmt.Sprintf(" History  %d/%d", ed.HistoryIndex()+1, ed.HistoryLen()), styleSidebar)
	y++

	if d, ok := ed.Selected(); ok {
		line("Device:", styleSidebarH)
		for _, l := range strings.Split(d.Summary(), "\n") {
			line(" "+l, styleSidebar)
		}
	}
}

// shouldBeInverted reports the flash phase: normal, inverted, normal,
// inverted, then normal for good.
func shouldBeInverted(elapsed int64) bool {
	if elapsed < 0 || elapsed >= flashPeriodMs {
		return false
	}
	phase := elapsed / flashPhaseMs
	return phase == 1 || phase == 3
}

func shouldFlashForType(msgType MessageType) bool {
	return msgType == MsgError || msgType == MsgSuccess
}

func (t *TUI) drawStatusBar(w, h int) {
	y := h - 1

	for x := 0; x < w; x++ {
		t.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	tool := t.ed.Tool()
	left := fmt.Sprintf("[%s] %s", tool.Badge(), tool.Hint())
	if p, ok := t.ed.PendingText(); ok {
		left = fmt.Sprintf("[%s] label at %.0f,%.0f", tool.Badge(), p.X, p.Y)
	}
	t.drawString(1, y, left, styleStatus)

	modeStr := t.modeString()
	t.drawString(w/2-len(modeStr)/2, y, modeStr, styleStatus)

	if t.message != "" {
		style := styleMsgInfo
		switch t.messageType {
		case MsgError:
			style = styleMsgError
		case MsgSuccess:
			style = styleMsgSuccess
		}
		if start := t.messageFlashStart.Load(); shouldFlashForType(t.messageType) && start > 0 {
			if shouldBeInverted(time.Now().UnixMilli() - start) {
				style = style.Reverse(true)
			}
		}
		t.drawString(w-len(t.message)-2, y, t.message, style)
	}

	// Help bar
	y = h - 2
	for x := 0; x < w; x++ {
		t.screen.SetContent(x, y, ' ', nil, styleDefault)
	}
	t.drawString(1, y, t.helpString(), styleHelp)
}

func (t *TUI) drawInputBox(w, h int) {
	boxW := 50
	boxH := 3
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	t.drawBox(boxX, boxY, boxW, boxH, styleInput)
	t.drawString(boxX+2, boxY+1, t.inputPrompt, styleInput)

	// Keep the end of long input visible
	room := boxW - 5 - len(t.inputPrompt)
	buf := []rune(t.inputBuffer)
	if len(buf) > room {
		buf = buf[len(buf)-room:]
	}
	t.drawString(boxX+2+len(t.inputPrompt), boxY+1, string(buf)+"_", styleInput)
}

var helpLines = []string{
	"s w t e   Select, wall, text, eraser",
	"1-4       Same tools by number",
	"u r       Undo, redo (also Ctrl+Z/Y)",
	"+ - 0     Zoom in, out, reset",
	"Arrows    Pan",
	"[ ]       Wall thickness",
	", .       Text size",
	"c C       Cycle wall, text colour",
	"x f       Export, toggle PNG/SVG",
	"Esc       Cancel the current gesture",
	"q         Quit",
	"",
	"Mouse: click to use the tool,",
	"drag devices in select mode,",
	"wheel to zoom.",
}

func (t *TUI) drawHelp(w, h int) {
	boxW := 44
	boxH := len(helpLines) + 4
	x := max((w-boxW)/2, 0)
	y := max((h-boxH)/2, 0)

	t.drawTitledBox(x, y, boxW, boxH, "Help")
	for i, l := range helpLines {
		t.drawString(x+2, y+2+i, l, styleSidebar)
	}
}

// drawTitledBox draws a bordered box with optional title
func (t *TUI) drawTitledBox(x, y, w, h int, title string) {
	t.drawBox(x, y, w, h, styleDefault)
	if title != "" {
		titleX := x + (w-len(title)-2)/2
		t.screen.SetContent(titleX, y, ' ', nil, styleBorder)
		t.drawString(titleX+1, y, title, styleSidebarH)
		t.screen.SetContent(titleX+1+len(title), y, ' ', nil, styleBorder)
	}
}

func (t *TUI) drawBox(x, y, w, h int, style tcell.Style) {
	// Corners
	t.screen.SetContent(x, y, '┌', nil, styleBorder)
	t.screen.SetContent(x+w-1, y, '┐', nil, styleBorder)
	t.screen.SetContent(x, y+h-1, '└', nil, styleBorder)
	t.screen.SetContent(x+w-1, y+h-1, '┘', nil, styleBorder)

	for i := x + 1; i < x+w-1; i++ {
		t.screen.SetContent(i, y, '─', nil, styleBorder)
		t.screen.SetContent(i, y+h-1, '─', nil, styleBorder)
	}
	for i := y + 1; i < y+h-1; i++ {
		t.screen.SetContent(x, i, '│', nil, styleBorder)
		t.screen.SetContent(x+w-1, i, '│', nil, styleBorder)
	}

	for row := y + 1; row < y+h-1; row++ {
		for col := x + 1; col < x+w-1; col++ {
			t.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

func (t *TUI) drawString(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (t *TUI) modeString() string {
	switch t.mode {
	case ModeInput:
		return "INPUT"
	case ModeHelp:
		return "HELP"
	}
	switch t.ed.Interaction().Kind {
	case editor.DraggingDevice:
		return "MOVE"
	case editor.DrawingWall:
		return "DRAW"
	}
	return ""
}

func (t *TUI) helpString() string {
	switch t.mode {
	case ModeInput:
		return "Type text  Enter:Confirm  Esc:Cancel"
	case ModeHelp:
		return "Any key:Close"
	}
	return "s/w/t/e:Tool  u/r:Undo/Redo  +/-/0:Zoom  Arrows:Pan  x:Export  ?:Help  q:Quit"
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// colorOf converts a hex colour, falling back to the terminal default.
func colorOf(hex string) tcell.Color {
	c, err := scene.ParseColor(hex)
	if err != nil {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
