// Package render draws a floor plan as SVG or PNG.
//
// Both renderers work from a Frame, a read-only snapshot of everything on
// screen, so they can run after the editor has moved on.
package render

import (
	"github.com/ha1tch/floorplan-toolkit/pkg/editor"
	"github.com/ha1tch/floorplan-toolkit/pkg/scene"
	"github.com/ha1tch/floorplan-toolkit/pkg/view"
)

// Style constants shared by the SVG and PNG output.
const (
	gridColor     = "#e5e7eb"
	nameColor     = "#374151"
	background    = "#ffffff"
	nameSize      = 12
	nameOffset    = 35
	glyphHalf     = 8
	glyphRadius   = 8
	glyphCorner   = 2
	markerStroke  = 3
	statusRadius  = 5
	statusOffset  = 15
	statusStroke  = 2
	previewDash   = 5
	previewAlpha  = 0.7
	defaultStroke = "#000000"
)

// Frame is a snapshot of one screen of the editor.
type Frame struct {
	Width   float64
	Height  float64
	Devices []scene.Device
	Drawing scene.DrawingState
	Preview *scene.Wall // wall being drawn, if any
	View    view.Transform
}

// FrameOf captures the editor's current state.
func FrameOf(ed *editor.Editor) Frame {
	w, h := ed.Scene().Size()
	f := Frame{
		Width:   w,
		Height:  h,
		Devices: ed.Scene().Devices(),
		Drawing: ed.Drawing(),
		View:    ed.Transform(),
	}
	if p, ok := ed.Preview(); ok {
		f.Preview = &p
	}
	return f
}

func (f Frame) normalized() Frame {
	if f.Width <= 0 {
		f.Width = scene.CanvasWidth
	}
	if f.Height <= 0 {
		f.Height = scene.CanvasHeight
	}
	if f.View.Zoom == 0 {
		f.View.Zoom = 1
	}
	return f
}
