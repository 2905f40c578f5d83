// Package view holds the pan/zoom transform between screen and scene space.
package view

import (
	"math"

	"github.com/ha1tch/floorplan-toolkit/pkg/geom"
)

// Zoom limits and step.
const (
	MinZoom    = 0.5
	MaxZoom    = 3.0
	ZoomFactor = 1.2
)

// Transform maps scene coordinates to the screen as screen = scene*Zoom + Pan.
type Transform struct {
	Zoom float64
	Pan  geom.Point
}

// Identity returns the reset view: zoom 1, no pan.
func Identity() Transform {
	return Transform{Zoom: 1}
}

// SceneToScreen converts a scene point to screen coordinates.
func (t Transform) SceneToScreen(p geom.Point) geom.Point {
	return p.Scale(t.Zoom).Add(t.Pan)
}

// ScreenToScene converts a screen point back to scene coordinates.
func (t Transform) ScreenToScene(p geom.Point) geom.Point {
	z := t.Zoom
	if z == 0 {
		z = 1
	}
	return p.Sub(t.Pan).Scale(1 / z)
}

// Percent returns the zoom as a rounded percentage for display.
func (t Transform) Percent() int {
	return int(math.Round(t.Zoom * 100))
}

// Controller owns the current transform and exposes the discrete view
// operations. It never touches scene data.
type Controller struct {
	t Transform
}

// NewController returns a controller at the identity view.
func NewController() *Controller {
	return &Controller{t: Identity()}
}

// Transform returns the current transform.
func (c *Controller) Transform() Transform {
	return c.t
}

// ZoomIn multiplies the zoom by ZoomFactor, capped at MaxZoom.
func (c *Controller) ZoomIn() {
	c.t.Zoom = math.Min(c.t.Zoom*ZoomFactor, MaxZoom)
}

// ZoomOut divides the zoom by ZoomFactor, floored at MinZoom.
func (c *Controller) ZoomOut() {
	c.t.Zoom = math.Max(c.t.Zoom/ZoomFactor, MinZoom)
}

// PanBy shifts the view by a screen-space delta.
func (c *Controller) PanBy(dx, dy float64) {
	c.t.Pan = c.t.Pan.Add(geom.Pt(dx, dy))
}

// Reset restores zoom 1 and pan (0,0).
func (c *Controller) Reset() {
	c.t = Identity()
}
