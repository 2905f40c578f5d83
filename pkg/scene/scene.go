package scene

import (
	"slices"

	"github.com/ha1tch/floorplan-toolkit/pkg/geom"
)

// Default canvas geometry, in scene units.
const (
	CanvasWidth  = 800
	CanvasHeight = 600
	MarkerRadius = 20
	GridSize     = 50
)

// Scene holds the live device layout. Device positions are not part of the
// undo journal; the drawing lives in the history instead.
type Scene struct {
	devices []Device
	width   float64
	height  float64
	bounds  geom.Rect
}

// New creates a scene on the default 800x600 canvas.
func New(devices []Device) *Scene {
	return NewSized(devices, CanvasWidth, CanvasHeight)
}

// NewSized creates a scene on a canvas of the given size. Devices are kept
// one marker radius away from the canvas edge.
func NewSized(devices []Device, width, height float64) *Scene {
	s := &Scene{
		devices: make([]Device, len(devices)),
		width:   width,
		height:  height,
		bounds:  geom.R(0, 0, width, height).Inset(MarkerRadius),
	}
	for i, d := range devices {
		s.devices[i] = d.Normalize()
	}
	return s
}

// Size returns the canvas extent.
func (s *Scene) Size() (width, height float64) {
	return s.width, s.height
}

// Bounds returns the rectangle device positions are clamped to.
func (s *Scene) Bounds() geom.Rect {
	return s.bounds
}

// Devices returns a copy of the devices in draw order.
func (s *Scene) Devices() []Device {
	return slices.Clone(s.devices)
}

// Device looks up a device by id.
func (s *Scene) Device(id string) (Device, bool) {
	i := s.index(id)
	if i < 0 {
		return Device{}, false
	}
	return s.devices[i], true
}

// DeviceAt returns the device whose marker covers p. Markers drawn later
// sit on top, so the search runs back to front.
func (s *Scene) DeviceAt(p geom.Point) (Device, bool) {
	for i := len(s.devices) - 1; i >= 0; i-- {
		if p.Dist(s.devices[i].Position) <= MarkerRadius {
			return s.devices[i], true
		}
	}
	return Device{}, false
}

// MoveDevice sets a device position, clamped to Bounds, and returns the
// position actually applied.
func (s *Scene) MoveDevice(id string, p geom.Point) (geom.Point, bool) {
	i := s.index(id)
	if i < 0 {
		return geom.Point{}, false
	}
	p = s.bounds.Clamp(p)
	s.devices[i].Position = p
	return p, true
}

func (s *Scene) index(id string) int {
	for i, d := range s.devices {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// Stats counts what is on the floor plan.
type Stats struct {
	Walls   int `json:"walls"`
	Labels  int `json:"labels"`
	Devices int `json:"devices"`
}

// StatsFor combines the live device count with a drawing.
func (s *Scene) StatsFor(d DrawingState) Stats {
	return Stats{
		Walls:   len(d.Walls),
		Labels:  len(d.Labels),
		Devices: len(s.devices),
	}
}
