package scene

import (
	"slices"

	"github.com/ha1tch/floorplan-toolkit/pkg/geom"
)

// Wall is a straight stroke drawn with the wall tool.
type Wall struct {
	ID        string     `json:"id"`
	Start     geom.Point `json:"start"`
	End       geom.Point `json:"end"`
	Thickness int        `json:"thickness"`
	Color     string     `json:"color"`
}

// TextLabel is an annotation anchored at a point.
type TextLabel struct {
	ID       string     `json:"id"`
	Position geom.Point `json:"position"`
	Text     string     `json:"text"`
	FontSize int        `json:"font_size"`
	Color    string     `json:"color"`
}

// DrawingState is the undoable part of the floor plan.
//
// A DrawingState is treated as a value: methods never write into the
// backing arrays of the receiver, so a state held by the history can be
// shared freely.
type DrawingState struct {
	Walls  []Wall      `json:"walls"`
	Labels []TextLabel `json:"labels"`
}

// WithWall returns a new state with w appended.
func (s DrawingState) WithWall(w Wall) DrawingState {
	return DrawingState{
		Walls:  append(slices.Clip(s.Walls), w),
		Labels: s.Labels,
	}
}

// WithLabel returns a new state with l appended.
func (s DrawingState) WithLabel(l TextLabel) DrawingState {
	return DrawingState{
		Walls:  s.Walls,
		Labels: append(slices.Clip(s.Labels), l),
	}
}

// Erase removes every wall within radius of p (segment distance) and every
// label whose anchor is within radius. The bool reports whether anything
// was removed; when false the receiver is returned unchanged.
func (s DrawingState) Erase(p geom.Point, radius float64) (DrawingState, bool) {
	var walls []Wall
	for _, w := range s.Walls {
		if geom.DistanceToSegment(p, w.Start, w.End) > radius {
			walls = append(walls, w)
		}
	}

	var labels []TextLabel
	for _, l := range s.Labels {
		if p.Dist(l.Position) > radius {
			labels = append(labels, l)
		}
	}

	if len(walls) == len(s.Walls) && len(labels) == len(s.Labels) {
		return s, false
	}
	return DrawingState{Walls: walls, Labels: labels}, true
}

// Clone returns a deep copy of s.
func (s DrawingState) Clone() DrawingState {
	return DrawingState{
		Walls:  slices.Clone(s.Walls),
		Labels: slices.Clone(s.Labels),
	}
}

// Empty reports whether nothing has been drawn.
func (s DrawingState) Empty() bool {
	return len(s.Walls) == 0 && len(s.Labels) == 0
}
