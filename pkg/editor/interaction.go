package editor

import (
	"github.com/ha1tch/floorplan-toolkit/pkg/geom"
	"github.com/ha1tch/floorplan-toolkit/pkg/scene"
)

// EraseRadius is the hit radius of the eraser, in scene units.
const EraseRadius = 10.0

// EventKind identifies a pointer event. A click is delivered as the
// PointerUp that ends it.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	PointerLeave
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerLeave:
		return "leave"
	}
	return "unknown"
}

// Event is a pointer event. Editor methods take screen coordinates; Step
// receives the position already mapped into scene space.
type Event struct {
	Kind EventKind
	Pos  geom.Point
}

// Kind is the gesture currently in progress.
type Kind int

const (
	Idle Kind = iota
	DraggingDevice
	DrawingWall
	PlacingText
)

func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case DraggingDevice:
		return "dragging"
	case DrawingWall:
		return "drawing"
	case PlacingText:
		return "placing-text"
	}
	return "unknown"
}

// Interaction is the in-progress gesture. Only the fields relevant to Kind
// are meaningful.
type Interaction struct {
	Kind Kind

	// DraggingDevice
	DeviceID   string
	GrabOffset geom.Point // pointer minus device position at grab time

	// DrawingWall
	WallStart geom.Point
	WallEnd   geom.Point

	// PlacingText
	TextAt geom.Point
}

// EffectKind identifies the scene mutation a transition asks for.
type EffectKind int

const (
	NoEffect EffectKind = iota
	SelectDevice
	MoveDevice
	CommitWall
	EraseAt
)

// Effect is the optional mutation produced by Step.
type Effect struct {
	Kind     EffectKind
	DeviceID string
	Pos      geom.Point // MoveDevice target or EraseAt point
	Start    geom.Point // CommitWall
	End      geom.Point
}

// Env is what Step may consult besides the event itself.
type Env struct {
	Tool     Tool
	DeviceAt func(geom.Point) (scene.Device, bool)
}

// Step is the tool state machine: a pure function from the current gesture
// and an event (in scene coordinates) to the next gesture and at most one
// effect.
func Step(in Interaction, ev Event, env Env) (Interaction, Effect) {
	// Text entry is modal; pointer input waits for confirm or cancel.
	if in.Kind == PlacingText {
		return in, Effect{}
	}

	switch env.Tool {
	case ToolSelect:
		return stepSelect(in, ev, env)
	case ToolWall:
		return stepWall(in, ev)
	case ToolText:
		if ev.Kind == PointerUp {
			return Interaction{Kind: PlacingText, TextAt: ev.Pos}, Effect{}
		}
	case ToolEraser:
		if ev.Kind == PointerUp {
			return Interaction{}, Effect{Kind: EraseAt, Pos: ev.Pos}
		}
	}
	return in, Effect{}
}

func stepSelect(in Interaction, ev Event, env Env) (Interaction, Effect) {
	switch ev.Kind {
	case PointerDown:
		if in.Kind != Idle || env.DeviceAt == nil {
			return in, Effect{}
		}
		d, ok := env.DeviceAt(ev.Pos)
		if !ok {
			return in, Effect{}
		}
		next := Interaction{
			Kind:       DraggingDevice,
			DeviceID:   d.ID,
			GrabOffset: ev.Pos.Sub(d.Position),
		}
		return next, Effect{Kind: SelectDevice, DeviceID: d.ID}

	case PointerMove:
		if in.Kind != DraggingDevice {
			return in, Effect{}
		}
		return in, Effect{Kind: MoveDevice, DeviceID: in.DeviceID, Pos: ev.Pos.Sub(in.GrabOffset)}

	case PointerUp, PointerLeave:
		if in.Kind == DraggingDevice {
			return Interaction{}, Effect{}
		}
	}
	return in, Effect{}
}

func stepWall(in Interaction, ev Event) (Interaction, Effect) {
	switch ev.Kind {
	case PointerDown, PointerMove:
		if in.Kind == DrawingWall {
			in.WallEnd = ev.Pos
		}
		return in, Effect{}

	case PointerUp:
		if in.Kind != DrawingWall {
			return Interaction{Kind: DrawingWall, WallStart: ev.Pos, WallEnd: ev.Pos}, Effect{}
		}
		return Interaction{}, Effect{Kind: CommitWall, Start: in.WallStart, End: ev.Pos}

	case PointerLeave:
		// Leaving the canvas completes the wall where the preview last was.
		if in.Kind == DrawingWall {
			return Interaction{}, Effect{Kind: CommitWall, Start: in.WallStart, End: in.WallEnd}
		}
	}
	return in, Effect{}
}
