package server

import (
	"github.com/ha1tch/floorplan-toolkit/pkg/editor"
	"github.com/ha1tch/floorplan-toolkit/pkg/geom"
	"github.com/ha1tch/floorplan-toolkit/pkg/scene"
)

// State is the JSON view of the session returned by GET /api/scene.
type State struct {
	Tool        string             `json:"tool"`
	Badge       string             `json:"badge"`
	Hint        string             `json:"hint"`
	Interaction string             `json:"interaction"`
	Zoom        float64            `json:"zoom"`
	ZoomPercent int                `json:"zoom_percent"`
	Pan         geom.Point         `json:"pan"`
	Devices     []scene.Device     `json:"devices"`
	Drawing     scene.DrawingState `json:"drawing"`
	Preview     *scene.Wall        `json:"preview,omitempty"`
	PendingText *geom.Point        `json:"pending_text,omitempty"`
	Selected    *scene.Device      `json:"selected,omitempty"`
	Stats       scene.Stats        `json:"stats"`
	History     HistoryState       `json:"history"`
	Settings    SettingsState      `json:"settings"`
}

// HistoryState reports the undo journal position.
type HistoryState struct {
	Length  int  `json:"length"`
	Index   int  `json:"index"`
	CanUndo bool `json:"can_undo"`
	CanRedo bool `json:"can_redo"`
}

// SettingsState mirrors editor.Settings. In requests every field is
// optional.
type SettingsState struct {
	WallThickness *int    `json:"wall_thickness,omitempty"`
	WallColor     *string `json:"wall_color,omitempty"`
	TextSize      *int    `json:"text_size,omitempty"`
	TextColor     *string `json:"text_color,omitempty"`
}

func settingsState(s *editor.Settings) SettingsState {
	wt, wc, ts, tc := s.WallThickness(), s.WallColor(), s.TextSize(), s.TextColor()
	return SettingsState{WallThickness: &wt, WallColor: &wc, TextSize: &ts, TextColor: &tc}
}

func stateOf(ed *editor.Editor) State {
	tr := ed.Transform()
	st := State{
		Tool:        ed.Tool().String(),
		Badge:       ed.Tool().Badge(),
		Hint:        ed.Tool().Hint(),
		Interaction: ed.Interaction().Kind.String(),
		Zoom:        tr.Zoom,
		ZoomPercent: tr.Percent(),
		Pan:         tr.Pan,
		Devices:     ed.Scene().Devices(),
		Drawing:     ed.Drawing(),
		Stats:       ed.Stats(),
		History: HistoryState{
			Length:  ed.HistoryLen(),
			Index:   ed.HistoryIndex(),
			CanUndo: ed.CanUndo(),
			CanRedo: ed.CanRedo(),
		},
		Settings: settingsState(ed.Settings()),
	}
	if w, ok := ed.Preview(); ok {
		st.Preview = &w
	}
	if p, ok := ed.PendingText(); ok {
		st.PendingText = &p
	}
	if d, ok := ed.Selected(); ok {
		st.Selected = &d
	}
	return st
}
