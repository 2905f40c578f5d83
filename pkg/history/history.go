// Package history implements a linear undo/redo journal of drawing
// snapshots.
package history

import "github.com/ha1tch/floorplan-toolkit/pkg/scene"

// DefaultLimit is the number of snapshots kept before the oldest are dropped.
const DefaultLimit = 100

// History is an ordered list of immutable drawing snapshots plus a cursor.
//
// Invariants: 0 <= index < len(states); undo is possible iff index > 0 and
// redo iff index < len(states)-1. Snapshots are never modified once
// committed. They share Wall and TextLabel values, which are plain values,
// but never a backing array that a later commit writes into.
type History struct {
	states []scene.DrawingState
	index  int
	limit  int // 0 = unlimited
}

// New creates a history whose first entry is initial. A positive limit
// bounds the number of snapshots retained.
func New(initial scene.DrawingState, limit int) *History {
	if limit < 0 {
		limit = 0
	}
	return &History{
		states: []scene.DrawingState{initial},
		limit:  limit,
	}
}

// Commit discards any redoable future, appends s and makes it current.
func (h *History) Commit(s scene.DrawingState) {
	// Truncate the redo branch. Clear the dropped tail so the snapshots can
	// be collected.
	clear(h.states[h.index+1:])
	h.states = append(h.states[:h.index+1], s)
	h.index = len(h.states) - 1

	if h.limit > 0 && len(h.states) > h.limit {
		drop := len(h.states) - h.limit
		clear(h.states[:drop])
		h.states = h.states[drop:]
		h.index -= drop
	}
}

// Undo steps back one snapshot and returns it. It is a no-op at the oldest
// snapshot.
func (h *History) Undo() (scene.DrawingState, bool) {
	if h.index == 0 {
		return h.states[0], false
	}
	h.index--
	return h.states[h.index], true
}

// Redo steps forward one snapshot and returns it. It is a no-op at the top.
func (h *History) Redo() (scene.DrawingState, bool) {
	if h.index == len(h.states)-1 {
		return h.states[h.index], false
	}
	h.index++
	return h.states[h.index], true
}

// Current returns the snapshot at the cursor.
func (h *History) Current() scene.DrawingState {
	return h.states[h.index]
}

// CanUndo reports whether Undo would change the cursor.
func (h *History) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether Redo would change the cursor.
func (h *History) CanRedo() bool { return h.index < len(h.states)-1 }

// Len returns the number of snapshots held.
func (h *History) Len() int { return len(h.states) }

// Index returns the cursor position.
func (h *History) Index() int { return h.index }
