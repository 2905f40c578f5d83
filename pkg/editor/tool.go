package editor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTool is returned by ParseTool for names it does not recognise.
var ErrUnknownTool = errors.New("unknown tool")

// Tool is the active tool mode. Exactly one is active at a time.
type Tool int

const (
	ToolSelect Tool = iota
	ToolWall
	ToolText
	ToolEraser
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolSelect, ToolWall, ToolText, ToolEraser}

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolWall:
		return "wall"
	case ToolText:
		return "text"
	case ToolEraser:
		return "eraser"
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// ParseTool converts a tool name to a Tool.
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "select", "move":
		return ToolSelect, nil
	case "wall":
		return ToolWall, nil
	case "text":
		return ToolText, nil
	case "eraser", "erase":
		return ToolEraser, nil
	}
	return ToolSelect, fmt.Errorf("%w: %q", ErrUnknownTool, s)
}

// Badge is the short mode label shown next to the canvas title.
func (t Tool) Badge() string {
	switch t {
	case ToolWall:
		return "Drawing Walls"
	case ToolText:
		return "Adding Text"
	case ToolEraser:
		return "Eraser Mode"
	}
	return "Select Mode"
}

// Hint is the one-line usage hint for the tool.
func (t Tool) Hint() string {
	switch t {
	case ToolWall:
		return "Click to start drawing, click again to finish"
	case ToolText:
		return "Click where you want to add text"
	case ToolEraser:
		return "Click on walls or text to delete them"
	}
	return "Click and drag devices to move them"
}
