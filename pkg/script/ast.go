package script

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Script is a parsed event script.
type Script struct {
	Commands []*Command `@@*`
}

// Command is one script step. Exactly one field besides Pos is set.
type Command struct {
	Pos lexer.Position

	Tool      *string  `  "tool" @Ident`
	Thickness *int     `| "thickness" @Number`
	Size      *int     `| "size" @Number`
	WallColor *string  `| "wallcolor" @String`
	TextColor *string  `| "textcolor" @String`
	Pointer   *Pointer `| @@`
	Leave     bool     `| @"leave"`
	Text      *string  `| "text" @String`
	Cancel    bool     `| @"cancel"`
	Undo      bool     `| @"undo"`
	Redo      bool     `| @"redo"`
	Zoom      *string  `| "zoom" @( "in" | "out" | "reset" )`
	Pan       *Delta   `| "pan" @@`
}

// Pointer is a positioned pointer command in screen coordinates.
type Pointer struct {
	Action string  `@( "down" | "move" | "up" | "click" )`
	X      float64 `@Number`
	Y      float64 `@Number`
}

// Delta is a screen-space pan offset.
type Delta struct {
	DX float64 `@Number`
	DY float64 `@Number`
}

// Name returns the command keyword, for messages.
func (c *Command) Name() string {
	switch {
	case c.Tool != nil:
		return "tool"
	case c.Thickness != nil:
		return "thickness"
	case c.Size != nil:
		return "size"
	case c.WallColor != nil:
		return "wallcolor"
	case c.TextColor != nil:
		return "textcolor"
	case c.Pointer != nil:
		return c.Pointer.Action
	case c.Leave:
		return "leave"
	case c.Text != nil:
		return "text"
	case c.Cancel:
		return "cancel"
	case c.Undo:
		return "undo"
	case c.Redo:
		return "redo"
	case c.Zoom != nil:
		return "zoom"
	case c.Pan != nil:
		return "pan"
	}
	return "?"
}
