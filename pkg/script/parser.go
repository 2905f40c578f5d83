// Package script replays editor sessions from plain-text event scripts.
//
//	tool wall
//	thickness 6
//	click 100 100
//	move 300 100
//	click 300 100   # finishes the wall
//	undo
//
// Coordinates are screen coordinates, so zoom and pan commands affect
// where later pointer events land in the scene.
package script

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

var parser = participle.MustBuild[Script](
	participle.Lexer(ScriptLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

// Parse parses a script from a reader.
func Parse(r io.Reader) (*Script, error) {
	s, err := parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return s, nil
}

// ParseString parses a script held in a string.
func ParseString(input string) (*Script, error) {
	s, err := parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return s, nil
}

// ParseFile parses a script file.
func ParseFile(filename string) (*Script, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}
