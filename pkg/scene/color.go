package scene

import (
	"fmt"
	"image/color"
	"strings"
	"unicode"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses a CSS hex colour in #rgb or #rrggbb form.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimSpace(s)
	// colorful.Hex scans with fixed widths and ignores trailing input, so the
	// length and spacing are checked here.
	if (len(hex) != 4 && len(hex) != 7) || strings.ContainsFunc(hex, unicode.IsSpace) {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustColor is ParseColor for compile-time constants. It panics on error.
func MustColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
