package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ha1tch/floorplan-toolkit/pkg/scene"
)

// ErrInvalidColor is returned when a colour setting is not a hex colour.
var ErrInvalidColor = errors.New("invalid colour")

// Setting ranges and defaults.
const (
	MinWallThickness     = 1
	MaxWallThickness     = 20
	DefaultWallThickness = 4
	DefaultWallColor     = "#374151"

	MinTextSize      = 8
	MaxTextSize      = 48
	DefaultTextSize  = 14
	DefaultTextColor = "#1f2937"
)

// Settings are the tool options read when a wall or label is finalised.
type Settings struct {
	wallThickness int
	wallColor     string
	textSize      int
	textColor     string
}

// DefaultSettings returns the stock tool options.
func DefaultSettings() Settings {
	return Settings{
		wallThickness: DefaultWallThickness,
		wallColor:     DefaultWallColor,
		textSize:      DefaultTextSize,
		textColor:     DefaultTextColor,
	}
}

func (s *Settings) WallThickness() int { return s.wallThickness }
func (s *Settings) WallColor() string  { return s.wallColor }
func (s *Settings) TextSize() int      { return s.textSize }
func (s *Settings) TextColor() string  { return s.textColor }

// SetWallThickness stores n clamped to 1-20 and returns the stored value.
func (s *Settings) SetWallThickness(n int) int {
	s.wallThickness = clampInt(n, MinWallThickness, MaxWallThickness)
	return s.wallThickness
}

// SetTextSize stores n clamped to 8-48 and returns the stored value.
func (s *Settings) SetTextSize(n int) int {
	s.textSize = clampInt(n, MinTextSize, MaxTextSize)
	return s.textSize
}

// SetWallColor sets the wall stroke colour. An invalid colour leaves the
// previous value in place.
func (s *Settings) SetWallColor(c string) error {
	c = strings.TrimSpace(c)
	if _, err := scene.ParseColor(c); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidColor, c)
	}
	s.wallColor = c
	return nil
}

// SetTextColor sets the label colour. An invalid colour leaves the previous
// value in place.
func (s *Settings) SetTextColor(c string) error {
	c = strings.TrimSpace(c)
	if _, err := scene.ParseColor(c); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidColor, c)
	}
	s.textColor = c
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
