// Package scene provides the floor-plan entities: externally supplied devices
// and the undoable drawing (walls and text labels).
package scene

import (
	"fmt"
	"math"

	"github.com/ha1tch/floorplan-toolkit/pkg/geom"
)

// Status is a device's reported health.
type Status string

const (
	StatusOnline  Status = "online"
	StatusWarning Status = "warning"
	StatusOffline Status = "offline"
)

// Category is the kind of hardware a device marker represents.
type Category string

const (
	CategoryAdPoint  Category = "ad-point"
	CategorySmartBin Category = "smart-bin"
)

// ParseStatus converts a status name to a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOnline, StatusWarning, StatusOffline:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown device status %q", s)
}

// ParseCategory converts a category name to a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryAdPoint, CategorySmartBin:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown device category %q", s)
}

// Device is a monitored unit placed on the floor plan.
type Device struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Position geom.Point `json:"position"`
	Battery  int        `json:"battery"`  // percent
	Capacity int        `json:"capacity"` // percent
	Status   Status     `json:"status"`
	Category Category   `json:"category"`
}

// Normalize clamps the battery and capacity levels into 0-100.
func (d Device) Normalize() Device {
	d.Battery = clampPercent(d.Battery)
	d.Capacity = clampPercent(d.Capacity)
	return d
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Level is a coarse band used to colour a battery or capacity gauge.
type Level int

const (
	LevelGood Level = iota
	LevelWarn
	LevelCritical
)

func (l Level) String() string {
	switch l {
	case LevelGood:
		return "good"
	case LevelWarn:
		return "warn"
	case LevelCritical:
		return "critical"
	}
	return "unknown"
}

// BatteryLevel bands the battery: above 50 is good, above 20 is low.
func (d Device) BatteryLevel() Level {
	switch {
	case d.Battery > 50:
		return LevelGood
	case d.Battery > 20:
		return LevelWarn
	}
	return LevelCritical
}

// CapacityLevel bands the fill level: below 70 is good, below 90 is high.
func (d Device) CapacityLevel() Level {
	switch {
	case d.Capacity < 70:
		return LevelGood
	case d.Capacity < 90:
		return LevelWarn
	}
	return LevelCritical
}

// Marker colours
const (
	ColorAdPoint  = "#2563eb"
	ColorSmartBin = "#10b981"
	ColorWarning  = "#f59e0b"
	ColorOffline  = "#ef4444"
	ColorOnline   = "#10b981"
)

// MarkerColor returns the fill for the device marker. Problem states win
// over the category colour.
func (d Device) MarkerColor() string {
	switch d.Status {
	case StatusOffline:
		return ColorOffline
	case StatusWarning:
		return ColorWarning
	}
	if d.Category == CategoryAdPoint {
		return ColorAdPoint
	}
	return ColorSmartBin
}

// StatusColor returns the colour of the small status ring.
func (d Device) StatusColor() string {
	switch d.Status {
	case StatusOnline:
		return ColorOnline
	case StatusWarning:
		return ColorWarning
	}
	return ColorOffline
}

// CategoryLabel is the human-readable category name.
func (d Device) CategoryLabel() string {
	if d.Category == CategoryAdPoint {
		return "Ad Point"
	}
	return "Smart Bin"
}

// Summary formats the device details panel as plain text.
func (d Device) Summary() string {
	return fmt.Sprintf("%s (%s)\nStatus: %s\nBattery: %d%% [%s]\nCapacity: %d%% [%s]\nPosition: X: %d, Y: %d",
		d.Name, d.CategoryLabel(), d.Status,
		d.Battery, d.BatteryLevel(),
		d.Capacity, d.CapacityLevel(),
		int(math.Round(d.Position.X)), int(math.Round(d.Position.Y)))
}
