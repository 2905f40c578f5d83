// Package source loads the devices shown on a floor plan.
//
// Devices are read once at session start. Position changes made in the
// editor are not written back.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ha1tch/floorplan-toolkit/pkg/geom"
	"github.com/ha1tch/floorplan-toolkit/pkg/scene"
)

// ErrNoDevices is returned when a source yields an empty device list.
var ErrNoDevices = errors.New("no devices")

// ErrDuplicateID is returned when two devices share an id. The id is what
// a drag moves, so it must be unique within a session.
var ErrDuplicateID = errors.New("duplicate id")

// DeviceSource supplies the device list for a session.
type DeviceSource interface {
	Devices(ctx context.Context) ([]scene.Device, error)
}

// Static serves a fixed device list.
type Static []scene.Device

// Devices returns a copy of the list.
func (s Static) Devices(ctx context.Context) ([]scene.Device, error) {
	if len(s) == 0 {
		return nil, ErrNoDevices
	}
	out := make([]scene.Device, len(s))
	copy(out, s)
	return out, nil
}

// Sample returns the demonstration fleet of ad points and smart bins.
func Sample() Static {
	return Static{
		{ID: "1", Name: "AP-001", Position: geom.Pt(150, 100), Battery: 85, Capacity: 30, Status: scene.StatusOnline, Category: scene.CategoryAdPoint},
		{ID: "2", Name: "AP-002", Position: geom.Pt(400, 200), Battery: 45, Capacity: 75, Status: scene.StatusWarning, Category: scene.CategoryAdPoint},
		{ID: "3", Name: "SB-001", Position: geom.Pt(300, 350), Battery: 92, Capacity: 20, Status: scene.StatusOnline, Category: scene.CategorySmartBin},
		{ID: "4", Name: "AP-003", Position: geom.Pt(600, 150), Battery: 15, Capacity: 90, Status: scene.StatusWarning, Category: scene.CategoryAdPoint},
		{ID: "5", Name: "SB-002", Position: geom.Pt(500, 400), Battery: 78, Capacity: 55, Status: scene.StatusOnline, Category: scene.CategorySmartBin},
	}
}

// Open picks a source from a location string: "" or "sample" for the
// built-in fleet, a .db/.sqlite path for SQLite, anything else as JSON.
// A SQLite database must already exist; use OpenSQLite to create one.
func Open(location string) (DeviceSource, error) {
	switch {
	case location == "" || location == "sample":
		return Sample(), nil
	case hasExt(location, ".db", ".sqlite", ".sqlite3"):
		if _, err := os.Stat(location); err != nil {
			return nil, fmt.Errorf("device database: %w", err)
		}
		db, err := OpenSQLite(location)
		if err != nil {
			return nil, err
		}
		return db, nil
	}
	return JSONFile(location), nil
}

// Load opens location and reads its devices.
func Load(ctx context.Context, location string) ([]scene.Device, error) {
	src, err := Open(location)
	if err != nil {
		return nil, err
	}
	if c, ok := src.(interface{ Close() error }); ok {
		defer c.Close()
	}
	devices, err := src.Devices(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkUnique(devices); err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	return devices, nil
}

func checkUnique(devices []scene.Device) error {
	seen := make(map[string]bool, len(devices))
	for i, d := range devices {
		if seen[d.ID] {
			return fmt.Errorf("device %d: %w %q", i, ErrDuplicateID, d.ID)
		}
		seen[d.ID] = true
	}
	return nil
}
