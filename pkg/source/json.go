package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ha1tch/floorplan-toolkit/pkg/geom"
	"github.com/ha1tch/floorplan-toolkit/pkg/scene"
)

// JSONFile reads devices from a JSON array on disk.
type JSONFile string

// jsonDevice accepts both a nested position and flat x/y fields.
type jsonDevice struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Position *geom.Point `json:"position,omitempty"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Battery  int         `json:"battery"`
	Capacity int         `json:"capacity"`
	Status   string      `json:"status"`
	Category string      `json:"category"`
	Type     string      `json:"type,omitempty"` // older exports
}

// Devices reads and parses the file.
func (f JSONFile) Devices(ctx context.Context) ([]scene.Device, error) {
	data, err := os.ReadFile(string(f))
	if err != nil {
		return nil, fmt.Errorf("read devices: %w", err)
	}
	devices, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f, err)
	}
	return devices, nil
}

// ParseJSON parses a JSON device array.
func ParseJSON(data []byte) ([]scene.Device, error) {
	var raw []jsonDevice
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrNoDevices
	}

	devices := make([]scene.Device, 0, len(raw))
	for i, jd := range raw {
		d, err := jd.device()
		if err != nil {
			return nil, fmt.Errorf("device %d: %w", i, err)
		}
		devices = append(devices, d)
	}
	if err := checkUnique(devices); err != nil {
		return nil, err
	}
	return devices, nil
}

func (jd jsonDevice) device() (scene.Device, error) {
	if jd.ID == "" {
		return scene.Device{}, errors.New("missing id")
	}
	status, err := scene.ParseStatus(jd.Status)
	if err != nil {
		return scene.Device{}, err
	}
	cat := jd.Category
	if cat == "" {
		cat = jd.Type
	}
	category, err := scene.ParseCategory(cat)
	if err != nil {
		return scene.Device{}, err
	}

	pos := geom.Pt(jd.X, jd.Y)
	if jd.Position != nil {
		pos = *jd.Position
	}
	name := jd.Name
	if name == "" {
		name = jd.ID
	}
	return scene.Device{
		ID:       jd.ID,
		Name:     name,
		Position: pos,
		Battery:  jd.Battery,
		Capacity: jd.Capacity,
		Status:   status,
		Category: category,
	}.Normalize(), nil
}

// ToJSON encodes devices in the format ParseJSON reads.
func ToJSON(devices []scene.Device) ([]byte, error) {
	return json.MarshalIndent(devices, "", "  ")
}

func hasExt(path string, exts ...string) bool {
	return slices.Contains(exts, strings.ToLower(filepath.Ext(path)))
}
