package view

import (
	"math"
	"testing"

	"github.com/ha1tch/floorplan-toolkit/pkg/geom"
)

func TestZoomInThreeTimes(t *testing.T) {
	c := NewController()
	c.ZoomIn()
	c.ZoomIn()
	c.ZoomIn()

	if got := c.Transform().Zoom; math.Abs(got-1.728) > 1e-9 {
		t.Errorf("zoom = %.6f, want 1.728", got)
	}
	if got := c.Transform().Percent(); got != 173 {
		t.Errorf("percent = %d, want 173", got)
	}

	c.PanBy(30, -10)
	c.Reset()
	tr := c.Transform()
	if tr.Zoom != 1 || tr.Pan != (geom.Point{}) {
		t.Errorf("after reset: zoom=%v pan=%v", tr.Zoom, tr.Pan)
	}
}

func TestZoomClamps(t *testing.T) {
	c := NewController()
	for i := 0; i < 20; i++ {
		c.ZoomIn()
	}
	if got := c.Transform().Zoom; got != MaxZoom {
		t.Errorf("zoom after many ZoomIn = %v, want %v", got, MaxZoom)
	}
	for i := 0; i < 40; i++ {
		c.ZoomOut()
	}
	if got := c.Transform().Zoom; got != MinZoom {
		t.Errorf("zoom after many ZoomOut = %v, want %v", got, MinZoom)
	}
}

func TestScreenSceneRoundTrip(t *testing.T) {
	tr := Transform{Zoom: 2, Pan: geom.Pt(40, -20)}

	tests := []struct {
		scene, screen geom.Point
	}{
		{geom.Pt(0, 0), geom.Pt(40, -20)},
		{geom.Pt(100, 50), geom.Pt(240, 80)},
		{geom.Pt(-10, 5), geom.Pt(20, -10)},
	}
	for _, tt := range tests {
		if got := tr.SceneToScreen(tt.scene); got != tt.screen {
			t.Errorf("SceneToScreen(%v) = %v, want %v", tt.scene, got, tt.screen)
		}
		if got := tr.ScreenToScene(tt.screen); got != tt.scene {
			t.Errorf("ScreenToScene(%v) = %v, want %v", tt.screen, got, tt.scene)
		}
	}
}

func TestZeroZoomIsTreatedAsIdentityScale(t *testing.T) {
	var tr Transform
	if got := tr.ScreenToScene(geom.Pt(5, 6)); got != geom.Pt(5, 6) {
		t.Errorf("zero transform mapped to %v", got)
	}
}
