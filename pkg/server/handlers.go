package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/ha1tch/floorplan-toolkit/pkg/editor"
	"github.com/ha1tch/floorplan-toolkit/pkg/geom"
	"github.com/ha1tch/floorplan-toolkit/pkg/render"
)

// PointerRequest is the body of POST /api/pointer.
type PointerRequest struct {
	Kind string  `json:"kind"` // down, move, up, leave or click
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// ToolRequest is the body of POST /api/tool.
type ToolRequest struct {
	Tool string `json:"tool"`
}

// TextRequest is the body of POST /api/text.
type TextRequest struct {
	Text string `json:"text"`
}

// PanRequest is the body of POST /api/view/pan.
type PanRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

func decode(c fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "body required")
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		log.Printf("[API] Decode error on %s: %v", c.Path(), err)
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON payload")
	}
	return nil
}

func badRequest(err error) error {
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}

// ============================================================
// Scene Handlers
// ============================================================

func (s *Server) getScene(c fiber.Ctx) error {
	return c.JSON(stateOf(s.ed))
}

func (s *Server) getSVG(c fiber.Ctx) error {
	svg := render.SVG(render.FrameOf(s.ed), render.DefaultSVGOptions())
	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}

func (s *Server) getPNG(c fiber.Ctx) error {
	var buf bytes.Buffer
	if err := render.PNG(render.FrameOf(s.ed), &buf, render.DefaultPNGOptions()); err != nil {
		log.Printf("[RENDER] PNG error: %v", err)
		return c.Status(500).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	c.Set("Content-Type", "image/png")
	return c.Send(buf.Bytes())
}

func (s *Server) getDevice(c fiber.Ctx) error {
	d, ok := s.ed.Scene().Device(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "device not found")
	}
	return c.JSON(fiber.Map{
		"device":   d,
		"summary":  d.Summary(),
		"battery":  d.BatteryLevel().String(),
		"capacity": d.CapacityLevel().String(),
	})
}

// ============================================================
// Editing Handlers
// ============================================================

func (s *Server) postPointer(c fiber.Ctx) error {
	var req PointerRequest
	if err := decode(c, &req); err != nil {
		return err
	}

	p := geom.Pt(req.X, req.Y)
	switch req.Kind {
	case "down":
		s.ed.PointerDown(p)
	case "move":
		s.ed.PointerMove(p)
	case "up":
		s.ed.PointerUp(p)
	case "leave":
		s.ed.PointerLeave(p)
	case "click":
		s.ed.Click(p)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "unknown pointer kind "+req.Kind)
	}
	return c.JSON(stateOf(s.ed))
}

func (s *Server) postTool(c fiber.Ctx) error {
	var req ToolRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	t, err := editor.ParseTool(req.Tool)
	if err != nil {
		return badRequest(err)
	}
	s.ed.SelectTool(t)
	log.Printf("[TOOL] %s", t)
	return c.JSON(stateOf(s.ed))
}

func (s *Server) postText(c fiber.Ctx) error {
	var req TextRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	if _, err := s.ed.ConfirmText(req.Text); err != nil {
		if errors.Is(err, editor.ErrNotPlacingText) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return badRequest(err)
	}
	return c.JSON(stateOf(s.ed))
}

func (s *Server) postCancelText(c fiber.Ctx) error {
	s.ed.CancelText()
	return c.JSON(stateOf(s.ed))
}

func (s *Server) postUndo(c fiber.Ctx) error {
	s.ed.Undo()
	return c.JSON(stateOf(s.ed))
}

func (s *Server) postRedo(c fiber.Ctx) error {
	s.ed.Redo()
	return c.JSON(stateOf(s.ed))
}

func (s *Server) putSettings(c fiber.Ctx) error {
	var req SettingsState
	if err := decode(c, &req); err != nil {
		return err
	}

	// Validate colours before touching anything so a bad request changes
	// nothing.
	next := *s.ed.Settings()
	if req.WallColor != nil {
		if err := next.SetWallColor(*req.WallColor); err != nil {
			return badRequest(err)
		}
	}
	if req.TextColor != nil {
		if err := next.SetTextColor(*req.TextColor); err != nil {
			return badRequest(err)
		}
	}
	if req.WallThickness != nil {
		next.SetWallThickness(*req.WallThickness)
	}
	if req.TextSize != nil {
		next.SetTextSize(*req.TextSize)
	}
	*s.ed.Settings() = next
	return c.JSON(stateOf(s.ed))
}

// ============================================================
// View Handlers
// ============================================================

func (s *Server) postPan(c fiber.Ctx) error {
	var req PanRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	s.ed.PanBy(req.DX, req.DY)
	return c.JSON(stateOf(s.ed))
}

func (s *Server) postView(c fiber.Ctx) error {
	switch c.Params("action") {
	case "in":
		s.ed.ZoomIn()
	case "out":
		s.ed.ZoomOut()
	case "reset":
		s.ed.ResetView()
	default:
		return fiber.NewError(fiber.StatusNotFound, "unknown view action")
	}
	return c.JSON(stateOf(s.ed))
}
