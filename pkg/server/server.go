// Package server exposes an editor session over HTTP.
//
// Pointer events arrive as JSON in screen coordinates and the scene is
// served back as JSON, SVG or PNG. All requests share one editor, and every
// handler holds the session lock for its whole run, so events are applied
// strictly one at a time.
package server

import (
	"errors"
	"log"
	"sync"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/ha1tch/floorplan-toolkit/pkg/config"
	"github.com/ha1tch/floorplan-toolkit/pkg/editor"
)

// Server is the HTTP surface of one editing session.
type Server struct {
	app *fiber.App
	cfg *config.Server

	mu sync.Mutex
	ed *editor.Editor
}

// New builds the fiber app around ed.
func New(ed *editor.Editor, cfg *config.Server) *Server {
	if cfg == nil {
		cfg = config.LoadServer()
	}
	s := &Server{cfg: cfg, ed: ed}

	s.app = fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeoutDuration(),
		WriteTimeout: cfg.WriteTimeoutDuration(),
		AppName:      "Floor Plan Editor",
		ErrorHandler: errorHandler,
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	s.app.Use(recover.New())
	s.app.Use(Logger())

	s.routes()
	return s
}

func (s *Server) routes() {
	app := s.app

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	// ============================================================
	// Scene
	// ============================================================

	app.Get("/api/scene", s.locked(s.getScene))
	app.Get("/scene.svg", s.locked(s.getSVG))
	app.Get("/scene.png", s.locked(s.getPNG))
	app.Get("/api/devices/:id", s.locked(s.getDevice))

	// ============================================================
	// Editing
	// ============================================================

	app.Post("/api/pointer", s.locked(s.postPointer))
	app.Post("/api/tool", s.locked(s.postTool))
	app.Post("/api/text", s.locked(s.postText))
	app.Post("/api/text/cancel", s.locked(s.postCancelText))
	app.Post("/api/undo", s.locked(s.postUndo))
	app.Post("/api/redo", s.locked(s.postRedo))
	app.Put("/api/settings", s.locked(s.putSettings))

	// ============================================================
	// View
	// ============================================================

	app.Post("/api/view/pan", s.locked(s.postPan))
	app.Post("/api/view/:action", s.locked(s.postView))
}

// locked serialises h against every other handler.
func (s *Server) locked(h fiber.Handler) fiber.Handler {
	return func(c fiber.Ctx) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		return h(c)
	}
}

// App returns the underlying fiber app, for tests and embedding.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on the configured address until the app is shut down.
func (s *Server) Listen() error {
	log.Printf("Starting floor plan server on %s", s.cfg.Addr)
	return s.app.Listen(s.cfg.Addr)
}

// Shutdown stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// errorHandler reports every error as a JSON body.
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// Logger returns the request logging middleware.
func Logger() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}
