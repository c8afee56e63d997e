package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/pulsecheck/pulsecheck/internal/apperror"
	"github.com/pulsecheck/pulsecheck/internal/config"
	"github.com/pulsecheck/pulsecheck/internal/routes"
	"github.com/pulsecheck/pulsecheck/internal/store"
)

// Server wraps the Fiber application and shared dependencies.
type Server struct {
	app *fiber.App
	cfg config.Config
}

// New instantiates the HTTP server and delegates route wiring to routes.Setup.
func New(cfg config.Config, st store.Store, cache *redis.Client, logger *slog.Logger) (*Server, error) {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: errorHandler,
	})

	if err := routes.Setup(app, routes.Deps{Cfg: cfg, Store: st, Cache: cache, Logger: logger}); err != nil {
		return nil, err
	}

	return &Server{app: app, cfg: cfg}, nil
}

// errorHandler renders every handler failure as a JSON object with an error
// field. Application errors carry their own status and machine code;
// anything unrecognized collapses to an opaque 500 so no internals leak.
func errorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return c.Status(appErr.Status).JSON(appErr)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}

// Listen starts the HTTP server, terminating TLS itself when a certificate
// pair is configured.
func (s *Server) Listen() error {
	if s.cfg.TLSEnabled() {
		return s.app.ListenTLS(s.cfg.Address(), s.cfg.TLSCertFile, s.cfg.TLSKeyFile)
	}
	return s.app.Listen(s.cfg.Address())
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// Test dispatches a request against the app for in-process testing.
func (s *Server) Test(req *http.Request, timeout ...int) (*http.Response, error) {
	return s.app.Test(req, timeout...)
}
