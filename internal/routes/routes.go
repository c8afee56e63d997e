package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/pulsecheck/pulsecheck/internal/check"
	"github.com/pulsecheck/pulsecheck/internal/config"
	"github.com/pulsecheck/pulsecheck/internal/metrics"
	"github.com/pulsecheck/pulsecheck/internal/middleware"
	"github.com/pulsecheck/pulsecheck/internal/notification"
	"github.com/pulsecheck/pulsecheck/internal/store"
	"github.com/pulsecheck/pulsecheck/internal/token"
	"github.com/pulsecheck/pulsecheck/internal/user"
)

const idempotencyTTL = 24 * time.Hour

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	Store  store.Store
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	st := d.Store
	if st == nil {
		st = store.NewMemory()
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	app.Use(metrics.Middleware())
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, idempotencyTTL, d.Logger))
	}

	// Services and handlers
	tokenSvc := token.NewService(st, d.Cfg.HashSecret, d.Cfg.TokenTTL)
	userSvc := user.NewService(st, tokenSvc, d.Cfg.HashSecret)
	notifier := notification.NewLoggerNotifier(d.Logger)
	checkSvc := check.NewService(st, tokenSvc, notifier, d.Cfg.MaxChecks)

	userHandler := user.NewHandler(userSvc)
	tokenHandler := token.NewHandler(tokenSvc)
	checkHandler := check.NewHandler(checkSvc)

	// Liveness and operational endpoints
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
	})
	RegisterHealthRoutes(app, d)
	app.Get("/metrics", metrics.Handler())

	// Resources
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterUserRoutes(app, userHandler)
	RegisterTokenRoutes(app, tokenHandler, rateLimiter)
	RegisterCheckRoutes(app, checkHandler)

	// Unmatched paths respond with a JSON 404 through the error handler.
	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	return nil
}

// allMethods is the set a resource must account for: anything registered
// gets its handler, the rest answer 405.
var allMethods = []string{
	fiber.MethodGet, fiber.MethodHead, fiber.MethodPost, fiber.MethodPut,
	fiber.MethodPatch, fiber.MethodDelete, fiber.MethodOptions,
}

// registerMethodNotAllowed answers 405 on path for every method not in allowed.
func registerMethodNotAllowed(app *fiber.App, path string, allowed ...string) {
	ok := make(map[string]bool, len(allowed))
	for _, m := range allowed {
		ok[m] = true
	}
	for _, m := range allMethods {
		if ok[m] {
			continue
		}
		app.Add(m, path, func(c *fiber.Ctx) error {
			return fiber.ErrMethodNotAllowed
		})
	}
}
