package server

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/gofiber/template/html/v3"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"keywordjourney/internal/config"
	"keywordjourney/internal/logger"
)

// Server wraps the Fiber app and configuration.
type Server struct {
	App *fiber.App
	Cfg *config.Config
	Log logger.Logger
}

// New creates a new server with middleware configured. storage backs the
// rate limiter; nil keeps limiter state in memory.
func New(cfg *config.Config, storage fiber.Storage, log logger.Logger) *Server {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	// Setup template engine
	engine := html.New(cfg.ViewsDir, ".html")
	engine.Reload(cfg.IsDev())

	// Initialize Fiber
	app := fiber.New(fiber.Config{
		Views:        engine,
		ViewsLayout:  "layouts/main",
		ErrorHandler: errorHandler(cfg, log),
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${respHeader:X-Request-ID} ${status} - ${latency} ${method} ${path}\n",
	}))

	// CORS middleware
	corsOrigins := cfg.BaseURL
	if cfg.CORSOrigins != "" {
		corsOrigins = cfg.CORSOrigins
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Split(corsOrigins, ","),
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		MaxAge:       86400,
	}))

	// Rate limiting middleware - RateLimitMax requests per minute per IP
	if cfg.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Next: func(c fiber.Ctx) bool {
				return isProbePath(c.Path())
			},
			Max:        cfg.RateLimitMax,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Rate limit exceeded. Please try again later.",
				})
			},
			Storage: storage,
		}))
	}

	// Static files
	app.Get("/static/*", static.New(cfg.StaticDir))

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return &Server{
		App: app,
		Cfg: cfg,
		Log: log,
	}
}

// errorHandler renders JSON for API routes and the error page for everything else.
func errorHandler(cfg *config.Config, log logger.Logger) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.WithError(err).Error("request failed", map[string]interface{}{
				"path":       c.Path(),
				"request_id": requestid.FromContext(c),
			})
		}

		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(code).JSON(fiber.Map{
				"error": message,
			})
		}

		return c.Status(code).Render("error", fiber.Map{
			"Title":     "Error",
			"Code":      code,
			"Message":   message,
			"SiteTitle": cfg.SiteTitle,
		})
	}
}

func isProbePath(path string) bool {
	switch path {
	case "/healthz", "/readyz", "/metrics":
		return true
	}
	return strings.HasPrefix(path, "/static/")
}

// Start starts the server on the configured address.
func (s *Server) Start() error {
	s.Log.Info("starting server", map[string]interface{}{
		"addr": s.Cfg.ServerAddr,
	})
	return s.App.Listen(s.Cfg.ServerAddr, fiber.ListenConfig{
		DisableStartupMessage: !s.Cfg.IsDev(),
	})
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.App.ShutdownWithContext(ctx)
}
